package application

import (
	"errors"
	"strings"
	"testing"

	"tripgenie/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "destination",
			value:     "Rome",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "destination",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "destination",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateTripInput(t *testing.T) {
	tests := []struct {
		name      string
		in        domain.TripInput
		create    bool
		wantField string
		errMsg    string
	}{
		{
			name: "valid create",
			in: domain.TripInput{
				Destination: domain.Ptr("Rome"),
				StartDate:   domain.Ptr("2026-06-01"),
				EndDate:     domain.Ptr("2026-06-04"),
				Travelers:   domain.Ptr(2),
				Vibes:       []string{"food", "art"},
			},
			create: true,
		},
		{
			name:      "create without destination",
			in:        domain.TripInput{Travelers: domain.Ptr(2)},
			create:    true,
			wantField: "destination",
			errMsg:    "destination is required",
		},
		{
			name:      "blank destination on update",
			in:        domain.TripInput{Destination: domain.Ptr("")},
			wantField: "destination",
			errMsg:    "destination is required",
		},
		{
			name:      "malformed date",
			in:        domain.TripInput{StartDate: domain.Ptr("01/06/2026")},
			wantField: "start_date",
			errMsg:    "start date must be a date (YYYY-MM-DD)",
		},
		{
			name: "end before start",
			in: domain.TripInput{
				StartDate: domain.Ptr("2026-06-04"),
				EndDate:   domain.Ptr("2026-06-01"),
			},
			wantField: "end_date",
			errMsg:    "end date is before start date",
		},
		{
			name:      "zero travelers",
			in:        domain.TripInput{Travelers: domain.Ptr(0)},
			wantField: "travelers",
			errMsg:    "travelers must be at least 1",
		},
		{
			name:      "unknown status",
			in:        domain.TripInput{Status: domain.Ptr(domain.TripStatus("archived"))},
			wantField: "status",
			errMsg:    "status must be one of: draft, planned, active, completed",
		},
		{
			name:      "empty vibe",
			in:        domain.TripInput{Vibes: []string{"food", ""}},
			wantField: "vibes",
		},
		{
			name:      "empty update",
			in:        domain.TripInput{},
			wantField: "input",
			errMsg:    "no fields to update",
		},
		{
			name: "valid partial update",
			in:   domain.TripInput{Budget: domain.Ptr("luxury")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTripInput(tt.in, tt.create)

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T (%v)", err, err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, valErr.Field)
			}
			if tt.errMsg != "" && valErr.Message != tt.errMsg {
				t.Errorf("expected message %q, got %q", tt.errMsg, valErr.Message)
			}
		})
	}
}

func TestValidateTripID(t *testing.T) {
	if err := ValidateTripID("local_123"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateTripID("")
	if err == nil || !strings.Contains(err.Error(), "trip ID is required") {
		t.Errorf("expected required error, got %v", err)
	}

	err = ValidateTripID("a/b")
	if err == nil || !strings.Contains(err.Error(), "invalid trip ID") {
		t.Errorf("expected invalid ID error, got %v", err)
	}
}
