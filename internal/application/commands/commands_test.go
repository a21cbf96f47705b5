package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

// fakeTrips is a TripService with overridable behaviour
type fakeTrips struct {
	createFn func(in domain.TripInput) (domain.Trip, error)
	deleteFn func(id string) error
	pending  []domain.PendingMutation
}

func (f *fakeTrips) FetchTrips(ctx context.Context) ([]domain.Trip, error) { return nil, nil }
func (f *fakeTrips) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	return domain.Trip{ID: id}, nil
}
func (f *fakeTrips) CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	return f.createFn(in)
}
func (f *fakeTrips) UpdateTrip(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error) {
	return in.Apply(domain.Trip{ID: id}), nil
}
func (f *fakeTrips) DeleteTrip(ctx context.Context, id string) error { return f.deleteFn(id) }
func (f *fakeTrips) GenerateItinerary(ctx context.Context, id string) (domain.Trip, error) {
	return domain.Trip{ID: id, Destination: "Kyoto", Days: []domain.TripDay{
		{DayNumber: 1, Activities: make([]domain.Activity, 2)},
		{DayNumber: 2, Activities: make([]domain.Activity, 3)},
	}}, nil
}
func (f *fakeTrips) PendingChanges(ctx context.Context) ([]domain.PendingMutation, error) {
	return f.pending, nil
}

// fakeSync is a SyncService returning canned results
type fakeSync struct {
	result  domain.SyncResult
	status  application.SessionStatus
	cleared bool
}

func (f *fakeSync) Sync(ctx context.Context, force bool) domain.SyncResult { return f.result }
func (f *fakeSync) ClearPendingChanges(ctx context.Context) error {
	f.cleared = true
	return nil
}
func (f *fakeSync) Logout(ctx context.Context) error   { return nil }
func (f *fakeSync) Status() application.SessionStatus { return f.status }

func TestCreateTripCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.TripInput
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid create",
			input:   domain.TripInput{Destination: domain.Ptr("Rome")},
			wantErr: false,
		},
		{
			name:    "missing destination",
			input:   domain.TripInput{},
			wantErr: true,
			errMsg:  "destination is required",
		},
		{
			name: "bad dates",
			input: domain.TripInput{
				Destination: domain.Ptr("Rome"),
				StartDate:   domain.Ptr("2026-13-01"),
			},
			wantErr: true,
			errMsg:  "start date must be a date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateTripCommand{Input: tt.input}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateTripCommand_QueuedMessage(t *testing.T) {
	svc := &fakeTrips{createFn: func(in domain.TripInput) (domain.Trip, error) {
		return domain.Trip{ID: "local_1", Destination: *in.Destination}, nil
	}}

	result, err := NewCreateTripCommand(svc, domain.TripInput{Destination: domain.Ptr("Rome")}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Queued {
		t.Error("expected local trip to be reported as queued")
	}
	if !strings.Contains(result.Message, "offline") {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestUpdateTripCommand_Validate(t *testing.T) {
	cmd := &UpdateTripCommand{ID: "", Input: domain.TripInput{Budget: domain.Ptr("mid")}}
	if err := cmd.Validate(); err == nil || !strings.Contains(err.Error(), "trip ID is required") {
		t.Errorf("expected missing ID error, got %v", err)
	}

	cmd = &UpdateTripCommand{ID: "srv-1"}
	if err := cmd.Validate(); err == nil || !strings.Contains(err.Error(), "no fields to update") {
		t.Errorf("expected empty update error, got %v", err)
	}
}

func TestDeleteTripCommand_WrapsError(t *testing.T) {
	svc := &fakeTrips{deleteFn: func(id string) error { return domain.ErrNotFound }}

	_, err := NewDeleteTripCommand(svc, "srv-1").Execute(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateItineraryCommand_Message(t *testing.T) {
	result, err := NewGenerateItineraryCommand(&fakeTrips{}, "srv-1").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "Planned 2 days with 5 activities for Kyoto" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestSyncCommand_Messages(t *testing.T) {
	tests := []struct {
		name    string
		result  domain.SyncResult
		skipped bool
		want    string
	}{
		{
			name:    "rate limited",
			result:  domain.SyncResult{},
			skipped: true,
			want:    "Sync skipped",
		},
		{
			name:   "offline",
			result: domain.SyncResult{Errors: []domain.SyncFailure{{Error: "offline"}}},
			want:   "Offline",
		},
		{
			name:   "pull failed",
			result: domain.SyncResult{Errors: []domain.SyncFailure{{Error: "failed to fetch trips: boom"}}},
			want:   "Sync failed: failed to fetch trips: boom",
		},
		{
			name:   "success",
			result: domain.SyncResult{Success: true, Synced: 1},
			want:   "Synced 1 change",
		},
		{
			name:   "partial",
			result: domain.SyncResult{Success: true, Synced: 2, Failed: 1, Dropped: 1},
			want:   "Synced 2 changes, 1 failed (1 dropped after repeated failures)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewSyncCommand(&fakeSync{result: tt.result}, false).Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Skipped != tt.skipped {
				t.Errorf("skipped = %v, want %v", out.Skipped, tt.skipped)
			}
			if !strings.HasPrefix(out.Message, tt.want) {
				t.Errorf("message %q does not start with %q", out.Message, tt.want)
			}
		})
	}
}

func TestClearPendingCommand(t *testing.T) {
	svc := &fakeSync{status: application.SessionStatus{PendingCount: 3}}

	result, err := NewClearPendingCommand(svc).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.cleared || result.Cleared != 3 {
		t.Errorf("expected 3 cleared, got %d (cleared=%v)", result.Cleared, svc.cleared)
	}
}

func TestStatusCommand(t *testing.T) {
	trips := &fakeTrips{pending: []domain.PendingMutation{{ID: "m1"}}}
	sync := &fakeSync{status: application.SessionStatus{Online: true, PendingCount: 1}}

	result, err := NewStatusCommand(sync, trips).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Pending) != 1 || !result.Status.Online {
		t.Errorf("unexpected status %+v", result)
	}
}
