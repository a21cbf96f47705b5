package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tripgenie/internal/domain"
)

const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldRule is a validator tag applied to one TripInput field
type fieldRule struct {
	field string
	set   bool
	value any
	tag   string
}

// ValidateTripInput checks a create payload (create=true) or a partial update.
// A create needs a destination; an update must change at least one field.
// Returns a *ValidationError naming the first offending field.
func ValidateTripInput(in domain.TripInput, create bool) error {
	if !create && in.IsEmpty() {
		return &ValidationError{Field: "input", Message: "no fields to update"}
	}

	rules := []fieldRule{
		{"destination", create || in.Destination != nil, deref(in.Destination), "required,max=200"},
		{"country", in.Country != nil, deref(in.Country), "max=100"},
		{"start_date", in.StartDate != nil, deref(in.StartDate), "required,datetime=" + dateLayout},
		{"end_date", in.EndDate != nil, deref(in.EndDate), "required,datetime=" + dateLayout},
		{"travelers", in.Travelers != nil, deref(in.Travelers), "min=1,max=50"},
		{"traveler_type", in.TravelerType != nil, deref(in.TravelerType), "required,max=40"},
		{"vibes", in.Vibes != nil, in.Vibes, "max=20,dive,required,max=40"},
		{"status", in.Status != nil, string(deref(in.Status)), "oneof=draft planned active completed"},
	}

	for _, r := range rules {
		if !r.set {
			continue
		}
		if err := validate.Var(r.value, r.tag); err != nil {
			return toValidationError(r.field, err)
		}
	}

	if in.StartDate != nil && in.EndDate != nil {
		start, _ := time.Parse(dateLayout, *in.StartDate)
		end, _ := time.Parse(dateLayout, *in.EndDate)
		if end.Before(start) {
			return &ValidationError{Field: "end_date", Message: "end date is before start date"}
		}
	}
	return nil
}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace)
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateTripID checks that id is usable as a trip identifier
func ValidateTripID(id string) error {
	if err := ValidateRequired("tripID", id); err != nil {
		return err
	}
	if strings.ContainsAny(id, "/?# ") {
		return &ValidationError{Field: "tripID", Message: fmt.Sprintf("%v: %q", ErrInvalidID, id)}
	}
	return nil
}

func toValidationError(field string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: field, Message: err.Error()}
	}

	fe := fieldErrs[0]
	name := formatFieldName(field)
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", name)
	case "datetime":
		msg = fmt.Sprintf("%s must be a date (YYYY-MM-DD)", name)
	case "min":
		msg = fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		msg = fmt.Sprintf("%s is invalid", name)
	}
	return &ValidationError{Field: field, Message: msg}
}

// formatFieldName converts field names to space-separated words
// for more readable error messages (e.g., "start_date" -> "start date")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"tripID":        "trip ID",
		"traveler_type": "traveler type",
	}
	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return strings.ReplaceAll(fieldName, "_", " ")
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
