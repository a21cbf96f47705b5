package commands

import (
	"context"
	"fmt"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

// UpdateTripResult contains the result of updating a trip
type UpdateTripResult struct {
	Trip    domain.Trip
	Message string
}

// UpdateTripCommand applies a partial update to a trip
type UpdateTripCommand struct {
	svc   TripService
	ID    string
	Input domain.TripInput
}

// NewUpdateTripCommand creates a new UpdateTripCommand
func NewUpdateTripCommand(svc TripService, id string, in domain.TripInput) *UpdateTripCommand {
	return &UpdateTripCommand{svc: svc, ID: id, Input: in}
}

// Validate checks if the update operation is valid
func (c *UpdateTripCommand) Validate() error {
	if err := application.ValidateTripID(c.ID); err != nil {
		return err
	}
	return application.ValidateTripInput(c.Input, false)
}

// Execute runs the update trip command
func (c *UpdateTripCommand) Execute(ctx context.Context) (*UpdateTripResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	trip, err := c.svc.UpdateTrip(ctx, c.ID, c.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.ID, err)
	}

	return &UpdateTripResult{
		Trip:    trip,
		Message: fmt.Sprintf("Updated trip %s", trip.ID),
	}, nil
}
