package commands

import (
	"context"
	"fmt"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

// CreateTripResult contains the result of creating a trip
type CreateTripResult struct {
	Trip domain.Trip
	// Queued is set when the trip was saved offline and awaits a sync
	Queued  bool
	Message string
}

// CreateTripCommand creates a trip
type CreateTripCommand struct {
	svc   TripService
	Input domain.TripInput
}

// NewCreateTripCommand creates a new CreateTripCommand
func NewCreateTripCommand(svc TripService, in domain.TripInput) *CreateTripCommand {
	return &CreateTripCommand{svc: svc, Input: in}
}

// Validate checks if the create operation is valid
func (c *CreateTripCommand) Validate() error {
	return application.ValidateTripInput(c.Input, true)
}

// Execute runs the create trip command
func (c *CreateTripCommand) Execute(ctx context.Context) (*CreateTripResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	trip, err := c.svc.CreateTrip(ctx, c.Input)
	if err != nil {
		return nil, err
	}

	result := &CreateTripResult{Trip: trip, Queued: trip.IsLocal()}
	if result.Queued {
		result.Message = fmt.Sprintf("Saved trip to %s offline (%s), it will sync when online", trip.Destination, trip.ID)
	} else {
		result.Message = fmt.Sprintf("Created trip to %s (%s)", trip.Destination, trip.ID)
	}
	return result, nil
}
