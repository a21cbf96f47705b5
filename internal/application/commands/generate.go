package commands

import (
	"context"
	"fmt"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

// GenerateItineraryResult contains the planned trip
type GenerateItineraryResult struct {
	Trip    domain.Trip
	Message string
}

// GenerateItineraryCommand asks the server to plan a trip's days
type GenerateItineraryCommand struct {
	svc TripService
	ID  string
}

// NewGenerateItineraryCommand creates a new GenerateItineraryCommand
func NewGenerateItineraryCommand(svc TripService, id string) *GenerateItineraryCommand {
	return &GenerateItineraryCommand{svc: svc, ID: id}
}

// Validate checks if the generate operation is valid
func (c *GenerateItineraryCommand) Validate() error {
	return application.ValidateTripID(c.ID)
}

// Execute runs the generate itinerary command
func (c *GenerateItineraryCommand) Execute(ctx context.Context) (*GenerateItineraryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	trip, err := c.svc.GenerateItinerary(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	activities := 0
	for _, d := range trip.Days {
		activities += len(d.Activities)
	}
	return &GenerateItineraryResult{
		Trip:    trip,
		Message: fmt.Sprintf("Planned %d days with %d activities for %s", len(trip.Days), activities, trip.Destination),
	}, nil
}
