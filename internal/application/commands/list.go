package commands

import (
	"context"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

// ListTripsCommand lists every known trip
type ListTripsCommand struct {
	svc TripService
}

// NewListTripsCommand creates a new ListTripsCommand
func NewListTripsCommand(svc TripService) *ListTripsCommand {
	return &ListTripsCommand{svc: svc}
}

// Execute runs the list trips command
func (c *ListTripsCommand) Execute(ctx context.Context) ([]domain.Trip, error) {
	return c.svc.FetchTrips(ctx)
}

// ShowTripCommand fetches one trip
type ShowTripCommand struct {
	svc TripService
	ID  string
}

// NewShowTripCommand creates a new ShowTripCommand
func NewShowTripCommand(svc TripService, id string) *ShowTripCommand {
	return &ShowTripCommand{svc: svc, ID: id}
}

// Validate checks if the show operation is valid
func (c *ShowTripCommand) Validate() error {
	return application.ValidateTripID(c.ID)
}

// Execute runs the show trip command
func (c *ShowTripCommand) Execute(ctx context.Context) (domain.Trip, error) {
	if err := c.Validate(); err != nil {
		return domain.Trip{}, err
	}
	return c.svc.GetTrip(ctx, c.ID)
}
