package commands

import (
	"context"
	"fmt"

	"tripgenie/internal/application"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteTripCommand deletes a trip by ID
type DeleteTripCommand struct {
	svc TripService
	ID  string
}

// NewDeleteTripCommand creates a new DeleteTripCommand
func NewDeleteTripCommand(svc TripService, id string) *DeleteTripCommand {
	return &DeleteTripCommand{svc: svc, ID: id}
}

// Validate checks if the delete operation is valid
func (c *DeleteTripCommand) Validate() error {
	return application.ValidateTripID(c.ID)
}

// Execute runs the delete command
func (c *DeleteTripCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.svc.DeleteTrip(ctx, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.ID, err)
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted %s", c.ID),
	}, nil
}
