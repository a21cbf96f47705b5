package ports

import (
	"context"

	"tripgenie/internal/domain"
)

// TripsAPI is the remote trips CRUD service
type TripsAPI interface {
	// ListTrips returns domain.ErrNotAuthenticated for anonymous sessions
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)

	// CreateTrip returns the trip with its server-assigned ID
	CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error)

	// DeleteTrip treats an already-deleted trip as success
	DeleteTrip(ctx context.Context, id string) error
}

// ItineraryGenerator asks the remote AI pipeline to plan the days of a trip
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, tripID string) (domain.Trip, error)
}
