package commands

import (
	"context"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

// TripService is the part of the trips facade the commands drive
type TripService interface {
	FetchTrips(ctx context.Context) ([]domain.Trip, error)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	GenerateItinerary(ctx context.Context, id string) (domain.Trip, error)
	PendingChanges(ctx context.Context) ([]domain.PendingMutation, error)
}

// SyncService is the part of the session the sync commands drive
type SyncService interface {
	Sync(ctx context.Context, force bool) domain.SyncResult
	ClearPendingChanges(ctx context.Context) error
	Logout(ctx context.Context) error
	Status() application.SessionStatus
}

// Ensure the application types satisfy the command services
var (
	_ TripService = (*application.Trips)(nil)
	_ SyncService = (*application.Session)(nil)
)
