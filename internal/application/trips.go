package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
	"tripgenie/internal/syncengine"
)

// Connectivity answers whether remote calls should be attempted
type Connectivity interface {
	IsOnline() bool
}

// TripsDeps wires a Trips facade
type TripsDeps struct {
	Store   ports.LocalStore
	API     ports.TripsAPI
	Planner ports.ItineraryGenerator
	Engine  *syncengine.Engine
	Network Connectivity
	Cache   *Cache
	Now     func() time.Time
	Logger  *slog.Logger
}

// Trips is the data-access facade the surfaces call.
// Online it talks to the server and refreshes the local copy; offline, or
// for trips the server has not seen yet, it writes locally and queues the
// change for the next sync.
type Trips struct {
	store   ports.LocalStore
	api     ports.TripsAPI
	planner ports.ItineraryGenerator
	engine  *syncengine.Engine
	net     Connectivity
	cache   *Cache
	now     func() time.Time
	logger  *slog.Logger

	fetches singleflight.Group
}

// NewTrips creates the facade
func NewTrips(deps TripsDeps) *Trips {
	if deps.Cache == nil {
		deps.Cache = NewCache()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Trips{
		store:   deps.Store,
		api:     deps.API,
		planner: deps.Planner,
		engine:  deps.Engine,
		net:     deps.Network,
		cache:   deps.Cache,
		now:     deps.Now,
		logger:  deps.Logger.With("component", "trips"),
	}
}

// Cache returns the in-memory trip cache the facade keeps current
func (t *Trips) Cache() *Cache {
	return t.cache
}

// FetchTrips returns the server trips merged with trips that only exist
// locally. Offline, or when the server call fails, it returns the stored trips.
// Concurrent calls share one request.
func (t *Trips) FetchTrips(ctx context.Context) ([]domain.Trip, error) {
	if !t.net.IsOnline() {
		return t.stored(ctx)
	}

	v, err, shared := t.fetches.Do("trips", func() (any, error) {
		server, err := t.api.ListTrips(ctx)
		if err != nil {
			return nil, err
		}
		return t.engine.ApplyServerTrips(ctx, server)
	})
	if err != nil {
		t.logger.Warn("failed to fetch trips, using local copy", "error", err)
		return t.stored(ctx)
	}

	trips := v.([]domain.Trip)
	if !shared {
		t.cache.Replace(trips)
	}
	return trips, nil
}

func (t *Trips) stored(ctx context.Context) ([]domain.Trip, error) {
	trips, err := t.store.LoadTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	t.cache.Replace(trips)
	return trips, nil
}

// GetTrip returns one trip, from the server when possible.
// A local ID that has since been synced is looked up under its server ID.
func (t *Trips) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	if err := ValidateTripID(id); err != nil {
		return domain.Trip{}, err
	}
	id = t.engine.ResolveID(id)

	if domain.IsLocalID(id) || !t.net.IsOnline() {
		return t.local(ctx, id)
	}

	trip, err := t.api.GetTrip(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, err
		}
		t.logger.Warn("failed to fetch trip, using local copy", "trip_id", id, "error", err)
		if local, lerr := t.local(ctx, id); lerr == nil {
			return local, nil
		}
		return domain.Trip{}, fmt.Errorf("failed to fetch trip: %w", err)
	}

	t.remember(ctx, trip)
	t.cache.SetCurrent(trip.ID)
	return trip, nil
}

func (t *Trips) local(ctx context.Context, id string) (domain.Trip, error) {
	trip, err := t.store.GetTrip(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	t.cache.Put(trip)
	t.cache.SetCurrent(trip.ID)
	return trip, nil
}

// CreateTrip creates a trip on the server, or offline as a local draft
// queued for the next sync
func (t *Trips) CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	if err := ValidateTripInput(in, true); err != nil {
		return domain.Trip{}, err
	}

	if !t.net.IsOnline() {
		trip := domain.NewDraftTrip(domain.NewLocalID(), in, t.now())
		if err := t.engine.QueueCreate(ctx, trip); err != nil {
			return domain.Trip{}, err
		}
		t.cache.Put(trip)
		t.cache.SetCurrent(trip.ID)
		t.logger.Info("trip created offline", "trip_id", trip.ID)
		return trip, nil
	}

	trip, err := t.api.CreateTrip(ctx, in)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("failed to create trip: %w", err)
	}
	t.remember(ctx, trip)
	t.cache.SetCurrent(trip.ID)
	t.logger.Info("trip created", "trip_id", trip.ID)
	return trip, nil
}

// UpdateTrip applies a partial update. Offline, or while an older change to
// the trip is still queued, the update is queued behind it and the trip must
// exist locally.
func (t *Trips) UpdateTrip(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error) {
	if err := ValidateTripID(id); err != nil {
		return domain.Trip{}, err
	}
	if err := ValidateTripInput(in, false); err != nil {
		return domain.Trip{}, err
	}
	id = t.engine.ResolveID(id)

	if domain.IsLocalID(id) || !t.net.IsOnline() || t.queued(ctx, id) {
		existing, err := t.store.GetTrip(ctx, id)
		if err != nil {
			return domain.Trip{}, err
		}
		if err := t.engine.QueueUpdate(ctx, id, in); err != nil {
			return domain.Trip{}, err
		}
		updated := in.Apply(existing)
		t.cache.Put(updated)
		return updated, nil
	}

	trip, err := t.api.UpdateTrip(ctx, id, in)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("failed to update trip: %w", err)
	}
	t.remember(ctx, trip)
	return trip, nil
}

// DeleteTrip deletes a trip on the server, or locally with a queued delete
// when offline or when older changes to the trip are still queued
func (t *Trips) DeleteTrip(ctx context.Context, id string) error {
	if err := ValidateTripID(id); err != nil {
		return err
	}
	id = t.engine.ResolveID(id)

	if domain.IsLocalID(id) || !t.net.IsOnline() || t.queued(ctx, id) {
		if err := t.engine.QueueDelete(ctx, id); err != nil {
			return err
		}
		t.cache.Remove(id)
		return nil
	}

	if err := t.api.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if err := t.engine.UncacheTrip(ctx, id); err != nil {
		t.logger.Warn("failed to remove trip from local store", "trip_id", id, "error", err)
	}
	t.cache.Remove(id)
	return nil
}

// GenerateItinerary asks the server to plan the days of a synced trip
func (t *Trips) GenerateItinerary(ctx context.Context, id string) (domain.Trip, error) {
	if err := ValidateTripID(id); err != nil {
		return domain.Trip{}, err
	}
	id = t.engine.ResolveID(id)

	if domain.IsLocalID(id) {
		return domain.Trip{}, fmt.Errorf("%s: %w", id, ErrNotSynced)
	}
	if !t.net.IsOnline() {
		return domain.Trip{}, &OfflineError{Op: "generate an itinerary"}
	}

	trip, err := t.planner.GenerateItinerary(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("failed to generate itinerary: %w", err)
	}
	t.remember(ctx, trip)
	t.logger.Info("itinerary generated", "trip_id", id, "days", len(trip.Days))
	return trip, nil
}

// PendingChanges lists the queued mutations, oldest first
func (t *Trips) PendingChanges(ctx context.Context) ([]domain.PendingMutation, error) {
	pending, err := t.store.PendingMutations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending changes: %w", err)
	}
	slices.SortStableFunc(pending, func(a, b domain.PendingMutation) int {
		return a.EnqueuedAt.Compare(b.EnqueuedAt)
	})
	return pending, nil
}

// Stats returns a snapshot of local storage
func (t *Trips) Stats(ctx context.Context) (domain.StorageStats, error) {
	return t.store.Stats(ctx)
}

// queued reports whether the outbox holds a change for id
func (t *Trips) queued(ctx context.Context, id string) bool {
	pending, err := t.store.PendingMutations(ctx)
	if err != nil {
		return false
	}
	return slices.ContainsFunc(pending, func(p domain.PendingMutation) bool { return p.TripID == id })
}

// remember writes a server-returned trip to the store and the cache.
// Store failures are logged, not returned.
func (t *Trips) remember(ctx context.Context, trip domain.Trip) {
	if err := t.engine.CacheTrip(ctx, trip); err != nil {
		t.logger.Warn("failed to store trip locally", "trip_id", trip.ID, "error", err)
	}
	t.cache.Put(trip)
}
