package sqlite

import (
	"context"
	"fmt"

	"tripgenie/internal/domain"
)

// LoadTrips returns the cached trips. Read failures are logged and yield an empty slice.
func (s *Store) LoadTrips(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := s.view(ctx, func(tx *docTx) error {
		var err error
		trips, err = tx.trips()
		return err
	})
	if err != nil {
		s.logger.Error("failed to load trips", "error", err)
		return []domain.Trip{}, nil
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// SaveTrips replaces the whole trip collection
func (s *Store) SaveTrips(ctx context.Context, trips []domain.Trip) error {
	return s.update(ctx, func(tx *docTx) error {
		return tx.putTrips(trips)
	})
}

// SaveTrip updates the trip with the same ID in place or prepends it
func (s *Store) SaveTrip(ctx context.Context, trip domain.Trip) error {
	return s.update(ctx, func(tx *docTx) error {
		trips, err := tx.trips()
		if err != nil {
			return err
		}
		if i := domain.FindTrip(trips, trip.ID); i >= 0 {
			trips[i] = trip
		} else {
			trips = append([]domain.Trip{trip}, trips...)
		}
		return tx.putTrips(trips)
	})
}

// DeleteTrip removes the trip with id. Missing trips are not an error.
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	return s.update(ctx, func(tx *docTx) error {
		trips, err := tx.trips()
		if err != nil {
			return err
		}
		i := domain.FindTrip(trips, id)
		if i < 0 {
			return nil
		}
		return tx.putTrips(append(trips[:i], trips[i+1:]...))
	})
}

// GetTrip returns the cached trip with id
func (s *Store) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	var trip domain.Trip
	err := s.view(ctx, func(tx *docTx) error {
		trips, err := tx.trips()
		if err != nil {
			return err
		}
		i := domain.FindTrip(trips, id)
		if i < 0 {
			return fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
		}
		trip = trips[i]
		return nil
	})
	return trip, err
}

// ReplaceTrip swaps oldID for trip and retargets queued mutations
func (s *Store) ReplaceTrip(ctx context.Context, oldID string, trip domain.Trip) error {
	return s.update(ctx, func(tx *docTx) error {
		return tx.replaceTrip(oldID, trip)
	})
}

func (t *docTx) replaceTrip(oldID string, trip domain.Trip) error {
	trips, err := t.trips()
	if err != nil {
		return err
	}

	out := make([]domain.Trip, 0, len(trips)+1)
	replaced := false
	for _, existing := range trips {
		switch existing.ID {
		case oldID:
			out = append(out, trip)
			replaced = true
		case trip.ID:
			// already pulled under the new ID
		default:
			out = append(out, existing)
		}
	}
	if !replaced {
		out = append([]domain.Trip{trip}, out...)
	}
	if err := t.putTrips(out); err != nil {
		return err
	}

	if oldID == trip.ID {
		return nil
	}
	return t.retarget(oldID, trip.ID)
}
