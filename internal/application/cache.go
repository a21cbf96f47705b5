package application

import (
	"context"
	"slices"
	"sync"

	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
)

// Cache is the in-memory copy of trips the surfaces render from.
// It is hydrated from the durable store and is never the source of truth.
type Cache struct {
	mu      sync.RWMutex
	trips   []domain.Trip
	current string
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{}
}

// Hydrate replaces the cached trips with the stored ones
func (c *Cache) Hydrate(ctx context.Context, store ports.TripStore) error {
	trips, err := store.LoadTrips(ctx)
	if err != nil {
		return err
	}
	c.Replace(trips)
	return nil
}

// Replace swaps the whole trip list
func (c *Cache) Replace(trips []domain.Trip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trips = slices.Clone(trips)
	if c.current != "" && domain.FindTrip(c.trips, c.current) < 0 {
		c.current = ""
	}
}

// Trips returns a copy of the cached trips
func (c *Cache) Trips() []domain.Trip {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.trips)
}

// Len returns the number of cached trips
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.trips)
}

// Get returns the cached trip with id
func (c *Cache) Get(id string) (domain.Trip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := domain.FindTrip(c.trips, id); i >= 0 {
		return c.trips[i], true
	}
	return domain.Trip{}, false
}

// Put updates the trip in place or prepends it
func (c *Cache) Put(trip domain.Trip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := domain.FindTrip(c.trips, trip.ID); i >= 0 {
		c.trips[i] = trip
		return
	}
	c.trips = slices.Insert(c.trips, 0, trip)
}

// Remove drops the trip with id
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := domain.FindTrip(c.trips, id); i >= 0 {
		c.trips = slices.Delete(c.trips, i, i+1)
	}
	if c.current == id {
		c.current = ""
	}
}

// SetCurrent marks the trip the user is looking at
func (c *Cache) SetCurrent(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = id
}

// Current returns the trip set with SetCurrent, if it is still cached
func (c *Cache) Current() (domain.Trip, bool) {
	c.mu.RLock()
	id := c.current
	c.mu.RUnlock()
	if id == "" {
		return domain.Trip{}, false
	}
	return c.Get(id)
}
