package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripgenie/internal/domain"
)

func TestCachePutGetRemove(t *testing.T) {
	c := NewCache()

	c.Put(domain.Trip{ID: "a", Destination: "Oslo"})
	c.Put(domain.Trip{ID: "b", Destination: "Bergen"})
	c.Put(domain.Trip{ID: "a", Destination: "Oslo, Norway"})

	trips := c.Trips()
	assert.Len(t, trips, 2)
	assert.Equal(t, "b", trips[0].ID, "new trips are prepended")

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "Oslo, Norway", got.Destination)

	c.SetCurrent("a")
	c.Remove("a")
	_, ok = c.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCacheReplaceDropsStaleCurrent(t *testing.T) {
	c := NewCache()
	c.Put(domain.Trip{ID: "local_1"})
	c.SetCurrent("local_1")

	c.Replace([]domain.Trip{{ID: "srv-1"}})

	_, ok := c.Current()
	assert.False(t, ok)

	trips := c.Trips()
	trips[0].ID = "mutated"
	_, ok = c.Get("srv-1")
	assert.True(t, ok, "Trips returns a copy")
}
