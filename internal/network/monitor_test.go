package network

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgenie/internal/adapters/netprobe"
	"tripgenie/internal/domain"
)

func TestMonitorStartsUnknown(t *testing.T) {
	m := NewMonitor(netprobe.NewManual(netprobe.Online()), nil)

	assert.Equal(t, domain.NetworkUnknown, m.State().Status)
	assert.False(t, m.IsOnline())
	assert.False(t, m.IsOffline())
}

func TestMonitorInitialize(t *testing.T) {
	src := netprobe.NewManual(netprobe.Offline())
	m := NewMonitor(src, nil)
	defer m.Close()

	st := m.Initialize(context.Background())
	assert.Equal(t, domain.NetworkOffline, st.Status)
	assert.True(t, m.IsOffline())

	// second call does not subscribe again
	m.Initialize(context.Background())
	assert.Equal(t, 1, src.Watchers())
}

func TestMonitorFailsOpen(t *testing.T) {
	src := netprobe.NewManual(netprobe.Offline())
	src.FailFetch(errors.New("platform unavailable"))
	m := NewMonitor(src, nil)
	defer m.Close()

	st := m.Initialize(context.Background())
	assert.Equal(t, domain.NetworkOnline, st.Status)
	assert.Equal(t, 0, src.Watchers())

	// stays uninitialized so a later call retries
	src.FailFetch(nil)
	st = m.Initialize(context.Background())
	assert.Equal(t, domain.NetworkOffline, st.Status)
	assert.Equal(t, 1, src.Watchers())
}

func TestMonitorSubscribe(t *testing.T) {
	src := netprobe.NewManual(netprobe.Offline())
	m := NewMonitor(src, nil)
	defer m.Close()
	m.Initialize(context.Background())

	var got []domain.NetworkStatus
	unsubscribe := m.Subscribe(func(st domain.NetworkState) { got = append(got, st.Status) })

	src.SetOnline(true)
	unsubscribe()
	src.SetOnline(false)

	assert.Equal(t, []domain.NetworkStatus{domain.NetworkOffline, domain.NetworkOnline}, got)
}

func TestMonitorPanickingListener(t *testing.T) {
	src := netprobe.NewManual(netprobe.Offline())
	m := NewMonitor(src, nil)
	defer m.Close()
	m.Initialize(context.Background())

	m.Subscribe(func(domain.NetworkState) { panic("boom") })
	var calls int
	m.Subscribe(func(domain.NetworkState) { calls++ })

	src.SetOnline(true)
	assert.Equal(t, 2, calls)
}

func TestWaitForConnection(t *testing.T) {
	t.Run("already online", func(t *testing.T) {
		m := NewMonitor(netprobe.NewManual(netprobe.Online()), nil)
		defer m.Close()
		m.Initialize(context.Background())

		assert.True(t, m.WaitForConnection(context.Background(), time.Millisecond))
	})

	t.Run("comes online", func(t *testing.T) {
		src := netprobe.NewManual(netprobe.Offline())
		m := NewMonitor(src, nil)
		defer m.Close()
		m.Initialize(context.Background())

		var wg sync.WaitGroup
		wg.Add(1)
		var ok bool
		go func() {
			defer wg.Done()
			ok = m.WaitForConnection(context.Background(), 5*time.Second)
		}()

		require.Eventually(t, func() bool { return m.listeners.Len() == 1 }, time.Second, time.Millisecond)
		src.SetOnline(true)
		wg.Wait()

		assert.True(t, ok)
		assert.Equal(t, 0, m.listeners.Len())
	})

	t.Run("times out", func(t *testing.T) {
		m := NewMonitor(netprobe.NewManual(netprobe.Offline()), nil)
		defer m.Close()
		m.Initialize(context.Background())

		assert.False(t, m.WaitForConnection(context.Background(), 10*time.Millisecond))
		assert.Equal(t, 0, m.listeners.Len())
	})

	t.Run("context cancelled", func(t *testing.T) {
		m := NewMonitor(netprobe.NewManual(netprobe.Offline()), nil)
		defer m.Close()
		m.Initialize(context.Background())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, m.WaitForConnection(ctx, time.Minute))
	})
}

func TestMonitorRefreshNotifiesWithoutChange(t *testing.T) {
	src := netprobe.NewManual(netprobe.Online())
	m := NewMonitor(src, nil)
	defer m.Close()
	m.Initialize(context.Background())

	var calls int
	m.Subscribe(func(domain.NetworkState) { calls++ })
	m.Refresh(context.Background())

	assert.Equal(t, 2, calls)
}

func TestMonitorClose(t *testing.T) {
	src := netprobe.NewManual(netprobe.Online())
	m := NewMonitor(src, nil)
	m.Initialize(context.Background())
	m.Subscribe(func(domain.NetworkState) {})

	m.Close()

	assert.Equal(t, 0, src.Watchers())
	assert.Equal(t, 0, m.listeners.Len())
}
