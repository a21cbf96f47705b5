// Package network tracks connectivity for the rest of the application.
//
// The Monitor is the single source of truth for "are we online". It wraps a
// platform ConnectivitySource, derives a NetworkState from each report and
// broadcasts it to subscribers.
//
// When the platform cannot be queried the monitor fails open and reports
// online.
package network

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tripgenie/internal/broadcast"
	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
)

// Listener receives network state updates
type Listener func(domain.NetworkState)

// Monitor tracks connectivity state
type Monitor struct {
	source ports.ConnectivitySource
	logger *slog.Logger

	mu          sync.RWMutex
	state       domain.NetworkState
	initialized bool
	stopWatch   func()

	listeners *broadcast.Registry[domain.NetworkState]
}

// NewMonitor creates a monitor over source. Nothing is queried until Initialize.
func NewMonitor(source ports.ConnectivitySource, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "network")
	return &Monitor{
		source:    source,
		logger:    logger,
		state:     domain.UnknownNetworkState(),
		listeners: broadcast.New[domain.NetworkState]("network", logger),
	}
}

// Initialize fetches the current state once, registers for change events and
// notifies subscribers of the first observation. A second call returns the
// cached state without subscribing again.
// On platform failure the state becomes online and the monitor stays
// uninitialized, so a later call retries.
func (m *Monitor) Initialize(ctx context.Context) domain.NetworkState {
	m.mu.Lock()
	if m.initialized {
		st := m.state
		m.mu.Unlock()
		return st
	}
	m.mu.Unlock()

	report, err := m.source.Fetch(ctx)
	if err != nil {
		m.logger.Warn("connectivity query failed, assuming online", "error", err)
		return m.failOpen()
	}

	m.setState(domain.DeriveNetworkState(report))

	stop, err := m.source.Watch(m.handleChange)
	if err != nil {
		m.logger.Warn("connectivity watch failed, assuming online", "error", err)
		return m.failOpen()
	}

	m.mu.Lock()
	if m.initialized {
		// lost a race with a concurrent Initialize
		m.mu.Unlock()
		stop()
		return m.State()
	}
	m.initialized = true
	m.stopWatch = stop
	m.mu.Unlock()

	st := m.State()
	m.logger.Info("network monitor initialized", "status", st.Status, "type", st.Type)
	m.listeners.Publish(st)
	return st
}

func (m *Monitor) failOpen() domain.NetworkState {
	st := m.setState(domain.FailOpenNetworkState())
	m.listeners.Publish(st)
	return st
}

func (m *Monitor) handleChange(r domain.ConnectivityReport) {
	st := m.setState(domain.DeriveNetworkState(r))
	m.logger.Debug("network state changed", "status", st.Status, "type", st.Type)
	m.listeners.Publish(st)
}

func (m *Monitor) setState(st domain.NetworkState) domain.NetworkState {
	m.mu.Lock()
	m.state = st
	m.mu.Unlock()
	return st
}

// State returns the last observed state
func (m *Monitor) State() domain.NetworkState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsOnline reports whether the last observed status is online
func (m *Monitor) IsOnline() bool {
	return m.State().Status == domain.NetworkOnline
}

// IsOffline reports whether the last observed status is offline.
// Unknown is neither online nor offline.
func (m *Monitor) IsOffline() bool {
	return m.State().Status == domain.NetworkOffline
}

// Subscribe registers listener and immediately calls it with the current state
func (m *Monitor) Subscribe(listener Listener) (unsubscribe func()) {
	unsubscribe = m.listeners.Subscribe(listener)
	m.listeners.Deliver(listener, m.State())
	return unsubscribe
}

// WaitForConnection blocks until the monitor reports online, the timeout
// elapses or ctx is done. It returns true only in the first case.
func (m *Monitor) WaitForConnection(ctx context.Context, timeout time.Duration) bool {
	if m.IsOnline() {
		return true
	}

	online := make(chan struct{}, 1)
	unsubscribe := m.Subscribe(func(st domain.NetworkState) {
		if st.Status == domain.NetworkOnline {
			select {
			case online <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-online:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// Refresh queries the platform again and notifies subscribers even when the
// state did not change. On failure the previous state is kept.
func (m *Monitor) Refresh(ctx context.Context) domain.NetworkState {
	report, err := m.source.Fetch(ctx)
	if err != nil {
		m.logger.Warn("connectivity refresh failed", "error", err)
		return m.State()
	}
	st := m.setState(domain.DeriveNetworkState(report))
	m.listeners.Publish(st)
	return st
}

// Close stops watching the platform and drops every listener
func (m *Monitor) Close() {
	m.mu.Lock()
	stop := m.stopWatch
	m.stopWatch = nil
	m.initialized = false
	m.mu.Unlock()

	if stop != nil {
		stop()
	}
	m.listeners.Clear()
}
