package netprobe

import (
	"context"
	"sync"

	"tripgenie/internal/broadcast"
	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
)

// Manual is a connectivity source whose state is set by the caller.
// It backs forced offline mode and tests.
type Manual struct {
	mu       sync.Mutex
	report   domain.ConnectivityReport
	fetchErr error
	watchErr error
	watchers *broadcast.Registry[domain.ConnectivityReport]
}

// Ensure Manual implements ConnectivitySource
var _ ports.ConnectivitySource = (*Manual)(nil)

// NewManual returns a source that starts with the given report
func NewManual(initial domain.ConnectivityReport) *Manual {
	return &Manual{
		report:   initial,
		watchers: broadcast.New[domain.ConnectivityReport]("netprobe.manual", nil),
	}
}

// Online returns a connected report with unknown reachability
func Online() domain.ConnectivityReport {
	return domain.ConnectivityReport{Connected: true, Type: "wifi"}
}

// Offline returns a disconnected report
func Offline() domain.ConnectivityReport {
	return domain.ConnectivityReport{Connected: false, Type: "none"}
}

// Fetch returns the current report or the configured failure
func (m *Manual) Fetch(ctx context.Context) (domain.ConnectivityReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return domain.ConnectivityReport{}, m.fetchErr
	}
	return m.report, nil
}

// Watch registers fn for every Set call
func (m *Manual) Watch(fn func(domain.ConnectivityReport)) (func(), error) {
	m.mu.Lock()
	err := m.watchErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.watchers.Subscribe(fn), nil
}

// Set replaces the current report and notifies watchers
func (m *Manual) Set(r domain.ConnectivityReport) {
	m.mu.Lock()
	m.report = r
	m.mu.Unlock()
	m.watchers.Publish(r)
}

// SetOnline is shorthand for Set(Online()) or Set(Offline())
func (m *Manual) SetOnline(online bool) {
	if online {
		m.Set(Online())
		return
	}
	m.Set(Offline())
}

// FailFetch makes subsequent Fetch calls return err. nil clears the failure.
func (m *Manual) FailFetch(err error) {
	m.mu.Lock()
	m.fetchErr = err
	m.mu.Unlock()
}

// FailWatch makes subsequent Watch calls return err. nil clears the failure.
func (m *Manual) FailWatch(err error) {
	m.mu.Lock()
	m.watchErr = err
	m.mu.Unlock()
}

// Watchers returns the number of active watchers
func (m *Manual) Watchers() int {
	return m.watchers.Len()
}
