package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tripgenie/internal/domain"
	"tripgenie/internal/network"
	"tripgenie/internal/ports"
	"tripgenie/internal/syncengine"
)

// SessionOptions selects the automatic sync triggers
type SessionOptions struct {
	// AutoSync syncs when the network comes back online
	AutoSync bool
	// SyncOnForeground syncs when the app returns from the background
	SyncOnForeground bool
	// SyncOnMount syncs once during Start
	SyncOnMount bool
}

// DefaultSessionOptions enables every trigger
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{AutoSync: true, SyncOnForeground: true, SyncOnMount: true}
}

// Lifecycle is the foreground state of the hosting app
type Lifecycle string

const (
	LifecycleActive     Lifecycle = "active"
	LifecycleBackground Lifecycle = "background"
)

// SessionStatus is the sync state flattened for rendering
type SessionStatus struct {
	Status            domain.SyncStatus
	Online            bool
	Offline           bool
	Syncing           bool
	HasPendingChanges bool
	PendingCount      int
	LastSyncTime      *time.Time
	Error             string
}

// StatusFrom flattens a sync state
func StatusFrom(st domain.SyncState) SessionStatus {
	return SessionStatus{
		Status:            st.Status,
		Online:            st.Online,
		Offline:           !st.Online,
		Syncing:           st.Status == domain.SyncSyncing,
		HasPendingChanges: st.PendingCount > 0,
		PendingCount:      st.PendingCount,
		LastSyncTime:      st.LastSyncTime,
		Error:             st.Error,
	}
}

// Session ties the network monitor, sync engine and trip cache to the
// lifecycle of a running app
type Session struct {
	engine  *syncengine.Engine
	monitor *network.Monitor
	store   ports.LocalStore
	cache   *Cache
	opts    SessionOptions
	logger  *slog.Logger

	mu          sync.Mutex
	started     bool
	lifecycle   Lifecycle
	lastStatus  domain.SyncStatus
	unsubscribe func()
}

// NewSession creates a session. Nothing runs until Start.
func NewSession(engine *syncengine.Engine, monitor *network.Monitor, store ports.LocalStore, cache *Cache, opts SessionOptions, logger *slog.Logger) *Session {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		engine:    engine,
		monitor:   monitor,
		store:     store,
		cache:     cache,
		opts:      opts,
		logger:    logger.With("component", "session"),
		lifecycle: LifecycleActive,
	}
}

// Start initializes the network monitor and the engine, hydrates the cache
// and runs the mount sync when enabled. Calling it again is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	net := s.monitor.Initialize(ctx)
	s.engine.SetAutoSync(s.opts.AutoSync)
	if err := s.engine.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sync engine: %w", err)
	}
	if err := s.cache.Hydrate(ctx, s.store); err != nil {
		s.logger.Warn("failed to hydrate trip cache", "error", err)
	}

	unsubscribe := s.engine.Subscribe(s.handleState)
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	s.logger.Info("session started", "network", net.Status, "trips", s.cache.Len())

	if s.opts.SyncOnMount {
		s.engine.Sync(ctx, false)
	}
	return nil
}

// handleState rehydrates the cache when a sync finishes
func (s *Session) handleState(st domain.SyncState) {
	s.mu.Lock()
	prev := s.lastStatus
	s.lastStatus = st.Status
	s.mu.Unlock()

	if prev != domain.SyncSyncing || st.Status == domain.SyncSyncing {
		return
	}
	if err := s.cache.Hydrate(context.Background(), s.store); err != nil {
		s.logger.Warn("failed to hydrate trip cache", "error", err)
	}
}

// Foreground records that the app became active. Coming back from the
// background triggers a sync when SyncOnForeground is set.
func (s *Session) Foreground(ctx context.Context) domain.SyncResult {
	s.mu.Lock()
	prev := s.lifecycle
	s.lifecycle = LifecycleActive
	s.mu.Unlock()

	if prev != LifecycleBackground || !s.opts.SyncOnForeground {
		return domain.SyncResult{}
	}
	s.logger.Debug("app foregrounded, syncing")
	return s.engine.Sync(ctx, false)
}

// Background records that the app left the foreground
func (s *Session) Background() {
	s.mu.Lock()
	s.lifecycle = LifecycleBackground
	s.mu.Unlock()
}

// Lifecycle returns the last recorded foreground state
func (s *Session) Lifecycle() Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle
}

// Sync runs a sync now. Force bypasses the rate limit.
func (s *Session) Sync(ctx context.Context, force bool) domain.SyncResult {
	return s.engine.Sync(ctx, force)
}

// ClearPendingChanges drops every queued change without syncing it
func (s *Session) ClearPendingChanges(ctx context.Context) error {
	return s.engine.ClearPending(ctx)
}

// Logout wipes local trips, the outbox and sync metadata
func (s *Session) Logout(ctx context.Context) error {
	if err := s.engine.ClearAll(ctx); err != nil {
		return err
	}
	s.cache.Replace(nil)
	return nil
}

// SetAutoSync toggles syncing on reconnect
func (s *Session) SetAutoSync(enabled bool) {
	s.engine.SetAutoSync(enabled)
}

// Status returns the current flattened sync state
func (s *Session) Status() SessionStatus {
	return StatusFrom(s.engine.State())
}

// Network returns the monitor's current view of connectivity
func (s *Session) Network() domain.NetworkState {
	return s.monitor.State()
}

// Cache returns the trip cache the session keeps hydrated
func (s *Session) Cache() *Cache {
	return s.cache
}

// Subscribe registers fn for status changes and calls it immediately
func (s *Session) Subscribe(fn func(SessionStatus)) (unsubscribe func()) {
	return s.engine.Subscribe(func(st domain.SyncState) {
		fn(StatusFrom(st))
	})
}

// Close stops the engine and the monitor
func (s *Session) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.engine.Close()
	s.monitor.Close()
}
