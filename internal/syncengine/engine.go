// Package syncengine reconciles the local store with the remote trips service.
//
// A sync pushes the outbox oldest first, pulls the authoritative trip list,
// merges it with trips that only exist locally and persists the result. Only
// one sync runs at a time and non-forced syncs are rate limited. Sync never
// returns an error: failures are reported in the SyncResult and broadcast in
// the SyncState.
package syncengine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"tripgenie/internal/broadcast"
	"tripgenie/internal/domain"
	"tripgenie/internal/network"
	"tripgenie/internal/ports"
)

const (
	// MaxRetryCount is the number of failed pushes after which a mutation is dropped
	MaxRetryCount = 3

	// MinInterval is the minimum time between two non-forced sync attempts
	MinInterval = 5 * time.Second
)

// Connectivity is the part of the network monitor the engine depends on
type Connectivity interface {
	IsOnline() bool
	State() domain.NetworkState
	Subscribe(listener network.Listener) (unsubscribe func())
}

// Options tunes an Engine. Zero values take the package defaults.
type Options struct {
	MinInterval   time.Duration
	MaxRetryCount int

	// AutoSync syncs when the network comes back online
	AutoSync bool

	Now    func() time.Time
	Logger *slog.Logger
}

// DefaultOptions returns the options used by the applications
func DefaultOptions() Options {
	return Options{
		MinInterval:   MinInterval,
		MaxRetryCount: MaxRetryCount,
		AutoSync:      true,
	}
}

// Engine is the sync engine.
//
// Its status moves idle → syncing → success, error or offline. The outcome
// of a sync stays visible until something replaces it: the next sync moves
// straight to syncing, and a reconnect after offline resets it to idle.
type Engine struct {
	store  ports.LocalStore
	api    ports.TripsAPI
	net    Connectivity
	opts   Options
	logger *slog.Logger

	syncing atomic.Bool

	// writeMu orders queue writes against the merge step of a sync
	writeMu sync.Mutex

	mu          sync.Mutex
	state       domain.SyncState
	lastAttempt time.Time
	lastNet     domain.NetworkStatus
	autoSync    bool
	rebinds     map[string]string
	started     bool
	unsubscribe func()

	listeners *broadcast.Registry[domain.SyncState]

	bg       sync.WaitGroup
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// New wires an engine. Call Start before use.
func New(store ports.LocalStore, api ports.TripsAPI, net Connectivity, opts Options) *Engine {
	if opts.MinInterval <= 0 {
		opts.MinInterval = MinInterval
	}
	if opts.MaxRetryCount <= 0 {
		opts.MaxRetryCount = MaxRetryCount
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	logger := opts.Logger.With("component", "sync")

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		store:     store,
		api:       api,
		net:       net,
		opts:      opts,
		logger:    logger,
		autoSync:  opts.AutoSync,
		rebinds:   make(map[string]string),
		state:     domain.SyncState{Status: domain.SyncIdle},
		listeners: broadcast.New[domain.SyncState]("sync", logger),
		bgCtx:     ctx,
		bgCancel:  cancel,
	}
}

// Start loads the persisted sync metadata and begins following the network.
// Calling it again is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = true
	e.mu.Unlock()

	meta, err := e.store.SyncMeta(ctx)
	if err != nil {
		return err
	}

	netState := e.net.State()
	e.update(func(s *domain.SyncState) {
		s.LastSyncTime = meta.LastSyncTime
		s.PendingCount = meta.PendingCount
		s.Online = netState.Online()
		if netState.Status == domain.NetworkOffline {
			s.Status = domain.SyncOffline
		}
	})

	e.mu.Lock()
	e.lastNet = netState.Status
	e.mu.Unlock()

	unsubscribe := e.net.Subscribe(e.handleNetwork)
	e.mu.Lock()
	e.unsubscribe = unsubscribe
	e.mu.Unlock()

	e.logger.Info("sync engine started", "pending", meta.PendingCount, "online", netState.Online())
	return nil
}

// handleNetwork triggers an automatic sync on an offline to online transition
func (e *Engine) handleNetwork(st domain.NetworkState) {
	e.mu.Lock()
	prev := e.lastNet
	e.lastNet = st.Status
	trigger := prev == domain.NetworkOffline && st.Status == domain.NetworkOnline && e.autoSync
	e.mu.Unlock()

	e.update(func(s *domain.SyncState) {
		s.Online = st.Online()
		if st.Status == domain.NetworkOffline && s.Status != domain.SyncSyncing {
			s.Status = domain.SyncOffline
		}
		if st.Online() && s.Status == domain.SyncOffline {
			s.Status = domain.SyncIdle
			s.Error = ""
		}
	})

	if trigger {
		e.logger.Info("network restored, triggering sync")
		e.Background(false)
	}
}

// Background runs a sync on its own goroutine. Close waits for it.
func (e *Engine) Background(force bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.bgCtx.Err() != nil {
		return
	}
	e.bg.Add(1)
	go func() {
		defer e.bg.Done()
		e.Sync(e.bgCtx, force)
	}()
}

// State returns a snapshot of the sync state
func (e *Engine) State() domain.SyncState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Syncing reports whether a sync is running
func (e *Engine) Syncing() bool {
	return e.syncing.Load()
}

// Subscribe registers fn and immediately calls it with the current state
func (e *Engine) Subscribe(fn func(domain.SyncState)) (unsubscribe func()) {
	unsubscribe = e.listeners.Subscribe(fn)
	e.listeners.Deliver(fn, e.State())
	return unsubscribe
}

// SetAutoSync enables or disables syncing on reconnect
func (e *Engine) SetAutoSync(enabled bool) {
	e.mu.Lock()
	e.autoSync = enabled
	e.mu.Unlock()
	e.logger.Debug("auto sync changed", "enabled", enabled)
}

// AutoSync reports whether syncing on reconnect is enabled
func (e *Engine) AutoSync() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autoSync
}

// ResolveID returns the server ID a local ID was rebound to, or id itself
func (e *Engine) ResolveID(id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if serverID, ok := e.rebinds[id]; ok {
		return serverID
	}
	return id
}

// Close stops following the network, waits for background syncs and drops listeners
func (e *Engine) Close() {
	e.mu.Lock()
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.bgCancel()
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	e.bg.Wait()
	e.listeners.Clear()
}

// update applies fn to the state under the lock and broadcasts the result
func (e *Engine) update(fn func(*domain.SyncState)) {
	e.mu.Lock()
	fn(&e.state)
	snapshot := e.state
	e.mu.Unlock()
	e.listeners.Publish(snapshot)
}

func (e *Engine) refreshPending(ctx context.Context) {
	meta, err := e.store.SyncMeta(ctx)
	if err != nil {
		e.logger.Warn("failed to read pending count", "error", err)
		return
	}
	e.update(func(s *domain.SyncState) { s.PendingCount = meta.PendingCount })
}
