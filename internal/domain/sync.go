package domain

import "time"

// SyncStatus is the externally visible state of the sync engine
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
	SyncOffline SyncStatus = "offline"
)

// SyncOutcome is the persisted result of the last sync attempt
type SyncOutcome string

const (
	OutcomeNone    SyncOutcome = ""
	OutcomeSuccess SyncOutcome = "success"
	OutcomePartial SyncOutcome = "partial"
	OutcomeFailed  SyncOutcome = "failed"
)

// SyncMeta is the process-wide persisted sync bookkeeping
type SyncMeta struct {
	LastSyncTime   *time.Time  `json:"last_sync_time,omitempty"`
	LastSyncStatus SyncOutcome `json:"last_sync_status,omitempty"`
	PendingCount   int         `json:"pending_count"`
}

// SyncState is broadcast to subscribers whenever the sync engine changes state
type SyncState struct {
	Status       SyncStatus
	LastSyncTime *time.Time
	PendingCount int
	Online       bool
	Error        string
}

// SyncFailure ties a failure to the outbox entry that caused it.
// MutationID is empty for failures outside the push phase.
type SyncFailure struct {
	MutationID string `json:"mutation_id,omitempty"`
	Error      string `json:"error"`
}

// IDRebinding records a local trip ID replaced by the server-assigned one
type IDRebinding struct {
	LocalID  string `json:"local_id"`
	ServerID string `json:"server_id"`
}

// SyncResult summarizes one sync call.
// A zero SyncResult means the call had no effect (rate limited or already running).
type SyncResult struct {
	Success bool          `json:"success"`
	Synced  int           `json:"synced"`
	Failed  int           `json:"failed"`
	Dropped int           `json:"dropped"`
	Errors  []SyncFailure `json:"errors,omitempty"`
	Rebound []IDRebinding `json:"rebound,omitempty"`
}

// StorageStats is a debugging snapshot of local storage
type StorageStats struct {
	TripCount        int
	PendingMutations int
	LastSync         *time.Time
}
