package commands

import (
	"context"
	"fmt"
	"strings"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

// SyncCommandResult contains the outcome of a sync
type SyncCommandResult struct {
	Result domain.SyncResult
	Status application.SessionStatus
	// Skipped is set when the sync was rate limited or another sync was running
	Skipped bool
	Message string
}

// SyncCommand pushes queued changes and pulls the server trips
type SyncCommand struct {
	svc   SyncService
	Force bool
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(svc SyncService, force bool) *SyncCommand {
	return &SyncCommand{svc: svc, Force: force}
}

// Execute runs the sync command. Sync failures are reported in the result,
// not as an error.
func (c *SyncCommand) Execute(ctx context.Context) (*SyncCommandResult, error) {
	result := c.svc.Sync(ctx, c.Force)
	out := &SyncCommandResult{
		Result:  result,
		Status:  c.svc.Status(),
		Skipped: isZeroResult(result),
	}
	out.Message = DescribeSync(out)
	return out, nil
}

// DescribeSync renders a one-line summary of a sync
func DescribeSync(r *SyncCommandResult) string {
	res := r.Result
	switch {
	case r.Skipped:
		return "Sync skipped: already running or ran less than 5s ago (use --force)"
	case !res.Success && len(res.Errors) == 1 && res.Errors[0].Error == domain.ErrOffline.Error():
		return "Offline: changes stay queued until the network is back"
	case !res.Success:
		return fmt.Sprintf("Sync failed: %s", joinErrors(res.Errors))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Synced %d %s", res.Synced, plural(res.Synced, "change", "changes"))
	if res.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", res.Failed)
	}
	if res.Dropped > 0 {
		fmt.Fprintf(&b, " (%d dropped after repeated failures)", res.Dropped)
	}
	return b.String()
}

func isZeroResult(r domain.SyncResult) bool {
	return !r.Success && r.Synced == 0 && r.Failed == 0 && r.Dropped == 0 && len(r.Errors) == 0 && len(r.Rebound) == 0
}

func joinErrors(errs []domain.SyncFailure) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error)
	}
	return strings.Join(msgs, "; ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// StatusResult is a snapshot of sync status and the queued changes
type StatusResult struct {
	Status  application.SessionStatus
	Pending []domain.PendingMutation
}

// StatusCommand reports sync status
type StatusCommand struct {
	sync  SyncService
	trips TripService
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(sync SyncService, trips TripService) *StatusCommand {
	return &StatusCommand{sync: sync, trips: trips}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	pending, err := c.trips.PendingChanges(ctx)
	if err != nil {
		return nil, err
	}
	return &StatusResult{Status: c.sync.Status(), Pending: pending}, nil
}

// ClearPendingResult contains the result of dropping queued changes
type ClearPendingResult struct {
	Cleared int
	Message string
}

// ClearPendingCommand drops queued changes without syncing them
type ClearPendingCommand struct {
	sync SyncService
}

// NewClearPendingCommand creates a new ClearPendingCommand
func NewClearPendingCommand(sync SyncService) *ClearPendingCommand {
	return &ClearPendingCommand{sync: sync}
}

// Execute runs the clear pending command
func (c *ClearPendingCommand) Execute(ctx context.Context) (*ClearPendingResult, error) {
	cleared := c.sync.Status().PendingCount
	if err := c.sync.ClearPendingChanges(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear pending changes: %w", err)
	}
	return &ClearPendingResult{
		Cleared: cleared,
		Message: fmt.Sprintf("Dropped %d pending %s", cleared, plural(cleared, "change", "changes")),
	}, nil
}

// ResetCommand wipes local trips, queued changes and sync metadata
type ResetCommand struct {
	sync SyncService
}

// NewResetCommand creates a new ResetCommand
func NewResetCommand(sync SyncService) *ResetCommand {
	return &ResetCommand{sync: sync}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context) (string, error) {
	if err := c.sync.Logout(ctx); err != nil {
		return "", fmt.Errorf("failed to reset local data: %w", err)
	}
	return "Local data cleared", nil
}
