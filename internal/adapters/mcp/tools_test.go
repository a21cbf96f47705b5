package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

var testNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type fakeTrips struct {
	trips   []domain.Trip
	created domain.TripInput
	updated domain.TripInput
	err     error
}

func (f *fakeTrips) FetchTrips(context.Context) ([]domain.Trip, error) { return f.trips, f.err }

func (f *fakeTrips) GetTrip(_ context.Context, id string) (domain.Trip, error) {
	for _, t := range f.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}

func (f *fakeTrips) CreateTrip(_ context.Context, in domain.TripInput) (domain.Trip, error) {
	f.created = in
	if f.err != nil {
		return domain.Trip{}, f.err
	}
	return domain.NewDraftTrip("local_1", in, testNow), nil
}

func (f *fakeTrips) UpdateTrip(_ context.Context, id string, in domain.TripInput) (domain.Trip, error) {
	f.updated = in
	return domain.Trip{ID: id, Destination: "Rome"}, f.err
}

func (f *fakeTrips) DeleteTrip(context.Context, string) error { return f.err }

func (f *fakeTrips) GenerateItinerary(_ context.Context, id string) (domain.Trip, error) {
	return domain.Trip{}, f.err
}

func (f *fakeTrips) PendingChanges(context.Context) ([]domain.PendingMutation, error) {
	return []domain.PendingMutation{{Kind: domain.MutationCreate, TripID: "local_1"}}, nil
}

type fakeSync struct {
	result domain.SyncResult
	status application.SessionStatus
}

func (f *fakeSync) Sync(context.Context, bool) domain.SyncResult { return f.result }
func (f *fakeSync) ClearPendingChanges(context.Context) error     { return nil }
func (f *fakeSync) Logout(context.Context) error                  { return nil }
func (f *fakeSync) Status() application.SessionStatus             { return f.status }

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestCreateTripPassesOnlyGivenFields(t *testing.T) {
	trips := &fakeTrips{}
	res, err := createHandler(trips)(context.Background(), request(map[string]any{
		"destination": "Rome",
		"travelers":   float64(2),
		"vibes":       []any{"food", "art"},
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "offline")

	require.NotNil(t, trips.created.Destination)
	assert.Equal(t, "Rome", *trips.created.Destination)
	require.NotNil(t, trips.created.Travelers)
	assert.Equal(t, 2, *trips.created.Travelers)
	assert.Equal(t, []string{"food", "art"}, trips.created.Vibes)
	assert.Nil(t, trips.created.Country)
	assert.Nil(t, trips.created.Budget)
}

func TestCreateTripValidationIsToolError(t *testing.T) {
	res, err := createHandler(&fakeTrips{})(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "destination")
}

func TestUpdateTripPartial(t *testing.T) {
	trips := &fakeTrips{}
	res, err := updateHandler(trips)(context.Background(), request(map[string]any{
		"id":     "srv-1",
		"budget": "luxury",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.NotNil(t, trips.updated.Budget)
	assert.Equal(t, "luxury", *trips.updated.Budget)
	assert.Nil(t, trips.updated.Destination)
}

func TestListAndGet(t *testing.T) {
	trips := &fakeTrips{trips: []domain.Trip{
		{ID: "srv-1", Destination: "Oslo", Status: domain.TripStatusPlanned},
		{ID: "local_2", Destination: "Rome", Status: domain.TripStatusDraft},
	}}

	res, err := listHandler(trips)(context.Background(), request(nil))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "srv-1  Oslo")
	assert.Contains(t, out, "local_2  Rome")
	assert.Contains(t, out, "(not synced)")

	res, err = getHandler(trips)(context.Background(), request(map[string]any{"id": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGenerateOfflineIsToolError(t *testing.T) {
	trips := &fakeTrips{err: &application.OfflineError{Op: "generate an itinerary"}}
	res, err := generateHandler(trips)(context.Background(), request(map[string]any{"id": "srv-1"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSyncReportsFailureAsToolError(t *testing.T) {
	sync := &fakeSync{result: domain.SyncResult{Errors: []domain.SyncFailure{{Error: "server unavailable"}}}}
	res, err := syncHandler(sync)(context.Background(), request(map[string]any{"force": true}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "server unavailable")

	sync.result = domain.SyncResult{Success: true, Synced: 2}
	res, err = syncHandler(sync)(context.Background(), request(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "Synced 2 changes", text(t, res))
}

func TestStatusListsPending(t *testing.T) {
	sync := &fakeSync{status: application.SessionStatus{Status: domain.SyncIdle, Online: true}}
	res, err := statusHandler(sync, &fakeTrips{})(context.Background(), request(nil))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "online: true")
	assert.Contains(t, out, "last sync: never")
	assert.Contains(t, out, "create local_1")
}

func TestToolErrorWrapsMessage(t *testing.T) {
	res, err := toolError(errors.New("boom"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "boom", text(t, res))
}
