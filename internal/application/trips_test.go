package application_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgenie/internal/adapters/auth"
	"tripgenie/internal/adapters/httpapi"
	"tripgenie/internal/adapters/netprobe"
	"tripgenie/internal/adapters/sqlite"
	"tripgenie/internal/adapters/tripstub"
	"tripgenie/internal/application"
	"tripgenie/internal/domain"
	"tripgenie/internal/network"
	"tripgenie/internal/syncengine"
)

const token = "secret"

type harness struct {
	trips   *application.Trips
	session *application.Session
	engine  *syncengine.Engine
	store   *sqlite.Store
	stub    *tripstub.Server
	net     *netprobe.Manual
}

func setup(t *testing.T, online bool, opts application.SessionOptions) *harness {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "trips.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	stub := tripstub.New(tripstub.Options{Token: token, Logger: logger})
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)
	api := httpapi.New(srv.URL, auth.NewStatic(token, "user-1"), httpapi.WithLogger(logger))

	initial := netprobe.Offline()
	if online {
		initial = netprobe.Online()
	}
	src := netprobe.NewManual(initial)
	monitor := network.NewMonitor(src, logger)
	engine := syncengine.New(store, api, monitor, syncengine.Options{Logger: logger})

	cache := application.NewCache()
	session := application.NewSession(engine, monitor, store, cache, opts, logger)
	t.Cleanup(session.Close)

	trips := application.NewTrips(application.TripsDeps{
		Store:   store,
		API:     api,
		Planner: api,
		Engine:  engine,
		Network: monitor,
		Cache:   cache,
		Logger:  logger,
	})

	return &harness{trips: trips, session: session, engine: engine, store: store, stub: stub, net: src}
}

func start(t *testing.T, h *harness) {
	t.Helper()
	require.NoError(t, h.session.Start(context.Background()))
}

func romeInput() domain.TripInput {
	return domain.TripInput{
		Destination: domain.Ptr("Rome"),
		StartDate:   domain.Ptr("2026-06-01"),
		EndDate:     domain.Ptr("2026-06-03"),
		Travelers:   domain.Ptr(2),
	}
}

func TestCreateTripOnline(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	trip, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)
	assert.False(t, trip.IsLocal())

	stored, err := h.store.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rome", stored.Destination)

	current, ok := h.trips.Cache().Current()
	require.True(t, ok)
	assert.Equal(t, trip.ID, current.ID)
	assert.Zero(t, h.session.Status().PendingCount)
}

func TestCreateTripOfflineQueuesAndSyncs(t *testing.T) {
	ctx := context.Background()
	h := setup(t, false, application.SessionOptions{})
	start(t, h)

	trip, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)
	assert.True(t, trip.IsLocal())
	assert.Equal(t, domain.TripStatusDraft, trip.Status)
	assert.Equal(t, domain.DefaultCoverImage, trip.CoverImage)

	status := h.session.Status()
	assert.True(t, status.Offline)
	assert.True(t, status.HasPendingChanges)
	assert.Equal(t, 1, status.PendingCount)

	h.net.SetOnline(true)
	result := h.session.Sync(ctx, true)
	require.True(t, result.Success)
	require.Len(t, result.Rebound, 1)

	got, err := h.trips.GetTrip(ctx, trip.ID)
	require.NoError(t, err, "local ID still resolves after sync")
	assert.Equal(t, result.Rebound[0].ServerID, got.ID)

	cached := h.trips.Cache().Trips()
	require.Len(t, cached, 1)
	assert.False(t, cached[0].IsLocal(), "cache rehydrated after sync")
}

func TestCreateTripRejectsInvalidInput(t *testing.T) {
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	_, err := h.trips.CreateTrip(context.Background(), domain.TripInput{Travelers: domain.Ptr(2)})

	var valErr *application.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "destination", valErr.Field)
	assert.Zero(t, h.stub.Requests(http.MethodPost))
}

func TestUpdateTripOffline(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	trip, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)

	h.net.SetOnline(false)
	updated, err := h.trips.UpdateTrip(ctx, trip.ID, domain.TripInput{Budget: domain.Ptr("luxury")})
	require.NoError(t, err)
	assert.Equal(t, "luxury", updated.Budget)
	assert.Zero(t, h.stub.Requests(http.MethodPatch))

	pending, err := h.trips.PendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.MutationUpdate, pending[0].Kind)

	_, err = h.trips.UpdateTrip(ctx, "unknown", domain.TripInput{Budget: domain.Ptr("mid")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateTripOnlineQueuesBehindPendingChange(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	trip, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)

	h.net.SetOnline(false)
	_, err = h.trips.UpdateTrip(ctx, trip.ID, domain.TripInput{Budget: domain.Ptr("budget")})
	require.NoError(t, err)

	h.net.SetOnline(true)
	updated, err := h.trips.UpdateTrip(ctx, trip.ID, domain.TripInput{Budget: domain.Ptr("luxury")})
	require.NoError(t, err)
	assert.Equal(t, "luxury", updated.Budget)
	assert.Zero(t, h.stub.Requests(http.MethodPatch), "the newer edit waits behind the queued one")

	pending, err := h.trips.PendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "luxury", *pending[0].Payload.Budget)

	result := h.session.Sync(ctx, true)
	require.True(t, result.Success)
	server := h.stub.Trips()
	require.Len(t, server, 1)
	assert.Equal(t, "luxury", server[0].Budget)
}

func TestDeleteTripOnlineAndOffline(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	first, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)
	second, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)

	require.NoError(t, h.trips.DeleteTrip(ctx, first.ID))
	assert.Len(t, h.stub.Trips(), 1)
	_, err = h.store.GetTrip(ctx, first.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	h.net.SetOnline(false)
	require.NoError(t, h.trips.DeleteTrip(ctx, second.ID))
	assert.Len(t, h.stub.Trips(), 1, "offline delete is only queued")
	_, ok := h.trips.Cache().Get(second.ID)
	assert.False(t, ok)

	h.net.SetOnline(true)
	h.session.Sync(ctx, true)
	assert.Empty(t, h.stub.Trips())
}

func TestFetchTripsKeepsUnsyncedLocalTrips(t *testing.T) {
	ctx := context.Background()
	h := setup(t, false, application.SessionOptions{})
	start(t, h)

	local, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)
	h.stub.Seed(domain.Trip{ID: "srv-1", Destination: "Oslo", Status: domain.TripStatusPlanned})

	h.net.SetOnline(true)
	trips, err := h.trips.FetchTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "srv-1", trips[0].ID)
	assert.Equal(t, local.ID, trips[1].ID)
	assert.Equal(t, 2, h.trips.Cache().Len())
}

func TestFetchTripsFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	require.NoError(t, h.store.SaveTrip(ctx, domain.Trip{ID: "srv-1", Destination: "Oslo"}))
	h.stub.Fail(http.MethodGet, http.StatusServiceUnavailable, 1)

	trips, err := h.trips.FetchTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Oslo", trips[0].Destination)
}

func TestFetchTripsSharesConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)
	h.stub.SetDelay(100 * time.Millisecond)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.trips.FetchTrips(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, h.stub.Requests(http.MethodGet), 5)
}

func TestGetTripFallsBackToLocalCopy(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	require.NoError(t, h.store.SaveTrip(ctx, domain.Trip{ID: "srv-1", Destination: "Oslo"}))
	h.stub.Fail(http.MethodGet, http.StatusInternalServerError, 1)

	trip, err := h.trips.GetTrip(ctx, "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "Oslo", trip.Destination)

	_, err = h.trips.GetTrip(ctx, "srv-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "server is authoritative once reachable")
}

func TestGenerateItinerary(t *testing.T) {
	ctx := context.Background()
	h := setup(t, true, application.SessionOptions{})
	start(t, h)

	trip, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)

	planned, err := h.trips.GenerateItinerary(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, planned.Days, 3)

	stored, err := h.store.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusPlanned, stored.Status)

	h.net.SetOnline(false)
	_, err = h.trips.GenerateItinerary(ctx, trip.ID)
	assert.True(t, errors.Is(err, domain.ErrOffline))

	local, err := h.trips.CreateTrip(ctx, romeInput())
	require.NoError(t, err)
	_, err = h.trips.GenerateItinerary(ctx, local.ID)
	assert.True(t, errors.Is(err, application.ErrNotSynced))
}
