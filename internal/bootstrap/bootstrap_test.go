package bootstrap

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgenie/internal/adapters/tripstub"
	"tripgenie/internal/application"
	"tripgenie/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestOpenOffline(t *testing.T) {
	db := filepath.Join(t.TempDir(), "trips.db")
	path := writeConfig(t, `
[storage]
path = "`+db+`"

[network]
source = "offline"

[sync]
sync_on_mount = false
`)

	app, err := Open(Options{ConfigPath: path, DefaultLogFile: filepath.Join(t.TempDir(), "test.log")})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	assert.True(t, app.Monitor.IsOffline())
	assert.Equal(t, db, app.Store.Path())

	trip, err := app.Trips.CreateTrip(ctx, domain.TripInput{
		Destination: domain.Ptr("Rome"),
		StartDate:   domain.Ptr("2026-06-01"),
		EndDate:     domain.Ptr("2026-06-02"),
		Travelers:   domain.Ptr(1),
	})
	require.NoError(t, err)
	assert.True(t, trip.IsLocal())
	assert.Equal(t, 1, app.Session.Status().PendingCount)
}

func TestOpenWithServer(t *testing.T) {
	t.Setenv("TRIPGENIE_TOKEN", "secret")
	stub := tripstub.New(tripstub.Options{Token: "secret"})
	stub.Seed(domain.Trip{ID: "srv-1", Destination: "Oslo"})
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	path := writeConfig(t, `
[api]
url = "`+srv.URL+`"

[storage]
path = "`+filepath.Join(t.TempDir(), "trips.db")+`"

[network]
source = "probe"
probe_url = "`+srv.URL+`/healthz"
`)

	mount := application.SessionOptions{SyncOnMount: true}
	app, err := Open(Options{ConfigPath: path, DefaultLogFile: filepath.Join(t.TempDir(), "test.log"), Session: &mount})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	require.NoError(t, app.Start(context.Background()))
	if app.Monitor.IsOffline() {
		t.Skip("no non-loopback network interface to probe from")
	}

	assert.Equal(t, domain.SyncSuccess, app.Session.Status().Status)
	assert.Equal(t, 1, app.Cache.Len())
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, `
[network]
source = "carrier-pigeon"
`)

	_, err := Open(Options{ConfigPath: path})
	assert.ErrorContains(t, err, "network.source")
}

func TestCloseIsIdempotent(t *testing.T) {
	path := writeConfig(t, `
[storage]
path = "`+filepath.Join(t.TempDir(), "trips.db")+`"

[network]
source = "offline"
`)
	app, err := Open(Options{ConfigPath: path, DefaultLogFile: filepath.Join(t.TempDir(), "test.log")})
	require.NoError(t, err)

	assert.NoError(t, app.Close())
	assert.NoError(t, app.Close())
}
