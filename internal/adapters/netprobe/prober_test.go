package netprobe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgenie/internal/domain"
)

func fakeInterfaces(ifaces ...net.Interface) func() ([]net.Interface, error) {
	return func() ([]net.Interface, error) { return ifaces, nil }
}

var (
	loopback = net.Interface{Name: "lo", Flags: net.FlagUp | net.FlagLoopback}
	wlan     = net.Interface{Name: "wlan0", Flags: net.FlagUp}
	ethDown  = net.Interface{Name: "eth0"}
)

func TestProberFetch(t *testing.T) {
	t.Run("only loopback is disconnected", func(t *testing.T) {
		p := NewProber("", nil)
		p.interfaces = fakeInterfaces(loopback, ethDown)

		r, err := p.Fetch(context.Background())
		require.NoError(t, err)
		assert.False(t, r.Connected)
		assert.Equal(t, "none", r.Type)
	})

	t.Run("no probe url leaves reachability unknown", func(t *testing.T) {
		p := NewProber("", nil)
		p.interfaces = fakeInterfaces(loopback, wlan)

		r, err := p.Fetch(context.Background())
		require.NoError(t, err)
		assert.True(t, r.Connected)
		assert.Nil(t, r.InternetReachable)
		assert.Equal(t, "wifi", r.Type)
		assert.Equal(t, domain.NetworkOnline, domain.DeriveNetworkState(r).Status)
	})

	t.Run("probe success is reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		p := NewProber(srv.URL, nil)
		p.interfaces = fakeInterfaces(wlan)

		r, err := p.Fetch(context.Background())
		require.NoError(t, err)
		require.NotNil(t, r.InternetReachable)
		assert.True(t, *r.InternetReachable)
	})

	t.Run("probe failure is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		p := NewProber(srv.URL, nil)
		p.interfaces = fakeInterfaces(wlan)

		r, err := p.Fetch(context.Background())
		require.NoError(t, err)
		require.NotNil(t, r.InternetReachable)
		assert.False(t, *r.InternetReachable)
		assert.Equal(t, domain.NetworkOffline, domain.DeriveNetworkState(r).Status)
	})

	t.Run("interface listing error propagates", func(t *testing.T) {
		p := NewProber("", nil)
		p.interfaces = func() ([]net.Interface, error) { return nil, errors.New("boom") }

		_, err := p.Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestGuessType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"wlp3s0", "wifi"},
		{"eth0", "ethernet"},
		{"enp0s31f6", "ethernet"},
		{"wwan0", "cellular"},
		{"tun0", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guessType([]net.Interface{{Name: tt.name}})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManual(t *testing.T) {
	m := NewManual(Offline())

	var got []domain.ConnectivityReport
	stop, err := m.Watch(func(r domain.ConnectivityReport) { got = append(got, r) })
	require.NoError(t, err)

	m.SetOnline(true)
	stop()
	m.SetOnline(false)

	require.Len(t, got, 1)
	assert.True(t, got[0].Connected)

	r, err := m.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, r.Connected)

	m.FailFetch(errors.New("no platform"))
	_, err = m.Fetch(context.Background())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	src, release, err := Open(KindOffline, "", nil)
	require.NoError(t, err)
	defer release()

	r, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, r.Connected)

	_, _, err = Open("carrier-pigeon", "", nil)
	assert.Error(t, err)
}
