package domain

import (
	"errors"
	"testing"
)

func TestMergeTrips(t *testing.T) {
	t.Run("server wins and unsynced local trips survive", func(t *testing.T) {
		local := []Trip{
			{ID: "local_A", Destination: "Oslo"},
			{ID: "B", Destination: "Old Berlin"},
		}
		server := []Trip{
			{ID: "B", Destination: "Berlin"},
			{ID: "C", Destination: "Cairo"},
		}

		merged := MergeTrips(local, server)

		if len(merged) != 3 {
			t.Fatalf("expected 3 trips, got %d: %+v", len(merged), merged)
		}
		if i := FindTrip(merged, "B"); i < 0 || merged[i].Destination != "Berlin" {
			t.Errorf("expected server version of B, got %+v", merged)
		}
		if FindTrip(merged, "C") < 0 {
			t.Error("expected C from server")
		}
		if FindTrip(merged, "local_A") < 0 {
			t.Error("expected unsynced local_A to be preserved")
		}
	})

	t.Run("server-assigned ids missing from pull are dropped", func(t *testing.T) {
		local := []Trip{{ID: "gone"}, {ID: "kept"}}
		server := []Trip{{ID: "kept"}}

		merged := MergeTrips(local, server)

		if FindTrip(merged, "gone") >= 0 {
			t.Error("expected trip deleted on the server to be dropped")
		}
		if len(merged) != 1 {
			t.Errorf("expected 1 trip, got %d", len(merged))
		}
	})

	t.Run("duplicate server ids collapse", func(t *testing.T) {
		server := []Trip{{ID: "A", Destination: "first"}, {ID: "A", Destination: "second"}}

		merged := MergeTrips(nil, server)

		if len(merged) != 1 || merged[0].Destination != "first" {
			t.Errorf("unexpected merge result: %+v", merged)
		}
	})
}

func TestDeriveNetworkState(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name   string
		report ConnectivityReport
		want   NetworkStatus
	}{
		{"disconnected", ConnectivityReport{Connected: false}, NetworkOffline},
		{"disconnected but reachable flag set", ConnectivityReport{Connected: false, InternetReachable: &yes}, NetworkOffline},
		{"connected and unreachable", ConnectivityReport{Connected: true, InternetReachable: &no}, NetworkOffline},
		{"connected and reachable", ConnectivityReport{Connected: true, InternetReachable: &yes}, NetworkOnline},
		{"connected and reachability unknown", ConnectivityReport{Connected: true}, NetworkOnline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveNetworkState(tt.report)
			if got.Status != tt.want {
				t.Errorf("status = %s, want %s", got.Status, tt.want)
			}
		})
	}
}

func TestRemoteErrorIs(t *testing.T) {
	var err error = &RemoteError{Status: 404}
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}
	err = &RemoteError{Status: 401, Message: "unauthorized"}
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Error("401 should match ErrNotAuthenticated")
	}
	if err.Error() != "unauthorized" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
