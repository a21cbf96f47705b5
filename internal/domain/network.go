package domain

// NetworkStatus is the derived connectivity status
type NetworkStatus string

const (
	NetworkUnknown NetworkStatus = "unknown"
	NetworkOnline  NetworkStatus = "online"
	NetworkOffline NetworkStatus = "offline"
)

// ConnectivityReport is a raw observation from the platform connectivity source.
// InternetReachable is nil when the platform has not determined reachability.
type ConnectivityReport struct {
	Connected         bool
	InternetReachable *bool
	Type              string
}

// NetworkState is the monitor's view of connectivity
type NetworkState struct {
	Status            NetworkStatus
	Connected         bool
	InternetReachable *bool
	Type              string
}

// Online reports whether the state is usable for remote calls
func (s NetworkState) Online() bool {
	return s.Status == NetworkOnline
}

// UnknownNetworkState is the state before the first observation
func UnknownNetworkState() NetworkState {
	return NetworkState{Status: NetworkUnknown, Connected: true, Type: "unknown"}
}

// FailOpenNetworkState is assumed when the platform cannot be queried
func FailOpenNetworkState() NetworkState {
	return NetworkState{Status: NetworkOnline, Connected: true, InternetReachable: Ptr(true), Type: "unknown"}
}

// DeriveNetworkState computes the status for a platform report.
// Not connected, or connected with reachability explicitly false, is offline.
// Connected with reachability true or not yet known is online.
func DeriveNetworkState(r ConnectivityReport) NetworkState {
	status := NetworkOnline
	if !r.Connected || (r.InternetReachable != nil && !*r.InternetReachable) {
		status = NetworkOffline
	}

	kind := r.Type
	if kind == "" {
		kind = "unknown"
	}

	return NetworkState{
		Status:            status,
		Connected:         r.Connected,
		InternetReachable: r.InternetReachable,
		Type:              kind,
	}
}
