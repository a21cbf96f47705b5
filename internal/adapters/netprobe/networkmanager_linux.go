//go:build linux

package netprobe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
)

const (
	nmBusName   = "org.freedesktop.NetworkManager"
	nmPath      = dbus.ObjectPath("/org/freedesktop/NetworkManager")
	nmInterface = "org.freedesktop.NetworkManager"

	propertiesInterface = "org.freedesktop.DBus.Properties"
)

// NetworkManager states and connectivity values from the NM D-Bus API
const (
	nmStateConnectedLocal = 50

	nmConnectivityUnknown = 0
	nmConnectivityFull    = 4
)

// NetworkManager reads connectivity from NetworkManager over the system bus
type NetworkManager struct {
	logger *slog.Logger

	mu   sync.Mutex
	conn *dbus.Conn
}

// Ensure NetworkManager implements ConnectivitySource
var _ ports.ConnectivitySource = (*NetworkManager)(nil)

// NewNetworkManager connects to the system bus and checks that NetworkManager answers
func NewNetworkManager(logger *slog.Logger) (*NetworkManager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	nm := &NetworkManager{conn: conn, logger: logger.With("component", "netprobe", "source", "networkmanager")}
	if _, err := nm.Fetch(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}
	return nm, nil
}

// Fetch reads State, Connectivity and PrimaryConnectionType
func (n *NetworkManager) Fetch(ctx context.Context) (domain.ConnectivityReport, error) {
	obj := n.conn.Object(nmBusName, nmPath)

	var props map[string]dbus.Variant
	err := obj.CallWithContext(ctx, propertiesInterface+".GetAll", 0, nmInterface).Store(&props)
	if err != nil {
		return domain.ConnectivityReport{}, fmt.Errorf("failed to read NetworkManager properties: %w", err)
	}
	return reportFromProperties(props), nil
}

// Watch subscribes to PropertiesChanged and re-reads the full state on every signal
func (n *NetworkManager) Watch(fn func(domain.ConnectivityReport)) (func(), error) {
	match := []dbus.MatchOption{
		dbus.WithMatchObjectPath(nmPath),
		dbus.WithMatchInterface(propertiesInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	}
	if err := n.conn.AddMatchSignal(match...); err != nil {
		return nil, fmt.Errorf("failed to watch NetworkManager: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	n.conn.Signal(signals)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				if sig.Path != nmPath {
					continue
				}
				report, err := n.Fetch(ctx)
				if err != nil {
					n.logger.Warn("failed to refresh after signal", "error", err)
					continue
				}
				fn(report)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			n.conn.RemoveSignal(signals)
			if err := n.conn.RemoveMatchSignal(match...); err != nil {
				n.logger.Debug("failed to remove match", "error", err)
			}
		})
	}, nil
}

// Close releases the bus connection
func (n *NetworkManager) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

func reportFromProperties(props map[string]dbus.Variant) domain.ConnectivityReport {
	var state, connectivity uint32
	var primary string

	if v, ok := props["State"]; ok {
		state, _ = v.Value().(uint32)
	}
	if v, ok := props["Connectivity"]; ok {
		connectivity, _ = v.Value().(uint32)
	}
	if v, ok := props["PrimaryConnectionType"]; ok {
		primary, _ = v.Value().(string)
	}

	report := domain.ConnectivityReport{
		Connected: state >= nmStateConnectedLocal,
		Type:      connectionType(primary),
	}
	if !report.Connected {
		report.Type = "none"
	}
	if connectivity != nmConnectivityUnknown {
		reachable := connectivity == nmConnectivityFull
		report.InternetReachable = &reachable
	}
	return report
}

func connectionType(primary string) string {
	switch primary {
	case "802-11-wireless", "wifi-p2p":
		return "wifi"
	case "802-3-ethernet":
		return "ethernet"
	case "gsm", "cdma":
		return "cellular"
	case "bluetooth":
		return "bluetooth"
	case "vpn", "wireguard":
		return "vpn"
	}
	return "unknown"
}
