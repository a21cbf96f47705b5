package netprobe

import (
	"fmt"
	"log/slog"

	"tripgenie/internal/ports"
)

// Source kinds accepted by Open
const (
	KindAuto           = "auto"
	KindNetworkManager = "networkmanager"
	KindProbe          = "probe"
	KindOffline        = "offline"
)

// Open returns the connectivity source for kind together with a release func.
// auto prefers NetworkManager and falls back to the interface prober.
func Open(kind, probeURL string, logger *slog.Logger) (ports.ConnectivitySource, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() {}

	switch kind {
	case KindOffline:
		return NewManual(Offline()), noop, nil
	case KindProbe:
		return NewProber(probeURL, logger), noop, nil
	case KindNetworkManager:
		nm, err := NewNetworkManager(logger)
		if err != nil {
			return nil, nil, err
		}
		return nm, func() { nm.Close() }, nil
	case KindAuto, "":
		nm, err := NewNetworkManager(logger)
		if err == nil {
			return nm, func() { nm.Close() }, nil
		}
		logger.Debug("networkmanager unavailable, using prober", "error", err)
		return NewProber(probeURL, logger), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown network source %q", kind)
}
