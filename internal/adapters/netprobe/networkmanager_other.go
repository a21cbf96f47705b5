//go:build !linux

package netprobe

import (
	"context"
	"errors"
	"log/slog"

	"tripgenie/internal/domain"
)

// ErrUnsupported is returned where NetworkManager is not available
var ErrUnsupported = errors.New("networkmanager: unsupported platform")

// NetworkManager is only available on linux
type NetworkManager struct{}

// NewNetworkManager always fails on this platform
func NewNetworkManager(logger *slog.Logger) (*NetworkManager, error) {
	return nil, ErrUnsupported
}

func (n *NetworkManager) Fetch(ctx context.Context) (domain.ConnectivityReport, error) {
	return domain.ConnectivityReport{}, ErrUnsupported
}

func (n *NetworkManager) Watch(fn func(domain.ConnectivityReport)) (func(), error) {
	return nil, ErrUnsupported
}

func (n *NetworkManager) Close() error { return nil }
