package ports

import (
	"context"

	"tripgenie/internal/domain"
)

// ConnectivitySource abstracts the platform's network-change event source
type ConnectivitySource interface {
	// Fetch queries the current connectivity once
	Fetch(ctx context.Context) (domain.ConnectivityReport, error)

	// Watch delivers a report on every connectivity change until stop is called
	Watch(fn func(domain.ConnectivityReport)) (stop func(), err error)
}
