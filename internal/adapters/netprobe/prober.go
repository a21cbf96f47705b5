// Package netprobe provides connectivity sources for the network monitor.
package netprobe

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
)

// DefaultPollInterval is how often Prober re-checks connectivity while watched
const DefaultPollInterval = 10 * time.Second

// Prober derives connectivity from host interfaces and an optional HTTP probe
type Prober struct {
	ProbeURL     string
	PollInterval time.Duration
	Timeout      time.Duration

	client     *http.Client
	logger     *slog.Logger
	interfaces func() ([]net.Interface, error)
}

// Ensure Prober implements ConnectivitySource
var _ ports.ConnectivitySource = (*Prober)(nil)

// NewProber creates a prober. An empty probeURL leaves reachability unknown.
func NewProber(probeURL string, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		ProbeURL:     probeURL,
		PollInterval: DefaultPollInterval,
		Timeout:      5 * time.Second,
		client:       &http.Client{},
		logger:       logger.With("component", "netprobe"),
		interfaces:   net.Interfaces,
	}
}

// Fetch inspects interfaces and, when connected, probes ProbeURL
func (p *Prober) Fetch(ctx context.Context) (domain.ConnectivityReport, error) {
	ifaces, err := p.interfaces()
	if err != nil {
		return domain.ConnectivityReport{}, fmt.Errorf("failed to list interfaces: %w", err)
	}

	var up []net.Interface
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		up = append(up, iface)
	}

	report := domain.ConnectivityReport{
		Connected: len(up) > 0,
		Type:      guessType(up),
	}
	if !report.Connected {
		report.Type = "none"
		return report, nil
	}

	if p.ProbeURL != "" {
		reachable := p.probe(ctx)
		report.InternetReachable = &reachable
	}
	return report, nil
}

func (p *Prober) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.ProbeURL, nil)
	if err != nil {
		p.logger.Warn("invalid probe url", "url", p.ProbeURL, "error", err)
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("probe failed", "url", p.ProbeURL, "error", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// Watch polls every PollInterval and calls fn when the report changes
func (p *Prober) Watch(fn func(domain.ConnectivityReport)) (func(), error) {
	interval := p.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	last, err := p.Fetch(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				next, err := p.Fetch(ctx)
				if err != nil {
					p.logger.Warn("connectivity poll failed", "error", err)
					continue
				}
				if sameReport(last, next) {
					continue
				}
				last = next
				fn(next)
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}, nil
}

func sameReport(a, b domain.ConnectivityReport) bool {
	if a.Connected != b.Connected || a.Type != b.Type {
		return false
	}
	if (a.InternetReachable == nil) != (b.InternetReachable == nil) {
		return false
	}
	return a.InternetReachable == nil || *a.InternetReachable == *b.InternetReachable
}

// guessType maps interface names onto a connection type
func guessType(ifaces []net.Interface) string {
	for _, iface := range ifaces {
		name := strings.ToLower(iface.Name)
		switch {
		case strings.HasPrefix(name, "wl"), strings.HasPrefix(name, "wifi"), strings.HasPrefix(name, "ath"):
			return "wifi"
		case strings.HasPrefix(name, "wwan"), strings.HasPrefix(name, "rmnet"), strings.HasPrefix(name, "ppp"):
			return "cellular"
		case strings.HasPrefix(name, "en"), strings.HasPrefix(name, "eth"):
			return "ethernet"
		}
	}
	return "unknown"
}
