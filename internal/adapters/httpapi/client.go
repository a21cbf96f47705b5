// Package httpapi is the client for the remote trips REST service.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripgenie/internal/domain"
	"tripgenie/internal/ports"
)

const (
	// DefaultTimeout bounds every trip CRUD request
	DefaultTimeout = 30 * time.Second

	// DefaultGenerateTimeout bounds itinerary generation, which runs the AI pipeline
	DefaultGenerateTimeout = 90 * time.Second
)

// Client implements ports.TripsAPI and ports.ItineraryGenerator over HTTP
type Client struct {
	baseURL         string
	creds           ports.Credentials
	http            *http.Client
	timeout         time.Duration
	generateTimeout time.Duration
	logger          *slog.Logger
}

// Ensure Client implements the remote ports
var (
	_ ports.TripsAPI           = (*Client)(nil)
	_ ports.ItineraryGenerator = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout for trip CRUD
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithGenerateTimeout sets the timeout for itinerary generation
func WithGenerateTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.generateTimeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service at baseURL
func New(baseURL string, creds ports.Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		creds:           creds,
		http:            &http.Client{},
		timeout:         DefaultTimeout,
		generateTimeout: DefaultGenerateTimeout,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "httpapi")
	return c
}

// ListTrips fetches every trip of the current user
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var resp struct {
		Trips []WireTrip `json:"trips"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/trips", nil, &resp, c.timeout); err != nil {
		return nil, err
	}
	trips := make([]domain.Trip, 0, len(resp.Trips))
	for _, t := range resp.Trips {
		trips = append(trips, t.ToDomain())
	}
	return trips, nil
}

// GetTrip fetches one trip
func (c *Client) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	var resp tripEnvelope
	if err := c.do(ctx, http.MethodGet, tripPath(id), nil, &resp, c.timeout); err != nil {
		return domain.Trip{}, err
	}
	return resp.trip()
}

// CreateTrip posts a new trip and returns it with the server-assigned ID
func (c *Client) CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	var resp tripEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/trips", in, &resp, c.timeout); err != nil {
		return domain.Trip{}, err
	}
	return resp.trip()
}

// UpdateTrip patches the fields set in in
func (c *Client) UpdateTrip(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error) {
	var resp tripEnvelope
	if err := c.do(ctx, http.MethodPatch, tripPath(id), in, &resp, c.timeout); err != nil {
		return domain.Trip{}, err
	}
	return resp.trip()
}

// DeleteTrip deletes a trip. A trip that is already gone counts as deleted.
func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, tripPath(id), nil, nil, c.timeout)
	if errors.Is(err, domain.ErrNotFound) {
		c.logger.Debug("trip already deleted on server", "trip_id", id)
		return nil
	}
	return err
}

// GenerateItinerary asks the server to plan the days of tripID
func (c *Client) GenerateItinerary(ctx context.Context, tripID string) (domain.Trip, error) {
	body := map[string]string{"trip_id": tripID}
	var resp tripEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/itinerary/generate", body, &resp, c.generateTimeout); err != nil {
		return domain.Trip{}, err
	}
	return resp.trip()
}

func tripPath(id string) string {
	return "/api/trips/" + url.PathEscape(id)
}

// do sends one request and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, method, path string, body, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		headers, err := c.creds.AuthHeaders(ctx)
		if err != nil {
			return fmt.Errorf("failed to get auth headers: %w", err)
		}
		for k, vs := range headers {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: request timed out after %s: %w", method, path, timeout, err)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func remoteError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)
	return &domain.RemoteError{Status: resp.StatusCode, Message: body.Error}
}
