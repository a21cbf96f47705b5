// Package tripstub is an in-memory stand-in for the remote trips service.
// It backs local development (cmd/tripstub) and the HTTP tests.
package tripstub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"tripgenie/internal/adapters/httpapi"
	"tripgenie/internal/domain"
)

// Options configures a Server
type Options struct {
	// Token is the bearer token clients must send. Empty disables auth.
	Token  string
	Logger *slog.Logger
	Now    func() time.Time
}

// fault is a scripted failure for the next matching requests
type fault struct {
	method string
	status int
	left   int
}

// Server is the stub trips service
type Server struct {
	token  string
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	trips    []domain.Trip
	faults   []*fault
	delay    time.Duration
	requests map[string]int
}

// New creates an empty stub
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		token:    opts.Token,
		logger:   opts.Logger.With("component", "tripstub"),
		now:      opts.Now,
		requests: make(map[string]int),
	}
}

// Handler returns the chi router serving the API
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(NewSlogLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.track)
		r.Use(requireBearer(s.token))
		r.Use(s.inject)

		r.Get("/trips", s.listTrips)
		r.Post("/trips", s.createTrip)
		r.Get("/trips/{id}", s.getTrip)
		r.Patch("/trips/{id}", s.updateTrip)
		r.Delete("/trips/{id}", s.deleteTrip)
		r.Post("/itinerary/generate", s.generateItinerary)
	})
	return r
}

// Seed adds trips as if they had been created earlier
func (s *Server) Seed(trips ...domain.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = append(s.trips, trips...)
}

// Trips returns a copy of the stored trips
func (s *Server) Trips() []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.trips)
}

// Fail makes the next times requests with method answer status.
// An empty method matches every request.
func (s *Server) Fail(method string, status, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, &fault{method: method, status: status, left: times})
}

// SetDelay holds every API response for d
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests returns how many API requests with method were received.
// An empty method counts every request.
func (s *Server) Requests(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if method == "" {
		total := 0
		for _, n := range s.requests {
			total += n
		}
		return total
	}
	return s.requests[method]
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method]++
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var status int
		for _, f := range s.faults {
			if f.left > 0 && (f.method == "" || f.method == r.Method) {
				f.left--
				status = f.status
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, fmt.Sprintf("injected failure %d", status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]httpapi.WireTrip, 0, len(s.trips))
	for _, t := range s.trips {
		out = append(out, httpapi.FromDomain(t))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"trips": out})
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.FindTrip(s.trips, chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trip": httpapi.FromDomain(s.trips[i])})
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var in domain.TripInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Destination == nil || *in.Destination == "" {
		writeError(w, http.StatusBadRequest, "destination is required")
		return
	}

	trip := in.Apply(domain.Trip{
		ID:        uuid.NewString(),
		Status:    domain.TripStatusDraft,
		Travelers: 2,
		CreatedAt: s.now().UTC(),
	})

	s.mu.Lock()
	s.trips = append(s.trips, trip)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"trip": httpapi.FromDomain(trip)})
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	var in domain.TripInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.FindTrip(s.trips, chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	s.trips[i] = in.Apply(s.trips[i])
	writeJSON(w, http.StatusOK, map[string]any{"trip": httpapi.FromDomain(s.trips[i])})
}

func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.FindTrip(s.trips, chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	s.trips = slices.Delete(s.trips, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) generateItinerary(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TripID    string `json:"trip_id"`
		TripIDAlt string `json:"tripId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	id := body.TripID
	if id == "" {
		id = body.TripIDAlt
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.FindTrip(s.trips, id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "trip not found")
		return
	}
	s.trips[i].Days = planDays(s.trips[i])
	s.trips[i].Status = domain.TripStatusPlanned
	writeJSON(w, http.StatusOK, map[string]any{"trip": httpapi.FromDomain(s.trips[i])})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
