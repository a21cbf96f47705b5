package httpapi

import (
	"errors"
	"time"

	"tripgenie/internal/domain"
)

// WireTrip is a trip in the server's snake_case wire format
type WireTrip struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id,omitempty"`
	Destination  string         `json:"destination"`
	Country      string         `json:"country,omitempty"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Travelers    int            `json:"travelers"`
	TravelerType string         `json:"traveler_type,omitempty"`
	Vibes        []string       `json:"vibes,omitempty"`
	Budget       string         `json:"budget,omitempty"`
	Status       string         `json:"status"`
	CoverImage   string         `json:"cover_image,omitempty"`
	Itinerary    *WireItinerary `json:"itinerary,omitempty"`
	Hotel        *domain.Hotel  `json:"hotel,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
	UpdatedAt    string         `json:"updated_at,omitempty"`
}

// WireItinerary wraps the planned days
type WireItinerary struct {
	Days []domain.TripDay `json:"days"`
}

type tripEnvelope struct {
	Trip *WireTrip `json:"trip"`
}

var errMissingTrip = errors.New("response has no trip")

func (e tripEnvelope) trip() (domain.Trip, error) {
	if e.Trip == nil {
		return domain.Trip{}, errMissingTrip
	}
	return e.Trip.ToDomain(), nil
}

// ToDomain converts to the app model and fills defaults for omitted fields
func (a WireTrip) ToDomain() domain.Trip {
	t := domain.Trip{
		ID:           a.ID,
		Destination:  a.Destination,
		Country:      a.Country,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		Travelers:    a.Travelers,
		TravelerType: a.TravelerType,
		Vibes:        a.Vibes,
		Budget:       a.Budget,
		Hotel:        a.Hotel,
		CoverImage:   a.CoverImage,
		Status:       domain.TripStatus(a.Status),
		Days:         []domain.TripDay{},
	}
	if t.TravelerType == "" {
		t.TravelerType = domain.DefaultTravelerType
	}
	if t.Vibes == nil {
		t.Vibes = []string{}
	}
	if t.CoverImage == "" {
		t.CoverImage = domain.DefaultCoverImage
	}
	if a.Itinerary != nil && a.Itinerary.Days != nil {
		t.Days = a.Itinerary.Days
	}
	if a.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, a.CreatedAt); err == nil {
			t.CreatedAt = ts
		}
	}
	return t
}

// FromDomain converts a trip to its wire form
func FromDomain(t domain.Trip) WireTrip {
	a := WireTrip{
		ID:           t.ID,
		Destination:  t.Destination,
		Country:      t.Country,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		Travelers:    t.Travelers,
		TravelerType: t.TravelerType,
		Vibes:        t.Vibes,
		Budget:       t.Budget,
		Status:       string(t.Status),
		CoverImage:   t.CoverImage,
		Hotel:        t.Hotel,
	}
	if len(t.Days) > 0 {
		a.Itinerary = &WireItinerary{Days: t.Days}
	}
	if !t.CreatedAt.IsZero() {
		a.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return a
}
