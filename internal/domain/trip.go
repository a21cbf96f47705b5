package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// DefaultCoverImage is used when the server returns a trip without a cover image
const DefaultCoverImage = "https://images.unsplash.com/photo-1488646953014-85cb44e25828"

// DefaultTravelerType is assumed when the server omits traveler_type
const DefaultTravelerType = "solo"

// TripStatus is the lifecycle state of a trip
type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusPlanned   TripStatus = "planned"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

// Valid reports whether s is one of the known lifecycle states
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusDraft, TripStatusPlanned, TripStatusActive, TripStatusCompleted:
		return true
	}
	return false
}

// Activity is a single entry in a day plan
type Activity struct {
	ID               string  `json:"id"`
	Time             string  `json:"time"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Location         string  `json:"location"`
	Duration         string  `json:"duration"`
	Type             string  `json:"type"` // activity, restaurant, transport, accommodation, attraction, experience
	Price            string  `json:"price,omitempty"`
	BookingURL       string  `json:"booking_url,omitempty"`
	Image            string  `json:"image,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	ReviewCount      int     `json:"review_count,omitempty"`
	FreeCancellation bool    `json:"free_cancellation,omitempty"`
}

// TripDay is one day of an itinerary
type TripDay struct {
	Date       string     `json:"date"`
	DayNumber  int        `json:"day_number"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

// HotelLocation pins a hotel on the map
type HotelLocation struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Neighborhood string  `json:"neighborhood,omitempty"`
}

// Hotel is the accommodation picked for a trip
type Hotel struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PricePerNight float64       `json:"price_per_night"`
	TotalPrice    float64       `json:"total_price"`
	Rating        float64       `json:"rating"`
	ReviewCount   int           `json:"review_count"`
	Amenities     []string      `json:"amenities"`
	Images        []string      `json:"images"`
	BookingURL    string        `json:"booking_url"`
	Location      HotelLocation `json:"location"`
}

// Trip is a travel itinerary record.
// IDs starting with LocalIDPrefix were generated on this device and have not
// been acknowledged by the server yet.
type Trip struct {
	ID           string     `json:"id"`
	Destination  string     `json:"destination"`
	Country      string     `json:"country"`
	StartDate    string     `json:"start_date"` // YYYY-MM-DD
	EndDate      string     `json:"end_date"`   // YYYY-MM-DD
	Travelers    int        `json:"travelers"`
	TravelerType string     `json:"traveler_type"`
	Vibes        []string   `json:"vibes"`
	Budget       string     `json:"budget,omitempty"`
	Days         []TripDay  `json:"days"`
	Hotel        *Hotel     `json:"hotel,omitempty"`
	CoverImage   string     `json:"cover_image"`
	CreatedAt    time.Time  `json:"created_at"`
	Status       TripStatus `json:"status"`
}

// IsLocal reports whether the trip has never been acknowledged by the server
func (t Trip) IsLocal() bool {
	return IsLocalID(t.ID)
}

// TripInput carries the user-editable fields of a trip.
// Every field is optional so the same type serves as a full create payload
// and as a partial update.
type TripInput struct {
	Destination  *string     `json:"destination,omitempty"`
	Country      *string     `json:"country,omitempty"`
	StartDate    *string     `json:"start_date,omitempty"`
	EndDate      *string     `json:"end_date,omitempty"`
	Travelers    *int        `json:"travelers,omitempty"`
	TravelerType *string     `json:"traveler_type,omitempty"`
	Vibes        []string    `json:"vibes,omitempty"`
	Budget       *string     `json:"budget,omitempty"`
	Status       *TripStatus `json:"status,omitempty"`
}

// MarshalJSON keeps an empty, non-nil Vibes as "vibes": [] so that clearing
// the vibes survives the outbox and reaches the server
func (in TripInput) MarshalJSON() ([]byte, error) {
	type fields TripInput
	out := struct {
		fields
		Vibes *[]string `json:"vibes,omitempty"`
	}{fields: fields(in)}
	if in.Vibes != nil {
		out.Vibes = &in.Vibes
	}
	return json.Marshal(out)
}

// InputFromTrip returns a full create payload for trip
func InputFromTrip(trip Trip) TripInput {
	in := TripInput{
		Destination:  Ptr(trip.Destination),
		Country:      Ptr(trip.Country),
		StartDate:    Ptr(trip.StartDate),
		EndDate:      Ptr(trip.EndDate),
		Travelers:    Ptr(trip.Travelers),
		TravelerType: Ptr(trip.TravelerType),
		Vibes:        slices.Clone(trip.Vibes),
		Status:       Ptr(trip.Status),
	}
	if trip.Budget != "" {
		in.Budget = Ptr(trip.Budget)
	}
	return in
}

// IsEmpty reports whether no field is set
func (in TripInput) IsEmpty() bool {
	return in.Destination == nil && in.Country == nil && in.StartDate == nil &&
		in.EndDate == nil && in.Travelers == nil && in.TravelerType == nil &&
		in.Vibes == nil && in.Budget == nil && in.Status == nil
}

// Merge returns in overlaid with every field set in next (last field wins)
func (in TripInput) Merge(next TripInput) TripInput {
	out := in
	if next.Destination != nil {
		out.Destination = next.Destination
	}
	if next.Country != nil {
		out.Country = next.Country
	}
	if next.StartDate != nil {
		out.StartDate = next.StartDate
	}
	if next.EndDate != nil {
		out.EndDate = next.EndDate
	}
	if next.Travelers != nil {
		out.Travelers = next.Travelers
	}
	if next.TravelerType != nil {
		out.TravelerType = next.TravelerType
	}
	if next.Vibes != nil {
		out.Vibes = slices.Clone(next.Vibes)
	}
	if next.Budget != nil {
		out.Budget = next.Budget
	}
	if next.Status != nil {
		out.Status = next.Status
	}
	return out
}

// Apply returns trip with every field set in the input copied over it
func (in TripInput) Apply(trip Trip) Trip {
	if in.Destination != nil {
		trip.Destination = *in.Destination
	}
	if in.Country != nil {
		trip.Country = *in.Country
	}
	if in.StartDate != nil {
		trip.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		trip.EndDate = *in.EndDate
	}
	if in.Travelers != nil {
		trip.Travelers = *in.Travelers
	}
	if in.TravelerType != nil {
		trip.TravelerType = *in.TravelerType
	}
	if in.Vibes != nil {
		trip.Vibes = slices.Clone(in.Vibes)
	}
	if in.Budget != nil {
		trip.Budget = *in.Budget
	}
	if in.Status != nil {
		trip.Status = *in.Status
	}
	return trip
}

// NewDraftTrip builds an unsynced trip from a create payload
func NewDraftTrip(id string, in TripInput, now time.Time) Trip {
	trip := in.Apply(Trip{
		ID:         id,
		Vibes:      []string{},
		Days:       []TripDay{},
		CoverImage: DefaultCoverImage,
		CreatedAt:  now.UTC(),
		Status:     TripStatusDraft,
	})
	if trip.TravelerType == "" {
		trip.TravelerType = DefaultTravelerType
	}
	return trip
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
