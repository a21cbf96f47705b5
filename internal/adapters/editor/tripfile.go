package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"tripgenie/internal/domain"
)

// tripDocument is the user-editable part of a trip as written to disk
type tripDocument struct {
	Destination  string            `toml:"destination"`
	Country      string            `toml:"country"`
	StartDate    string            `toml:"start_date"`
	EndDate      string            `toml:"end_date"`
	Travelers    int               `toml:"travelers"`
	TravelerType string            `toml:"traveler_type"`
	Vibes        []string          `toml:"vibes"`
	Budget       string            `toml:"budget"`
	Status       domain.TripStatus `toml:"status"`
}

func documentFrom(t domain.Trip) tripDocument {
	vibes := t.Vibes
	if vibes == nil {
		vibes = []string{}
	}
	return tripDocument{
		Destination:  t.Destination,
		Country:      t.Country,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		Travelers:    t.Travelers,
		TravelerType: t.TravelerType,
		Vibes:        vibes,
		Budget:       t.Budget,
		Status:       t.Status,
	}
}

// WriteTrip writes the editable fields of t as TOML
func WriteTrip(w io.Writer, t domain.Trip) error {
	if _, err := fmt.Fprintf(w, "# Trip %s\n# Dates are YYYY-MM-DD. Status is one of draft, planned, active, completed.\n\n", t.ID); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(documentFrom(t))
}

// ReadChanges parses an edited document and returns the fields that differ
// from original
func ReadChanges(r io.Reader, original domain.Trip) (domain.TripInput, error) {
	var doc tripDocument
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return domain.TripInput{}, fmt.Errorf("failed to parse trip: %w", err)
	}

	before := documentFrom(original)
	var in domain.TripInput
	if doc.Destination != before.Destination {
		in.Destination = domain.Ptr(doc.Destination)
	}
	if doc.Country != before.Country {
		in.Country = domain.Ptr(doc.Country)
	}
	if doc.StartDate != before.StartDate {
		in.StartDate = domain.Ptr(doc.StartDate)
	}
	if doc.EndDate != before.EndDate {
		in.EndDate = domain.Ptr(doc.EndDate)
	}
	if doc.Travelers != before.Travelers {
		in.Travelers = domain.Ptr(doc.Travelers)
	}
	if doc.TravelerType != before.TravelerType {
		in.TravelerType = domain.Ptr(doc.TravelerType)
	}
	if doc.Vibes != nil && !slices.Equal(doc.Vibes, before.Vibes) {
		in.Vibes = doc.Vibes
	}
	if doc.Budget != before.Budget {
		in.Budget = domain.Ptr(doc.Budget)
	}
	if doc.Status != before.Status {
		in.Status = domain.Ptr(doc.Status)
	}
	return in, nil
}

// EditTrip opens trip in the editor as a temporary TOML file and returns
// the changed fields. An empty input means nothing changed.
func (o *Opener) EditTrip(ctx context.Context, trip domain.Trip) (domain.TripInput, error) {
	f, err := os.CreateTemp("", "tripgenie-*.toml")
	if err != nil {
		return domain.TripInput{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if err := WriteTrip(f, trip); err != nil {
		f.Close()
		return domain.TripInput{}, fmt.Errorf("failed to write trip: %w", err)
	}
	if err := f.Close(); err != nil {
		return domain.TripInput{}, err
	}

	if err := o.Open(ctx, path); err != nil {
		return domain.TripInput{}, err
	}

	edited, err := os.Open(path)
	if err != nil {
		return domain.TripInput{}, err
	}
	defer edited.Close()
	return ReadChanges(edited, trip)
}
