package tripstub

import (
	"fmt"
	"time"

	"tripgenie/internal/domain"
)

const dateLayout = "2006-01-02"

// maxPlannedDays caps generated itineraries
const maxPlannedDays = 30

// planDays produces a canned itinerary, one day per date of the trip
func planDays(t domain.Trip) []domain.TripDay {
	start, err := time.Parse(dateLayout, t.StartDate)
	if err != nil {
		return []domain.TripDay{}
	}
	end, err := time.Parse(dateLayout, t.EndDate)
	if err != nil || end.Before(start) {
		end = start
	}

	var days []domain.TripDay
	for d, n := start, 1; !d.After(end) && n <= maxPlannedDays; d, n = d.AddDate(0, 0, 1), n+1 {
		days = append(days, domain.TripDay{
			Date:      d.Format(dateLayout),
			DayNumber: n,
			Theme:     fmt.Sprintf("Day %d in %s", n, t.Destination),
			Activities: []domain.Activity{
				{
					ID:       fmt.Sprintf("act-%d-1", n),
					Time:     "09:00",
					Title:    "Morning walk",
					Location: t.Destination,
					Duration: "2h",
					Type:     "activity",
				},
				{
					ID:       fmt.Sprintf("act-%d-2", n),
					Time:     "13:00",
					Title:    "Local lunch",
					Location: t.Destination,
					Duration: "1h30m",
					Type:     "restaurant",
				},
			},
		})
	}
	return days
}
