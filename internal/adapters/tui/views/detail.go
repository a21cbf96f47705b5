package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tripgenie/internal/adapters/tui/styles"
	"tripgenie/internal/application/commands"
	"tripgenie/internal/domain"
)

// DetailKeyMap defines key bindings for the trip detail view
type DetailKeyMap struct {
	Back     key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Generate key.Binding
	Copy     key.Binding
}

var DetailKeys = DetailKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "h", "left", "q"),
		key.WithHelp("esc", "back"),
	),
	Edit:     TripsKeys.Edit,
	Delete:   TripsKeys.Delete,
	Generate: TripsKeys.Generate,
	Copy:     TripsKeys.Copy,
}

// DetailModel shows one trip with its itinerary
type DetailModel struct {
	ViewState
	svc  commands.TripService
	trip domain.Trip
}

// NewDetailModel creates a new detail view model
func NewDetailModel(svc commands.TripService) *DetailModel {
	return &DetailModel{svc: svc}
}

// SetTrip sets the trip to show
func (m *DetailModel) SetTrip(trip domain.Trip) {
	m.trip = trip
	m.ClearMessage()
}

// Trip returns the trip being shown
func (m *DetailModel) Trip() domain.Trip {
	return m.trip
}

// Init initializes the detail view
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

type itineraryMsg struct {
	trip    domain.Trip
	message string
}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case itineraryMsg:
		m.trip = msg.trip
		m.SetMessage(msg.message, false)
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DetailKeys.Back):
			return m, func() tea.Msg { return SwitchToListMsg{} }
		case key.Matches(msg, DetailKeys.Edit):
			trip := m.trip
			return m, func() tea.Msg { return SwitchToFormMsg{Trip: &trip} }
		case key.Matches(msg, DetailKeys.Delete):
			trip := m.trip
			return m, func() tea.Msg { return SwitchToDeleteMsg{Trip: trip} }
		case key.Matches(msg, DetailKeys.Generate):
			m.SetMessage("Planning itinerary...", false)
			return m, m.generate()
		case key.Matches(msg, DetailKeys.Copy):
			m.copyID()
			return m, nil
		}
	}

	return m, nil
}

func (m *DetailModel) generate() tea.Cmd {
	svc, id := m.svc, m.trip.ID
	return func() tea.Msg {
		result, err := commands.NewGenerateItineraryCommand(svc, id).Execute(context.Background())
		if err != nil {
			return ErrMsg{err}
		}
		return itineraryMsg{trip: result.Trip, message: result.Message}
	}
}

func (m *DetailModel) copyID() {
	if err := writeClipboard(m.trip.ID); err != nil {
		m.SetMessage("Could not copy: "+err.Error(), true)
		return
	}
	m.SetMessage("Copied "+m.trip.ID, false)
}

// View renders the trip
func (m *DetailModel) View() string {
	t := m.trip
	var b strings.Builder

	title := t.Destination
	if t.Country != "" {
		title += ", " + t.Country
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s  %s", dateRange(t), t.Status)))
	b.WriteString("\n\n")

	b.WriteString(field("ID", t.ID))
	if t.IsLocal() {
		b.WriteString(styles.TripLocal.Render("  not synced yet"))
		b.WriteString("\n")
	}
	b.WriteString(field("Travelers", fmt.Sprintf("%d %s", t.Travelers, t.TravelerType)))
	if len(t.Vibes) > 0 {
		b.WriteString(field("Vibes", strings.Join(t.Vibes, ", ")))
	}
	if t.Budget != "" {
		b.WriteString(field("Budget", t.Budget))
	}
	if t.Hotel != nil {
		b.WriteString(field("Hotel", t.Hotel.Name))
	}
	b.WriteString("\n")

	if len(t.Days) == 0 {
		b.WriteString(styles.MutedText.Render("No itinerary yet. Press g to plan one."))
		b.WriteString("\n")
	}
	for _, d := range t.Days {
		b.WriteString(styles.InputLabel.Render(fmt.Sprintf("Day %d · %s", d.DayNumber, d.Date)))
		if d.Theme != "" {
			b.WriteString(styles.MutedText.Render("  " + d.Theme))
		}
		b.WriteString("\n")
		for _, a := range d.Activities {
			b.WriteString(fmt.Sprintf("  %s  %s\n", styles.TripDates.Render(a.Time), a.Title))
		}
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpLine([][2]string{
		{"esc", "back"},
		{"e", "edit"},
		{"g", "plan itinerary"},
		{"d", "delete"},
		{"y", "copy ID"},
	}))

	return styles.App.Render(b.String())
}

func field(label, value string) string {
	return styles.InputLabel.Render(padRight(label, 11)) + value + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
