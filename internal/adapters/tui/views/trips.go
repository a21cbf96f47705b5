package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tripgenie/internal/adapters/tui/styles"
	"tripgenie/internal/application/commands"
	"tripgenie/internal/domain"
)

// TripsKeyMap defines key bindings for the trip list
type TripsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Open      key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Generate  key.Binding
	Copy      key.Binding
	Sync      key.Binding
	ForceSync key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var TripsKeys = TripsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "plan itinerary"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy ID"),
	),
	Sync: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync"),
	),
	ForceSync: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "force sync"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// TripsModel is the model for the trip list
type TripsModel struct {
	ViewState
	svc    commands.TripService
	trips  []domain.Trip
	pager  *Paginator
	loaded bool
}

// NewTripsModel creates a new trip list model
func NewTripsModel(svc commands.TripService) *TripsModel {
	return &TripsModel{svc: svc, pager: NewPaginator(10)}
}

// Init loads the trips
func (m *TripsModel) Init() tea.Cmd {
	return m.loadTrips
}

func (m *TripsModel) loadTrips() tea.Msg {
	trips, err := commands.NewListTripsCommand(m.svc).Execute(context.Background())
	if err != nil {
		return ErrMsg{err}
	}
	return tripsLoadedMsg{trips}
}

type tripsLoadedMsg struct {
	trips []domain.Trip
}

type tripChangedMsg struct {
	message string
}

// Update handles messages for the trip list
func (m *TripsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tripsLoadedMsg:
		m.SetTrips(msg.trips)
		return m, nil

	case tripChangedMsg:
		m.SetMessage(msg.message, false)
		return m, m.Reload()

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, TripsKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, TripsKeys.Up):
			m.pager.Up()
			return m, nil

		case key.Matches(msg, TripsKeys.Down):
			m.pager.Down()
			return m, nil

		case key.Matches(msg, TripsKeys.PageUp):
			m.pager.PageUp()
			return m, nil

		case key.Matches(msg, TripsKeys.PageDown):
			m.pager.PageDown()
			return m, nil

		case key.Matches(msg, TripsKeys.Open):
			if trip, ok := m.Selected(); ok {
				return m, func() tea.Msg { return SwitchToDetailMsg{Trip: trip} }
			}
			return m, nil

		case key.Matches(msg, TripsKeys.New):
			return m, func() tea.Msg { return SwitchToFormMsg{} }

		case key.Matches(msg, TripsKeys.Edit):
			if trip, ok := m.Selected(); ok {
				return m, func() tea.Msg { return SwitchToFormMsg{Trip: &trip} }
			}
			return m, nil

		case key.Matches(msg, TripsKeys.Delete):
			if trip, ok := m.Selected(); ok {
				return m, func() tea.Msg { return SwitchToDeleteMsg{Trip: trip} }
			}
			return m, nil

		case key.Matches(msg, TripsKeys.Generate):
			if trip, ok := m.Selected(); ok {
				return m, generate(m.svc, trip.ID)
			}
			return m, nil

		case key.Matches(msg, TripsKeys.Copy):
			if trip, ok := m.Selected(); ok {
				m.copyID(trip.ID)
			}
			return m, nil

		case key.Matches(msg, TripsKeys.Sync):
			return m, func() tea.Msg { return SyncRequestMsg{} }

		case key.Matches(msg, TripsKeys.ForceSync):
			return m, func() tea.Msg { return SyncRequestMsg{Force: true} }

		case key.Matches(msg, TripsKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, TripsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *TripsModel) copyID(id string) {
	if err := writeClipboard(id); err != nil {
		m.SetMessage("Could not copy: "+err.Error(), true)
		return
	}
	m.SetMessage("Copied "+id, false)
}

func generate(svc commands.TripService, id string) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewGenerateItineraryCommand(svc, id).Execute(context.Background())
		if err != nil {
			return ErrMsg{err}
		}
		return tripChangedMsg{result.Message}
	}
}

// SetSize updates the view dimensions and the number of rows per page
func (m *TripsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, subtitle, message, help line and padding
	m.pager.SetPageSize(height - 12)
}

// SetTrips replaces the listed trips, keeping the cursor in range
func (m *TripsModel) SetTrips(trips []domain.Trip) {
	m.trips = trips
	m.loaded = true
	m.pager.SetTotal(len(trips))
}

// Selected returns the trip under the cursor
func (m *TripsModel) Selected() (domain.Trip, bool) {
	if c := m.pager.Cursor(); c < len(m.trips) {
		return m.trips[c], true
	}
	return domain.Trip{}, false
}

// Reload refetches the trips
func (m *TripsModel) Reload() tea.Cmd {
	return m.loadTrips
}

// View renders the trip list
func (m *TripsModel) View() string {
	if !m.loaded {
		return styles.App.Render("Loading trips...")
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("TripGenie"))
	b.WriteString("\n")
	subtitle := fmt.Sprintf("%d trips", len(m.trips))
	if cur, pages := m.pager.Page(); pages > 1 {
		subtitle += fmt.Sprintf(" · page %d/%d", cur, pages)
	}
	b.WriteString(styles.Subtitle.Render(subtitle))
	b.WriteString("\n\n")

	if len(m.trips) == 0 {
		b.WriteString(styles.MutedText.Render("No trips yet. Press n to plan one."))
		b.WriteString("\n")
	}
	start, end := m.pager.Visible()
	for i := start; i < end; i++ {
		b.WriteString(m.renderTrip(m.trips[i], i == m.pager.Cursor()))
		b.WriteString("\n")
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpLine([][2]string{
		{"j/k", "navigate"},
		{"enter", "open"},
		{"n", "new"},
		{"s", "sync"},
		{"y", "copy ID"},
		{"?", "help"},
		{"q", "quit"},
	}))

	return styles.App.Render(b.String())
}

func (m *TripsModel) renderTrip(trip domain.Trip, selected bool) string {
	name := trip.Destination
	if trip.Country != "" {
		name += ", " + trip.Country
	}

	if selected {
		return styles.TripSelected.Render(fmt.Sprintf(" %s  %s  %s ", name, dateRange(trip), trip.Status))
	}

	status := lipgloss.NewStyle().Foreground(styles.StatusColor(trip.Status)).Render(string(trip.Status))
	line := fmt.Sprintf(" %s  %s  %s", styles.TripRow.Render(name), styles.TripDates.Render(dateRange(trip)), status)
	if trip.IsLocal() {
		line += "  " + styles.TripLocal.Render("not synced")
	}
	return line
}
