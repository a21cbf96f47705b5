package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tripgenie/internal/adapters/tui/styles"
	"tripgenie/internal/application/commands"
	"tripgenie/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// DeleteModel asks before deleting a trip
type DeleteModel struct {
	ViewState
	svc  commands.TripService
	trip domain.Trip
	keys ConfirmKeyMap
}

// NewDeleteModel creates a new delete confirmation model
func NewDeleteModel(svc commands.TripService) *DeleteModel {
	return &DeleteModel{svc: svc, keys: DefaultConfirmKeys}
}

// SetTrip sets the trip to delete
func (m *DeleteModel) SetTrip(trip domain.Trip) {
	m.trip = trip
	m.ClearMessage()
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, func() tea.Msg { return SwitchToListMsg{} }
		case key.Matches(msg, m.keys.Confirm):
			return m, m.doDelete()
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Cmd {
	svc, id := m.svc, m.trip.ID
	return func() tea.Msg {
		result, err := commands.NewDeleteTripCommand(svc, id).Execute(context.Background())
		if err != nil {
			return ErrMsg{err}
		}
		return SwitchToListMsg{Reload: true, Message: result.Message}
	}
}

// View renders the confirmation
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete trip"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Delete:"))
	b.WriteString("\n  ")
	b.WriteString(m.trip.Destination)
	b.WriteString(" ")
	b.WriteString(styles.MutedText.Render(m.trip.ID))
	b.WriteString("\n\n")

	if m.trip.IsLocal() {
		b.WriteString(styles.MutedText.Render("  This trip never reached the server; it is removed locally."))
	} else {
		b.WriteString(styles.MutedText.Render("  Offline, the delete is queued until the next sync."))
	}
	b.WriteString("\n\n")

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}

	b.WriteString("Are you sure? ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))

	return styles.App.Render(b.String())
}
