package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tripgenie/internal/adapters/tui/styles"
)

var helpClose = key.NewBinding(
	key.WithKeys("esc", "q", "?"),
	key.WithHelp("esc/q/?", "close"),
)

// HelpModel shows the key reference
type HelpModel struct {
	ViewState
}

func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update returns to the trip list on any close key
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, helpClose) {
			return m, func() tea.Msg { return SwitchToListMsg{} }
		}
	}
	return m, nil
}

type helpSection struct {
	title string
	keys  []key.Binding
	notes []string
}

var helpSections = []helpSection{
	{
		title: "Trips",
		keys: []key.Binding{
			TripsKeys.Up, TripsKeys.Down, TripsKeys.PageUp, TripsKeys.PageDown,
			TripsKeys.Open, TripsKeys.New, TripsKeys.Edit, TripsKeys.Delete,
			TripsKeys.Generate, TripsKeys.Copy,
		},
	},
	{
		title: "Sync",
		keys:  []key.Binding{TripsKeys.Sync, TripsKeys.ForceSync, TripsKeys.Reload},
		notes: []string{
			"Changes made offline are queued and pushed when the network returns.",
			"A normal sync runs at most once every 5 seconds; force skips the wait.",
		},
	},
	{
		title: "General",
		keys:  []key.Binding{TripsKeys.Help, TripsKeys.Quit},
	},
}

// View lists every key binding by section
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("TripGenie Help"))
	b.WriteString("\n\n")

	for _, sec := range helpSections {
		b.WriteString(styles.InputLabel.Render(sec.title))
		b.WriteString("\n")
		for _, k := range sec.keys {
			b.WriteString(bindingLine(k))
		}
		for _, note := range sec.notes {
			b.WriteString(styles.MutedText.Render("  " + note))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpLine([][2]string{{helpClose.Help().Key, helpClose.Help().Desc}}))

	return styles.App.Render(b.String())
}

func bindingLine(k key.Binding) string {
	h := k.Help()
	return "  " + styles.HelpKey.Render(padRight(h.Key, 12)) + styles.HelpDesc.Render(h.Desc) + "\n"
}
