package styles

import (
	"github.com/charmbracelet/lipgloss"

	"tripgenie/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#0EA5E9") // Sky
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Trip status colors
	StatusDraft     = lipgloss.Color("#9CA3AF")
	StatusPlanned   = lipgloss.Color("#60A5FA")
	StatusActive    = lipgloss.Color("#34D399")
	StatusCompleted = lipgloss.Color("#A78BFA")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Trip rows
	TripRow = lipgloss.NewStyle()

	TripSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	TripLocal = lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true)

	TripDates = lipgloss.NewStyle().
			Foreground(Muted)

	// Sync banner
	Banner = lipgloss.NewStyle().
		Padding(0, 2)

	BannerOnline = lipgloss.NewStyle().
			Foreground(Secondary)

	BannerOffline = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black).
			Padding(0, 1)

	BannerSyncing = lipgloss.NewStyle().
			Foreground(Primary)

	BannerError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// StatusColor returns the color for a trip status
func StatusColor(status domain.TripStatus) lipgloss.Color {
	switch status {
	case domain.TripStatusPlanned:
		return StatusPlanned
	case domain.TripStatusActive:
		return StatusActive
	case domain.TripStatusCompleted:
		return StatusCompleted
	default:
		return StatusDraft
	}
}
