package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"tripgenie/internal/adapters/tui/styles"
	"tripgenie/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// RenderMessage renders the current message, if any
func (s *ViewState) RenderMessage() string {
	if s.Message == "" {
		return ""
	}
	if s.MessageErr {
		return styles.ErrorMsg.Render(s.Message)
	}
	return styles.Success.Render(s.Message)
}

// Messages for view switching
type SwitchToListMsg struct {
	// Reload refetches trips from the server
	Reload  bool
	Message string
}

type SwitchToDetailMsg struct {
	Trip domain.Trip
}

type SwitchToFormMsg struct {
	// Trip is nil when creating
	Trip *domain.Trip
}

type SwitchToDeleteMsg struct {
	Trip domain.Trip
}

type SwitchToHelpMsg struct{}

// SyncRequestMsg asks the app to run a sync
type SyncRequestMsg struct {
	Force bool
}

// ErrMsg reports a failed background command
type ErrMsg struct {
	Err error
}

func helpLine(keys [][2]string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k[0]),
			styles.HelpDesc.Render(k[1]),
		))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

func dateRange(t domain.Trip) string {
	switch {
	case t.StartDate == "":
		return ""
	case t.EndDate == "" || t.EndDate == t.StartDate:
		return t.StartDate
	default:
		return t.StartDate + " → " + t.EndDate
	}
}

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll
