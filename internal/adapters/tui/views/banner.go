package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"tripgenie/internal/adapters/tui/styles"
	"tripgenie/internal/application"
)

// SyncBanner shows connectivity and sync progress above every view
type SyncBanner struct {
	status  application.SessionStatus
	spinner spinner.Model
	now     func() time.Time
}

// NewSyncBanner creates a banner with an idle status
func NewSyncBanner() *SyncBanner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.BannerSyncing
	return &SyncBanner{spinner: s, now: time.Now}
}

// SetStatus records a new status. The returned command starts the spinner
// when a sync begins.
func (b *SyncBanner) SetStatus(st application.SessionStatus) tea.Cmd {
	wasSyncing := b.status.Syncing
	b.status = st
	if st.Syncing && !wasSyncing {
		return b.spinner.Tick
	}
	return nil
}

// Status returns the last recorded status
func (b *SyncBanner) Status() application.SessionStatus {
	return b.status
}

// Update advances the spinner while a sync runs
func (b *SyncBanner) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !b.status.Syncing {
		return nil
	}
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return cmd
}

// View renders the banner line
func (b *SyncBanner) View() string {
	text := BannerText(b.status, b.now())
	switch {
	case b.status.Offline:
		return styles.Banner.Render(styles.BannerOffline.Render(text))
	case b.status.Syncing:
		return styles.Banner.Render(b.spinner.View() + styles.BannerSyncing.Render(text))
	case b.status.Error != "":
		return styles.Banner.Render(styles.BannerError.Render(text))
	default:
		return styles.Banner.Render(styles.BannerOnline.Render(text))
	}
}

// BannerText describes a session status in one line
func BannerText(st application.SessionStatus, now time.Time) string {
	pending := ""
	if st.HasPendingChanges {
		pending = " · " + english.Plural(st.PendingCount, "pending change", "")
	}

	switch {
	case st.Offline:
		return "Offline" + pending
	case st.Syncing:
		return " Syncing…" + pending
	case st.Error != "":
		return fmt.Sprintf("Sync error: %s%s", st.Error, pending)
	case st.LastSyncTime == nil:
		return "Online · never synced" + pending
	default:
		return "Online · synced " + humanize.RelTime(*st.LastSyncTime, now, "ago", "from now") + pending
	}
}
