package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tripgenie/internal/adapters/tui/views"
	"tripgenie/internal/application"
	"tripgenie/internal/application/commands"
)

// Session is the part of application.Session the TUI drives
type Session interface {
	commands.SyncService
	Foreground(ctx context.Context) application.SyncResult
	Background()
	Subscribe(fn func(application.SessionStatus)) (unsubscribe func())
	Cache() *application.Cache
}

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	session Session

	state  ViewState
	banner *views.SyncBanner
	list   *views.TripsModel
	detail *views.DetailModel
	form   *views.FormModel
	del    *views.DeleteModel
	help   *views.HelpModel

	statuses    chan application.SessionStatus
	unsubscribe func()
}

// NewApp creates a new TUI application and subscribes to session status
func NewApp(trips commands.TripService, session Session) *App {
	a := &App{
		session:  session,
		state:    ViewList,
		banner:   views.NewSyncBanner(),
		list:     views.NewTripsModel(trips),
		detail:   views.NewDetailModel(trips),
		form:     views.NewFormModel(trips),
		del:      views.NewDeleteModel(trips),
		help:     views.NewHelpModel(),
		statuses: make(chan application.SessionStatus, 1),
	}
	a.unsubscribe = session.Subscribe(a.publish)
	return a
}

// publish keeps only the newest status for the UI loop
func (a *App) publish(st application.SessionStatus) {
	for {
		select {
		case a.statuses <- st:
			return
		default:
			select {
			case <-a.statuses:
			default:
			}
		}
	}
}

type statusMsg application.SessionStatus

func (a *App) waitForStatus() tea.Msg {
	return statusMsg(<-a.statuses)
}

type syncDoneMsg struct {
	message string
	failed  bool
}

// Close stops listening for session status
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.list.Init(), a.waitForStatus)
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.list.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.del.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case statusMsg:
		st := application.SessionStatus(msg)
		wasSyncing := a.banner.Status().Syncing
		cmd := a.banner.SetStatus(st)
		if wasSyncing && !st.Syncing {
			a.list.SetTrips(a.session.Cache().Trips())
		}
		return a, tea.Batch(cmd, a.waitForStatus)

	case spinner.TickMsg:
		return a, a.banner.Update(msg)

	case tea.FocusMsg:
		return a, a.foreground()

	case tea.BlurMsg:
		a.session.Background()
		return a, nil

	case views.SyncRequestMsg:
		return a, a.sync(msg.Force)

	case syncDoneMsg:
		a.list.SetMessage(msg.message, msg.failed)
		return a, nil

	// View switching messages
	case views.SwitchToListMsg:
		a.state = ViewList
		if msg.Message != "" {
			a.list.SetMessage(msg.Message, false)
		}
		if msg.Reload {
			return a, a.list.Reload()
		}
		return a, nil

	case views.SwitchToDetailMsg:
		a.state = ViewDetail
		a.detail.SetTrip(msg.Trip)
		return a, nil

	case views.SwitchToFormMsg:
		a.state = ViewForm
		a.form.SetTrip(msg.Trip)
		return a, a.form.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.del.SetTrip(msg.Trip)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewList:
		_, cmd = a.list.Update(msg)
	case ViewDetail:
		_, cmd = a.detail.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewDelete:
		_, cmd = a.del.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return a, cmd
}

func (a *App) sync(force bool) tea.Cmd {
	session := a.session
	return func() tea.Msg {
		result, err := commands.NewSyncCommand(session, force).Execute(context.Background())
		if err != nil {
			return syncDoneMsg{message: err.Error(), failed: true}
		}
		return syncDoneMsg{
			message: result.Message,
			failed:  !result.Skipped && !result.Result.Success,
		}
	}
}

// foreground reports the sync that coming back to the terminal triggered, if any
func (a *App) foreground() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		res := session.Foreground(context.Background())
		if !res.Success && len(res.Errors) == 0 {
			return nil
		}
		return syncDoneMsg{
			message: commands.DescribeSync(&commands.SyncCommandResult{Result: res}),
			failed:  !res.Success,
		}
	}
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// View renders the sync banner above the current view
func (a *App) View() string {
	var body string
	switch a.state {
	case ViewDetail:
		body = a.detail.View()
	case ViewForm:
		body = a.form.View()
	case ViewDelete:
		body = a.del.View()
	case ViewHelp:
		body = a.help.View()
	default:
		body = a.list.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.banner.View(), body)
}
