package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/factorio-dash/internal/dashboard"
)

// Controller is the part of the dashboard the TUI drives
type Controller interface {
	Submit(ctx context.Context, command string) bool
	Refresh(ctx context.Context) error
}

// Model is the bubbletea model for the terminal dashboard
type Model struct {
	page        *dashboard.Page
	controller  Controller
	backendURL  string
	snapshot    dashboard.Snapshot
	changes     <-chan struct{}
	unsubscribe func()
	commandMode bool
	input       string
	pending     int
	err         error
	errorTime   time.Time
	width       int
	height      int
	ctx         context.Context
	now         func() time.Time
	quitting    bool
}

// NewModel creates a new TUI model reading from page
func NewModel(ctx context.Context, page *dashboard.Page, controller Controller, backendURL string) *Model {
	changes, unsubscribe := page.Subscribe()
	return &Model{
		page:        page,
		controller:  controller,
		backendURL:  backendURL,
		snapshot:    page.Snapshot(),
		changes:     changes,
		unsubscribe: unsubscribe,
		ctx:         ctx,
		now:         time.Now,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForChangeCmd(m.changes),
	)
}

// Close releases the page subscription
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// tickCmd returns a command that sends a tick message every second
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChangeCmd blocks until the page changes
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return pageChangedMsg{}
	}
}

// submitCmd runs a console command through the dashboard
func submitCmd(ctx context.Context, controller Controller, command string) tea.Cmd {
	return func() tea.Msg {
		controller.Submit(ctx, command)
		return commandDoneMsg{command: command}
	}
}

// refreshCmd polls every region once
func refreshCmd(ctx context.Context, controller Controller) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: controller.Refresh(ctx)}
	}
}

// clearErrorCmd returns a command that clears the error message after a delay
func clearErrorCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// clearErrorMsg is sent to clear the error message
type clearErrorMsg struct{}
