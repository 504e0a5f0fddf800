package tui

import (
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tickCmd()

	case pageChangedMsg:
		m.snapshot = m.page.Snapshot()
		if m.quitting {
			return m, nil
		}
		return m, waitForChangeCmd(m.changes)

	case commandDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.snapshot = m.page.Snapshot()
		return m, nil

	case refreshDoneMsg:
		m.snapshot = m.page.Snapshot()
		if msg.err != nil {
			m.err = msg.err
			m.errorTime = m.now()
			slog.Error("manual refresh failed", "error", msg.err)
			return m, clearErrorCmd()
		}
		return m, nil

	case clearErrorMsg:
		// Only clear if error is older than 3 seconds
		if m.now().Sub(m.errorTime) >= 3*time.Second {
			m.err = nil
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.commandMode {
		return m.handleCommandInput(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()

	case ":":
		m.commandMode = true
		m.input = ""
		return m, nil

	case "r":
		return m, refreshCmd(m.ctx, m.controller)
	}

	return m, nil
}

// handleCommandInput edits the RCON command line
func (m Model) handleCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandMode = false
		m.input = ""
		return m, nil

	case tea.KeyEnter:
		command := m.input
		m.commandMode = false
		m.input = ""
		if strings.TrimSpace(command) == "" {
			return m, nil
		}
		m.pending++
		return m, submitCmd(m.ctx, m.controller, command)

	case tea.KeyBackspace:
		if runes := []rune(m.input); len(runes) > 0 {
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}
