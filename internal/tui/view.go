package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/steviee/factorio-dash/internal/dashboard"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Dashboard closed.\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderSection("Players", dashboard.PlayersRegion))
	b.WriteString("\n\n")
	b.WriteString(m.renderSection("Admins", dashboard.AdminsRegion))
	b.WriteString("\n\n")
	b.WriteString(m.renderCommand())
	b.WriteString("\n\n")
	b.WriteString(m.renderServerInfo())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	if m.err != nil && m.now().Sub(m.errorTime) < 3*time.Second {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", m.err)))
	}

	return b.String()
}

// renderHeader renders the dashboard header
func (m Model) renderHeader() string {
	title := "Factorio Dashboard"
	status := fmt.Sprintf("%s  Updated: %s", m.backendURL, m.lastUpdate())

	totalWidth := 80
	if m.width > 0 {
		totalWidth = m.width
	}

	spacing := totalWidth - len(title) - len(status) - 4
	if spacing < 1 {
		spacing = 1
	}

	headerText := fmt.Sprintf(" %s%s%s ", title, strings.Repeat(" ", spacing), status)
	return headerStyle.Render(headerText)
}

// lastUpdate formats the age of the newest region write
func (m Model) lastUpdate() string {
	if m.snapshot.UpdatedAt.IsZero() {
		return "never"
	}
	return units.HumanDuration(m.now().Sub(m.snapshot.UpdatedAt)) + " ago"
}

// renderSection renders a titled region
func (m Model) renderSection(title string, id dashboard.RegionID) string {
	content := m.snapshot.Content(id)
	if content == "" {
		content = "Loading..."
	}
	return sectionStyle.Render(title) + "\n" + content
}

// renderCommand renders the RCON result and command line
func (m Model) renderCommand() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("RCON"))
	b.WriteString("\n")

	result := m.snapshot.Content(dashboard.CommandResultRegion)
	switch {
	case strings.HasPrefix(result, "Error: "):
		b.WriteString(errorStyle.Render(result))
	case result != "":
		b.WriteString(result)
	default:
		b.WriteString(footerStyle.Render("No command run yet"))
	}
	b.WriteString("\n")

	if m.commandMode {
		b.WriteString(promptStyle.Render("> "))
		b.WriteString(m.input)
		b.WriteString("█")
	} else if m.pending > 0 {
		b.WriteString(footerStyle.Render(fmt.Sprintf("%d command(s) running", m.pending)))
	}

	return b.String()
}

// renderServerInfo renders the seed and game time footer region
func (m Model) renderServerInfo() string {
	content := m.snapshot.Content(dashboard.ServerInfoRegion)
	if content == "" {
		content = "Loading server info..."
	}
	return content
}

// renderFooter renders the key help line
func (m Model) renderFooter() string {
	if m.commandMode {
		return footerStyle.Render("[enter] execute  [esc] cancel")
	}
	return footerStyle.Render("[:] command  [r]efresh  [q]uit")
}
