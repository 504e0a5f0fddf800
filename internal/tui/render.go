package tui

import (
	"fmt"
	"strings"

	"github.com/steviee/factorio-dash/internal/dashboard"
	"github.com/steviee/factorio-dash/internal/factorio"
)

// minNameWidth is the narrowest name column
const minNameWidth = 16

// TextRenderer renders regions as styled terminal text
type TextRenderer struct{}

// Players renders the player table
func (TextRenderer) Players(roster *factorio.PlayerRoster) string {
	return renderRoster("Total Players", "PLAYER NAME", dashboard.SortedPlayers(roster))
}

// Admins renders the admin table
func (TextRenderer) Admins(admins []factorio.Player) string {
	return renderRoster("Total Admins", "ADMIN NAME", admins)
}

// Footer renders seed and game time on one line
func (TextRenderer) Footer(info dashboard.FooterInfo) string {
	return fmt.Sprintf("%s %s    %s %s",
		labelStyle.Render("Seed:"), info.Seed,
		labelStyle.Render("Game Time:"), info.Uptime)
}

// Error renders an error message
func (TextRenderer) Error(message string) string {
	return errorStyle.Render(message)
}

// Text returns text unchanged
func (TextRenderer) Text(text string) string {
	return text
}

// renderRoster renders a name/status table with a total line
func renderRoster(title, column string, players []factorio.Player) string {
	nameWidth := minNameWidth
	for _, p := range players {
		if len(p.Name) > nameWidth {
			nameWidth = len(p.Name)
		}
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s: %d", title, len(players))))
	b.WriteString("\n")
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-*s  %s", nameWidth, column, "STATUS")))

	for _, p := range players {
		status := fmt.Sprintf("%s %s", getStatusIndicator(p.Online), dashboard.StatusLabel(p.Online))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-*s  ", nameWidth, p.Name))
		b.WriteString(getStatusStyle(p.Online).Render(status))
	}

	return b.String()
}
