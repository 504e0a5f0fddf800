package dashboard

import (
	"sort"

	"github.com/steviee/factorio-dash/internal/factorio"
)

// Status labels shown next to each player.
const (
	OnlineLabel  = "Online"
	OfflineLabel = "Offline"
)

// FooterInfo is the content of the server info footer.
type FooterInfo struct {
	Seed   factorio.Seed
	Uptime string
}

// Renderer turns snapshots into region content for one display surface.
type Renderer interface {
	// Players renders the player table, one row per roster entry.
	Players(roster *factorio.PlayerRoster) string
	// Admins renders the admin table in the given order.
	Admins(admins []factorio.Player) string
	// Footer renders seed and game time.
	Footer(info FooterInfo) string
	// Error renders a single user visible error message.
	Error(message string) string
	// Text renders plain text verbatim.
	Text(text string) string
}

// StatusLabel returns the label for a player's online flag.
func StatusLabel(online bool) string {
	if online {
		return OnlineLabel
	}
	return OfflineLabel
}

// SortedPlayers returns the roster entries ordered by name.
func SortedPlayers(roster *factorio.PlayerRoster) []factorio.Player {
	if roster == nil {
		return nil
	}

	players := make([]factorio.Player, 0, len(roster.Players))
	for _, player := range roster.Players {
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})

	return players
}
