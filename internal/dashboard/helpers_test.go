package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/steviee/factorio-dash/internal/factorio"
)

// plainRenderer renders one line per row so tests can count them.
type plainRenderer struct{}

func (plainRenderer) Players(roster *factorio.PlayerRoster) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Players: %d\n", roster.Count)
	for _, p := range SortedPlayers(roster) {
		fmt.Fprintf(&b, "row:%s:%s\n", p.Name, StatusLabel(p.Online))
	}
	return b.String()
}

func (plainRenderer) Admins(admins []factorio.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Admins: %d\n", len(admins))
	for _, p := range admins {
		fmt.Fprintf(&b, "row:%s:%s\n", p.Name, StatusLabel(p.Online))
	}
	return b.String()
}

func (plainRenderer) Footer(info FooterInfo) string {
	return fmt.Sprintf("Seed: %s | Game Time: %s", info.Seed, info.Uptime)
}

func (plainRenderer) Error(message string) string {
	return "ERR " + message
}

func (plainRenderer) Text(text string) string {
	return text
}

func countRows(content string) int {
	return strings.Count(content, "row:")
}

// fakeAPI is a scripted backend.
type fakeAPI struct {
	mu sync.Mutex

	roster    *factorio.PlayerRoster
	playerErr error
	admins    []factorio.Player
	adminErr  error
	seed      factorio.Seed
	seedErr   error
	uptime    *factorio.Uptime
	uptimeErr error
	result    string
	cmdErr    error

	playerCalls int
	commands    []string
}

func (f *fakeAPI) Players(ctx context.Context) (*factorio.PlayerRoster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playerCalls++
	return f.roster, f.playerErr
}

func (f *fakeAPI) Admins(ctx context.Context) ([]factorio.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.admins, f.adminErr
}

func (f *fakeAPI) Seed(ctx context.Context) (factorio.Seed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seed, f.seedErr
}

func (f *fakeAPI) Uptime(ctx context.Context) (*factorio.Uptime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uptime, f.uptimeErr
}

func (f *fakeAPI) RunCommand(ctx context.Context, command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	return f.result, f.cmdErr
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playerCalls
}

func (f *fakeAPI) sentCommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// recordingRegion keeps every write.
type recordingRegion struct {
	mu     sync.Mutex
	writes []string
}

func (r *recordingRegion) Replace(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, content)
}

func (r *recordingRegion) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

func (r *recordingRegion) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.writes) == 0 {
		return ""
	}
	return r.writes[len(r.writes)-1]
}

func sampleRoster() *factorio.PlayerRoster {
	return &factorio.PlayerRoster{
		Count: 3,
		Players: map[string]factorio.Player{
			"carol": {Name: "carol", Online: true},
			"alice": {Name: "alice", Online: false},
			"bob":   {Name: "bob", Online: true},
		},
	}
}
