package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/steviee/factorio-dash/internal/factorio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(api *fakeAPI) *Dashboard {
	return New(api, NewPage(), plainRenderer{}, Config{
		PlayersInterval: 10 * time.Millisecond,
		AdminsInterval:  10 * time.Millisecond,
		InfoInterval:    20 * time.Millisecond,
	})
}

func TestDashboard_StartFillsEveryRegion(t *testing.T) {
	api := &fakeAPI{
		roster: sampleRoster(),
		admins: []factorio.Player{{Name: "admin", Online: true}},
		seed:   "99",
		uptime: &factorio.Uptime{Minutes: 5},
	}
	d := newTestDashboard(api)

	require.NoError(t, d.Start(context.Background()))
	defer d.Stop()

	page := d.Page()
	require.Eventually(t, func() bool {
		snap := page.Snapshot()
		return snap.Content(PlayersRegion) != "" &&
			snap.Content(AdminsRegion) != "" &&
			snap.Content(ServerInfoRegion) != ""
	}, time.Second, 5*time.Millisecond)

	snap := page.Snapshot()
	assert.Contains(t, snap.Content(PlayersRegion), "Total Players: 3")
	assert.Contains(t, snap.Content(AdminsRegion), "row:admin:Online")
	assert.Equal(t, "Seed: 99 | Game Time: 5m ", snap.Content(ServerInfoRegion))
	assert.Equal(t, "", snap.Content(CommandResultRegion))
}

func TestDashboard_StartTwiceFails(t *testing.T) {
	d := newTestDashboard(&fakeAPI{roster: sampleRoster()})

	require.NoError(t, d.Start(context.Background()))
	defer d.Stop()

	err := d.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.True(t, d.Players.Running(), "running pollers stay running")
}

func TestDashboard_RegionsFailIndependently(t *testing.T) {
	api := &fakeAPI{
		playerErr: errors.New("players down"),
		admins:    []factorio.Player{{Name: "admin"}},
		seed:      "1",
		uptime:    &factorio.Uptime{},
	}
	d := newTestDashboard(api)

	err := d.Refresh(context.Background())
	require.Error(t, err)

	snap := d.Page().Snapshot()
	assert.Equal(t, "ERR "+PlayersErrorMessage, snap.Content(PlayersRegion))
	assert.True(t, strings.HasPrefix(snap.Content(AdminsRegion), "Total Admins: 1"))
	assert.Equal(t, "Seed: 1 | Game Time: ", snap.Content(ServerInfoRegion))
}

func TestDashboard_Submit(t *testing.T) {
	api := &fakeAPI{result: "done"}
	d := newTestDashboard(api)

	assert.True(t, d.Submit(context.Background(), "/time"))
	assert.Equal(t, "done", d.Page().Content(CommandResultRegion))

	assert.False(t, d.Submit(context.Background(), "  "))
	assert.Equal(t, []string{"/time"}, api.sentCommands())
}
