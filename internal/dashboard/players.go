package dashboard

import (
	"context"
	"time"

	"github.com/steviee/factorio-dash/internal/factorio"
)

// Poll intervals.
const (
	DefaultPlayersInterval = 5 * time.Second
	DefaultAdminsInterval  = 5 * time.Second
	DefaultInfoInterval    = 10 * time.Second
)

// Error messages shown in place of a region's data.
const (
	PlayersErrorMessage    = "Error loading players"
	AdminsErrorMessage     = "Error loading admins"
	ServerInfoErrorMessage = "Error loading server info"
)

// PlayerSource provides the player roster.
type PlayerSource interface {
	Players(ctx context.Context) (*factorio.PlayerRoster, error)
}

// AdminSource provides the admin roster.
type AdminSource interface {
	Admins(ctx context.Context) ([]factorio.Player, error)
}

// NewPlayerPoller creates the poller for the players region.
func NewPlayerPoller(src PlayerSource, region Region, renderer Renderer, opts Options) *Poller {
	if opts.Interval == 0 {
		opts.Interval = DefaultPlayersInterval
	}

	fetch := func(ctx context.Context) (string, error) {
		roster, err := src.Players(ctx)
		if err != nil {
			return "", err
		}
		return renderer.Players(roster), nil
	}

	return newPoller("players", PlayersErrorMessage, region, renderer, fetch, opts)
}

// NewAdminPoller creates the poller for the admins region.
func NewAdminPoller(src AdminSource, region Region, renderer Renderer, opts Options) *Poller {
	if opts.Interval == 0 {
		opts.Interval = DefaultAdminsInterval
	}

	fetch := func(ctx context.Context) (string, error) {
		admins, err := src.Admins(ctx)
		if err != nil {
			return "", err
		}
		return renderer.Admins(admins), nil
	}

	return newPoller("admins", AdminsErrorMessage, region, renderer, fetch, opts)
}
