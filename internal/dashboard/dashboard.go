package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// API is everything the dashboard reads from or sends to the backend.
type API interface {
	PlayerSource
	AdminSource
	InfoSource
	CommandRunner
}

// Config holds poll intervals. Zero values use the defaults.
type Config struct {
	PlayersInterval time.Duration
	AdminsInterval  time.Duration
	InfoInterval    time.Duration
	Logger          *slog.Logger
}

// Dashboard wires the three pollers and the command submitter to a page.
type Dashboard struct {
	Players  *Poller
	Admins   *Poller
	Footer   *Poller
	Commands *CommandSubmitter

	page   *Page
	logger *slog.Logger
}

// New creates a dashboard that writes into page using renderer.
func New(api API, page *Page, renderer Renderer, cfg Config) *Dashboard {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Dashboard{
		Players: NewPlayerPoller(api, page.Region(PlayersRegion), renderer,
			Options{Interval: cfg.PlayersInterval, Logger: logger}),
		Admins: NewAdminPoller(api, page.Region(AdminsRegion), renderer,
			Options{Interval: cfg.AdminsInterval, Logger: logger}),
		Footer: NewFooterPoller(api, page.Region(ServerInfoRegion), renderer,
			Options{Interval: cfg.InfoInterval, Logger: logger}),
		Commands: NewCommandSubmitter(api, page.Region(CommandResultRegion), renderer, logger),
		page:     page,
		logger:   logger,
	}
}

// Page returns the page the dashboard writes into.
func (d *Dashboard) Page() *Page {
	return d.page
}

// Start starts every poller. If one fails to start, the ones already
// started are stopped again.
func (d *Dashboard) Start(ctx context.Context) error {
	started := make([]*Poller, 0, 3)
	for _, p := range d.pollers() {
		if err := p.Start(ctx); err != nil {
			for _, s := range started {
				s.Stop()
			}
			return fmt.Errorf("start %s poller: %w", p.Name(), err)
		}
		started = append(started, p)
	}

	d.logger.Info("dashboard started")
	return nil
}

// Stop stops every poller and waits for in-flight polls.
func (d *Dashboard) Stop() {
	for _, p := range d.pollers() {
		p.Stop()
	}
	d.logger.Info("dashboard stopped")
}

// Refresh polls every region once, concurrently, and returns the first error.
func (d *Dashboard) Refresh(ctx context.Context) error {
	var g errgroup.Group
	for _, p := range d.pollers() {
		g.Go(func() error {
			return p.Refresh(ctx)
		})
	}
	return g.Wait()
}

// Submit forwards a command to the command submitter.
func (d *Dashboard) Submit(ctx context.Context, command string) bool {
	return d.Commands.Submit(ctx, command)
}

func (d *Dashboard) pollers() []*Poller {
	return []*Poller{d.Players, d.Admins, d.Footer}
}
