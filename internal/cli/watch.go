package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/steviee/factorio-dash/internal/dashboard"
	"github.com/steviee/factorio-dash/internal/factorio"
	"github.com/steviee/factorio-dash/internal/tui"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the terminal dashboard",
		Long: `Open an interactive terminal dashboard.

Players and admins refresh every 5 seconds and the seed and game time
every 10 seconds, unless configured otherwise. Press ':' to type a console
command, enter to run it and esc to cancel. Press 'r' to refresh all
regions and 'q' to quit.

Logs are discarded while the dashboard runs unless --log-file is given.`,
		Example: `  # Open the dashboard
  factorio-dash watch

  # Keep logs while the dashboard runs
  factorio-dash watch --verbose --log-file /tmp/factorio-dash.log`,
		Aliases: []string{"top", "dashboard"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context())
		},
	}

	return cmd
}

// runWatch executes the watch command
func runWatch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tuiLogger, closeLog, err := newTUILogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	// The screen belongs to bubbletea until it exits
	previous := slog.Default()
	slog.SetDefault(tuiLogger)
	defer slog.SetDefault(previous)

	cfg := GetConfig()
	clientCfg := cfg.ClientConfig()
	clientCfg.Logger = tuiLogger
	client := factorio.NewClient(clientCfg)

	dashCfg := cfg.DashboardConfig()
	dashCfg.Logger = tuiLogger
	dash := dashboard.New(client, dashboard.NewPage(), tui.TextRenderer{}, dashCfg)
	if err := dash.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dashboard: %w", err)
	}
	defer dash.Stop()

	model := tui.NewModel(ctx, dash.Page(), dash, client.BaseURL())
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}

	return nil
}

// newTUILogger returns a logger that writes to path, or discards
// everything when path is empty
func newTUILogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if jsonOut {
		handler = slog.NewJSONHandler(f, opts)
	} else {
		handler = slog.NewTextHandler(f, opts)
	}

	return slog.New(handler), func() { _ = f.Close() }, nil
}
