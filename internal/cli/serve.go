package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/steviee/factorio-dash/internal/dashboard"
	"github.com/steviee/factorio-dash/internal/web"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML dashboard",
		Long: `Serve the dashboard as an HTML page.

The page shows the player and admin tables, the seed and game time, and a
form that sends console commands to the server. Regions are kept current
by the same pollers the terminal dashboard uses; the page reloads itself
every web.refresh.

Endpoints:
  GET  /              full dashboard page
  GET  /regions/{id}  one region fragment
  POST /rcon-form     run the submitted command
  GET  /healthz       liveness check

POST requests are limited to the networks in web.allow (CIDRs or
addresses). An empty list allows every client.`,
		Example: `  # Serve on the configured address (default :8080)
  factorio-dash serve

  # Serve on another address
  factorio-dash serve --listen 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = GetConfig().Web.Listen
			}
			return runServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides web.listen)")

	return cmd
}

// runServe executes the serve command until interrupted
func runServe(ctx context.Context, listen string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()
	log := GetLogger()
	client := newClient()

	allow, err := cfg.AllowList()
	if err != nil {
		return err
	}
	if allow.Len() == 0 {
		log.Warn("web.allow is empty, any client can submit console commands", "listen", listen)
	}

	dashCfg := cfg.DashboardConfig()
	dashCfg.Logger = log
	dash := dashboard.New(client, dashboard.NewPage(), web.NewHTMLRenderer(log), dashCfg)
	if err := dash.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dashboard: %w", err)
	}
	defer dash.Stop()

	srv := web.NewServer(dash.Page(), dash, web.ServerOptions{
		Backend: client.BaseURL(),
		Refresh: cfg.Web.Refresh,
		Logger:  log,
		Allow:   allow,
	})

	return srv.ListenAndServe(ctx, listen)
}
