package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/steviee/factorio-dash/internal/dashboard"
	"github.com/steviee/factorio-dash/internal/factorio"
)

// NewPlayersCommand creates the players command
func NewPlayersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List players and their online status",
		Long:  `Fetch the player roster from the backend once and print it.`,
		Example: `  # List players
  factorio-dash players

  # Output in JSON format
  factorio-dash players --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayers(cmd.Context(), cmd.OutOrStdout(), newClient(), IsJSONOutput())
		},
	}
}

// NewAdminsCommand creates the admins command
func NewAdminsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "admins",
		Short: "List server admins",
		Long:  `Fetch the admin list from the backend once and print it in backend order.`,
		Example: `  # List admins
  factorio-dash admins`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmins(cmd.Context(), cmd.OutOrStdout(), newClient(), IsJSONOutput())
		},
	}
}

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show map seed and game time",
		Long:  `Fetch the map seed and the game time from the backend in parallel.`,
		Example: `  # Show server info
  factorio-dash info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), cmd.OutOrStdout(), newClient(), IsJSONOutput())
		},
	}
}

// NewRCONCommand creates the rcon command
func NewRCONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rcon <command...>",
		Short: "Run a console command on the server",
		Long: `Send a remote console command to the server and print its result.

All arguments are joined with spaces into one command.`,
		Example: `  # Print the game time
  factorio-dash rcon /time

  # Promote a player
  factorio-dash rcon /promote alice`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRCON(cmd.Context(), cmd.OutOrStdout(), newClient(), IsJSONOutput(), strings.Join(args, " "))
		},
	}
}

// NewSaveCommand creates the save command
func NewSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [filename]",
		Short: "Save the game",
		Long:  `Ask the server to save the game, optionally under a specific file name.`,
		Example: `  # Save with the server's default name
  factorio-dash save

  # Save under a name
  factorio-dash save before-nukes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			}
			return runSave(cmd.Context(), cmd.OutOrStdout(), newClient(), IsJSONOutput(), filename)
		},
	}
}

// NewShutdownCommand creates the shutdown command
func NewShutdownCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "shutdown",
		Short: "Shut the server down",
		Long:  `Ask the server to shut down. Prompts for confirmation unless --force or --json is given.`,
		Example: `  # Shut down without prompting
  factorio-dash shutdown --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := IsJSONOutput()
			if !force && !jsonMode {
				confirmed, err := confirmShutdown(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Shutdown cancelled")
					return nil
				}
			}
			return runShutdown(cmd.Context(), cmd.OutOrStdout(), newClient(), jsonMode)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runPlayers(ctx context.Context, w io.Writer, src dashboard.PlayerSource, jsonOutput bool) error {
	roster, err := src.Players(ctx)
	if err != nil {
		return outputError(w, jsonOutput, fmt.Errorf("failed to load players: %w", err))
	}

	players := dashboard.SortedPlayers(roster)
	if jsonOutput {
		return outputSuccess(w, map[string]any{
			"count":   roster.Count,
			"players": players,
		}, fmt.Sprintf("Found %d player(s)", roster.Count))
	}

	printRoster(w, "Players", players)
	return nil
}

func runAdmins(ctx context.Context, w io.Writer, src dashboard.AdminSource, jsonOutput bool) error {
	admins, err := src.Admins(ctx)
	if err != nil {
		return outputError(w, jsonOutput, fmt.Errorf("failed to load admins: %w", err))
	}

	if jsonOutput {
		return outputSuccess(w, map[string]any{
			"count":  len(admins),
			"admins": admins,
		}, fmt.Sprintf("Found %d admin(s)", len(admins)))
	}

	printRoster(w, "Admins", admins)
	return nil
}

func runInfo(ctx context.Context, w io.Writer, src dashboard.InfoSource, jsonOutput bool) error {
	info, err := dashboard.FetchFooterInfo(ctx, src)
	if err != nil {
		return outputError(w, jsonOutput, fmt.Errorf("failed to load server info: %w", err))
	}

	gameTime := strings.TrimSpace(info.Uptime)
	if jsonOutput {
		return outputSuccess(w, map[string]any{
			"seed":      info.Seed,
			"game_time": gameTime,
		}, "")
	}

	if gameTime == "" {
		gameTime = "0s"
	}
	_, _ = fmt.Fprintf(w, "Seed:      %s\n", info.Seed)
	_, _ = fmt.Fprintf(w, "Game Time: %s\n", gameTime)
	return nil
}

func runRCON(ctx context.Context, w io.Writer, runner dashboard.CommandRunner, jsonOutput bool, command string) error {
	result, err := runner.RunCommand(ctx, command)
	if err != nil {
		return outputError(w, jsonOutput, fmt.Errorf("rcon command failed: %w", err))
	}

	if jsonOutput {
		return outputSuccess(w, map[string]any{
			"command": strings.TrimSpace(command),
			"result":  result,
		}, "")
	}

	_, _ = fmt.Fprintln(w, strings.TrimRight(result, "\n"))
	return nil
}

// GameController is the part of the backend client that manages the server
type GameController interface {
	Save(ctx context.Context, filename string) (string, error)
	Shutdown(ctx context.Context) (string, error)
}

func runSave(ctx context.Context, w io.Writer, ctl GameController, jsonOutput bool, filename string) error {
	saved, err := ctl.Save(ctx, filename)
	if err != nil {
		return outputError(w, jsonOutput, fmt.Errorf("failed to save game: %w", err))
	}

	if jsonOutput {
		return outputSuccess(w, map[string]any{"file": saved}, fmt.Sprintf("Game saved to %s", saved))
	}

	_, _ = fmt.Fprintf(w, "Game saved to %s\n", saved)
	return nil
}

func runShutdown(ctx context.Context, w io.Writer, ctl GameController, jsonOutput bool) error {
	reply, err := ctl.Shutdown(ctx)
	if err != nil {
		return outputError(w, jsonOutput, fmt.Errorf("failed to shut down server: %w", err))
	}

	if jsonOutput {
		return outputSuccess(w, map[string]any{"reply": reply}, "Server shutting down")
	}

	if reply != "" {
		_, _ = fmt.Fprintln(w, reply)
	}
	_, _ = fmt.Fprintln(w, "Server shutting down")
	return nil
}

// printRoster prints a numbered name/status list
func printRoster(w io.Writer, title string, players []factorio.Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintf(w, "%s (0): none\n", title)
		return
	}

	_, _ = fmt.Fprintf(w, "%s (%d):\n", title, len(players))
	for i, p := range players {
		_, _ = fmt.Fprintf(w, "%3d. %-16s %s\n", i+1, p.Name, dashboard.StatusLabel(p.Online))
	}
}

// confirmShutdown asks the user to confirm the shutdown
func confirmShutdown(stdin io.Reader, stdout io.Writer) (bool, error) {
	_, _ = fmt.Fprint(stdout, "Shut down the Factorio server? [y/N]: ")

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false, fmt.Errorf("failed to read confirmation")
	}
	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return response == "y" || response == "yes", nil
}
