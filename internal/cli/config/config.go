package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	appconfig "github.com/steviee/factorio-dash/internal/config"
)

// AllowMissingConfig is a command annotation that lets the root command
// run when the file named by --config does not exist yet.
const AllowMissingConfig = "allow-missing-config"

// Options gives the config commands access to root command state
type Options struct {
	Config     func() *appconfig.Config
	Path       func() string
	JSONOutput func() bool
}

// Output is the JSON envelope printed with --json
type Output struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewCommand creates the config command group
func NewCommand(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and initialize factorio-dash configuration.

Configuration is read from ~/.config/factorio-dash/config.yaml by default
(or $XDG_CONFIG_HOME/factorio-dash/config.yaml). Every key can be
overridden with a FACTORIO_DASH_ environment variable, for example
FACTORIO_DASH_BACKEND_URL for backend.url.`,
		Example: `  # View the effective configuration
  factorio-dash config show

  # Write a config file with defaults
  factorio-dash config init

  # Show configuration file path
  factorio-dash config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newInitCommand(opts))
	cmd.AddCommand(newPathCommand(opts))

	return cmd
}

func newShowCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Print the configuration after defaults, config file and environment are merged.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), opts.Config(), opts.JSONOutput())
		},
	}
}

func newInitCommand(opts Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Long:  `Write the default configuration to the config file. Refuses to overwrite an existing file unless --force is given.`,
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			AllowMissingConfig: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), opts.Path(), force, opts.JSONOutput())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

func newPathCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.Path()
			if opts.JSONOutput() {
				return writeJSON(cmd.OutOrStdout(), Output{
					Status: "success",
					Data:   map[string]string{"path": path},
				})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func runShow(w io.Writer, cfg *appconfig.Config, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, Output{Status: "success", Data: cfg.Document()})
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func runInit(w io.Writer, path string, force, jsonOutput bool) error {
	if path == "" {
		return outputError(w, jsonOutput, errors.New("no config path"))
	}

	if _, err := os.Stat(path); err == nil && !force {
		return outputError(w, jsonOutput, fmt.Errorf("config file %s already exists (use --force to overwrite)", path))
	}

	if err := appconfig.EnsureDir(filepath.Dir(path)); err != nil {
		return outputError(w, jsonOutput, err)
	}

	// Keep the previous file when overwriting
	backup, err := appconfig.BackupFile(path)
	if err != nil {
		return outputError(w, jsonOutput, err)
	}

	if err := appconfig.DefaultConfig().Save(path); err != nil {
		return outputError(w, jsonOutput, err)
	}

	message := fmt.Sprintf("Wrote default configuration to %s", path)
	if jsonOutput {
		data := map[string]string{"path": path}
		if backup != "" {
			data["backup"] = backup
		}
		return writeJSON(w, Output{
			Status:  "success",
			Data:    data,
			Message: message,
		})
	}

	_, _ = fmt.Fprintln(w, message)
	if backup != "" {
		_, _ = fmt.Fprintf(w, "Previous configuration saved to %s\n", backup)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputError(w io.Writer, jsonOutput bool, err error) error {
	if jsonOutput {
		_ = writeJSON(w, Output{Status: "error", Error: err.Error()})
	}
	return err
}
