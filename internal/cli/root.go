package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	configcmd "github.com/steviee/factorio-dash/internal/cli/config"
	"github.com/steviee/factorio-dash/internal/config"
	"github.com/steviee/factorio-dash/internal/factorio"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool
	logFile string

	// Global logger
	logger *slog.Logger

	// Loaded configuration and the file it came from
	appConfig  *config.Config
	configPath string
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "factorio-dash",
		Short: "Dashboard for a Factorio server web backend",
		Long: `factorio-dash is a dashboard client for a Factorio game-server web backend.

It polls the backend for:
  - The player roster with online status
  - The admin list
  - The map seed and game time

and sends remote console (RCON) commands to the server. The dashboard
runs in the terminal (watch) or as an HTML page served over HTTP (serve).`,
		Example: `  # Open the terminal dashboard
  factorio-dash watch

  # Serve the HTML dashboard on :8080
  factorio-dash serve

  # Run a console command
  factorio-dash rcon /time

  # List players against another backend
  FACTORIO_DASH_BACKEND_URL=http://factorio:8001 factorio-dash players`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger based on flags
			if err := initLogger(cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			// Initialize config
			if err := initConfig(cmd.Annotations[configcmd.AllowMissingConfig] == "true"); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/factorio-dash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file while the terminal dashboard runs")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))

	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewPlayersCommand())
	rootCmd.AddCommand(NewAdminsCommand())
	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewRCONCommand())
	rootCmd.AddCommand(NewSaveCommand())
	rootCmd.AddCommand(NewShutdownCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	return configcmd.NewCommand(configcmd.Options{
		Config:     GetConfig,
		Path:       GetConfigPath,
		JSONOutput: IsJSONOutput,
	})
}

// initLogger initializes the global logger based on flags
func initLogger(out io.Writer) error {
	var level slog.Level
	var handler slog.Handler

	// Determine log level
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	// Create handler based on output format
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if jsonOut {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// initConfig reads in config file and ENV variables if set. A file named
// with --config must exist unless allowMissing is set.
func initConfig(allowMissing bool) error {
	v := viper.New()

	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
		configPath = cfgFile
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			return err
		}

		v.AddConfigPath(configDir)
		v.SetConfigType("yaml")
		v.SetConfigName(strings.TrimSuffix(config.FileName, ".yaml"))

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		configPath = path
	}

	// Read in environment variables that match, backend.url -> FACTORIO_DASH_BACKEND_URL
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// If a config file is found, read it in
	if err := v.ReadInConfig(); err != nil {
		// It's okay if the default config file doesn't exist
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || (cfgFile != "" && !allowMissing) {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("using config file", "path", v.ConfigFileUsed())
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	appConfig = cfg

	return nil
}

// newClient creates a backend client from the loaded configuration
func newClient() *factorio.Client {
	clientCfg := GetConfig().ClientConfig()
	clientCfg.Logger = GetLogger()
	return factorio.NewClient(clientCfg)
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// GetConfig returns the loaded configuration, or the defaults before
// the root command has run
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

// GetConfigPath returns the config file path in use
func GetConfigPath() string {
	return configPath
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
