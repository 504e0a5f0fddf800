package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/steviee/factorio-dash/internal/dashboard"
	"github.com/steviee/factorio-dash/internal/factorio"
	"github.com/steviee/factorio-dash/internal/web"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "FACTORIO_DASH"

// Config represents the user configuration for factorio-dash.
type Config struct {
	Backend BackendConfig
	Polling PollingConfig
	Web     WebConfig
}

// BackendConfig holds the web backend connection settings.
type BackendConfig struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// PollingConfig holds the refresh interval of every region.
type PollingConfig struct {
	PlayersInterval time.Duration
	AdminsInterval  time.Duration
	InfoInterval    time.Duration
}

// WebConfig holds the HTML dashboard server settings.
type WebConfig struct {
	Listen  string
	Refresh time.Duration
	// Allow lists the CIDRs or addresses that may POST. Empty allows all.
	Allow []string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:       factorio.DefaultBaseURL,
			Timeout:   factorio.DefaultTimeout,
			UserAgent: factorio.UserAgent,
		},
		Polling: PollingConfig{
			PlayersInterval: dashboard.DefaultPlayersInterval,
			AdminsInterval:  dashboard.DefaultAdminsInterval,
			InfoInterval:    dashboard.DefaultInfoInterval,
		},
		Web: WebConfig{
			Listen:  ":8080",
			Refresh: 5 * time.Second,
			Allow:   []string{},
		},
	}
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("backend.url", d.Backend.URL)
	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("backend.user_agent", d.Backend.UserAgent)
	v.SetDefault("polling.players_interval", d.Polling.PlayersInterval)
	v.SetDefault("polling.admins_interval", d.Polling.AdminsInterval)
	v.SetDefault("polling.info_interval", d.Polling.InfoInterval)
	v.SetDefault("web.listen", d.Web.Listen)
	v.SetDefault("web.refresh", d.Web.Refresh)
	v.SetDefault("web.allow", []string{})
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Backend: BackendConfig{
			URL:       strings.TrimSpace(v.GetString("backend.url")),
			Timeout:   v.GetDuration("backend.timeout"),
			UserAgent: strings.TrimSpace(v.GetString("backend.user_agent")),
		},
		Polling: PollingConfig{
			PlayersInterval: v.GetDuration("polling.players_interval"),
			AdminsInterval:  v.GetDuration("polling.admins_interval"),
			InfoInterval:    v.GetDuration("polling.info_interval"),
		},
		Web: WebConfig{
			Listen:  strings.TrimSpace(v.GetString("web.listen")),
			Refresh: v.GetDuration("web.refresh"),
			Allow:   trimAll(v.GetStringSlice("web.allow")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url cannot be empty")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("invalid backend.url %q: %w", c.Backend.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend.url %q: scheme must be http or https", c.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend.url %q: missing host", c.Backend.URL)
	}

	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout cannot be negative, got %s", c.Backend.Timeout)
	}

	for _, d := range []struct {
		key   string
		value time.Duration
	}{
		{"polling.players_interval", c.Polling.PlayersInterval},
		{"polling.admins_interval", c.Polling.AdminsInterval},
		{"polling.info_interval", c.Polling.InfoInterval},
		{"web.refresh", c.Web.Refresh},
	} {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.value)
		}
	}

	if c.Web.Listen == "" {
		return fmt.Errorf("web.listen cannot be empty")
	}

	if _, err := web.ParseAllowList(c.Web.Allow); err != nil {
		return fmt.Errorf("web.allow: %w", err)
	}

	return nil
}

// AllowList returns the parsed web.allow networks.
func (c *Config) AllowList() (*web.AllowList, error) {
	return web.ParseAllowList(c.Web.Allow)
}

// ClientConfig returns the backend client configuration.
func (c *Config) ClientConfig() *factorio.Config {
	return &factorio.Config{
		BaseURL:   c.Backend.URL,
		Timeout:   c.Backend.Timeout,
		UserAgent: c.Backend.UserAgent,
	}
}

// DashboardConfig returns the poll intervals for the dashboard.
func (c *Config) DashboardConfig() dashboard.Config {
	return dashboard.Config{
		PlayersInterval: c.Polling.PlayersInterval,
		AdminsInterval:  c.Polling.AdminsInterval,
		InfoInterval:    c.Polling.InfoInterval,
	}
}

// Document returns the configuration keyed like the config file, with
// durations in their string form.
func (c *Config) Document() map[string]any {
	return map[string]any{
		"backend": map[string]any{
			"url":        c.Backend.URL,
			"timeout":    c.Backend.Timeout.String(),
			"user_agent": c.Backend.UserAgent,
		},
		"polling": map[string]any{
			"players_interval": c.Polling.PlayersInterval.String(),
			"admins_interval":  c.Polling.AdminsInterval.String(),
			"info_interval":    c.Polling.InfoInterval.String(),
		},
		"web": map[string]any{
			"listen":  c.Web.Listen,
			"refresh": c.Web.Refresh.String(),
			"allow":   append([]string{}, c.Web.Allow...),
		},
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := AtomicWrite(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
