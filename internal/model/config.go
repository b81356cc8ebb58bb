package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// BackendConfig holds connection settings for the agent backend.
type BackendConfig struct {
	// BaseURL is the root URL of the agent router API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TaskLimit caps the number of tasks fetched per refresh.
	TaskLimit int `mapstructure:"task_limit" yaml:"task_limit"`

	// EmailMaxResults caps the number of recent emails fetched.
	EmailMaxResults int `mapstructure:"email_max_results" yaml:"email_max_results"`
}

// TimingConfig holds the client's synchronization delays. The backend has
// no push channel, so all consistency comes from these timers.
type TimingConfig struct {
	// ContactRefreshDelayMs is how long to wait after a contact-mutating
	// command before re-fetching contacts.
	ContactRefreshDelayMs int `mapstructure:"contact_refresh_delay_ms" yaml:"contact_refresh_delay_ms"`

	// FullRefreshDelayMs is how long to wait after any command before
	// re-fetching every collection.
	FullRefreshDelayMs int `mapstructure:"full_refresh_delay_ms" yaml:"full_refresh_delay_ms"`

	// NotificationPollSec is how often the unread-count signal is polled
	// while a session is active.
	NotificationPollSec int `mapstructure:"notification_poll_sec" yaml:"notification_poll_sec"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// PageSize is the number of items shown per collection page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// FeedCapacity is the maximum number of retained notifications.
	FeedCapacity int `mapstructure:"feed_capacity" yaml:"feed_capacity"`
}

// VoiceConfig holds speech-capture settings.
type VoiceConfig struct {
	// Transcriber is the name of the speech-to-text executable probed
	// on PATH. Capture is unavailable when it cannot be found.
	Transcriber string `mapstructure:"transcriber" yaml:"transcriber"`

	// Locale is the single capture locale.
	Locale string `mapstructure:"locale" yaml:"locale"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Timing  TimingConfig  `mapstructure:"timing" yaml:"timing"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Voice   VoiceConfig   `mapstructure:"voice" yaml:"voice"`
}

// ContactRefreshDelay returns the contact re-fetch delay as a duration.
func (c *AppConfig) ContactRefreshDelay() time.Duration {
	return time.Duration(c.Timing.ContactRefreshDelayMs) * time.Millisecond
}

// FullRefreshDelay returns the full re-fetch delay as a duration.
func (c *AppConfig) FullRefreshDelay() time.Duration {
	return time.Duration(c.Timing.FullRefreshDelayMs) * time.Millisecond
}

// NotificationPollInterval returns the unread-count poll interval.
func (c *AppConfig) NotificationPollInterval() time.Duration {
	return time.Duration(c.Timing.NotificationPollSec) * time.Second
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/presentos/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "presentos", "config.yaml")
}

// DefaultDataPath returns the default path for the local database.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "presentos.db")
	}
	return filepath.Join(home, ".local", "share", "presentos", "presentos.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Backend: BackendConfig{
			BaseURL:         "http://localhost:8000",
			TaskLimit:       100,
			EmailMaxResults: 10,
		},
		Timing: TimingConfig{
			ContactRefreshDelayMs: 500,
			FullRefreshDelayMs:    1500,
			NotificationPollSec:   30,
		},
		Display: DisplayConfig{
			PageSize:     5,
			FeedCapacity: 20,
		},
		Voice: VoiceConfig{
			Transcriber: "pos-transcribe",
			Locale:      "en-US",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.task_limit", 100)
	v.SetDefault("backend.email_max_results", 10)
	v.SetDefault("timing.contact_refresh_delay_ms", 500)
	v.SetDefault("timing.full_refresh_delay_ms", 1500)
	v.SetDefault("timing.notification_poll_sec", 30)
	v.SetDefault("display.page_size", 5)
	v.SetDefault("display.feed_capacity", 20)
	v.SetDefault("voice.transcriber", "pos-transcribe")
	v.SetDefault("voice.locale", "en-US")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("timing", cfg.Timing)
	v.Set("display", cfg.Display)
	v.Set("voice", cfg.Voice)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
