package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	require.Equal(t, 100, cfg.Backend.TaskLimit)
	require.Equal(t, 10, cfg.Backend.EmailMaxResults)
	require.Equal(t, 500*time.Millisecond, cfg.ContactRefreshDelay())
	require.Equal(t, 1500*time.Millisecond, cfg.FullRefreshDelay())
	require.Equal(t, 30*time.Second, cfg.NotificationPollInterval())
	require.Equal(t, 5, cfg.Display.PageSize)
	require.Equal(t, 20, cfg.Display.FeedCapacity)
	require.Equal(t, "pos-transcribe", cfg.Voice.Transcriber)
	require.Equal(t, "en-US", cfg.Voice.Locale)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
backend:
  base_url: http://backend.internal:9000
timing:
  full_refresh_delay_ms: 3000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "http://backend.internal:9000", cfg.Backend.BaseURL)
	require.Equal(t, 3*time.Second, cfg.FullRefreshDelay())
	// Unmentioned keys resolve to defaults.
	require.Equal(t, 500*time.Millisecond, cfg.ContactRefreshDelay())
	require.Equal(t, 5, cfg.Display.PageSize)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Backend.BaseURL = "http://example.com:8000"
	cfg.Timing.ContactRefreshDelayMs = 750
	cfg.Display.PageSize = 7
	cfg.Voice.Locale = "pt-PT"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
