package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv(ProxyEnvVar, "")

	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.True(t, cfg.FirstMarketOnly, "first market only should default to true")
	assert.True(t, cfg.CheckUpdates, "update checks should default to true")
	assert.Equal(t, []Market{{ID: DefaultMarketID, Name: DefaultMarketName}}, cfg.Markets)
	assert.Equal(t, DefaultDisplayMode, cfg.DisplayMode)
	assert.Equal(t, DefaultFileNaming, cfg.FileNaming)
	assert.Equal(t, DefaultSchedule, cfg.Schedule)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.False(t, cfg.OverlayEnabled())
}

func TestParseFullSettings(t *testing.T) {
	t.Setenv(ProxyEnvVar, "")

	data := []byte(`
markets:
  - id: en-US
    name: United States
  - id: de-DE
  - id: ja-JP
    name: Japan
first_market_only: false
display_mode: fill
resolution: 2560x1440
file_naming: date
feed_url: https://example.com/
check_updates: false
overlay:
  position: topright
proxy: http://proxy.local:3128
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.False(t, cfg.FirstMarketOnly)
	assert.False(t, cfg.CheckUpdates)
	require.Len(t, cfg.Markets, 3)
	assert.Equal(t, "de-DE", cfg.Markets[1].Name, "missing name should fall back to id")
	assert.Equal(t, "fill", cfg.DisplayMode)
	assert.Equal(t, "2560x1440", cfg.Resolution)
	assert.Equal(t, "https://example.com", cfg.FeedURL)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)

	require.True(t, cfg.OverlayEnabled())
	assert.Equal(t, DefaultFontFamily, cfg.Overlay.FontFamily)
	assert.Equal(t, DefaultFontSize, cfg.Overlay.FontSize)
}

func TestParseProxyFromEnvironment(t *testing.T) {
	t.Setenv(ProxyEnvVar, "http://env-proxy:8080")

	cfg, err := Parse([]byte("proxy: http://file-proxy:3128\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://env-proxy:8080", cfg.Proxy)
}

func TestParseEmptyOverlayPositionDisablesOverlay(t *testing.T) {
	t.Setenv(ProxyEnvVar, "")

	cfg, err := Parse([]byte("overlay:\n  font_family: Go Mono\n"))
	require.NoError(t, err)
	assert.False(t, cfg.OverlayEnabled())
}

func TestParseNormalizesCase(t *testing.T) {
	t.Setenv(ProxyEnvVar, "")

	tests := []struct {
		name        string
		data        string
		displayMode string
		fileNaming  string
	}{
		{"Title Case", "file_naming: Date\ndisplay_mode: Fill\n", "fill", "date"},
		{"Upper Case With Spaces", "file_naming: ' DATE '\ndisplay_mode: ' TILE '\n", "tile", "date"},
		{"Lower Case", "file_naming: content\n", DefaultDisplayMode, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.displayMode, cfg.DisplayMode)
			assert.Equal(t, tt.fileNaming, cfg.FileNaming)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Setenv(ProxyEnvVar, "")

	tests := []struct {
		name string
		data string
	}{
		{"Malformed YAML", "markets: [unclosed"},
		{"Market Without ID", "markets:\n  - name: Nowhere\n"},
		{"Unknown Display Mode", "display_mode: spin\n"},
		{"Unknown File Naming", "file_naming: random\n"},
		{"Bad Resolution", "resolution: big\n"},
		{"Bad Proxy", "proxy: '::nope'\n"},
		{"Bad Schedule", "schedule: every day\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "expected ErrConfiguration, got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(ProxyEnvVar, "")
	dir := t.TempDir()

	t.Run("Missing File", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("Existing File", func(t *testing.T) {
		path := filepath.Join(dir, SettingsFileName)
		require.NoError(t, os.WriteFile(path, []byte("markets:\n  - id: fr-FR\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "fr-FR", cfg.Markets[0].ID)
	})
}

func TestDefaultMatchesEmptyFile(t *testing.T) {
	t.Setenv(ProxyEnvVar, "")

	parsed, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), parsed)
}
