package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration is returned when the settings file cannot be read or is malformed.
var ErrConfiguration = errors.New("configuration failure")

var resolutionRegex = regexp.MustCompile(`^\d+x\d+$`)

// Config holds everything read from the settings file.
type Config struct {
	Markets         []Market       `yaml:"markets"`
	FirstMarketOnly bool           `yaml:"first_market_only"`
	HideWindow      bool           `yaml:"hide_window"`
	DisplayMode     string         `yaml:"display_mode"`
	Resolution      string         `yaml:"resolution"`
	SmartFit        bool           `yaml:"smart_fit"`
	OutputDir       string         `yaml:"output_dir"`
	FileNaming      string         `yaml:"file_naming"`
	Overlay         *OverlayConfig `yaml:"overlay"`
	Proxy           string         `yaml:"proxy"`
	ProxyUser       string         `yaml:"proxy_user"`
	Schedule        string         `yaml:"schedule"`
	FeedURL         string         `yaml:"feed_url"`
	CheckUpdates    bool           `yaml:"check_updates"`
}

// Market is a locale candidate for the feed.
type Market struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// OverlayConfig describes the optional title overlay. An empty Position disables it.
type OverlayConfig struct {
	Position   string `yaml:"position"`
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
}

// GetPath returns the path to the user's config directory
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName)), nil
}

// GetFilename returns the default settings file path.
func GetFilename() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// Default returns the configuration used when a settings file leaves everything out.
func Default() *Config {
	c := &Config{FirstMarketOnly: true, CheckUpdates: true}
	c.setDefaultValues()
	return c
}

// Load reads, defaults and validates the settings file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
	}
	return Parse(data)
}

// Parse decodes settings from YAML bytes.
func Parse(data []byte) (*Config, error) {
	// Booleans that default to true unless the file says otherwise.
	c := Config{FirstMarketOnly: true, CheckUpdates: true}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: decoding settings: %v", ErrConfiguration, err)
	}

	if proxy := os.Getenv(ProxyEnvVar); proxy != "" {
		c.Proxy = proxy
	}

	c.setDefaultValues()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// setDefaultValues fills in anything the settings file left empty.
func (c *Config) setDefaultValues() {
	if len(c.Markets) == 0 {
		c.Markets = []Market{{ID: DefaultMarketID, Name: DefaultMarketName}}
	}
	for i, m := range c.Markets {
		if m.Name == "" {
			c.Markets[i].Name = m.ID
		}
	}
	c.DisplayMode = strings.ToLower(strings.TrimSpace(c.DisplayMode))
	c.FileNaming = strings.ToLower(strings.TrimSpace(c.FileNaming))
	if c.DisplayMode == "" {
		c.DisplayMode = DefaultDisplayMode
	}
	if c.FileNaming == "" {
		c.FileNaming = DefaultFileNaming
	}
	if c.Schedule == "" {
		c.Schedule = DefaultSchedule
	}
	if c.FeedURL == "" {
		c.FeedURL = DefaultFeedURL
	}
	c.FeedURL = strings.TrimRight(c.FeedURL, "/")
	if c.Overlay != nil {
		if c.Overlay.FontFamily == "" {
			c.Overlay.FontFamily = DefaultFontFamily
		}
		if c.Overlay.FontSize <= 0 {
			c.Overlay.FontSize = DefaultFontSize
		}
	}
}

// Validate checks the structural rules of the configuration.
func (c *Config) Validate() error {
	for i, m := range c.Markets {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("%w: market #%d has no id", ErrConfiguration, i+1)
		}
	}

	switch strings.ToLower(c.DisplayMode) {
	case "tile", "center", "stretch", "fit", "fill":
	default:
		return fmt.Errorf("%w: unknown display_mode %q", ErrConfiguration, c.DisplayMode)
	}

	switch strings.ToLower(c.FileNaming) {
	case "content", "date":
	default:
		return fmt.Errorf("%w: unknown file_naming %q", ErrConfiguration, c.FileNaming)
	}

	if c.Resolution != "" && !resolutionRegex.MatchString(c.Resolution) {
		return fmt.Errorf("%w: resolution %q must look like 1920x1080", ErrConfiguration, c.Resolution)
	}

	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: invalid proxy url %q", ErrConfiguration, c.Proxy)
		}
	}

	if _, err := url.ParseRequestURI(c.FeedURL); err != nil {
		return fmt.Errorf("%w: invalid feed_url %q", ErrConfiguration, c.FeedURL)
	}

	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return fmt.Errorf("%w: invalid schedule %q: %v", ErrConfiguration, c.Schedule, err)
	}
	return nil
}

// OverlayEnabled reports whether a title overlay anchor is configured.
func (c *Config) OverlayEnabled() bool {
	return c.Overlay != nil && strings.TrimSpace(c.Overlay.Position) != ""
}
