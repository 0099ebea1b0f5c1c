package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all application configuration
type Config struct {
	HomeURL string `mapstructure:"home_url" yaml:"home_url"`
	Seed    int64  `mapstructure:"seed" yaml:"seed"` // 0 picks a random seed

	Menu    MenuConfig    `mapstructure:"menu" yaml:"menu"`
	Favicon FaviconConfig `mapstructure:"favicon" yaml:"favicon"`
	Layout  LayoutConfig  `mapstructure:"layout" yaml:"layout"`
	Colors  ColorConfig   `mapstructure:"colors" yaml:"colors"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// MenuConfig holds swipe settings for the paginated menu
type MenuConfig struct {
	SwipeThreshold int `mapstructure:"swipe_threshold" yaml:"swipe_threshold"` // pixels
	CellWidth      int `mapstructure:"cell_width" yaml:"cell_width"`           // pixels per terminal column
}

// FaviconConfig controls the remote icon lookup
type FaviconConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Size     int           `mapstructure:"size" yaml:"size"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LayoutConfig holds layout-related settings
type LayoutConfig struct {
	MaxWidth  int `mapstructure:"max_width" yaml:"max_width"`   // phone frame columns
	MaxHeight int `mapstructure:"max_height" yaml:"max_height"` // phone frame rows
}

// ColorConfig holds color definitions
type ColorConfig struct {
	Accent          string `mapstructure:"accent" yaml:"accent"`
	AccentAlt       string `mapstructure:"accent_alt" yaml:"accent_alt"`
	Brand           string `mapstructure:"brand" yaml:"brand"`
	Text            string `mapstructure:"text" yaml:"text"`
	Muted           string `mapstructure:"muted" yaml:"muted"`
	Surface         string `mapstructure:"surface" yaml:"surface"`
	BorderFocused   string `mapstructure:"border_focused" yaml:"border_focused"`
	BorderUnfocused string `mapstructure:"border_unfocused" yaml:"border_unfocused"`
	Danger          string `mapstructure:"danger" yaml:"danger"`
}

// LoggingConfig selects where logs go. The terminal is owned by the UI,
// so an empty file discards logs.
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"` // trace, debug, info, error
}

// Default returns the default configuration
func Default() Config {
	return Config{
		HomeURL: "https://www.google.com",
		Menu: MenuConfig{
			SwipeThreshold: 50,
			CellWidth:      8,
		},
		Favicon: FaviconConfig{
			Enabled:  true,
			Endpoint: "https://www.google.com/s2/favicons",
			Size:     32,
			Timeout:  3 * time.Second,
		},
		Layout: LayoutConfig{
			MaxWidth:  48,
			MaxHeight: 40,
		},
		Colors: ColorConfig{
			Accent:          "#3b82f6",
			AccentAlt:       "#9333ea",
			Brand:           "#ef4444",
			Text:            "#f3f4f6",
			Muted:           "#9ca3af",
			Surface:         "#111827",
			BorderFocused:   "#3b82f6",
			BorderUnfocused: "#1f2937",
			Danger:          "#f87171",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.config/pocket/config.yml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pocket", "config.yml"), nil
}
