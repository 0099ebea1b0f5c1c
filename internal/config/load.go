package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. POCKET_MENU_SWIPE_THRESHOLD
const EnvPrefix = "POCKET"

// Loader reads configuration from defaults, an optional yaml file and the
// environment, and can watch the file for changes.
type Loader struct {
	v      *viper.Viper
	path   string
	loaded bool
}

// NewLoader prepares a loader for path. An empty path uses DefaultPath.
func NewLoader(path string) (*Loader, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = defaultPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	return &Loader{v: v, path: path}, nil
}

// Path returns the config file location
func (l *Loader) Path() string {
	return l.path
}

// Load reads the config file if it exists and returns the merged result
func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %s: %w", l.path, err)
		}
	} else {
		l.loaded = true
	}
	return l.decode()
}

// Watch invokes onChange with the re-read configuration whenever the file
// is written. It does nothing when no file was loaded.
func (l *Loader) Watch(onChange func(Config, fsnotify.Event), onError func(error)) bool {
	if !l.loaded {
		return false
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg, e)
	})
	l.v.WatchConfig()
	return true
}

func (l *Loader) decode() (Config, error) {
	cfg := Default()
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is a shorthand for NewLoader(path) followed by Load
func Load(path string) (Config, error) {
	l, err := NewLoader(path)
	if err != nil {
		return Config{}, err
	}
	return l.Load()
}

// Validate rejects values the UI cannot work with
func Validate(cfg Config) error {
	if cfg.Menu.SwipeThreshold <= 0 {
		return fmt.Errorf("menu.swipe_threshold must be positive, got %d", cfg.Menu.SwipeThreshold)
	}
	if cfg.Menu.CellWidth <= 0 {
		return fmt.Errorf("menu.cell_width must be positive, got %d", cfg.Menu.CellWidth)
	}
	if cfg.Seed < 0 {
		return fmt.Errorf("seed must not be negative, got %d", cfg.Seed)
	}
	if cfg.Favicon.Enabled && cfg.Favicon.Timeout <= 0 {
		return fmt.Errorf("favicon.timeout must be positive when favicon lookup is enabled")
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "", "trace", "debug", "info", "error":
	default:
		return fmt.Errorf("unsupported logging.level %q", cfg.Logging.Level)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("home_url", cfg.HomeURL)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("menu.swipe_threshold", cfg.Menu.SwipeThreshold)
	v.SetDefault("menu.cell_width", cfg.Menu.CellWidth)
	v.SetDefault("favicon.enabled", cfg.Favicon.Enabled)
	v.SetDefault("favicon.endpoint", cfg.Favicon.Endpoint)
	v.SetDefault("favicon.size", cfg.Favicon.Size)
	v.SetDefault("favicon.timeout", cfg.Favicon.Timeout)
	v.SetDefault("layout.max_width", cfg.Layout.MaxWidth)
	v.SetDefault("layout.max_height", cfg.Layout.MaxHeight)
	v.SetDefault("colors.accent", cfg.Colors.Accent)
	v.SetDefault("colors.accent_alt", cfg.Colors.AccentAlt)
	v.SetDefault("colors.brand", cfg.Colors.Brand)
	v.SetDefault("colors.text", cfg.Colors.Text)
	v.SetDefault("colors.muted", cfg.Colors.Muted)
	v.SetDefault("colors.surface", cfg.Colors.Surface)
	v.SetDefault("colors.border_focused", cfg.Colors.BorderFocused)
	v.SetDefault("colors.border_unfocused", cfg.Colors.BorderUnfocused)
	v.SetDefault("colors.danger", cfg.Colors.Danger)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// WriteDefault writes the default config as yaml to path. An empty path
// uses DefaultPath. Existing files are kept unless overwrite is set.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
