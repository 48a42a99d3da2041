package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/vidyasagar/tpopup/internal/logging"
	"github.com/vidyasagar/tpopup/internal/popup"
)

// Config holds tpopup user configuration.
type Config struct {
	Theme  string       `koanf:"theme"`
	Popup  PopupConfig  `koanf:"popup"`
	Render RenderConfig `koanf:"render"`
	Demo   DemoConfig   `koanf:"demo"`
	Log    LogConfig    `koanf:"log"`
}

// PopupConfig holds the default presentation of dialogs.
type PopupConfig struct {
	Placement            string `koanf:"placement"` // "top", "center" or "bottom"
	MaxWidth             int    `koanf:"max_width"` // cells
	Margin               int    `koanf:"margin"`    // cells
	AllowSelect          bool   `koanf:"allow_select"`
	PreventExternalClose bool   `koanf:"prevent_external_close"`
	CloseLabel           string `koanf:"close_label"`
}

// RenderConfig controls markup rendering.
type RenderConfig struct {
	Style     string `koanf:"style"` // glamour style name, or "plain"
	CacheSize int    `koanf:"cache_size"`
}

// DemoConfig controls the demo screen.
type DemoConfig struct {
	DeleteDelay time.Duration `koanf:"delete_delay"`
	SeedFiles   []string      `koanf:"seed_files"`
}

// LogConfig controls the log file. Logging is off unless Dir is set or
// --debug is given.
type LogConfig struct {
	Dir        string `koanf:"dir"`
	Level      string `koanf:"level"`  // "debug", "info", "warn" or "error"
	Format     string `koanf:"format"` // "json" or "text"
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme: "default",
		Popup: PopupConfig{
			Placement:   "top",
			MaxWidth:    60,
			Margin:      1,
			AllowSelect: true,
			CloseLabel:  "✕",
		},
		Render: RenderConfig{
			Style:     "auto",
			CacheSize: 64,
		},
		Demo: DemoConfig{
			DeleteDelay: 3 * time.Second,
			SeedFiles: []string{
				"quarterly-report.pdf",
				"holiday-photos.zip",
				"notes.txt",
				"budget-2026.xlsx",
				"draft-proposal.docx",
			},
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads the user config file and then ./tpopup.toml, later files
// overriding earlier ones. A non-empty path replaces both.
func LoadConfig(path string) (*Config, error) {
	var paths []string
	if path != "" {
		paths = []string{path}
	} else {
		if dir, err := configDir(); err == nil {
			paths = append(paths, filepath.Join(dir, "config.toml"))
		}
		paths = append(paths, "tpopup.toml")
	}

	k := koanf.New(".")
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if path != "" {
				return nil, fmt.Errorf("reading config: %w", err)
			}
			continue
		}
		if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", p, err)
		}
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if k.Exists("demo.seed_files") {
		cfg.Demo.SeedFiles = k.Strings("demo.seed_files")
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Popup.MaxWidth <= 0 {
		c.Popup.MaxWidth = def.Popup.MaxWidth
	}
	if c.Popup.Margin < 0 {
		c.Popup.Margin = 0
	}
	switch c.Render.Style {
	case "auto", "dark", "light", "notty", "plain":
	default:
		c.Render.Style = def.Render.Style
	}
	if c.Render.CacheSize <= 0 {
		c.Render.CacheSize = def.Render.CacheSize
	}
	if c.Demo.DeleteDelay < 0 {
		c.Demo.DeleteDelay = 0
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format != "text" {
		c.Log.Format = def.Log.Format
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = def.Log.MaxBackups
	}
}

// PopupOptions converts the popup section to dialog presentation options.
func (c *Config) PopupOptions() popup.Options {
	return popup.Options{
		AllowSelect:          c.Popup.AllowSelect,
		PreventExternalClose: c.Popup.PreventExternalClose,
		Placement:            popup.ParsePlacement(c.Popup.Placement),
		MaxWidth:             c.Popup.MaxWidth,
		Margin:               c.Popup.Margin,
	}
}

// LoggingConfig converts the log section to logger settings. A non-empty
// dir replaces the configured one and debug forces the debug level.
func (c *Config) LoggingConfig(dir string, debug bool) logging.Config {
	lc := logging.Config{
		LogDir:     c.Log.Dir,
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		Debug:      debug,
	}
	if dir != "" {
		lc.LogDir = dir
	}
	if debug {
		lc.Level = "debug"
	}
	return lc
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "tpopup")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, "tpopup")
		} else {
			dir = filepath.Join(home, ".tpopup")
		}
	default: // Linux, BSD, etc.
		xdgData := os.Getenv("XDG_DATA_HOME")
		if xdgData != "" {
			dir = filepath.Join(xdgData, "tpopup")
		} else {
			dir = filepath.Join(home, ".local", "share", "tpopup")
		}
	}

	return dir, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tpopup"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tpopup"), nil
		}
		return filepath.Join(home, ".tpopup"), nil
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, "tpopup"), nil
		}
		return filepath.Join(home, ".config", "tpopup"), nil
	}
}
