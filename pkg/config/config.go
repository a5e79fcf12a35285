// Package config handles loading and saving archguide configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/archguide/config.yaml
//   - State:   ~/.local/state/archguide/ (default export directory)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "archguide"

// UIConfig holds UI preference settings.
type UIConfig struct {
	StartSection int  `yaml:"start_section,omitempty"` // 0-based section shown first
	RowPx        int  `yaml:"row_px,omitempty"`        // Diagram pixels per terminal row
	ShowHelp     bool `yaml:"show_help,omitempty"`     // Show the key help footer
}

// ExportConfig controls where and how the TUI and CLI write exports.
type ExportConfig struct {
	Dir    string `yaml:"dir,omitempty"`
	Format string `yaml:"format,omitempty"` // svg, png, json, html, md, mmd
	Preset string `yaml:"preset,omitempty"` // compact or roomy (PNG scale)
}

// ContentConfig selects the guide content file.
type ContentConfig struct {
	Path       string `yaml:"path,omitempty"`        // Empty means the built-in guide
	Watch      bool   `yaml:"watch,omitempty"`       // Reload the file when it changes
	DebounceMs int    `yaml:"debounce_ms,omitempty"` // Quiet period before a reload; 0 keeps the default
	PollMs     int    `yaml:"poll_ms,omitempty"`     // Poll interval without fsnotify; 0 keeps the default
	ForcePoll  bool   `yaml:"force_poll,omitempty"`  // Poll even where fsnotify works
}

// Config is the top-level configuration for archguide.
type Config struct {
	UI      UIConfig      `yaml:"ui,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty"`
	Content ContentConfig `yaml:"content,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			RowPx:    16,
			ShowHelp: true,
		},
		Export: ExportConfig{
			Dir:    filepath.Join(StateDir(), "exports"),
			Format: "svg",
			Preset: "compact",
		},
	}
}

// ConfigDir returns the XDG config directory for archguide.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the XDG state directory for archguide.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	cfg.Content.Path = expandHome(cfg.Content.Path)
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.UI.RowPx <= 0 {
		c.UI.RowPx = def.UI.RowPx
	}
	if c.UI.StartSection < 0 {
		c.UI.StartSection = 0
	}
	if c.Content.DebounceMs < 0 {
		c.Content.DebounceMs = 0
	}
	if c.Content.PollMs < 0 {
		c.Content.PollMs = 0
	}
	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}
	if c.Export.Format == "" {
		c.Export.Format = def.Export.Format
	}
	c.Export.Format = strings.ToLower(strings.TrimPrefix(c.Export.Format, "."))
	if c.Export.Preset == "" {
		c.Export.Preset = def.Export.Preset
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ContentPath returns the guide file to use: the explicit value if set,
// otherwise the configured content path.
func (c Config) ContentPath(explicit string) string {
	if explicit != "" {
		return expandHome(explicit)
	}
	return c.Content.Path
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
