package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.RowPx != 16 {
		t.Errorf("expected row_px 16, got %d", cfg.UI.RowPx)
	}
	if !cfg.UI.ShowHelp {
		t.Error("expected help footer on by default")
	}
	if cfg.Export.Format != "svg" {
		t.Errorf("expected export format 'svg', got %q", cfg.Export.Format)
	}
	if cfg.Content.Path != "" || cfg.Content.Watch {
		t.Errorf("expected built-in content by default, got %+v", cfg.Content)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Export.Preset != "compact" {
		t.Errorf("expected default config, got preset %q", cfg.Export.Preset)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
ui:
  start_section: 2
  row_px: 24
  show_help: false

export:
  dir: ~/diagrams
  format: .PNG
  preset: roomy

content:
  path: ~/guides/ai.yaml
  watch: true
  debounce_ms: 300
  force_poll: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.UI.StartSection != 2 || cfg.UI.RowPx != 24 {
		t.Errorf("unexpected ui config: %+v", cfg.UI)
	}
	if cfg.Export.Format != "png" {
		t.Errorf("expected normalized format 'png', got %q", cfg.Export.Format)
	}
	// Paths should have ~ expanded
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "diagrams"); cfg.Export.Dir != want {
		t.Errorf("expected expanded export dir %q, got %q", want, cfg.Export.Dir)
	}
	if want := filepath.Join(home, "guides/ai.yaml"); cfg.Content.Path != want {
		t.Errorf("expected expanded content path %q, got %q", want, cfg.Content.Path)
	}
	if !cfg.Content.Watch {
		t.Error("expected watch to be enabled")
	}
	if cfg.Content.DebounceMs != 300 || cfg.Content.PollMs != 0 || !cfg.Content.ForcePoll {
		t.Errorf("unexpected watch tuning: %+v", cfg.Content)
	}
}

func TestLoadFrom_NormalizesBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  row_px: -3\n  start_section: -1\ncontent:\n  poll_ms: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.RowPx != 16 {
		t.Errorf("negative row_px should fall back to 16, got %d", cfg.UI.RowPx)
	}
	if cfg.UI.StartSection != 0 {
		t.Errorf("negative start section should clamp to 0, got %d", cfg.UI.StartSection)
	}
	if cfg.Content.PollMs != 0 {
		t.Errorf("negative poll_ms should clamp to 0, got %d", cfg.Content.PollMs)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.StartSection = 3
	cfg.Export.Format = "html"
	cfg.Content.Path = "/tmp/guide.toml"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.UI.StartSection != 3 || loaded.Export.Format != "html" || loaded.Content.Path != "/tmp/guide.toml" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestContentPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.Path = "/from/config.yaml"

	if got := cfg.ContentPath(""); got != "/from/config.yaml" {
		t.Errorf("expected configured path, got %q", got)
	}
	if got := cfg.ContentPath("/flag.json"); got != "/flag.json" {
		t.Errorf("explicit path should win, got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"~/", filepath.Join(home, "")},
		{"/absolute", "/absolute"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		got := expandHome(tt.input)
		if got != tt.expected {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := ConfigDir()
	expected := filepath.Join(dir, "archguide")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
	if ConfigPath() != filepath.Join(expected, "config.yaml") {
		t.Errorf("unexpected config path %q", ConfigPath())
	}
}

func TestStateDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	got := StateDir()
	expected := filepath.Join(dir, "archguide")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
	if DefaultConfig().Export.Dir != filepath.Join(expected, "exports") {
		t.Errorf("export dir should live under the state dir, got %q", DefaultConfig().Export.Dir)
	}
}
