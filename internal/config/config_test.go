package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ==================== Types Tests ====================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.Log.Level)
	}
	if cfg.Log.Output != "stderr" {
		t.Errorf("expected log output 'stderr', got %q", cfg.Log.Output)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("expected output format 'table', got %q", cfg.Output.Format)
	}
	if cfg.Markup.RootSelector != ".tabs" {
		t.Errorf("expected root selector '.tabs', got %q", cfg.Markup.RootSelector)
	}
	if cfg.Markup.TriggerSelector != ".tabs__button" {
		t.Errorf("expected trigger selector '.tabs__button', got %q", cfg.Markup.TriggerSelector)
	}
	if cfg.Markup.PanelSelector != ".tabs__content" {
		t.Errorf("expected panel selector '.tabs__content', got %q", cfg.Markup.PanelSelector)
	}
	if cfg.Markup.ActiveClass != "is-active" {
		t.Errorf("expected active class 'is-active', got %q", cfg.Markup.ActiveClass)
	}
	if cfg.Viewer.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.Viewer.Theme)
	}
	if cfg.SSH.Port != 2323 {
		t.Errorf("expected ssh port 2323, got %d", cfg.SSH.Port)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSSHConfig_Address(t *testing.T) {
	c := SSHConfig{Host: "0.0.0.0", Port: 22}
	if c.Address() != "0.0.0.0:22" {
		t.Errorf("unexpected address %q", c.Address())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"empty root", func(c *Config) { c.Markup.RootSelector = "" }, "root_selector"},
		{"empty trigger", func(c *Config) { c.Markup.TriggerSelector = "" }, "trigger_selector"},
		{"empty panel", func(c *Config) { c.Markup.PanelSelector = "" }, "panel_selector"},
		{"two classes", func(c *Config) { c.Markup.ActiveClass = "a b" }, "active_class"},
		{"unknown theme", func(c *Config) { c.Viewer.Theme = "neon" }, "viewer.theme"},
		{"theme case", func(c *Config) { c.Viewer.Theme = "Nord" }, ""},
		{"bad port", func(c *Config) { c.SSH.Port = 70000 }, "ssh.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// ==================== Loader Tests ====================

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path should be unchanged, got %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("empty path should be unchanged, got %q", got)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log:
  level: debug
markup:
  root_selector: ".tablist"
  active_class: selected
viewer:
  theme: nord
ssh:
  port: 2424
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected level 'debug', got %q", cfg.Log.Level)
	}
	if cfg.Markup.RootSelector != ".tablist" {
		t.Errorf("expected root selector '.tablist', got %q", cfg.Markup.RootSelector)
	}
	if cfg.Markup.ActiveClass != "selected" {
		t.Errorf("expected active class 'selected', got %q", cfg.Markup.ActiveClass)
	}
	// Unset keys keep their defaults
	if cfg.Markup.TriggerSelector != ".tabs__button" {
		t.Errorf("expected default trigger selector, got %q", cfg.Markup.TriggerSelector)
	}
	if cfg.Viewer.Theme != "nord" {
		t.Errorf("expected theme 'nord', got %q", cfg.Viewer.Theme)
	}
	if cfg.SSH.Port != 2424 {
		t.Errorf("expected port 2424, got %d", cfg.SSH.Port)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("viewer:\n  theme: light\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TABKIT_VIEWER_THEME", "gruvbox")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Viewer.Theme != "gruvbox" {
		t.Errorf("expected env override 'gruvbox', got %q", cfg.Viewer.Theme)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log: [unterminated"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("viewer:\n  theme: neon\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}

// ==================== Generator Tests ====================

func TestWriteConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Viewer.Theme = "dracula"
	if err := WriteConfig(cfg, path, "yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	if loaded.Viewer.Theme != "dracula" {
		t.Errorf("expected theme 'dracula', got %q", loaded.Viewer.Theme)
	}
}

func TestWriteConfig_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := WriteConfig(DefaultConfig(), path, "yaml"); err == nil {
		t.Error("expected error for existing file")
	}
}

func TestWriteConfig_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := WriteConfig(DefaultConfig(), path, "ini"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

// ==================== Watcher Tests ====================

func TestNewWatcher_NoFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("viewer:\n  theme: light\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Current().Viewer.Theme != "light" {
		t.Errorf("expected initial theme 'light', got %q", w.Current().Viewer.Theme)
	}

	got := make(chan string, 1)
	w.OnChange(func(c *Config) { got <- c.Viewer.Theme })

	if err := os.WriteFile(path, []byte("viewer:\n  theme: nord\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	select {
	case theme := <-got:
		if theme != "nord" {
			t.Errorf("expected reloaded theme 'nord', got %q", theme)
		}
	case <-time.After(time.Second):
		t.Fatal("callback not called")
	}
	if w.Current().Viewer.Theme != "nord" {
		t.Errorf("expected current theme 'nord', got %q", w.Current().Viewer.Theme)
	}
}

func TestWatcher_ReloadInvalidKeepsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("viewer:\n  theme: light\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var reported error
	w.OnError(func(err error) { reported = err })

	if err := os.WriteFile(path, []byte("viewer:\n  theme: neon\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Reload(); err == nil {
		t.Error("expected reload error")
	}
	if reported == nil {
		t.Error("expected error callback to be called")
	}
	if w.Current().Viewer.Theme != "light" {
		t.Errorf("expected previous config to be kept, got %q", w.Current().Viewer.Theme)
	}
}
