// Package config loads and generates tabkit configuration.
package config

import (
	"fmt"
	"strings"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level        string `mapstructure:"level"`         // debug, info, warn, error
	Format       string `mapstructure:"format"`        // text, json, pretty
	Output       string `mapstructure:"output"`        // stdout, stderr, or file path
	FilePath     string `mapstructure:"file_path"`     // path to log file (in addition to output)
	MaxSizeMB    int    `mapstructure:"max_size_mb"`   // max size in MB before rotation
	MaxBackups   int    `mapstructure:"max_backups"`   // max number of old log files to keep
	MaxAgeDays   int    `mapstructure:"max_age_days"`  // max days to retain old log files
	EnableCaller bool   `mapstructure:"enable_caller"` // include source file/line in logs
	NoColor      bool   `mapstructure:"no_color"`      // disable colored output (pretty format only)
}

// OutputConfig holds CLI output formatting options
type OutputConfig struct {
	Format string `mapstructure:"format"` // table, json, yaml, quiet
	Color  bool   `mapstructure:"color"`
}

// MarkupConfig holds the structural markers used to discover tab groups.
type MarkupConfig struct {
	RootSelector    string `mapstructure:"root_selector"`
	TriggerSelector string `mapstructure:"trigger_selector"`
	PanelSelector   string `mapstructure:"panel_selector"`
	ActiveClass     string `mapstructure:"active_class"`
}

// ViewerConfig holds terminal viewer options
type ViewerConfig struct {
	Theme     string `mapstructure:"theme"` // dark, light, dracula, nord, gruvbox, auto
	AltScreen bool   `mapstructure:"alt_screen"`
	Mouse     bool   `mapstructure:"mouse"`
}

// SSHConfig holds configuration for serving the viewer over SSH
type SSHConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	HostKeyPath        string `mapstructure:"host_key_path"`
	AuthorizedKeysPath string `mapstructure:"authorized_keys_path"` // empty accepts every key
}

// Address returns host:port.
func (c SSHConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Config is the complete tabkit configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
	Markup MarkupConfig `mapstructure:"markup"`
	Viewer ViewerConfig `mapstructure:"viewer"`
	SSH    SSHConfig    `mapstructure:"ssh"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		Markup: MarkupConfig{
			RootSelector:    ".tabs",
			TriggerSelector: ".tabs__button",
			PanelSelector:   ".tabs__content",
			ActiveClass:     "is-active",
		},
		Viewer: ViewerConfig{
			Theme:     "dark",
			AltScreen: true,
			Mouse:     true,
		},
		SSH: SSHConfig{
			Host:        "127.0.0.1",
			Port:        2323,
			HostKeyPath: "~/.config/tabkit/ssh_host_ed25519",
		},
	}
}

var validThemes = []string{"auto", "dark", "light", "dracula", "nord", "gruvbox"}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	var errs []string

	if c.Markup.RootSelector == "" {
		errs = append(errs, "markup.root_selector must not be empty")
	}
	if c.Markup.TriggerSelector == "" {
		errs = append(errs, "markup.trigger_selector must not be empty")
	}
	if c.Markup.PanelSelector == "" {
		errs = append(errs, "markup.panel_selector must not be empty")
	}
	if strings.ContainsAny(c.Markup.ActiveClass, " \t\n") || c.Markup.ActiveClass == "" {
		errs = append(errs, "markup.active_class must be a single class name")
	}

	theme := strings.ToLower(c.Viewer.Theme)
	known := false
	for _, t := range validThemes {
		if theme == t {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, fmt.Sprintf("viewer.theme %q is not one of %v", c.Viewer.Theme, validThemes))
	}

	if c.SSH.Port < 0 || c.SSH.Port > 65535 {
		errs = append(errs, fmt.Sprintf("ssh.port %d is out of range", c.SSH.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
