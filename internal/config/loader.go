package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppName is used for config directories and the environment prefix.
const AppName = "tabkit"

// configSearchPaths returns the paths to search for config files in order of precedence
// (later paths have higher priority in Viper)
func configSearchPaths(appName string) []string {
	paths := []string{}

	// System-wide (lowest priority)
	paths = append(paths, filepath.Join("/etc", appName))

	// User-specific
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	// Current directory (highest priority for files)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}

	return paths
}

// UserConfigDir returns the user-specific config directory for the app
func UserConfigDir(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// newViper creates and configures a new Viper instance for the given app
func newViper(appName string) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	for _, path := range configSearchPaths(appName) {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load loads the configuration. An empty cfgFile searches the default
// locations; a missing file there is not an error.
func Load(cfgFile string) (*Config, error) {
	v := newViper(AppName)
	setViperDefaults(v, DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults + env vars
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SSH.HostKeyPath = ExpandPath(cfg.SSH.HostKeyPath)
	cfg.SSH.AuthorizedKeysPath = ExpandPath(cfg.SSH.AuthorizedKeysPath)
	cfg.Log.FilePath = ExpandPath(cfg.Log.FilePath)
	return &cfg, nil
}

// setViperDefaults registers every key so env overrides and Unmarshal see it
func setViperDefaults(v *viper.Viper, c *Config) {
	for key, value := range flatten(c) {
		v.SetDefault(key, value)
	}
}

// NewViperFromConfig creates a viper instance populated with values from a config struct
func NewViperFromConfig(c *Config) *viper.Viper {
	v := viper.New()
	for key, value := range flatten(c) {
		v.Set(key, value)
	}
	return v
}

func flatten(c *Config) map[string]any {
	return map[string]any{
		"log.level":                c.Log.Level,
		"log.format":               c.Log.Format,
		"log.output":               c.Log.Output,
		"log.file_path":            c.Log.FilePath,
		"log.max_size_mb":          c.Log.MaxSizeMB,
		"log.max_backups":          c.Log.MaxBackups,
		"log.max_age_days":         c.Log.MaxAgeDays,
		"log.enable_caller":        c.Log.EnableCaller,
		"log.no_color":             c.Log.NoColor,
		"output.format":            c.Output.Format,
		"output.color":             c.Output.Color,
		"markup.root_selector":     c.Markup.RootSelector,
		"markup.trigger_selector":  c.Markup.TriggerSelector,
		"markup.panel_selector":    c.Markup.PanelSelector,
		"markup.active_class":      c.Markup.ActiveClass,
		"viewer.theme":             c.Viewer.Theme,
		"viewer.alt_screen":        c.Viewer.AltScreen,
		"viewer.mouse":             c.Viewer.Mouse,
		"ssh.host":                 c.SSH.Host,
		"ssh.port":                 c.SSH.Port,
		"ssh.host_key_path":        c.SSH.HostKeyPath,
		"ssh.authorized_keys_path": c.SSH.AuthorizedKeysPath,
	}
}
