package cmd

import (
	"errors"
	"os"

	clierrors "tabkit/internal/cli/errors"
	"tabkit/internal/config"
	"tabkit/internal/tui/themes"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configInitFormat      string
	configInitFile        string
	configInitInteractive bool
)

// configCmd groups the configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tabkit configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a configuration file",
	Long: `Write a configuration file with the default settings.

An existing file is never overwritten. With --interactive the theme and
log level are asked for first.

Examples:
  tabkit config init
  tabkit config init --interactive
  tabkit config init --format toml --file ./tabkit.toml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newOutput(cmd)
		if err != nil {
			return err
		}
		return out.Write(config.NewViperFromConfig(cfg).AllSettings())
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "yaml", "file format (yaml, toml, json)")
	configInitCmd.Flags().StringVar(&configInitFile, "file", "", "where to write (default is the user config directory)")
	configInitCmd.Flags().BoolVarP(&configInitInteractive, "interactive", "i", false, "choose settings with a form")

	configCmd.AddCommand(configInitCmd, configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out, err := newOutput(cmd)
	if err != nil {
		return err
	}

	path := configInitFile
	if path == "" {
		path, err = config.DefaultConfigPath(configInitFormat)
		if err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil {
		return clierrors.ConfigExists(path)
	}

	c := config.DefaultConfig()
	if configInitInteractive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierrors.NotTerminal("config init --interactive")
		}
		if err := configForm(c).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return clierrors.UserCancelled()
			}
			return err
		}
	}

	if err := config.WriteConfig(c, path, configInitFormat); err != nil {
		return clierrors.Wrap(err, clierrors.CodeConfigInvalid, "Configuration could not be written").
			WithDetails("File: " + path)
	}
	out.Success("Configuration written to " + path)
	return nil
}

// configForm asks for the settings people change most.
func configForm(c *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Description("Colors used by the viewer").
				Options(huh.NewOptions(themeNames()...)...).
				Value(&c.Viewer.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&c.Log.Level),
			huh.NewConfirm().
				Title("Enable mouse support?").
				Value(&c.Viewer.Mouse),
		),
	).WithTheme(themes.Global().Active().HuhTheme())
}
