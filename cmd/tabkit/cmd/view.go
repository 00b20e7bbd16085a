package cmd

import (
	"errors"
	"os"
	"strings"

	clierrors "tabkit/internal/cli/errors"
	"tabkit/internal/config"
	"tabkit/internal/logger"
	"tabkit/internal/tui"
	"tabkit/internal/tui/themes"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	viewTheme string
	viewTitle string
	viewWatch bool
)

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Browse the tab groups of a document in the terminal",
	Long: `Open an HTML document in an interactive terminal viewer.

Tab moves focus between tabs, the arrow keys switch tabs inside the focused
group, Home/End (or alt+arrow) jump to the first or last tab, and a mouse
click activates a tab. Pass '-' to read the document from standard input.

Examples:
  tabkit view docs/install.html
  tabkit view --theme nord --watch page.html`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewTheme, "theme", "", "theme (dark, light, dracula, nord, gruvbox, auto)")
	viewCmd.Flags().StringVar(&viewTitle, "title", "", "heading (defaults to the document title)")
	viewCmd.Flags().BoolVar(&viewWatch, "watch", false, "reload the theme when the config file changes")
}

func runView(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return clierrors.NotTerminal("view")
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	themeName := cfg.Viewer.Theme
	if viewTheme != "" {
		themeName = viewTheme
	}
	theme, err := themes.Global().Use(themeName)
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeValidation, "Unknown theme").
			WithSuggestions("Use one of: " + strings.Join(themeNames(), ", "))
	}

	vlog, err := viewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer vlog.Close()

	m, err := tui.New(doc,
		tui.WithTheme(theme),
		tui.WithLogger(vlog),
		tui.WithSelectors(selectors()),
		tui.WithTitle(viewTitle),
	)
	if err != nil {
		return selectorError(err)
	}

	p := tea.NewProgram(m, tui.ProgramOptions(cfg.Viewer)...)

	if viewWatch {
		if err := watchTheme(p, vlog); err != nil {
			return err
		}
	}

	_, err = p.Run()
	return err
}

// viewLogger returns the logger for the viewer. Records must not reach the
// terminal the viewer draws on, so console outputs are redirected to the
// configured log file, or dropped when there is none.
func viewLogger(lc config.LogConfig) (*logger.Logger, error) {
	switch strings.ToLower(lc.Output) {
	case "stdout", "stderr", "":
		if lc.FilePath == "" {
			return logger.Discard(), nil
		}
		lc.Output = lc.FilePath
		lc.FilePath = ""
	}
	return logger.New(lc)
}

// watchTheme sends a ThemeMsg to p whenever the config file changes.
func watchTheme(p *tea.Program, vlog *logger.Logger) error {
	w, err := config.NewWatcher(cfgFile)
	if errors.Is(err, config.ErrNoConfigFile) {
		vlog.Warn("no config file to watch; theme reload disabled")
		return nil
	}
	if err != nil {
		return clierrors.ConfigInvalid(cfgFile, err)
	}

	w.OnChange(func(c *config.Config) {
		theme, err := themes.Global().Use(c.Viewer.Theme)
		if err != nil {
			vlog.Warn("ignoring theme change", logger.WithError(err))
			return
		}
		vlog.Info("theme reloaded", "theme", theme.Name)
		p.Send(tui.ThemeMsg{Theme: theme})
	})
	w.OnError(func(err error) {
		vlog.Warn("config reload failed", logger.WithError(err))
	})
	w.Start()
	vlog.Debug("watching config", "file", w.File())
	return nil
}

// themeNames lists every accepted theme name.
func themeNames() []string {
	names := []string{string(themes.PresetAuto)}
	for _, n := range themes.Global().ListPresets() {
		names = append(names, string(n))
	}
	return names
}
