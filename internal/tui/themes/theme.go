package themes

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles the viewer renders with.
type Theme struct {
	// Name is the preset the theme was built from.
	Name    string
	Palette ColorPalette

	Base       lipgloss.Style
	Title      lipgloss.Style
	GroupLabel lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style

	// Tab bar
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	// Panel is the box around the visible panel's text.
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	HelpSep  lipgloss.Style
}

// Clone creates a copy of the theme
func (t *Theme) Clone() *Theme {
	clone := *t
	return &clone
}

// WithPalette creates a new theme with the given palette
func (t *Theme) WithPalette(p ColorPalette) *Theme {
	clone := t.Clone()
	clone.Palette = p
	clone.rebuildStyles()
	return clone
}

func (t *Theme) rebuildStyles() {
	p := t.Palette

	t.Base = lipgloss.NewStyle().Foreground(p.Text)
	t.Title = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).MarginBottom(1)
	t.GroupLabel = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	t.Muted = lipgloss.NewStyle().Foreground(p.Subtle)
	t.Error = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	t.Status = lipgloss.NewStyle().Foreground(p.Accent)

	t.TabActive = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Selection).
		Bold(true).
		Padding(0, 2)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 2)
	t.TabBar = lipgloss.NewStyle().
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border)

	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Padding(0, 1)
	t.PanelFocused = t.Panel.BorderForeground(p.Focus)

	t.HelpKey = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	t.HelpDesc = lipgloss.NewStyle().Foreground(p.Muted)
	t.HelpSep = lipgloss.NewStyle().Foreground(p.Subtle)
}

// Tab returns the style for a trigger. The trigger holding document focus
// is underlined in the focus color.
func (t *Theme) Tab(active, focused bool) lipgloss.Style {
	s := t.TabInactive
	if active {
		s = t.TabActive
	}
	if focused {
		s = s.Underline(true).Foreground(t.Palette.Focus)
	}
	return s
}

// HelpStyles returns bubbles/help styles matching the theme
func (t *Theme) HelpStyles() help.Styles {
	s := help.New().Styles
	s.ShortKey = t.HelpKey
	s.ShortDesc = t.HelpDesc
	s.ShortSeparator = t.HelpSep
	s.FullKey = t.HelpKey
	s.FullDesc = t.HelpDesc
	s.FullSeparator = t.HelpSep
	s.Ellipsis = t.HelpSep
	return s
}

// HuhTheme returns a huh.Theme based on this theme
func (t *Theme) HuhTheme() *huh.Theme {
	ht := huh.ThemeBase()
	p := t.Palette

	ht.Focused.Title = ht.Focused.Title.Foreground(p.Primary).Bold(true)
	ht.Focused.Description = ht.Focused.Description.Foreground(p.Muted)
	ht.Focused.Base = ht.Focused.Base.BorderForeground(p.Primary)
	ht.Focused.SelectedOption = ht.Focused.SelectedOption.Foreground(p.Primary)
	ht.Focused.SelectSelector = ht.Focused.SelectSelector.Foreground(p.Primary)

	ht.Blurred.Title = ht.Blurred.Title.Foreground(p.Muted)
	ht.Blurred.Description = ht.Blurred.Description.Foreground(p.Subtle)

	return ht
}

func buildTheme(name string, palette ColorPalette) *Theme {
	t := &Theme{
		Name:    name,
		Palette: palette,
	}
	t.rebuildStyles()
	return t
}

// DarkTheme returns the default dark theme
func DarkTheme() *Theme {
	return buildTheme(string(PresetDark), DarkPalette())
}

// LightTheme returns the default light theme
func LightTheme() *Theme {
	return buildTheme(string(PresetLight), LightPalette())
}

// DraculaTheme returns the Dracula theme
func DraculaTheme() *Theme {
	return buildTheme(string(PresetDracula), DraculaPalette())
}

// NordTheme returns the Nord theme
func NordTheme() *Theme {
	return buildTheme(string(PresetNord), NordPalette())
}

// GruvboxTheme returns the Gruvbox theme
func GruvboxTheme() *Theme {
	return buildTheme(string(PresetGruvbox), GruvboxPalette())
}
