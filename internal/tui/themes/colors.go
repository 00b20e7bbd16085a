package themes

import "github.com/charmbracelet/lipgloss"

// ColorPalette is the set of colors a theme derives its styles from.
type ColorPalette struct {
	Primary lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Text   lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor
	Subtle lipgloss.AdaptiveColor

	Surface   lipgloss.AdaptiveColor
	Selection lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Focus     lipgloss.AdaptiveColor
}

// DarkPalette returns the default dark palette. The light variants keep it
// readable on terminals that report a light background.
func DarkPalette() ColorPalette {
	return ColorPalette{
		Primary:   lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"},
		Accent:    lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"},
		Error:     lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"},
		Text:      lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F9FAFB"},
		Muted:     lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Subtle:    lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"},
		Surface:   lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"},
		Selection: lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#312E81"},
		Border:    lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"},
		Focus:     lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"},
	}
}

// LightPalette returns the default light palette.
func LightPalette() ColorPalette {
	return ColorPalette{
		Primary:   fixed("#7C3AED"),
		Accent:    fixed("#059669"),
		Error:     fixed("#DC2626"),
		Text:      fixed("#1F2937"),
		Muted:     fixed("#6B7280"),
		Subtle:    fixed("#9CA3AF"),
		Surface:   fixed("#F3F4F6"),
		Selection: fixed("#EDE9FE"),
		Border:    fixed("#E5E7EB"),
		Focus:     fixed("#2563EB"),
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() ColorPalette {
	return ColorPalette{
		Primary:   fixed("#BD93F9"),
		Accent:    fixed("#FF79C6"),
		Error:     fixed("#FF5555"),
		Text:      fixed("#F8F8F2"),
		Muted:     fixed("#6272A4"),
		Subtle:    fixed("#44475A"),
		Surface:   fixed("#343746"),
		Selection: fixed("#44475A"),
		Border:    fixed("#44475A"),
		Focus:     fixed("#8BE9FD"),
	}
}

// NordPalette returns the Nord palette.
func NordPalette() ColorPalette {
	return ColorPalette{
		Primary:   fixed("#88C0D0"),
		Accent:    fixed("#A3BE8C"),
		Error:     fixed("#BF616A"),
		Text:      fixed("#ECEFF4"),
		Muted:     fixed("#D8DEE9"),
		Subtle:    fixed("#4C566A"),
		Surface:   fixed("#3B4252"),
		Selection: fixed("#434C5E"),
		Border:    fixed("#4C566A"),
		Focus:     fixed("#81A1C1"),
	}
}

// GruvboxPalette returns the Gruvbox palette.
func GruvboxPalette() ColorPalette {
	return ColorPalette{
		Primary:   lipgloss.AdaptiveColor{Light: "#D79921", Dark: "#FABD2F"},
		Accent:    lipgloss.AdaptiveColor{Light: "#98971A", Dark: "#B8BB26"},
		Error:     lipgloss.AdaptiveColor{Light: "#CC241D", Dark: "#FB4934"},
		Text:      fixed("#EBDBB2"),
		Muted:     fixed("#A89984"),
		Subtle:    fixed("#665C54"),
		Surface:   fixed("#3C3836"),
		Selection: fixed("#504945"),
		Border:    fixed("#504945"),
		Focus:     lipgloss.AdaptiveColor{Light: "#458588", Dark: "#83A598"},
	}
}

func fixed(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}
