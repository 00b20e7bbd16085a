package tui

import (
	"fmt"
	"strings"

	"tabkit/internal/tabs"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model. It records the screen position of every
// trigger it draws so mouse clicks can be hit-tested against them.
func (m *Model) View() string {
	m.zones = m.zones[:0]

	var b strings.Builder
	row := 0
	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		row += lipgloss.Height(s)
	}

	if m.title != "" {
		write(m.theme.Title.Render(m.title))
	}

	if len(m.groups) == 0 {
		write(m.theme.Muted.Render("no tab groups found"))
	}

	focused, focusedTab := m.FocusedTab()
	for _, g := range m.groups {
		write(m.theme.GroupLabel.Render(g.Name()))
		if g.Len() == 0 {
			write(m.theme.Muted.Render("(no tabs)"))
			write("")
			continue
		}
		focus := -1
		if g == focused {
			focus = focusedTab
		}
		write(m.tabBar(g, row, focus))
		write(m.panel(g, g == focused))
		write("")
	}

	if m.status != "" {
		write(m.theme.Status.Render(m.status))
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// tabBar renders the triggers of g side by side and records their zones
// on the given screen row. Trigger focus is underlined.
func (m *Model) tabBar(g *tabs.Group, row, focus int) string {
	activeClass := g.Selectors().ActiveClass
	triggers := g.Triggers()
	parts := make([]string, 0, len(triggers))

	x := 0
	for i, t := range triggers {
		label := t.Text()
		if label == "" {
			label = fmt.Sprintf("Tab %d", i+1)
		}
		cell := m.theme.Tab(t.HasClass(activeClass), i == focus).Render(label)
		w := lipgloss.Width(cell)
		m.zones = append(m.zones, zone{row: row, left: x, right: x + w, el: t})
		x += w
		parts = append(parts, cell)
	}
	return m.theme.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m *Model) panel(g *tabs.Group, focused bool) string {
	style := m.theme.Panel
	if focused {
		style = m.theme.PanelFocused
	}
	if m.width > 4 {
		// Width covers padding; the border adds one column each side.
		style = style.Width(m.width - 2)
	}

	p := g.ActivePanel()
	if p == nil {
		return style.Render(m.theme.Muted.Render("(no panel)"))
	}
	lines := p.Lines()
	if len(lines) == 0 {
		return style.Render(m.theme.Muted.Render("(empty)"))
	}
	return style.Render(strings.Join(lines, "\n"))
}
