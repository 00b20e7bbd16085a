package tui

import (
	"strings"
	"testing"

	"tabkit/internal/config"
	"tabkit/internal/dom"
	"tabkit/internal/tabs"
	"tabkit/internal/tui/themes"

	tea "github.com/charmbracelet/bubbletea"
)

const fixture = `<!doctype html>
<html><head><title>Release notes</title></head><body>
<div class="tabs" id="versions">
  <div role="tablist">
    <button class="tabs__button">v1</button>
    <button class="tabs__button">v2</button>
    <button class="tabs__button">v3</button>
  </div>
  <div class="tabs__content"><p>First release.</p></div>
  <div class="tabs__content"><p>Second release.</p><p>With notes.</p></div>
  <div class="tabs__content"><p>Third release.</p></div>
</div>
<div class="tabs" id="platforms">
  <button class="tabs__button">linux</button>
  <button class="tabs__button">darwin</button>
  <div class="tabs__content">apt install</div>
  <div class="tabs__content">brew install</div>
</div>
</body></html>`

func newModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	doc, err := dom.ParseString(fixture)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := New(doc, opts...)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return m
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	m := newModel(t)

	if len(m.Groups()) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(m.Groups()))
	}
	if m.title != "Release notes" {
		t.Errorf("expected title from document, got %q", m.title)
	}
	// Focus starts on the first group's active trigger.
	if m.FocusedGroup() != m.Groups()[0] {
		t.Error("expected focus in the first group")
	}
	if !m.Groups()[0].Triggers()[0].Focused() {
		t.Error("expected the first trigger focused")
	}
}

func TestNew_InvalidSelectors(t *testing.T) {
	doc, _ := dom.ParseString(fixture)
	_, err := New(doc, WithSelectors(tabs.Selectors{Root: "::bogus("}))
	if err == nil {
		t.Fatal("expected error for invalid selector")
	}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want dom.KeyEvent
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, dom.KeyEvent{Code: dom.KeyArrowLeft}, true},
		{tea.KeyMsg{Type: tea.KeyRight}, dom.KeyEvent{Code: dom.KeyArrowRight}, true},
		{tea.KeyMsg{Type: tea.KeyHome}, dom.KeyEvent{Code: dom.KeyHome}, true},
		{tea.KeyMsg{Type: tea.KeyEnd}, dom.KeyEvent{Code: dom.KeyEnd}, true},
		{tea.KeyMsg{Type: tea.KeyLeft, Alt: true}, dom.KeyEvent{Code: dom.KeyArrowLeft, Meta: true, Alt: true}, true},
		{tea.KeyMsg{Type: tea.KeyCtrlRight}, dom.KeyEvent{Code: dom.KeyArrowRight, Meta: true, Ctrl: true}, true},
		{runes("x"), dom.KeyEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := KeyEvent(tt.msg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("KeyEvent(%q) = %+v, %v; want %+v, %v", tt.msg.String(), got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUpdate_ArrowKeys(t *testing.T) {
	m := newModel(t)
	g := m.Groups()[0]

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if g.ActiveIndex() != 1 {
		t.Fatalf("expected index 1, got %d", g.ActiveIndex())
	}
	if !g.Triggers()[1].Focused() {
		t.Error("focus should follow the active trigger")
	}

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if g.ActiveIndex() != 2 {
		t.Errorf("expected wrap to 2, got %d", g.ActiveIndex())
	}

	press(m, tea.KeyMsg{Type: tea.KeyHome})
	if g.ActiveIndex() != 0 {
		t.Errorf("expected home to reach 0, got %d", g.ActiveIndex())
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	if g.ActiveIndex() != 2 {
		t.Errorf("expected end to reach 2, got %d", g.ActiveIndex())
	}

	if m.Groups()[1].ActiveIndex() != 0 {
		t.Error("second group should be untouched")
	}
	if !strings.Contains(m.Status(), "versions: v3") {
		t.Errorf("unexpected status %q", m.Status())
	}
}

func TestUpdate_ModifierKeys(t *testing.T) {
	m := newModel(t)
	g := m.Groups()[0]

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if g.ActiveIndex() != 0 {
		t.Errorf("alt+left should go to the first tab, got %d", g.ActiveIndex())
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlRight})
	if g.ActiveIndex() != 2 {
		t.Errorf("ctrl+right should go to the last tab, got %d", g.ActiveIndex())
	}
}

func TestUpdate_FocusAndActivate(t *testing.T) {
	m := newModel(t)
	second := m.Groups()[1]

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedGroup() != second {
		t.Fatal("tab should move focus to the second group")
	}

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if second.ActiveIndex() != 1 {
		t.Errorf("expected index 1 in second group, got %d", second.ActiveIndex())
	}

	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedGroup() != m.Groups()[0] {
		t.Error("shift+tab should move focus back")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Groups()[0].ActiveIndex() != 0 {
		t.Errorf("enter on the active trigger keeps it, got %d", m.Groups()[0].ActiveIndex())
	}
	if !strings.Contains(m.Status(), "pointer") {
		t.Errorf("enter dispatches a click, status %q", m.Status())
	}
}

func TestFocusedTab(t *testing.T) {
	m := newModel(t)

	tests := []struct {
		name  string
		key   tea.KeyMsg
		group int
		index int
	}{
		{"tab to second group", tea.KeyMsg{Type: tea.KeyTab}, 1, 0},
		{"arrow moves focus", tea.KeyMsg{Type: tea.KeyRight}, 1, 1},
		{"shift+tab back", tea.KeyMsg{Type: tea.KeyShiftTab}, 0, 0},
		{"arrow wraps", tea.KeyMsg{Type: tea.KeyLeft}, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			press(m, tt.key)
			g, idx := m.FocusedTab()
			if g != m.Groups()[tt.group] {
				t.Fatalf("expected focus in group %d", tt.group)
			}
			if idx != tt.index {
				t.Errorf("focused trigger = %d, want %d", idx, tt.index)
			}
		})
	}

	m.doc.ActiveElement().Blur()
	if g, idx := m.FocusedTab(); g != nil || idx != -1 {
		t.Errorf("expected no focused tab after blur, got %v, %d", g, idx)
	}
}

func TestUpdate_Jump(t *testing.T) {
	m := newModel(t)
	g := m.Groups()[0]

	press(m, runes("3"))
	if g.ActiveIndex() != 2 {
		t.Errorf("expected jump to 2, got %d", g.ActiveIndex())
	}

	press(m, runes("9"))
	if g.ActiveIndex() != 2 {
		t.Errorf("out of range jump should be ignored, got %d", g.ActiveIndex())
	}
}

func TestUpdate_UnknownKeysInert(t *testing.T) {
	m := newModel(t)
	before := m.Document().String()

	for _, msg := range []tea.KeyMsg{runes("x"), {Type: tea.KeyUp}, {Type: tea.KeyDown}, {Type: tea.KeyEsc}} {
		press(m, msg)
	}
	if m.Document().String() != before {
		t.Error("unmapped keys changed the document")
	}
	if m.Status() != "" {
		t.Errorf("expected no status, got %q", m.Status())
	}
}

func TestUpdate_QuitAndHelp(t *testing.T) {
	m := newModel(t)

	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	press(m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
}

func TestUpdate_Mouse(t *testing.T) {
	m := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	view := m.View()
	lines := strings.Split(view, "\n")

	second := m.Groups()[1]
	target := second.Triggers()[1]
	var z *zone
	for i := range m.zones {
		if m.zones[i].el == target {
			z = &m.zones[i]
		}
	}
	if z == nil {
		t.Fatal("no zone recorded for trigger")
	}
	if !strings.Contains(lines[z.row], "darwin") {
		t.Fatalf("zone row %d does not hold the tab bar: %q", z.row, lines[z.row])
	}

	m.Update(tea.MouseMsg{X: z.left + 1, Y: z.row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if second.ActiveIndex() != 1 {
		t.Errorf("click should activate tab 1, got %d", second.ActiveIndex())
	}

	// Releases and clicks outside any trigger do nothing.
	m.Update(tea.MouseMsg{X: z.left, Y: z.row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 79, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if second.ActiveIndex() != 1 {
		t.Errorf("unexpected change, got %d", second.ActiveIndex())
	}
}

func TestView(t *testing.T) {
	m := newModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyRight})

	view := m.View()
	for _, want := range []string{"Release notes", "versions", "platforms", "Second release.", "With notes.", "apt install"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
	for _, hidden := range []string{"First release.", "Third release.", "brew install"} {
		if strings.Contains(view, hidden) {
			t.Errorf("hidden panel text %q rendered", hidden)
		}
	}
}

func TestView_EmptyDocument(t *testing.T) {
	doc, _ := dom.ParseString(`<p>plain</p>`)
	m, err := New(doc, WithTitle("plain"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.Contains(m.View(), "no tab groups found") {
		t.Error("expected empty notice")
	}
}

func TestUpdate_ThemeMsg(t *testing.T) {
	m := newModel(t, WithTheme(themes.DarkTheme()))
	m.Update(ThemeMsg{Theme: themes.NordTheme()})
	if m.Theme().Name != "nord" {
		t.Errorf("expected nord, got %q", m.Theme().Name)
	}
	m.Update(ThemeMsg{})
	if m.Theme().Name != "nord" {
		t.Error("nil theme should be ignored")
	}
}

func TestProgramOptions(t *testing.T) {
	if n := len(ProgramOptions(config.ViewerConfig{})); n != 0 {
		t.Errorf("expected no options, got %d", n)
	}
	if n := len(ProgramOptions(config.ViewerConfig{AltScreen: true, Mouse: true})); n != 2 {
		t.Errorf("expected 2 options, got %d", n)
	}
}
