// Package tui is the terminal viewer for documents with tab groups.
//
// A Model hosts one parsed dom.Document and the tabs.Group controllers
// built over it. Key presses are translated into document key events and
// dispatched to the focused element, so the groups' own keydown listeners
// do the navigation; mouse clicks on a rendered trigger dispatch a click.
package tui

import (
	"fmt"
	"strconv"

	"tabkit/internal/config"
	"tabkit/internal/dom"
	"tabkit/internal/logger"
	"tabkit/internal/tabs"
	"tabkit/internal/tui/themes"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ThemeMsg switches the viewer to a new theme.
type ThemeMsg struct {
	Theme *themes.Theme
}

// zone is the screen rectangle of one rendered trigger, one row high.
type zone struct {
	row, left, right int
	el               *dom.Element
}

// Model is the viewer's bubbletea model.
type Model struct {
	doc    *dom.Document
	groups []*tabs.Group

	keys  KeyMap
	help  help.Model
	theme *themes.Theme
	log   *logger.Logger

	title  string
	status string
	width  int
	height int

	zones []zone
}

type modelOptions struct {
	theme     *themes.Theme
	log       *logger.Logger
	selectors tabs.Selectors
	title     string
	keys      *KeyMap
}

// Option configures a Model.
type Option func(*modelOptions)

// WithTheme sets the initial theme.
func WithTheme(t *themes.Theme) Option {
	return func(o *modelOptions) {
		if t != nil {
			o.theme = t
		}
	}
}

// WithLogger sets the logger passed to every group.
func WithLogger(l *logger.Logger) Option {
	return func(o *modelOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSelectors sets the markers groups are discovered by.
func WithSelectors(s tabs.Selectors) Option {
	return func(o *modelOptions) {
		o.selectors = s
	}
}

// WithTitle overrides the heading, which defaults to the document title.
func WithTitle(title string) Option {
	return func(o *modelOptions) {
		o.title = title
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(o *modelOptions) {
		o.keys = &k
	}
}

// New builds the tab groups of doc and a Model showing them. Focus starts
// on the first element in sequential focus order.
func New(doc *dom.Document, opts ...Option) (*Model, error) {
	o := modelOptions{
		theme:     themes.Global().Active(),
		log:       logger.Discard(),
		selectors: tabs.DefaultSelectors(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Model{
		doc:   doc,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		theme: o.theme,
		log:   o.log.WithComponent("viewer"),
		title: o.title,
	}
	if o.keys != nil {
		m.keys = *o.keys
	}
	if m.title == "" {
		m.title = doc.Title()
	}
	m.help.Styles = m.theme.HelpStyles()

	groups, err := tabs.Init(doc,
		tabs.WithSelectors(o.selectors),
		tabs.WithLogger(o.log),
		tabs.WithOnChange(m.onChange),
	)
	if err != nil {
		return nil, err
	}
	m.groups = groups
	doc.FocusNext()

	m.log.Debug("viewer ready", "groups", len(groups))
	return m, nil
}

// Groups returns the groups the viewer hosts.
func (m *Model) Groups() []*tabs.Group { return m.groups }

// Document returns the hosted document.
func (m *Model) Document() *dom.Document { return m.doc }

// Status returns the current status line text.
func (m *Model) Status() string { return m.status }

// Theme returns the theme in use.
func (m *Model) Theme() *themes.Theme { return m.theme }

func (m *Model) onChange(c tabs.Change) {
	label := strconv.Itoa(c.Index + 1)
	if t := c.Group.ActiveTrigger(); t != nil && t.Text() != "" {
		label = t.Text()
	}
	m.status = fmt.Sprintf("%s: %s (%d/%d, %s)",
		c.Group.Name(), label, c.Index+1, c.Group.Len(), c.Origin)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case ThemeMsg:
		if msg.Theme != nil {
			m.theme = msg.Theme
			m.help.Styles = m.theme.HelpStyles()
			m.log.Debug("theme changed", "theme", m.theme.Name)
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.FocusNext):
		m.doc.FocusNext()

	case key.Matches(msg, m.keys.FocusPrev):
		m.doc.FocusPrevious()

	case key.Matches(msg, m.keys.Activate):
		if el := m.doc.ActiveElement(); el != nil {
			m.doc.Click(el)
		}

	case key.Matches(msg, m.keys.Jump):
		m.jump(msg.String())

	default:
		if ev, ok := KeyEvent(msg); ok {
			m.doc.KeyDown(ev)
		}
	}
	return nil
}

// jump clicks the nth trigger of the group holding focus, or of the first
// group when focus is outside every group.
func (m *Model) jump(digit string) {
	n, err := strconv.Atoi(digit)
	if err != nil || n < 1 {
		return
	}
	g := m.FocusedGroup()
	if g == nil && len(m.groups) > 0 {
		g = m.groups[0]
	}
	if g == nil || n > g.Len() {
		return
	}
	m.doc.Click(g.Triggers()[n-1])
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if el := m.hit(msg.X, msg.Y); el != nil {
		m.doc.Click(el)
	}
}

func (m *Model) hit(x, y int) *dom.Element {
	for _, z := range m.zones {
		if y == z.row && x >= z.left && x < z.right {
			return z.el
		}
	}
	return nil
}

// FocusedGroup returns the group whose root contains the focused element.
func (m *Model) FocusedGroup() *tabs.Group {
	active := m.doc.ActiveElement()
	if active == nil {
		return nil
	}
	for _, g := range m.groups {
		if g.Root().Contains(active) {
			return g
		}
	}
	return nil
}

// FocusedTab returns FocusedGroup and the index of the focused trigger in it.
// The index is -1 when focus is elsewhere.
func (m *Model) FocusedTab() (*tabs.Group, int) {
	g := m.FocusedGroup()
	if g == nil {
		return nil, -1
	}
	return g, g.IndexOf(m.doc.ActiveElement())
}

// ProgramOptions returns the bubbletea options for the viewer settings.
func ProgramOptions(cfg config.ViewerConfig) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}
