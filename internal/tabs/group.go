// Package tabs implements keyboard-accessible tab groups over a dom.Document.
//
// A Group owns an ordered list of trigger elements and an index-aligned list
// of panels. Exactly one pair is active at a time; the active trigger is the
// only one in sequential focus order. All derived state is recomputed from
// the active index by a single synchronization pass.
package tabs

import (
	"fmt"
	"strconv"

	"tabkit/internal/dom"
	"tabkit/internal/logger"
)

// Origin says what caused an activation.
type Origin int

const (
	// OriginProgram is a direct SetActive call.
	OriginProgram Origin = iota
	// OriginPointer is a click on a trigger.
	OriginPointer
	// OriginKeyboard is a navigation key or helper; focus follows the index.
	OriginKeyboard
)

func (o Origin) String() string {
	switch o {
	case OriginPointer:
		return "pointer"
	case OriginKeyboard:
		return "keyboard"
	default:
		return "program"
	}
}

// Change describes one activation.
type Change struct {
	Group    *Group
	Previous int
	Index    int
	Origin   Origin
}

// Group is the controller for one tab widget root.
type Group struct {
	root     *dom.Element
	triggers []*dom.Element
	panels   []*dom.Element

	// activeIndex is written only by setActive.
	activeIndex int

	sel      Selectors
	log      *logger.Logger
	onChange []func(Change)
	name     string
}

// New builds a Group for root. It collects the triggers and panels below
// root, takes the first trigger already carrying the active class as the
// initial index (0 when there is none), attaches the click and keydown
// listeners and synchronizes once.
func New(root *dom.Element, opts ...Option) (*Group, error) {
	if root == nil {
		return nil, fmt.Errorf("tabs: nil root")
	}
	o := buildOptions(opts)

	triggers, err := root.QuerySelectorAll(o.selectors.Trigger)
	if err != nil {
		return nil, fmt.Errorf("tabs: triggers: %w", err)
	}
	panels, err := root.QuerySelectorAll(o.selectors.Panel)
	if err != nil {
		return nil, fmt.Errorf("tabs: panels: %w", err)
	}

	g := &Group{
		root:     root,
		triggers: triggers,
		panels:   panels,
		sel:      o.selectors,
		onChange: o.onChange,
		name:     o.name,
	}
	if g.name == "" {
		g.name = root.ID()
	}
	g.log = o.log.WithComponent("tabs").With("group", g.name)

	if len(triggers) != len(panels) {
		g.log.Debug("trigger and panel counts differ",
			"triggers", len(triggers), "panels", len(panels))
	}

	g.activeIndex = g.initialIndex()
	g.bind()
	g.sync()
	return g, nil
}

// initialIndex returns the first pre-marked trigger, or 0.
func (g *Group) initialIndex() int {
	for i, t := range g.triggers {
		if t.HasClass(g.sel.ActiveClass) {
			return i
		}
	}
	return 0
}

func (g *Group) bind() {
	for i, t := range g.triggers {
		t.AddEventListener(dom.EventClick, func(*dom.Event) {
			g.setActive(i, OriginPointer)
		})
	}
	g.root.AddEventListener(dom.EventKeyDown, func(ev *dom.Event) {
		g.Perform(Resolve(ev.Key))
	})
}

// SetActive makes index the active index and synchronizes. It does not
// clamp or wrap; an out-of-range index leaves no pair active. Repeating
// the current index still runs a full synchronization.
func (g *Group) SetActive(index int) {
	g.setActive(index, OriginProgram)
}

func (g *Group) setActive(index int, origin Origin) {
	prev := g.activeIndex
	g.activeIndex = index
	g.sync()

	g.log.Debug("tab activated",
		"previous", prev, "index", index, "origin", origin.String())

	c := Change{Group: g, Previous: prev, Index: index, Origin: origin}
	for _, fn := range g.onChange {
		fn(c)
	}
}

// sync derives every trigger's and panel's state from activeIndex. Each
// collection is updated for the elements it has.
func (g *Group) sync() {
	for i, t := range g.triggers {
		active := i == g.activeIndex
		t.ToggleClass(g.sel.ActiveClass, active)
		t.SetAttribute("aria-selected", strconv.FormatBool(active))
		if active {
			t.SetAttribute("tabindex", "0")
		} else {
			t.SetAttribute("tabindex", "-1")
		}
	}
	for i, p := range g.panels {
		p.ToggleClass(g.sel.ActiveClass, i == g.activeIndex)
	}
}

// Previous activates the trigger before the active one, wrapping from the
// first to the last, and focuses it.
func (g *Group) Previous() {
	if g.empty() {
		return
	}
	if g.activeIndex <= 0 {
		g.navigate(g.limit())
		return
	}
	g.navigate(g.activeIndex - 1)
}

// Next activates the trigger after the active one, wrapping from the last
// to the first, and focuses it.
func (g *Group) Next() {
	if g.empty() {
		return
	}
	if g.activeIndex >= g.limit() {
		g.navigate(0)
		return
	}
	g.navigate(g.activeIndex + 1)
}

// First activates and focuses the first trigger.
func (g *Group) First() {
	if g.empty() {
		return
	}
	g.navigate(0)
}

// Last activates and focuses the last trigger.
func (g *Group) Last() {
	if g.empty() {
		return
	}
	g.navigate(g.limit())
}

// Perform runs the helper for a. It reports whether a did anything.
func (g *Group) Perform(a Action) bool {
	switch a {
	case ActionPrevious:
		g.Previous()
	case ActionNext:
		g.Next()
	case ActionFirst:
		g.First()
	case ActionLast:
		g.Last()
	default:
		return false
	}
	return !g.empty()
}

func (g *Group) navigate(index int) {
	g.setActive(index, OriginKeyboard)
	if t := g.trigger(index); t != nil {
		t.Focus()
	}
}

func (g *Group) limit() int { return len(g.triggers) - 1 }

func (g *Group) empty() bool { return len(g.triggers) == 0 }

func (g *Group) trigger(i int) *dom.Element {
	if i < 0 || i >= len(g.triggers) {
		return nil
	}
	return g.triggers[i]
}

func (g *Group) panel(i int) *dom.Element {
	if i < 0 || i >= len(g.panels) {
		return nil
	}
	return g.panels[i]
}

// ActiveIndex returns the active index.
func (g *Group) ActiveIndex() int { return g.activeIndex }

// Len returns the number of triggers.
func (g *Group) Len() int { return len(g.triggers) }

// Name returns the name the group is reported under.
func (g *Group) Name() string { return g.name }

// Root returns the group's root element.
func (g *Group) Root() *dom.Element { return g.root }

// Selectors returns the markers the group was built with.
func (g *Group) Selectors() Selectors { return g.sel }

// Triggers returns a copy of the trigger list.
func (g *Group) Triggers() []*dom.Element {
	return append([]*dom.Element(nil), g.triggers...)
}

// Panels returns a copy of the panel list.
func (g *Group) Panels() []*dom.Element {
	return append([]*dom.Element(nil), g.panels...)
}

// ActiveTrigger returns the active trigger, or nil.
func (g *Group) ActiveTrigger() *dom.Element { return g.trigger(g.activeIndex) }

// ActivePanel returns the active panel, or nil.
func (g *Group) ActivePanel() *dom.Element { return g.panel(g.activeIndex) }

// IndexOf returns the index of trigger t, or -1.
func (g *Group) IndexOf(t *dom.Element) int {
	for i, el := range g.triggers {
		if el == t {
			return i
		}
	}
	return -1
}

// Init discovers every root matching the root selector in doc and builds
// one independent Group per root.
func Init(doc *dom.Document, opts ...Option) ([]*Group, error) {
	o := buildOptions(opts)
	roots, err := doc.QuerySelectorAll(o.selectors.Root)
	if err != nil {
		return nil, fmt.Errorf("tabs: roots: %w", err)
	}

	groups := make([]*Group, 0, len(roots))
	for i, root := range roots {
		groupOpts := opts
		if o.name == "" && root.ID() == "" {
			groupOpts = append(append([]Option(nil), opts...), WithName(fmt.Sprintf("tabs-%d", i)))
		}
		g, err := New(root, groupOpts...)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	o.log.Debug("tab groups initialized", "count", len(groups))
	return groups, nil
}
