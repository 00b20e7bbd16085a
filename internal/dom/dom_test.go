package dom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `<!DOCTYPE html>
<html>
<head><title>Sample  page</title></head>
<body>
  <a href="#top" id="link">Top</a>
  <div class="tabs" id="outer">
    <button class="tabs__button is-active" id="b1">One</button>
    <button class="tabs__button" id="b2" tabindex="-1">Two</button>
    <div class="tabs__content" id="c1"><p>First</p><p>  second   line </p></div>
  </div>
  <span id="plain">not focusable</span>
  <div id="custom" tabindex="0">custom</div>
  <button id="off" disabled>off</button>
</body>
</html>`

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseString(s)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return doc
}

func mustQuery(t *testing.T, doc *Document, sel string) []*Element {
	t.Helper()
	els, err := doc.QuerySelectorAll(sel)
	if err != nil {
		t.Fatalf("query %q: %v", sel, err)
	}
	return els
}

func byID(t *testing.T, doc *Document, id string) *Element {
	t.Helper()
	els := mustQuery(t, doc, "#"+id)
	if len(els) != 1 {
		t.Fatalf("expected one element with id %q, got %d", id, len(els))
	}
	return els[0]
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title() != "Sample page" {
		t.Errorf("expected title 'Sample page', got %q", doc.Title())
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestQuerySelectorAll_DocumentOrder(t *testing.T) {
	doc := mustParse(t, sample)

	buttons := mustQuery(t, doc, ".tabs__button")
	if len(buttons) != 2 {
		t.Fatalf("expected 2 buttons, got %d", len(buttons))
	}
	if buttons[0].ID() != "b1" || buttons[1].ID() != "b2" {
		t.Errorf("unexpected order: %s, %s", buttons[0].ID(), buttons[1].ID())
	}
}

func TestQuerySelectorAll_SameElementIdentity(t *testing.T) {
	doc := mustParse(t, sample)

	a := byID(t, doc, "b1")
	b := mustQuery(t, doc, ".tabs__button")[0]
	if a != b {
		t.Error("expected the same *Element for the same node")
	}
}

func TestElementQuerySelectorAll_ExcludesSelf(t *testing.T) {
	doc := mustParse(t, `<div class="x" id="root"><div class="x" id="child"></div></div>`)

	root := byID(t, doc, "root")
	els, err := root.QuerySelectorAll(".x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 1 || els[0].ID() != "child" {
		t.Errorf("expected only the child, got %d elements", len(els))
	}
}

func TestQuerySelectorAll_InvalidSelector(t *testing.T) {
	doc := mustParse(t, sample)

	_, err := doc.QuerySelectorAll("div[")
	if !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("expected ErrInvalidSelector, got %v", err)
	}
}

func TestToggleClass(t *testing.T) {
	doc := mustParse(t, sample)
	el := byID(t, doc, "b2")

	el.ToggleClass("is-active", true)
	if !el.HasClass("is-active") {
		t.Error("expected class to be added")
	}

	el.ToggleClass("is-active", true)
	if got := strings.Join(el.ClassList(), " "); got != "tabs__button is-active" {
		t.Errorf("expected no duplicate class, got %q", got)
	}

	el.ToggleClass("is-active", false)
	if el.HasClass("is-active") {
		t.Error("expected class to be removed")
	}
	if !el.HasClass("tabs__button") {
		t.Error("expected other classes to be kept")
	}
}

func TestToggleClass_NoClassAttribute(t *testing.T) {
	doc := mustParse(t, sample)
	el := byID(t, doc, "plain")

	el.ToggleClass("x", false)
	if _, ok := el.Attribute("class"); ok {
		t.Error("removing a missing class should not add a class attribute")
	}

	el.ToggleClass("x", true)
	if v, _ := el.Attribute("class"); v != "x" {
		t.Errorf("expected class 'x', got %q", v)
	}
}

func TestAttributes(t *testing.T) {
	doc := mustParse(t, sample)
	el := byID(t, doc, "b1")

	el.SetAttribute("aria-selected", "true")
	if v, ok := el.Attribute("aria-selected"); !ok || v != "true" {
		t.Errorf("expected aria-selected=true, got %q (%v)", v, ok)
	}

	el.SetAttribute("ARIA-SELECTED", "false")
	if v, _ := el.Attribute("aria-selected"); v != "false" {
		t.Errorf("expected attribute names to be case-insensitive, got %q", v)
	}
}

func TestTabIndex(t *testing.T) {
	doc := mustParse(t, sample)

	tests := []struct {
		id        string
		tabIndex  int
		focusable bool
	}{
		{"b1", 0, true},
		{"b2", -1, true},
		{"link", 0, true},
		{"plain", -1, false},
		{"custom", 0, true},
		{"off", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el := byID(t, doc, tt.id)
			if got := el.TabIndex(); got != tt.tabIndex {
				t.Errorf("expected tab index %d, got %d", tt.tabIndex, got)
			}
			if got := el.Focusable(); got != tt.focusable {
				t.Errorf("expected focusable %v, got %v", tt.focusable, got)
			}
		})
	}
}

func TestFocus(t *testing.T) {
	doc := mustParse(t, sample)

	plain := byID(t, doc, "plain")
	plain.Focus()
	if doc.ActiveElement() != nil {
		t.Error("non-focusable element should not take focus")
	}

	b2 := byID(t, doc, "b2")
	b2.Focus()
	if doc.ActiveElement() != b2 || !b2.Focused() {
		t.Error("tabindex=-1 element should take programmatic focus")
	}

	b2.Blur()
	if doc.ActiveElement() != nil {
		t.Error("expected blur to clear focus")
	}
}

func TestSequentialFocusOrder(t *testing.T) {
	doc := mustParse(t, sample)

	var ids []string
	for _, el := range doc.SequentialFocusOrder() {
		ids = append(ids, el.ID())
	}
	if got := strings.Join(ids, ","); got != "link,b1,custom" {
		t.Errorf("unexpected order %q", got)
	}
}

func TestFocusNext_Wraps(t *testing.T) {
	doc := mustParse(t, sample)

	want := []string{"link", "b1", "custom", "link"}
	for i, id := range want {
		el := doc.FocusNext()
		if el == nil || el.ID() != id {
			t.Fatalf("step %d: expected %q, got %v", i, id, el)
		}
	}
}

func TestFocusPrevious_Wraps(t *testing.T) {
	doc := mustParse(t, sample)

	want := []string{"custom", "b1", "link", "custom"}
	for i, id := range want {
		el := doc.FocusPrevious()
		if el == nil || el.ID() != id {
			t.Fatalf("step %d: expected %q, got %v", i, id, el)
		}
	}
}

func TestFocusNext_FromElementOutsideOrder(t *testing.T) {
	doc := mustParse(t, sample)

	byID(t, doc, "b2").Focus()
	if el := doc.FocusNext(); el == nil || el.ID() != "custom" {
		t.Errorf("expected 'custom' after b2, got %v", el)
	}

	byID(t, doc, "b2").Focus()
	if el := doc.FocusPrevious(); el == nil || el.ID() != "b1" {
		t.Errorf("expected 'b1' before b2, got %v", el)
	}
}

func TestClick_BubblesAndFocuses(t *testing.T) {
	doc := mustParse(t, sample)

	var order []string
	byID(t, doc, "b2").AddEventListener(EventClick, func(ev *Event) {
		order = append(order, "button")
	})
	byID(t, doc, "outer").AddEventListener(EventClick, func(ev *Event) {
		order = append(order, "root:"+ev.Target.ID())
	})

	doc.Click(byID(t, doc, "b2"))

	if got := strings.Join(order, ","); got != "button,root:b2" {
		t.Errorf("unexpected dispatch order %q", got)
	}
	if doc.ActiveElement() == nil || doc.ActiveElement().ID() != "b2" {
		t.Error("expected clicked button to take focus")
	}
}

func TestClick_StopPropagation(t *testing.T) {
	doc := mustParse(t, sample)

	reached := false
	byID(t, doc, "b1").AddEventListener(EventClick, func(ev *Event) {
		ev.StopPropagation()
	})
	byID(t, doc, "outer").AddEventListener(EventClick, func(ev *Event) {
		reached = true
	})

	doc.Click(byID(t, doc, "b1"))
	if reached {
		t.Error("expected propagation to stop at the button")
	}
}

func TestClick_Disabled(t *testing.T) {
	doc := mustParse(t, sample)

	fired := false
	off := byID(t, doc, "off")
	off.AddEventListener(EventClick, func(ev *Event) { fired = true })

	doc.Click(off)
	if fired {
		t.Error("disabled button should not receive click")
	}
}

func TestKeyDown_TargetsFocusedElement(t *testing.T) {
	doc := mustParse(t, sample)

	var got KeyEvent
	var target string
	byID(t, doc, "outer").AddEventListener(EventKeyDown, func(ev *Event) {
		got = ev.Key
		target = ev.Target.ID()
	})

	byID(t, doc, "b1").Focus()
	doc.KeyDown(KeyEvent{Code: KeyArrowRight, Meta: true})

	if got.Code != KeyArrowRight || !got.Meta {
		t.Errorf("unexpected key event %+v", got)
	}
	if target != "b1" {
		t.Errorf("expected target b1, got %q", target)
	}
}

func TestKeyDown_OutsideGroupDoesNotReachIt(t *testing.T) {
	doc := mustParse(t, sample)

	fired := false
	byID(t, doc, "outer").AddEventListener(EventKeyDown, func(ev *Event) { fired = true })

	byID(t, doc, "custom").Focus()
	doc.KeyDown(KeyEvent{Code: KeyHome})
	if fired {
		t.Error("keydown outside the group should not reach its listener")
	}
}

func TestLines(t *testing.T) {
	doc := mustParse(t, sample)

	lines := byID(t, doc, "c1").Lines()
	if len(lines) != 2 || lines[0] != "First" || lines[1] != "second line" {
		t.Errorf("unexpected lines %q", lines)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	doc := mustParse(t, sample)
	byID(t, doc, "b2").SetAttribute("aria-selected", "true")

	out := doc.String()
	if !strings.Contains(out, `aria-selected="true"`) {
		t.Error("expected rendered output to carry the new attribute")
	}

	again := mustParse(t, out)
	if len(mustQuery(t, again, ".tabs__button")) != 2 {
		t.Error("expected rendered output to parse back")
	}
}
