package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is an element node of a Document.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners map[string][]Listener
}

// Document returns the document that owns the element.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attribute("id")
	return v
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.node.Parent)
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// QuerySelectorAll returns the descendants of e that match sel, in
// document order. The element itself is never part of the result.
func (e *Element) QuerySelectorAll(sel string) ([]*Element, error) {
	return e.doc.query(e.node, sel)
}

// Attribute returns the value of the named attribute and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets the named attribute, adding it when missing.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// ClassList returns the element's classes in attribute order.
func (e *Element) ClassList() []string {
	v, _ := e.Attribute("class")
	return strings.Fields(v)
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.ClassList() {
		if c == name {
			return true
		}
	}
	return false
}

// ToggleClass adds the class when on is true and removes it otherwise.
// Calling it with the state the element already has leaves it unchanged.
func (e *Element) ToggleClass(name string, on bool) {
	classes := e.ClassList()
	out := make([]string, 0, len(classes)+1)
	found := false
	for _, c := range classes {
		if c == name {
			if !on || found {
				continue
			}
			found = true
		}
		out = append(out, c)
	}
	if on && !found {
		out = append(out, name)
	}
	if _, ok := e.Attribute("class"); !ok && len(out) == 0 {
		return
	}
	e.SetAttribute("class", strings.Join(out, " "))
}

// TabIndex returns the element's tab index. Elements without a valid
// tabindex attribute report 0 when they are natively focusable and -1
// otherwise.
func (e *Element) TabIndex() int {
	if v, ok := e.Attribute("tabindex"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	if e.nativelyFocusable() {
		return 0
	}
	return -1
}

// Focusable reports whether the element can receive focus at all, either
// natively or through a tabindex attribute.
func (e *Element) Focusable() bool {
	if e.disabled() {
		return false
	}
	if e.nativelyFocusable() {
		return true
	}
	v, ok := e.Attribute("tabindex")
	if !ok {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(v))
	return err == nil
}

// InSequentialFocusOrder reports whether tab navigation visits the element.
func (e *Element) InSequentialFocusOrder() bool {
	return e.Focusable() && e.TabIndex() >= 0
}

// Focus moves document focus to the element. It does nothing for
// elements that cannot be focused.
func (e *Element) Focus() {
	if !e.Focusable() {
		return
	}
	e.doc.active = e
}

// Blur removes focus from the element if it has it.
func (e *Element) Blur() {
	if e.doc.active == e {
		e.doc.active = nil
	}
}

// Focused reports whether the element has document focus.
func (e *Element) Focused() bool {
	return e.doc.active == e
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// Text returns the text content with whitespace collapsed to single spaces.
func (e *Element) Text() string {
	return strings.Join(strings.Fields(e.TextContent()), " ")
}

// Lines returns the text content split at block-level elements, with
// whitespace collapsed inside each line and empty lines dropped.
func (e *Element) Lines() []string {
	var lines []string
	var cur strings.Builder
	flush := func() {
		if line := strings.Join(strings.Fields(cur.String()), " "); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		block := n.Type == html.ElementNode && isBlock(n.DataAtom)
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(e.node)
	flush()
	return lines
}

func (e *Element) nativelyFocusable() bool {
	switch e.node.DataAtom {
	case atom.Button, atom.Input, atom.Select, atom.Textarea, atom.Summary:
		return true
	case atom.A, atom.Area:
		_, ok := e.Attribute("href")
		return ok
	}
	return false
}

func (e *Element) disabled() bool {
	switch e.node.DataAtom {
	case atom.Button, atom.Input, atom.Select, atom.Textarea:
		_, ok := e.Attribute("disabled")
		return ok
	}
	return false
}
