// Package dom provides a small in-memory document model over parsed HTML.
//
// It covers the parts of a browser document the tab widgets rely on:
//   - CSS selector queries in document order
//   - class list and attribute manipulation
//   - a single focused element and sequential focus navigation
//   - click and keydown events that bubble from the target to its ancestors
//
// The model is single-threaded. A Document and its Elements must only be
// used from one goroutine at a time, which is how UI event loops call them.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidSelector is returned when a selector cannot be compiled.
var ErrInvalidSelector = errors.New("invalid selector")

// Document is a parsed HTML document.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
	active   *Element
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
	}, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the HTML document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// QuerySelectorAll returns every element in the document that matches sel,
// in document order.
func (d *Document) QuerySelectorAll(sel string) ([]*Element, error) {
	return d.query(d.root, sel)
}

// Body returns the body element.
func (d *Document) Body() *Element {
	els, err := d.query(d.root, "body")
	if err != nil || len(els) == 0 {
		return nil
	}
	return els[0]
}

// Title returns the text of the document's title element.
func (d *Document) Title() string {
	els, err := d.query(d.root, "title")
	if err != nil || len(els) == 0 {
		return ""
	}
	return els[0].Text()
}

// ActiveElement returns the focused element, or nil when nothing has focus.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the document as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) query(from *html.Node, sel string) ([]*Element, error) {
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, sel, err)
	}
	nodes := cascadia.QueryAll(from, compiled)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out, nil
}

// wrap returns the Element for n, creating it on first use so listeners
// stay attached to the same node.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// elementsInOrder walks the document and returns every element in
// document order.
func (d *Document) elementsInOrder() []*Element {
	var out []*Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, d.wrap(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// isBlock reports whether a tag starts a new line of text.
func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Br, atom.Tr,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Section, atom.Article, atom.Pre, atom.Blockquote:
		return true
	}
	return false
}
