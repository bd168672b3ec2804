package dom

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/lu-dev/lu/internal/errors"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node

	mu       sync.Mutex
	elements map[*html.Node]*Element

	selectors selectorCache

	observersMu sync.RWMutex
	observers   map[uint64]func(MutationRecord)
	nextObsID   uint64
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.New("L030").Wrap(err)
	}
	return newDocument(root), nil
}

// ParseString parses an HTML document from a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// MustParse is like ParseString but panics on error. Intended for tests and
// static markup.
func MustParse(markup string) *Document {
	doc, err := ParseString(markup)
	if err != nil {
		panic(err)
	}
	return doc
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		observers: make(map[uint64]func(MutationRecord)),
	}
}

// wrap returns the unique Element for n.
func (d *Document) wrap(n *html.Node) *Element {
	if !isElement(n) {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// Root returns the document element (<html>).
func (d *Document) Root() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c) {
			return d.wrap(c)
		}
	}
	return nil
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Element {
	return d.First("body")
}

// Query returns every element matching sel in document order.
func (d *Document) Query(sel string) (*Selection, error) {
	s, err := d.selectors.compile(sel)
	if err != nil {
		return nil, err
	}
	out := NewSelection()
	for _, n := range s.MatchAll(d.root) {
		out.Add(d.wrap(n))
	}
	return out, nil
}

// First returns the first element matching sel, or nil when nothing matches
// or sel does not compile.
func (d *Document) First(sel string) *Element {
	s, err := d.selectors.compile(sel)
	if err != nil {
		return nil
	}
	return d.wrap(s.MatchFirst(d.root))
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.First(IDSelector(id))
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
