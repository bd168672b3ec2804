package dom

import (
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// booleanAttrs lists attributes whose DOM property is a boolean and whose
// presence in markup is the property's initial value.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"inert":     true,
	"multiple":  true,
	"open":      true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

// Element is an element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node

	mu        sync.Mutex
	props     map[string]string
	listeners map[string][]*listener
}

// Document returns the document the element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Describe returns a short selector-like description, e.g. "a#tab1".
func (e *Element) Describe() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Tag())
	if id := e.ID(); id != "" {
		b.WriteString("#")
		b.WriteString(id)
	}
	return b.String()
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	old, had := e.Attr(name)
	if had && old == value {
		return
	}
	e.setAttr(name, value)
	e.doc.emit(MutationRecord{
		Kind:     AttributeMutation,
		Target:   e,
		Name:     name,
		OldValue: old,
		Value:    value,
		Existed:  had,
	})
}

func (e *Element) setAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the named attribute.
func (e *Element) RemoveAttr(name string) {
	old, had := e.Attr(name)
	if !had {
		return
	}
	e.removeAttr(name)
	e.doc.emit(MutationRecord{
		Kind:     AttributeMutation,
		Target:   e,
		Name:     name,
		OldValue: old,
		Existed:  true,
		Removed:  true,
	})
}

func (e *Element) removeAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	classes := append(e.Classes(), name)
	e.setAttr("class", strings.Join(classes, " "))
	e.doc.emit(MutationRecord{Kind: ClassMutation, Target: e, Name: name, Value: name})
}

// RemoveClass removes name from the class list.
func (e *Element) RemoveClass(name string) {
	if name == "" || !e.HasClass(name) {
		return
	}
	var kept []string
	for _, c := range e.Classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.removeAttr("class")
	} else {
		e.setAttr("class", strings.Join(kept, " "))
	}
	e.doc.emit(MutationRecord{Kind: ClassMutation, Target: e, Name: name, OldValue: name, Existed: true, Removed: true})
}

// Prop returns the named DOM property. Boolean properties that were never
// written report the presence of the matching attribute.
func (e *Element) Prop(name string) (string, bool) {
	e.mu.Lock()
	v, set := e.props[name]
	e.mu.Unlock()

	if set {
		return v, v != ""
	}
	if booleanAttrs[name] {
		if _, ok := e.Attr(name); ok {
			return "true", true
		}
	}
	return "", false
}

// SetProp sets the named DOM property. Boolean properties are reflected to
// their attribute.
func (e *Element) SetProp(name, value string) {
	if value == "" {
		e.RemoveProp(name)
		return
	}
	old, had := e.Prop(name)
	if had && old == value {
		return
	}
	e.storeProp(name, value)
	if booleanAttrs[name] {
		e.setAttr(name, "")
	}
	e.doc.emit(MutationRecord{Kind: PropertyMutation, Target: e, Name: name, OldValue: old, Value: value, Existed: had})
}

// RemoveProp clears the named DOM property.
func (e *Element) RemoveProp(name string) {
	old, had := e.Prop(name)
	if !had {
		return
	}
	e.storeProp(name, "")
	if booleanAttrs[name] {
		e.removeAttr(name)
	}
	e.doc.emit(MutationRecord{Kind: PropertyMutation, Target: e, Name: name, OldValue: old, Existed: true, Removed: true})
}

func (e *Element) storeProp(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.props == nil {
		e.props = make(map[string]string)
	}
	e.props[name] = value
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.node.Parent)
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c) {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// ChildrenMatching returns the element children matching sel.
func (e *Element) ChildrenMatching(sel string) (*Selection, error) {
	s, err := e.doc.selectors.compile(sel)
	if err != nil {
		return nil, err
	}
	out := NewSelection()
	for _, c := range e.Children() {
		if s.Match(c.node) {
			out.Add(c)
		}
	}
	return out, nil
}

// Index returns the position of the element among its parent's element
// children, or -1 for a detached element.
func (e *Element) Index() int {
	if e.node.Parent == nil {
		return -1
	}
	i := 0
	for c := e.node.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == e.node {
			return i
		}
		if isElement(c) {
			i++
		}
	}
	return -1
}

// Matches reports whether the element matches sel.
func (e *Element) Matches(sel string) (bool, error) {
	s, err := e.doc.selectors.compile(sel)
	if err != nil {
		return false, err
	}
	return s.Match(e.node), nil
}

// Closest returns the nearest inclusive ancestor matching sel.
func (e *Element) Closest(sel string) (*Element, error) {
	s, err := e.doc.selectors.compile(sel)
	if err != nil {
		return nil, err
	}
	for n := e.node; isElement(n); n = n.Parent {
		if s.Match(n) {
			return e.doc.wrap(n), nil
		}
	}
	return nil, nil
}

// Query returns the descendants of the element matching sel.
func (e *Element) Query(sel string) (*Selection, error) {
	s, err := e.doc.selectors.compile(sel)
	if err != nil {
		return nil, err
	}
	out := NewSelection()
	for _, n := range s.MatchAll(e.node) {
		if n != e.node {
			out.Add(e.doc.wrap(n))
		}
	}
	return out, nil
}
