package dom

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Selection is an insertion-ordered set of elements. Adding an element that
// is already present keeps its original position.
type Selection struct {
	set *linkedhashset.Set
}

// NewSelection returns a selection holding els, skipping nils.
func NewSelection(els ...*Element) *Selection {
	s := &Selection{set: linkedhashset.New()}
	s.Add(els...)
	return s
}

// Add inserts elements not yet in the selection.
func (s *Selection) Add(els ...*Element) *Selection {
	for _, el := range els {
		if el != nil {
			s.set.Add(el)
		}
	}
	return s
}

// AddSelection inserts every element of other.
func (s *Selection) AddSelection(other *Selection) *Selection {
	if other == nil {
		return s
	}
	return s.Add(other.Elements()...)
}

// Remove deletes elements from the selection.
func (s *Selection) Remove(els ...*Element) *Selection {
	for _, el := range els {
		if el != nil {
			s.set.Remove(el)
		}
	}
	return s
}

// Contains reports whether el is in the selection.
func (s *Selection) Contains(el *Element) bool {
	return el != nil && s.set.Contains(el)
}

// Len returns the number of elements.
func (s *Selection) Len() int {
	return s.set.Size()
}

// Elements returns the elements in insertion order.
func (s *Selection) Elements() []*Element {
	values := s.set.Values()
	out := make([]*Element, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*Element))
	}
	return out
}

// First returns the first element, or nil.
func (s *Selection) First() *Element {
	if s.set.Empty() {
		return nil
	}
	return s.Elements()[0]
}

// Each calls fn for every element in insertion order.
func (s *Selection) Each(fn func(i int, el *Element)) {
	s.set.Each(func(i int, v interface{}) {
		fn(i, v.(*Element))
	})
}

// IndexOf returns the position of el in the selection, or -1.
func (s *Selection) IndexOf(el *Element) int {
	for i, e := range s.Elements() {
		if e == el {
			return i
		}
	}
	return -1
}
