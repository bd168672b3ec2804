package widget

import (
	"github.com/lu-dev/lu/pkg/dom"
)

// Values is a representation's value list, index-aligned with the state's
// logical values. An empty entry means the value has no marker.
type Values []string

// Filtered is a value list applied only to elements matching Filter.
type Filtered struct {
	Values Values
	// Filter is a CSS selector; empty applies to every element.
	Filter string
}

// Aria returns an unfiltered ARIA representation.
func Aria(values ...string) *Filtered {
	return &Filtered{Values: values}
}

// Filter returns a representation restricted to elements matching sel.
func Filter(sel string, values ...string) *Filtered {
	return &Filtered{Values: values, Filter: sel}
}

// RepKind identifies a DOM representation.
type RepKind uint8

const (
	ClassRep RepKind = iota + 1
	AriaRep
	PropertyRep
)

// String returns the string representation of the RepKind.
func (k RepKind) String() string {
	switch k {
	case ClassRep:
		return "class"
	case AriaRep:
		return "aria"
	case PropertyRep:
		return "property"
	default:
		return "unknown"
	}
}

// representation is one DOM encoding of a state.
type representation struct {
	kind   RepKind
	values Values
	filter string
}

// representations returns the declared representations in read precedence
// order: class, ARIA, property.
func (d StateDef) representations() []representation {
	var reps []representation
	if d.Class != nil {
		reps = append(reps, representation{kind: ClassRep, values: d.Class})
	}
	if d.Aria != nil {
		reps = append(reps, representation{kind: AriaRep, values: d.Aria.Values, filter: d.Aria.Filter})
	}
	if d.Property != nil {
		reps = append(reps, representation{kind: PropertyRep, values: d.Property.Values, filter: d.Property.Filter})
	}
	return reps
}

// marker returns the representation value at idx, or "" when idx is out of
// range.
func (r representation) marker(idx int) string {
	if idx < 0 || idx >= len(r.values) {
		return ""
	}
	return r.values[idx]
}

// applies reports whether the representation may touch el.
func (r representation) applies(el *dom.Element) bool {
	if r.filter == "" {
		return true
	}
	ok, err := el.Matches(r.filter)
	return err == nil && ok
}

// read returns the index of the first value whose marker is present on el.
func (r representation) read(el *dom.Element, state string) (int, bool) {
	if !r.applies(el) {
		return -1, false
	}
	for i, v := range r.values {
		if v == "" {
			continue
		}
		switch r.kind {
		case ClassRep:
			if el.HasClass(StatePrefix + v) {
				return i, true
			}
		case AriaRep:
			if got, ok := el.Attr("aria-" + state); ok && got == v {
				return i, true
			}
		case PropertyRep:
			if got, ok := el.Prop(state); ok && got == v {
				return i, true
			}
		}
	}
	return -1, false
}

// write moves el from the marker at oldIdx to the marker at newIdx. A
// newIdx of -1 leaves the representation untouched.
func (r representation) write(el *dom.Element, state string, oldIdx, newIdx int) {
	if newIdx < 0 || !r.applies(el) {
		return
	}
	next := r.marker(newIdx)

	switch r.kind {
	case ClassRep:
		if prev := r.marker(oldIdx); prev != "" && prev != next {
			el.RemoveClass(StatePrefix + prev)
		}
		if next != "" {
			el.AddClass(StatePrefix + next)
		}
	case AriaRep:
		if next != "" {
			el.SetAttr("aria-"+state, next)
		} else {
			el.RemoveAttr("aria-" + state)
		}
	case PropertyRep:
		if next != "" {
			el.SetProp(state, next)
		} else {
			el.RemoveProp(state)
		}
	}
}
