package widgets

import (
	"github.com/lu-dev/lu/pkg/widget"
)

// State names and values used by the capabilities.
const (
	StateSelected = "selected"
	StateExpanded = "expanded"
	StateHidden   = "hidden"

	True  = "true"
	False = "false"
)

// SelectedState is carried by a class, aria-selected and, on <option>, the
// selected property.
var SelectedState = widget.StateDef{
	Values:   []string{True, False},
	Class:    widget.Values{"selected", ""},
	Aria:     widget.Aria(True, False),
	Property: widget.Filter("option", True, ""),
}

// ExpandedState is carried by a class and aria-expanded.
var ExpandedState = widget.StateDef{
	Values: []string{True, False},
	Class:  widget.Values{"expanded", ""},
	Aria:   widget.Aria(True, False),
}

// HiddenState is carried by aria-hidden and the hidden property.
var HiddenState = widget.StateDef{
	Values:   []string{True, False},
	Aria:     widget.Aria(True, False),
	Property: &widget.Filtered{Values: widget.Values{True, ""}},
}

// stateful is the part of *widget.Base the capabilities need.
type stateful interface {
	State(name string) (string, bool)
	SetState(name, value string) error
}

// Selectable adds Select, Deselect and IsSelected.
type Selectable struct {
	selectable stateful
}

// Select sets the selected state.
func (s Selectable) Select() error { return s.selectable.SetState(StateSelected, True) }

// Deselect clears the selected state.
func (s Selectable) Deselect() error { return s.selectable.SetState(StateSelected, False) }

// IsSelected reports whether the DOM marks the widget as selected.
func (s Selectable) IsSelected() bool {
	v, _ := s.selectable.State(StateSelected)
	return v == True
}

// Expandable adds Expand, Collapse and IsExpanded.
type Expandable struct {
	expandable stateful
}

// Expand sets the expanded state.
func (e Expandable) Expand() error { return e.expandable.SetState(StateExpanded, True) }

// Collapse clears the expanded state.
func (e Expandable) Collapse() error { return e.expandable.SetState(StateExpanded, False) }

// IsExpanded reports whether the DOM marks the widget as expanded.
func (e Expandable) IsExpanded() bool {
	v, _ := e.expandable.State(StateExpanded)
	return v == True
}

// Hideable adds Show, Hide and IsHidden.
type Hideable struct {
	hideable stateful
}

// Show clears the hidden state.
func (h Hideable) Show() error { return h.hideable.SetState(StateHidden, False) }

// Hide sets the hidden state.
func (h Hideable) Hide() error { return h.hideable.SetState(StateHidden, True) }

// IsHidden reports whether the DOM marks the widget as hidden.
func (h Hideable) IsHidden() bool {
	v, _ := h.hideable.State(StateHidden)
	return v == True
}
