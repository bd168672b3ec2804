// Package widget is the state and observation engine shared by every lu
// widget.
//
// A widget is bound to exactly one element. Its logical states are declared
// as a States map; each state lists its values and up to three DOM
// representations of them:
//
//	widget.States{
//	    "selected": {
//	        Values:   []string{"true", "false"},
//	        Class:    widget.Values{"selected", ""},          // lu-state-selected
//	        Aria:     widget.Aria("true", "false"),           // aria-selected
//	        Property: widget.Filter("option", "true", ""),    // option.selected
//	    },
//	}
//
// The current value of a state is derived from the DOM every time it is read
// (class first, then ARIA, then property) and SetState rewrites the markers
// before announcing the change as an event named after the state.
//
// Events routed through a widget are namespaced with EventPrefix so they do
// not collide with native DOM events. Trigger notifies the widget's
// observers (elements discovered from settings and from aria-owns,
// aria-describedby and aria-labelledby) and then runs the owner's own
// listeners.
//
// Concrete widgets embed *Base and call Init from their constructor.
package widget
