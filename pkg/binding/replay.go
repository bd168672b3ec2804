package binding

import (
	"strings"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// Replay is a raw event to dispatch on the first element matching
// Selector, written "<selector>:<event>".
type Replay struct {
	Selector string
	Event    string
}

// ParseReplay parses "<selector>:<event>". The event is taken after the
// last colon so selectors may use pseudo-classes; a namespaced event such
// as "#tab2:lu:select" keeps its "lu:" prefix.
func ParseReplay(s string) (Replay, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return Replay{}, errors.New("L052").WithDetailf("got %q", s)
	}
	r := Replay{Selector: strings.TrimSpace(s[:i]), Event: strings.TrimSpace(s[i+1:])}
	if ns := ":" + strings.TrimSuffix(widget.EventPrefix, ":"); strings.HasSuffix(r.Selector, ns) {
		r.Selector = strings.TrimSuffix(r.Selector, ns)
		r.Event = widget.EventPrefix + r.Event
	}
	if r.Selector == "" || r.Event == "" || strings.ContainsAny(r.Event, " \t") {
		return Replay{}, errors.New("L052").WithDetailf("got %q", s)
	}
	if err := dom.ValidSelector(r.Selector); err != nil {
		return Replay{}, errors.New("L052").Wrap(err)
	}
	return r, nil
}

// String returns the replay in its parsed form.
func (r Replay) String() string { return r.Selector + ":" + r.Event }

// Apply dispatches the event as a bubbling raw event on the first element
// matching the selector.
func (r Replay) Apply(doc *dom.Document) (*dom.Event, error) {
	el := doc.First(r.Selector)
	if el == nil {
		return nil, errors.New("L052").WithDetailf("no element matches %q", r.Selector)
	}
	return el.Trigger(r.Event), nil
}
