package widget

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
)

// ErrBadTarget is returned when an observer target has an unsupported type.
var ErrBadTarget = errors.New("L013")

var (
	ariaObserve = []string{"aria-owns", "aria-describedby", "aria-labelledby"}
	ariaNotify  = []string{"aria-controls"}
)

// Router namespaces events for one owner element and fans them out to the
// element's observers.
type Router struct {
	el       *dom.Element
	registry *Registry
	record   *Record
	mode     TriggerMode

	listeners []dom.ListenerID
	observed  []*dom.Element // notify targets this owner was added to

	logger  *slog.Logger
	metrics *Metrics
}

func newRouter(el *dom.Element, env *Env, rec *Record) *Router {
	return &Router{
		el:       el,
		registry: env.Registry,
		record:   rec,
		mode:     env.Trigger,
		logger:   env.Logger,
		metrics:  env.Metrics,
	}
}

// On binds handler to the namespaced events on the owner.
func (r *Router) On(events string, handler dom.Handler) dom.ListenerID {
	id := r.el.On(Prefix(events), handler)
	r.listeners = append(r.listeners, id)
	return id
}

// One binds handler to run at most once per namespaced event.
func (r *Router) One(events string, handler dom.Handler) dom.ListenerID {
	id := r.el.One(Prefix(events), handler)
	r.listeners = append(r.listeners, id)
	return id
}

// OnMap binds every handler of an event-to-handler map.
func (r *Router) OnMap(handlers map[string]dom.Handler) []dom.ListenerID {
	ids := make([]dom.ListenerID, 0, len(handlers))
	for event, h := range PrefixMap(handlers) {
		id := r.el.On(event, h)
		r.listeners = append(r.listeners, id)
		ids = append(ids, id)
	}
	return ids
}

// Off unbinds listeners of the namespaced events. With no ids every
// listener of those events is removed.
func (r *Router) Off(events string, ids ...dom.ListenerID) {
	r.el.Off(Prefix(events), ids...)
}

// Trigger notifies the observers, then runs the owner's own listeners.
func (r *Router) Trigger(events string, args ...any) {
	r.Notify(events, args...)
	for _, name := range strings.Fields(Prefix(events)) {
		r.metrics.triggered(Unprefix(name))
		e := &dom.Event{Type: name, Target: r.el, Args: args}
		switch r.mode {
		case TriggerOneShot:
			r.el.DispatchOneShot(e)
		default:
			r.el.Dispatch(e)
		}
	}
}

// Notify dispatches the namespaced events on every observer, in the order
// observers were added. Each observer receives its own event whose target
// is the owner element.
func (r *Router) Notify(events string, args ...any) {
	observers := r.record.Observers.Elements()
	for _, name := range strings.Fields(Prefix(events)) {
		for _, obs := range observers {
			obs.Dispatch(&dom.Event{Type: name, Target: r.el, Args: args, Bubbles: true})
		}
		r.metrics.notified(Unprefix(name), len(observers))
		r.logger.Debug("notified observers", "owner", r.el.Describe(), "event", name, "observers", len(observers))
	}
}

// Observe adds targets to the owner's observer set.
func (r *Router) Observe(target any) error {
	sel, err := r.resolve(target)
	if err != nil {
		return err
	}
	r.record.Observers.AddSelection(sel)
	return nil
}

// Detatch removes targets from the owner's observer set.
func (r *Router) Detatch(target any) error {
	sel, err := r.resolve(target)
	if err != nil {
		return err
	}
	r.record.Observers.Remove(sel.Elements()...)
	return nil
}

// Detach is an alias of Detatch.
func (r *Router) Detach(target any) error {
	return r.Detatch(target)
}

// AddNotifyTargets adds targets to the notify-target set and registers the
// owner as an observer of each of them.
func (r *Router) AddNotifyTargets(target any) error {
	sel, err := r.resolve(target)
	if err != nil {
		return err
	}
	for _, el := range sel.Elements() {
		if el == r.el {
			continue
		}
		r.record.NotifyTargets.Add(el)
		if r.registry.Link(el, r.el) {
			r.observed = append(r.observed, el)
		}
	}
	return nil
}

// Observers returns the observer set in insertion order.
func (r *Router) Observers() []*dom.Element {
	return r.record.Observers.Elements()
}

// NotifyTargets returns the notify-target set in insertion order.
func (r *Router) NotifyTargets() []*dom.Element {
	return r.record.NotifyTargets.Elements()
}

// discoverARIA adds the elements referenced by the owner's ARIA
// relationship attributes. Dangling ids are skipped.
func (r *Router) discoverARIA() error {
	if err := r.Observe(r.referenced(ariaObserve)); err != nil {
		return err
	}
	return r.AddNotifyTargets(r.referenced(ariaNotify))
}

func (r *Router) referenced(attrs []string) *dom.Selection {
	doc := r.el.Document()
	out := dom.NewSelection()
	for _, attr := range attrs {
		v, ok := r.el.Attr(attr)
		if !ok {
			continue
		}
		for _, id := range strings.Fields(v) {
			el := doc.ByID(id)
			if el == nil {
				r.logger.Debug("aria reference not found", "owner", r.el.Describe(), "attr", attr, "id", id)
				continue
			}
			out.Add(el)
		}
	}
	return out
}

// resolve turns a selector string, element, element slice or selection into
// a selection. An empty selector resolves to an empty selection.
func (r *Router) resolve(target any) (*dom.Selection, error) {
	switch t := target.(type) {
	case nil:
		return dom.NewSelection(), nil
	case string:
		if strings.TrimSpace(t) == "" {
			return dom.NewSelection(), nil
		}
		return r.el.Document().Query(t)
	case *dom.Element:
		return dom.NewSelection(t), nil
	case []*dom.Element:
		return dom.NewSelection(t...), nil
	case *dom.Selection:
		if t == nil {
			return dom.NewSelection(), nil
		}
		return t, nil
	case Widget:
		return dom.NewSelection(t.Element()), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadTarget, target)
	}
}

// teardown removes everything the router registered.
func (r *Router) teardown() {
	for _, id := range r.listeners {
		r.el.OffID(id)
	}
	r.listeners = nil
	for _, el := range r.observed {
		r.registry.Unlink(el, r.el)
	}
	r.observed = nil
}
