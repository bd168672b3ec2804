package dom

import (
	"strings"
	"sync/atomic"
)

// Handler receives a dispatched event.
type Handler func(e *Event)

// ListenerID identifies a registered listener so it can be removed.
type ListenerID uint64

var listenerSeq atomic.Uint64

type listener struct {
	id      ListenerID
	handler Handler
	once    bool
}

// Event is a synthetic DOM event.
type Event struct {
	// Type is the full event name as registered.
	Type string

	// Target is the element the event is about. Dispatch sets it to the
	// dispatching element when left nil.
	Target *Element

	// CurrentTarget is the element whose listeners are running.
	CurrentTarget *Element

	// Args are extra handler arguments passed by the trigger.
	Args []any

	// Bubbles controls propagation to ancestors.
	Bubbles bool

	stopped          bool
	immediateStopped bool
	defaultPrevented bool
}

// NewEvent returns a bubbling event of the given type.
func NewEvent(typ string, args ...any) *Event {
	return &Event{Type: typ, Args: args, Bubbles: true}
}

// StopPropagation prevents the event from reaching ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation also skips the remaining listeners on the
// current element.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.immediateStopped = true
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// IsPropagationStopped reports whether StopPropagation was called.
func (e *Event) IsPropagationStopped() bool { return e.stopped }

// IsDefaultPrevented reports whether PreventDefault was called.
func (e *Event) IsDefaultPrevented() bool { return e.defaultPrevented }

// Arg returns the i-th trigger argument, or nil.
func (e *Event) Arg(i int) any {
	if i < 0 || i >= len(e.Args) {
		return nil
	}
	return e.Args[i]
}

// On registers handler for each whitespace-separated event type.
func (el *Element) On(types string, handler Handler) ListenerID {
	return el.addListener(types, handler, false)
}

// One registers handler to run at most once for each event type.
func (el *Element) One(types string, handler Handler) ListenerID {
	return el.addListener(types, handler, true)
}

func (el *Element) addListener(types string, handler Handler, once bool) ListenerID {
	id := ListenerID(listenerSeq.Add(1))
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listeners == nil {
		el.listeners = make(map[string][]*listener)
	}
	for _, t := range strings.Fields(types) {
		el.listeners[t] = append(el.listeners[t], &listener{id: id, handler: handler, once: once})
	}
	return id
}

// Off removes listeners for each event type. With no ids every listener of
// those types is removed.
func (el *Element) Off(types string, ids ...ListenerID) {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listeners == nil {
		return
	}
	for _, t := range strings.Fields(types) {
		if len(ids) == 0 {
			delete(el.listeners, t)
			continue
		}
		el.listeners[t] = withoutIDs(el.listeners[t], ids)
		if len(el.listeners[t]) == 0 {
			delete(el.listeners, t)
		}
	}
}

// OffID removes the listener with the given id from every event type.
func (el *Element) OffID(id ListenerID) {
	el.mu.Lock()
	defer el.mu.Unlock()

	for t, ls := range el.listeners {
		el.listeners[t] = withoutIDs(ls, []ListenerID{id})
		if len(el.listeners[t]) == 0 {
			delete(el.listeners, t)
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (el *Element) ListenerCount(typ string) int {
	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.listeners[typ])
}

func withoutIDs(ls []*listener, ids []ListenerID) []*listener {
	kept := ls[:0:0]
	for _, l := range ls {
		drop := false
		for _, id := range ids {
			if l.id == id {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, l)
		}
	}
	return kept
}

// Trigger dispatches a new bubbling event of type typ at the element.
func (el *Element) Trigger(typ string, args ...any) *Event {
	e := NewEvent(typ, args...)
	el.Dispatch(e)
	return e
}

// Dispatch runs the listeners of el for e, then of each ancestor while the
// event bubbles and propagation is not stopped.
func (el *Element) Dispatch(e *Event) {
	if e.Target == nil {
		e.Target = el
	}
	for cur := el; cur != nil; cur = cur.Parent() {
		cur.invoke(e)
		if !e.Bubbles || e.stopped {
			break
		}
	}
	e.CurrentTarget = nil
}

// DispatchOneShot runs only the first one-shot listener registered on el
// for e.Type, without bubbling. It returns whether a listener ran.
func (el *Element) DispatchOneShot(e *Event) bool {
	if e.Target == nil {
		e.Target = el
	}
	el.mu.Lock()
	var picked *listener
	for _, l := range el.listeners[e.Type] {
		if l.once {
			picked = l
			break
		}
	}
	if picked != nil {
		el.listeners[e.Type] = withoutIDs(el.listeners[e.Type], []ListenerID{picked.id})
	}
	el.mu.Unlock()

	if picked == nil {
		return false
	}
	e.CurrentTarget = el
	picked.handler(e)
	e.CurrentTarget = nil
	return true
}

func (el *Element) invoke(e *Event) {
	el.mu.Lock()
	ls := append([]*listener(nil), el.listeners[e.Type]...)
	el.mu.Unlock()

	e.CurrentTarget = el
	for _, l := range ls {
		// a one-shot listener is consumed only when it is reached
		if l.once && !el.consume(e.Type, l.id) {
			continue
		}
		l.handler(e)
		if e.immediateStopped {
			return
		}
	}
}

// consume removes a one-shot listener, reporting whether it was still bound.
func (el *Element) consume(typ string, id ListenerID) bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	for _, l := range el.listeners[typ] {
		if l.id == id {
			el.listeners[typ] = withoutIDs(el.listeners[typ], []ListenerID{id})
			return true
		}
	}
	return false
}
