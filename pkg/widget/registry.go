package widget

import (
	"sync"

	"github.com/lu-dev/lu/pkg/dom"
)

// Record is the per-element data shared by every widget bound to the same
// element: re-initialising a widget or binding a second widget kind to the
// element reuses its observer and notify-target sets.
type Record struct {
	Observers     *dom.Selection
	NotifyTargets *dom.Selection

	widgets []Widget
	// links are observers added on behalf of other elements' widgets; the
	// record outlives its own widgets while any remain.
	links map[*dom.Element]bool
}

// Registry owns the per-element records of one document. Records are keyed
// by element identity and live while at least one widget is bound.
type Registry struct {
	mu      sync.Mutex
	records map[*dom.Element]*Record
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[*dom.Element]*Record)}
}

// Record returns the record of el, creating it if absent.
func (r *Registry) Record(el *dom.Element) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recordLocked(el)
}

func (r *Registry) recordLocked(el *dom.Element) *Record {
	rec, ok := r.records[el]
	if !ok {
		rec = &Record{
			Observers:     dom.NewSelection(),
			NotifyTargets: dom.NewSelection(),
		}
		r.records[el] = rec
	}
	return rec
}

// Lookup returns the record of el without creating one.
func (r *Registry) Lookup(el *dom.Element) (*Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[el]
	return rec, ok
}

// Widgets returns the widgets bound to el in binding order.
func (r *Registry) Widgets(el *dom.Element) []Widget {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[el]
	if !ok {
		return nil
	}
	return append([]Widget(nil), rec.widgets...)
}

// Find returns the first widget of the given kind bound to el.
func (r *Registry) Find(el *dom.Element, kind string) (Widget, bool) {
	for _, w := range r.Widgets(el) {
		if w.Kind() == kind {
			return w, true
		}
	}
	return nil, false
}

// Len returns the number of elements with a record.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Registry) attach(el *dom.Element, w Widget) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.recordLocked(el)
	rec.widgets = append(rec.widgets, w)
	return rec
}

// Link adds observer to the observer set of target on behalf of a widget
// bound elsewhere. It reports whether observer was newly added.
func (r *Registry) Link(target, observer *dom.Element) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.recordLocked(target)
	if rec.Observers.Contains(observer) {
		return false
	}
	rec.Observers.Add(observer)
	if rec.links == nil {
		rec.links = make(map[*dom.Element]bool)
	}
	rec.links[observer] = true
	return true
}

// Unlink withdraws an observer added with Link.
func (r *Registry) Unlink(target, observer *dom.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[target]
	if !ok {
		return
	}
	rec.Observers.Remove(observer)
	delete(rec.links, observer)
	r.dropIfUnused(target, rec)
}

func (r *Registry) dropIfUnused(el *dom.Element, rec *Record) {
	for o := range rec.links {
		if !rec.Observers.Contains(o) {
			delete(rec.links, o)
		}
	}
	if len(rec.widgets) == 0 && len(rec.links) == 0 {
		delete(r.records, el)
	}
}

// release unbinds w from el. The record is dropped once no widget is bound
// and no other element's widget links an observer to it.
func (r *Registry) release(el *dom.Element, w Widget) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[el]
	if !ok {
		return
	}
	kept := rec.widgets[:0]
	for _, bound := range rec.widgets {
		if bound != w {
			kept = append(kept, bound)
		}
	}
	rec.widgets = kept
	r.dropIfUnused(el, rec)
}
