package binding

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// EventHandler is implemented by widgets that act on the raw event which
// caused a Map to instantiate them.
type EventHandler interface {
	HandleEvent(e *dom.Event)
}

// Directive prepares the settings of a widget about to be instantiated by
// a Map.
type Directive func(c *Context)

// Context is passed to directives.
type Context struct {
	// Element is the element the widget will be bound to.
	Element *dom.Element

	// Event is the raw event that reached the element.
	Event *dom.Event

	// Settings are handed to the factory.
	Settings widget.Settings

	ready []func(widget.Widget)
}

// Ready registers fn to run once the widget is instantiated.
func (c *Context) Ready(fn func(w widget.Widget)) {
	c.ready = append(c.ready, fn)
}

type direct struct {
	selector  string
	directive Directive
}

// Map instantiates one widget kind lazily, on the first raw event among
// ExecuteOnEvent that reaches an element matched by one of its directives.
type Map struct {
	ID             string
	ExecuteOnEvent string

	factory Factory
	directs []direct
	err     error

	mu        sync.Mutex
	instances map[*dom.Element]widget.Widget

	opts   Options
	tracer trace.Tracer
}

// NewMap returns a map named id listening for the space-separated raw
// events.
func NewMap(id, events string, factory Factory, opts ...Option) *Map {
	o := buildOptions(opts)
	return &Map{
		ID:             id,
		ExecuteOnEvent: events,
		factory:        factory,
		instances:      make(map[*dom.Element]widget.Widget),
		opts:           o,
		tracer:         tracer(o.TracerName),
	}
}

// Direct adds a directive for elements matching selector. A selector that
// does not compile makes Install fail.
func (m *Map) Direct(selector string, d Directive) *Map {
	if err := dom.ValidSelector(selector); err != nil && m.err == nil {
		m.err = errors.New("L031").WithWidget(m.ID).Wrap(err)
		return m
	}
	m.directs = append(m.directs, direct{selector: selector, directive: d})
	return m
}

// Selectors returns the directive selectors in declaration order.
func (m *Map) Selectors() []string {
	out := make([]string, len(m.directs))
	for i, d := range m.directs {
		out[i] = d.selector
	}
	return out
}

// Install listens for the map's events on the document element. The
// returned function removes the listeners; widgets already instantiated
// stay bound.
func (m *Map) Install(ctx context.Context, doc *dom.Document, env *widget.Env) (cancel func(), err error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.factory == nil {
		return nil, errors.New("L050").WithWidget(m.ID).WithDetail("map has no factory")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("L030").WithWidget(m.ID).WithDetail("document has no root element")
	}
	if env == nil {
		env = widget.NewEnv()
	}

	id := root.On(m.ExecuteOnEvent, func(e *dom.Event) {
		m.handle(ctx, e, env)
	})
	m.opts.Logger.Debug("map installed", "map", m.ID, "events", m.ExecuteOnEvent, "directives", len(m.directs))
	return func() { root.OffID(id) }, nil
}

// Instance returns the widget the map bound to el.
func (m *Map) Instance(el *dom.Element) (widget.Widget, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.instances[el]
	return w, ok
}

// Len returns the number of instantiated widgets.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}

// handle finds the nearest element on the event path matched by a
// directive and instantiates the widget there once.
func (m *Map) handle(ctx context.Context, e *dom.Event, env *widget.Env) {
	for el := e.Target; el != nil; el = el.Parent() {
		matched := m.matching(el)
		if len(matched) == 0 {
			continue
		}
		if _, ok := m.Instance(el); ok {
			return
		}
		m.instantiate(ctx, el, e, matched, env)
		return
	}
}

func (m *Map) matching(el *dom.Element) []direct {
	var out []direct
	for _, d := range m.directs {
		if ok, _ := el.Matches(d.selector); ok {
			out = append(out, d)
		}
	}
	return out
}

func (m *Map) instantiate(ctx context.Context, el *dom.Element, e *dom.Event, matched []direct, env *widget.Env) {
	_, span := m.tracer.Start(ctx, "lu.binding.map."+strings.ToLower(m.ID),
		trace.WithAttributes(
			attribute.String("lu.map", m.ID),
			attribute.String("lu.event", e.Type),
			attribute.String("lu.element", el.Describe()),
		))

	c := &Context{Element: el, Event: e, Settings: widget.Settings{}}
	for _, d := range matched {
		if d.directive != nil {
			d.directive(c)
		}
	}

	w, err := m.factory(el, c.Settings, env)
	if err != nil {
		err = errors.New("L050").WithWidget(m.ID).WithElement(el.Describe()).Wrap(err)
		m.opts.Logger.Error("map binding failed", "map", m.ID, "element", el.Describe(), "error", err)
		finish(span, err)
		return
	}

	m.mu.Lock()
	m.instances[el] = w
	m.mu.Unlock()

	for _, fn := range c.ready {
		fn(w)
	}
	if h, ok := w.(EventHandler); ok {
		h.HandleEvent(e)
	}
	finish(span, nil, attribute.String("lu.widget_id", w.ID()))
}

// Destroy destroys every widget the map instantiated and forgets them.
func (m *Map) Destroy() {
	m.mu.Lock()
	instances := m.instances
	m.instances = make(map[*dom.Element]widget.Widget)
	m.mu.Unlock()
	for _, w := range instances {
		w.Destroy()
	}
}
