package binding

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// Factory instantiates a widget on el.
type Factory func(el *dom.Element, settings widget.Settings, env *widget.Env) (widget.Widget, error)

// Registration binds a selector to a factory.
type Registration struct {
	Selector string
	Kind     string
	Factory  Factory

	// Settings are copied for each instance.
	Settings widget.Settings
}

// Options configures a Table or a Map.
type Options struct {
	// Logger is used for binding diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger

	// TracerName names the OpenTelemetry tracer (default: "lu/binding").
	TracerName string

	// ContinueOnError keeps resolving after a factory fails. The first
	// error is still returned.
	ContinueOnError bool
}

// Option configures a Table or a Map.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(o *Options) {
		o.TracerName = name
	}
}

// WithContinueOnError keeps resolving after a factory error.
func WithContinueOnError(v bool) Option {
	return func(o *Options) {
		o.ContinueOnError = v
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type boundKey struct {
	el  *dom.Element
	reg int
}

// Table is an ordered list of registrations. Resolving it instantiates
// each registration at most once per matching element, in registration
// order then document order.
type Table struct {
	mu    sync.Mutex
	regs  []Registration
	bound map[boundKey]widget.Widget
	order []widget.Widget

	opts   Options
	tracer trace.Tracer
}

// NewTable returns an empty table.
func NewTable(opts ...Option) *Table {
	o := buildOptions(opts)
	return &Table{
		bound:  make(map[boundKey]widget.Widget),
		opts:   o,
		tracer: tracer(o.TracerName),
	}
}

// Register appends a registration. The selector is validated immediately.
func (t *Table) Register(selector, kind string, factory Factory) error {
	return t.Add(Registration{Selector: selector, Kind: kind, Factory: factory})
}

// Add appends a registration.
func (t *Table) Add(reg Registration) error {
	if reg.Factory == nil {
		return errors.New("L050").WithWidget(reg.Kind).WithDetail("registration has no factory")
	}
	if err := dom.ValidSelector(reg.Selector); err != nil {
		return errors.New("L031").WithWidget(reg.Kind).Wrap(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.regs = append(t.regs, reg)
	return nil
}

// Registrations returns a copy of the registrations.
func (t *Table) Registrations() []Registration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Registration(nil), t.regs...)
}

// Resolve instantiates every registration on the matching elements of doc
// that it was not yet instantiated on. It returns the widgets created by
// this call.
func (t *Table) Resolve(ctx context.Context, doc *dom.Document, env *widget.Env) ([]widget.Widget, error) {
	if env == nil {
		env = widget.NewEnv()
	}
	_, span := t.tracer.Start(ctx, "lu.binding.resolve",
		trace.WithAttributes(attribute.Int("lu.registrations", len(t.Registrations()))))

	var (
		created  []widget.Widget
		firstErr error
	)
	for i, reg := range t.Registrations() {
		matches, err := doc.Query(reg.Selector)
		if err != nil {
			finish(span, err)
			return created, err
		}
		for _, el := range matches.Elements() {
			key := boundKey{el: el, reg: i}
			t.mu.Lock()
			_, done := t.bound[key]
			t.mu.Unlock()
			if done {
				continue
			}

			w, err := reg.Factory(el, reg.Settings.WithDefaults(nil), env)
			if err != nil {
				err = errors.New("L050").WithWidget(reg.Kind).WithElement(el.Describe()).Wrap(err)
				t.opts.Logger.Error("widget binding failed", "kind", reg.Kind, "element", el.Describe(), "error", err)
				if !t.opts.ContinueOnError {
					finish(span, err, attribute.Int("lu.widgets", len(created)))
					return created, err
				}
				if firstErr == nil {
					firstErr = err
				}
				continue
			}

			t.mu.Lock()
			t.bound[key] = w
			t.order = append(t.order, w)
			t.mu.Unlock()
			created = append(created, w)
			t.opts.Logger.Debug("widget bound", "kind", reg.Kind, "element", el.Describe())
		}
	}

	finish(span, firstErr, attribute.Int("lu.widgets", len(created)))
	return created, firstErr
}

// Bound returns every widget the table instantiated, in binding order.
func (t *Table) Bound() []widget.Widget {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]widget.Widget(nil), t.order...)
}

// Destroy destroys every widget the table instantiated, last bound first,
// and forgets them.
func (t *Table) Destroy() {
	t.mu.Lock()
	order := t.order
	t.bound = make(map[boundKey]widget.Widget)
	t.order = nil
	t.mu.Unlock()
	for i := len(order) - 1; i >= 0; i-- {
		order[i].Destroy()
	}
}
