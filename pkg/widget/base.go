package widget

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
)

// ErrDestroyed is returned by state writes on a torn-down widget.
var ErrDestroyed = errors.New("L012")

// Widget is implemented by every concrete widget, usually by embedding
// *Base.
type Widget interface {
	ID() string
	Kind() string
	Element() *dom.Element
	Destroy()
}

// Definition is what a concrete widget declares about itself.
type Definition struct {
	Kind     string
	Defaults Settings
	States   States
}

// Defaults shared by every widget.
var baseDefaults = Settings{
	// selector, element or selection of nodes to observe
	"observe": "",
	// selector, element or selection of nodes to notify of events
	"notify": "",
	// use aria-owns, aria-describedby and aria-labelledby to find observers
	// and aria-controls to find notify targets
	"aria": true,
}

// Base carries the state machine and event router of a widget.
type Base struct {
	id       string
	kind     string
	self     Widget
	el       *dom.Element
	settings Settings
	env      *Env

	machine *Machine
	router  *Router
	logger  *slog.Logger

	destroyed bool
}

// Init binds the widget to el. self is the concrete widget embedding b; it
// is the payload of state-change events.
func (b *Base) Init(self Widget, def Definition, el *dom.Element, settings Settings, env *Env) error {
	if el == nil {
		return errors.New("L005").WithWidget(def.Kind)
	}
	if env == nil {
		env = NewEnv()
	}
	if self == nil {
		self = b
	}

	b.id = uuid.NewString()
	b.kind = def.Kind
	b.self = self
	b.el = el
	b.env = env
	b.settings = settings.WithDefaults(def.Defaults).WithDefaults(env.Defaults).WithDefaults(baseDefaults)
	b.logger = env.Logger.With("widget", def.Kind, "id", b.id, "element", el.Describe())

	machine, err := NewMachine(el, def.States, b.stateChanged)
	if err != nil {
		if le, ok := err.(*errors.Error); ok {
			le.WithWidget(def.Kind).WithElement(el.Describe())
		}
		return err
	}
	machine.logger = b.logger
	machine.metrics = env.Metrics
	machine.kind = def.Kind
	b.machine = machine

	rec := env.Registry.attach(el, self)
	env.Metrics.bound(def.Kind, 1)
	b.router = newRouter(el, env, rec)
	b.router.logger = b.logger

	if err := b.router.Observe(b.settings["observe"]); err != nil {
		b.Destroy()
		return fmt.Errorf("observe setting: %w", err)
	}
	if err := b.router.AddNotifyTargets(b.settings["notify"]); err != nil {
		b.Destroy()
		return fmt.Errorf("notify setting: %w", err)
	}
	if b.settings.Bool("aria") {
		if err := b.router.discoverARIA(); err != nil {
			b.Destroy()
			return err
		}
	}

	b.logger.Debug("widget initialized",
		"observers", len(b.router.Observers()), "notify", len(b.router.NotifyTargets()))
	return nil
}

func (b *Base) stateChanged(state, value string) {
	b.router.Trigger(state, b.self)
}

// ID returns the instance id.
func (b *Base) ID() string { return b.id }

// Kind returns the widget kind, e.g. "Tab".
func (b *Base) Kind() string { return b.kind }

// Element returns the owner element.
func (b *Base) Element() *dom.Element { return b.el }

// Settings returns the merged settings.
func (b *Base) Settings() Settings { return b.settings }

// Env returns the runtime the widget was bound in.
func (b *Base) Env() *Env { return b.env }

// Logger returns the widget's logger.
func (b *Base) Logger() *slog.Logger { return b.logger }

// Router returns the widget's event router.
func (b *Base) Router() *Router { return b.router }

// State derives the current value of a state from the DOM.
func (b *Base) State(name string) (string, bool) {
	return b.machine.State(name)
}

// SetState moves a state to value and announces the change.
func (b *Base) SetState(name, value string) error {
	if b.destroyed {
		return ErrDestroyed
	}
	return b.machine.SetState(name, value)
}

// Sync rewrites every representation of a state for its current value.
func (b *Base) Sync(name string) error {
	if b.destroyed {
		return ErrDestroyed
	}
	return b.machine.Sync(name)
}

// Check reports whether value belongs to the state's enumeration.
func (b *Base) Check(name, value string) error {
	return b.machine.Check(name, value)
}

// Recorded returns the last value written for a state.
func (b *Base) Recorded(name string) (string, bool) {
	return b.machine.Recorded(name)
}

// On binds a handler to namespaced events on the owner.
func (b *Base) On(events string, handler dom.Handler) dom.ListenerID {
	return b.router.On(events, handler)
}

// One binds a one-shot handler to namespaced events on the owner.
func (b *Base) One(events string, handler dom.Handler) dom.ListenerID {
	return b.router.One(events, handler)
}

// Off unbinds handlers of namespaced events.
func (b *Base) Off(events string, ids ...dom.ListenerID) {
	b.router.Off(events, ids...)
}

// Trigger notifies observers, then runs the owner's listeners.
func (b *Base) Trigger(events string, args ...any) {
	if b.destroyed {
		b.logger.Debug("trigger on destroyed widget", "event", events)
		return
	}
	b.router.Trigger(events, args...)
}

// Notify dispatches namespaced events on every observer.
func (b *Base) Notify(events string, args ...any) {
	if b.destroyed {
		return
	}
	b.router.Notify(events, args...)
}

// Observe adds observers.
func (b *Base) Observe(target any) error {
	return b.router.Observe(target)
}

// Detatch removes observers.
func (b *Base) Detatch(target any) error {
	return b.router.Detatch(target)
}

// Observers returns the observer set.
func (b *Base) Observers() []*dom.Element {
	return b.router.Observers()
}

// NotifyTargets returns the notify-target set.
func (b *Base) NotifyTargets() []*dom.Element {
	return b.router.NotifyTargets()
}

// Destroyed reports whether Destroy was called.
func (b *Base) Destroyed() bool { return b.destroyed }

// Destroy removes the widget's listeners, withdraws the owner from the
// observer sets of its notify targets and releases the element's record
// once no widget is bound to it.
func (b *Base) Destroy() {
	if b.destroyed || b.router == nil {
		return
	}
	b.destroyed = true
	b.router.teardown()
	b.env.Registry.release(b.el, b.self)
	b.env.Metrics.bound(b.kind, -1)
	b.logger.Debug("widget destroyed")
}
