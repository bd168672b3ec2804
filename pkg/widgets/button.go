package widgets

import (
	"strings"

	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// KindButton is the kind of Button widgets.
const KindButton = "Button"

// Button turns raw DOM events into its configured action.
//
// On each raw event listed in the "events" setting the action named by the
// "action" setting is triggered on the button and dispatched on every notify
// target. A button without an action does nothing.
type Button struct {
	*widget.Base

	raw []dom.ListenerID
}

var buttonDefinition = widget.Definition{
	Kind: KindButton,
	Defaults: widget.Settings{
		"action": "",
		// raw DOM events that perform the action
		"events": "click",
	},
}

// NewButton binds a Button to el.
func NewButton(el *dom.Element, settings widget.Settings, env *widget.Env) (*Button, error) {
	b := &Button{Base: &widget.Base{}}
	if err := b.Init(b, buttonDefinition, el, settings, env); err != nil {
		return nil, err
	}
	if events := b.Settings().String("events"); events != "" {
		b.raw = append(b.raw, el.On(events, b.HandleEvent))
	}
	return b, nil
}

// Action returns the configured action.
func (b *Button) Action() string { return b.Settings().String("action") }

// HandleEvent performs the action for a raw event. Events not listed in
// the "events" setting are ignored.
func (b *Button) HandleEvent(e *dom.Event) {
	action := b.Action()
	if action == "" || b.Destroyed() || !b.accepts(e.Type) {
		return
	}
	b.Logger().Debug("button action", "action", action, "event", e.Type)

	b.Trigger(action, b)
	name := widget.Prefix(action)
	for _, target := range b.NotifyTargets() {
		target.Dispatch(&dom.Event{Type: name, Target: b.Element(), Args: []any{b}, Bubbles: true})
	}
}

func (b *Button) accepts(typ string) bool {
	for _, ev := range strings.Fields(b.Settings().String("events")) {
		if ev == typ {
			return true
		}
	}
	return false
}

// Destroy removes the raw listeners along with the widget's own.
func (b *Button) Destroy() {
	if el := b.Element(); el != nil {
		for _, id := range b.raw {
			el.OffID(id)
		}
	}
	b.raw = nil
	b.Base.Destroy()
}
