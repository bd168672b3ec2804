package widgets

import (
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// KindTab is the kind of Tab widgets.
const KindTab = "Tab"

// Tab is a selectable, expandable tab.
//
// It answers the "select", "deselect", "expand" and "collapse" events; each
// handler stops propagation so an enclosing Tabs does not see the request.
type Tab struct {
	*widget.Base
	Selectable
	Expandable
}

var tabDefinition = widget.Definition{
	Kind: KindTab,
	States: widget.States{
		StateSelected: SelectedState,
		StateExpanded: ExpandedState,
	},
}

// NewTab binds a Tab to el.
func NewTab(el *dom.Element, settings widget.Settings, env *widget.Env) (*Tab, error) {
	t := &Tab{Base: &widget.Base{}}
	t.Selectable = Selectable{t.Base}
	t.Expandable = Expandable{t.Base}
	if err := t.Init(t, tabDefinition, el, settings, env); err != nil {
		return nil, err
	}

	t.On("select", t.handle(t.Select))
	t.On("deselect", t.handle(t.Deselect))
	t.On("expand", t.handle(t.Expand))
	t.On("collapse", t.handle(t.Collapse))

	// markup may declare the state through one representation only
	if t.IsSelected() {
		_ = t.Sync(StateSelected)
	}
	if t.IsExpanded() {
		_ = t.Sync(StateExpanded)
	}
	return t, nil
}

func (t *Tab) handle(action func() error) dom.Handler {
	return func(e *dom.Event) {
		e.StopPropagation()
		if err := action(); err != nil {
			t.Logger().Warn("tab action failed", "event", e.Type, "error", err)
		}
	}
}
