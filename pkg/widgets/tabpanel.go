package widgets

import (
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// KindTabpanel is the kind of Tabpanel widgets.
const KindTabpanel = "Tabpanel"

// Tabpanel is the content shown for one tab.
//
// On "select" it shows itself when the argument designates it and hides
// otherwise. The argument is either the index of the tab (compared with the
// panel's position among its siblings) or the tab itself, given as an
// element or a widget, which designates the panel through aria-controls or
// the panel's aria-labelledby.
type Tabpanel struct {
	*widget.Base
	Hideable
}

var tabpanelDefinition = widget.Definition{
	Kind: KindTabpanel,
	States: widget.States{
		StateHidden: HiddenState,
	},
}

// NewTabpanel binds a Tabpanel to el.
func NewTabpanel(el *dom.Element, settings widget.Settings, env *widget.Env) (*Tabpanel, error) {
	p := &Tabpanel{Base: &widget.Base{}}
	p.Hideable = Hideable{p.Base}
	if err := p.Init(p, tabpanelDefinition, el, settings, env); err != nil {
		return nil, err
	}
	p.On("select", p.selectHandler)
	return p, nil
}

func (p *Tabpanel) selectHandler(e *dom.Event) {
	e.StopPropagation()

	var err error
	if p.Designated(e.Arg(0)) {
		err = p.Show()
	} else {
		err = p.Hide()
	}
	if err != nil {
		p.Logger().Warn("tabpanel select failed", "error", err)
	}
}

// Designated reports whether item selects this panel.
func (p *Tabpanel) Designated(item any) bool {
	el := p.Element()
	switch v := item.(type) {
	case int:
		return el.Index() == v
	case widget.Widget:
		return controls(v.Element(), el)
	case *dom.Element:
		return controls(v, el)
	default:
		return false
	}
}

// controls reports whether tab is tied to panel by aria-controls or
// aria-labelledby.
func controls(tab, panel *dom.Element) bool {
	if tab == nil || panel == nil {
		return false
	}
	if id := panel.ID(); id != "" && hasToken(tab, "aria-controls", id) {
		return true
	}
	if id := tab.ID(); id != "" && hasToken(panel, "aria-labelledby", id) {
		return true
	}
	return false
}
