package maps

import (
	"github.com/lu-dev/lu/pkg/binding"
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
	"github.com/lu-dev/lu/pkg/widgets"
)

// Selectors used by the stock bindings.
const (
	ButtonSelectSelector = `[data-lu~="Button:Select"]`
	TabsSelector         = `[data-lu~="Tabs"]`
	TabSelector          = `[role=tab]`
	TabpanelSelector     = `[role=tabpanel]`
)

// Catalog returns the factories of every stock widget kind.
func Catalog() binding.Catalog {
	return binding.Catalog{
		widgets.KindButton: func(el *dom.Element, s widget.Settings, env *widget.Env) (widget.Widget, error) {
			return widgets.NewButton(el, s, env)
		},
		widgets.KindTab: func(el *dom.Element, s widget.Settings, env *widget.Env) (widget.Widget, error) {
			return widgets.NewTab(el, s, env)
		},
		widgets.KindTabpanel: func(el *dom.Element, s widget.Settings, env *widget.Env) (widget.Widget, error) {
			return widgets.NewTabpanel(el, s, env)
		},
		widgets.KindTabs: func(el *dom.Element, s widget.Settings, env *widget.Env) (widget.Widget, error) {
			return widgets.NewTabs(el, s, env)
		},
	}
}

// ButtonEvents returns the activation events of the Button map: the tap
// or click event followed by focus.
func ButtonEvents(touch bool) (activate, all string) {
	activate = "click"
	if touch {
		activate = "touchstart"
	}
	return activate, activate + " focus"
}

// Button returns the Button map. Buttons marked Button:Select select the
// elements they control.
func Button(touch bool, opts ...binding.Option) *binding.Map {
	activate, events := ButtonEvents(touch)
	factory, _ := Catalog().Factory(widgets.KindButton)

	m := binding.NewMap(widgets.KindButton, events, factory, opts...)
	m.Direct(ButtonSelectSelector, func(c *binding.Context) {
		c.Settings["action"] = "select"
		c.Settings["events"] = activate
		c.Ready(func(w widget.Widget) {
			if b, ok := w.(*widgets.Button); ok {
				b.Logger().Info("Button Select directive resolved")
			}
		})
	})
	return m
}

// Tabs returns the table binding Tabs containers, then tabs, then panels.
// Tabs runs first so the roles it assigns are visible to the later
// registrations.
func Tabs(opts ...binding.Option) *binding.Table {
	catalog := Catalog()
	table := binding.NewTable(opts...)
	for _, reg := range []struct{ selector, kind string }{
		{TabsSelector, widgets.KindTabs},
		{TabSelector, widgets.KindTab},
		{TabpanelSelector, widgets.KindTabpanel},
	} {
		factory, _ := catalog.Factory(reg.kind)
		_ = table.Register(reg.selector, reg.kind, factory)
	}
	return table
}
