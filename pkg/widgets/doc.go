// Package widgets contains the concrete widgets: Tab, Tabpanel, Tabs and
// Button.
//
// Each widget embeds *widget.Base and mixes in capabilities (Selectable,
// Expandable, Hideable) that add verbs over one declared state:
//
//	tab, err := widgets.NewTab(el, nil, env)
//	if err != nil {
//	    return err
//	}
//	tab.Select() // class lu-state-selected, aria-selected="true", "lu:selected" fired
//
// Widgets talk to each other only through namespaced events. A Tabs
// container observes its tabs and drives its panels; a Button triggers its
// action on itself and on the elements it controls.
package widgets
