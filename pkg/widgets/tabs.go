package widgets

import (
	"fmt"
	"strings"

	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// KindTabs is the kind of Tabs widgets.
const KindTabs = "Tabs"

// ARIA roles assigned by Tabs.
const (
	roleAttr         = "role"
	roleTab          = "tab"
	roleTablist      = "tablist"
	roleTabpanel     = "tabpanel"
	rolePresentation = "presentation"
)

// Tabs is a container of a tablist and a set of tab panels.
//
// The tablist observes every tab. When a tab announces "selected", Tabs
// deselects the other tabs and triggers "select" with the tab's index on
// each panel. A "select" reaching the tablist is forwarded to the panels
// with its argument unchanged. Once the panels are updated Tabs triggers
// "change" with the index.
type Tabs struct {
	*widget.Base

	tabList   *dom.Element
	tabPanels *dom.Element

	listeners []dom.ListenerID
	watched   []*dom.Element
}

var tabsDefinition = widget.Definition{
	Kind: KindTabs,
	Defaults: widget.Settings{
		// selector of the tablist among the container's children
		"tabList": ".tab-list",
		// selector of the panels wrapper among the container's children
		"tabPanels": ".tab-panels",
	},
}

// NewTabs binds Tabs to el.
func NewTabs(el *dom.Element, settings widget.Settings, env *widget.Env) (*Tabs, error) {
	t := &Tabs{Base: &widget.Base{}}
	if err := t.Init(t, tabsDefinition, el, settings, env); err != nil {
		return nil, err
	}

	var err error
	if t.tabList, err = t.child(t.Settings().String("tabList")); err != nil {
		t.Destroy()
		return nil, err
	}
	if t.tabList == nil {
		t.tabList = el
	}
	if t.tabPanels, err = t.child(t.Settings().String("tabPanels")); err != nil {
		t.Destroy()
		return nil, err
	}

	t.initRoles()

	registry := t.Env().Registry
	for _, tab := range t.Tabs() {
		if registry.Link(tab, t.tabList) {
			t.watched = append(t.watched, tab)
		}
	}

	t.listeners = append(t.listeners,
		t.tabList.On(widget.Prefix("selected"), t.selectedHandler),
		t.tabList.On(widget.Prefix("select"), t.selectHandler),
	)
	return t, nil
}

func (t *Tabs) child(sel string) (*dom.Element, error) {
	if sel == "" {
		return nil, nil
	}
	children, err := t.Element().ChildrenMatching(sel)
	if err != nil {
		return nil, err
	}
	return children.First(), nil
}

// initRoles sets the tablist, tabpanel, presentation and tab roles where
// the markup does not declare one.
func (t *Tabs) initRoles() {
	setRole(t.tabList, roleTablist)
	for _, panel := range t.Panels() {
		setRole(panel, roleTabpanel)
	}
	for _, item := range t.tabList.Children() {
		if item.Tag() != "li" {
			continue
		}
		setRole(item, rolePresentation)
		for _, c := range item.Children() {
			if c.Tag() == "a" {
				setRole(c, roleTab)
				break
			}
		}
	}
}

func setRole(el *dom.Element, role string) {
	if el == nil {
		return
	}
	if v, ok := el.Attr(roleAttr); !ok || v == "" {
		el.SetAttr(roleAttr, role)
	}
}

// TabList returns the tablist element.
func (t *Tabs) TabList() *dom.Element { return t.tabList }

// Tabs returns the tab elements in order: each tablist item with role tab,
// or its first child with role tab.
func (t *Tabs) Tabs() []*dom.Element {
	var tabs []*dom.Element
	for _, item := range t.tabList.Children() {
		if role, _ := item.Attr(roleAttr); role == roleTab {
			tabs = append(tabs, item)
			continue
		}
		for _, c := range item.Children() {
			if role, _ := c.Attr(roleAttr); role == roleTab {
				tabs = append(tabs, c)
				break
			}
		}
	}
	return tabs
}

// Panels returns the panel elements in order.
func (t *Tabs) Panels() []*dom.Element {
	if t.tabPanels == nil {
		return nil
	}
	return t.tabPanels.Children()
}

// Select selects the tab at index through its Tab widget.
func (t *Tabs) Select(index int) error {
	tabs := t.Tabs()
	if index < 0 || index >= len(tabs) {
		return fmt.Errorf("tab index %d out of range [0,%d)", index, len(tabs))
	}
	w, ok := t.Env().Registry.Find(tabs[index], KindTab)
	if !ok {
		return fmt.Errorf("no %s widget bound to %s", KindTab, tabs[index].Describe())
	}
	return w.(*Tab).Select()
}

// Selected returns the index of the selected tab, or -1.
func (t *Tabs) Selected() int {
	for i, tab := range t.Tabs() {
		if isSelected(t.Env().Registry, tab) {
			return i
		}
	}
	return -1
}

func (t *Tabs) indexOf(el *dom.Element) int {
	for i, tab := range t.Tabs() {
		if tab == el {
			return i
		}
	}
	return -1
}

func (t *Tabs) selectedHandler(e *dom.Event) {
	index := t.indexOf(e.Target)
	if index < 0 {
		return
	}
	e.StopPropagation()

	registry := t.Env().Registry
	if !isSelected(registry, e.Target) {
		return
	}
	for _, other := range t.Tabs() {
		if other == e.Target {
			continue
		}
		if w, ok := registry.Find(other, KindTab); ok {
			if err := w.(*Tab).Deselect(); err != nil {
				t.Logger().Warn("deselect failed", "tab", other.Describe(), "error", err)
			}
		}
	}

	t.Logger().Debug("tab selected", "index", index, "tab", e.Target.Describe())
	t.selectPanels(index)
	t.Trigger("change", index)
}

func (t *Tabs) selectHandler(e *dom.Event) {
	e.StopPropagation()
	t.selectPanels(e.Arg(0))
}

// selectPanels triggers "select" with item on every panel.
func (t *Tabs) selectPanels(item any) {
	name := widget.Prefix("select")
	for _, panel := range t.Panels() {
		panel.Dispatch(&dom.Event{Type: name, Target: t.Element(), Args: []any{item}})
	}
}

// Destroy removes the tablist listeners and stops observing the tabs.
func (t *Tabs) Destroy() {
	if t.tabList != nil {
		for _, id := range t.listeners {
			t.tabList.OffID(id)
		}
		registry := t.Env().Registry
		for _, tab := range t.watched {
			registry.Unlink(tab, t.tabList)
		}
	}
	t.listeners, t.watched = nil, nil
	t.Base.Destroy()
}

// isSelected reads the selected state of a tab element, through its Tab
// widget when one is bound.
func isSelected(registry *widget.Registry, el *dom.Element) bool {
	if w, ok := registry.Find(el, KindTab); ok {
		return w.(*Tab).IsSelected()
	}
	if v, _ := el.Attr("aria-selected"); v == True {
		return true
	}
	return el.HasClass(widget.StatePrefix + "selected")
}

func hasToken(el *dom.Element, attr, token string) bool {
	v, ok := el.Attr(attr)
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == token {
			return true
		}
	}
	return false
}
