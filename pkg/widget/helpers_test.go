package widget

import (
	"testing"

	"github.com/lu-dev/lu/pkg/dom"
)

// stub is a minimal concrete widget.
type stub struct {
	*Base
}

var selectedStates = States{
	"selected": {
		Values:   []string{"true", "false"},
		Class:    Values{"selected", ""},
		Aria:     Aria("true", "false"),
		Property: Filter("option", "true", ""),
	},
}

func newStub(t *testing.T, el *dom.Element, states States, settings Settings, env *Env) *stub {
	t.Helper()
	p := &stub{Base: &Base{}}
	if err := p.Init(p, Definition{Kind: "Stub", States: states}, el, settings, env); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return p
}

func mustByID(t *testing.T, doc *dom.Document, id string) *dom.Element {
	t.Helper()
	el := doc.ByID(id)
	if el == nil {
		t.Fatalf("no element #%s", id)
	}
	return el
}

// countEvents counts namespaced events reaching el.
func countEvents(el *dom.Element, event string) *int {
	n := 0
	el.On(Prefix(event), func(e *dom.Event) { n++ })
	return &n
}
