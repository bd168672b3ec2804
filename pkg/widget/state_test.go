package widget

import (
	"errors"
	"testing"

	luerrors "github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
)

func TestSetStateIdempotent(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w"></div><div id="obs"></div></body>`)
	el := mustByID(t, doc, "w")
	obs := mustByID(t, doc, "obs")
	p := newStub(t, el, selectedStates, Settings{"observe": obs}, nil)

	notified := countEvents(obs, "selected")
	local := countEvents(el, "selected")

	mutations := 0
	doc.Observe(func(dom.MutationRecord) { mutations++ })

	if err := p.SetState("selected", "true"); err != nil {
		t.Fatal(err)
	}
	first := mutations
	if first == 0 {
		t.Fatal("first SetState produced no mutation")
	}
	if err := p.SetState("selected", "true"); err != nil {
		t.Fatal(err)
	}

	if mutations != first {
		t.Errorf("second SetState mutated the DOM: %d records, want %d", mutations, first)
	}
	if *notified != 1 {
		t.Errorf("observer notified %d times, want 1", *notified)
	}
	if *local != 1 {
		t.Errorf("owner listener ran %d times, want 1", *local)
	}
}

func TestSetStateIdempotentWithoutMarker(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w"></div></body>`)
	el := mustByID(t, doc, "w")
	states := States{"power": {Values: []string{"off", "on"}, Class: Values{"", "on"}}}
	p := newStub(t, el, states, nil, nil)
	local := countEvents(el, "power")

	for i := 0; i < 2; i++ {
		if err := p.SetState("power", "off"); err != nil {
			t.Fatal(err)
		}
	}
	if *local != 1 {
		t.Errorf("notifications = %d, want 1", *local)
	}

	if err := p.SetState("power", "on"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetState("power", "off"); err != nil {
		t.Fatal(err)
	}
	if *local != 3 {
		t.Errorf("notifications = %d, want 3", *local)
	}
	if el.HasClass(StatePrefix + "on") {
		t.Error("class marker for on should be removed")
	}
}

func TestStatePrecedence(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w" class="lu-state-selected" aria-selected="false"></div></body>`)
	p := newStub(t, mustByID(t, doc, "w"), selectedStates, nil, nil)

	if v, ok := p.State("selected"); !ok || v != "true" {
		t.Errorf("State() = %q, %v; class representation should win", v, ok)
	}
}

func TestStateFallsBackToAria(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w" aria-selected="false"></div></body>`)
	p := newStub(t, mustByID(t, doc, "w"), selectedStates, nil, nil)

	if v, ok := p.State("selected"); !ok || v != "false" {
		t.Errorf("State() = %q, %v; want false from aria", v, ok)
	}
}

func TestStateChangePayloadAndOrdering(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w"></div></body>`)
	el := mustByID(t, doc, "w")
	p := newStub(t, el, selectedStates, nil, nil)

	var payload any
	var classAtNotify bool
	p.On("selected", func(e *dom.Event) {
		payload = e.Arg(0)
		classAtNotify = el.HasClass("lu-state-selected")
	})

	if err := p.SetState("selected", "true"); err != nil {
		t.Fatal(err)
	}
	if payload != p {
		t.Errorf("payload = %v, want the widget", payload)
	}
	if !classAtNotify {
		t.Error("DOM mutations must complete before the notification")
	}
}

func TestSetStateUnknownValue(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w" aria-selected="true"></div></body>`)
	el := mustByID(t, doc, "w")
	p := newStub(t, el, selectedStates, nil, nil)
	local := countEvents(el, "selected")

	if err := p.SetState("selected", "maybe"); err != nil {
		t.Fatalf("SetState(unknown value) error = %v, want permissive nil", err)
	}
	if v, _ := el.Attr("aria-selected"); v != "true" {
		t.Errorf("aria-selected = %q; unknown values must not touch markers", v)
	}
	if v, ok := p.Recorded("selected"); !ok || v != "maybe" {
		t.Errorf("Recorded() = %q, %v; want maybe", v, ok)
	}
	if *local != 1 {
		t.Errorf("notifications = %d, want 1", *local)
	}

	if err := p.Check("selected", "maybe"); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("Check() error = %v, want ErrUnknownValue", err)
	}
	if err := p.Check("selected", "false"); err != nil {
		t.Errorf("Check(valid) error = %v", err)
	}
}

func TestUnknownState(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w"></div></body>`)
	p := newStub(t, mustByID(t, doc, "w"), selectedStates, nil, nil)

	if err := p.SetState("expanded", "true"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("SetState(unknown state) error = %v, want ErrUnknownState", err)
	}
	if _, ok := p.State("expanded"); ok {
		t.Error("State(unknown) should not match")
	}
}

func TestSync(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w" aria-selected="true"></div></body>`)
	el := mustByID(t, doc, "w")
	p := newStub(t, el, selectedStates, nil, nil)
	local := countEvents(el, "selected")

	if err := p.Sync("selected"); err != nil {
		t.Fatal(err)
	}
	if !el.HasClass("lu-state-selected") {
		t.Error("Sync should add the class representation")
	}
	if *local != 0 {
		t.Error("Sync must not announce a change")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		states States
		code   string
	}{
		{"no values", States{"s": {}}, "L001"},
		{"class too long", States{"s": {Values: []string{"a"}, Class: Values{"a", "b"}}}, "L002"},
		{"aria too long", States{"s": {Values: []string{"a"}, Aria: Aria("x", "y")}}, "L002"},
		{"duplicate value", States{"s": {Values: []string{"a", "a"}}}, "L003"},
		{"bad filter", States{"s": {Values: []string{"a"}, Property: Filter("[[", "x")}}, "L004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.states.Validate()
			var le *luerrors.Error
			if !errors.As(err, &le) || le.Code != tt.code {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}

	if err := selectedStates.Validate(); err != nil {
		t.Errorf("Validate(selectedStates) error = %v", err)
	}
}

func TestInitFailsFastOnBadDeclaration(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w"></div></body>`)
	el := mustByID(t, doc, "w")
	env := NewEnv()

	p := &stub{Base: &Base{}}
	err := p.Init(p, Definition{Kind: "Stub", States: States{"s": {Values: []string{"a"}, Aria: Aria("x", "y")}}}, el, nil, env)

	var le *luerrors.Error
	if !errors.As(err, &le) || le.Code != "L002" {
		t.Fatalf("Init() error = %v, want L002", err)
	}
	if le.Widget != "Stub" || le.Element != "div#w" {
		t.Errorf("error context = %q/%q, want Stub/div#w", le.Widget, le.Element)
	}
	if env.Registry.Len() != 0 {
		t.Error("a rejected widget must not leave a registry record")
	}
}

func TestInitWithoutElement(t *testing.T) {
	p := &stub{Base: &Base{}}
	err := p.Init(p, Definition{Kind: "Stub"}, nil, nil, nil)
	var le *luerrors.Error
	if !errors.As(err, &le) || le.Code != "L005" {
		t.Errorf("Init(nil) error = %v, want L005", err)
	}
}
