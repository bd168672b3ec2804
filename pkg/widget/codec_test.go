package widget

import (
	"testing"

	"github.com/lu-dev/lu/pkg/dom"
)

func TestRoundTripPerRepresentation(t *testing.T) {
	values := []string{"on", "off", "mixed"}
	tests := []struct {
		name string
		def  StateDef
		tag  string
	}{
		{"class only", StateDef{Values: values, Class: Values{"on", "off", "mixed"}}, "div"},
		{"aria only", StateDef{Values: values, Aria: Aria("true", "false", "mixed")}, "div"},
		{"property only", StateDef{Values: values, Property: &Filtered{Values: Values{"yes", "no", "partly"}}}, "div"},
		{"combined", StateDef{
			Values:   values,
			Class:    Values{"on", "off", "mixed"},
			Aria:     Aria("true", "false", "mixed"),
			Property: Filter("input", "yes", "no", "partly"),
		}, "input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dom.MustParse(`<body><` + tt.tag + ` id="w"></body>`)
			p := newStub(t, mustByID(t, doc, "w"), States{"pressed": tt.def}, nil, nil)

			if v, ok := p.State("pressed"); ok {
				t.Fatalf("State() on bare markup = %q, want no match", v)
			}
			for _, v := range values {
				if err := p.SetState("pressed", v); err != nil {
					t.Fatalf("SetState(%q) error = %v", v, err)
				}
				if got, ok := p.State("pressed"); !ok || got != v {
					t.Errorf("State() after SetState(%q) = %q, %v", v, got, ok)
				}
			}
		})
	}
}

func TestFalsyMarkerRemovesRepresentation(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w" class="lu-state-selected" aria-selected="true"></div></body>`)
	el := mustByID(t, doc, "w")
	p := newStub(t, el, States{
		"selected": {
			Values: []string{"true", "false"},
			Class:  Values{"selected", ""},
			Aria:   Aria("true", ""),
		},
	}, nil, nil)

	if err := p.SetState("selected", "false"); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}
	if el.HasClass("lu-state-selected") {
		t.Error("class marker should be removed")
	}
	if _, ok := el.Attr("aria-selected"); ok {
		t.Error("aria-selected should be removed, not set to empty")
	}
}

func TestFilteredPropertyUntouched(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w" selected></div></body>`)
	el := mustByID(t, doc, "w")
	p := newStub(t, el, States{
		"selected": {
			Values:   []string{"true", "false"},
			Property: Filter("option", "true", ""),
		},
	}, nil, nil)

	if v, ok := p.State("selected"); ok {
		t.Errorf("State() = %q; a non-matching filter must not be read", v)
	}

	var records []dom.MutationRecord
	doc.Observe(func(r dom.MutationRecord) { records = append(records, r) })

	for _, v := range []string{"true", "false"} {
		if err := p.SetState("selected", v); err != nil {
			t.Fatalf("SetState(%q) error = %v", v, err)
		}
	}
	if len(records) != 0 {
		t.Errorf("filtered property was written: %+v", records)
	}
	if _, ok := el.Attr("selected"); !ok {
		t.Error("markup of a filtered-out element changed")
	}
}

func TestFilteredPropertyOnMatchingElement(t *testing.T) {
	doc := dom.MustParse(`<body><select><option id="o">x</option></select></body>`)
	el := mustByID(t, doc, "o")
	p := newStub(t, el, selectedStates, nil, nil)

	if err := p.SetState("selected", "true"); err != nil {
		t.Fatal(err)
	}
	if v, ok := el.Prop("selected"); !ok || v != "true" {
		t.Errorf("Prop(selected) = %q, %v; want true", v, ok)
	}
	if err := p.SetState("selected", "false"); err != nil {
		t.Fatal(err)
	}
	if _, ok := el.Prop("selected"); ok {
		t.Error("Prop(selected) should be removed for the falsy marker")
	}
}

func TestRepKindString(t *testing.T) {
	tests := []struct {
		kind RepKind
		want string
	}{
		{ClassRep, "class"},
		{AriaRep, "aria"},
		{PropertyRep, "property"},
		{RepKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("RepKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
