package widget

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lu-dev/lu/pkg/dom"
)

func TestParseTriggerMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TriggerMode
		wantErr bool
	}{
		{"", TriggerDispatch, false},
		{"dispatch", TriggerDispatch, false},
		{"OneShot", TriggerOneShot, false},
		{"legacy", TriggerOneShot, false},
		{"bubble", TriggerDispatch, true},
	}
	for _, tt := range tests {
		got, err := ParseTriggerMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTriggerMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTriggerMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if TriggerOneShot.String() != "oneshot" {
		t.Errorf("String() = %q", TriggerOneShot.String())
	}
}

func TestSettingsWithDefaults(t *testing.T) {
	s := Settings{"aria": false, "action": "select"}
	merged := s.WithDefaults(Settings{"aria": true, "observe": ""})

	if merged.Bool("aria") {
		t.Error("explicit setting must win over the default")
	}
	if _, ok := merged["observe"]; !ok {
		t.Error("missing key should be filled from defaults")
	}
	if merged.String("action") != "select" {
		t.Errorf("action = %q, want select", merged.String("action"))
	}
	if _, ok := s["observe"]; ok {
		t.Error("WithDefaults must not modify the receiver")
	}
	if !(Settings{"aria": "TRUE"}).Bool("aria") {
		t.Error(`Bool("TRUE") = false, want true`)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	env := NewEnv(WithMetrics(m))

	doc := dom.MustParse(`<body><div id="w"></div><div id="o"></div></body>`)
	p := newStub(t, mustByID(t, doc, "w"), selectedStates, Settings{"observe": "#o"}, env)

	if got := testutil.ToFloat64(m.live.WithLabelValues("Stub")); got != 1 {
		t.Errorf("live = %v, want 1", got)
	}

	_ = p.SetState("selected", "true")
	_ = p.SetState("selected", "true")
	_ = p.SetState("selected", "perhaps")

	if got := testutil.ToFloat64(m.transitions.WithLabelValues("Stub", "selected")); got != 2 {
		t.Errorf("transitions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.unknownValues.WithLabelValues("Stub", "selected")); got != 1 {
		t.Errorf("unknown values = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.notifications.WithLabelValues("selected")); got != 2 {
		t.Errorf("notifications = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.triggers.WithLabelValues("selected")); got != 2 {
		t.Errorf("triggers = %v, want 2", got)
	}

	p.Destroy()
	if got := testutil.ToFloat64(m.live.WithLabelValues("Stub")); got != 0 {
		t.Errorf("live after Destroy = %v, want 0", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.transition("Stub", "selected")
	m.bound("Stub", 1)
	m.notified("x", 3)
}

func TestEnvDefaults(t *testing.T) {
	doc := dom.MustParse(`<body><div id="w" aria-owns="o"></div><div id="o"></div></body>`)
	env := NewEnv(WithDefaultSettings(Settings{"aria": false}))

	p := newStub(t, mustByID(t, doc, "w"), nil, nil, env)
	if n := len(p.Observers()); n != 0 {
		t.Errorf("observers = %d; env default aria=false should disable discovery", n)
	}

	doc = dom.MustParse(`<body><div id="w" aria-owns="o"></div><div id="o"></div></body>`)
	p = newStub(t, mustByID(t, doc, "w"), nil, Settings{"aria": true}, env)
	if n := len(p.Observers()); n != 1 {
		t.Errorf("observers = %d; explicit setting should win over env default", n)
	}
}
