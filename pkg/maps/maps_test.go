package maps

import (
	"context"
	"testing"

	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
	"github.com/lu-dev/lu/pkg/widgets"
)

const page = `<body>
<div data-lu="Tabs">
  <ul class="tab-list">
    <li><a id="t1" aria-controls="p1" aria-selected="true">One</a></li>
    <li><a id="t2" aria-controls="p2">Two</a></li>
  </ul>
  <div class="tab-panels"><div id="p1"></div><div id="p2" hidden></div></div>
</div>
<button id="go" data-lu="Button:Select" aria-controls="t2">Two</button>
</body>`

func TestButtonEvents(t *testing.T) {
	tests := []struct {
		touch    bool
		activate string
		all      string
	}{
		{false, "click", "click focus"},
		{true, "touchstart", "touchstart focus"},
	}
	for _, tt := range tests {
		activate, all := ButtonEvents(tt.touch)
		if activate != tt.activate || all != tt.all {
			t.Errorf("ButtonEvents(%v) = %q, %q; want %q, %q", tt.touch, activate, all, tt.activate, tt.all)
		}
		if m := Button(tt.touch); m.ExecuteOnEvent != tt.all || m.ID != "Button" {
			t.Errorf("Button(%v) = {%s %q}", tt.touch, m.ID, m.ExecuteOnEvent)
		}
	}
}

func TestStockBindings(t *testing.T) {
	tests := []struct {
		name  string
		touch bool
		event string
	}{
		{"click", false, "click"},
		{"touch", true, "touchstart"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := dom.MustParse(page)
			env := widget.NewEnv()

			created, err := Tabs().Resolve(context.Background(), doc, env)
			if err != nil {
				t.Fatal(err)
			}
			// Tabs, two tabs, two panels
			if len(created) != 5 {
				t.Errorf("created %d widgets, want 5", len(created))
			}

			cancel, err := Button(tt.touch).Install(context.Background(), doc, env)
			if err != nil {
				t.Fatal(err)
			}
			defer cancel()

			doc.ByID("go").Trigger(tt.event)

			w, ok := env.Registry.Find(doc.ByID("t2"), widgets.KindTab)
			if !ok || !w.(*widgets.Tab).IsSelected() {
				t.Errorf("%s on the button should select t2", tt.event)
			}
			p2, _ := env.Registry.Find(doc.ByID("p2"), widgets.KindTabpanel)
			if p2.(*widgets.Tabpanel).IsHidden() {
				t.Error("p2 should be shown")
			}
		})
	}
}

func TestCatalogKinds(t *testing.T) {
	want := []string{"Button", "Tab", "Tabpanel", "Tabs"}
	got := Catalog().Kinds()
	if len(got) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
