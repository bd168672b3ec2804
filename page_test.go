package lu

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lu-dev/lu/internal/config"
	"github.com/lu-dev/lu/pkg/binding"
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

const tabsPage = `<!DOCTYPE html>
<html><head><title>tabs</title></head><body>
<div data-lu="Tabs">
  <ul class="tab-list">
    <li><a id="t1" aria-controls="p1" aria-selected="true">One</a></li>
    <li><a id="t2" aria-controls="p2">Two</a></li>
  </ul>
  <div class="tab-panels"><div id="p1">1</div><div id="p2" hidden>2</div></div>
</div>
<button id="go" data-lu="Button:Select" aria-controls="t2">Two</button>
</body></html>`

func load(t *testing.T, cfg Config) *Page {
	t.Helper()
	page, err := Load(context.Background(), strings.NewReader(tabsPage), cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(page.Close)
	return page
}

func TestPageReplay(t *testing.T) {
	page := load(t, Config{})

	if n := len(page.Widgets()); n != 5 {
		t.Errorf("Widgets() = %d, want 5", n)
	}

	records, err := page.Replay("#go:click")
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if len(records) == 0 {
		t.Fatal("Replay() returned no mutations")
	}

	var sawSelected bool
	for _, rec := range records {
		if rec.Target.ID() == "t2" && rec.Name == "aria-selected" && rec.Value == "true" {
			sawSelected = true
		}
	}
	if !sawSelected {
		t.Error("mutations should include aria-selected=true on #t2")
	}

	html, err := page.HTML()
	if err != nil {
		t.Fatal(err)
	}
	rendered := dom.MustParse(string(html))
	if !rendered.ByID("t2").HasClass(widget.StatePrefix + "selected") {
		t.Errorf("rendered page lacks the selected tab:\n%s", html)
	}
	if rendered.ByID("t1").HasClass(widget.StatePrefix + "selected") {
		t.Error("rendered page still marks t1 selected")
	}

	p2 := page.Document().ByID("p2")
	if _, hidden := p2.Attr("hidden"); hidden {
		t.Error("p2 should be shown after the replay")
	}
}

func TestPageReplayErrors(t *testing.T) {
	page := load(t, Config{})

	if _, err := page.Replay("nonsense"); err == nil {
		t.Error("Replay(malformed) should fail")
	}
	if _, err := page.Replay("#missing:click"); err == nil {
		t.Error("Replay(missing element) should fail")
	}

	page.Close()
	if _, err := page.Replay("#go:click"); err == nil {
		t.Error("Replay() after Close should fail")
	}
}

func TestPageDisableARIA(t *testing.T) {
	page := load(t, Config{DisableARIA: true})

	if _, err := page.Replay("#go:click"); err != nil {
		t.Fatal(err)
	}
	if v, _ := page.Document().ByID("t2").Attr("aria-selected"); v == "true" {
		t.Error("without ARIA discovery the button controls nothing")
	}
}

func TestPageCustomBindings(t *testing.T) {
	page := load(t, Config{
		Bindings: func(Config) ([]*binding.Table, []*binding.Map) { return nil, nil },
	})
	if n := len(page.Widgets()); n != 0 {
		t.Errorf("Widgets() = %d, want 0", n)
	}
}

func TestPageMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := widget.NewMetrics(widget.WithRegistry(reg))

	page := load(t, Config{Metrics: metrics})
	if _, err := page.Replay("#go:click"); err != nil {
		t.Fatal(err)
	}

	count, err := testutil.GatherAndCount(reg, "lu_widget_state_transitions_total")
	if err != nil {
		t.Fatal(err)
	}
	if count == 0 {
		t.Error("state transitions were not counted")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(tabsPage), 0644); err != nil {
		t.Fatal(err)
	}
	page, err := LoadFile(context.Background(), path, Config{})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	defer page.Close()

	if _, err := LoadFile(context.Background(), path+".missing", Config{}); err == nil {
		t.Error("LoadFile(missing) should fail")
	}
}

func TestFromProject(t *testing.T) {
	p := config.New()
	p.Widgets.Trigger = "oneshot"
	p.Widgets.Touch = true
	aria := false
	p.Widgets.ARIA = &aria

	cfg := FromProject(p, nil, nil)
	if cfg.Trigger != widget.TriggerOneShot || !cfg.Touch || !cfg.DisableARIA {
		t.Errorf("FromProject() = %+v", cfg)
	}

	_, maps := StockBindings(cfg)
	if len(maps) != 1 || maps[0].ExecuteOnEvent != "touchstart focus" {
		t.Errorf("StockBindings() maps = %v", maps)
	}
}

func TestPageObserve(t *testing.T) {
	page := load(t, Config{})
	var got []dom.MutationRecord
	cancel := page.Observe(func(rec dom.MutationRecord) { got = append(got, rec) })
	defer cancel()

	if _, err := page.Replay("#go:click"); err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Error("observer saw no mutations")
	}
}
