package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lu-dev/lu/internal/config"
	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
)

const testPage = `<html><body>
<div data-lu="Tabs">
  <ul class="tab-list">
    <li><a id="t1" aria-controls="p1" aria-selected="true">One</a></li>
    <li><a id="t2" aria-controls="p2">Two</a></li>
  </ul>
  <div class="tab-panels"><div id="p1"></div><div id="p2" hidden></div></div>
</div>
<button id="go" data-lu="Button:Select" aria-controls="t2">Two</button>
</body></html>`

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(testPage), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		events   []string
		selected string
	}{
		{"no events", nil, "t1"},
		{"button click", []string{"#go:click"}, "t2"},
		{"button focus", []string{"#go:focus"}, "t1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runRender(context.Background(), renderOptions{page: writePage(t), events: tt.events}, &out)
			if err != nil {
				t.Fatal(err)
			}

			doc, err := dom.Parse(&out)
			if err != nil {
				t.Fatal(err)
			}
			if !doc.ByID(tt.selected).HasClass("lu-state-selected") {
				t.Errorf("#%s should be selected in:\n%s", tt.selected, doc.String())
			}
		})
	}
}

func TestRender_Out(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := runRender(context.Background(), renderOptions{page: writePage(t), out: dir}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Error("nothing should be printed when publishing")
	}

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `role="tablist"`) {
		t.Error("published page should carry the bound roles")
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts renderOptions
		code string
	}{
		{"bad event", renderOptions{events: []string{"nocolon"}}, "L052"},
		{"s3 without bucket", renderOptions{s3: true}, "L082"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.page = writePage(t)
			err := runRender(context.Background(), tt.opts, &bytes.Buffer{})
			le, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("err = %v, want *errors.Error", err)
			}
			if le.Code != tt.code {
				t.Errorf("Code = %q, want %q", le.Code, tt.code)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		yaml bool
		file string
	}{
		{"json", false, "lu.json"},
		{"yaml", true, "lu.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "site")
			if err := runCreate(createOptions{dir: dir, template: "full", yaml: tt.yaml}); err != nil {
				t.Fatal(err)
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatal(err)
			}
			if filepath.Base(cfg.Path()) != tt.file {
				t.Errorf("config file = %s, want %s", cfg.Path(), tt.file)
			}
			if len(cfg.WatchPaths()) != 3 {
				t.Errorf("WatchPaths() = %v, want page, styles.css and partials", cfg.WatchPaths())
			}

			var out bytes.Buffer
			if err := runRender(context.Background(), renderOptions{page: cfg.PagePath()}, &out); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "<title>site</title>") {
				t.Error("project name should default to the directory name")
			}

			err = runCreate(createOptions{dir: dir, template: "full"})
			if le, ok := err.(*errors.Error); !ok || le.Code != "L084" {
				t.Errorf("second create err = %v, want L084", err)
			}
		})
	}
}

func TestListTemplates(t *testing.T) {
	var out bytes.Buffer
	if err := listTemplates(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "minimal") || !strings.Contains(out.String(), "full") {
		t.Errorf("listTemplates() = %q", out.String())
	}
}
