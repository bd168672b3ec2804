package templates

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lu-dev/lu"
	"github.com/lu-dev/lu/internal/errors"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"full", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				le, ok := err.(*errors.Error)
				if !ok || le.Code != "L083" {
					t.Errorf("err = %v, want L083", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
			if tmpl.Description == "" {
				t.Error("template should have a description")
			}
		})
	}
}

func TestList(t *testing.T) {
	got := strings.Join(List(), ",")
	if got != "full,minimal" {
		t.Errorf("List() = %s, want full,minimal", got)
	}
}

func TestTemplate_Create(t *testing.T) {
	tests := []struct {
		template string
		files    []string
		replay   string
		selected string
	}{
		{"minimal", []string{"index.html", "styles.css"}, "#tab2:lu:select", "tab2"},
		{"full", []string{"index.html", "styles.css", "partials/README.md"}, "#panel-intro button:click", "tab-usage"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			tmpDir := t.TempDir()
			tmpl, _ := Get(tt.template)
			cfg := Config{ProjectName: "test-app", Description: "A test application"}

			if err := tmpl.Create(tmpDir, cfg); err != nil {
				t.Fatalf("Create error: %v", err)
			}
			for _, file := range tt.files {
				if _, err := os.Stat(filepath.Join(tmpDir, file)); err != nil {
					t.Errorf("File %q not created", file)
				}
			}

			index, _ := os.ReadFile(filepath.Join(tmpDir, "index.html"))
			if !strings.Contains(string(index), "<title>test-app</title>") {
				t.Error("Project name not substituted in index.html")
			}

			page, err := lu.LoadFile(context.Background(), filepath.Join(tmpDir, "index.html"), lu.Config{})
			if err != nil {
				t.Fatal(err)
			}
			defer page.Close()
			if _, err := page.Replay(tt.replay); err != nil {
				t.Fatal(err)
			}
			if !page.Document().ByID(tt.selected).HasClass("lu-state-selected") {
				t.Errorf("#%s should be selected after %s", tt.selected, tt.replay)
			}
		})
	}
}

func TestTemplate_CreateRefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, _ := Get("minimal")
	err := tmpl.Create(tmpDir, Config{ProjectName: "x"})
	if le, ok := err.(*errors.Error); !ok || le.Code != "L084" {
		t.Fatalf("err = %v, want L084", err)
	}

	data, _ := os.ReadFile(filepath.Join(tmpDir, "index.html"))
	if string(data) != "mine" {
		t.Error("existing file was overwritten")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "styles.css")); err == nil {
		t.Error("no file should be written when one already exists")
	}
}
