package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/lu-dev/lu/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project, used as the page title.
	ProjectName string

	// Description is a short project description.
	Description string

	// Touch marks buttons for touch activation in the generated notes.
	Touch bool
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"full":    fullTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("L083").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: full, minimal")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create generates a project from the template. Existing files are left
// untouched and reported as L084.
func (t *Template) Create(dir string, cfg Config) error {
	paths := make([]string, 0, len(t.Files))
	for relPath := range t.Files {
		paths = append(paths, relPath)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		fullPath := filepath.Join(dir, relPath)
		if _, err := os.Stat(fullPath); err == nil {
			return errors.New("L084").WithDetail(fullPath + " already exists")
		}
	}

	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

const styles = `body { font-family: system-ui, sans-serif; max-width: 800px; margin: 0 auto; padding: 2rem; }
.tab-list { display: flex; gap: 1rem; list-style: none; padding: 0; }
.tab-list a { cursor: pointer; padding: .25rem .5rem; }
.tab-list a.lu-state-selected { border-bottom: 2px solid #2563eb; }
[hidden] { display: none; }
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "One tab set",
		Files: map[string]string{
			"index.html": `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.ProjectName}}</title>
  <link rel="stylesheet" href="styles.css">
</head>
<body>
  <h1>{{.ProjectName}}</h1>
  <div data-lu="Tabs">
    <ul class="tab-list">
      <li><a id="tab1" aria-controls="panel1" aria-selected="true">First</a></li>
      <li><a id="tab2" aria-controls="panel2">Second</a></li>
    </ul>
    <div class="tab-panels">
      <section id="panel1">First panel</section>
      <section id="panel2" hidden>Second panel</section>
    </div>
  </div>
</body>
</html>
`,
			"styles.css": styles,
		},
	}
}

// fullTemplate returns the full template.
func fullTemplate() *Template {
	return &Template{
		Name:        "full",
		Description: "Tabs with panels driven by buttons",
		Files: map[string]string{
			"index.html": `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.ProjectName}}</title>
  <link rel="stylesheet" href="styles.css">
</head>
<body>
  <header>
    <h1>{{.ProjectName}}</h1>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
  </header>

  <div data-lu="Tabs" id="docs">
    <ul class="tab-list">
      <li><a id="tab-intro" aria-controls="panel-intro" aria-selected="true">Intro</a></li>
      <li><a id="tab-usage" aria-controls="panel-usage">Usage</a></li>
      <li><a id="tab-faq" aria-controls="panel-faq">FAQ</a></li>
    </ul>
    <div class="tab-panels">
      <section id="panel-intro" aria-labelledby="tab-intro">
        <p>State lives in classes, aria-* attributes and properties.</p>
        <button data-lu="Button:Select" aria-controls="tab-usage">Next</button>
      </section>
      <section id="panel-usage" aria-labelledby="tab-usage" hidden>
        <p>Try: lu render --event "#tab-faq:lu:select"</p>
        <button data-lu="Button:Select" aria-controls="tab-faq">Next</button>
      </section>
      <section id="panel-faq" aria-labelledby="tab-faq" hidden>
        <button data-lu="Button:Select" aria-controls="tab-intro">Back to start</button>
      </section>
    </div>
  </div>
</body>
</html>
`,
			"partials/README.md": `# {{.ProjectName}}

Pages in this directory are watched by 'lu serve'.
{{if .Touch}}
Buttons activate on touchstart.
{{end}}`,
			"styles.css": styles,
		},
	}
}
