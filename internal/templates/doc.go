// Package templates provides project scaffolding for 'lu create'.
//
// # Available Templates
//
//   - minimal: one tab set
//   - full: tabs with panels driven by buttons
//
// # Usage
//
//	tmpl, err := templates.Get("full")
//	if err != nil {
//	    return err
//	}
//	if err := tmpl.Create(projectDir, templates.Config{ProjectName: "docs"}); err != nil {
//	    return err
//	}
//
// # Template Variables
//
//	{{.ProjectName}}     - Name of the project
//	{{.Description}}     - Project description
//	{{.Touch}}           - Whether buttons activate on touch
package templates
