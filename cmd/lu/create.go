package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lu-dev/lu/internal/config"
	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/internal/templates"
)

type createOptions struct {
	dir         string
	template    string
	name        string
	description string
	yaml        bool
	touch       bool
}

func createCmd() *cobra.Command {
	var (
		opts createOptions
		list bool
	)

	cmd := &cobra.Command{
		Use:   "create [dir]",
		Short: "Create a new lu project",
		Long: `Create writes a page, a stylesheet and lu.json into dir (default:
the current directory).

Examples:
  lu create docs
  lu create docs --template minimal --yaml
  lu create --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listTemplates(cmd.OutOrStdout())
			}
			opts.dir = "."
			if len(args) == 1 {
				opts.dir = args[0]
			}
			return runCreate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "full", "Project template")
	cmd.Flags().StringVar(&opts.name, "name", "", "Project name (default: directory name)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Project description")
	cmd.Flags().BoolVar(&opts.yaml, "yaml", false, "Write lu.yaml instead of lu.json")
	cmd.Flags().BoolVar(&opts.touch, "touch", false, "Activate buttons on touchstart")
	cmd.Flags().BoolVar(&list, "list", false, "List available templates")

	return cmd
}

func listTemplates(w io.Writer) error {
	for _, name := range templates.List() {
		tmpl, err := templates.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-10s %s\n", name, tmpl.Description)
	}
	return nil
}

func runCreate(opts createOptions) error {
	tmpl, err := templates.Get(opts.template)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return err
	}
	if config.Exists(dir) {
		return errors.New("L084").WithDetail("a lu project already exists in " + dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = filepath.Base(dir)
	}
	if err := tmpl.Create(dir, templates.Config{
		ProjectName: name,
		Description: opts.description,
		Touch:       opts.touch,
	}); err != nil {
		return err
	}

	cfg := config.New()
	cfg.Widgets.Touch = opts.touch
	cfg.Dev.Watch = []string{"styles.css"}
	if _, err := os.Stat(filepath.Join(dir, "partials")); err == nil {
		cfg.Dev.Watch = append(cfg.Dev.Watch, "partials")
	}

	file := config.ConfigFileName
	if opts.yaml {
		file = config.YAMLConfigFileName
	}
	if err := cfg.SaveTo(filepath.Join(dir, file)); err != nil {
		return err
	}

	success("Created %s from the %s template", dir, tmpl.Name)
	info("cd %s && lu serve", opts.dir)
	return nil
}
