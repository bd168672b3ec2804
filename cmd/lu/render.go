package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lu-dev/lu"
	"github.com/lu-dev/lu/internal/config"
	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/internal/publish"
)

type renderOptions struct {
	page   string
	events []string
	out    string
	s3     bool
	touch  bool
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [page]",
		Short: "Bind a page, replay events and print the result",
		Long: `Render parses a page, binds its widgets, replays the given raw
events in order and writes the resulting markup.

Without a page argument the page named in lu.json (or lu.yaml) is used.
The markup goes to stdout unless --out or --s3 is given.

Examples:
  lu render index.html
  lu render index.html --event "#tab2:click"
  lu render --event "[data-lu~=Button:Select]:click" --out dist
  lu render --s3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.page = args[0]
			}
			return runRender(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVarP(&opts.events, "event", "e", nil, `Raw event to replay, as "<selector>:<event>" (repeatable)`)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the page to this directory")
	cmd.Flags().BoolVar(&opts.s3, "s3", false, "Publish the page to the bucket configured in output.s3")
	cmd.Flags().BoolVar(&opts.touch, "touch", false, "Activate buttons on touchstart instead of click")

	return cmd
}

// projectFor finds the configuration for page. A page outside any project
// renders with defaults.
func projectFor(page string) (*config.Config, error) {
	if page == "" {
		return config.LoadFromWorkingDir()
	}
	root, err := config.FindProjectRoot(filepath.Dir(page))
	if err != nil {
		cfg := config.New()
		cfg.Page = page
		return cfg, nil
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(page)
	if err != nil {
		return nil, err
	}
	cfg.Page = abs
	return cfg, nil
}

func runRender(ctx context.Context, opts renderOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := projectFor(opts.page)
	if err != nil {
		return err
	}

	rc := lu.FromProject(cfg, slog.Default(), nil)
	rc.Touch = rc.Touch || opts.touch

	page, err := lu.LoadFile(ctx, cfg.PagePath(), rc)
	if err != nil {
		return err
	}
	defer page.Close()

	for _, spec := range opts.events {
		records, err := page.Replay(spec)
		if err != nil {
			return err
		}
		slog.Debug("replayed", "event", spec, "mutations", len(records))
	}

	if opts.out == "" && !opts.s3 {
		return page.Render(stdout)
	}

	body, err := page.HTML()
	if err != nil {
		return err
	}

	sinks, err := sinksFor(ctx, cfg, opts)
	if err != nil {
		return err
	}
	name := filepath.Base(cfg.PagePath())
	for _, sink := range sinks {
		location, err := sink.Publish(ctx, name, body)
		if err != nil {
			return errors.New("L082").Wrap(err)
		}
		success("Published %s", location)
	}
	return nil
}

func sinksFor(ctx context.Context, cfg *config.Config, opts renderOptions) (publish.Multi, error) {
	var sinks publish.Multi
	if opts.out != "" {
		dir, err := filepath.Abs(opts.out)
		if err != nil {
			return nil, err
		}
		sink, err := publish.NewDirSink(dir)
		if err != nil {
			return nil, errors.New("L082").Wrap(err)
		}
		sinks = append(sinks, sink)
	}
	if opts.s3 {
		if !cfg.HasS3() {
			return nil, errors.New("L082").
				WithDetail("--s3 was given but output.s3.bucket is not set").
				WithSuggestion("Add an output.s3 section to lu.json")
		}
		s3 := cfg.Output.S3
		sink, err := publish.NewS3SinkFromConfig(ctx, s3.Region, s3.Bucket, s3.Prefix)
		if err != nil {
			return nil, errors.New("L082").Wrap(err)
		}
		sinks = append(sinks, sink)
	}
	return sinks, nil
}
