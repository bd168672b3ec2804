package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lu-dev/lu/internal/config"
	"github.com/lu-dev/lu/internal/dev"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project page with live mutation streaming",
		Long: `Serve binds the project page and serves it. Raw events posted to
/events are replayed against the bound page and the resulting mutations are
streamed to open browsers. Editing the page or lu.json rebinds it.

Examples:
  lu serve
  lu serve --port=8080
  curl -d '{"replay":"#tab2:click"}' localhost:4000/events`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from lu.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from lu.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}

	server := dev.NewServer(dev.ServerOptions{
		Config: cfg,
		Logger: slog.Default(),
		OnReload: func(clients int) {
			success("Reloaded %d browsers", clients)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	info("Serving %s at %s", cfg.PagePath(), cfg.DevURL())
	return server.Start(ctx)
}
