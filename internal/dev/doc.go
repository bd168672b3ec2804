// Package dev provides the development server behind 'lu serve'.
//
// This package implements:
//   - File watching for page, config, CSS and asset changes
//   - Replaying raw DOM events posted to the server against the bound page
//   - WebSocket streaming of the resulting mutations to browsers
//   - Widget metrics on /metrics
//
// # Architecture
//
//   - Watcher: reports file changes through fsnotify
//   - Server: holds the bound page and serves it with chi
//   - Stream: fans mutation and reload messages out over WebSocket
//
// # Routes
//
//	GET  /            the page with the client script injected
//	POST /events      {"replay":"#tab2:click"} or {"target":"#tab2","event":"click"}
//	GET  /_lu/stream  WebSocket of mutation, reload, css and error messages
//	GET  /metrics     Prometheus metrics
//	GET  /healthz     liveness
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{Config: cfg})
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
package dev
