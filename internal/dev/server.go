package dev

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lu-dev/lu"
	"github.com/lu-dev/lu/internal/config"
	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/binding"
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Registry collects widget metrics served on /metrics.
	// If nil, a fresh registry is created.
	Registry *prometheus.Registry

	// OnReload is called after the page was reloaded from disk.
	OnReload func(clients int)
}

// Server is the development server. It holds one bound page, applies
// events posted to it and streams the resulting mutations to browsers.
type Server struct {
	config   *config.Config
	options  ServerOptions
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *widget.Metrics
	watcher  *Watcher
	stream   *Stream
	changeCh chan Change

	mu         sync.Mutex
	page       *lu.Page
	unobserve  func()
	httpServer *http.Server
	running    bool
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := options.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	paths := cfg.WatchPaths()
	if cfg.Path() != "" {
		paths = append(paths, cfg.Path())
	}

	return &Server{
		config:   cfg,
		options:  options,
		logger:   logger,
		registry: registry,
		// collectors register once; the same Metrics serves every reload
		metrics: widget.NewMetrics(widget.WithRegistry(registry)),
		watcher: NewWatcher(WatcherConfig{
			Paths:    paths,
			Debounce: 100 * time.Millisecond,
			Logger:   logger,
		}),
		stream: NewStream(),
	}
}

// Load (re)binds the project page, replacing the current one.
func (s *Server) Load(ctx context.Context) error {
	cfg := s.project()
	page, err := lu.LoadFile(ctx, cfg.PagePath(), lu.FromProject(cfg, s.logger, s.metrics))
	if err != nil {
		return err
	}
	unobserve := page.Observe(s.stream.Mutation)

	s.mu.Lock()
	old, oldUnobserve := s.page, s.unobserve
	s.page, s.unobserve = page, unobserve
	s.mu.Unlock()

	if old != nil {
		oldUnobserve()
		old.Close()
	}
	s.logger.Info("page loaded", "page", cfg.PagePath(), "widgets", len(page.Widgets()))
	return nil
}

func (s *Server) project() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Page returns the current page, or nil before Load.
func (s *Server) Page() *lu.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Post("/events", s.handleEvents)
	r.Handle(StreamPath, s.stream)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/*", http.FileServer(http.Dir(s.config.Dir())))
	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := s.Page()
	if page == nil {
		http.Error(w, "page not loaded", http.StatusServiceUnavailable)
		return
	}
	body, err := page.HTML()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(injectScript(body))
}

// injectScript inserts ClientScript before the closing body tag.
func injectScript(body []byte) []byte {
	i := bytes.LastIndex(body, []byte("</body>"))
	if i < 0 {
		return append(body, ClientScript...)
	}
	out := make([]byte, 0, len(body)+len(ClientScript))
	out = append(out, body[:i]...)
	out = append(out, ClientScript...)
	return append(out, body[i:]...)
}

// EventRequest is the body of POST /events. Either Replay or both Target
// and Event are set.
type EventRequest struct {
	Replay string `json:"replay,omitempty"`
	Target string `json:"target,omitempty"`
	Event  string `json:"event,omitempty"`
}

// EventResponse lists the mutations an event caused.
type EventResponse struct {
	Mutations []Message `json:"mutations"`
}

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	replay := binding.Replay{Selector: req.Target, Event: req.Event}
	if req.Replay != "" {
		var err error
		if replay, err = binding.ParseReplay(req.Replay); err != nil {
			writeError(w, err)
			return
		}
	}

	page := s.Page()
	if page == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: "page not loaded"})
		return
	}
	records, err := page.Dispatch(replay)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := EventResponse{Mutations: make([]Message, 0, len(records))}
	for _, rec := range records {
		resp.Mutations = append(resp.Mutations, MutationMessage(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, err error) {
	var luErr *errors.Error
	if stderrors.As(err, &luErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: luErr.Code, Message: luErr.Error()})
		return
	}
	if stderrors.Is(err, dom.ErrBadSelector) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Start loads the page, watches the project and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	if err := s.Load(ctx); err != nil {
		s.Stop()
		return err
	}

	s.changeCh = make(chan Change, 64)
	s.watcher.OnChange(func(change Change) {
		select {
		case s.changeCh <- change:
		default:
		}
	})
	go s.watcher.Start(ctx)
	go s.processChanges(ctx)

	httpServer := &http.Server{
		Addr:    s.config.DevAddress(),
		Handler: s.Handler(),
	}
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	s.logger.Info("server running", "url", s.config.DevURL())

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.watcher.Stop()
	s.stream.Close()

	if s.page != nil {
		s.unobserve()
		s.page.Close()
		s.page = nil
	}

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// processChanges serializes file change handling and coalesces bursts.
func (s *Server) processChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-s.changeCh:
			changes := []Change{change}
			draining := true
			for draining {
				select {
				case next := <-s.changeCh:
					changes = append(changes, next)
				default:
					draining = false
				}
			}
			s.handleChanges(ctx, changes)
		}
	}
}

// handleChanges reloads what a batch of file changes touched. Page, config
// and asset edits rebind the page; stylesheet edits only refresh CSS.
func (s *Server) handleChanges(ctx context.Context, changes []Change) {
	if len(changes) == 0 {
		return
	}

	var cssPath string
	rebind := false
	for _, change := range changes {
		s.logger.Debug("changed", "path", change.Path, "type", change.Type.String())
		switch change.Type {
		case ChangeConfig:
			if err := s.reloadConfig(change.Path); err != nil {
				s.logger.Error("config reload failed", "error", err)
				s.stream.Error(err.Error())
				return
			}
			rebind = true
		case ChangeCSS:
			if cssPath == "" {
				cssPath = change.Path
			}
		default:
			rebind = true
		}
	}

	if !rebind {
		s.stream.CSS(cssPath)
		s.logger.Info("css reloaded", "file", cssPath)
		return
	}

	if err := s.Load(ctx); err != nil {
		s.logger.Error("page reload failed", "error", err)
		s.stream.Error(err.Error())
		return
	}
	s.stream.Reload()
	if s.options.OnReload != nil {
		s.options.OnReload(s.stream.ClientCount())
	}
}

// reloadConfig re-reads the project file. The dev address and watch list
// stay as they were at start.
func (s *Server) reloadConfig(path string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	cfg.Dev = s.config.Dev
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return nil
}
