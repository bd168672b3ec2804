package lu

import (
	"log/slog"

	"github.com/lu-dev/lu/internal/config"
	"github.com/lu-dev/lu/pkg/binding"
	"github.com/lu-dev/lu/pkg/maps"
	"github.com/lu-dev/lu/pkg/widget"
)

// Config is the runtime configuration of a page.
type Config struct {
	// Logger is the structured logger for widgets and bindings.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics receives widget counters. Nil records nothing. Create it once
	// per registry; collectors cannot be registered twice.
	Metrics *widget.Metrics

	// Trigger selects how a widget's own listeners run on Trigger.
	// Default: widget.TriggerDispatch.
	Trigger widget.TriggerMode

	// Touch makes the Button map activate on touchstart instead of click.
	Touch bool

	// DisableARIA turns off observer discovery from ARIA relationship
	// attributes.
	DisableARIA bool

	// Bindings returns the tables and maps attached to each page.
	// If nil, StockBindings is used.
	Bindings func(cfg Config) ([]*binding.Table, []*binding.Map)
}

// StockBindings returns the Tabs table and the Button map.
func StockBindings(cfg Config) ([]*binding.Table, []*binding.Map) {
	opts := []binding.Option{binding.WithLogger(cfg.logger())}
	return []*binding.Table{maps.Tabs(opts...)}, []*binding.Map{maps.Button(cfg.Touch, opts...)}
}

// FromProject converts a project file into a runtime configuration.
func FromProject(p *config.Config, logger *slog.Logger, metrics *widget.Metrics) Config {
	return Config{
		Logger:      logger,
		Metrics:     metrics,
		Trigger:     p.TriggerMode(),
		Touch:       p.Widgets.Touch,
		DisableARIA: !p.ARIA(),
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c Config) env() *widget.Env {
	opts := []widget.EnvOption{
		widget.WithLogger(c.logger()),
		widget.WithMetrics(c.Metrics),
		widget.WithTriggerMode(c.Trigger),
	}
	if c.DisableARIA {
		opts = append(opts, widget.WithDefaultSettings(widget.Settings{"aria": false}))
	}
	return widget.NewEnv(opts...)
}

func (c Config) bindings() ([]*binding.Table, []*binding.Map) {
	if c.Bindings != nil {
		return c.Bindings(c)
	}
	return StockBindings(c)
}
