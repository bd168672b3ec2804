package widget

import (
	"fmt"
	"log/slog"
	"strings"
)

// TriggerMode selects how Trigger reaches the owner's own listeners.
type TriggerMode uint8

const (
	// TriggerDispatch runs every listener bound on the owner for the event,
	// once per trigger, without bubbling.
	TriggerDispatch TriggerMode = iota

	// TriggerOneShot reproduces the legacy behavior: only the first
	// listener bound with One runs, and it is consumed.
	TriggerOneShot
)

// String returns the string representation of the TriggerMode.
func (m TriggerMode) String() string {
	switch m {
	case TriggerDispatch:
		return "dispatch"
	case TriggerOneShot:
		return "oneshot"
	default:
		return "unknown"
	}
}

// ParseTriggerMode parses "dispatch" or "oneshot". Empty means dispatch.
func ParseTriggerMode(s string) (TriggerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dispatch":
		return TriggerDispatch, nil
	case "oneshot", "one-shot", "legacy":
		return TriggerOneShot, nil
	default:
		return TriggerDispatch, fmt.Errorf("unknown trigger mode %q", s)
	}
}

// Env is the runtime shared by the widgets of one document.
type Env struct {
	Registry *Registry
	Logger   *slog.Logger
	Metrics  *Metrics
	Trigger  TriggerMode

	// Defaults apply to every widget of the env, below the widget's own
	// defaults.
	Defaults Settings
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) EnvOption {
	return func(e *Env) {
		e.Logger = logger
	}
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *Metrics) EnvOption {
	return func(e *Env) {
		e.Metrics = m
	}
}

// WithTriggerMode sets the local trigger mode.
func WithTriggerMode(mode TriggerMode) EnvOption {
	return func(e *Env) {
		e.Trigger = mode
	}
}

// WithDefaultSettings sets settings applied to every widget unless the
// widget or its caller sets them.
func WithDefaultSettings(s Settings) EnvOption {
	return func(e *Env) {
		e.Defaults = s
	}
}

// NewEnv returns an Env with a fresh Registry.
func NewEnv(opts ...EnvOption) *Env {
	env := &Env{Registry: NewRegistry()}
	for _, opt := range opts {
		opt(env)
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	return env
}

// Settings is a widget configuration. Values are strings, bools, elements,
// selections or anything a concrete widget documents.
type Settings map[string]any

// WithDefaults returns a copy of s where keys missing from s are filled
// from defaults. Explicit settings always win.
func (s Settings) WithDefaults(defaults Settings) Settings {
	out := make(Settings, len(s)+len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String returns the string setting for key, or "".
func (s Settings) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Bool returns the boolean setting for key. Strings "true"/"false" are
// accepted so settings read from markup behave.
func (s Settings) Bool(key string) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}
