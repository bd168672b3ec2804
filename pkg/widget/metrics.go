package widget

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "lu").
	Namespace string

	// Subsystem is the metrics subsystem (default: "widget").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "lu",
		Subsystem: "widget",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts widget activity. A nil *Metrics records nothing.
type Metrics struct {
	transitions   *prometheus.CounterVec
	unknownValues *prometheus.CounterVec
	notifications *prometheus.CounterVec
	triggers      *prometheus.CounterVec
	live          *prometheus.GaugeVec
}

// NewMetrics registers the widget collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_transitions_total",
			Help:        "State changes applied to the DOM",
			ConstLabels: config.ConstLabels,
		}, []string{"widget", "state"}),

		unknownValues: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unknown_state_values_total",
			Help:        "SetState calls with a value outside the state's enumeration",
			ConstLabels: config.ConstLabels,
		}, []string{"widget", "state"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Events delivered to observer elements",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Events triggered by widgets",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		live: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live",
			Help:        "Widgets currently bound to an element",
			ConstLabels: config.ConstLabels,
		}, []string{"widget"}),
	}
}

func (m *Metrics) transition(kind, state string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(kind, state).Inc()
}

func (m *Metrics) unknownValue(kind, state string) {
	if m == nil {
		return
	}
	m.unknownValues.WithLabelValues(kind, state).Inc()
}

func (m *Metrics) notified(event string, observers int) {
	if m == nil || observers == 0 {
		return
	}
	m.notifications.WithLabelValues(event).Add(float64(observers))
}

func (m *Metrics) triggered(event string) {
	if m == nil {
		return
	}
	m.triggers.WithLabelValues(event).Inc()
}

func (m *Metrics) bound(kind string, delta float64) {
	if m == nil {
		return
	}
	m.live.WithLabelValues(kind).Add(delta)
}
