package mount

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors shared by mounts.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vlist").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

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

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
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
		Namespace: "vlist",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors updated by every mount that shares it.
// A nil *Metrics records nothing.
//
// Metrics collected:
//   - vlist_renders_total: Counter of renders by status (ok, error)
//   - vlist_render_duration_seconds: Histogram of render duration
//   - vlist_host_mutations_total: Counter of host mutations by kind
//   - vlist_active_mounts: Gauge of mounts currently holding a tree
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	hostMutations  *prometheus.CounterVec
	activeMounts   prometheus.Gauge
}

// NewMetrics registers the mount collectors. Registering twice with the same
// registry panics, so create one Metrics per registry and share it.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of list renders by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render and patch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		hostMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_mutations_total",
			Help:        "Total number of host tree mutations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		activeMounts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_mounts",
			Help:        "Number of mounts currently holding a rendered tree",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeRender(status string, d time.Duration, counts Mutations) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(status).Inc()
	m.renderDuration.Observe(d.Seconds())
	m.hostMutations.WithLabelValues("insert").Add(float64(counts.Inserts))
	m.hostMutations.WithLabelValues("remove").Add(float64(counts.Removes))
	m.hostMutations.WithLabelValues("text").Add(float64(counts.Text))
	m.hostMutations.WithLabelValues("attr").Add(float64(counts.Attrs))
}

func (m *Metrics) mounted() {
	if m != nil {
		m.activeMounts.Inc()
	}
}

func (m *Metrics) unmounted() {
	if m != nil {
		m.activeMounts.Dec()
	}
}
