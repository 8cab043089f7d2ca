package mount

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vlist/pkg/host"
	"github.com/vango-dev/vlist/pkg/vdom"
)

// DefaultTracerName is the tracer used when WithTracerName is not given.
const DefaultTracerName = "github.com/vango-dev/vlist"

// Mutations counts the host mutations applied by one render.
type Mutations struct {
	Inserts int `json:"inserts"`
	Removes int `json:"removes"`
	Text    int `json:"text"`
	Attrs   int `json:"attrs"`
}

// Total returns the number of mutations of any kind.
func (m Mutations) Total() int {
	return m.Inserts + m.Removes + m.Text + m.Attrs
}

func (m *Mutations) record(mu host.Mutation) {
	switch mu.Kind {
	case host.MutationInsert:
		m.Inserts++
	case host.MutationRemove:
		m.Removes++
	case host.MutationText:
		m.Text++
	case host.MutationAttr:
		m.Attrs++
	}
}

// Result describes a completed render.
type Result struct {
	Generation uint64
	Mutations  Mutations
	Duration   time.Duration
}

// Option configures a Mount.
type Option func(*Mount)

// WithLogger sets the logger. The mount adds its own attributes.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mount) {
		m.logger = logger
	}
}

// WithMetrics records renders into shared collectors.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Mount) {
		m.metrics = metrics
	}
}

// WithTracerName resolves the tracer from the global provider under name.
func WithTracerName(name string) Option {
	return func(m *Mount) {
		m.tracerName = name
	}
}

// WithID overrides the generated mount ID.
func WithID(id string) Option {
	return func(m *Mount) {
		m.id = id
	}
}

// Mount binds a host container to the tree currently rendered into it.
//
// Each Render patches the new tree against the previous one, so the container
// must not be modified by anything else between renders. The mount installs
// itself as the container's observer to count mutations.
//
// A Mount is safe for concurrent use; calls are serialised.
type Mount struct {
	mu         sync.Mutex
	id         string
	container  *host.Node
	tree       vdom.Node
	generation uint64
	counts     Mutations

	logger     *slog.Logger
	metrics    *Metrics
	tracerName string
	tracer     trace.Tracer
}

// New creates a mount for container.
func New(container *host.Node, opts ...Option) *Mount {
	m := &Mount{
		container:  container,
		tracerName: DefaultTracerName,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.id == "" {
		m.id = uuid.NewString()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("component", "mount", "mount", m.id)
	m.tracer = otel.Tracer(m.tracerName)

	container.SetObserver(host.ObserverFunc(m.counts.record))
	return m
}

// ID returns the mount identifier.
func (m *Mount) ID() string {
	return m.id
}

// Container returns the host container.
func (m *Mount) Container() *host.Node {
	return m.container
}

// Generation returns the number of successful renders since the container
// was last emptied.
func (m *Mount) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// HTML serializes the container's content.
func (m *Mount) HTML() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.container.InnerHTML()
}

// Render reconciles the container with tree. A nil tree renders nothing.
//
// tree is owned by the mount after the call and must not be reused; build a
// new tree for every render. If reconciliation fails the container is
// emptied and the next render starts from scratch.
func (m *Mount) Render(ctx context.Context, tree vdom.Node) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if tree == nil {
		tree = vdom.NewList()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, span := m.tracer.Start(ctx, "vlist.mount.render",
		trace.WithAttributes(
			attribute.String("vlist.mount_id", m.id),
			attribute.Int64("vlist.generation", int64(m.generation+1)),
		),
	)
	defer span.End()

	start := time.Now()
	m.counts = Mutations{}
	err := tree.Patch(m.tree, m.container, nil)
	res := Result{
		Mutations: m.counts,
		Duration:  time.Since(start),
	}

	if err != nil {
		m.reset()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.metrics.observeRender("error", res.Duration, res.Mutations)
		m.logger.Error("render failed", "error", err, "mutations", res.Mutations.Total())
		return res, err
	}

	if m.tree == nil {
		m.metrics.mounted()
	}
	m.tree = tree
	m.generation++
	res.Generation = m.generation

	span.SetAttributes(
		attribute.Int("vlist.inserts", res.Mutations.Inserts),
		attribute.Int("vlist.removes", res.Mutations.Removes),
		attribute.Int("vlist.text_updates", res.Mutations.Text),
		attribute.Int("vlist.attr_updates", res.Mutations.Attrs),
	)
	span.SetStatus(codes.Ok, "")
	m.metrics.observeRender("ok", res.Duration, res.Mutations)
	m.logger.Debug("rendered",
		"generation", res.Generation,
		"inserts", res.Mutations.Inserts,
		"removes", res.Mutations.Removes,
		"text", res.Mutations.Text,
		"attrs", res.Mutations.Attrs,
		"duration", res.Duration,
	)
	return res, nil
}

// Unmount removes the current tree from the container. It is a no-op when
// nothing is rendered.
func (m *Mount) Unmount(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tree == nil {
		return nil
	}

	_, span := m.tracer.Start(ctx, "vlist.mount.unmount",
		trace.WithAttributes(attribute.String("vlist.mount_id", m.id)))
	defer span.End()

	err := m.tree.Remove(m.container)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logger.Error("unmount failed", "error", err)
	}
	m.reset()
	m.logger.Debug("unmounted")
	return err
}

// reset empties the container and forgets the tree.
func (m *Mount) reset() {
	for c := m.container.FirstChild(); c != nil; c = m.container.FirstChild() {
		_ = m.container.RemoveChild(c)
	}
	if m.tree != nil {
		m.metrics.unmounted()
	}
	m.tree = nil
	m.generation = 0
}
