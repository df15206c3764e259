// Package datamanager is the single entry point to the banking data. Every
// operation is either a remote passthrough, a remote fetch mirrored into
// the local store, or a read of the local store, bound to the client id of
// the active session where required.
package datamanager

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/openkcm/selfservice-datamanager/internal/cache"
	"github.com/openkcm/selfservice-datamanager/internal/remote"
	"github.com/openkcm/selfservice-datamanager/internal/session"
)

const instrumentationName = "github.com/openkcm/selfservice-datamanager/internal/datamanager"

type Manager struct {
	gateway  remote.Gateway
	store    cache.Repository
	sessions session.Repository

	session *session.Context
	creds   *session.Credentials

	meter      metric.Meter
	operations metric.Int64Counter
	duration   metric.Float64Histogram

	now func() time.Time
}

type Option func(*Manager)

// WithMeter records operation metrics on meter instead of the global one.
func WithMeter(meter metric.Meter) Option {
	return func(m *Manager) { m.meter = meter }
}

// WithClock replaces time.Now, used to stamp persisted sessions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(
	gateway remote.Gateway,
	store cache.Repository,
	sessions session.Repository,
	sess *session.Context,
	creds *session.Credentials,
	opts ...Option,
) (*Manager, error) {
	m := &Manager{
		gateway:  gateway,
		store:    store,
		sessions: sessions,
		session:  sess,
		creds:    creds,
		now:      time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if err := m.initMeters(); err != nil {
		return nil, err
	}

	return m, nil
}

// Session returns the session context the manager scopes operations with.
func (m *Manager) Session() *session.Context {
	return m.session
}

func (m *Manager) initMeters() error {
	meter := m.meter
	if meter == nil {
		meter = otel.Meter(instrumentationName, metric.WithInstrumentationVersion(otel.Version()))
	}

	var err error

	m.operations, err = meter.Int64Counter(
		"datamanager.operation_count",
		metric.WithDescription("Data manager operation count"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating operation_count meter: %w", err)
	}

	m.duration, err = meter.Float64Histogram(
		"datamanager.operation_duration",
		metric.WithDescription("Data manager operation duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("creating operation_duration meter: %w", err)
	}

	return nil
}

func (m *Manager) record(ctx context.Context, d Descriptor, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", d.Name),
		attribute.String("shape", d.Shape.String()),
		attribute.String("outcome", outcome),
	)

	m.operations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
}
