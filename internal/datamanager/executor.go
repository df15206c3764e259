package datamanager

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

// passthrough runs op as a single remote call and returns its outcome
// unchanged. call receives the resolved scope id, which is explicitID for
// ScopeExplicit operations, the session client id for ScopeSession ones and
// zero otherwise.
func passthrough[T any](ctx context.Context, m *Manager, op PassthroughOp, explicitID int64, call func(context.Context, int64) (T, error)) (_ T, err error) {
	d := op.Descriptor()
	ctx, finish := m.begin(ctx, d)
	defer func() { finish(err) }()

	var zero T

	scopeID, err := m.resolveScope(op.Scoping, explicitID)
	if err != nil {
		return zero, err
	}

	if err := ctx.Err(); err != nil {
		return zero, errors.Join(serviceerr.ErrCancelled, err)
	}

	return call(ctx, scopeID)
}

// syncScoped fetches the entity for the resolved scope and fully replaces
// its cached entry with items(result). The result is only returned after the
// replace succeeded. Nothing is written when the fetch fails or ctx is
// cancelled by the time the fetch returns.
func syncScoped[T, E any](ctx context.Context, m *Manager, op SyncOp, explicitID int64, fetch func(context.Context, int64) (T, error), items func(T) []E) (_ T, err error) {
	d := op.Descriptor()
	ctx, finish := m.begin(ctx, d)
	defer func() { finish(err) }()

	var zero T

	scopeID, err := m.resolveScope(op.Scoping, explicitID)
	if err != nil {
		return zero, err
	}

	if err := ctx.Err(); err != nil {
		return zero, errors.Join(serviceerr.ErrCancelled, err)
	}

	result, err := fetch(ctx, scopeID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, errors.Join(serviceerr.ErrCancelled, ctxErr, err)
	}
	if err != nil {
		return zero, err
	}

	entries := items(result)
	if entries == nil {
		entries = []E{}
	}

	if err := m.store.Replace(ctx, op.Kind, scopeID, entries); err != nil {
		slogctx.Error(ctx, "Failed to replace cached entry", "kind", op.Kind, "scope_id", scopeID, "error", err)
		return zero, errors.Join(serviceerr.ErrLocalStoreFailure, err)
	}

	slogctx.Debug(ctx, "Replaced cached entry", "kind", op.Kind, "scope_id", scopeID, "entries", len(entries))

	return result, nil
}

// readScoped returns the cached entry of the session scope. A scope that was
// never synced reads as an empty slice.
func readScoped[E any](ctx context.Context, m *Manager, op LocalReadOp) (_ []E, err error) {
	d := op.Descriptor()
	ctx, finish := m.begin(ctx, d)
	defer func() { finish(err) }()

	scopeID, err := m.resolveScope(ScopeSession, 0)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Join(serviceerr.ErrCancelled, err)
	}

	var entries []E
	if err := m.store.Load(ctx, op.Kind, scopeID, &entries); err != nil {
		if errors.Is(err, serviceerr.ErrNotFound) {
			return []E{}, nil
		}

		return nil, errors.Join(serviceerr.ErrLocalStoreFailure, err)
	}

	if entries == nil {
		entries = []E{}
	}

	return entries, nil
}

func (m *Manager) resolveScope(scoping Scoping, explicitID int64) (int64, error) {
	switch scoping {
	case ScopeSession:
		return m.session.CurrentScopeID()
	case ScopeExplicit:
		return explicitID, nil
	default:
		return 0, nil
	}
}

// begin starts the span of an operation. The returned function ends it and
// records the metrics.
func (m *Manager) begin(ctx context.Context, d Descriptor) (context.Context, func(error)) {
	tracer := otel.GetTracerProvider()
	ctx, span := tracer.Tracer(instrumentationName).Start(ctx, "datamanager."+d.Name, trace.WithAttributes(
		attribute.String("datamanager.shape", d.Shape.String()),
		attribute.String("datamanager.scoping", d.Scoping.String()),
	))
	start := time.Now()

	return ctx, func(err error) {
		defer span.End()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slogctx.Warn(ctx, "Operation failed", "operation", d.Name, "shape", d.Shape.String(), "error", err)
		}

		m.record(ctx, d, start, err)
	}
}
