// Package cachesql keeps the local store in the PostgreSQL table cached_entities.
package cachesql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openkcm/selfservice-datamanager/internal/cache"
	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

type Repository struct {
	db *pgxpool.Pool
}

var _ = cache.Repository(&Repository{})

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Load(ctx context.Context, kind cache.Kind, scopeID int64, into any) error {
	tracer := otel.GetTracerProvider()
	ctx, span := tracer.Tracer("").Start(ctx, "load_cached_entity_sql", trace.WithAttributes(
		attribute.String("cache.kind", string(kind)),
		attribute.Int64("cache.scope_id", scopeID),
	))
	defer span.End()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var payload []byte
	err = tx.QueryRow(ctx, `SELECT payload FROM cached_entities WHERE kind = $1 AND scope_id = $2;`, string(kind), scopeID).
		Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return serviceerr.ErrNotFound
		}

		span.RecordError(err)
		return fmt.Errorf("selecting from cached_entities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("committing tx: %w", err)
	}

	if err := json.Unmarshal(payload, into); err != nil {
		span.RecordError(err)
		return fmt.Errorf("unmarshalling payload: %w", err)
	}

	return nil
}

// Replace upserts the whole payload of the entry in one statement.
func (r *Repository) Replace(ctx context.Context, kind cache.Kind, scopeID int64, value any) error {
	tracer := otel.GetTracerProvider()
	ctx, span := tracer.Tracer("").Start(ctx, "replace_cached_entity_sql", trace.WithAttributes(
		attribute.String("cache.kind", string(kind)),
		attribute.Int64("cache.scope_id", scopeID),
	))
	defer span.End()

	payload, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("marshaling payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO cached_entities (kind, scope_id, payload, synced_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (kind, scope_id)
			DO UPDATE SET (payload, synced_at) = (EXCLUDED.payload, EXCLUDED.synced_at);`,
		string(kind), scopeID, payload,
	)
	if err != nil {
		span.RecordError(err)
		if err, ok := handlePgError(err); ok {
			return err
		}

		return fmt.Errorf("upserting into cached_entities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
