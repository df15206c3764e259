package sessionsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
	"github.com/openkcm/selfservice-datamanager/internal/session"
)

const currentSessionID = "current"

type Repository struct {
	db *pgxpool.Pool
}

var _ = session.Repository(&Repository{})

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) LoadSession(ctx context.Context) (record session.Record, _ error) {
	tracer := otel.GetTracerProvider()
	ctx, span := tracer.Tracer("").Start(ctx, "load_session_sql")
	defer span.End()

	err := r.db.QueryRow(ctx, `SELECT client_id, username, auth_key, signed_in_at FROM session_records WHERE id = $1;`, currentSessionID).
		Scan(&record.ClientID, &record.Username, &record.AuthKey, &record.SignedInAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Record{}, serviceerr.ErrNotFound
		}

		span.RecordError(err)
		return session.Record{}, fmt.Errorf("selecting from session_records: %w", err)
	}

	return record, nil
}

func (r *Repository) StoreSession(ctx context.Context, record session.Record) error {
	tracer := otel.GetTracerProvider()
	ctx, span := tracer.Tracer("").Start(ctx, "store_session_sql")
	defer span.End()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO session_records (id, client_id, username, auth_key, signed_in_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id)
	DO UPDATE SET (client_id, username, auth_key, signed_in_at) =
		(EXCLUDED.client_id, EXCLUDED.username, EXCLUDED.auth_key, EXCLUDED.signed_in_at);`,
		currentSessionID, record.ClientID, record.Username, record.AuthKey, record.SignedInAt,
	); err != nil {
		span.RecordError(err)
		return fmt.Errorf("inserting into session_records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("committing tx: %w", err)
	}

	return nil
}

func (r *Repository) DeleteSession(ctx context.Context) error {
	tracer := otel.GetTracerProvider()
	ctx, span := tracer.Tracer("").Start(ctx, "delete_session_sql")
	defer span.End()

	if _, err := r.db.Exec(ctx, `DELETE FROM session_records WHERE id = $1;`, currentSessionID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("deleting from session_records: %w", err)
	}

	return nil
}
