package session

import (
	"context"
	"errors"
	"fmt"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

type Repository interface {
	LoadSession(ctx context.Context) (Record, error)
	StoreSession(ctx context.Context, record Record) error
	DeleteSession(ctx context.Context) error
}

// Restore loads the persisted session, if any, into the context and the
// credentials. A missing record leaves both untouched.
func Restore(ctx context.Context, repo Repository, sess *Context, creds *Credentials) error {
	record, err := repo.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, serviceerr.ErrNotFound) {
			slogctx.Info(ctx, "No persisted session found")
			return nil
		}

		return fmt.Errorf("loading persisted session: %w", err)
	}

	creds.SetAuthKey(record.AuthKey)
	sess.SetScopeID(record.ClientID)
	slogctx.Info(ctx, "Restored persisted session", "client_id", record.ClientID)

	return nil
}

// Refresh makes the context follow the persisted session, which another
// process may have replaced or deleted. A missing record ends the session.
func Refresh(ctx context.Context, repo Repository, sess *Context, creds *Credentials) error {
	record, err := repo.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, serviceerr.ErrNotFound) {
			sess.Clear()
			creds.Clear()
			return nil
		}

		return fmt.Errorf("loading persisted session: %w", err)
	}

	creds.SetAuthKey(record.AuthKey)
	sess.SetScopeID(record.ClientID)

	return nil
}
