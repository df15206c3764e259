package sessionvalkey

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/openkcm/selfservice-datamanager/internal/session"
	"github.com/openkcm/selfservice-datamanager/internal/valkeystore"
)

const (
	objectTypeSession = "session"
	currentSessionID  = "current"
)

type Repository struct {
	store *valkeystore.Store
}

var _ = session.Repository(&Repository{})

func NewRepository(valkeyClient valkey.Client, prefix string) *Repository {
	return &Repository{
		store: valkeystore.New(valkeyClient, prefix),
	}
}

func (r *Repository) LoadSession(ctx context.Context) (record session.Record, _ error) {
	if err := r.store.Get(ctx, objectTypeSession, currentSessionID, &record); err != nil {
		return session.Record{}, fmt.Errorf("getting session from store: %w", err)
	}

	return record, nil
}

func (r *Repository) StoreSession(ctx context.Context, record session.Record) error {
	if err := r.store.Set(ctx, objectTypeSession, currentSessionID, record); err != nil {
		return fmt.Errorf("setting session into storage: %w", err)
	}

	return nil
}

func (r *Repository) DeleteSession(ctx context.Context) error {
	if err := r.store.Destroy(ctx, objectTypeSession, currentSessionID); err != nil {
		return fmt.Errorf("deleting session from store: %w", err)
	}

	return nil
}
