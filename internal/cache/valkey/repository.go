package cachevalkey

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/openkcm/selfservice-datamanager/internal/cache"
	"github.com/openkcm/selfservice-datamanager/internal/valkeystore"
)

type Repository struct {
	store *valkeystore.Store
}

var _ = cache.Repository(&Repository{})

func NewRepository(valkeyClient valkey.Client, prefix string) *Repository {
	return &Repository{
		store: valkeystore.New(valkeyClient, prefix),
	}
}

func (r *Repository) Load(ctx context.Context, kind cache.Kind, scopeID int64, into any) error {
	if err := r.store.Get(ctx, string(kind), cache.FormatScope(scopeID), into); err != nil {
		return fmt.Errorf("getting %s from store: %w", kind, err)
	}

	return nil
}

func (r *Repository) Replace(ctx context.Context, kind cache.Kind, scopeID int64, value any) error {
	if err := r.store.Set(ctx, string(kind), cache.FormatScope(scopeID), value); err != nil {
		return fmt.Errorf("setting %s into storage: %w", kind, err)
	}

	return nil
}
