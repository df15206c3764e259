// Package cachemem keeps the local store inside the process. Entries live
// until they are replaced or the process exits.
package cachemem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/openkcm/selfservice-datamanager/internal/cache"
	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

var errUnexpectedEntry = errors.New("unexpected cache entry type")

type Repository struct {
	entries *gocache.Cache
}

var _ = cache.Repository(&Repository{})

func NewRepository() *Repository {
	return &Repository{
		entries: gocache.New(gocache.NoExpiration, 0),
	}
}

// Load decodes a snapshot of the entry, so callers never share memory with
// the cached value.
func (r *Repository) Load(ctx context.Context, kind cache.Kind, scopeID int64, into any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v, ok := r.entries.Get(cache.Key(kind, scopeID))
	if !ok {
		return serviceerr.ErrNotFound
	}

	data, ok := v.([]byte)
	if !ok {
		return fmt.Errorf("%w: %T", errUnexpectedEntry, v)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}

	return nil
}

func (r *Repository) Replace(ctx context.Context, kind cache.Kind, scopeID int64, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling json: %w", err)
	}

	r.entries.Set(cache.Key(kind, scopeID), data, gocache.NoExpiration)

	return nil
}

// ItemCount returns the number of stored entries.
func (r *Repository) ItemCount() int {
	return r.entries.ItemCount()
}
