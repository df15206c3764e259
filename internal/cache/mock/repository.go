package cachemock

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/openkcm/selfservice-datamanager/internal/cache"
	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

type RepositoryOption func(*Repository)

type Repository struct {
	mu      sync.Mutex
	entries map[string][]byte
	writes  int

	loadErr, replaceErr error
}

// WithEntry seeds the repository. It panics if value cannot be encoded.
func WithEntry(kind cache.Kind, scopeID int64, value any) RepositoryOption {
	return func(r *Repository) { r.entries[cache.Key(kind, scopeID)] = mustEncode(value) }
}

func WithLoadError(err error) RepositoryOption {
	return func(r *Repository) { r.loadErr = err }
}

func WithReplaceError(err error) RepositoryOption {
	return func(r *Repository) { r.replaceErr = err }
}

var _ = cache.Repository(&Repository{})

func NewInMemRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		entries: make(map[string][]byte),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// TRaw is a helper method for tests to read the encoded entry for a key such as "charges:42".
func (r *Repository) TRaw(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.entries[key]
	return string(b), ok
}

// TWrites is a helper method for tests returning the number of successful replaces.
func (r *Repository) TWrites() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *Repository) Load(_ context.Context, kind cache.Kind, scopeID int64, into any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return r.loadErr
	}
	b, ok := r.entries[cache.Key(kind, scopeID)]
	if !ok {
		return serviceerr.ErrNotFound
	}
	return json.Unmarshal(b, into)
}

func (r *Repository) Replace(_ context.Context, kind cache.Kind, scopeID int64, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.entries[cache.Key(kind, scopeID)] = b
	r.writes++
	return nil
}

func mustEncode(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
