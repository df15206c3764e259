package sessionmock

import (
	"context"
	"sync"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
	"github.com/openkcm/selfservice-datamanager/internal/session"
)

type RepositoryOption func(*Repository)

type Repository struct {
	mu     sync.Mutex
	record *session.Record

	loadErr, storeErr, deleteErr error
}

func WithRecord(record session.Record) RepositoryOption {
	return func(r *Repository) { r.record = &record }
}
func WithLoadError(err error) RepositoryOption {
	return func(r *Repository) { r.loadErr = err }
}
func WithStoreError(err error) RepositoryOption {
	return func(r *Repository) { r.storeErr = err }
}
func WithDeleteError(err error) RepositoryOption {
	return func(r *Repository) { r.deleteErr = err }
}

var _ = session.Repository(&Repository{})

func NewInMemRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// TRecord is a helper method for tests to inspect the stored record.
func (r *Repository) TRecord() (session.Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.record == nil {
		return session.Record{}, false
	}
	return *r.record, true
}

func (r *Repository) LoadSession(_ context.Context) (session.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return session.Record{}, r.loadErr
	}
	if r.record == nil {
		return session.Record{}, serviceerr.ErrNotFound
	}
	return *r.record, nil
}

func (r *Repository) StoreSession(_ context.Context, record session.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.storeErr != nil {
		return r.storeErr
	}
	r.record = &record
	return nil
}

func (r *Repository) DeleteSession(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.record = nil
	return nil
}
