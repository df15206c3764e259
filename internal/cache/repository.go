// Package cache defines the local store the data manager mirrors remote
// state into. Entries are keyed by entity kind and scope (the client id) and
// are only ever replaced as a whole.
package cache

import (
	"context"
	"strconv"
)

// Kind names a mirrored entity.
type Kind string

const (
	KindCharges       Kind = "charges"
	KindNotifications Kind = "notifications"
)

// Repository is a scoped key value store.
//
// Load decodes the entry for kind and scopeID into `into` and returns
// serviceerr.ErrNotFound if nothing was ever stored. Replace substitutes the
// whole entry atomically: a reader sees the previous or the new value, never a
// mix of both.
type Repository interface {
	Load(ctx context.Context, kind Kind, scopeID int64, into any) error
	Replace(ctx context.Context, kind Kind, scopeID int64, value any) error
}

// Key returns the logical key of an entry, e.g. "charges:42".
func Key(kind Kind, scopeID int64) string {
	return string(kind) + ":" + FormatScope(scopeID)
}

func FormatScope(scopeID int64) string {
	return strconv.FormatInt(scopeID, 10)
}
