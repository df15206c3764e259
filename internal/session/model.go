package session

import "time"

// Record is the persisted form of a signed in session. It lets the service
// restore the session identity after a restart.
type Record struct {
	ClientID   int64     // Client id scoping every remote call and cache entry
	Username   string    // Username used to sign in
	AuthKey    string    // Authentication key returned by the remote API
	SignedInAt time.Time // Time of the successful sign in
}
