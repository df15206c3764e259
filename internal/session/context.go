package session

import (
	"sync/atomic"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

// Context holds the client id of the signed in user. Every session scoped
// remote call and cache access reads it. Reads and writes are atomic and the
// last writer wins.
type Context struct {
	clientID atomic.Pointer[int64]
}

func NewContext() *Context {
	return &Context{}
}

// CurrentScopeID returns the active client id or ErrNoActiveSession.
func (c *Context) CurrentScopeID() (int64, error) {
	id := c.clientID.Load()
	if id == nil {
		return 0, serviceerr.ErrNoActiveSession
	}

	return *id, nil
}

// SetScopeID establishes the session, overwriting any prior client id.
func (c *Context) SetScopeID(id int64) {
	c.clientID.Store(&id)
}

// Clear ends the session. Scoped operations fail until SetScopeID is called again.
func (c *Context) Clear() {
	c.clientID.Store(nil)
}

// Active reports whether a client id is set.
func (c *Context) Active() bool {
	return c.clientID.Load() != nil
}

// Credentials holds the authentication key the remote API expects on every
// request after login.
type Credentials struct {
	authKey atomic.Pointer[string]
}

func NewCredentials() *Credentials {
	return &Credentials{}
}

// AuthKey returns the stored key and whether one is set.
func (c *Credentials) AuthKey() (string, bool) {
	key := c.authKey.Load()
	if key == nil {
		return "", false
	}

	return *key, true
}

func (c *Credentials) SetAuthKey(key string) {
	c.authKey.Store(&key)
}

func (c *Credentials) Clear() {
	c.authKey.Store(nil)
}
