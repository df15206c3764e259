package datamanager

import (
	"context"
	"errors"
	"fmt"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
	"github.com/openkcm/selfservice-datamanager/internal/remote"
	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
	"github.com/openkcm/selfservice-datamanager/internal/session"
)

var (
	errMissingCredentials = errors.New("username and password are required")
	errNoClients          = errors.New("user has no clients")
)

// SignIn authenticates the user, picks the first client the user has access
// to and establishes it as the session scope. The session is persisted so it
// survives a restart. The new key and client id replace the current session
// together, only once the session is persisted. On failure the current
// session, if any, is left unchanged.
func (m *Manager) SignIn(ctx context.Context, payload model.LoginPayload) (model.User, error) {
	if payload.Username == "" || payload.Password == "" {
		return model.User{}, errors.Join(serviceerr.ErrInvalidRequest, errMissingCredentials)
	}

	user, err := m.Login(ctx, payload)
	if err != nil {
		return model.User{}, fmt.Errorf("logging in: %w", err)
	}

	clientID, err := m.firstClientID(remote.ContextWithAuthKey(ctx, user.AuthKey))
	if err != nil {
		return model.User{}, err
	}

	record := session.Record{
		ClientID:   clientID,
		Username:   payload.Username,
		AuthKey:    user.AuthKey,
		SignedInAt: m.now(),
	}
	if err := m.sessions.StoreSession(ctx, record); err != nil {
		return model.User{}, errors.Join(serviceerr.ErrLocalStoreFailure, fmt.Errorf("storing session: %w", err))
	}

	m.creds.SetAuthKey(user.AuthKey)
	m.session.SetScopeID(clientID)
	slogctx.Info(ctx, "Signed in", "username", payload.Username, "client_id", clientID)

	return user, nil
}

func (m *Manager) firstClientID(ctx context.Context) (int64, error) {
	clients, err := m.Clients(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing clients: %w", err)
	}

	if len(clients.PageItems) == 0 {
		return 0, errors.Join(serviceerr.ErrNotFound, errNoClients)
	}

	return clients.PageItems[0].ID, nil
}

// SignOut ends the session. Scoped operations fail with ErrNoActiveSession
// until the next SignIn. Cached entries are kept.
func (m *Manager) SignOut(ctx context.Context) error {
	m.session.Clear()
	m.creds.Clear()

	if err := m.sessions.DeleteSession(ctx); err != nil {
		return errors.Join(serviceerr.ErrLocalStoreFailure, fmt.Errorf("deleting session: %w", err))
	}

	slogctx.Info(ctx, "Signed out")

	return nil
}

// RefreshSession reloads the persisted session into the manager, picking up
// sign ins and sign outs made by another process sharing the store.
func (m *Manager) RefreshSession(ctx context.Context) error {
	if err := session.Refresh(ctx, m.sessions, m.session, m.creds); err != nil {
		return errors.Join(serviceerr.ErrLocalStoreFailure, err)
	}

	return nil
}
