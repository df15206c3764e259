package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func (m *Manager) Login(ctx context.Context, payload model.LoginPayload) (model.User, error) {
	return passthrough(ctx, m, opLogin, 0, func(ctx context.Context, _ int64) (model.User, error) {
		return m.gateway.Login(ctx, payload)
	})
}

// Clients lists the clients the signed in user has access to.
func (m *Manager) Clients(ctx context.Context) (model.Page[model.Client], error) {
	return passthrough(ctx, m, opClients, 0, func(ctx context.Context, _ int64) (model.Page[model.Client], error) {
		return m.gateway.Clients(ctx)
	})
}

func (m *Manager) CurrentClient(ctx context.Context) (model.Client, error) {
	return passthrough(ctx, m, opCurrentClient, 0, m.gateway.Client)
}

func (m *Manager) ClientImage(ctx context.Context) ([]byte, error) {
	return passthrough(ctx, m, opClientImage, 0, m.gateway.ClientImage)
}

func (m *Manager) ClientAccounts(ctx context.Context) (model.Document, error) {
	return passthrough(ctx, m, opClientAccounts, 0, m.gateway.ClientAccounts)
}

// Accounts returns the accounts of the session client restricted to
// accountType, e.g. "savingsAccounts" or "loanAccounts".
func (m *Manager) Accounts(ctx context.Context, accountType string) (model.Document, error) {
	return passthrough(ctx, m, opAccounts, 0, func(ctx context.Context, clientID int64) (model.Document, error) {
		return m.gateway.Accounts(ctx, clientID, accountType)
	})
}

func (m *Manager) RecentTransactions(ctx context.Context, offset, limit int) (model.Page[model.Document], error) {
	return passthrough(ctx, m, opRecentTransactions, 0, func(ctx context.Context, clientID int64) (model.Page[model.Document], error) {
		return m.gateway.RecentTransactions(ctx, clientID, offset, limit)
	})
}
