package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func (m *Manager) RegisterUser(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opRegisterUser, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.RegisterUser(ctx, payload)
	})
}

func (m *Manager) VerifyUser(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opVerifyUser, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.VerifyUser(ctx, payload)
	})
}

func (m *Manager) UpdateAccountPassword(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opUpdateAccountPassword, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.UpdateAccountPassword(ctx, payload)
	})
}
