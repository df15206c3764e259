package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func (m *Manager) SavingsWithAssociations(ctx context.Context, accountID int64, associationType string) (model.Document, error) {
	return passthrough(ctx, m, opSavingsWithAssociations, accountID, func(ctx context.Context, accountID int64) (model.Document, error) {
		return m.gateway.SavingsWithAssociations(ctx, accountID, associationType)
	})
}

func (m *Manager) AccountTransferTemplate(ctx context.Context, accountID, accountType int64) (model.Document, error) {
	return passthrough(ctx, m, opAccountTransferTemplate, accountID, func(ctx context.Context, accountID int64) (model.Document, error) {
		return m.gateway.AccountTransferTemplate(ctx, accountID, accountType)
	})
}

func (m *Manager) MakeTransfer(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opMakeTransfer, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.MakeTransfer(ctx, payload)
	})
}

func (m *Manager) SavingsAccountApplicationTemplate(ctx context.Context, clientID int64) (model.Document, error) {
	return passthrough(ctx, m, opSavingsAccountApplicationTemplate, clientID, m.gateway.SavingsAccountApplicationTemplate)
}

func (m *Manager) SubmitSavingsAccountApplication(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opSubmitSavingsAccountApplication, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.SubmitSavingsAccountApplication(ctx, payload)
	})
}

func (m *Manager) UpdateSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opUpdateSavingsAccount, accountID, func(ctx context.Context, accountID int64) (model.Document, error) {
		return m.gateway.UpdateSavingsAccount(ctx, accountID, payload)
	})
}

func (m *Manager) WithdrawSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opWithdrawSavingsAccount, accountID, func(ctx context.Context, accountID int64) (model.Document, error) {
		return m.gateway.WithdrawSavingsAccount(ctx, accountID, payload)
	})
}
