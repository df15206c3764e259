package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func pageItems[T any](p model.Page[T]) []T { return p.PageItems }

// ClientCharges fetches the charges of clientID and mirrors them into the
// local store under that client id, whichever client the session belongs to.
func (m *Manager) ClientCharges(ctx context.Context, clientID int64) (model.Page[model.Charge], error) {
	return syncScoped(ctx, m, opClientCharges, clientID, m.gateway.ClientCharges, pageItems[model.Charge])
}

// SyncSessionCharges is ClientCharges for the client of the active session.
func (m *Manager) SyncSessionCharges(ctx context.Context) (model.Page[model.Charge], error) {
	return syncScoped(ctx, m, opSessionClientCharges, 0, m.gateway.ClientCharges, pageItems[model.Charge])
}

func (m *Manager) LoanCharges(ctx context.Context, loanID int64) ([]model.Charge, error) {
	return passthrough(ctx, m, opLoanCharges, loanID, m.gateway.LoanCharges)
}

func (m *Manager) SavingsCharges(ctx context.Context, savingsID int64) ([]model.Charge, error) {
	return passthrough(ctx, m, opSavingsCharges, savingsID, m.gateway.SavingsCharges)
}

// LocalClientCharges returns the charges last synced for the session client.
func (m *Manager) LocalClientCharges(ctx context.Context) (model.Page[model.Charge], error) {
	charges, err := readScoped[model.Charge](ctx, m, opLocalClientCharges)
	if err != nil {
		return model.Page[model.Charge]{}, err
	}

	return model.NewPage(charges), nil
}
