package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func (m *Manager) LoanAccountDetails(ctx context.Context, loanID int64) (model.Document, error) {
	return passthrough(ctx, m, opLoanAccountDetails, loanID, m.gateway.LoanAccountDetails)
}

func (m *Manager) LoanWithAssociations(ctx context.Context, loanID int64, associationType string) (model.Document, error) {
	return passthrough(ctx, m, opLoanWithAssociations, loanID, func(ctx context.Context, loanID int64) (model.Document, error) {
		return m.gateway.LoanWithAssociations(ctx, loanID, associationType)
	})
}

// LoanTemplate returns the loan application template for the session client.
func (m *Manager) LoanTemplate(ctx context.Context) (model.Document, error) {
	return passthrough(ctx, m, opLoanTemplate, 0, m.gateway.LoanTemplate)
}

func (m *Manager) LoanTemplateByProduct(ctx context.Context, productID int64) (model.Document, error) {
	return passthrough(ctx, m, opLoanTemplateByProduct, 0, func(ctx context.Context, clientID int64) (model.Document, error) {
		return m.gateway.LoanTemplateByProduct(ctx, clientID, productID)
	})
}

func (m *Manager) CreateLoanAccount(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opCreateLoanAccount, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.CreateLoanAccount(ctx, payload)
	})
}

func (m *Manager) UpdateLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opUpdateLoanAccount, loanID, func(ctx context.Context, loanID int64) (model.Document, error) {
		return m.gateway.UpdateLoanAccount(ctx, loanID, payload)
	})
}

func (m *Manager) WithdrawLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opWithdrawLoanAccount, loanID, func(ctx context.Context, loanID int64) (model.Document, error) {
		return m.gateway.WithdrawLoanAccount(ctx, loanID, payload)
	})
}
