package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func (m *Manager) GuarantorTemplate(ctx context.Context, loanID int64) (model.Document, error) {
	return passthrough(ctx, m, opGuarantorTemplate, loanID, m.gateway.GuarantorTemplate)
}

func (m *Manager) Guarantors(ctx context.Context, loanID int64) (model.Document, error) {
	return passthrough(ctx, m, opGuarantors, loanID, m.gateway.Guarantors)
}

func (m *Manager) CreateGuarantor(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opCreateGuarantor, loanID, func(ctx context.Context, loanID int64) (model.Document, error) {
		return m.gateway.CreateGuarantor(ctx, loanID, payload)
	})
}

func (m *Manager) UpdateGuarantor(ctx context.Context, loanID, guarantorID int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opUpdateGuarantor, loanID, func(ctx context.Context, loanID int64) (model.Document, error) {
		return m.gateway.UpdateGuarantor(ctx, loanID, guarantorID, payload)
	})
}

func (m *Manager) DeleteGuarantor(ctx context.Context, loanID, guarantorID int64) (model.Document, error) {
	return passthrough(ctx, m, opDeleteGuarantor, loanID, func(ctx context.Context, loanID int64) (model.Document, error) {
		return m.gateway.DeleteGuarantor(ctx, loanID, guarantorID)
	})
}
