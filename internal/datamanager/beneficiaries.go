package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

func (m *Manager) Beneficiaries(ctx context.Context) (model.Document, error) {
	return passthrough(ctx, m, opBeneficiaries, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.Beneficiaries(ctx)
	})
}

func (m *Manager) BeneficiaryTemplate(ctx context.Context) (model.Document, error) {
	return passthrough(ctx, m, opBeneficiaryTemplate, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.BeneficiaryTemplate(ctx)
	})
}

func (m *Manager) CreateBeneficiary(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opCreateBeneficiary, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.CreateBeneficiary(ctx, payload)
	})
}

func (m *Manager) UpdateBeneficiary(ctx context.Context, beneficiaryID int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opUpdateBeneficiary, beneficiaryID, func(ctx context.Context, beneficiaryID int64) (model.Document, error) {
		return m.gateway.UpdateBeneficiary(ctx, beneficiaryID, payload)
	})
}

func (m *Manager) DeleteBeneficiary(ctx context.Context, beneficiaryID int64) (model.Document, error) {
	return passthrough(ctx, m, opDeleteBeneficiary, beneficiaryID, m.gateway.DeleteBeneficiary)
}

func (m *Manager) ThirdPartyTransferTemplate(ctx context.Context) (model.Document, error) {
	return passthrough(ctx, m, opThirdPartyTransferTemplate, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.ThirdPartyTransferTemplate(ctx)
	})
}

func (m *Manager) MakeThirdPartyTransfer(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opMakeThirdPartyTransfer, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.MakeThirdPartyTransfer(ctx, payload)
	})
}
