// Package remote defines the contract of the remote banking API the data
// manager talks to. Every method performs exactly one network call.
package remote

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

// Gateway is the remote banking API. Implementations must classify every
// failure as serviceerr.ErrRemoteFailure.
type Gateway interface {
	Login(ctx context.Context, payload model.LoginPayload) (model.User, error)

	Clients(ctx context.Context) (model.Page[model.Client], error)
	Client(ctx context.Context, clientID int64) (model.Client, error)
	ClientImage(ctx context.Context, clientID int64) ([]byte, error)
	ClientAccounts(ctx context.Context, clientID int64) (model.Document, error)
	Accounts(ctx context.Context, clientID int64, accountType string) (model.Document, error)
	RecentTransactions(ctx context.Context, clientID int64, offset, limit int) (model.Page[model.Document], error)

	ClientCharges(ctx context.Context, clientID int64) (model.Page[model.Charge], error)
	LoanCharges(ctx context.Context, loanID int64) ([]model.Charge, error)
	SavingsCharges(ctx context.Context, savingsID int64) ([]model.Charge, error)

	SavingsWithAssociations(ctx context.Context, accountID int64, associationType string) (model.Document, error)
	AccountTransferTemplate(ctx context.Context, accountID, accountType int64) (model.Document, error)
	MakeTransfer(ctx context.Context, payload model.Document) (model.Document, error)
	SavingsAccountApplicationTemplate(ctx context.Context, clientID int64) (model.Document, error)
	SubmitSavingsAccountApplication(ctx context.Context, payload model.Document) (model.Document, error)
	UpdateSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error)
	WithdrawSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error)

	LoanAccountDetails(ctx context.Context, loanID int64) (model.Document, error)
	LoanWithAssociations(ctx context.Context, loanID int64, associationType string) (model.Document, error)
	LoanTemplate(ctx context.Context, clientID int64) (model.Document, error)
	LoanTemplateByProduct(ctx context.Context, clientID, productID int64) (model.Document, error)
	CreateLoanAccount(ctx context.Context, payload model.Document) (model.Document, error)
	UpdateLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error)
	WithdrawLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error)

	Beneficiaries(ctx context.Context) (model.Document, error)
	BeneficiaryTemplate(ctx context.Context) (model.Document, error)
	CreateBeneficiary(ctx context.Context, payload model.Document) (model.Document, error)
	UpdateBeneficiary(ctx context.Context, beneficiaryID int64, payload model.Document) (model.Document, error)
	DeleteBeneficiary(ctx context.Context, beneficiaryID int64) (model.Document, error)

	ThirdPartyTransferTemplate(ctx context.Context) (model.Document, error)
	MakeThirdPartyTransfer(ctx context.Context, payload model.Document) (model.Document, error)

	RegisterUser(ctx context.Context, payload model.Document) (model.Document, error)
	VerifyUser(ctx context.Context, payload model.Document) (model.Document, error)

	RegisterNotification(ctx context.Context, payload model.Document) (model.Document, error)
	UpdateRegisterNotification(ctx context.Context, id int64, payload model.Document) (model.Document, error)
	UserNotificationID(ctx context.Context, id int64) (model.Document, error)

	UpdateAccountPassword(ctx context.Context, payload model.Document) (model.Document, error)

	GuarantorTemplate(ctx context.Context, loanID int64) (model.Document, error)
	Guarantors(ctx context.Context, loanID int64) (model.Document, error)
	CreateGuarantor(ctx context.Context, loanID int64, payload model.Document) (model.Document, error)
	UpdateGuarantor(ctx context.Context, loanID, guarantorID int64, payload model.Document) (model.Document, error)
	DeleteGuarantor(ctx context.Context, loanID, guarantorID int64) (model.Document, error)
}

// CredentialSource supplies the authentication key attached to requests
// made after sign in.
type CredentialSource interface {
	AuthKey() (string, bool)
}

type authKeyCtxKey struct{}

// ContextWithAuthKey returns a copy of ctx whose requests are authorized with
// key instead of the key held by the CredentialSource.
func ContextWithAuthKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, authKeyCtxKey{}, key)
}

// AuthKeyFromContext returns the key set by ContextWithAuthKey.
func AuthKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(authKeyCtxKey{}).(string)
	return key, ok
}
