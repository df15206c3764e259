package remotemock

import (
	"context"
	"fmt"
	"sync"

	"github.com/openkcm/selfservice-datamanager/internal/model"
	"github.com/openkcm/selfservice-datamanager/internal/remote"
)

// Call is one recorded gateway invocation. Op is the gateway method name.
type Call struct {
	Op   string
	Args []any
}

type GatewayOption func(*Gateway)

// Gateway answers every call with the canned response or error registered
// for the method name and records the call.
type Gateway struct {
	mu        sync.Mutex
	responses map[string]any
	errs      map[string]error
	hook      func(ctx context.Context, op string)
	calls     []Call
}

func WithResponse(op string, v any) GatewayOption {
	return func(g *Gateway) { g.responses[op] = v }
}
func WithError(op string, err error) GatewayOption {
	return func(g *Gateway) { g.errs[op] = err }
}

// WithCallHook runs hook inside every call, before the response is produced.
func WithCallHook(hook func(ctx context.Context, op string)) GatewayOption {
	return func(g *Gateway) { g.hook = hook }
}

var _ = remote.Gateway(&Gateway{})

func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{
		responses: make(map[string]any),
		errs:      make(map[string]error),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SetResponse replaces the canned response for op and clears its error.
func (g *Gateway) SetResponse(op string, v any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[op] = v
	delete(g.errs, op)
}

func (g *Gateway) SetError(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[op] = err
}

// TCalls is a helper method for tests returning the recorded calls in order.
func (g *Gateway) TCalls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	calls := make([]Call, len(g.calls))
	copy(calls, g.calls)
	return calls
}

// TCallCount is a helper method for tests counting the recorded calls of op.
// An empty op counts every call.
func (g *Gateway) TCallCount(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if op == "" {
		return len(g.calls)
	}
	n := 0
	for _, c := range g.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func respond[T any](ctx context.Context, g *Gateway, op string, args ...any) (T, error) {
	g.mu.Lock()
	g.calls = append(g.calls, Call{Op: op, Args: args})
	hook := g.hook
	g.mu.Unlock()

	if hook != nil {
		hook(ctx, op)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var zero T
	if err := g.errs[op]; err != nil {
		return zero, err
	}

	v, ok := g.responses[op]
	if !ok {
		return zero, nil
	}

	typed, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("remotemock: response for %s is %T, want %T", op, v, zero))
	}

	return typed, nil
}

func (g *Gateway) Login(ctx context.Context, payload model.LoginPayload) (model.User, error) {
	return respond[model.User](ctx, g, "Login", payload)
}

func (g *Gateway) Clients(ctx context.Context) (model.Page[model.Client], error) {
	return respond[model.Page[model.Client]](ctx, g, "Clients")
}

func (g *Gateway) Client(ctx context.Context, clientID int64) (model.Client, error) {
	return respond[model.Client](ctx, g, "Client", clientID)
}

func (g *Gateway) ClientImage(ctx context.Context, clientID int64) ([]byte, error) {
	return respond[[]byte](ctx, g, "ClientImage", clientID)
}

func (g *Gateway) ClientAccounts(ctx context.Context, clientID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "ClientAccounts", clientID)
}

func (g *Gateway) Accounts(ctx context.Context, clientID int64, accountType string) (model.Document, error) {
	return respond[model.Document](ctx, g, "Accounts", clientID, accountType)
}

func (g *Gateway) RecentTransactions(ctx context.Context, clientID int64, offset, limit int) (model.Page[model.Document], error) {
	return respond[model.Page[model.Document]](ctx, g, "RecentTransactions", clientID, offset, limit)
}

func (g *Gateway) ClientCharges(ctx context.Context, clientID int64) (model.Page[model.Charge], error) {
	return respond[model.Page[model.Charge]](ctx, g, "ClientCharges", clientID)
}

func (g *Gateway) LoanCharges(ctx context.Context, loanID int64) ([]model.Charge, error) {
	return respond[[]model.Charge](ctx, g, "LoanCharges", loanID)
}

func (g *Gateway) SavingsCharges(ctx context.Context, savingsID int64) ([]model.Charge, error) {
	return respond[[]model.Charge](ctx, g, "SavingsCharges", savingsID)
}

func (g *Gateway) SavingsWithAssociations(ctx context.Context, accountID int64, associationType string) (model.Document, error) {
	return respond[model.Document](ctx, g, "SavingsWithAssociations", accountID, associationType)
}

func (g *Gateway) AccountTransferTemplate(ctx context.Context, accountID, accountType int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "AccountTransferTemplate", accountID, accountType)
}

func (g *Gateway) MakeTransfer(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "MakeTransfer", payload)
}

func (g *Gateway) SavingsAccountApplicationTemplate(ctx context.Context, clientID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "SavingsAccountApplicationTemplate", clientID)
}

func (g *Gateway) SubmitSavingsAccountApplication(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "SubmitSavingsAccountApplication", payload)
}

func (g *Gateway) UpdateSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "UpdateSavingsAccount", accountID, payload)
}

func (g *Gateway) WithdrawSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "WithdrawSavingsAccount", accountID, payload)
}

func (g *Gateway) LoanAccountDetails(ctx context.Context, loanID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "LoanAccountDetails", loanID)
}

func (g *Gateway) LoanWithAssociations(ctx context.Context, loanID int64, associationType string) (model.Document, error) {
	return respond[model.Document](ctx, g, "LoanWithAssociations", loanID, associationType)
}

func (g *Gateway) LoanTemplate(ctx context.Context, clientID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "LoanTemplate", clientID)
}

func (g *Gateway) LoanTemplateByProduct(ctx context.Context, clientID, productID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "LoanTemplateByProduct", clientID, productID)
}

func (g *Gateway) CreateLoanAccount(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "CreateLoanAccount", payload)
}

func (g *Gateway) UpdateLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "UpdateLoanAccount", loanID, payload)
}

func (g *Gateway) WithdrawLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "WithdrawLoanAccount", loanID, payload)
}

func (g *Gateway) Beneficiaries(ctx context.Context) (model.Document, error) {
	return respond[model.Document](ctx, g, "Beneficiaries")
}

func (g *Gateway) BeneficiaryTemplate(ctx context.Context) (model.Document, error) {
	return respond[model.Document](ctx, g, "BeneficiaryTemplate")
}

func (g *Gateway) CreateBeneficiary(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "CreateBeneficiary", payload)
}

func (g *Gateway) UpdateBeneficiary(ctx context.Context, beneficiaryID int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "UpdateBeneficiary", beneficiaryID, payload)
}

func (g *Gateway) DeleteBeneficiary(ctx context.Context, beneficiaryID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "DeleteBeneficiary", beneficiaryID)
}

func (g *Gateway) ThirdPartyTransferTemplate(ctx context.Context) (model.Document, error) {
	return respond[model.Document](ctx, g, "ThirdPartyTransferTemplate")
}

func (g *Gateway) MakeThirdPartyTransfer(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "MakeThirdPartyTransfer", payload)
}

func (g *Gateway) RegisterUser(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "RegisterUser", payload)
}

func (g *Gateway) VerifyUser(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "VerifyUser", payload)
}

func (g *Gateway) RegisterNotification(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "RegisterNotification", payload)
}

func (g *Gateway) UpdateRegisterNotification(ctx context.Context, id int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "UpdateRegisterNotification", id, payload)
}

func (g *Gateway) UserNotificationID(ctx context.Context, id int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "UserNotificationID", id)
}

func (g *Gateway) UpdateAccountPassword(ctx context.Context, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "UpdateAccountPassword", payload)
}

func (g *Gateway) GuarantorTemplate(ctx context.Context, loanID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "GuarantorTemplate", loanID)
}

func (g *Gateway) Guarantors(ctx context.Context, loanID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "Guarantors", loanID)
}

func (g *Gateway) CreateGuarantor(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "CreateGuarantor", loanID, payload)
}

func (g *Gateway) UpdateGuarantor(ctx context.Context, loanID, guarantorID int64, payload model.Document) (model.Document, error) {
	return respond[model.Document](ctx, g, "UpdateGuarantor", loanID, guarantorID, payload)
}

func (g *Gateway) DeleteGuarantor(ctx context.Context, loanID, guarantorID int64) (model.Document, error) {
	return respond[model.Document](ctx, g, "DeleteGuarantor", loanID, guarantorID)
}
