package datamanager

import (
	"slices"

	"github.com/openkcm/selfservice-datamanager/internal/cache"
)

// Shape tells how an operation uses the remote API and the local store.
type Shape int

const (
	// ShapePassthrough issues one remote call and touches no local state.
	ShapePassthrough Shape = iota + 1
	// ShapeSync issues one remote call and replaces the cached entry with
	// its result before returning it.
	ShapeSync
	// ShapeLocalRead reads the cached entry of the session scope only.
	ShapeLocalRead
)

func (s Shape) String() string {
	switch s {
	case ShapePassthrough:
		return "passthrough"
	case ShapeSync:
		return "sync"
	case ShapeLocalRead:
		return "local_read"
	default:
		return "unknown"
	}
}

// Scoping tells where the scope id of an operation comes from.
type Scoping int

const (
	// ScopeNone operations carry no client scope.
	ScopeNone Scoping = iota + 1
	// ScopeSession operations use the client id of the active session and
	// fail with ErrNoActiveSession without one.
	ScopeSession
	// ScopeExplicit operations use the id supplied by the caller.
	ScopeExplicit
)

func (s Scoping) String() string {
	switch s {
	case ScopeNone:
		return "none"
	case ScopeSession:
		return "session"
	case ScopeExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Descriptor describes a registered operation.
type Descriptor struct {
	Name    string
	Shape   Shape
	Scoping Scoping
	Kind    cache.Kind // empty for passthrough operations
}

type PassthroughOp struct {
	Name    string
	Scoping Scoping
}

func (o PassthroughOp) Descriptor() Descriptor {
	return Descriptor{Name: o.Name, Shape: ShapePassthrough, Scoping: o.Scoping}
}

type SyncOp struct {
	Name    string
	Scoping Scoping
	Kind    cache.Kind
}

func (o SyncOp) Descriptor() Descriptor {
	return Descriptor{Name: o.Name, Shape: ShapeSync, Scoping: o.Scoping, Kind: o.Kind}
}

// LocalReadOp is always keyed by the session scope.
type LocalReadOp struct {
	Name string
	Kind cache.Kind
}

func (o LocalReadOp) Descriptor() Descriptor {
	return Descriptor{Name: o.Name, Shape: ShapeLocalRead, Scoping: ScopeSession, Kind: o.Kind}
}

var (
	opLogin              = PassthroughOp{Name: "Login", Scoping: ScopeNone}
	opClients            = PassthroughOp{Name: "Clients", Scoping: ScopeNone}
	opCurrentClient      = PassthroughOp{Name: "CurrentClient", Scoping: ScopeSession}
	opClientImage        = PassthroughOp{Name: "ClientImage", Scoping: ScopeSession}
	opClientAccounts     = PassthroughOp{Name: "ClientAccounts", Scoping: ScopeSession}
	opAccounts           = PassthroughOp{Name: "Accounts", Scoping: ScopeSession}
	opRecentTransactions = PassthroughOp{Name: "RecentTransactions", Scoping: ScopeSession}

	opClientCharges        = SyncOp{Name: "ClientCharges", Scoping: ScopeExplicit, Kind: cache.KindCharges}
	opSessionClientCharges = SyncOp{Name: "SessionClientCharges", Scoping: ScopeSession, Kind: cache.KindCharges}
	opLoanCharges          = PassthroughOp{Name: "LoanCharges", Scoping: ScopeExplicit}
	opSavingsCharges       = PassthroughOp{Name: "SavingsCharges", Scoping: ScopeExplicit}
	opLocalClientCharges   = LocalReadOp{Name: "LocalClientCharges", Kind: cache.KindCharges}

	opSavingsWithAssociations           = PassthroughOp{Name: "SavingsWithAssociations", Scoping: ScopeExplicit}
	opAccountTransferTemplate           = PassthroughOp{Name: "AccountTransferTemplate", Scoping: ScopeExplicit}
	opMakeTransfer                      = PassthroughOp{Name: "MakeTransfer", Scoping: ScopeNone}
	opSavingsAccountApplicationTemplate = PassthroughOp{Name: "SavingsAccountApplicationTemplate", Scoping: ScopeExplicit}
	opSubmitSavingsAccountApplication   = PassthroughOp{Name: "SubmitSavingsAccountApplication", Scoping: ScopeNone}
	opUpdateSavingsAccount              = PassthroughOp{Name: "UpdateSavingsAccount", Scoping: ScopeExplicit}
	opWithdrawSavingsAccount            = PassthroughOp{Name: "WithdrawSavingsAccount", Scoping: ScopeExplicit}

	opLoanAccountDetails    = PassthroughOp{Name: "LoanAccountDetails", Scoping: ScopeExplicit}
	opLoanWithAssociations  = PassthroughOp{Name: "LoanWithAssociations", Scoping: ScopeExplicit}
	opLoanTemplate          = PassthroughOp{Name: "LoanTemplate", Scoping: ScopeSession}
	opLoanTemplateByProduct = PassthroughOp{Name: "LoanTemplateByProduct", Scoping: ScopeSession}
	opCreateLoanAccount     = PassthroughOp{Name: "CreateLoanAccount", Scoping: ScopeNone}
	opUpdateLoanAccount     = PassthroughOp{Name: "UpdateLoanAccount", Scoping: ScopeExplicit}
	opWithdrawLoanAccount   = PassthroughOp{Name: "WithdrawLoanAccount", Scoping: ScopeExplicit}

	opBeneficiaries       = PassthroughOp{Name: "Beneficiaries", Scoping: ScopeNone}
	opBeneficiaryTemplate = PassthroughOp{Name: "BeneficiaryTemplate", Scoping: ScopeNone}
	opCreateBeneficiary   = PassthroughOp{Name: "CreateBeneficiary", Scoping: ScopeNone}
	opUpdateBeneficiary   = PassthroughOp{Name: "UpdateBeneficiary", Scoping: ScopeExplicit}
	opDeleteBeneficiary   = PassthroughOp{Name: "DeleteBeneficiary", Scoping: ScopeExplicit}

	opThirdPartyTransferTemplate = PassthroughOp{Name: "ThirdPartyTransferTemplate", Scoping: ScopeNone}
	opMakeThirdPartyTransfer     = PassthroughOp{Name: "MakeThirdPartyTransfer", Scoping: ScopeNone}

	opRegisterUser = PassthroughOp{Name: "RegisterUser", Scoping: ScopeNone}
	opVerifyUser   = PassthroughOp{Name: "VerifyUser", Scoping: ScopeNone}

	opNotifications              = LocalReadOp{Name: "Notifications", Kind: cache.KindNotifications}
	opUnreadNotificationsCount   = LocalReadOp{Name: "UnreadNotificationsCount", Kind: cache.KindNotifications}
	opRegisterNotification       = PassthroughOp{Name: "RegisterNotification", Scoping: ScopeNone}
	opUpdateRegisterNotification = PassthroughOp{Name: "UpdateRegisterNotification", Scoping: ScopeExplicit}
	opUserNotificationID         = PassthroughOp{Name: "UserNotificationID", Scoping: ScopeExplicit}

	opUpdateAccountPassword = PassthroughOp{Name: "UpdateAccountPassword", Scoping: ScopeNone}

	opGuarantorTemplate = PassthroughOp{Name: "GuarantorTemplate", Scoping: ScopeExplicit}
	opGuarantors        = PassthroughOp{Name: "Guarantors", Scoping: ScopeExplicit}
	opCreateGuarantor   = PassthroughOp{Name: "CreateGuarantor", Scoping: ScopeExplicit}
	opUpdateGuarantor   = PassthroughOp{Name: "UpdateGuarantor", Scoping: ScopeExplicit}
	opDeleteGuarantor   = PassthroughOp{Name: "DeleteGuarantor", Scoping: ScopeExplicit}
)

var catalog = []Descriptor{
	opLogin.Descriptor(),
	opClients.Descriptor(),
	opCurrentClient.Descriptor(),
	opClientImage.Descriptor(),
	opClientAccounts.Descriptor(),
	opAccounts.Descriptor(),
	opRecentTransactions.Descriptor(),

	opClientCharges.Descriptor(),
	opSessionClientCharges.Descriptor(),
	opLoanCharges.Descriptor(),
	opSavingsCharges.Descriptor(),
	opLocalClientCharges.Descriptor(),

	opSavingsWithAssociations.Descriptor(),
	opAccountTransferTemplate.Descriptor(),
	opMakeTransfer.Descriptor(),
	opSavingsAccountApplicationTemplate.Descriptor(),
	opSubmitSavingsAccountApplication.Descriptor(),
	opUpdateSavingsAccount.Descriptor(),
	opWithdrawSavingsAccount.Descriptor(),

	opLoanAccountDetails.Descriptor(),
	opLoanWithAssociations.Descriptor(),
	opLoanTemplate.Descriptor(),
	opLoanTemplateByProduct.Descriptor(),
	opCreateLoanAccount.Descriptor(),
	opUpdateLoanAccount.Descriptor(),
	opWithdrawLoanAccount.Descriptor(),

	opBeneficiaries.Descriptor(),
	opBeneficiaryTemplate.Descriptor(),
	opCreateBeneficiary.Descriptor(),
	opUpdateBeneficiary.Descriptor(),
	opDeleteBeneficiary.Descriptor(),

	opThirdPartyTransferTemplate.Descriptor(),
	opMakeThirdPartyTransfer.Descriptor(),

	opRegisterUser.Descriptor(),
	opVerifyUser.Descriptor(),

	opNotifications.Descriptor(),
	opUnreadNotificationsCount.Descriptor(),
	opRegisterNotification.Descriptor(),
	opUpdateRegisterNotification.Descriptor(),
	opUserNotificationID.Descriptor(),

	opUpdateAccountPassword.Descriptor(),

	opGuarantorTemplate.Descriptor(),
	opGuarantors.Descriptor(),
	opCreateGuarantor.Descriptor(),
	opUpdateGuarantor.Descriptor(),
	opDeleteGuarantor.Descriptor(),
}

// Catalog returns the descriptors of every operation the manager exposes.
func Catalog() []Descriptor {
	return slices.Clone(catalog)
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	i := slices.IndexFunc(catalog, func(d Descriptor) bool { return d.Name == name })
	if i < 0 {
		return Descriptor{}, false
	}

	return catalog[i], true
}
