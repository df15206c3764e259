// Package model holds the banking entities the data manager needs to look
// into. Everything else travels as an opaque Document.
package model

import "encoding/json"

// Document is a JSON payload passed to or from the remote banking API
// without interpretation.
type Document = json.RawMessage

// Page is the paged list envelope used by the remote banking API.
type Page[T any] struct {
	TotalFilteredRecords int `json:"totalFilteredRecords"`
	PageItems            []T `json:"pageItems"`
}

// NewPage wraps items into a page covering all of them.
func NewPage[T any](items []T) Page[T] {
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		TotalFilteredRecords: len(items),
		PageItems:            items,
	}
}

type Currency struct {
	Code          string `json:"code"`
	Name          string `json:"name,omitempty"`
	DecimalPlaces int    `json:"decimalPlaces,omitempty"`
	DisplaySymbol string `json:"displaySymbol,omitempty"`
}

// Charge is a fee applied to a client, loan or savings account.
type Charge struct {
	ID                int64    `json:"id"`
	ClientID          int64    `json:"clientId,omitempty"`
	ChargeID          int64    `json:"chargeId,omitempty"`
	Name              string   `json:"name,omitempty"`
	DueDate           []int    `json:"dueDate,omitempty"`
	Currency          Currency `json:"currency"`
	Amount            float64  `json:"amount"`
	AmountPaid        float64  `json:"amountPaid,omitempty"`
	AmountWaived      float64  `json:"amountWaived,omitempty"`
	AmountWrittenOff  float64  `json:"amountWrittenOff,omitempty"`
	AmountOutstanding float64  `json:"amountOutstanding,omitempty"`
	Penalty           bool     `json:"penalty,omitempty"`
	Active            bool     `json:"isActive,omitempty"`
	Paid              bool     `json:"paid,omitempty"`
	Waived            bool     `json:"waived,omitempty"`
}

// Notification is a message received for the signed in client.
type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"msg"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}

type Client struct {
	ID          int64  `json:"id"`
	AccountNo   string `json:"accountNo,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	OfficeName  string `json:"officeName,omitempty"`
}

// User is the result of a successful authentication.
type User struct {
	UserID        int64    `json:"userId"`
	Username      string   `json:"username"`
	AuthKey       string   `json:"base64EncodedAuthenticationKey"`
	Authenticated bool     `json:"authenticated"`
	OfficeName    string   `json:"officeName,omitempty"`
	Permissions   []string `json:"permissions,omitempty"`
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
