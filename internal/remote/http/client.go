// Package remotehttp implements remote.Gateway against the self service
// endpoints of the banking REST API.
package remotehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
	"github.com/openkcm/selfservice-datamanager/internal/remote"
)

// maxResponseSize caps the size of a response body read into memory.
const maxResponseSize = 16 << 20

var (
	errInvalidJSON      = errors.New("response is not valid json")
	errResponseTooLarge = fmt.Errorf("response exceeds %d bytes", maxResponseSize)
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

var _ = remote.Gateway(&Client{})

// NewClient returns a client issuing requests relative to baseURL.
// Authentication and tenant headers are expected to be added by the
// transport of httpClient, see NewTransport.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: u,
		http:    httpClient,
	}, nil
}

type request struct {
	method string
	path   []string
	query  url.Values
	body   any
}

func get(path ...string) request { return request{method: http.MethodGet, path: path} }
func post(body any, path ...string) request {
	return request{method: http.MethodPost, path: path, body: body}
}
func put(body any, path ...string) request {
	return request{method: http.MethodPut, path: path, body: body}
}
func del(path ...string) request { return request{method: http.MethodDelete, path: path} }

func (r request) with(key, value string) request {
	if r.query == nil {
		r.query = url.Values{}
	}
	r.query.Set(key, value)

	return r
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

// do executes one request. A *[]byte target receives the raw body, a
// *model.Document target the raw JSON, anything else is JSON decoded.
func (c *Client) do(ctx context.Context, op string, r request, into any) error {
	u := c.baseURL.JoinPath(r.path...)
	if r.query != nil {
		u.RawQuery = r.query.Encode()
	}

	tracer := otel.GetTracerProvider()
	ctx, span := tracer.Tracer("").Start(ctx, "remote_"+op, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("http.request.method", r.method),
		attribute.String("url.path", u.Path),
	))
	defer span.End()

	err := c.roundTrip(ctx, r.method, u, r.body, into, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slogctx.Debug(ctx, "Remote call failed", "operation", op, "path", u.Path, "error", err)

		return remoteFailure(r.method, u.Path, err)
	}

	return nil
}

func (c *Client) roundTrip(ctx context.Context, method string, u *url.URL, body, into any, span trace.Span) error {
	var reader io.Reader
	if body != nil {
		data, err := encodeBody(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if len(data) > maxResponseSize {
		return errResponseTooLarge
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, data)
	}

	return decodeBody(data, into)
}

func encodeBody(body any) ([]byte, error) {
	if doc, ok := body.(model.Document); ok {
		if len(doc) == 0 {
			return []byte("{}"), nil
		}

		return doc, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return data, nil
}

func decodeBody(data []byte, into any) error {
	switch v := into.(type) {
	case nil:
		return nil
	case *[]byte:
		*v = data
		return nil
	case *model.Document:
		if len(bytes.TrimSpace(data)) == 0 {
			*v = nil
			return nil
		}
		if !json.Valid(data) {
			return errInvalidJSON
		}
		*v = data
		return nil
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}

	return nil
}

func document(ctx context.Context, c *Client, op string, r request) (model.Document, error) {
	var doc model.Document
	if err := c.do(ctx, op, r, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (c *Client) Login(ctx context.Context, payload model.LoginPayload) (model.User, error) {
	var user model.User
	if err := c.do(ctx, "login", post(payload, "self", "authentication"), &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (c *Client) Clients(ctx context.Context) (model.Page[model.Client], error) {
	var page model.Page[model.Client]
	if err := c.do(ctx, "clients", get("self", "clients"), &page); err != nil {
		return model.Page[model.Client]{}, err
	}

	return page, nil
}

func (c *Client) Client(ctx context.Context, clientID int64) (model.Client, error) {
	var client model.Client
	if err := c.do(ctx, "client", get("self", "clients", id(clientID)), &client); err != nil {
		return model.Client{}, err
	}

	return client, nil
}

func (c *Client) ClientImage(ctx context.Context, clientID int64) ([]byte, error) {
	var image []byte
	if err := c.do(ctx, "client_image", get("self", "clients", id(clientID), "images"), &image); err != nil {
		return nil, err
	}

	return image, nil
}

func (c *Client) ClientAccounts(ctx context.Context, clientID int64) (model.Document, error) {
	return document(ctx, c, "client_accounts", get("self", "clients", id(clientID), "accounts"))
}

func (c *Client) Accounts(ctx context.Context, clientID int64, accountType string) (model.Document, error) {
	return document(ctx, c, "accounts", get("self", "clients", id(clientID), "accounts").with("fields", accountType))
}

func (c *Client) RecentTransactions(ctx context.Context, clientID int64, offset, limit int) (model.Page[model.Document], error) {
	r := get("self", "clients", id(clientID), "transactions").
		with("offset", strconv.Itoa(offset)).
		with("limit", strconv.Itoa(limit))

	var page model.Page[model.Document]
	if err := c.do(ctx, "recent_transactions", r, &page); err != nil {
		return model.Page[model.Document]{}, err
	}

	return page, nil
}

func (c *Client) ClientCharges(ctx context.Context, clientID int64) (model.Page[model.Charge], error) {
	var page model.Page[model.Charge]
	if err := c.do(ctx, "client_charges", get("self", "clients", id(clientID), "charges"), &page); err != nil {
		return model.Page[model.Charge]{}, err
	}

	return page, nil
}

func (c *Client) LoanCharges(ctx context.Context, loanID int64) ([]model.Charge, error) {
	var charges []model.Charge
	if err := c.do(ctx, "loan_charges", get("self", "loans", id(loanID), "charges"), &charges); err != nil {
		return nil, err
	}

	return charges, nil
}

func (c *Client) SavingsCharges(ctx context.Context, savingsID int64) ([]model.Charge, error) {
	var charges []model.Charge
	if err := c.do(ctx, "savings_charges", get("self", "savingsaccounts", id(savingsID), "charges"), &charges); err != nil {
		return nil, err
	}

	return charges, nil
}

func (c *Client) SavingsWithAssociations(ctx context.Context, accountID int64, associationType string) (model.Document, error) {
	return document(ctx, c, "savings_with_associations",
		get("self", "savingsaccounts", id(accountID)).with("associations", associationType))
}

func (c *Client) AccountTransferTemplate(ctx context.Context, accountID, accountType int64) (model.Document, error) {
	return document(ctx, c, "account_transfer_template",
		get("self", "accounttransfers", "template").with("fromAccountId", id(accountID)).with("fromAccountType", id(accountType)))
}

func (c *Client) MakeTransfer(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "make_transfer", post(payload, "self", "accounttransfers"))
}

func (c *Client) SavingsAccountApplicationTemplate(ctx context.Context, clientID int64) (model.Document, error) {
	return document(ctx, c, "savings_application_template",
		get("self", "savingsaccounts", "template").with("clientId", id(clientID)))
}

func (c *Client) SubmitSavingsAccountApplication(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "submit_savings_application", post(payload, "self", "savingsaccounts"))
}

func (c *Client) UpdateSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "update_savings_account", put(payload, "self", "savingsaccounts", id(accountID)))
}

func (c *Client) WithdrawSavingsAccount(ctx context.Context, accountID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "withdraw_savings_account",
		post(payload, "self", "savingsaccounts", id(accountID)).with("command", "withdrawnByApplicant"))
}

func (c *Client) LoanAccountDetails(ctx context.Context, loanID int64) (model.Document, error) {
	return document(ctx, c, "loan_account_details", get("self", "loans", id(loanID)))
}

func (c *Client) LoanWithAssociations(ctx context.Context, loanID int64, associationType string) (model.Document, error) {
	return document(ctx, c, "loan_with_associations",
		get("self", "loans", id(loanID)).with("associations", associationType))
}

func (c *Client) LoanTemplate(ctx context.Context, clientID int64) (model.Document, error) {
	return document(ctx, c, "loan_template",
		get("self", "loans", "template").with("templateType", "individual").with("clientId", id(clientID)))
}

func (c *Client) LoanTemplateByProduct(ctx context.Context, clientID, productID int64) (model.Document, error) {
	return document(ctx, c, "loan_template_by_product",
		get("self", "loans", "template").
			with("templateType", "individual").
			with("clientId", id(clientID)).
			with("productId", id(productID)))
}

func (c *Client) CreateLoanAccount(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "create_loan_account", post(payload, "self", "loans"))
}

func (c *Client) UpdateLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "update_loan_account", put(payload, "self", "loans", id(loanID)))
}

func (c *Client) WithdrawLoanAccount(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "withdraw_loan_account",
		post(payload, "self", "loans", id(loanID)).with("command", "withdrawnByApplicant"))
}

func (c *Client) Beneficiaries(ctx context.Context) (model.Document, error) {
	return document(ctx, c, "beneficiaries", get("self", "beneficiaries", "tpt"))
}

func (c *Client) BeneficiaryTemplate(ctx context.Context) (model.Document, error) {
	return document(ctx, c, "beneficiary_template", get("self", "beneficiaries", "tpt", "template"))
}

func (c *Client) CreateBeneficiary(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "create_beneficiary", post(payload, "self", "beneficiaries", "tpt"))
}

func (c *Client) UpdateBeneficiary(ctx context.Context, beneficiaryID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "update_beneficiary", put(payload, "self", "beneficiaries", "tpt", id(beneficiaryID)))
}

func (c *Client) DeleteBeneficiary(ctx context.Context, beneficiaryID int64) (model.Document, error) {
	return document(ctx, c, "delete_beneficiary", del("self", "beneficiaries", "tpt", id(beneficiaryID)))
}

func (c *Client) ThirdPartyTransferTemplate(ctx context.Context) (model.Document, error) {
	return document(ctx, c, "tpt_template", get("self", "accounttransfers", "template").with("type", "tpt"))
}

func (c *Client) MakeThirdPartyTransfer(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "make_tpt_transfer", post(payload, "self", "accounttransfers").with("type", "tpt"))
}

func (c *Client) RegisterUser(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "register_user", post(payload, "self", "registration"))
}

func (c *Client) VerifyUser(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "verify_user", post(payload, "self", "registration", "user"))
}

func (c *Client) RegisterNotification(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "register_notification", post(payload, "self", "device", "registration"))
}

func (c *Client) UpdateRegisterNotification(ctx context.Context, regID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "update_register_notification", put(payload, "self", "device", "registration", id(regID)))
}

func (c *Client) UserNotificationID(ctx context.Context, clientID int64) (model.Document, error) {
	return document(ctx, c, "user_notification_id", get("self", "device", "registration", "client", id(clientID)))
}

func (c *Client) UpdateAccountPassword(ctx context.Context, payload model.Document) (model.Document, error) {
	return document(ctx, c, "update_account_password", put(payload, "self", "user", "password"))
}

func (c *Client) GuarantorTemplate(ctx context.Context, loanID int64) (model.Document, error) {
	return document(ctx, c, "guarantor_template", get("self", "loans", id(loanID), "guarantors", "template"))
}

func (c *Client) Guarantors(ctx context.Context, loanID int64) (model.Document, error) {
	return document(ctx, c, "guarantors", get("self", "loans", id(loanID), "guarantors"))
}

func (c *Client) CreateGuarantor(ctx context.Context, loanID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "create_guarantor", post(payload, "self", "loans", id(loanID), "guarantors"))
}

func (c *Client) UpdateGuarantor(ctx context.Context, loanID, guarantorID int64, payload model.Document) (model.Document, error) {
	return document(ctx, c, "update_guarantor", put(payload, "self", "loans", id(loanID), "guarantors", id(guarantorID)))
}

func (c *Client) DeleteGuarantor(ctx context.Context, loanID, guarantorID int64) (model.Document, error) {
	return document(ctx, c, "delete_guarantor", del("self", "loans", id(loanID), "guarantors", id(guarantorID)))
}
