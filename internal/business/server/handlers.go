package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/openkcm/selfservice-datamanager/internal/datamanager"
	"github.com/openkcm/selfservice-datamanager/internal/model"
)

const maxBodyBytes = 1 << 20

// dataHandler exposes the data manager over HTTP.
type dataHandler struct {
	manager *datamanager.Manager
}

func (h *dataHandler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload model.LoginPayload
	if err := decodeBody(r, &payload); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	user, err := h.manager.SignIn(ctx, payload)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, user)
}

func (h *dataHandler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.SignOut(r.Context()); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *dataHandler) currentClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.manager.CurrentClient(r.Context())
	respond(w, r, client, err)
}

func (h *dataHandler) clientImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	image, err := h.manager.ClientImage(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(image))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image)
}

func (h *dataHandler) clientAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.manager.ClientAccounts(r.Context())
	respond(w, r, accounts, err)
}

func (h *dataHandler) recentTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset, limit := 0, 0

	err := runtime.BindQueryParameter("form", true, false, "offset", r.URL.Query(), &offset)
	if err != nil {
		writeBadRequest(ctx, w, "invalid offset")
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit)
	if err != nil {
		writeBadRequest(ctx, w, "invalid limit")
		return
	}

	if offset < 0 || limit < 0 {
		writeBadRequest(ctx, w, "offset and limit must not be negative")
		return
	}

	page, err := h.manager.RecentTransactions(ctx, offset, limit)
	respond(w, r, page, err)
}

func (h *dataHandler) clientCharges(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(w, r, "clientId")
	if !ok {
		return
	}

	page, err := h.manager.ClientCharges(r.Context(), clientID)
	respond(w, r, page, err)
}

func (h *dataHandler) localClientCharges(w http.ResponseWriter, r *http.Request) {
	page, err := h.manager.LocalClientCharges(r.Context())
	respond(w, r, page, err)
}

func (h *dataHandler) loanCharges(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "loanId")
	if !ok {
		return
	}

	charges, err := h.manager.LoanCharges(r.Context(), loanID)
	respond(w, r, charges, err)
}

func (h *dataHandler) savingsCharges(w http.ResponseWriter, r *http.Request) {
	savingsID, ok := pathID(w, r, "savingsId")
	if !ok {
		return
	}

	charges, err := h.manager.SavingsCharges(r.Context(), savingsID)
	respond(w, r, charges, err)
}

func (h *dataHandler) notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.manager.Notifications(r.Context())
	respond(w, r, notifications, err)
}

func (h *dataHandler) unreadNotificationsCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.manager.UnreadNotificationsCount(r.Context())
	respond(w, r, map[string]int{"count": count}, err)
}

func (h *dataHandler) beneficiaries(w http.ResponseWriter, r *http.Request) {
	beneficiaries, err := h.manager.Beneficiaries(r.Context())
	respond(w, r, beneficiaries, err)
}

func (h *dataHandler) makeTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload model.Document
	if err := decodeBody(r, &payload); err != nil {
		writeBadRequest(ctx, w, err.Error())
		return
	}

	result, err := h.manager.MakeTransfer(ctx, payload)
	respond(w, r, result, err)
}

func respond[T any](w http.ResponseWriter, r *http.Request, body T, err error) {
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, body)
}

// pathID binds the named path segment as an int64 id. On failure a bad
// request is written and false returned.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	var id int64

	err := runtime.BindStyledParameterWithOptions("simple", name, r.PathValue(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		writeBadRequest(r.Context(), w, "invalid "+name)
		return 0, false
	}

	return id, true
}

var errEmptyBody = errors.New("request body is empty")

func decodeBody(r *http.Request, into any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}

	if len(body) == 0 {
		return errEmptyBody
	}

	if err := json.Unmarshal(body, into); err != nil {
		return errors.New("request body is not valid JSON")
	}

	return nil
}
