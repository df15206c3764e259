package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

// ErrorModel is the body of every failed request.
type ErrorModel struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func toErrorModel(err error) (model ErrorModel, httpStatus int) {
	var serviceErr *serviceerr.Error
	if !errors.As(err, &serviceErr) {
		serviceErr = serviceerr.ErrUnknown
	}

	return ErrorModel{
		Error:            string(serviceErr.Err),
		ErrorDescription: serviceErr.Description,
	}, serviceErr.HTTPStatus()
}

func newBadRequest(description string) (model ErrorModel, httpStatus int) {
	return ErrorModel{
		Error:            string(serviceerr.CodeInvalidRequest),
		ErrorDescription: description,
	}, http.StatusBadRequest
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	body, status := toErrorModel(err)
	if status >= http.StatusInternalServerError {
		slogctx.Error(ctx, "Request failed", "error", err)
	} else {
		slogctx.Debug(ctx, "Request rejected", "error", err)
	}

	writeJSON(ctx, w, status, body)
}

func writeBadRequest(ctx context.Context, w http.ResponseWriter, description string) {
	body, status := newBadRequest(description)
	writeJSON(ctx, w, status, body)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slogctx.Error(ctx, "Failed to write response body", "error", err)
	}
}
