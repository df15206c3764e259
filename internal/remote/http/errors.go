package remotehttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

// StatusError is returned for any non 2xx response of the remote API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// apiError is the error body of the remote API.
type apiError struct {
	DeveloperMessage   string `json:"developerMessage"`
	DefaultUserMessage string `json:"defaultUserMessage"`
}

func newStatusError(statusCode int, body []byte) *StatusError {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.DefaultUserMessage != "" {
			return &StatusError{StatusCode: statusCode, Message: apiErr.DefaultUserMessage}
		}
		if apiErr.DeveloperMessage != "" {
			return &StatusError{StatusCode: statusCode, Message: apiErr.DeveloperMessage}
		}
	}

	return &StatusError{StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
}

func remoteFailure(method, path string, err error) error {
	return errors.Join(serviceerr.ErrRemoteFailure, fmt.Errorf("%s %s: %w", method, path, err))
}
