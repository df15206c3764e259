package remotehttp

import (
	"net/http"

	"github.com/openkcm/selfservice-datamanager/internal/remote"
)

const (
	HeaderTenantID      = "Fineract-Platform-TenantId"
	HeaderAuthorization = "Authorization"
)

// tenantAuthRoundTripper adds the tenant header to every request and the
// basic authorization header once credentials are known.
type tenantAuthRoundTripper struct {
	tenantID string
	creds    remote.CredentialSource
	next     http.RoundTripper
}

// NewTransport wraps next so that requests carry the tenant id and, when
// creds holds a key, the authorization header. A key attached to the
// request context with remote.ContextWithAuthKey takes precedence over creds.
// A nil next uses http.DefaultTransport.
func NewTransport(next http.RoundTripper, tenantID string, creds remote.CredentialSource) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &tenantAuthRoundTripper{
		tenantID: tenantID,
		creds:    creds,
		next:     next,
	}
}

func (t *tenantAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(HeaderTenantID, t.tenantID)

	if key, ok := t.authKey(req); ok {
		req.Header.Set(HeaderAuthorization, "Basic "+key)
	}

	return t.next.RoundTrip(req)
}

func (t *tenantAuthRoundTripper) authKey(req *http.Request) (string, bool) {
	if key, ok := remote.AuthKeyFromContext(req.Context()); ok {
		return key, true
	}

	if t.creds == nil {
		return "", false
	}

	return t.creds.AuthKey()
}
