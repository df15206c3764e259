package config

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrUnknownCacheBackend  = errors.New("unknown cache backend")
	ErrUnknownClientAuth    = errors.New("unknown client auth type")
	ErrInvalidBaseURL       = errors.New("remote base url must be absolute")
	ErrInvalidInterval      = errors.New("charge sync interval must be positive")
	ErrUnsharedCacheBackend = errors.New("charge sync needs a cache backend shared with the api server")
)

// Validate reports every setting that cannot work, joined into one error.
// Sections left empty are not checked, defaults fill them in.
func (c *Config) Validate() error {
	var errs []error

	switch c.Cache.Backend {
	case "", CacheBackendValKey, CacheBackendPostgres, CacheBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownCacheBackend, c.Cache.Backend))
	}

	switch c.Remote.ClientAuth.Type {
	case "", ClientAuthInsecure, ClientAuthMTLS:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownClientAuth, c.Remote.ClientAuth.Type))
	}

	if c.Remote.BaseURL != "" {
		u, err := url.Parse(c.Remote.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.Remote.BaseURL))
		}
	}

	if c.ChargeSync.Interval < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidInterval, c.ChargeSync.Interval))
	}

	return errors.Join(errs...)
}
