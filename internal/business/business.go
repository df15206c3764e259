package business

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/business/server"
	"github.com/openkcm/selfservice-datamanager/internal/cache"
	cachemem "github.com/openkcm/selfservice-datamanager/internal/cache/mem"
	cachesql "github.com/openkcm/selfservice-datamanager/internal/cache/sql"
	cachevalkey "github.com/openkcm/selfservice-datamanager/internal/cache/valkey"
	"github.com/openkcm/selfservice-datamanager/internal/config"
	"github.com/openkcm/selfservice-datamanager/internal/datamanager"
	remotehttp "github.com/openkcm/selfservice-datamanager/internal/remote/http"
	"github.com/openkcm/selfservice-datamanager/internal/session"
	sessionmock "github.com/openkcm/selfservice-datamanager/internal/session/mock"
	sessionsql "github.com/openkcm/selfservice-datamanager/internal/session/sql"
	sessionvalkey "github.com/openkcm/selfservice-datamanager/internal/session/valkey"
)

// Main starts both API servers
func Main(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// errChan is used to capture the first error and shutdown the servers.
	errChan := make(chan error, 2)

	// wg is used to wait for all servers to shutdown.
	var wg sync.WaitGroup

	// start public HTTP data API server
	wg.Go(func() {
		errChan <- publicMain(ctx, cfg)
	})

	// start internal gRPC health server
	wg.Go(func() {
		errChan <- server.StartGRPCServer(ctx, cfg)
	})

	// wait for any error to initiate the shutdown
	if err := <-errChan; err != nil {
		slogctx.Error(ctx, "Shutting down servers", "error", err)
	}
	cancel()

	// wait for all servers to shutdown
	wg.Wait()

	return nil
}

// publicMain starts the HTTP data API server.
func publicMain(ctx context.Context, cfg *config.Config) error {
	manager, closeFn, err := initDataManager(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialising the data manager: %w", err)
	}

	defer closeFn()

	return server.StartHTTPServer(ctx, cfg, manager)
}

// initDataManager builds the data manager with the configured backends and
// restores the persisted session. closeFn releases the backend connections.
func initDataManager(ctx context.Context, cfg *config.Config) (_ *datamanager.Manager, closeFn func(), _ error) {
	store, sessions, closeFn, err := storesFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	manager, err := newManager(ctx, cfg, store, sessions)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return manager, closeFn, nil
}

func newManager(ctx context.Context, cfg *config.Config, store cache.Repository, sessions session.Repository) (*datamanager.Manager, error) {
	sess := session.NewContext()
	creds := session.NewCredentials()

	httpClient, err := loadHTTPClient(cfg, creds)
	if err != nil {
		return nil, fmt.Errorf("loading http client: %w", err)
	}

	gateway, err := remotehttp.NewClient(cfg.Remote.BaseURL, httpClient)
	if err != nil {
		return nil, fmt.Errorf("creating remote client: %w", err)
	}

	if err := session.Restore(ctx, sessions, sess, creds); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	manager, err := datamanager.NewManager(gateway, store, sessions, sess, creds)
	if err != nil {
		return nil, fmt.Errorf("creating data manager: %w", err)
	}

	return manager, nil
}

// storesFromConfig selects the local store and the session store. Both live
// on the same backend.
func storesFromConfig(ctx context.Context, cfg *config.Config) (cache.Repository, session.Repository, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendValKey, "":
		client, err := valkeyClientFromConfig(cfg)
		if err != nil {
			return nil, nil, nil, err
		}

		return cachevalkey.NewRepository(client, cfg.ValKey.Prefix),
			sessionvalkey.NewRepository(client, cfg.ValKey.Prefix),
			client.Close, nil
	case config.CacheBackendPostgres:
		pool, err := pgxPoolFromConfig(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}

		return cachesql.NewRepository(pool), sessionsql.NewRepository(pool), pool.Close, nil
	case config.CacheBackendMemory:
		slogctx.Warn(ctx, "Using the in-memory backend, nothing survives a restart")
		return cachemem.NewRepository(), sessionmock.NewInMemRepository(), func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownCacheBackend, cfg.Cache.Backend)
	}
}

func valkeyClientFromConfig(cfg *config.Config) (valkey.Client, error) {
	valkeyHost, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.Host)
	if err != nil {
		return nil, fmt.Errorf("loading valkey host: %w", err)
	}

	valkeyUsername, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.User)
	if err != nil {
		return nil, fmt.Errorf("loading valkey username: %w", err)
	}

	valkeyPassword, err := commoncfg.LoadValueFromSourceRef(cfg.ValKey.Password)
	if err != nil {
		return nil, fmt.Errorf("loading valkey password: %w", err)
	}

	valkeyOpts := valkey.ClientOption{
		InitAddress: []string{string(valkeyHost)},
		Username:    string(valkeyUsername),
		Password:    string(valkeyPassword),
	}

	if cfg.ValKey.MTLS != nil {
		tlsConfig, err := commoncfg.LoadMTLSConfig(cfg.ValKey.MTLS)
		if err != nil {
			return nil, fmt.Errorf("loading valkey mTLS config: %w", err)
		}

		valkeyOpts.TLSConfig = tlsConfig
	}

	valkeyClient, err := valkey.NewClient(valkeyOpts)
	if err != nil {
		return nil, fmt.Errorf("creating a new valkey client: %w", err)
	}

	return valkeyClient, nil
}

func pgxPoolFromConfig(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	connStr, err := config.MakeConnStr(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("making dsn from config: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing pgxpool config: %w", err)
	}

	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("initialising pgxpool connection: %w", err)
	}

	if err := otelpgx.RecordStats(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("recording pgxpool stats: %w", err)
	}

	return db, nil
}

var errMissingMTLS = errors.New("client auth type mtls requires an mtls section")

// loadHTTPClient builds the client for the remote banking API. Every request
// carries the tenant header and, once signed in, the user's auth key.
func loadHTTPClient(cfg *config.Config, creds *session.Credentials) (*http.Client, error) {
	var base http.RoundTripper

	switch cfg.Remote.ClientAuth.Type {
	case config.ClientAuthMTLS:
		if cfg.Remote.ClientAuth.MTLS == nil {
			return nil, errMissingMTLS
		}

		tlsConfig, err := commoncfg.LoadMTLSConfig(cfg.Remote.ClientAuth.MTLS)
		if err != nil {
			return nil, fmt.Errorf("loading mTLS config: %w", err)
		}

		base = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
	case config.ClientAuthInsecure, "":
		base = http.DefaultTransport
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownClientAuth, cfg.Remote.ClientAuth.Type)
	}

	return &http.Client{
		Transport: remotehttp.NewTransport(base, cfg.Remote.TenantID, creds),
		Timeout:   cfg.Remote.Timeout,
	}, nil
}
