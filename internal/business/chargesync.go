package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/config"
	"github.com/openkcm/selfservice-datamanager/internal/datamanager"
	"github.com/openkcm/selfservice-datamanager/internal/serviceerr"
)

// ChargeSyncMain periodically mirrors the charges of the signed in client
// into the local store. The memory backend is rejected: the job runs in its
// own process and would never see the api server's session.
func ChargeSyncMain(ctx context.Context, cfg *config.Config) error {
	if cfg.ChargeSync.Interval <= 0 {
		return config.ErrInvalidInterval
	}
	if cfg.Cache.Backend == config.CacheBackendMemory {
		return fmt.Errorf("%w: %q", config.ErrUnsharedCacheBackend, cfg.Cache.Backend)
	}

	manager, closeFn, err := initDataManager(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise the data manager: %w", err)
	}
	defer closeFn()

	slogctx.Info(ctx, "Starting charge sync job", "interval", cfg.ChargeSync.Interval)
	return runChargeSync(ctx, manager, cfg.ChargeSync.Interval)
}

func runChargeSync(ctx context.Context, manager *datamanager.Manager, interval time.Duration) error {
	if interval <= 0 {
		return config.ErrInvalidInterval
	}

	c := time.Tick(interval)
	for {
		syncCharges(ctx, manager)

		select {
		case <-c:
			continue
		case <-ctx.Done():
			return nil
		}
	}
}

func syncCharges(ctx context.Context, manager *datamanager.Manager) {
	if err := manager.RefreshSession(ctx); err != nil {
		slogctx.Error(ctx, "Failed to refresh the session", "error", err)
		return
	}

	page, err := manager.SyncSessionCharges(ctx)
	switch {
	case errors.Is(err, serviceerr.ErrNoActiveSession):
		slogctx.Debug(ctx, "No active session, skipping charge sync")
	case errors.Is(err, serviceerr.ErrCancelled):
		slogctx.Debug(ctx, "Charge sync cancelled")
	case err != nil:
		slogctx.Error(ctx, "Failed to sync charges", "error", err)
	default:
		slogctx.Info(ctx, "Synced charges", "charges", len(page.PageItems))
	}
}
