package business

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/selfservice-datamanager/internal/cache"
	cachemock "github.com/openkcm/selfservice-datamanager/internal/cache/mock"
	"github.com/openkcm/selfservice-datamanager/internal/config"
	"github.com/openkcm/selfservice-datamanager/internal/datamanager"
	"github.com/openkcm/selfservice-datamanager/internal/model"
	remotemock "github.com/openkcm/selfservice-datamanager/internal/remote/mock"
	"github.com/openkcm/selfservice-datamanager/internal/session"
	sessionmock "github.com/openkcm/selfservice-datamanager/internal/session/mock"
)

type chargeSyncFixture struct {
	manager *datamanager.Manager
	gateway *remotemock.Gateway
	store   *cachemock.Repository
}

func newChargeSyncFixture(t *testing.T, sessionOpts ...sessionmock.RepositoryOption) *chargeSyncFixture {
	t.Helper()

	f := &chargeSyncFixture{
		gateway: remotemock.NewGateway(
			remotemock.WithResponse("ClientCharges", model.NewPage([]model.Charge{{ID: 1, Amount: 10}})),
		),
		store: cachemock.NewInMemRepository(),
	}

	m, err := datamanager.NewManager(f.gateway, f.store, sessionmock.NewInMemRepository(sessionOpts...),
		session.NewContext(), session.NewCredentials())
	require.NoError(t, err)
	f.manager = m

	return f
}

func TestSyncCharges(t *testing.T) {
	tests := []struct {
		name        string
		sessionOpts []sessionmock.RepositoryOption
		wantCalls   int
		wantWrites  int
	}{
		{
			name:        "syncs the persisted session scope",
			sessionOpts: []sessionmock.RepositoryOption{sessionmock.WithRecord(session.Record{ClientID: 42, AuthKey: "a2V5"})},
			wantCalls:   1,
			wantWrites:  1,
		},
		{
			name:       "skips without a session",
			wantCalls:  0,
			wantWrites: 0,
		},
		{
			name:        "skips when the session cannot be loaded",
			sessionOpts: []sessionmock.RepositoryOption{sessionmock.WithLoadError(assert.AnError)},
			wantCalls:   0,
			wantWrites:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChargeSyncFixture(t, tt.sessionOpts...)

			syncCharges(t.Context(), f.manager)

			assert.Equal(t, tt.wantCalls, f.gateway.TCallCount("ClientCharges"))
			assert.Equal(t, tt.wantWrites, f.store.TWrites())

			if tt.wantWrites > 0 {
				_, ok := f.store.TRaw(cache.Key(cache.KindCharges, 42))
				assert.True(t, ok)
			}
		})
	}
}

func TestRunChargeSync(t *testing.T) {
	t.Run("stops when the context is cancelled", func(t *testing.T) {
		f := newChargeSyncFixture(t, sessionmock.WithRecord(session.Record{ClientID: 42}))

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := runChargeSync(ctx, f.manager, time.Minute)
		assert.NoError(t, err)
		assert.Zero(t, f.store.TWrites(), "a cancelled sync writes nothing")
	})

	t.Run("syncs on every tick", func(t *testing.T) {
		f := newChargeSyncFixture(t, sessionmock.WithRecord(session.Record{ClientID: 42}))

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() {
			done <- runChargeSync(ctx, f.manager, 10*time.Millisecond)
		}()

		assert.Eventually(t, func() bool { return f.store.TWrites() >= 2 }, 2*time.Second, 5*time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("charge sync did not stop")
		}
	})

	t.Run("rejects a non positive interval", func(t *testing.T) {
		f := newChargeSyncFixture(t)

		err := runChargeSync(t.Context(), f.manager, 0)
		assert.ErrorIs(t, err, config.ErrInvalidInterval)
	})
}

func TestChargeSyncMain(t *testing.T) {
	t.Run("rejects a missing interval", func(t *testing.T) {
		err := ChargeSyncMain(t.Context(), &config.Config{})
		assert.ErrorIs(t, err, config.ErrInvalidInterval)
	})

	t.Run("fails on an invalid backend", func(t *testing.T) {
		cfg := &config.Config{
			Cache:      config.Cache{Backend: "etcd"},
			ChargeSync: config.ChargeSync{Interval: time.Minute},
		}

		err := ChargeSyncMain(t.Context(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialise the data manager")
	})

	t.Run("rejects the memory backend", func(t *testing.T) {
		cfg := &config.Config{
			Cache:      config.Cache{Backend: config.CacheBackendMemory},
			Remote:     config.Remote{BaseURL: "https://bank.example/fineract-provider/api/v1"},
			ChargeSync: config.ChargeSync{Interval: time.Minute},
		}

		err := ChargeSyncMain(t.Context(), cfg)
		assert.ErrorIs(t, err, config.ErrUnsharedCacheBackend)
	})
}
