package cmdutils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/selfservice-datamanager/internal/config"
)

func TestCobraCommand(t *testing.T) {
	t.Run("creates command with correct properties", func(t *testing.T) {
		businessFunc := func(ctx context.Context, cfg *config.Config) error {
			return nil
		}

		wrapperFunc := func(ctx context.Context, fn func(context.Context, *config.Config) error, cfg *config.Config) error {
			return fn(ctx, cfg)
		}

		cmd := CobraCommand("test-cmd", "short desc", "long description", "v1.0.0", wrapperFunc, businessFunc)

		assert.Equal(t, "test-cmd", cmd.Use)
		assert.Equal(t, "short desc", cmd.Short)
		assert.Equal(t, "long description", cmd.Long)
		assert.NotNil(t, cmd.RunE)
	})

	t.Run("RunE returns error when config loading fails", func(t *testing.T) {
		businessFunc := func(ctx context.Context, cfg *config.Config) error {
			return nil
		}

		wrapperFunc := func(ctx context.Context, fn func(context.Context, *config.Config) error, cfg *config.Config) error {
			return fn(ctx, cfg)
		}

		cmd := CobraCommand("test", "short", "long", "v1.0.0", wrapperFunc, businessFunc)

		// Execute will fail because no config file exists
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "loading config")
	})

	t.Run("RunE returns error when wrapper function fails", func(t *testing.T) {
		businessFunc := func(ctx context.Context, cfg *config.Config) error {
			return nil
		}

		wrapperErr := errors.New("wrapper error")
		wrapperFunc := func(ctx context.Context, fn func(context.Context, *config.Config) error, cfg *config.Config) error {
			return wrapperErr
		}

		cmd := CobraCommand("test", "short", "long", "v1.0.0", wrapperFunc, businessFunc)

		// Execute will fail because no config file exists (before reaching wrapper)
		err := cmd.Execute()
		assert.Error(t, err)
	})
}

func TestConfigPaths(t *testing.T) {
	t.Run("default locations", func(t *testing.T) {
		t.Setenv(ConfigDirEnv, "")
		assert.Equal(t, []string{"/etc/datamanager", "$HOME/.datamanager", "."}, configPaths())
	})

	t.Run("environment directory comes first", func(t *testing.T) {
		t.Setenv(ConfigDirEnv, "/run/config")
		assert.Equal(t, []string{"/run/config", "/etc/datamanager", "$HOME/.datamanager", "."}, configPaths())
	})
}

func TestLoadConfig_Validates(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache:\n  backend: etcd\n"), 0o600)
	require.NoError(t, err)
	t.Setenv(ConfigDirEnv, dir)

	_, err = loadConfig("{}")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownCacheBackend)
}

func TestStatusListener(t *testing.T) {
	t.Run("handles empty state", func(t *testing.T) {
		ctx := context.Background()
		state := health.State{
			Status:     "up",
			CheckState: map[string]health.CheckState{},
		}

		// Should not panic
		assert.NotPanics(t, func() {
			statusListener(ctx, state)
		})
	})

	t.Run("handles state with check states", func(t *testing.T) {
		ctx := context.Background()
		state := health.State{
			Status: "up",
			CheckState: map[string]health.CheckState{
				"database": {
					Status: "up",
					Result: nil,
				},
			},
		}

		// Should not panic
		assert.NotPanics(t, func() {
			statusListener(ctx, state)
		})
	})

	t.Run("handles state with multiple check states", func(t *testing.T) {
		ctx := context.Background()
		state := health.State{
			Status: "degraded",
			CheckState: map[string]health.CheckState{
				"database": {
					Status: "up",
					Result: nil,
				},
				"cache": {
					Status: "down",
					Result: errors.New("connection refused"),
				},
			},
		}

		// Should not panic
		assert.NotPanics(t, func() {
			statusListener(ctx, state)
		})
	})
}

func TestStartStatusServer(t *testing.T) {
	t.Run("returns error when connection string creation fails", func(t *testing.T) {
		cfg := &config.Config{
			Cache: config.Cache{Backend: config.CacheBackendPostgres},
			Database: config.Database{
				Name: "",
				Port: "",
			},
		}
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := startStatusServer(ctx, cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "making connection string from config")
	})
}

func TestReadinessOptions(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantCount int
		assertErr assert.ErrorAssertionFunc
	}{
		{
			name:      "valkey backend skips the database checker",
			cfg:       &config.Config{Cache: config.Cache{Backend: config.CacheBackendValKey}},
			wantCount: 3,
			assertErr: assert.NoError,
		},
		{
			name:      "memory backend skips the database checker",
			cfg:       &config.Config{Cache: config.Cache{Backend: config.CacheBackendMemory}},
			wantCount: 3,
			assertErr: assert.NoError,
		},
		{
			name: "postgres backend adds the database checker",
			cfg: &config.Config{
				Cache: config.Cache{Backend: config.CacheBackendPostgres},
				Database: config.Database{
					Name: "datamanager",
					Port: "5432",
					Host: commoncfg.SourceRef{Source: "embedded", Value: "localhost"},
					User: commoncfg.SourceRef{Source: "embedded", Value: "postgres"},
					Password: commoncfg.SourceRef{
						Source: "embedded",
						Value:  "secret",
					},
				},
			},
			wantCount: 4,
			assertErr: assert.NoError,
		},
		{
			name:      "postgres backend without database config",
			cfg:       &config.Config{Cache: config.Cache{Backend: config.CacheBackendPostgres}},
			assertErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := readinessOptions(tt.cfg)
			if !tt.assertErr(t, err, fmt.Sprintf("readinessOptions(%v)", tt.cfg.Cache.Backend)) || err != nil {
				return
			}

			assert.Len(t, opts, tt.wantCount)
		})
	}
}

func TestHealthStatusTimeout(t *testing.T) {
	t.Run("has correct value", func(t *testing.T) {
		assert.Equal(t, 5*time.Second, healthStatusTimeout)
	})
}

func ExampleCobraCommand() {
	businessFunc := func(ctx context.Context, cfg *config.Config) error {
		fmt.Println("Running business logic")
		return nil
	}

	wrapperFunc := func(ctx context.Context, fn func(context.Context, *config.Config) error, cfg *config.Config) error {
		fmt.Println("Wrapper function called")
		return fn(ctx, cfg)
	}

	cmd := CobraCommand(
		"example",
		"Example command",
		"This is an example of how to use CobraCommand",
		"v1.0.0",
		wrapperFunc,
		businessFunc,
	)

	fmt.Printf("Command use: %s\n", cmd.Use)
	// Output: Command use: example
}
