package business

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/selfservice-datamanager/internal/config"
)

func TestMigrationsFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "00001_init.sql"), []byte("-- +goose Up\n"), 0o600))

	tests := []struct {
		name      string
		source    string
		wantFiles []string
		wantErr   string
	}{
		{
			name:      "default is embedded",
			source:    "",
			wantFiles: []string{"00001_cached_entities.sql", "00002_session_records.sql"},
		},
		{
			name:      "embedded",
			source:    "embedded",
			wantFiles: []string{"00001_cached_entities.sql", "00002_session_records.sql"},
		},
		{
			name:      "directory",
			source:    "file://" + dir,
			wantFiles: []string{"00001_init.sql"},
		},
		{
			name:    "missing directory",
			source:  "file://" + filepath.Join(dir, "missing"),
			wantErr: "reading migration directory",
		},
		{
			name:    "file instead of directory",
			source:  "file://" + filepath.Join(dir, "00001_init.sql"),
			wantErr: "is not a directory",
		},
		{
			name:    "unsupported scheme",
			source:  "s3://bucket/sql",
			wantErr: "unsupported migration source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, err := migrationsFS(tt.source)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)

			files, err := fs.Glob(fsys, "*.sql")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiles, files)
		})
	}
}

func TestMigrateMain_InvalidConfig(t *testing.T) {
	validDB := config.Database{
		Host:     embedded("localhost"),
		Port:     "5432",
		Name:     "testdb",
		User:     embedded("user"),
		Password: embedded("pass"),
	}

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{
			name:    "invalid host ref",
			mutate:  func(cfg *config.Config) { cfg.Database.Host = missingFile() },
			wantErr: "making connection string from config",
		},
		{
			name:    "invalid user ref",
			mutate:  func(cfg *config.Config) { cfg.Database.User = missingFile() },
			wantErr: "making connection string from config",
		},
		{
			name:    "invalid password ref",
			mutate:  func(cfg *config.Config) { cfg.Database.Password = missingFile() },
			wantErr: "making connection string from config",
		},
		{
			name:    "unsupported migration source",
			mutate:  func(cfg *config.Config) { cfg.Migrate.Source = "s3://bucket/sql" },
			wantErr: "selecting the migration source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Database: validDB}
			tt.mutate(cfg)

			err := MigrateMain(t.Context(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
