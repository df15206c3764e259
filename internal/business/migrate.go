package business

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/XSAM/otelsql"
	"github.com/pressly/goose/v3"
	"github.com/samber/oops"

	// Register pgx driver
	_ "github.com/jackc/pgx/v5/stdlib"

	slogctx "github.com/veqryn/slog-context"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/openkcm/selfservice-datamanager/internal/config"
	migrations "github.com/openkcm/selfservice-datamanager/sql"
)

const embeddedMigrations = "embedded"

// MigrateMain brings the cache and session tables of the PostgreSQL backend
// up to date.
func MigrateMain(ctx context.Context, cfg *config.Config) error {
	fsys, err := migrationsFS(cfg.Migrate.Source)
	if err != nil {
		return oops.In("migrate").Wrapf(err, "selecting the migration source")
	}

	connStr, err := config.MakeConnStr(cfg.Database)
	if err != nil {
		return fmt.Errorf("making connection string from config: %w", err)
	}

	dbSystemName := semconv.DBSystemNamePostgreSQL

	db, err := otelsql.Open("pgx", connStr, otelsql.WithAttributes(dbSystemName))
	if err != nil {
		return oops.In("migrate").Wrapf(err, "opening DB connection")
	}
	defer db.Close()

	reg, err := otelsql.RegisterDBStatsMetrics(db, otelsql.WithAttributes(dbSystemName))
	if err != nil {
		return fmt.Errorf("registering db stats metrics: %w", err)
	}

	defer func() {
		if err := reg.Unregister(); err != nil {
			slogctx.Error(ctx, "failed to unregister db stats metrics", "error", err)
		}
	}()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		slogctx.Info(ctx, "Applied migration",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}

	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	if len(results) == 0 {
		slogctx.Info(ctx, "Database schema is up to date")
	}

	return nil
}

// migrationsFS resolves the configured migration source.
func migrationsFS(source string) (fs.FS, error) {
	switch {
	case source == "" || source == embeddedMigrations:
		return migrations.FS, nil
	case strings.HasPrefix(source, "file://"):
		dir := strings.TrimPrefix(source, "file://")

		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("reading migration directory: %w", err)
		}

		if !info.IsDir() {
			return nil, fmt.Errorf("migration source %q is not a directory", source)
		}

		return os.DirFS(dir), nil
	default:
		return nil, fmt.Errorf("unsupported migration source %q", source)
	}
}
