package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/deppfellow/web420-api/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// versionTable records the applied schema version.
const versionTable = "web420_schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending embedded migration to the document
// store database. It is a no-op when the schema is current.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, DatabasePingTimeout*6*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, DSN(&cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(context.Background())

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	m.OnStart = func(sequence int32, name, direction, _ string) {
		logger.Info().
			Int32("sequence", sequence).
			Str("migration", name).
			Str("direction", direction).
			Msg("applying migration")
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	latest := int32(len(m.Migrations))
	if from > latest {
		return fmt.Errorf("database schema version %d is newer than this build (%d)", from, latest)
	}
	if from == latest {
		logger.Info().Int32("version", latest).Msg("database schema up to date")
		return nil
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database schema: %w", err)
	}

	logger.Info().Int32("from", from).Int32("to", latest).Msg("migrated database schema")
	return nil
}
