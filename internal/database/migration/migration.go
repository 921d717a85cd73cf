package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

// Direction selects which way Run moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Source returns the embedded migration files as a golang-migrate source driver.
func Source() (source.Driver, error) {
	d, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return d, nil
}

// Run applies the embedded migrations in the given direction on a dedicated connection
// taken from db; the pool itself stays open for the caller.
func Run(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string, dir Direction) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	log.Info("db_migration_check", zap.String("status", "starting"), zap.String("direction", string(dir)))

	fail := func(err error) error {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return err
	}

	src, err := Source()
	if err != nil {
		return fail(err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = src.Close()
		return fail(fmt.Errorf("acquire migration connection: %w", err))
	}

	drv, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = src.Close()
		_ = conn.Close()
		return fail(fmt.Errorf("init migration driver: %w", err))
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		_ = src.Close()
		_ = drv.Close()
		return fail(fmt.Errorf("init migrator: %w", err))
	}
	// Closes the source and the dedicated connection, not the pool.
	defer m.Close()

	switch dir {
	case Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already up to date"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}
	if err != nil {
		return fail(fmt.Errorf("migrate %s: %w", dir, err))
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fail(fmt.Errorf("read schema version: %w", verr))
	}
	log.Info("db_migration_done",
		zap.String("status", "success"),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
