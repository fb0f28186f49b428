package reportdb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/homebase/schema"
)

// migrationsTable records the applied schema version.
const migrationsTable = "homebase_schema_migrations"

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// migrationsDir returns the embedded directory holding the backend's migrations.
func migrationsDir(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return path.Join("migrations", "sqlite"), nil
	case schema.MySQLBackend:
		return path.Join("migrations", "mysql"), nil
	case schema.PostgreSQLBackend:
		return path.Join("migrations", "postgres"), nil
	default:
		return "", fmt.Errorf("no migrations for backend: %s", backend)
	}
}

// migrateDriver wraps db in the golang-migrate driver for backend.
func migrateDriver(backend schema.DatabaseBackend, db *sql.DB) (database.Driver, error) {
	switch backend {
	case schema.SQLiteBackend:
		return sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		return mysql.WithInstance(db, &mysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// newMigrator opens the report database and pairs it with the embedded
// migrations of its backend. The caller closes the returned *sql.DB.
func newMigrator(backend schema.DatabaseBackend, connStr string) (*migrate.Migrate, *sql.DB, error) {
	dir, err := migrationsDir(backend)
	if err != nil {
		return nil, nil, err
	}

	driverName, dsn := "", connStr
	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		if dsn == "" {
			dsn = GetDBFilePath()
		}
	case schema.MySQLBackend:
		driverName = "mysql"
	case schema.PostgreSQLBackend:
		driverName = "pgx"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping %s database: %w", backend, err)
	}

	driver, err := migrateDriver(backend, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}
	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "homebase", driver)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, db, nil
}

// MigrateReport moves the report schema to targetVersion: negative means
// latest, zero rolls every migration back.
func MigrateReport(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	m, db, err := newMigrator(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read report schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("report schema is dirty at version %d; fix it manually or force a version", from)
	}

	var target string
	switch {
	case targetVersion < 0:
		target = "latest"
		err = m.Up()
	case targetVersion == 0:
		target = "0"
		err = m.Down()
	default:
		target = strconv.Itoa(targetVersion)
		err = m.Migrate(uint(targetVersion))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Printf("Report schema already at version %s, nothing to do.\n", target)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to migrate report schema to %s: %w", target, err)
	}

	to, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		to, err = 0, nil
	}
	if err != nil {
		return fmt.Errorf("failed to read report schema version: %w", err)
	}
	fmt.Printf("Migrated report schema from version %d to version %d\n", from, to)
	return nil
}
