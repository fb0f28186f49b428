// Package reportdb persists analysis reports to SQLite, MySQL or PostgreSQL.
package reportdb

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/schema"
)

// ReportStoreManager holds the process wide ReportStore.
type ReportStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	report       contract.ReportStore
}

var _ contract.ReportManager = &ReportStoreManager{} // Compile-time check

// GetReportStore returns the ReportStore, or nil when none was configured.
func (mgr *ReportStoreManager) GetReportStore() contract.ReportStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.report
}

// Global Manager instance for main logic.
var (
	Manager   = &ReportStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for report storage.
func GetDBFilePath() string {
	return contract.GetReportDBFilePath()
}

// InitStores initializes the global manager. An empty backend leaves the
// report store unset.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewReportStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize report store: %w", err)
			return
		}

		Manager.Lock()
		Manager.report = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.report != nil {
			_ = Manager.report.Close()
			Manager.report = nil
		}
	})
}

// ClearReport removes the persisted report for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the report tables and the
// migration bookkeeping table.
// For NoneBackend, it does nothing.
func ClearReport(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	tables := append([]string{migrationsTable}, reportTables...)

	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropSQLTables("mysql", connStr, backend, tables)

	case schema.PostgreSQLBackend:
		return dropSQLTables("pgx", connStr, backend, tables)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported report backend for clearing: %s", backend)
	}
}

// dropSQLTables connects to the SQL database and drops each table if it exists.
func dropSQLTables(driverName, connStr string, backend schema.DatabaseBackend, tables []string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range tables {
		if err := validateTableName(table); err != nil {
			return err
		}
		query := "DROP TABLE IF EXISTS " + quoteTableName(table, backend)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}
