// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/huangsam/homebase/schema"

// ReportManager defines the interface for managing the report store.
// This allows the storage layer to be mocked for testing.
type ReportManager interface {
	GetReportStore() ReportStore
}

// ReportStore defines the interface for persisting the latest report.
type ReportStore interface {
	// SaveReport replaces the stored report and returns the new run id
	SaveReport(report *schema.Report) (string, error)

	// GetStatus returns status information about the report store
	GetStatus() (schema.ReportStatus, error)

	// LoadDayRows returns the stored per-day rows in report order
	LoadDayRows() ([]schema.DayRowRecord, error)

	// LoadBaselineRows returns the stored baseline rows in cohort and field order
	LoadBaselineRows() ([]schema.BaselineRowRecord, error)

	// Close closes the underlying connection
	Close() error
}
