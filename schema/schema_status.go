package schema

import "time"

// ReportStatus represents the status of the report store.
type ReportStatus struct {
	Backend     string           `json:"backend"`
	Connected   bool             `json:"connected"`
	HasReport   bool             `json:"has_report"`
	RunID       string           `json:"run_id,omitempty"`
	Source      string           `json:"source,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	TotalDays   int              `json:"total_days"`
	Anomalies   int              `json:"anomalies"`
	TableSizes  map[string]int64 `json:"table_sizes"`
}

// DayRowRecord represents a row from the homebase_day_rows table.
// Metric columns are nil for days that were not evaluated.
type DayRowRecord struct {
	RunID                 string
	Position              int32
	Date                  string
	DayType               string
	TimeAtHome            *int32
	TimeAtWork            *int32
	TimeOther             *int32
	TimeLeftHome          *string
	TimeBackHome          *string
	GeoDiameterStationary *float64
	GeoDiameterAll        *float64
	IsAnomaly             string
	AnomalyReason         string
}

// BaselineRowRecord represents a row from the homebase_baseline_rows table.
type BaselineRowRecord struct {
	RunID    string
	Cohort   string
	Field    string
	Count    int32
	Mean     float64
	StdDev   float64
	Variance float64
}
