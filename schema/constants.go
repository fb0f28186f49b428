package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the report store.
	DatabaseBackend string

	// DayType is the calendar class of a day.
	DayType string

	// Cohort names a group of days that share a baseline.
	Cohort string

	// Classification is the label assigned to a segment by the geofences.
	Classification string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All report store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Day types. Saturday and Sunday are weekend days.
const (
	Weekday DayType = "Weekday"
	Weekend DayType = "Weekend"
)

// Cohorts used for baselines.
const (
	OverallCohort Cohort = "Overall"
	WeekdayCohort Cohort = "Weekday"
	WeekendCohort Cohort = "Weekend"
)

// Segment classifications.
const (
	Home          Classification = "Home"
	Work          Classification = "Work"
	Other         Classification = "Other"
	NotApplicable Classification = "NotApplicable"
)

// AllCohorts lists the cohorts in report order.
var AllCohorts = []Cohort{OverallCohort, WeekdayCohort, WeekendCohort}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid report store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CohortFor returns the cohort a day of the given type belongs to besides Overall.
func CohortFor(dt DayType) Cohort {
	if dt == Weekend {
		return WeekendCohort
	}
	return WeekdayCohort
}
