package schema

import (
	"fmt"
	"math"
)

// FieldStat holds population statistics for one metric field within a cohort.
// Count is the number of days that contributed a value.
type FieldStat struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
}

// Check returns ErrInsufficientBaselineData when the statistic cannot be used
// for a comparison.
func (s FieldStat) Check() error {
	if s.Count == 0 {
		return ErrInsufficientBaselineData
	}
	if math.IsNaN(s.Mean) || math.IsNaN(s.StdDev) || math.IsInf(s.Mean, 0) || math.IsInf(s.StdDev, 0) {
		return fmt.Errorf("%w: non-finite statistic", ErrInsufficientBaselineData)
	}
	return nil
}

// CohortBaseline holds one FieldStat per metric field, aligned with MetricFields.
type CohortBaseline struct {
	Cohort Cohort                     `json:"cohort"`
	Days   int                        `json:"days"`
	Stats  [NumMetricFields]FieldStat `json:"stats"`
}

// Stat returns the statistic for a field.
func (b CohortBaseline) Stat(f MetricField) FieldStat {
	return b.Stats[f]
}

// Baselines holds the three cohort baselines built from one trace.
type Baselines struct {
	Overall CohortBaseline `json:"overall"`
	Weekday CohortBaseline `json:"weekday"`
	Weekend CohortBaseline `json:"weekend"`
}

// For returns the baseline of the named cohort.
func (b Baselines) For(c Cohort) CohortBaseline {
	switch c {
	case WeekdayCohort:
		return b.Weekday
	case WeekendCohort:
		return b.Weekend
	default:
		return b.Overall
	}
}
