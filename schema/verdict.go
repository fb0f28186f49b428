package schema

import "fmt"

// AnomalyStatus is the terminal state of the anomaly detector for a day.
type AnomalyStatus string

// Anomaly states.
const (
	NotEvaluated         AnomalyStatus = "not_evaluated"
	NotAnomalous         AnomalyStatus = "not_anomalous"
	AnomalousExplained   AnomalyStatus = "anomalous_explained"
	AnomalousUnexplained AnomalyStatus = "anomalous_unexplained"
)

// NoReason is reported for days that are not anomalous.
const NoReason = "N/A"

// AnomalyVerdict is the anomaly detector's result for one day.
type AnomalyVerdict struct {
	Status AnomalyStatus `json:"status"`
	// Metric is the first field that fell outside the Overall band.
	// Only meaningful for anomalous states.
	Metric MetricField `json:"-"`
	// Cohort is the day's own cohort used for the second test.
	Cohort Cohort `json:"cohort,omitempty"`
	// CohortInsufficient is set when the cohort had no usable statistic
	// for Metric, so the anomaly could not be explained.
	CohortInsufficient bool `json:"cohort_insufficient,omitempty"`
}

// IsAnomaly reports whether the day fell outside the Overall band.
func (v AnomalyVerdict) IsAnomaly() bool {
	return v.Status == AnomalousExplained || v.Status == AnomalousUnexplained
}

// ExplainedByCohort reports whether the cohort model accounted for the anomaly.
func (v AnomalyVerdict) ExplainedByCohort() bool {
	return v.Status == AnomalousExplained
}

// Label renders the IsAnomaly column. Days that were not evaluated render empty.
func (v AnomalyVerdict) Label() string {
	switch v.Status {
	case NotEvaluated, "":
		return ""
	case NotAnomalous:
		return "No"
	default:
		return "Yes"
	}
}

// Reason renders the AnomalyReason column.
func (v AnomalyVerdict) Reason() string {
	switch v.Status {
	case NotAnomalous:
		return NoReason
	case AnomalousExplained:
		return fmt.Sprintf("%s Model Explains it", v.Cohort)
	case AnomalousUnexplained:
		if v.CohortInsufficient {
			return fmt.Sprintf("%s (insufficient %s data)", v.Metric, v.Cohort)
		}
		return v.Metric.String()
	default:
		return ""
	}
}

// DayResult is one report row: the day, its metrics if they could be computed,
// and the verdict from the second pass.
type DayResult struct {
	Date    string         `json:"date"`
	DayType DayType        `json:"day_type"`
	Metrics *DailyMetrics  `json:"metrics,omitempty"`
	Err     error          `json:"-"`
	Verdict AnomalyVerdict `json:"verdict"`
}

// Evaluated reports whether the day contributed to the baselines.
func (r DayResult) Evaluated() bool {
	return r.Metrics != nil
}

// Reason renders the AnomalyReason column, including days that were skipped.
func (r DayResult) Reason() string {
	if r.Metrics != nil {
		return r.Verdict.Reason()
	}
	if r.Err != nil {
		return fmt.Sprintf("Invalid trace: %v", r.Err)
	}
	return "No trace"
}

// Report is the full output of one pipeline run.
type Report struct {
	Source    string      `json:"source"`
	Days      []DayResult `json:"days"`
	Baselines Baselines   `json:"baselines"`
}
