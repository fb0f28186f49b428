package schema

import "time"

// ClockLayout renders the per-day time-of-day fields.
const ClockLayout = "15:04:05"

// DayRows flattens the days of a report into row records, tagged with runID.
func (r *Report) DayRows(runID string) []DayRowRecord {
	rows := make([]DayRowRecord, 0, len(r.Days))
	for i, d := range r.Days {
		row := DayRowRecord{
			RunID:         runID,
			Position:      int32(i),
			Date:          d.Date,
			DayType:       string(d.DayType),
			AnomalyReason: d.Reason(),
		}
		if m := d.Metrics; m != nil {
			row.TimeAtHome = ptr(int32(m.TimeAtHome))
			row.TimeAtWork = ptr(int32(m.TimeAtWork))
			row.TimeOther = ptr(int32(m.TimeOther))
			row.TimeLeftHome = clockString(m.TimeLeftHome)
			row.TimeBackHome = clockString(m.TimeBackHome)
			row.GeoDiameterStationary = ptr(m.GeoDiameterStationary)
			row.GeoDiameterAll = ptr(m.GeoDiameterAll)
			row.IsAnomaly = d.Verdict.Label()
		}
		rows = append(rows, row)
	}
	return rows
}

// BaselineRows flattens the baselines into one record per cohort and field.
func (r *Report) BaselineRows(runID string) []BaselineRowRecord {
	rows := make([]BaselineRowRecord, 0, len(AllCohorts)*NumMetricFields)
	for _, c := range AllCohorts {
		b := r.Baselines.For(c)
		for _, f := range MetricFields {
			s := b.Stat(f)
			rows = append(rows, BaselineRowRecord{
				RunID:    runID,
				Cohort:   string(c),
				Field:    f.String(),
				Count:    int32(s.Count),
				Mean:     s.Mean,
				StdDev:   s.StdDev,
				Variance: s.Variance,
			})
		}
	}
	return rows
}

// Anomalies counts the days flagged as anomalous.
func (r *Report) Anomalies() int {
	n := 0
	for _, d := range r.Days {
		if d.Verdict.IsAnomaly() {
			n++
		}
	}
	return n
}

func clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return ptr(t.Format(ClockLayout))
}

func ptr[T any](v T) *T {
	return &v
}
