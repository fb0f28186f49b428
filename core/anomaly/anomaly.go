// Package anomaly flags days whose metrics fall outside the two sigma band of
// the Overall baseline, then re-tests the offending metric against the day's
// own cohort.
package anomaly

import (
	"fmt"

	"github.com/huangsam/homebase/schema"
)

// Sigmas is the half-width of the acceptance band in standard deviations.
const Sigmas = 2.0

// Band is the open interval a value must fall in to be normal.
type Band struct {
	Low  float64
	High float64
}

// Contains reports whether low < v < high.
func (b Band) Contains(v float64) bool {
	return b.Low < v && v < b.High
}

// BandFor returns the acceptance band of a field. Clock fields use the
// baseline as reported, i.e. formatted to H:MM:SS and read back in whole
// seconds. A statistic that cannot be used returns an error wrapping
// ErrInsufficientBaselineData.
func BandFor(f schema.MetricField, s schema.FieldStat) (Band, error) {
	if err := s.Check(); err != nil {
		return Band{}, err
	}
	mean, sd := s.Mean, s.StdDev
	if f.IsTimeOfDay() {
		var err error
		if mean, err = schema.ParseClock(schema.FormatClock(mean)); err != nil {
			return Band{}, fmt.Errorf("%w: %s mean: %v", schema.ErrInsufficientBaselineData, f, err)
		}
		if sd, err = schema.ParseClock(schema.FormatClock(sd)); err != nil {
			return Band{}, fmt.Errorf("%w: %s std dev: %v", schema.ErrInsufficientBaselineData, f, err)
		}
	}
	return Band{Low: mean - Sigmas*sd, High: mean + Sigmas*sd}, nil
}

// Evaluate returns the verdict for one day. Fields are checked in MetricFields
// order and the first one outside the Overall band decides the verdict. Fields
// the day lacks, or whose baseline cannot be used, are skipped.
func Evaluate(day schema.DayResult, b schema.Baselines) schema.AnomalyVerdict {
	if day.Metrics == nil {
		return schema.AnomalyVerdict{Status: schema.NotEvaluated}
	}
	cohort := schema.CohortFor(day.DayType)

	for _, f := range schema.MetricFields {
		v, ok := day.Metrics.Value(f)
		if !ok {
			continue
		}
		band, err := BandFor(f, b.Overall.Stat(f))
		if err != nil || band.Contains(v) {
			continue
		}

		verdict := schema.AnomalyVerdict{
			Status: schema.AnomalousUnexplained,
			Metric: f,
			Cohort: cohort,
		}
		cohortBand, err := BandFor(f, b.For(cohort).Stat(f))
		switch {
		case err != nil:
			verdict.CohortInsufficient = true
		case cohortBand.Contains(v):
			verdict.Status = schema.AnomalousExplained
		}
		return verdict
	}

	return schema.AnomalyVerdict{Status: schema.NotAnomalous, Cohort: cohort}
}

// EvaluateAll fills in the verdict of every day.
func EvaluateAll(days []schema.DayResult, b schema.Baselines) {
	for i := range days {
		days[i].Verdict = Evaluate(days[i], b)
	}
}
