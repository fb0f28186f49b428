// Package cohort builds the Overall, Weekday and Weekend baselines.
package cohort

import (
	"math"

	"github.com/huangsam/homebase/schema"
	"gonum.org/v1/gonum/stat"
)

// Aggregate builds the baselines from every day that has metrics. Days without
// metrics are ignored, and a day missing a field is left out of that field only.
func Aggregate(days []schema.DayResult) schema.Baselines {
	var overall, weekday, weekend []*schema.DailyMetrics
	for i := range days {
		d := &days[i]
		if d.Metrics == nil {
			continue
		}
		overall = append(overall, d.Metrics)
		switch d.DayType {
		case schema.Weekend:
			weekend = append(weekend, d.Metrics)
		case schema.Weekday:
			weekday = append(weekday, d.Metrics)
		}
	}
	return schema.Baselines{
		Overall: Build(schema.OverallCohort, overall),
		Weekday: Build(schema.WeekdayCohort, weekday),
		Weekend: Build(schema.WeekendCohort, weekend),
	}
}

// Build computes population statistics per field for one cohort.
func Build(c schema.Cohort, metrics []*schema.DailyMetrics) schema.CohortBaseline {
	b := schema.CohortBaseline{Cohort: c, Days: len(metrics)}
	values := make([]float64, 0, len(metrics))
	for _, f := range schema.MetricFields {
		values = values[:0]
		for _, m := range metrics {
			if v, ok := m.Value(f); ok {
				values = append(values, v)
			}
		}
		b.Stats[f] = Summarize(values)
	}
	return b
}

// Summarize returns the population mean, standard deviation and variance.
// An empty input yields a zero FieldStat.
func Summarize(values []float64) schema.FieldStat {
	if len(values) == 0 {
		return schema.FieldStat{}
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	return schema.FieldStat{
		Count:    len(values),
		Mean:     mean,
		StdDev:   math.Sqrt(variance),
		Variance: variance,
	}
}
