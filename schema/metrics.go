package schema

import "time"

// MetricField identifies one field of DailyMetrics. Every per-field vector in the
// pipeline is indexed by it, in MetricFields order.
type MetricField int

// Metric fields in report order.
const (
	TimeAtHome MetricField = iota
	TimeAtWork
	TimeOther
	TimeLeftHome
	TimeBackHome
	GeoDiameterStationary
	GeoDiameterAll
)

// NumMetricFields is the number of fields in DailyMetrics.
const NumMetricFields = 7

// MetricFields lists all metric fields in report order.
var MetricFields = [NumMetricFields]MetricField{
	TimeAtHome,
	TimeAtWork,
	TimeOther,
	TimeLeftHome,
	TimeBackHome,
	GeoDiameterStationary,
	GeoDiameterAll,
}

var metricFieldNames = [NumMetricFields]string{
	"TimeAtHome",
	"TimeAtWork",
	"TimeOther",
	"TimeLeftHome",
	"TimeBackHome",
	"GeoDiameterStationary",
	"GeoDiameterAll",
}

// String returns the column name of the field.
func (f MetricField) String() string {
	if f < 0 || int(f) >= NumMetricFields {
		return "Unknown"
	}
	return metricFieldNames[f]
}

// IsTimeOfDay reports whether the field holds a clock time rather than a quantity.
func (f MetricField) IsTimeOfDay() bool {
	return f == TimeLeftHome || f == TimeBackHome
}

// DailyMetrics is the per-day result of the metrics engine.
type DailyMetrics struct {
	TimeAtHome int `json:"time_at_home"` // minutes
	TimeAtWork int `json:"time_at_work"` // minutes
	TimeOther  int `json:"time_other"`   // minutes

	// Nil when no qualifying transition happened that day.
	TimeLeftHome *time.Time `json:"time_left_home,omitempty"`
	TimeBackHome *time.Time `json:"time_back_home,omitempty"`

	GeoDiameterStationary float64 `json:"geo_diameter_stationary"` // meters
	GeoDiameterAll        float64 `json:"geo_diameter_all"`        // meters
}

// Value returns the numeric value of a field: minutes for durations, seconds
// since midnight for clock times and meters for diameters. The boolean is false
// when the field is absent for the day.
func (m DailyMetrics) Value(f MetricField) (float64, bool) {
	switch f {
	case TimeAtHome:
		return float64(m.TimeAtHome), true
	case TimeAtWork:
		return float64(m.TimeAtWork), true
	case TimeOther:
		return float64(m.TimeOther), true
	case TimeLeftHome:
		return clockValue(m.TimeLeftHome)
	case TimeBackHome:
		return clockValue(m.TimeBackHome)
	case GeoDiameterStationary:
		return m.GeoDiameterStationary, true
	case GeoDiameterAll:
		return m.GeoDiameterAll, true
	default:
		return 0, false
	}
}

func clockValue(t *time.Time) (float64, bool) {
	if t == nil {
		return 0, false
	}
	return float64(SecondsSinceMidnight(*t)), true
}
