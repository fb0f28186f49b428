package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// JSONMetrics is the JSON form of a day's metrics.
type JSONMetrics struct {
	TimeAtHome            int     `json:"time_at_home"`
	TimeAtWork            int     `json:"time_at_work"`
	TimeOther             int     `json:"time_other"`
	TimeLeftHome          string  `json:"time_left_home,omitempty"`
	TimeBackHome          string  `json:"time_back_home,omitempty"`
	GeoDiameterStationary float64 `json:"geo_diameter_stationary"`
	GeoDiameterAll        float64 `json:"geo_diameter_all"`
}

// JSONDay is the JSON form of one report row.
type JSONDay struct {
	Date          string       `json:"date"`
	DayType       string       `json:"day_type"`
	Metrics       *JSONMetrics `json:"metrics"`
	IsAnomaly     string       `json:"is_anomaly"`
	AnomalyReason string       `json:"anomaly_reason"`
}

// JSONBaseline is the JSON form of a cohort baseline, keyed by field name.
type JSONBaseline struct {
	Cohort string                      `json:"cohort"`
	Days   int                         `json:"days"`
	Fields map[string]schema.FieldStat `json:"fields"`
}

// JSONReport is the JSON form of a full report.
type JSONReport struct {
	Source    string         `json:"source"`
	Days      []JSONDay      `json:"days"`
	Baselines []JSONBaseline `json:"baselines"`
}

// BuildJSONReport converts a report to its JSON form.
func BuildJSONReport(report *schema.Report) JSONReport {
	out := JSONReport{
		Source:    report.Source,
		Days:      make([]JSONDay, 0, len(report.Days)),
		Baselines: BuildJSONBaselines(report.Baselines),
	}
	for _, d := range report.Days {
		day := JSONDay{
			Date:          d.Date,
			DayType:       string(d.DayType),
			IsAnomaly:     contract.GetPlainLabel(d),
			AnomalyReason: d.Reason(),
		}
		if m := d.Metrics; m != nil {
			day.Metrics = &JSONMetrics{
				TimeAtHome:            m.TimeAtHome,
				TimeAtWork:            m.TimeAtWork,
				TimeOther:             m.TimeOther,
				GeoDiameterStationary: m.GeoDiameterStationary,
				GeoDiameterAll:        m.GeoDiameterAll,
			}
			if m.TimeLeftHome != nil {
				day.Metrics.TimeLeftHome = m.TimeLeftHome.Format(schema.ClockLayout)
			}
			if m.TimeBackHome != nil {
				day.Metrics.TimeBackHome = m.TimeBackHome.Format(schema.ClockLayout)
			}
		}
		out.Days = append(out.Days, day)
	}
	return out
}

// BuildJSONBaselines converts the baselines to their JSON form in cohort order.
func BuildJSONBaselines(b schema.Baselines) []JSONBaseline {
	out := make([]JSONBaseline, 0, len(schema.AllCohorts))
	for _, c := range schema.AllCohorts {
		base := b.For(c)
		fields := make(map[string]schema.FieldStat, schema.NumMetricFields)
		for _, f := range schema.MetricFields {
			fields[f.String()] = base.Stat(f)
		}
		out = append(out, JSONBaseline{Cohort: string(c), Days: base.Days, Fields: fields})
	}
	return out
}

// writeReportCSV writes the day rows followed by the cohort summary rows.
func writeReportCSV(w io.Writer, report *schema.Report, cells cellFormatter) error {
	return writeCSVWithHeader(w, reportHeader, func(cw *csv.Writer) error {
		for _, d := range report.Days {
			if err := cw.Write(dayRow(d, cells, contract.GetPlainLabel, d.Reason())); err != nil {
				return err
			}
		}
		for _, row := range cells.summaryRows(report.Baselines, len(reportHeader)) {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

var baselineHeader = []string{"Cohort", "Field", "Count", "Mean", "StdDev", "Variance"}

// baselineRows renders one row per cohort and field. Clock fields render
// their mean and deviation as H:MM:SS.
func baselineRows(b schema.Baselines, cells cellFormatter) [][]string {
	var rows [][]string
	for _, c := range schema.AllCohorts {
		base := b.For(c)
		for _, f := range schema.MetricFields {
			s := base.Stat(f)
			mean, sd := cells.fmtFloat(s.Mean), cells.fmtFloat(s.StdDev)
			if s.Count == 0 {
				mean, sd = "", ""
			} else if f.IsTimeOfDay() {
				mean, sd = schema.FormatClock(s.Mean), schema.FormatClock(s.StdDev)
			}
			variance := ""
			if s.Count > 0 {
				variance = cells.fmtFloat(s.Variance)
			}
			rows = append(rows, []string{string(c), f.String(), strconv.Itoa(s.Count), mean, sd, variance})
		}
	}
	return rows
}

func writeBaselineCSV(w io.Writer, b schema.Baselines, cells cellFormatter) error {
	return writeCSVWithHeader(w, baselineHeader, func(cw *csv.Writer) error {
		return cw.WriteAll(baselineRows(b, cells))
	})
}

func writeBaselineTable(w io.Writer, b schema.Baselines, cells cellFormatter) error {
	table := tablewriter.NewWriter(w)
	table.Header(baselineHeader)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(baselineRows(b, cells)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Baselines from %d days (%d weekdays, %d weekend days)\n", b.Overall.Days, b.Weekday.Days, b.Weekend.Days)
	return err
}

func writeClassificationCSV(w io.Writer, c schema.PointClassification, fmtFloat func(float64) string) error {
	header := []string{"lat", "lon", "classification", "distance_primary_m", "distance_secondary_m"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			strconv.FormatFloat(c.Point.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Point.Lon, 'f', -1, 64),
			string(c.Classification),
			fmtFloat(c.DistancePrimary),
			fmtFloat(c.DistanceSecondary),
		})
	})
}
