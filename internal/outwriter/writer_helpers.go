package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/schema"
)

// writeWithFile opens the configured output, runs writer against it, and
// reports the destination on stderr when it is not stdout.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data with two-space indentation.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes header, then lets writeRows emit the records.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, intFmt
}

// cellFormatter renders metric values into table and CSV cells.
type cellFormatter struct {
	fmtFloat func(float64) string
	intFmt   string
}

func newCellFormatter(precision int) cellFormatter {
	fmtFloat, intFmt := createFormatters(precision)
	return cellFormatter{fmtFloat: fmtFloat, intFmt: intFmt}
}

// metricCells renders the seven metric columns of a day. Days without
// metrics render as blanks.
func (c cellFormatter) metricCells(m *schema.DailyMetrics) []string {
	cells := make([]string, schema.NumMetricFields)
	if m == nil {
		return cells
	}
	cells[schema.TimeAtHome] = fmt.Sprintf(c.intFmt, m.TimeAtHome)
	cells[schema.TimeAtWork] = fmt.Sprintf(c.intFmt, m.TimeAtWork)
	cells[schema.TimeOther] = fmt.Sprintf(c.intFmt, m.TimeOther)
	if m.TimeLeftHome != nil {
		cells[schema.TimeLeftHome] = m.TimeLeftHome.Format(schema.ClockLayout)
	}
	if m.TimeBackHome != nil {
		cells[schema.TimeBackHome] = m.TimeBackHome.Format(schema.ClockLayout)
	}
	cells[schema.GeoDiameterStationary] = c.fmtFloat(m.GeoDiameterStationary)
	cells[schema.GeoDiameterAll] = c.fmtFloat(m.GeoDiameterAll)
	return cells
}

// statCells renders one statistic across the metric columns. Clock fields
// show means and deviations as H:MM:SS; their variance stays in seconds².
// Fields with no data render blank.
func (c cellFormatter) statCells(b schema.CohortBaseline, kind statKind) []string {
	cells := make([]string, schema.NumMetricFields)
	for _, f := range schema.MetricFields {
		s := b.Stat(f)
		if s.Count == 0 {
			continue
		}
		v := kind.value(s)
		if f.IsTimeOfDay() && kind != varianceStat {
			cells[f] = schema.FormatClock(v)
			continue
		}
		cells[f] = c.fmtFloat(v)
	}
	return cells
}

type statKind int

const (
	meanStat statKind = iota
	stdDevStat
	varianceStat
)

var statKinds = []statKind{meanStat, stdDevStat, varianceStat}

func (k statKind) label() string {
	switch k {
	case stdDevStat:
		return "Std Dev"
	case varianceStat:
		return "Var"
	default:
		return "Mean"
	}
}

func (k statKind) value(s schema.FieldStat) float64 {
	switch k {
	case stdDevStat:
		return s.StdDev
	case varianceStat:
		return s.Variance
	default:
		return s.Mean
	}
}

// cohortLabel names a cohort in summary rows.
func cohortLabel(c schema.Cohort) string {
	switch c {
	case schema.WeekdayCohort:
		return "Weekdays"
	case schema.WeekendCohort:
		return "WeekEnds"
	default:
		return "all"
	}
}

// summaryRows returns the trailing Mean, Std Dev and Var rows of every
// cohort, each padded to width columns.
func (c cellFormatter) summaryRows(b schema.Baselines, width int) [][]string {
	var rows [][]string
	for _, cohort := range schema.AllCohorts {
		for _, kind := range statKinds {
			row := make([]string, 0, width)
			row = append(row, fmt.Sprintf("%s over %s", kind.label(), cohortLabel(cohort)))
			row = append(row, c.statCells(b.For(cohort), kind)...)
			for len(row) < width {
				row = append(row, "")
			}
			rows = append(rows, row)
		}
	}
	return rows
}
