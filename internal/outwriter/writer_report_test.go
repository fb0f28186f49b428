package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/parquet"
	"github.com/huangsam/homebase/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.Report {
	tz := time.FixedZone("", -4*3600)
	left := time.Date(2013, 3, 15, 9, 30, 0, 0, tz)
	r := &schema.Report{
		Source: "storyline.json",
		Days: []schema.DayResult{
			{
				Date:    "20130315",
				DayType: schema.Weekday,
				Metrics: &schema.DailyMetrics{TimeAtHome: 30, TimeAtWork: 480, TimeLeftHome: &left, GeoDiameterStationary: 6123.4, GeoDiameterAll: 6123.4},
				Verdict: schema.AnomalyVerdict{Status: schema.NotAnomalous, Cohort: schema.WeekdayCohort},
			},
			{
				Date:    "20130316",
				DayType: schema.Weekend,
				Metrics: &schema.DailyMetrics{TimeAtHome: 900},
				Verdict: schema.AnomalyVerdict{Status: schema.AnomalousExplained, Metric: schema.TimeAtHome, Cohort: schema.WeekendCohort},
			},
			{Date: "20130317", DayType: schema.Weekend},
			{Date: "20130318", DayType: schema.Weekday, Err: errors.New("segment 2: incomplete segment")},
		},
	}
	r.Baselines.Overall = schema.CohortBaseline{Cohort: schema.OverallCohort, Days: 2}
	r.Baselines.Overall.Stats[schema.TimeAtHome] = schema.FieldStat{Count: 2, Mean: 465, StdDev: 435, Variance: 189225}
	return r
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportCSV(&buf, sampleReport(), newCellFormatter(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+4+9)

	assert.Equal(t, []string{
		"Date", "TimeAtHome", "TimeAtWork", "TimeOther", "TimeLeftHome", "TimeBackHome",
		"GeoDiameterStationary", "GeoDiameterAll", "DayType", "IsAnomaly", "AnomalyReason",
	}, records[0])
	assert.Equal(t, []string{"20130315", "30", "480", "0", "09:30:00", "", "6123.4", "6123.4", "Weekday", "No", "N/A"}, records[1])
	assert.Equal(t, "Yes", records[2][9])
	assert.Equal(t, "Weekend Model Explains it", records[2][10])
	assert.Equal(t, []string{"20130317", "", "", "", "", "", "", "", "Weekend", "", "No trace"}, records[3])
	assert.Equal(t, "Invalid trace: segment 2: incomplete segment", records[4][10])

	assert.Equal(t, "Mean over all", records[5][0])
	assert.Equal(t, "465.0", records[5][1])
	assert.Equal(t, "Var over WeekEnds", records[13][0])
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Precision: 1, Width: 200, Workers: 2, ReportBackend: schema.NoneBackend}
	require.NoError(t, writeReportTable(&buf, sampleReport(), cfg, time.Second))

	out := buf.String()
	assert.Contains(t, out, "20130315")
	assert.Contains(t, out, "Weekend Model Explains it")
	assert.Contains(t, out, "Std Dev over Weekdays")
	assert.Contains(t, out, "Showing 4 days (2 evaluated, 1 anomalies)")
	assert.Contains(t, out, "with 2 workers. Report backend: none")
}

func TestBuildJSONReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, BuildJSONReport(sampleReport())))

	var decoded JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Days, 4)
	require.NotNil(t, decoded.Days[0].Metrics)
	assert.Equal(t, "09:30:00", decoded.Days[0].Metrics.TimeLeftHome)
	assert.Nil(t, decoded.Days[2].Metrics)
	assert.Empty(t, decoded.Days[2].IsAnomaly)

	require.Len(t, decoded.Baselines, 3)
	assert.Equal(t, "Overall", decoded.Baselines[0].Cohort)
	assert.Equal(t, 465.0, decoded.Baselines[0].Fields["TimeAtHome"].Mean)
}

func TestWriteBaselineCSV(t *testing.T) {
	var buf bytes.Buffer
	b := sampleReport().Baselines
	b.Weekday.Stats[schema.TimeBackHome] = schema.FieldStat{Count: 4, Mean: 64800, StdDev: 900, Variance: 810000}
	require.NoError(t, writeBaselineCSV(&buf, b, newCellFormatter(2)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+3*schema.NumMetricFields)
	assert.Equal(t, baselineHeader, records[0])
	assert.Equal(t, []string{"Overall", "TimeAtHome", "2", "465.00", "435.00", "189225.00"}, records[1])
	assert.Equal(t, []string{"Overall", "TimeAtWork", "0", "", "", ""}, records[2])
	assert.Equal(t, []string{"Weekday", "TimeBackHome", "4", "18:00:00", "0:15:00", "810000.00"}, records[1+schema.NumMetricFields+int(schema.TimeBackHome)])
}

func TestWriteReportParquet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: dir, Precision: 1}
	require.NoError(t, NewOutWriter().WriteReport(sampleReport(), cfg, 0))

	for _, name := range []string{parquet.DaysFile, parquet.BaselinesFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteReportCSVFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: out, Precision: 1}
	require.NoError(t, NewOutWriter().WriteReport(sampleReport(), cfg, 0))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Date,TimeAtHome"))
}

func TestWriteClassification(t *testing.T) {
	c := schema.PointClassification{
		Point:             schema.GeoPoint{Lat: 40.72539, Lon: -74.07099},
		Classification:    schema.Home,
		DistancePrimary:   0,
		DistanceSecondary: 6123.46,
	}

	var buf bytes.Buffer
	require.NoError(t, writeClassificationCSV(&buf, c, newCellFormatter(1).fmtFloat))
	assert.Equal(t, "lat,lon,classification,distance_primary_m,distance_secondary_m\n40.72539,-74.07099,Home,0.0,6123.5\n", buf.String())

	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: t.TempDir()}
	assert.Error(t, NewOutWriter().WriteClassification(c, cfg))
}

func TestGetMaxReasonWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{80, 12},
		{180, 30},
		{400, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getMaxReasonWidth(&contract.Config{Width: tt.width}))
	}
}
