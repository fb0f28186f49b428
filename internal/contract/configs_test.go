package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/homebase/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Primary:   DefaultPrimary,
		Secondary: DefaultSecondary,
		Radius:    DefaultRadiusMeters,
		Workers:   4,
		Precision: 1,
		Output:    "text",
		Color:     "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "uppercase output", mutate: func(in *ConfigRawInput) { in.Output = "CSV" }},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without dir", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with dir", mutate: func(in *ConfigRawInput) { in.Output = "parquet"; in.OutputFile = "out" }},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 5 }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: true},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "bad primary", mutate: func(in *ConfigRawInput) { in.Primary = "home" }, expectError: true},
		{name: "bad secondary", mutate: func(in *ConfigRawInput) { in.Secondary = "40.7,-200" }, expectError: true},
		{name: "zero radius", mutate: func(in *ConfigRawInput) { in.Radius = 0 }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.ReportBackend = "oracle" }, expectError: true},
		{name: "mysql without connection", mutate: func(in *ConfigRawInput) { in.ReportBackend = "mysql" }, expectError: true},
		{name: "sqlite backend", mutate: func(in *ConfigRawInput) { in.ReportBackend = "SQLite" }},
		{name: "missing trace", mutate: func(in *ConfigRawInput) { in.TracePathStr = "/nonexistent/trace.json" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "trace.json")
	require.NoError(t, os.WriteFile(trace, []byte("[]"), 0o644))

	input := validInput()
	input.TracePathStr = trace
	input.Radius = 250
	input.LogLevel = "debug"
	input.ReportBackend = "sqlite"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, trace, cfg.TracePath)
	assert.Equal(t, schema.GeoPoint{Lat: 40.72539, Lon: -74.07099}, cfg.Fences.Primary.Center)
	assert.Equal(t, schema.GeoPoint{Lat: 40.74096, Lon: -74.00212}, cfg.Fences.Secondary.Center)
	assert.Equal(t, 250.0, cfg.Fences.Primary.RadiusMeters)
	assert.Equal(t, 250.0, cfg.Fences.Secondary.RadiusMeters)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, schema.SQLiteBackend, cfg.ReportBackend)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateTraceDirectory(t *testing.T) {
	input := validInput()
	input.TracePathStr = t.TempDir()
	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidateDefaultsLogLevel(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, schema.NoneBackend, cfg.ReportBackend)
}

func TestParseGeoPoint(t *testing.T) {
	tests := []struct {
		input   string
		want    schema.GeoPoint
		wantErr bool
	}{
		{"40.72539,-74.07099", schema.GeoPoint{Lat: 40.72539, Lon: -74.07099}, false},
		{" 1.5 , 2.5 ", schema.GeoPoint{Lat: 1.5, Lon: 2.5}, false},
		{"-90,180", schema.GeoPoint{Lat: -90, Lon: 180}, false},
		{"40.7", schema.GeoPoint{}, true},
		{"north,west", schema.GeoPoint{}, true},
		{"10,west", schema.GeoPoint{}, true},
		{"91,0", schema.GeoPoint{}, true},
		{"0,181", schema.GeoPoint{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGeoPoint(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/homebase", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/homebase", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 user=postgres dbname=homebase", false},
		{"postgres missing host", schema.PostgreSQLBackend, "port=5432 dbname=homebase", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClone(t *testing.T) {
	cfg := &Config{Workers: 2, Output: schema.JSONOut}
	clone := cfg.Clone()
	clone.Workers = 8
	clone.Fences.Primary.RadiusMeters = 10
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 0.0, cfg.Fences.Primary.RadiusMeters)
	assert.Equal(t, schema.JSONOut, clone.Output)
}

func TestRevalidateFences(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	require.NoError(t, processFences(cfg, input))
	before := cfg.Fences

	require.NoError(t, RevalidateFences(cfg, "", "", 0))
	assert.Equal(t, before, cfg.Fences)

	require.NoError(t, RevalidateFences(cfg, "1.5,2.5", "", 250))
	assert.Equal(t, schema.GeoPoint{Lat: 1.5, Lon: 2.5}, cfg.Fences.Primary.Center)
	assert.Equal(t, before.Secondary.Center, cfg.Fences.Secondary.Center)
	assert.Equal(t, 250.0, cfg.Fences.Primary.RadiusMeters)
	assert.Equal(t, 250.0, cfg.Fences.Secondary.RadiusMeters)

	assert.Error(t, RevalidateFences(cfg, "north", "", 0))
	assert.Error(t, RevalidateFences(cfg, "", "", -5))
}

func TestRevalidateTrace(t *testing.T) {
	cfg := &Config{}
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	require.NoError(t, RevalidateTrace(cfg, path))
	assert.Equal(t, path, cfg.TracePath)

	assert.Error(t, RevalidateTrace(cfg, filepath.Join(t.TempDir(), "missing.json")))
	assert.Error(t, RevalidateTrace(cfg, t.TempDir()))
}

func TestFormatGeoPoint(t *testing.T) {
	p := schema.GeoPoint{Lat: 40.72539, Lon: -74.07099}
	assert.Equal(t, "40.72539,-74.07099", FormatGeoPoint(p))
	parsed, err := ParseGeoPoint(FormatGeoPoint(p))
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	ProcessProfilingConfig(profile, "")
	assert.False(t, profile.Enabled)

	ProcessProfilingConfig(profile, "homebase")
	assert.True(t, profile.Enabled)
	assert.Equal(t, "homebase", profile.Prefix)
}
