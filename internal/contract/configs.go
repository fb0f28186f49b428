package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/huangsam/homebase/schema"
	"github.com/sirupsen/logrus"
)

// Default values for configuration.
const (
	DefaultPrimary      = "40.72539,-74.07099"
	DefaultSecondary    = "40.74096,-74.00212"
	DefaultRadiusMeters = 500.0
	DefaultPrecision    = 1
	DefaultLogLevel     = "info"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	TracePath  string
	Fences     schema.Fences
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	LogLevel   logrus.Level

	ReportBackend   schema.DatabaseBackend
	ReportDBConnect string // Please use env var as this is plaintext
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	TracePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Primary         string  `mapstructure:"primary"`
	Secondary       string  `mapstructure:"secondary"`
	Radius          float64 `mapstructure:"radius"`
	Workers         int     `mapstructure:"workers"`
	Precision       int     `mapstructure:"precision"`
	Output          string  `mapstructure:"output"`
	OutputFile      string  `mapstructure:"output-file"`
	Width           int     `mapstructure:"width"`
	Color           string  `mapstructure:"color"`
	LogLevel        string  `mapstructure:"log-level"`
	ReportBackend   string  `mapstructure:"report-backend"`
	ReportDBConnect string  `mapstructure:"report-db-connect"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFences(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveTracePath(cfg, input)
}

// RevalidateTrace points cfg at another trace file, applying the same checks
// as the command line.
func RevalidateTrace(cfg *Config, tracePath string) error {
	return resolveTracePath(cfg, &ConfigRawInput{TracePathStr: tracePath})
}

// RevalidateFences overrides the fence centers and radius on cfg. Empty
// centers and a zero radius keep the current values.
func RevalidateFences(cfg *Config, primary, secondary string, radius float64) error {
	input := &ConfigRawInput{
		Primary:   FormatGeoPoint(cfg.Fences.Primary.Center),
		Secondary: FormatGeoPoint(cfg.Fences.Secondary.Center),
		Radius:    cfg.Fences.Primary.RadiusMeters,
	}
	if primary != "" {
		input.Primary = primary
	}
	if secondary != "" {
		input.Secondary = secondary
	}
	if radius != 0 {
		input.Radius = radius
	}
	return processFences(cfg, input)
}

// FormatGeoPoint renders a point in the "lat,lon" form ParseGeoPoint reads.
func FormatGeoPoint(p schema.GeoPoint) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}

// ParseGeoPoint parses a "lat,lon" pair in decimal degrees.
func ParseGeoPoint(s string) (schema.GeoPoint, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return schema.GeoPoint{}, fmt.Errorf("invalid coordinate '%s'. must be lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return schema.GeoPoint{}, fmt.Errorf("invalid latitude in '%s': %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return schema.GeoPoint{}, fmt.Errorf("invalid longitude in '%s': %w", s, err)
	}
	p := schema.GeoPoint{Lat: lat, Lon: lon}
	if err := ValidateGeoPoint(p); err != nil {
		return schema.GeoPoint{}, err
	}
	return p, nil
}

// ValidateGeoPoint checks that a point lies within the valid degree ranges.
func ValidateGeoPoint(p schema.GeoPoint) error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude must be within [-90, 90] (received %v)", p.Lat)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude must be within [-180, 180] (received %v)", p.Lon)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("report-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("report-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend lower-cases and validates a report backend name.
// An empty name selects the none backend.
func ParseBackend(s string) (schema.DatabaseBackend, error) {
	if s == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(s))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid report backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// validateBackendConfigs validates the report store configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseBackend(input.ReportBackend)
	if err != nil {
		return err
	}
	cfg.ReportBackend = backend
	cfg.ReportDBConnect = input.ReportDBConnect
	return ValidateDatabaseConnectionString(cfg.ReportBackend, cfg.ReportDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file to name a directory")
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	levelStr := input.LogLevel
	if levelStr == "" {
		levelStr = DefaultLogLevel
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", input.LogLevel, err)
	}
	cfg.LogLevel = level

	return nil
}

// processFences builds the home and work geofences.
func processFences(cfg *Config, input *ConfigRawInput) error {
	primary, err := ParseGeoPoint(input.Primary)
	if err != nil {
		return fmt.Errorf("invalid --primary: %w", err)
	}
	secondary, err := ParseGeoPoint(input.Secondary)
	if err != nil {
		return fmt.Errorf("invalid --secondary: %w", err)
	}
	if input.Radius <= 0 {
		return fmt.Errorf("radius must be greater than 0 (received %v)", input.Radius)
	}
	cfg.Fences = schema.Fences{
		Primary:   schema.Geofence{Center: primary, RadiusMeters: input.Radius},
		Secondary: schema.Geofence{Center: secondary, RadiusMeters: input.Radius},
	}
	return nil
}

// resolveTracePath makes the trace path absolute and checks that it is a file.
// Commands without a trace argument leave TracePath empty.
func resolveTracePath(cfg *Config, input *ConfigRawInput) error {
	if input.TracePathStr == "" {
		cfg.TracePath = ""
		return nil
	}
	abs, err := filepath.Abs(input.TracePathStr)
	if err != nil {
		return fmt.Errorf("failed to resolve trace path '%s': %w", input.TracePathStr, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("trace file not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("trace path '%s' is a directory", input.TracePathStr)
	}
	cfg.TracePath = abs
	return nil
}
