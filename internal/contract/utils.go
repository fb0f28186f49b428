package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/homebase/schema"
)

// Color variables for console output.
var (
	UnexplainedColor = color.New(color.FgRed, color.Bold) // anomaly no cohort accounts for.
	ExplainedColor   = color.New(color.FgYellow)          // anomaly the cohort model explains.
	NormalColor      = color.New(color.FgCyan)            // day inside every band.
	SkippedColor     = color.New(color.FgHiBlack)         // day without metrics.
)

// GetPlainLabel returns the IsAnomaly column text for a day.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(day schema.DayResult) string {
	if !day.Evaluated() {
		return ""
	}
	return day.Verdict.Label()
}

// GetColorLabel returns a colored IsAnomaly label for console output (table).
func GetColorLabel(day schema.DayResult) string {
	text := GetPlainLabel(day)
	switch {
	case !day.Evaluated():
		return SkippedColor.Sprint("-")
	case day.Verdict.Status == schema.AnomalousUnexplained:
		return UnexplainedColor.Sprint(text)
	case day.Verdict.Status == schema.AnomalousExplained:
		return ExplainedColor.Sprint(text)
	default:
		return NormalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetReportDBFilePath returns the path to the SQLite DB file for report storage.
func GetReportDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".homebase_report.db"
	}
	return filepath.Join(homeDir, ".homebase_report.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and one rune of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
