package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the layout of segment timestamps, e.g. 20130315T093000-0400.
const TimestampLayout = "20060102T150405-0700"

// DateLayout is the layout of the date prefix of a day.
const DateLayout = "20060102"

// ParseTimestamp parses a segment timestamp, keeping its recorded offset.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// ParseDate parses the calendar date of a day. Only the first eight characters
// are significant.
func ParseDate(s string) (time.Time, error) {
	if len(s) < len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrMalformedTimestamp, s)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// DayTypeOf returns Weekend for Saturday and Sunday and Weekday otherwise.
func DayTypeOf(t time.Time) DayType {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return Weekend
	default:
		return Weekday
	}
}

// SecondsSinceMidnight returns the clock time of t in its own offset.
func SecondsSinceMidnight(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// FormatClock renders a number of seconds as H:MM:SS, truncating fractions.
// Negative or non-finite input renders as an empty string.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return ""
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// ParseClock parses an H:MM:SS value produced by FormatClock back to seconds.
func ParseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	var vals [3]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
		vals[i] = v
	}
	if vals[1] > 59 || vals[2] > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return float64(vals[0]*3600 + vals[1]*60 + vals[2]), nil
}
