package schema

import "errors"

// Errors reported for a single day or field. None of them stop a run.
var (
	// ErrMalformedTimestamp is returned when a timestamp or date does not parse,
	// or a place ends before it starts.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrIncompleteSegment is returned when a segment lacks a required field.
	ErrIncompleteSegment = errors.New("incomplete segment")

	// ErrInsufficientBaselineData is returned when a cohort has no usable
	// statistic for a field.
	ErrInsufficientBaselineData = errors.New("insufficient baseline data")
)
