// Package daily computes per-day mobility metrics from a segment sequence.
package daily

import (
	"fmt"
	"time"

	"github.com/huangsam/homebase/core/geo"
	"github.com/huangsam/homebase/schema"
)

// place is a validated place segment.
type place struct {
	loc   schema.GeoPoint
	start time.Time
	end   time.Time
	class schema.Classification
}

// Compute derives the metrics of one day. It fails with ErrIncompleteSegment or
// ErrMalformedTimestamp when a segment cannot be used, in which case no partial
// metrics are returned.
func Compute(day schema.Day, fences schema.Fences) (schema.DailyMetrics, error) {
	places, err := validate(day.Segments, fences)
	if err != nil {
		return schema.DailyMetrics{}, err
	}

	var m schema.DailyMetrics

	// Time spent per bucket
	for _, p := range places {
		if p == nil {
			continue
		}
		minutes := int(p.end.Sub(p.start) / time.Minute)
		switch p.class {
		case schema.Home:
			m.TimeAtHome += minutes
		case schema.Work:
			m.TimeAtWork += minutes
		default:
			m.TimeOther += minutes
		}
	}

	// Departure and return, later triples overwrite earlier ones
	for i := 0; i+2 < len(day.Segments); i++ {
		first, mid, last := places[i], day.Segments[i+1], places[i+2]
		if first == nil || last == nil || mid.Kind != schema.MoveSegment {
			continue
		}
		switch {
		case first.class == schema.Home && last.class == schema.Work:
			left := first.end
			m.TimeLeftHome = &left
		case first.class == schema.Work && last.class == schema.Home:
			back := last.end
			m.TimeBackHome = &back
		}
	}

	// Diameters
	var stationary []schema.GeoPoint
	for _, p := range places {
		if p != nil {
			stationary = append(stationary, p.loc)
		}
	}
	all := append([]schema.GeoPoint(nil), stationary...)
	for _, seg := range day.Segments {
		if seg.Kind != schema.MoveSegment {
			continue
		}
		for _, act := range seg.Activities {
			all = append(all, act.TrackPoints...)
		}
	}
	m.GeoDiameterStationary = geo.Diameter(stationary)
	m.GeoDiameterAll = geo.Diameter(all)

	return m, nil
}

// validate checks every segment and returns the parsed places indexed like the
// input, with nil entries for moves.
func validate(segments []schema.Segment, fences schema.Fences) ([]*place, error) {
	places := make([]*place, len(segments))
	for i, seg := range segments {
		switch seg.Kind {
		case schema.PlaceSegment:
			if seg.Location == nil || seg.StartTime == "" || seg.EndTime == "" {
				return nil, fmt.Errorf("segment %d: %w: place needs location, startTime and endTime", i, schema.ErrIncompleteSegment)
			}
			start, err := schema.ParseTimestamp(seg.StartTime)
			if err != nil {
				return nil, fmt.Errorf("segment %d startTime: %w", i, err)
			}
			end, err := schema.ParseTimestamp(seg.EndTime)
			if err != nil {
				return nil, fmt.Errorf("segment %d endTime: %w", i, err)
			}
			if end.Before(start) {
				return nil, fmt.Errorf("segment %d: %w: ends before it starts", i, schema.ErrMalformedTimestamp)
			}
			places[i] = &place{
				loc:   *seg.Location,
				start: start,
				end:   end,
				class: ClassifyPoint(*seg.Location, fences),
			}
		case schema.MoveSegment:
			if seg.Activities == nil {
				return nil, fmt.Errorf("segment %d: %w: move has no activities", i, schema.ErrIncompleteSegment)
			}
			for j, act := range seg.Activities {
				if act.TrackPoints == nil {
					return nil, fmt.Errorf("segment %d activity %d: %w: no track points", i, j, schema.ErrIncompleteSegment)
				}
			}
		default:
			return nil, fmt.Errorf("segment %d: %w: unknown type %q", i, schema.ErrIncompleteSegment, seg.Kind)
		}
	}
	return places, nil
}
