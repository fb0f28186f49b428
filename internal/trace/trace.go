// Package trace reads storyline exports into schema days.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/homebase/schema"
)

type rawPoint struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type rawActivity struct {
	TrackPoints []rawPoint `json:"trackPoints"`
}

type rawPlace struct {
	Location *rawPoint `json:"location"`
}

type rawSegment struct {
	Type       string        `json:"type"`
	StartTime  string        `json:"startTime"`
	EndTime    string        `json:"endTime"`
	Place      *rawPlace     `json:"place"`
	Activities []rawActivity `json:"activities"`
}

type rawDay struct {
	Date     string       `json:"date"`
	Segments []rawSegment `json:"segments"`
}

// Load reads a storyline export from path.
func Load(path string) ([]schema.Day, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode parses a storyline export. A missing "segments" key or a JSON null
// yields a day without a trace. Coordinates that lack lat or lon are dropped,
// so a place with a partial location has no location at all.
func Decode(r io.Reader) ([]schema.Day, error) {
	var raw []rawDay
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}

	days := make([]schema.Day, 0, len(raw))
	for _, rd := range raw {
		day := schema.Day{Date: rd.Date}
		if rd.Segments != nil {
			day.Segments = make([]schema.Segment, 0, len(rd.Segments))
			for _, rs := range rd.Segments {
				day.Segments = append(day.Segments, convertSegment(rs))
			}
		}
		days = append(days, day)
	}
	return days, nil
}

func convertSegment(rs rawSegment) schema.Segment {
	seg := schema.Segment{
		Kind:      schema.SegmentKind(rs.Type),
		StartTime: rs.StartTime,
		EndTime:   rs.EndTime,
	}
	if rs.Place != nil && rs.Place.Location != nil {
		if p, ok := rs.Place.Location.point(); ok {
			seg.Location = &p
		}
	}
	if rs.Activities != nil {
		seg.Activities = make([]schema.Activity, 0, len(rs.Activities))
		for _, ra := range rs.Activities {
			var act schema.Activity
			if ra.TrackPoints != nil {
				act.TrackPoints = make([]schema.GeoPoint, 0, len(ra.TrackPoints))
				for _, rp := range ra.TrackPoints {
					if p, ok := rp.point(); ok {
						act.TrackPoints = append(act.TrackPoints, p)
					}
				}
			}
			seg.Activities = append(seg.Activities, act)
		}
	}
	return seg
}

func (p rawPoint) point() (schema.GeoPoint, bool) {
	if p.Lat == nil || p.Lon == nil {
		return schema.GeoPoint{}, false
	}
	return schema.GeoPoint{Lat: *p.Lat, Lon: *p.Lon}, true
}
