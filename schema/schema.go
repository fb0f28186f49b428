// Package schema holds the shared data types for trace analysis.
package schema

// GeoPoint is a coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SegmentKind tags the variant carried by a Segment.
type SegmentKind string

// Segment kinds found in a storyline trace.
const (
	PlaceSegment SegmentKind = "place"
	MoveSegment  SegmentKind = "move"
)

// Activity is one leg of a move, with its recorded track points.
// A nil TrackPoints slice means the field was absent from the trace.
type Activity struct {
	TrackPoints []GeoPoint `json:"trackPoints"`
}

// Segment is either a stationary place or a move between places.
//
// Place segments carry Location, StartTime and EndTime. Move segments carry
// Activities. Timestamps are kept as recorded and parsed by the metrics engine,
// so that a malformed value fails only the day it belongs to.
type Segment struct {
	Kind       SegmentKind `json:"type"`
	StartTime  string      `json:"startTime,omitempty"`
	EndTime    string      `json:"endTime,omitempty"`
	Location   *GeoPoint   `json:"location,omitempty"`
	Activities []Activity  `json:"activities,omitempty"`
}

// Day is the trace recorded for one calendar date.
// Segments is nil when nothing was recorded that day.
type Day struct {
	Date     string    `json:"date"`
	Segments []Segment `json:"segments"`
}

// HasTrace reports whether any trace was recorded for the day.
func (d Day) HasTrace() bool {
	return d.Segments != nil
}

// Geofence is a circular area around a center point.
type Geofence struct {
	Center       GeoPoint `json:"center"`
	RadiusMeters float64  `json:"radius_meters"`
}

// Fences holds the two named geofences used for classification.
type Fences struct {
	Primary   Geofence `json:"primary"`   // home
	Secondary Geofence `json:"secondary"` // work
}

// PointClassification is the label of a single coordinate along with its
// distance to each geofence center.
type PointClassification struct {
	Point             GeoPoint       `json:"point"`
	Classification    Classification `json:"classification"`
	DistancePrimary   float64        `json:"distance_primary_m"`
	DistanceSecondary float64        `json:"distance_secondary_m"`
}
