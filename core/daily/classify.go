package daily

import (
	"github.com/huangsam/homebase/core/geo"
	"github.com/huangsam/homebase/schema"
)

// Classify labels a segment by the geofence its location falls in.
// Home is checked before Work, so a location inside both resolves to Home.
// Move segments and places without a location are NotApplicable.
func Classify(seg schema.Segment, fences schema.Fences) schema.Classification {
	if seg.Kind != schema.PlaceSegment || seg.Location == nil {
		return schema.NotApplicable
	}
	return ClassifyPoint(*seg.Location, fences)
}

// ClassifyPoint labels a single coordinate as Home, Work or Other.
func ClassifyPoint(p schema.GeoPoint, fences schema.Fences) schema.Classification {
	switch {
	case geo.Contains(fences.Primary, p):
		return schema.Home
	case geo.Contains(fences.Secondary, p):
		return schema.Work
	default:
		return schema.Other
	}
}
