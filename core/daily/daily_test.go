package daily

import (
	"testing"

	"github.com/huangsam/homebase/core/geo"
	"github.com/huangsam/homebase/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	home  = schema.GeoPoint{Lat: 40.72539, Lon: -74.07099}
	work  = schema.GeoPoint{Lat: 40.74096, Lon: -74.00212}
	other = schema.GeoPoint{Lat: 40.78, Lon: -73.96}

	testFences = schema.Fences{
		Primary:   schema.Geofence{Center: home, RadiusMeters: 500},
		Secondary: schema.Geofence{Center: work, RadiusMeters: 500},
	}
)

func placeAt(loc schema.GeoPoint, start, end string) schema.Segment {
	l := loc
	return schema.Segment{Kind: schema.PlaceSegment, Location: &l, StartTime: start, EndTime: end}
}

func move(points ...schema.GeoPoint) schema.Segment {
	if points == nil {
		points = []schema.GeoPoint{}
	}
	return schema.Segment{Kind: schema.MoveSegment, Activities: []schema.Activity{{TrackPoints: points}}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		seg  schema.Segment
		want schema.Classification
	}{
		{"home center", placeAt(home, "", ""), schema.Home},
		{"work center", placeAt(work, "", ""), schema.Work},
		{"elsewhere", placeAt(other, "", ""), schema.Other},
		{"move", move(home), schema.NotApplicable},
		{"place without location", schema.Segment{Kind: schema.PlaceSegment}, schema.NotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.seg, testFences))
		})
	}
}

func TestClassifyHomeWinsOverlap(t *testing.T) {
	overlap := schema.Fences{
		Primary:   schema.Geofence{Center: home, RadiusMeters: 10000},
		Secondary: schema.Geofence{Center: work, RadiusMeters: 10000},
	}
	assert.Equal(t, schema.Home, ClassifyPoint(work, overlap))
}

func TestClassifyBoundary(t *testing.T) {
	edge := schema.GeoPoint{Lat: home.Lat + 0.003, Lon: home.Lon}
	fences := testFences
	fences.Primary.RadiusMeters = geo.Distance(edge, home)
	assert.Equal(t, schema.Other, ClassifyPoint(edge, fences))
}

func TestComputeCommute(t *testing.T) {
	day := schema.Day{
		Date: "20130315",
		Segments: []schema.Segment{
			placeAt(home, "20130315T090000-0400", "20130315T093000-0400"),
			move(home, other, work),
			placeAt(work, "20130315T100000-0400", "20130315T180000-0400"),
		},
	}

	m, err := Compute(day, testFences)
	require.NoError(t, err)
	assert.Equal(t, 30, m.TimeAtHome)
	assert.Equal(t, 480, m.TimeAtWork)
	assert.Equal(t, 0, m.TimeOther)

	require.NotNil(t, m.TimeLeftHome)
	assert.Equal(t, "09:30:00", m.TimeLeftHome.Format("15:04:05"))
	assert.Nil(t, m.TimeBackHome)

	assert.InDelta(t, geo.Distance(home, work), m.GeoDiameterStationary, 1e-9)
	assert.InDelta(t, geo.Diameter([]schema.GeoPoint{home, work, home, other, work}), m.GeoDiameterAll, 1e-9)
	assert.GreaterOrEqual(t, m.GeoDiameterAll, m.GeoDiameterStationary)
}

func TestComputeRoundTrip(t *testing.T) {
	day := schema.Day{
		Date: "20130318",
		Segments: []schema.Segment{
			placeAt(home, "20130318T070000-0400", "20130318T080000-0400"),
			move(),
			placeAt(work, "20130318T083000-0400", "20130318T120000-0400"),
			move(),
			placeAt(other, "20130318T121500-0400", "20130318T130000-0400"),
			move(),
			placeAt(work, "20130318T131000-0400", "20130318T170000-0400"),
			move(),
			placeAt(home, "20130318T174500-0400", "20130318T235900-0400"),
		},
	}

	m, err := Compute(day, testFences)
	require.NoError(t, err)
	assert.Equal(t, 60+374, m.TimeAtHome)
	assert.Equal(t, 210+230, m.TimeAtWork)
	assert.Equal(t, 45, m.TimeOther)
	require.NotNil(t, m.TimeLeftHome)
	assert.Equal(t, "08:00:00", m.TimeLeftHome.Format("15:04:05"))
	require.NotNil(t, m.TimeBackHome)
	assert.Equal(t, "23:59:00", m.TimeBackHome.Format("15:04:05"), "return is the end of the arrival place")
}

func TestComputeLaterTripleOverwrites(t *testing.T) {
	day := schema.Day{
		Date: "20130319",
		Segments: []schema.Segment{
			placeAt(home, "20130319T060000-0400", "20130319T070000-0400"),
			move(),
			placeAt(work, "20130319T073000-0400", "20130319T080000-0400"),
			move(),
			placeAt(home, "20130319T083000-0400", "20130319T090000-0400"),
			move(),
			placeAt(work, "20130319T093000-0400", "20130319T170000-0400"),
		},
	}
	m, err := Compute(day, testFences)
	require.NoError(t, err)
	require.NotNil(t, m.TimeLeftHome)
	assert.Equal(t, "09:00:00", m.TimeLeftHome.Format("15:04:05"))
	require.NotNil(t, m.TimeBackHome)
	assert.Equal(t, "09:00:00", m.TimeBackHome.Format("15:04:05"))
}

func TestComputeNoTriple(t *testing.T) {
	day := schema.Day{
		Date: "20130320",
		Segments: []schema.Segment{
			placeAt(home, "20130320T000000-0400", "20130320T235959-0400"),
		},
	}
	m, err := Compute(day, testFences)
	require.NoError(t, err)
	assert.Equal(t, 1439, m.TimeAtHome, "durations truncate to whole minutes")
	assert.Nil(t, m.TimeLeftHome)
	assert.Nil(t, m.TimeBackHome)
	assert.Equal(t, 0.0, m.GeoDiameterStationary)
	assert.Equal(t, 0.0, m.GeoDiameterAll)
}

func TestComputeEmptyDay(t *testing.T) {
	m, err := Compute(schema.Day{Date: "20130320", Segments: []schema.Segment{}}, testFences)
	require.NoError(t, err)
	assert.Equal(t, schema.DailyMetrics{}, m)
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name    string
		seg     schema.Segment
		wantErr error
	}{
		{"place without location", schema.Segment{Kind: schema.PlaceSegment, StartTime: "20130315T090000-0400", EndTime: "20130315T093000-0400"}, schema.ErrIncompleteSegment},
		{"place without end", schema.Segment{Kind: schema.PlaceSegment, Location: &home, StartTime: "20130315T090000-0400"}, schema.ErrIncompleteSegment},
		{"move without activities", schema.Segment{Kind: schema.MoveSegment}, schema.ErrIncompleteSegment},
		{"activity without track points", schema.Segment{Kind: schema.MoveSegment, Activities: []schema.Activity{{}}}, schema.ErrIncompleteSegment},
		{"unknown kind", schema.Segment{Kind: "teleport"}, schema.ErrIncompleteSegment},
		{"bad start", placeAt(home, "2013-03-15 09:00", "20130315T093000-0400"), schema.ErrMalformedTimestamp},
		{"bad end", placeAt(home, "20130315T090000-0400", "yesterday"), schema.ErrMalformedTimestamp},
		{"end before start", placeAt(home, "20130315T100000-0400", "20130315T090000-0400"), schema.ErrMalformedTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := schema.Day{
				Date:     "20130315",
				Segments: []schema.Segment{placeAt(work, "20130315T080000-0400", "20130315T083000-0400"), tt.seg},
			}
			_, err := Compute(day, testFences)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
