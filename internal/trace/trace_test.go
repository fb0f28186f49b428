package trace

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/homebase/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	days, err := Load(filepath.Join("testdata", "storyline.json"))
	require.NoError(t, err)
	require.Len(t, days, 3)

	first := days[0]
	assert.Equal(t, "20130315", first.Date)
	assert.True(t, first.HasTrace())
	require.Len(t, first.Segments, 3)

	home := first.Segments[0]
	assert.Equal(t, schema.PlaceSegment, home.Kind)
	require.NotNil(t, home.Location)
	assert.Equal(t, schema.GeoPoint{Lat: 40.72539, Lon: -74.07099}, *home.Location)
	assert.Equal(t, "20130315T093000-0400", home.EndTime)

	move := first.Segments[1]
	assert.Equal(t, schema.MoveSegment, move.Kind)
	require.Len(t, move.Activities, 1)
	assert.Len(t, move.Activities[0].TrackPoints, 3)

	assert.False(t, days[1].HasTrace())

	// A move without activities is kept so the engine can reject it.
	require.Len(t, days[2].Segments, 1)
	assert.Nil(t, days[2].Segments[0].Activities)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.json"))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, days []schema.Day)
		wantErr bool
	}{
		{
			name:  "empty export",
			input: `[]`,
			check: func(t *testing.T, days []schema.Day) { assert.Empty(t, days) },
		},
		{
			name:  "missing segments key",
			input: `[{"date": "20130318"}]`,
			check: func(t *testing.T, days []schema.Day) { assert.False(t, days[0].HasTrace()) },
		},
		{
			name:  "empty segments is a trace",
			input: `[{"date": "20130318", "segments": []}]`,
			check: func(t *testing.T, days []schema.Day) {
				assert.True(t, days[0].HasTrace())
				assert.Empty(t, days[0].Segments)
			},
		},
		{
			name:  "partial location dropped",
			input: `[{"date": "20130318", "segments": [{"type": "place", "place": {"location": {"lat": 1}}}]}]`,
			check: func(t *testing.T, days []schema.Day) { assert.Nil(t, days[0].Segments[0].Location) },
		},
		{
			name:  "activity without track points",
			input: `[{"date": "20130318", "segments": [{"type": "move", "activities": [{}]}]}]`,
			check: func(t *testing.T, days []schema.Day) {
				require.Len(t, days[0].Segments[0].Activities, 1)
				assert.Nil(t, days[0].Segments[0].Activities[0].TrackPoints)
			},
		},
		{name: "not an array", input: `{"date": "20130318"}`, wantErr: true},
		{name: "truncated", input: `[{"date": `, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, days)
		})
	}
}
