package vs_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/vsbasin/internal/vs"
)

func TestAxesOfSortsAndCollapses(t *testing.T) {
	rs := vs.RecordSet{
		{Latitude: -6.3, Longitude: 106.9, Depth: -0.2, Vs: vs.Observed(1.1)},
		{Latitude: -6.5, Longitude: 106.7, Depth: 0, Vs: vs.Observed(0.4)},
		{Latitude: -6.3, Longitude: 106.7, Depth: -0.1, Vs: vs.Observed(0.9)},
		{Latitude: -6.5, Longitude: 106.9, Depth: -0.2, Vs: vs.Observed(1.0)},
	}
	a := vs.AxesOf(rs)
	assert.Equal(t, []float64{-6.5, -6.3}, a.Latitudes)
	assert.Equal(t, []float64{106.7, 106.9}, a.Longitudes)
	assert.Equal(t, []float64{-0.2, -0.1, 0}, a.Depths)
	assert.Equal(t, 12, a.Cells())
}

func TestAxesOfNegativeZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	rs := vs.RecordSet{{Depth: negZero}, {Depth: 0}}
	assert.Len(t, vs.AxesOf(rs).Depths, 1)
}

func TestTableAxes(t *testing.T) {
	tbl := vs.Table{Rows: [][]float64{
		{2, 1, -5},
		{1, 1, -5},
		{2, 3, -1},
	}}
	a, err := tbl.Axes()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, a.Latitudes)
	assert.Equal(t, []float64{1, 3}, a.Longitudes)
	assert.Equal(t, []float64{-5, -1}, a.Depths)

	_, err = vs.Table{Rows: [][]float64{{1, 2}}}.Axes()
	var se *vs.ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "too few", se.Direction())
	assert.True(t, errors.Is(err, vs.ErrShape))
}

func TestTableRecords(t *testing.T) {
	rs, err := vs.Table{Rows: [][]float64{{1, 2, -3, 0.5}}}.Records()
	require.NoError(t, err)
	assert.Equal(t, vs.RecordSet{{Latitude: 1, Longitude: 2, Depth: -3, Vs: vs.Observed(0.5)}}, rs)

	tests := []struct {
		name string
		rows [][]float64
		dir  string
	}{
		{"too few", [][]float64{{1, 2, 3}}, "too few"},
		{"too many", [][]float64{{1, 2, 3, 4, 5}}, "too many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vs.Table{Rows: tt.rows}.Records()
			var se *vs.ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.dir, se.Direction())
		})
	}
}

func TestTableRagged(t *testing.T) {
	_, err := vs.Table{Rows: [][]float64{{1, 2, 3, 4}, {1, 2}}}.Width()
	assert.ErrorIs(t, err, vs.ErrShape)
}

func TestCheckSchema(t *testing.T) {
	require.NoError(t, vs.CheckSchema("op", vs.Schema))

	err := vs.CheckSchema("op", []string{"Latitude", "Longitude", "Depth"})
	assert.ErrorIs(t, err, vs.ErrShape)
	assert.NotErrorIs(t, err, vs.ErrSchema)

	err = vs.CheckSchema("op", []string{"Longitude", "Latitude", "Depth", "Vs"})
	assert.ErrorIs(t, err, vs.ErrSchema)
	assert.Contains(t, err.Error(), "Longitude, Latitude")
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, vs.CheckFinite("op", "x", 1.5))
	err := vs.CheckFinite("op", "x", math.Inf(1))
	assert.ErrorIs(t, err, vs.ErrInvalidInputKind)
}

func TestRecordSetObserved(t *testing.T) {
	rs := vs.RecordSet{{Vs: vs.Observed(1)}, {}, {Vs: vs.Observed(0)}}
	assert.Equal(t, 2, rs.Observed())
	assert.Equal(t, vs.Key{Latitude: 1, Longitude: 2, Depth: 3},
		vs.Record{Latitude: 1, Longitude: 2, Depth: 3}.Key())
}
