package isovel_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/vsbasin/internal/isovel"
	"github.com/rtm0/vsbasin/internal/station"
	"github.com/rtm0/vsbasin/internal/vs"
)

func writeStation(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// linear is a station whose velocity rises from 1.0 to 3.0 km/s between
// depth 0 and 100.
func linear(t *testing.T) string {
	return writeStation(t, t.TempDir(), "linear.dat",
		"106.8 -6.3",
		"0 1.0",
		"100 3.0",
	)
}

func TestExtractInterpolates(t *testing.T) {
	path := linear(t)
	tests := []struct {
		name   string
		target float64
		want   float64
	}{
		{"inside", 2.0, 50000},
		{"below range", 0.5, 0},
		{"above range", 4.0, 100000},
		{"at top", 1.0, 0},
		{"at bottom", 3.0, 100000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := isovel.Extract([]string{path}, tt.target)
			require.NoError(t, err)
			require.Len(t, pts, 1)
			assert.Equal(t, -6.3, pts[0].Latitude)
			assert.Equal(t, 106.8, pts[0].Longitude)
			assert.InDelta(t, tt.want, pts[0].Depth, 1e-9)
		})
	}
}

func TestExtractKeepsDepthSign(t *testing.T) {
	dir := t.TempDir()
	a := writeStation(t, dir, "a.dat", "106.7 -6.4", "0 0.2", "0.01 0.3", "0.03 0.7")
	b := writeStation(t, dir, "b.dat", "106.9 -6.2", "0 0.1", "0.02 0.5")

	pts, err := isovel.Extract([]string{a, b}, 0.5)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, -6.4, pts[0].Latitude)
	assert.Equal(t, 106.7, pts[0].Longitude)
	assert.InDelta(t, 20, pts[0].Depth, 1e-9)
	assert.Equal(t, -6.2, pts[1].Latitude)
	assert.Equal(t, 106.9, pts[1].Longitude)
	assert.InDelta(t, 20, pts[1].Depth, 1e-9)
}

func TestExtractInvalidInput(t *testing.T) {
	path := linear(t)
	_, err := isovel.Extract(nil, 1.0)
	assert.ErrorIs(t, err, vs.ErrInvalidInputKind)
	_, err = isovel.Extract([]string{path}, math.NaN())
	assert.ErrorIs(t, err, vs.ErrInvalidInputKind)

	bad := writeStation(t, t.TempDir(), "bad.dat", "106.8 -6.3")
	_, err = isovel.Extract([]string{path, bad}, 1.0)
	assert.ErrorIs(t, err, station.ErrEmptyProfile)
}

func TestDepth(t *testing.T) {
	one := &station.Profile{Depths: []float64{0.04}, Velocities: []float64{0.8}}
	d, err := isovel.Depth(one, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 0.04, d)

	inversion := &station.Profile{
		Depths:     []float64{0, 0.01, 0.02},
		Velocities: []float64{0.3, 0.6, 0.5},
	}
	_, err = isovel.Depth(inversion, 0.55)
	assert.ErrorIs(t, err, isovel.ErrNotMonotonic)

	_, err = isovel.Depth(&station.Profile{}, 1)
	assert.ErrorIs(t, err, station.ErrEmptyProfile)
}

func TestDepthConstantLayers(t *testing.T) {
	ramp := &station.Profile{
		Depths:     []float64{0, 0.1, 0.2, 0.3},
		Velocities: []float64{1.0, 2.0, 2.0, 3.0},
	}
	steps := &station.Profile{
		Depths:     []float64{0, 0.01, 0.01, 0.03, 0.03, 0.06},
		Velocities: []float64{0.2, 0.2, 0.5, 0.5, 0.8, 0.8},
	}
	flat := &station.Profile{
		Depths:     []float64{0.02, 0.05},
		Velocities: []float64{0.4, 0.4},
	}
	tests := []struct {
		name   string
		p      *station.Profile
		target float64
		want   float64
	}{
		{"past the layer", ramp, 2.5, 0.25},
		{"on the layer", ramp, 2.0, 0.2},
		{"into the layer", ramp, 1.5, 0.05},
		{"above the top layer", steps, 0.1, 0},
		{"on the top layer", steps, 0.2, 0.01},
		{"between steps", steps, 0.35, 0.01},
		{"on a middle step", steps, 0.5, 0.03},
		{"between lower steps", steps, 0.65, 0.03},
		{"below the last step", steps, 1.0, 0.06},
		{"flat shallow", flat, 0.3, 0.02},
		{"flat deep", flat, 0.4, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := isovel.Depth(tt.p, tt.target)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, d, 1e-12)
		})
	}
}

func TestExtractConstantLayer(t *testing.T) {
	path := writeStation(t, t.TempDir(), "layered.dat",
		"106.8 -6.3", "0 1.0", "0.1 2.0", "0.2 2.0", "0.3 3.0")
	pts, err := isovel.Extract([]string{path}, 2.5)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.InDelta(t, 250, pts[0].Depth, 1e-9)
}

func TestSurfaces(t *testing.T) {
	path := linear(t)
	s, err := isovel.Surfaces([]string{path}, []float64{1.5, 2.5})
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.InDelta(t, 25000, s[1.5][0].Depth, 1e-9)
	assert.InDelta(t, 75000, s[2.5][0].Depth, 1e-9)

	_, err = isovel.Surfaces([]string{path}, nil)
	assert.ErrorIs(t, err, vs.ErrInvalidInputKind)
}
