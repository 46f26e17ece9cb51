package station_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/vsbasin/internal/station"
	"github.com/rtm0/vsbasin/internal/vs"
)

func writeStation(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestReadProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeStation(t, dir, "st01.dat",
		"106.80 -6.30",
		"0.000 0.250",
		"",
		"0.010\t0.310 # weathered layer",
		"0.025,0.480",
	)
	p, err := station.ReadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path)
	assert.Equal(t, 106.80, p.Longitude)
	assert.Equal(t, -6.30, p.Latitude)
	assert.Equal(t, []float64{0, 0.010, 0.025}, p.Depths)
	assert.Equal(t, []float64{0.250, 0.310, 0.480}, p.Velocities)
	assert.Equal(t, 3, p.Len())
}

func TestReadProfileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{"header only", []string{"106.8 -6.3"}, station.ErrEmptyProfile},
		{"short header", []string{"106.8", "0 1"}, station.ErrMalformed},
		{"label", []string{"106.8 -6.3", "top 1"}, station.ErrMalformed},
		{"nan velocity", []string{"106.8 -6.3", "0 NaN"}, station.ErrMalformed},
		{"empty", []string{""}, station.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeStation(t, dir, tt.name+".dat", tt.lines...)
			_, err := station.ReadProfile(path)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), path)
		})
	}

	_, err := station.ReadProfile(filepath.Join(dir, "missing.dat"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConcatenatesStations(t *testing.T) {
	dir := t.TempDir()
	a := writeStation(t, dir, "a.dat", "106.7 -6.4", "0 0.2", "0.01 0.3", "0.02 0.4")
	b := writeStation(t, dir, "b.dat", "106.9 -6.2", "0 0.25", "0.015 0.35")

	rs, err := station.Load([]string{a, b})
	require.NoError(t, err)
	require.Len(t, rs, 5)
	for _, r := range rs[:3] {
		assert.Equal(t, -6.4, r.Latitude)
		assert.Equal(t, 106.7, r.Longitude)
	}
	for _, r := range rs[3:] {
		assert.Equal(t, -6.2, r.Latitude)
		assert.Equal(t, 106.9, r.Longitude)
	}
	assert.Equal(t, -0.02, rs[2].Depth)
	assert.Equal(t, vs.Observed(0.4), rs[2].Vs)
	assert.Equal(t, -0.015, rs[4].Depth)
}

func TestLoadNoDeduplication(t *testing.T) {
	dir := t.TempDir()
	a := writeStation(t, dir, "a.dat", "106.7 -6.4", "0 0.2", "0.01 0.3")
	rs, err := station.Load([]string{a, a})
	require.NoError(t, err)
	assert.Len(t, rs, 4)
}

func TestLoadInvalidInput(t *testing.T) {
	_, err := station.Load(nil)
	assert.ErrorIs(t, err, vs.ErrInvalidInputKind)

	dir := t.TempDir()
	good := writeStation(t, dir, "good.dat", "106.7 -6.4", "0 0.2")
	bad := writeStation(t, dir, "bad.dat", "106.7 -6.4")
	_, err = station.Load([]string{good, bad})
	assert.ErrorIs(t, err, station.ErrEmptyProfile)
}

func TestScannerRecordsOwnership(t *testing.T) {
	dir := t.TempDir()
	a := writeStation(t, dir, "a.dat", "106.7 -6.4", "0 0.2", "0.01 0.3")
	s, err := station.NewScanner([]string{a})
	require.NoError(t, err)
	require.True(t, s.Scan())
	assert.Len(t, s.Records(), 2)
	assert.Nil(t, s.Records())
	assert.False(t, s.Scan())
	require.NoError(t, s.Err())
	assert.Equal(t, []any{"stations", 1, "scanned", 1, "samples", 2}, s.Summary())
}
