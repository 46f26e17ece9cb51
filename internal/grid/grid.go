// Package grid regularizes scattered velocity records onto the full
// latitude/longitude/depth grid spanned by their coordinates.
package grid

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rtm0/vsbasin/internal/vs"
)

// Regularize returns a frame holding one record for every combination of the
// latitudes, longitudes and depths present in rs, sorted by latitude, then
// longitude, then depth. Cells with a record in rs carry its velocity; when
// rs repeats a key the first record wins. All other cells are missing.
func Regularize(rs vs.RecordSet) vs.Frame {
	axes := vs.AxesOf(rs)
	nlo, nd := len(axes.Longitudes), len(axes.Depths)

	cells := make(vs.RecordSet, axes.Cells())
	k := 0
	for _, la := range axes.Latitudes {
		for _, lo := range axes.Longitudes {
			for _, d := range axes.Depths {
				cells[k] = vs.Record{Latitude: la, Longitude: lo, Depth: d}
				k++
			}
		}
	}

	seen := make([]bool, len(cells))
	for _, r := range rs {
		i, _ := slices.BinarySearch(axes.Latitudes, r.Latitude)
		j, _ := slices.BinarySearch(axes.Longitudes, r.Longitude)
		l, _ := slices.BinarySearch(axes.Depths, r.Depth)
		idx := (i*nlo+j)*nd + l
		if seen[idx] {
			continue
		}
		seen[idx] = true
		cells[idx].Vs = r.Vs
	}
	return vs.NewFrame(cells)
}

// RegularizeTable regularizes a four-column numeric table.
func RegularizeTable(t vs.Table) (vs.Frame, error) {
	w, err := t.Width()
	if err != nil {
		return vs.Frame{}, err
	}
	if w != len(vs.Schema) {
		return vs.Frame{}, &vs.ShapeError{Op: "regularize", Want: len(vs.Schema), Got: w}
	}
	rs, err := t.Records()
	if err != nil {
		return vs.Frame{}, err
	}
	return Regularize(rs), nil
}

// Summary returns the summary information about a frame suitable for
// logging.
func Summary(f vs.Frame) []any {
	axes := vs.AxesOf(f.Records)
	var v []float64
	for _, r := range f.Records {
		if r.Vs.Valid {
			v = append(v, r.Vs.Value)
		}
	}
	kv := []any{
		"laCnt", len(axes.Latitudes),
		"loCnt", len(axes.Longitudes),
		"depthCnt", len(axes.Depths),
		"cells", len(f.Records),
		"observed", len(v),
	}
	if len(v) > 0 {
		kv = append(kv,
			"vsMin", floats.Min(v),
			"vsMax", floats.Max(v),
			"vsMean", stat.Mean(v, nil),
		)
	}
	return kv
}
