package vs

import "slices"

// Axes holds the distinct coordinate values of a record set, each sorted
// ascending.
type Axes struct {
	Latitudes  []float64
	Longitudes []float64
	Depths     []float64
}

// Cells returns the size of the Cartesian product of the axes.
func (a Axes) Cells() int {
	return len(a.Latitudes) * len(a.Longitudes) * len(a.Depths)
}

// AxesOf extracts the sorted unique latitudes, longitudes and depths of rs.
func AxesOf(rs RecordSet) Axes {
	la := make([]float64, len(rs))
	lo := make([]float64, len(rs))
	d := make([]float64, len(rs))
	for i, r := range rs {
		la[i] = r.Latitude
		lo[i] = r.Longitude
		d[i] = r.Depth
	}
	return Axes{
		Latitudes:  unique(la),
		Longitudes: unique(lo),
		Depths:     unique(d),
	}
}

// Axes extracts the sorted unique values of the first three columns of t.
func (t Table) Axes() (Axes, error) {
	w, err := t.Width()
	if err != nil {
		return Axes{}, err
	}
	if w < 3 {
		return Axes{}, &ShapeError{Op: "axes", Want: 3, Got: w, AtLeast: true}
	}
	cols := [3][]float64{}
	for c := range cols {
		cols[c] = make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			cols[c][i] = row[c]
		}
	}
	return Axes{
		Latitudes:  unique(cols[0]),
		Longitudes: unique(cols[1]),
		Depths:     unique(cols[2]),
	}, nil
}

// unique sorts s in place and drops repeated values. -0 and 0 collapse.
func unique(s []float64) []float64 {
	slices.Sort(s)
	return slices.Clip(slices.Compact(s))
}
