package section

import (
	"slices"

	"github.com/rtm0/vsbasin/internal/vs"
)

// Direction selects a diagonal through the grid.
type Direction int

const (
	// NortheastSouthwest pairs ascending latitudes with ascending longitudes.
	NortheastSouthwest Direction = iota
	// NorthwestSoutheast pairs descending latitudes with ascending longitudes.
	NorthwestSoutheast
)

func (d Direction) String() string {
	switch d {
	case NortheastSouthwest:
		return "NE-SW"
	case NorthwestSoutheast:
		return "NW-SE"
	}
	return "unknown"
}

// Pair is a (latitude, longitude) station position on a diagonal.
type Pair struct {
	Latitude, Longitude float64
}

// DiagonalPairs pairs the k-th latitude with the k-th longitude of axes. When
// the axes differ in length the tail of the longer one is dropped.
func DiagonalPairs(axes vs.Axes, dir Direction) []Pair {
	la := slices.Clone(axes.Latitudes)
	if dir == NorthwestSoutheast {
		slices.Reverse(la)
	}
	lo := axes.Longitudes
	n := min(len(la), len(lo))
	pairs := make([]Pair, n)
	for k := range pairs {
		pairs[k] = Pair{Latitude: la[k], Longitude: lo[k]}
	}
	return pairs
}

// Diagonal returns the cells of f lying on the dir diagonal of the axes of
// src, the record set f was regularized from.
func Diagonal(src vs.RecordSet, f vs.Frame, dir Direction) (vs.Frame, error) {
	if err := vs.CheckSchema(dir.String()+" section", f.Columns); err != nil {
		return vs.Frame{}, err
	}
	on := map[Pair]bool{}
	for _, p := range DiagonalPairs(vs.AxesOf(src), dir) {
		on[p] = true
	}
	return filter(f, func(r vs.Record) bool {
		return on[Pair{r.Latitude, r.Longitude}]
	}), nil
}

// DiagonalTable is Diagonal with the source given as a four-column table.
func DiagonalTable(src vs.Table, f vs.Frame, dir Direction) (vs.Frame, error) {
	w, err := src.Width()
	if err != nil {
		return vs.Frame{}, err
	}
	if w != len(vs.Schema) {
		return vs.Frame{}, &vs.ShapeError{Op: dir.String() + " section", Want: len(vs.Schema), Got: w}
	}
	rs, err := src.Records()
	if err != nil {
		return vs.Frame{}, err
	}
	return Diagonal(rs, f, dir)
}

// NortheastSouthwestSection returns the NE-SW diagonal of f.
func NortheastSouthwestSection(src vs.RecordSet, f vs.Frame) (vs.Frame, error) {
	return Diagonal(src, f, NortheastSouthwest)
}

// NorthwestSoutheastSection returns the NW-SE diagonal of f.
func NorthwestSoutheastSection(src vs.RecordSet, f vs.Frame) (vs.Frame, error) {
	return Diagonal(src, f, NorthwestSoutheast)
}
