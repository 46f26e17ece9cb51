// Package section extracts two-dimensional cross-sections from a regular
// velocity grid. Every section drops cells without a velocity.
package section

import (
	"strconv"
	"strings"

	"github.com/rtm0/vsbasin/internal/vs"
)

// ParseCoordinate parses a coordinate given on the command line. Labels such
// as "north" are rejected with vs.ErrInvalidInputKind.
func ParseCoordinate(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, vs.InvalidKind("coordinate", "number required, got %q", s)
	}
	if err := vs.CheckFinite("coordinate", "coordinate", f); err != nil {
		return 0, err
	}
	return f, nil
}

// NorthSouth returns the cells of f at constant longitude lon.
func NorthSouth(f vs.Frame, lon float64) (vs.Frame, error) {
	const op = "north-south section"
	if err := vs.CheckSchema(op, f.Columns); err != nil {
		return vs.Frame{}, err
	}
	if err := vs.CheckFinite(op, "longitude", lon); err != nil {
		return vs.Frame{}, err
	}
	return filter(f, func(r vs.Record) bool { return r.Longitude == lon }), nil
}

// EastWest returns the cells of f at constant latitude lat.
func EastWest(f vs.Frame, lat float64) (vs.Frame, error) {
	const op = "east-west section"
	if err := vs.CheckSchema(op, f.Columns); err != nil {
		return vs.Frame{}, err
	}
	if err := vs.CheckFinite(op, "latitude", lat); err != nil {
		return vs.Frame{}, err
	}
	return filter(f, func(r vs.Record) bool { return r.Latitude == lat }), nil
}

func filter(f vs.Frame, keep func(vs.Record) bool) vs.Frame {
	out := vs.RecordSet{}
	for _, r := range f.Records {
		if r.Vs.Valid && keep(r) {
			out = append(out, r)
		}
	}
	return vs.NewFrame(out)
}
