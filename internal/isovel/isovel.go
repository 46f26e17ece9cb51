// Package isovel computes iso-velocity surfaces: for each station, the depth
// at which the shear-wave velocity reaches a given value.
package isovel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/rtm0/vsbasin/internal/station"
	"github.com/rtm0/vsbasin/internal/vs"
)

// DepthScale converts profile depths (km) into grid depth units (m).
const DepthScale = 1000

// ErrNotMonotonic is returned for profiles whose velocity decreases with
// depth, which makes the depth of a velocity ambiguous.
var ErrNotMonotonic = errors.New("isovel: velocity decreases with depth")

// Depth returns the depth at which p reaches velocity target by linear
// interpolation between samples. Targets outside the profile's velocity
// range yield the shallowest or deepest sample depth.
//
// A run of equal velocities (a constant layer) is a jump: the interval below
// it ends at the layer top, the velocity itself maps to the layer bottom.
func Depth(p *station.Profile, target float64) (float64, error) {
	n := p.Len()
	if n == 0 {
		return 0, station.ErrEmptyProfile
	}
	if target < p.Velocities[0] {
		return p.Depths[0], nil
	}
	xs := make([]float64, 0, n+1)
	ys := make([]float64, 0, n+1)
	for i := 0; i < n; {
		v := p.Velocities[i]
		j := i
		for j+1 < n && p.Velocities[j+1] == v {
			j++
		}
		m := len(xs)
		if m > 0 && v < xs[m-1] {
			return 0, fmt.Errorf("%w: sample %d (%v after %v)", ErrNotMonotonic, i, v, xs[m-1])
		}
		if top := p.Depths[i]; top != p.Depths[j] {
			if below := math.Nextafter(v, math.Inf(-1)); m == 0 || below > xs[m-1] {
				xs = append(xs, below)
				ys = append(ys, top)
			}
		}
		xs = append(xs, v)
		ys = append(ys, p.Depths[j])
		i = j + 1
	}
	if len(xs) == 1 {
		return ys[0], nil
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return 0, err
	}
	return pl.Predict(target), nil
}

// Extract returns one iso-velocity point per station file, in input order.
func Extract(paths []string, target float64) ([]vs.Point, error) {
	const op = "iso-velocity"
	if len(paths) == 0 {
		return nil, vs.InvalidKind(op, "want a non-empty collection of station files")
	}
	if err := vs.CheckFinite(op, "velocity", target); err != nil {
		return nil, err
	}
	pts := make([]vs.Point, 0, len(paths))
	for _, path := range paths {
		p, err := station.ReadProfile(path)
		if err != nil {
			return nil, err
		}
		d, err := Depth(p, target)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		pts = append(pts, vs.Point{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Depth:     d * DepthScale,
		})
	}
	return pts, nil
}

// Surfaces extracts one surface per target velocity.
func Surfaces(paths []string, targets []float64) (map[float64][]vs.Point, error) {
	if len(targets) == 0 {
		return nil, vs.InvalidKind("iso-velocity", "want at least one target velocity")
	}
	out := make(map[float64][]vs.Point, len(targets))
	for _, v := range targets {
		pts, err := Extract(paths, v)
		if err != nil {
			return nil, err
		}
		out[v] = pts
	}
	return out, nil
}
