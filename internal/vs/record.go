package vs

import "math"

// Velocity is a shear-wave velocity reading in km/s that may be absent. The
// zero value is a missing reading.
type Velocity struct {
	Value float64 `msgpack:"v"`
	Valid bool    `msgpack:"ok"`
}

// Observed returns a present velocity reading.
func Observed(v float64) Velocity {
	return Velocity{Value: v, Valid: true}
}

// Record is a single velocity reading taken at a given geo location and depth.
type Record struct {
	// Dimensions
	Latitude  float64 `msgpack:"la"`
	Longitude float64 `msgpack:"lo"`
	Depth     float64 `msgpack:"d"` // negative down

	// Metrics
	Vs Velocity `msgpack:"vs"`
}

// Key identifies a grid cell.
type Key struct {
	Latitude, Longitude, Depth float64
}

// Key returns the record's coordinate key.
func (r Record) Key() Key {
	return Key{r.Latitude, r.Longitude, r.Depth}
}

// RecordSet is a sequence of records. Its natural key is the
// (Latitude, Longitude, Depth) triple.
type RecordSet []Record

// Observed returns the number of records carrying a velocity.
func (rs RecordSet) Observed() int {
	n := 0
	for _, r := range rs {
		if r.Vs.Valid {
			n++
		}
	}
	return n
}

// Point is one sample of an iso-velocity surface.
type Point struct {
	Latitude  float64 `msgpack:"la"`
	Longitude float64 `msgpack:"lo"`
	Depth     float64 `msgpack:"d"`
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CheckFinite returns ErrInvalidInputKind unless f is a real number.
func CheckFinite(op, what string, f float64) error {
	if !finite(f) {
		return InvalidKind(op, "%s must be a finite number, got %v", what, f)
	}
	return nil
}
