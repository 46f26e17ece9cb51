package export

import (
	"errors"
	"fmt"
	"slices"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"

	"github.com/rtm0/vsbasin/internal/vs"
)

// ErrNotRegular is returned when a frame that must be a regular grid is not.
var ErrNotRegular = errors.New("export: frame is not a regular grid")

// Variable and dimension names of grid files.
const (
	ncLatitude  = "latitude"
	ncLongitude = "longitude"
	ncDepth     = "depth"
	ncVs        = "vs"
	ncObserved  = "observed"
	ncStation   = "station"
	ncRecord    = "record"
)

// WriteFrameNetCDF writes f with WriteGridNetCDF when it covers every cell of
// its axes exactly once, and with WriteRecordsNetCDF otherwise.
func WriteFrameNetCDF(path string, f vs.Frame) error {
	if err := vs.CheckSchema("netcdf", f.Columns); err != nil {
		return err
	}
	if regular(f.Records) {
		return WriteGridNetCDF(path, f)
	}
	return WriteRecordsNetCDF(path, f)
}

func regular(rs vs.RecordSet) bool {
	if len(rs) == 0 || len(rs) != vs.AxesOf(rs).Cells() {
		return false
	}
	seen := make(map[vs.Key]struct{}, len(rs))
	for _, r := range rs {
		if _, ok := seen[r.Key()]; ok {
			return false
		}
		seen[r.Key()] = struct{}{}
	}
	return true
}

// ReadFrameNetCDF reads a file written by WriteGridNetCDF or
// WriteRecordsNetCDF, telling the layouts apart by the shape of vs.
func ReadFrameNetCDF(path string) (vs.Frame, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return vs.Frame{}, err
	}
	defer nc.Close()
	vg, err := nc.GetVarGetter(ncVs)
	if err != nil {
		return vs.Frame{}, fmt.Errorf("netcdf var %s: %w", ncVs, err)
	}
	v, err := vg.Values()
	if err != nil {
		return vs.Frame{}, fmt.Errorf("netcdf var %s: %w", ncVs, err)
	}
	switch v.(type) {
	case [][][]float64:
		return readGrid(nc)
	case []float64:
		return readRecords(nc)
	}
	return vs.Frame{}, fmt.Errorf("netcdf var %s: unexpected type %T", ncVs, v)
}

// WriteGridNetCDF writes a regular grid as a NetCDF classic file. Velocities
// are stored as a [latitude][longitude][depth] variable next to an observed
// mask of the same shape; unobserved cells hold 0 in vs and 0 in observed.
func WriteGridNetCDF(path string, f vs.Frame) error {
	if err := vs.CheckSchema("netcdf", f.Columns); err != nil {
		return err
	}
	axes := vs.AxesOf(f.Records)
	if len(f.Records) == 0 || len(f.Records) != axes.Cells() {
		return fmt.Errorf("%w: %d records for %d cells", ErrNotRegular, len(f.Records), axes.Cells())
	}

	v := make([][][]float64, len(axes.Latitudes))
	obs := make([][][]int16, len(axes.Latitudes))
	for i := range v {
		v[i] = make([][]float64, len(axes.Longitudes))
		obs[i] = make([][]int16, len(axes.Longitudes))
		for j := range v[i] {
			v[i][j] = make([]float64, len(axes.Depths))
			obs[i][j] = make([]int16, len(axes.Depths))
		}
	}
	seen := make(map[vs.Key]bool, len(f.Records))
	for _, r := range f.Records {
		if seen[r.Key()] {
			return fmt.Errorf("%w: duplicate cell %v", ErrNotRegular, r.Key())
		}
		seen[r.Key()] = true
		i, _ := slices.BinarySearch(axes.Latitudes, r.Latitude)
		j, _ := slices.BinarySearch(axes.Longitudes, r.Longitude)
		k, _ := slices.BinarySearch(axes.Depths, r.Depth)
		if r.Vs.Valid {
			v[i][j][k] = r.Vs.Value
			obs[i][j][k] = 1
		}
	}

	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return err
	}
	dims := []string{ncLatitude, ncLongitude, ncDepth}
	vars := []struct {
		name string
		v    api.Variable
	}{
		{ncLatitude, api.Variable{Values: axes.Latitudes, Dimensions: []string{ncLatitude}}},
		{ncLongitude, api.Variable{Values: axes.Longitudes, Dimensions: []string{ncLongitude}}},
		{ncDepth, api.Variable{Values: axes.Depths, Dimensions: []string{ncDepth}}},
		{ncVs, api.Variable{Values: v, Dimensions: dims}},
		{ncObserved, api.Variable{Values: obs, Dimensions: dims}},
	}
	for _, nv := range vars {
		if err := cw.AddVar(nv.name, nv.v); err != nil {
			cw.Close()
			return fmt.Errorf("netcdf var %s: %w", nv.name, err)
		}
	}
	return cw.Close()
}

// ReadGridNetCDF reads a grid written by WriteGridNetCDF.
func ReadGridNetCDF(path string) (vs.Frame, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return vs.Frame{}, err
	}
	defer nc.Close()
	return readGrid(nc)
}

func readGrid(nc api.Group) (vs.Frame, error) {
	la, err := varValues[[]float64](nc, ncLatitude)
	if err != nil {
		return vs.Frame{}, err
	}
	lo, err := varValues[[]float64](nc, ncLongitude)
	if err != nil {
		return vs.Frame{}, err
	}
	d, err := varValues[[]float64](nc, ncDepth)
	if err != nil {
		return vs.Frame{}, err
	}
	v, err := varValues[[][][]float64](nc, ncVs)
	if err != nil {
		return vs.Frame{}, err
	}
	obs, err := varValues[[][][]int16](nc, ncObserved)
	if err != nil {
		return vs.Frame{}, err
	}

	recs := make(vs.RecordSet, 0, len(la)*len(lo)*len(d))
	for i := range la {
		for j := range lo {
			for k := range d {
				r := vs.Record{Latitude: la[i], Longitude: lo[j], Depth: d[k]}
				if obs[i][j][k] != 0 {
					r.Vs = vs.Observed(v[i][j][k])
				}
				recs = append(recs, r)
			}
		}
	}
	return vs.NewFrame(recs), nil
}

// WriteRecordsNetCDF writes any frame, sections included, as one variable
// per column along a record dimension, with the same observed mask as grid
// files.
func WriteRecordsNetCDF(path string, f vs.Frame) error {
	if err := vs.CheckSchema("netcdf", f.Columns); err != nil {
		return err
	}
	if len(f.Records) == 0 {
		return errors.New("netcdf: empty frame")
	}
	n := len(f.Records)
	la, lo, d, v := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	obs := make([]int16, n)
	for i, r := range f.Records {
		la[i], lo[i], d[i] = r.Latitude, r.Longitude, r.Depth
		if r.Vs.Valid {
			v[i], obs[i] = r.Vs.Value, 1
		}
	}
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return err
	}
	dims := []string{ncRecord}
	for _, nv := range []struct {
		name   string
		values any
	}{{ncLatitude, la}, {ncLongitude, lo}, {ncDepth, d}, {ncVs, v}, {ncObserved, obs}} {
		if err := cw.AddVar(nv.name, api.Variable{Values: nv.values, Dimensions: dims}); err != nil {
			cw.Close()
			return fmt.Errorf("netcdf var %s: %w", nv.name, err)
		}
	}
	return cw.Close()
}

// ReadRecordsNetCDF reads a frame written by WriteRecordsNetCDF.
func ReadRecordsNetCDF(path string) (vs.Frame, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return vs.Frame{}, err
	}
	defer nc.Close()
	return readRecords(nc)
}

func readRecords(nc api.Group) (vs.Frame, error) {
	cols := make([][]float64, 4)
	for c, name := range []string{ncLatitude, ncLongitude, ncDepth, ncVs} {
		var err error
		if cols[c], err = varValues[[]float64](nc, name); err != nil {
			return vs.Frame{}, err
		}
	}
	obs, err := varValues[[]int16](nc, ncObserved)
	if err != nil {
		return vs.Frame{}, err
	}
	recs := make(vs.RecordSet, len(obs))
	for i := range recs {
		recs[i] = vs.Record{Latitude: cols[0][i], Longitude: cols[1][i], Depth: cols[2][i]}
		if obs[i] != 0 {
			recs[i].Vs = vs.Observed(cols[3][i])
		}
	}
	return vs.NewFrame(recs), nil
}

// WritePointsNetCDF writes an iso-velocity surface as three variables along
// a station dimension.
func WritePointsNetCDF(path string, pts []vs.Point) error {
	if len(pts) == 0 {
		return errors.New("netcdf: empty surface")
	}
	la := make([]float64, len(pts))
	lo := make([]float64, len(pts))
	d := make([]float64, len(pts))
	for i, p := range pts {
		la[i], lo[i], d[i] = p.Latitude, p.Longitude, p.Depth
	}
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return err
	}
	for _, nv := range []struct {
		name string
		v    []float64
	}{{ncLatitude, la}, {ncLongitude, lo}, {ncDepth, d}} {
		err := cw.AddVar(nv.name, api.Variable{Values: nv.v, Dimensions: []string{ncStation}})
		if err != nil {
			cw.Close()
			return fmt.Errorf("netcdf var %s: %w", nv.name, err)
		}
	}
	return cw.Close()
}

// ReadPointsNetCDF reads a surface written by WritePointsNetCDF.
func ReadPointsNetCDF(path string) ([]vs.Point, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer nc.Close()
	cols := make([][]float64, 3)
	for c, name := range []string{ncLatitude, ncLongitude, ncDepth} {
		if cols[c], err = varValues[[]float64](nc, name); err != nil {
			return nil, err
		}
	}
	pts := make([]vs.Point, len(cols[0]))
	for i := range pts {
		pts[i] = vs.Point{Latitude: cols[0][i], Longitude: cols[1][i], Depth: cols[2][i]}
	}
	return pts, nil
}

func varValues[T any](nc api.Group, name string) (T, error) {
	var zero T
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return zero, fmt.Errorf("netcdf var %s: %w", name, err)
	}
	v, err := vg.Values()
	if err != nil {
		return zero, fmt.Errorf("netcdf var %s: %w", name, err)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("netcdf var %s: unexpected type %T", name, v)
	}
	return t, nil
}
