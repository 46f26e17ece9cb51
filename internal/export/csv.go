package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rtm0/vsbasin/internal/vs"
)

// PointColumns is the header of iso-velocity surface files.
var PointColumns = []string{vs.ColLatitude, vs.ColLongitude, vs.ColDepth}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteFrameCSV writes f as CSV with a header row. Missing velocities are
// written as empty cells.
func WriteFrameCSV(w io.Writer, f vs.Frame) error {
	if err := vs.CheckSchema("csv", f.Columns); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return err
	}
	row := make([]string, len(vs.Schema))
	for _, r := range f.Records {
		row[0] = formatFloat(r.Latitude)
		row[1] = formatFloat(r.Longitude)
		row[2] = formatFloat(r.Depth)
		row[3] = ""
		if r.Vs.Valid {
			row[3] = formatFloat(r.Vs.Value)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFrameCSV reads a frame written by WriteFrameCSV. The header must match
// vs.Schema.
func ReadFrameCSV(r io.Reader) (vs.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return vs.Frame{}, fmt.Errorf("csv: missing header")
		}
		return vs.Frame{}, err
	}
	if err := vs.CheckSchema("csv", header); err != nil {
		return vs.Frame{}, err
	}
	f := vs.NewFrame(vs.RecordSet{})
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return vs.Frame{}, err
		}
		if len(row) != len(vs.Schema) {
			line, _ := cr.FieldPos(0)
			return vs.Frame{}, fmt.Errorf("line %d: %w", line, &vs.ShapeError{Op: "csv", Want: len(vs.Schema), Got: len(row)})
		}
		var rec vs.Record
		dst := []*float64{&rec.Latitude, &rec.Longitude, &rec.Depth}
		for i, p := range dst {
			if *p, err = strconv.ParseFloat(row[i], 64); err != nil {
				return vs.Frame{}, fmt.Errorf("csv: %w", err)
			}
		}
		if row[3] != "" {
			v, err := strconv.ParseFloat(row[3], 64)
			if err != nil {
				return vs.Frame{}, fmt.Errorf("csv: %w", err)
			}
			rec.Vs = vs.Observed(v)
		}
		f.Records = append(f.Records, rec)
	}
	return f, nil
}

// WritePointsCSV writes an iso-velocity surface as CSV.
func WritePointsCSV(w io.Writer, pts []vs.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PointColumns); err != nil {
		return err
	}
	for _, p := range pts {
		if err := cw.Write([]string{formatFloat(p.Latitude), formatFloat(p.Longitude), formatFloat(p.Depth)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFrameCSVFile(path string, f vs.Frame) error {
	return createWith(path, func(w io.Writer) error { return WriteFrameCSV(w, f) })
}

func writePointsCSVFile(path string, pts []vs.Point) error {
	return createWith(path, func(w io.Writer) error { return WritePointsCSV(w, pts) })
}

// ReadFrameCSVFile reads a CSV frame from path.
func ReadFrameCSVFile(path string) (vs.Frame, error) {
	var f vs.Frame
	err := openWith(path, func(r io.Reader) error {
		var err error
		f, err = ReadFrameCSV(r)
		return err
	})
	return f, err
}
