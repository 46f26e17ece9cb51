package vs

import "slices"

// Column names of the velocity table consumed by plotting tools.
const (
	ColLatitude  = "Latitude"
	ColLongitude = "Longitude"
	ColDepth     = "Depth"
	ColVs        = "Vs"
)

// Schema is the exact column layout of every Frame produced by this module.
var Schema = []string{ColLatitude, ColLongitude, ColDepth, ColVs}

// Frame is a named-column velocity table. Regular grids and cross-sections
// are both frames laid out as Schema.
type Frame struct {
	Columns []string  `msgpack:"columns"`
	Records RecordSet `msgpack:"records"`
}

// NewFrame returns a frame with the standard schema.
func NewFrame(rs RecordSet) Frame {
	return Frame{Columns: slices.Clone(Schema), Records: rs}
}

// CheckSchema verifies that columns are exactly Schema.
func CheckSchema(op string, columns []string) error {
	if len(columns) != len(Schema) {
		return &ShapeError{Op: op, Want: len(Schema), Got: len(columns)}
	}
	if !slices.Equal(columns, Schema) {
		return &SchemaError{Op: op, Want: slices.Clone(Schema), Got: slices.Clone(columns)}
	}
	return nil
}

// Table is an untyped row-major numeric array, columns ordered latitude,
// longitude, depth, velocity. Columns may be nil.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Width returns the number of columns of the table. Rows of differing length
// are a shape error.
func (t Table) Width() (int, error) {
	w := len(t.Columns)
	if len(t.Rows) == 0 {
		return w, nil
	}
	if w == 0 {
		w = len(t.Rows[0])
	}
	for _, row := range t.Rows {
		if len(row) != w {
			return 0, &ShapeError{Op: "table", Want: w, Got: len(row)}
		}
	}
	return w, nil
}

// Records converts a four-column table into records. Every velocity in the
// table is treated as observed.
func (t Table) Records() (RecordSet, error) {
	w, err := t.Width()
	if err != nil {
		return nil, err
	}
	if w != len(Schema) {
		return nil, &ShapeError{Op: "table records", Want: len(Schema), Got: w}
	}
	rs := make(RecordSet, len(t.Rows))
	for i, row := range t.Rows {
		rs[i] = Record{
			Latitude:  row[0],
			Longitude: row[1],
			Depth:     row[2],
			Vs:        Observed(row[3]),
		}
	}
	return rs, nil
}
