package export

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rtm0/vsbasin/internal/vs"
)

// WriteFrameMsgpack writes a binary snapshot of f.
func WriteFrameMsgpack(w io.Writer, f vs.Frame) error {
	if err := vs.CheckSchema("msgpack", f.Columns); err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(f)
}

// ReadFrameMsgpack reads a snapshot written by WriteFrameMsgpack.
func ReadFrameMsgpack(r io.Reader) (vs.Frame, error) {
	var f vs.Frame
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return vs.Frame{}, err
	}
	if err := vs.CheckSchema("msgpack", f.Columns); err != nil {
		return vs.Frame{}, err
	}
	return f, nil
}

func writeFrameMsgpackFile(path string, f vs.Frame) error {
	return createWith(path, func(w io.Writer) error { return WriteFrameMsgpack(w, f) })
}

func writePointsMsgpackFile(path string, pts []vs.Point) error {
	return createWith(path, func(w io.Writer) error { return msgpack.NewEncoder(w).Encode(pts) })
}
