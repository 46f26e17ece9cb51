// Package export writes velocity frames and iso-velocity surfaces to files
// that plotting tools can read.
package export

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/rtm0/vsbasin/internal/vs"
)

// Exporter writes frames and surfaces into a directory in one of the
// supported formats.
type Exporter struct {
	logger *slog.Logger
	dir    string
	prefix string
	format format
}

const prefixRE = "^[a-zA-Z0-9_-]+$"

type format struct {
	ext         string
	writeFrame  func(path string, f vs.Frame) error
	writePoints func(path string, pts []vs.Point) error
}

var formats = map[string]format{
	"csv":     {".csv", writeFrameCSVFile, writePointsCSVFile},
	"msgpack": {".msgpack", writeFrameMsgpackFile, writePointsMsgpackFile},
	"netcdf":  {".nc", WriteFrameNetCDF, WritePointsNetCDF},
}

// Formats returns the names of the supported output formats.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewExporter creates a new exporter writing files named <prefix>_<name>
// into dir.
func NewExporter(logger *slog.Logger, dir, prefix, formatName string) (*Exporter, error) {
	matches, err := regexp.MatchString(prefixRE, prefix)
	if err != nil {
		return nil, err
	}
	if !matches {
		return nil, fmt.Errorf("file prefix %q does not match %q regular expression", prefix, prefixRE)
	}

	f, ok := formats[formatName]
	if !ok {
		return nil, fmt.Errorf("exporting to %q is not supported, want one of %v", formatName, Formats())
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Exporter{
		logger: logger,
		dir:    dir,
		prefix: prefix,
		format: f,
	}, nil
}

func (e *Exporter) path(name string) string {
	return filepath.Join(e.dir, e.prefix+"_"+name+e.format.ext)
}

// Frame writes f and returns the path of the written file.
func (e *Exporter) Frame(name string, f vs.Frame) (string, error) {
	path := e.path(name)
	if err := e.format.writeFrame(path, f); err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	e.logger.Info("wrote frame", "path", path, "records", len(f.Records), "observed", f.Records.Observed())
	return path, nil
}

// Points writes an iso-velocity surface and returns the path of the written
// file.
func (e *Exporter) Points(name string, pts []vs.Point) (string, error) {
	path := e.path(name)
	if err := e.format.writePoints(path, pts); err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	e.logger.Info("wrote surface", "path", path, "points", len(pts))
	return path, nil
}

// createWith creates path and hands a buffered writer to write.
func createWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// openWith opens path and hands a buffered reader to read.
func openWith(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return read(bufio.NewReader(f))
}
