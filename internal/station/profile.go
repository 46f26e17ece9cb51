package station

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMalformed is returned for station files that cannot be parsed.
	ErrMalformed = errors.New("station: malformed profile")

	// ErrEmptyProfile is returned for station files without depth samples.
	ErrEmptyProfile = errors.New("station: profile has no samples")
)

// Profile is the velocity profile measured at one station. Depths keep the
// sign used in the file (positive down).
type Profile struct {
	Path       string
	Latitude   float64
	Longitude  float64
	Depths     []float64
	Velocities []float64
}

// Len returns the number of depth samples.
func (p *Profile) Len() int {
	return len(p.Depths)
}

// ReadProfile reads a station file. The first line holds the station
// longitude and latitude, each following line a depth and a velocity.
func ReadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := parseProfile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

func parseProfile(r io.Reader) (*Profile, error) {
	p := &Profile{}
	sc := bufio.NewScanner(r)
	header := false
	line := 0
	for sc.Scan() {
		line++
		fields := splitFields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: want 2 fields, got %d", ErrMalformed, line, len(fields))
		}
		a, err := parseFloat(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		b, err := parseFloat(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if !header {
			p.Longitude, p.Latitude = a, b
			header = true
			continue
		}
		p.Depths = append(p.Depths, a)
		p.Velocities = append(p.Velocities, b)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !header {
		return nil, fmt.Errorf("%w: missing coordinate line", ErrMalformed)
	}
	if len(p.Depths) == 0 {
		return nil, ErrEmptyProfile
	}
	return p, nil
}

// splitFields splits a line on whitespace and commas. Anything after '#' is a
// comment.
func splitFields(s string) []string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}
