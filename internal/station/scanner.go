package station

import (
	"github.com/rtm0/vsbasin/internal/vs"
)

// Scanner retrieves velocity records from station files one station at a
// time.
type Scanner struct {
	paths   []string
	pos     int
	samples int
	recs    vs.RecordSet
	err     error
}

// NewScanner creates a new scanner over the given station files.
func NewScanner(paths []string) (*Scanner, error) {
	if len(paths) == 0 {
		return nil, vs.InvalidKind("station scanner", "want a non-empty collection of station files")
	}
	return &Scanner{paths: paths}, nil
}

// Summary returns the summary information about the scan suitable for
// logging.
func (s *Scanner) Summary() []any {
	return []any{
		"stations", len(s.paths),
		"scanned", s.pos,
		"samples", s.samples,
	}
}

// Scan reads all records of the next station. It returns false when every
// station has been read or an error occurred.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.pos >= len(s.paths) {
		return false
	}
	p, err := ReadProfile(s.paths[s.pos])
	if err != nil {
		s.err = err
		return false
	}

	s.recs = make(vs.RecordSet, p.Len())
	for i := range s.recs {
		s.recs[i].Latitude = p.Latitude
		s.recs[i].Longitude = p.Longitude
		s.recs[i].Depth = -p.Depths[i]
		s.recs[i].Vs = vs.Observed(p.Velocities[i])
	}
	s.samples += p.Len()
	s.pos++
	return true
}

// Records returns the records that have been read by the last Scan() operation.
// The function transfers ownership of records to the caller and the subsequent
// calls to this function without prior invocation of Scan() will return nil.
func (s *Scanner) Records() vs.RecordSet {
	recs := s.recs
	s.recs = nil
	return recs
}

// Err returns the first error encountered by Scan.
func (s *Scanner) Err() error {
	return s.err
}

// Load reads every station file and concatenates their records in input
// order. Depths are negated so that deeper samples have smaller values.
func Load(paths []string) (vs.RecordSet, error) {
	s, err := NewScanner(paths)
	if err != nil {
		return nil, err
	}
	var all vs.RecordSet
	for s.Scan() {
		all = append(all, s.Records()...)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return all, nil
}
