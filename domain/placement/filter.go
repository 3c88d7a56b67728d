package placement

import (
	"fmt"
	"strings"
)

// Band is a btech percentage range used by the eligibility view
type Band string

const (
	BandNone  Band = ""
	Band9to10 Band = "9-10"
	Band8to9  Band = "8-9"
	Band7to8  Band = "7-8"
	Band6to7  Band = "6-7"
)

// Bands lists the named bands from highest to lowest
var Bands = []Band{Band9to10, Band8to9, Band7to8, Band6to7}

// ParseBand accepts a band name; empty means no band filter
func ParseBand(s string) (Band, error) {
	b := Band(strings.TrimSpace(s))
	if b == BandNone {
		return BandNone, nil
	}
	for _, known := range Bands {
		if b == known {
			return b, nil
		}
	}
	return BandNone, fmt.Errorf("unknown band %q", s)
}

// Bounds returns the half-open percentage range [lo, hi). The top band has no upper bound.
func (b Band) Bounds() (lo, hi float64, ok bool) {
	switch b {
	case Band9to10:
		return 90, 0, true
	case Band8to9:
		return 80, 90, true
	case Band7to8:
		return 70, 80, true
	case Band6to7:
		return 60, 70, true
	}
	return 0, 0, false
}

// Contains reports whether pct falls in the band. BandNone contains everything.
func (b Band) Contains(pct float64) bool {
	lo, hi, ok := b.Bounds()
	if !ok {
		return true
	}
	if pct < lo {
		return false
	}
	return b == Band9to10 || pct < hi
}

// StudentFilter is the one predicate every student listing goes through.
// Zero-valued fields do not filter.
type StudentFilter struct {
	Search        string
	Statuses      []string
	Branch        string
	Band          Band
	MinPercentage *float64
}

// Matches reports whether s passes every set criterion
func (f StudentFilter) Matches(s Student) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.RollNo), q) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !containsString(f.Statuses, s.Status) {
		return false
	}
	if f.Branch != "" && s.Branch != f.Branch {
		return false
	}
	if !f.Band.Contains(s.BtechPercentage) {
		return false
	}
	if f.MinPercentage != nil && s.BtechPercentage < *f.MinPercentage {
		return false
	}
	return true
}

// FilterStudents returns the students matching f, preserving order
func FilterStudents(students []Student, f StudentFilter) []Student {
	out := make([]Student, 0, len(students))
	for _, s := range students {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// FilterCompanies does a case-insensitive substring match on the company name
func FilterCompanies(companies []Company, search string) []Company {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]Company, 0, len(companies))
	for _, c := range companies {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// Eligible reports whether the student meets threshold
func Eligible(s Student, threshold float64) bool {
	return s.BtechPercentage >= threshold
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
