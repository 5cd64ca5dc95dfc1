// Package filter provides structured filtering, sorting and the combined
// search → filter → sort view over job applications.
package filter

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/job-tracker/internal/types"
)

// UnboundedSalary stands in for a missing upper salary bound.
const UnboundedSalary = math.MaxInt

// Spec describes the structured filters. Empty strings and types.All impose no
// constraint on the string fields; nil pointers impose none on the others.
type Spec struct {
	Status          types.Status          `json:"status,omitempty"`
	JobType         types.JobType         `json:"job_type,omitempty"`
	WorkMode        types.WorkMode        `json:"work_mode,omitempty"`
	ExperienceLevel types.ExperienceLevel `json:"experience_level,omitempty"`
	Priority        types.Priority        `json:"priority,omitempty"`
	Category        string                `json:"category,omitempty"`
	Location        string                `json:"location,omitempty"` // case-insensitive substring
	SalaryRange     *SalaryBounds         `json:"salary_range,omitempty"`
	DateRange       *DateRange            `json:"date_range,omitempty"`
	HasInterview    *bool                 `json:"has_interview,omitempty"`
	Archived        *bool                 `json:"archived,omitempty"`
}

// SalaryBounds is the requested salary interval. A zero Max means no upper bound.
type SalaryBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DateRange bounds the applied date, inclusive. Empty or unparsable ends are open.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsEmpty reports whether the spec imposes no constraint at all.
func (s Spec) IsEmpty() bool {
	return !set(string(s.Status)) &&
		!set(string(s.JobType)) &&
		!set(string(s.WorkMode)) &&
		!set(string(s.ExperienceLevel)) &&
		!set(string(s.Priority)) &&
		!set(s.Category) &&
		s.Location == "" &&
		s.SalaryRange == nil &&
		s.DateRange == nil &&
		s.HasInterview == nil &&
		s.Archived == nil
}

// Apply returns the records satisfying every predicate of spec, in input order.
func Apply(records []types.JobApplication, spec Spec) []types.JobApplication {
	if spec.IsEmpty() {
		return records
	}

	results := make([]types.JobApplication, 0, len(records))
	for i := range records {
		if spec.Matches(&records[i]) {
			results = append(results, records[i])
		}
	}
	return results
}

// Matches reports whether a single record satisfies spec.
func (s Spec) Matches(app *types.JobApplication) bool {
	if set(string(s.Status)) && app.Status != s.Status {
		return false
	}
	if set(string(s.JobType)) && app.JobType != s.JobType {
		return false
	}
	if set(string(s.WorkMode)) && app.WorkMode != s.WorkMode {
		return false
	}
	if set(string(s.ExperienceLevel)) && app.ExperienceLevel != s.ExperienceLevel {
		return false
	}
	if set(string(s.Priority)) && app.Priority != s.Priority {
		return false
	}
	if set(s.Category) && app.Category != s.Category {
		return false
	}
	if s.Location != "" && !strings.Contains(strings.ToLower(app.WorkLocation), strings.ToLower(s.Location)) {
		return false
	}
	if s.SalaryRange != nil && !s.SalaryRange.overlaps(app.SalaryRange) {
		return false
	}
	if s.DateRange != nil && !s.DateRange.contains(app.AppliedDate) {
		return false
	}
	if s.HasInterview != nil && app.HasInterview() != *s.HasInterview {
		return false
	}
	if s.Archived != nil && app.Archived != *s.Archived {
		return false
	}
	return true
}

func set(v string) bool {
	return v != "" && v != types.All
}

// overlaps treats a record without salary data as unbounded. A bound that is
// present but unparsable fails the filter.
func (b *SalaryBounds) overlaps(sr *types.SalaryRange) bool {
	if sr.IsEmpty() {
		return true
	}

	recMin, recMax := 0, UnboundedSalary
	if sr.Min != "" {
		v, ok := ParseSalary(sr.Min)
		if !ok {
			return false
		}
		recMin = v
	}
	if sr.Max != "" {
		v, ok := ParseSalary(sr.Max)
		if !ok {
			return false
		}
		recMax = v
	}

	wantMax := b.Max
	if wantMax <= 0 {
		wantMax = UnboundedSalary
	}
	return recMin <= wantMax && recMax >= b.Min
}

// ParseSalary reads the leading integer of a salary string, ignoring currency
// symbols, whitespace and thousands separators ("$120,000" → 120000).
// A trailing k multiplies by 1000. Values that overflow int are rejected.
func ParseSalary(s string) (int, bool) {
	s = strings.TrimLeftFunc(strings.TrimSpace(s), func(r rune) bool {
		return !unicode.IsDigit(r)
	})

	var digits strings.Builder
	rest := ""
	for i, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		if r == ',' || r == '_' {
			continue
		}
		rest = s[i:]
		break
	}
	if digits.Len() == 0 {
		return 0, false
	}

	v, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(strings.ToLower(rest), "k") {
		if v > math.MaxInt/1000 {
			return 0, false
		}
		v *= 1000
	}
	return v, true
}

// contains checks the applied day against the inclusive range of days. An
// unparsable applied date fails; an unparsable range end is treated as open.
func (r *DateRange) contains(applied string) bool {
	at, ok := types.ParseDate(applied)
	if !ok {
		return false
	}
	day := types.StartOfDay(at)
	if start, ok := types.ParseDate(r.Start); ok && day.Before(types.StartOfDay(start)) {
		return false
	}
	if end, ok := types.ParseDate(r.End); ok && day.After(types.StartOfDay(end)) {
		return false
	}
	return true
}
