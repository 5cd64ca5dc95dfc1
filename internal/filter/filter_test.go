package filter

import (
	"testing"

	"github.com/jonathan/job-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func ids(records []types.JobApplication) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func mixedRecords() []types.JobApplication {
	return []types.JobApplication{
		{
			ID: "1", Company: "Acme", Role: "Engineer", Status: types.StatusApplied,
			JobType: types.JobTypeFullTime, WorkMode: types.WorkModeRemote, WorkLocation: "New York, NY",
			AppliedDate: "2024-01-10", Priority: types.PriorityHigh, Category: "Backend",
			SalaryRange: &types.SalaryRange{Min: "100000", Max: "130000", Currency: "USD"},
		},
		{
			ID: "2", Company: "Globex", Role: "SRE", Status: types.StatusInterview,
			JobType: types.JobTypeContract, WorkMode: types.WorkModeHybrid, WorkLocation: "Austin, TX",
			AppliedDate: "2024-02-01", InterviewDate: "2024-02-15", ExperienceLevel: types.LevelSenior,
		},
		{
			ID: "3", Company: "Initech", Role: "PM", Status: types.StatusRejected,
			JobType: types.JobTypeFullTime, WorkMode: types.WorkModeOnSite, WorkLocation: "new york",
			AppliedDate: "2023-12-20", Priority: types.PriorityLow,
			SalaryRange: &types.SalaryRange{Min: "$60,000", Max: "$80,000"},
		},
		{
			ID: "4", Company: "Hooli", Role: "Engineer", Status: types.StatusInterview,
			JobType: types.JobTypePartTime, WorkMode: types.WorkModeRemote, WorkLocation: "Remote",
			AppliedDate: "2024-03-05", Archived: true,
			SalaryRange: &types.SalaryRange{Min: "150k"},
		},
		{
			ID: "5", Company: "Umbrella", Role: "Analyst", Status: types.StatusShortlisted,
			JobType: types.JobTypeInternship, WorkMode: types.WorkModeOnSite, WorkLocation: "Raccoon City",
			AppliedDate: "not-a-date", InterviewLink: "https://meet.example.com/u",
			SalaryRange: &types.SalaryRange{Min: "competitive"},
		},
	}
}

func TestApply_EmptySpecIsIdentity(t *testing.T) {
	records := mixedRecords()
	assert.Equal(t, records, Apply(records, Spec{}))

	allSentinels := Spec{Status: types.All, JobType: types.All, WorkMode: types.All, ExperienceLevel: types.All, Priority: types.All, Category: types.All}
	assert.True(t, allSentinels.IsEmpty())
	assert.Equal(t, records, Apply(records, allSentinels))
}

func TestApply_StatusScenario(t *testing.T) {
	got := Apply(mixedRecords(), Spec{Status: types.StatusInterview})
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, types.StatusInterview, r.Status)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{"job type", Spec{JobType: types.JobTypeFullTime}, []string{"1", "3"}},
		{"work mode", Spec{WorkMode: types.WorkModeRemote}, []string{"1", "4"}},
		{"experience level", Spec{ExperienceLevel: types.LevelSenior}, []string{"2"}},
		{"priority", Spec{Priority: types.PriorityLow}, []string{"3"}},
		{"category", Spec{Category: "Backend"}, []string{"1"}},
		{"location substring case-insensitive", Spec{Location: "NEW YORK"}, []string{"1", "3"}},
		{"has interview true", Spec{HasInterview: boolPtr(true)}, []string{"2", "4", "5"}},
		{"has interview false", Spec{HasInterview: boolPtr(false)}, []string{"1", "3"}},
		{"archived true", Spec{Archived: boolPtr(true)}, []string{"4"}},
		{"archived false", Spec{Archived: boolPtr(false)}, []string{"1", "2", "3", "5"}},
		{"combined predicates", Spec{Status: types.StatusInterview, Archived: boolPtr(false)}, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(mixedRecords(), tt.spec)))
		})
	}
}

func TestApply_SalaryOverlap(t *testing.T) {
	tests := []struct {
		name   string
		bounds SalaryBounds
		want   []string
	}{
		// 2 has no salary data and always passes; 5 is unparsable and always fails.
		{"overlaps acme only", SalaryBounds{Min: 110000, Max: 120000}, []string{"1", "2"}},
		{"touching lower edge", SalaryBounds{Min: 80000, Max: 90000}, []string{"2", "3"}},
		{"open upper bound", SalaryBounds{Min: 140000}, []string{"2", "4"}},
		{"wide", SalaryBounds{Min: 0, Max: 1000000}, []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.bounds
			assert.Equal(t, tt.want, ids(Apply(mixedRecords(), Spec{SalaryRange: &b})))
		})
	}
}

func TestApply_DateRange(t *testing.T) {
	tests := []struct {
		name string
		rng  DateRange
		want []string
	}{
		{"inclusive both ends", DateRange{Start: "2024-01-10", End: "2024-02-01"}, []string{"1", "2"}},
		{"open start", DateRange{End: "2023-12-31"}, []string{"3"}},
		{"open end", DateRange{Start: "2024-02-02"}, []string{"4"}},
		{"unparsable bound is open", DateRange{Start: "whenever", End: "2024-01-10"}, []string{"1", "3"}},
		{"datetime end covers whole day", DateRange{Start: "2024-03-05T23:00", End: "2024-03-05T01:00"}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.rng
			assert.Equal(t, tt.want, ids(Apply(mixedRecords(), Spec{DateRange: &r})))
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	specs := []Spec{
		{Status: types.StatusInterview},
		{Location: "york", HasInterview: boolPtr(false)},
		{SalaryRange: &SalaryBounds{Min: 50000, Max: 100000}},
		{DateRange: &DateRange{Start: "2024-01-01"}, Archived: boolPtr(false)},
	}

	for _, spec := range specs {
		once := Apply(mixedRecords(), spec)
		twice := Apply(once, spec)
		assert.Equal(t, once, twice)
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"120000", 120000, true},
		{"$120,000", 120000, true},
		{" 95000 USD", 95000, true},
		{"150k", 150000, true},
		{"EUR 70K", 70000, true},
		{"competitive", 0, false},
		{"", 0, false},
		{"99999999999999999k", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSalary(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
