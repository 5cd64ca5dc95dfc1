package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-tracker/internal/automation"
	"github.com/jonathan/job-tracker/internal/types"
)

func TestPrintApplication(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	app := &types.JobApplication{
		ID:          "a1",
		Company:     "Acme Corp",
		Role:        "Senior Engineer",
		Status:      types.StatusInterview,
		AppliedDate: "2024-06-01",
		SalaryRange: &types.SalaryRange{Min: "100k", Max: "120k", Currency: "USD"},
		Notes:       "Referral from Sam",
		Contacts:    []types.Contact{{ID: "c1", Name: "Dana", Type: types.ContactRecruiter, Email: "dana@acme.test"}},
		Documents:   []types.Document{{ID: "d1", Name: "cv.pdf", Type: types.DocumentResume, Size: 2048}},
		StatusHistory: []types.StatusChange{
			{Status: types.StatusApplied, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Note: "Application created"},
		},
	}

	p.PrintApplication(app)
	output := buf.String()

	assert.Contains(t, output, "Senior Engineer @ Acme Corp")
	assert.Contains(t, output, "100k - 120k USD")
	assert.Contains(t, output, "Referral from Sam")
	assert.Contains(t, output, "dana@acme.test")
	assert.Contains(t, output, "cv.pdf (resume, 2.0 KiB)")
	assert.Contains(t, output, "2024-06-01  applied")
	assert.NotContains(t, output, "Archived")
}

func TestPrintApplication_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintApplication(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary([]types.JobApplication{
		{Status: types.StatusApplied},
		{Status: types.StatusApplied, Archived: true},
		{Status: types.StatusOffered},
	})
	output := buf.String()

	assert.Contains(t, output, "Total: 3 (1 archived)")
	assert.Contains(t, output, "applied      2")
	assert.Contains(t, output, "offered      1")
	assert.Contains(t, output, "rejected     0")
}

func TestPrintStatusSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var suggestions []automation.StatusSuggestion
	for i := 0; i < 7; i++ {
		suggestions = append(suggestions, automation.StatusSuggestion{
			ApplicationID:   "a1",
			RuleID:          "applied-to-followup",
			CurrentStatus:   types.StatusApplied,
			SuggestedStatus: types.StatusApplied,
			Reason:          "Applied 9 days ago with no response.",
			Confidence:      0.61,
		})
	}

	p.PrintStatusSuggestions(suggestions, map[string]string{"a1": "Acme"})
	output := buf.String()

	assert.Contains(t, output, "STATUS SUGGESTIONS")
	assert.Contains(t, output, "#1  Acme")
	assert.Contains(t, output, "Confidence: 0.61")
	assert.Contains(t, output, "... and 2 more suggestions")
	assert.NotContains(t, output, "#6")
}

func TestPrintStatusSuggestions_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStatusSuggestions(nil, nil)
	assert.Empty(t, buf.String())
}

func TestPrintSmartSuggestions(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSmartSuggestions([]automation.SmartSuggestion{
		{Company: "Acme", Role: "SRE", Priority: types.PriorityHigh, Message: "Interview tomorrow"},
	})
	output := buf.String()

	assert.Contains(t, output, "[HIGH] SRE @ Acme")
	assert.Contains(t, output, "Interview tomorrow")
}

func TestPrintRules(t *testing.T) {
	var buf bytes.Buffer
	rules := automation.DefaultRules()
	rules[1].Active = false

	NewPrinter(&buf).PrintRules(rules)
	output := buf.String()

	assert.Contains(t, output, "[on ] applied-to-followup")
	assert.Contains(t, output, "[off] interview-followup")
	assert.Contains(t, output, "interview_date_passed after 3d")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		in   *types.SalaryRange
		want string
	}{
		{nil, ""},
		{&types.SalaryRange{}, ""},
		{&types.SalaryRange{Min: "50k"}, "50k+"},
		{&types.SalaryRange{Max: "70k", Currency: "EUR"}, "up to 70k EUR"},
		{&types.SalaryRange{Min: "50k", Max: "70k"}, "50k - 70k"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSalary(tt.in))
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.5 KiB", FormatSize(1536))
	assert.Equal(t, "3.0 MiB", FormatSize(3*1024*1024))
}
