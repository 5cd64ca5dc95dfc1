// Package exchange reads and writes the tracker's portable formats: a JSON
// array of applications (the same shape the store keeps), a JSON array of
// status rules, and a flat CSV export for spreadsheets.
package exchange

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jonathan/job-tracker/internal/automation"
	"github.com/jonathan/job-tracker/internal/schemas"
	"github.com/jonathan/job-tracker/internal/types"
	embedded "github.com/jonathan/job-tracker/schemas"
)

// CSVHeader is the first row written by WriteCSV
var CSVHeader = []string{
	"id", "company", "role", "status", "job_type", "work_mode", "work_location",
	"applied_date", "salary_min", "salary_max", "salary_currency", "category",
	"experience_level", "priority", "interview_date", "follow_up_date",
	"job_posting_url", "archived", "contacts", "documents", "notes",
}

// WriteJSON writes apps as an indented JSON array
func WriteJSON(w io.Writer, apps []types.JobApplication) error {
	if apps == nil {
		apps = []types.JobApplication{}
	}
	return encodeIndented(w, apps)
}

// ReadJSON validates data against the applications schema and decodes it.
// Ids must be unique within the document.
func ReadJSON(data []byte) ([]types.JobApplication, error) {
	if err := schemas.ValidateBytes(embedded.JobApplications, data); err != nil {
		return nil, &ImportError{Message: "invalid applications document", Cause: err}
	}

	var apps []types.JobApplication
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, &ImportError{Message: "failed to decode applications", Cause: err}
	}

	seen := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		if _, dup := seen[app.ID]; dup {
			return nil, &ImportError{Message: fmt.Sprintf("duplicate application id in import: %s", app.ID)}
		}
		seen[app.ID] = struct{}{}
	}
	return apps, nil
}

// WriteRules writes rules as an indented JSON array
func WriteRules(w io.Writer, rules []automation.StatusRule) error {
	if rules == nil {
		rules = []automation.StatusRule{}
	}
	return encodeIndented(w, rules)
}

// ReadRules validates data against the rules schema and decodes it
func ReadRules(data []byte) ([]automation.StatusRule, error) {
	if err := schemas.ValidateBytes(embedded.StatusRules, data); err != nil {
		return nil, &ImportError{Message: "invalid rules document", Cause: err}
	}
	var rules []automation.StatusRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, &ImportError{Message: "failed to decode rules", Cause: err}
	}
	return rules, nil
}

// WriteCSV writes one row per application. Contacts and documents are reduced
// to counts and document content is never written.
func WriteCSV(w io.Writer, apps []types.JobApplication) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range apps {
		app := &apps[i]
		var salary types.SalaryRange
		if app.SalaryRange != nil {
			salary = *app.SalaryRange
		}
		row := []string{
			app.ID,
			app.Company,
			app.Role,
			string(app.Status),
			string(app.JobType),
			string(app.WorkMode),
			app.WorkLocation,
			app.AppliedDate,
			salary.Min,
			salary.Max,
			salary.Currency,
			app.Category,
			string(app.ExperienceLevel),
			string(app.Priority),
			app.InterviewDate,
			app.FollowUpDate,
			app.JobPostingURL,
			strconv.FormatBool(app.Archived),
			strconv.Itoa(len(app.Contacts)),
			strconv.Itoa(len(app.Documents)),
			app.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", app.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func encodeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}
