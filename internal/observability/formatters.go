// Package observability provides the boxed, human-readable summaries the CLI
// prints for applications, rules and suggestions.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-tracker/internal/automation"
	"github.com/jonathan/job-tracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, boxWidth-4), boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintApplication outputs the full record: fields, contacts, documents and
// the status history.
func (p *Printer) PrintApplication(app *types.JobApplication) {
	if app == nil {
		return
	}

	var sb strings.Builder
	field := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%-10s %s\n", label+":", value))
		}
	}

	field("ID", app.ID)
	field("Status", string(app.Status))
	field("Applied", app.AppliedDate)
	field("Type", string(app.JobType))
	field("Mode", string(app.WorkMode))
	field("Location", app.WorkLocation)
	field("Level", string(app.ExperienceLevel))
	field("Category", app.Category)
	field("Priority", string(app.Priority))
	field("Salary", FormatSalary(app.SalaryRange))
	field("Interview", app.InterviewDate)
	field("Follow-up", app.FollowUpDate)
	field("Link", app.InterviewLink)
	field("Posting", app.JobPostingURL)
	if app.Archived {
		field("Archived", "yes")
	}
	if app.Notes != "" {
		sb.WriteString("\nNotes:\n")
		for _, line := range strings.Split(app.Notes, "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}

	if len(app.Contacts) > 0 {
		sb.WriteString("\nContacts:\n")
		for _, c := range app.Contacts {
			sb.WriteString(fmt.Sprintf("  • %s (%s)", c.Name, c.Type))
			if c.Email != "" {
				sb.WriteString(" " + c.Email)
			}
			sb.WriteString(fmt.Sprintf(" [%s]\n", c.ID))
		}
	}

	if len(app.Documents) > 0 {
		sb.WriteString("\nDocuments:\n")
		for _, d := range app.Documents {
			sb.WriteString(fmt.Sprintf("  • %s (%s, %s) [%s]\n", d.Name, d.Type, FormatSize(d.Size), d.ID))
		}
	}

	if len(app.StatusHistory) > 0 {
		sb.WriteString("\nHistory:\n")
		for _, h := range app.StatusHistory {
			sb.WriteString(fmt.Sprintf("  %s  %-11s %s\n", h.Date.Format("2006-01-02"), h.Status, h.Note))
		}
	}

	p.printBox(fmt.Sprintf("%s @ %s", app.Role, app.Company), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs application counts per status
func (p *Printer) PrintSummary(apps []types.JobApplication) {
	counts := make(map[types.Status]int)
	archived := 0
	for i := range apps {
		counts[apps[i].Status]++
		if apps[i].Archived {
			archived++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d (%d archived)\n\n", len(apps), archived))
	for _, s := range types.Statuses {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", s, counts[s]))
	}

	p.printBox("APPLICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatusSuggestions outputs the top rule-based suggestions
func (p *Printer) PrintStatusSuggestions(suggestions []automation.StatusSuggestion, companies map[string]string) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := suggestions[i]
		name := companies[s.ApplicationID]
		if name == "" {
			name = s.ApplicationID
		}
		sb.WriteString(fmt.Sprintf("#%d  %s  [%s → %s]\n", i+1, name, s.CurrentStatus, s.SuggestedStatus))
		sb.WriteString(fmt.Sprintf("    Confidence: %.2f  Rule: %s\n", s.Confidence, s.RuleID))
		sb.WriteString(fmt.Sprintf("    %s\n", s.Reason))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more suggestions", len(suggestions)-maxItemsToShow))
	}

	p.printBox("STATUS SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSmartSuggestions outputs the heuristic reminders
func (p *Printer) PrintSmartSuggestions(suggestions []automation.SmartSuggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("[%s] %s @ %s\n", strings.ToUpper(string(s.Priority)), s.Role, s.Company))
		sb.WriteString(fmt.Sprintf("    %s\n", s.Message))
	}

	p.printBox("REMINDERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRules outputs the rule set with each rule's state
func (p *Printer) PrintRules(rules []automation.StatusRule) {
	var sb strings.Builder
	for _, r := range rules {
		state := "off"
		if r.Active {
			state = "on "
		}
		sb.WriteString(fmt.Sprintf("[%s] %s\n", state, r.ID))
		sb.WriteString(fmt.Sprintf("      %s → %s, %s after %dd", r.FromStatus, r.ToStatus, r.Condition, r.DelayDays))
		if r.AutoApply {
			sb.WriteString(", auto")
		}
		sb.WriteString("\n")
	}
	if len(rules) == 0 {
		sb.WriteString("No rules configured\n")
	}

	p.printBox("STATUS RULES", strings.TrimSuffix(sb.String(), "\n"))
}

// FormatSalary renders a salary range as "min - max CUR"
func FormatSalary(s *types.SalaryRange) string {
	if s.IsEmpty() {
		return ""
	}
	var out string
	switch {
	case s.Min != "" && s.Max != "":
		out = s.Min + " - " + s.Max
	case s.Min != "":
		out = s.Min + "+"
	default:
		out = "up to " + s.Max
	}
	if s.Currency != "" {
		out += " " + s.Currency
	}
	return out
}

// FormatSize renders a byte count with a binary unit
func FormatSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
