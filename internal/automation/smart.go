package automation

import (
	"fmt"
	"slices"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
)

// SuggestionType classifies a heuristic suggestion
type SuggestionType string

// SuggestionType constants
const (
	SuggestInterviewPrep     SuggestionType = "interview_prep"
	SuggestFollowUpDue       SuggestionType = "follow_up_due"
	SuggestStaleApplication  SuggestionType = "stale_application"
	SuggestInterviewFollowUp SuggestionType = "interview_follow_up"
)

// Heuristic thresholds, in days
const (
	interviewSoonDays     = 3
	followUpSoonDays      = 2
	staleApplicationDays  = 14
	interviewQuietMinDays = 5
	interviewQuietMaxDays = 10
)

// SmartSuggestion is a heuristic nudge about one application
type SmartSuggestion struct {
	ApplicationID string         `json:"application_id"`
	Company       string         `json:"company"`
	Role          string         `json:"role"`
	Type          SuggestionType `json:"type"`
	Priority      types.Priority `json:"priority"`
	Message       string         `json:"message"`
}

// SmartSuggestions scans applications for upcoming interviews, due follow-ups,
// stale applications and quiet post-interview periods. Results are ordered by
// priority, high first; ties keep record order.
func SmartSuggestions(records []types.JobApplication, now time.Time) []SmartSuggestion {
	today := types.StartOfDay(now)
	var out []SmartSuggestion

	for i := range records {
		app := &records[i]
		add := func(kind SuggestionType, prio types.Priority, msg string) {
			out = append(out, SmartSuggestion{
				ApplicationID: app.ID,
				Company:       app.Company,
				Role:          app.Role,
				Type:          kind,
				Priority:      prio,
				Message:       msg,
			})
		}

		if interview, ok := types.ParseDate(app.InterviewDate); ok {
			until := calendarDays(today, interview)
			switch {
			case until == 1:
				add(SuggestInterviewPrep, types.PriorityHigh,
					fmt.Sprintf("Interview with %s is tomorrow. Review your notes and prepare questions.", app.Company))
			case until > 1 && until <= interviewSoonDays:
				add(SuggestInterviewPrep, types.PriorityMedium,
					fmt.Sprintf("Interview with %s in %d days. Start preparing.", app.Company, until))
			}

			since := -until
			if app.Status == types.StatusInterview && since >= interviewQuietMinDays && since <= interviewQuietMaxDays {
				add(SuggestInterviewFollowUp, types.PriorityMedium,
					fmt.Sprintf("Interview with %s was %d days ago with no update. Consider a follow-up or updating the status.", app.Company, since))
			}
		}

		if followUp, ok := types.ParseDate(app.FollowUpDate); ok {
			until := calendarDays(today, followUp)
			switch {
			case until <= 0:
				add(SuggestFollowUpDue, types.PriorityHigh,
					fmt.Sprintf("Follow-up with %s is due.", app.Company))
			case until <= followUpSoonDays:
				add(SuggestFollowUpDue, types.PriorityMedium,
					fmt.Sprintf("Follow-up with %s due in %d days.", app.Company, until))
			}
		}

		if app.Status == types.StatusApplied && app.FollowUpDate == "" {
			if applied, ok := types.ParseDate(app.AppliedDate); ok {
				if since := calendarDays(applied, today); since >= staleApplicationDays {
					add(SuggestStaleApplication, types.PriorityLow,
						fmt.Sprintf("No response from %s after %d days. Schedule a follow-up.", app.Company, since))
				}
			}
		}
	}

	slices.SortStableFunc(out, func(a, b SmartSuggestion) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})
	return out
}

// calendarDays counts day boundaries from a to b; negative when b is earlier
func calendarDays(a, b time.Time) int {
	return int(types.StartOfDay(b).Sub(types.StartOfDay(a)).Hours() / 24)
}
