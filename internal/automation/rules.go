// Package automation analyzes applications against time-based status rules and
// heuristics and produces advisory suggestions. Nothing here changes a record.
package automation

import (
	"fmt"

	"github.com/jonathan/job-tracker/internal/types"
)

// Condition selects how a rule measures elapsed time
type Condition string

// Condition constants
const (
	// ConditionTimeElapsed counts days since the applied date
	ConditionTimeElapsed Condition = "time_elapsed"
	// ConditionInterviewDatePassed counts days since the interview date
	ConditionInterviewDatePassed Condition = "interview_date_passed"
)

// StatusRule is a named, toggleable automation rule
type StatusRule struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	FromStatus types.Status `json:"from_status"`
	ToStatus   types.Status `json:"to_status"`
	Condition  Condition    `json:"condition"`
	DelayDays  int          `json:"delay_days"`
	Active     bool         `json:"active"`
	AutoApply  bool         `json:"auto_apply"`
}

// Validate checks a rule loaded from storage or supplied by the user
func (r StatusRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id is required")
	}
	if !r.FromStatus.Valid() {
		return fmt.Errorf("rule %s: invalid from_status %q", r.ID, r.FromStatus)
	}
	if !r.ToStatus.Valid() {
		return fmt.Errorf("rule %s: invalid to_status %q", r.ID, r.ToStatus)
	}
	if r.Condition != ConditionTimeElapsed && r.Condition != ConditionInterviewDatePassed {
		return fmt.Errorf("rule %s: unknown condition %q", r.ID, r.Condition)
	}
	if r.DelayDays < 1 {
		return fmt.Errorf("rule %s: delay_days must be at least 1, got %d", r.ID, r.DelayDays)
	}
	return nil
}

// DefaultRules returns the built-in rule set. Every rule suggests staying in the
// current status: they are follow-up nudges, not transitions.
func DefaultRules() []StatusRule {
	return []StatusRule{
		{
			ID:         "applied-to-followup",
			Name:       "Follow up on applications after 7 days",
			FromStatus: types.StatusApplied,
			ToStatus:   types.StatusApplied,
			Condition:  ConditionTimeElapsed,
			DelayDays:  7,
			Active:     true,
		},
		{
			ID:         "interview-followup",
			Name:       "Follow up 3 days after an interview",
			FromStatus: types.StatusInterview,
			ToStatus:   types.StatusInterview,
			Condition:  ConditionInterviewDatePassed,
			DelayDays:  3,
			Active:     true,
		},
		{
			ID:         "shortlisted-followup",
			Name:       "Follow up on shortlisted applications after 10 days",
			FromStatus: types.StatusShortlisted,
			ToStatus:   types.StatusShortlisted,
			Condition:  ConditionTimeElapsed,
			DelayDays:  10,
			Active:     true,
		},
	}
}
