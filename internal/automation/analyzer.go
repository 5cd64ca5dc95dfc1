package automation

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
)

// AutoApplyThreshold is the confidence a suggestion must exceed to be applied automatically
const AutoApplyThreshold = 0.8

// StatusSuggestion is the outcome of one rule firing on one application
type StatusSuggestion struct {
	ApplicationID   string       `json:"application_id"`
	RuleID          string       `json:"rule_id"`
	CurrentStatus   types.Status `json:"current_status"`
	SuggestedStatus types.Status `json:"suggested_status"`
	Reason          string       `json:"reason"`
	Confidence      float64      `json:"confidence"`
	AutoApply       bool         `json:"auto_apply"`
}

// Analyzer evaluates status rules against applications
type Analyzer struct {
	rules []StatusRule
	now   func() time.Time
}

// NewAnalyzer creates an Analyzer over rules using the wall clock
func NewAnalyzer(rules []StatusRule) *Analyzer {
	return &Analyzer{rules: rules, now: time.Now}
}

// WithClock replaces the clock, for tests and reproducible reports
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Analyze evaluates every active rule against every application in the rule's
// source status and returns the triggered suggestions, most confident first.
// Applications missing the date a rule needs are skipped.
func (a *Analyzer) Analyze(records []types.JobApplication) []StatusSuggestion {
	now := a.now()
	var suggestions []StatusSuggestion

	for _, rule := range a.rules {
		if !rule.Active || rule.DelayDays <= 0 {
			continue
		}
		for i := range records {
			app := &records[i]
			if app.Status != rule.FromStatus {
				continue
			}
			if s, ok := evaluate(rule, app, now); ok {
				suggestions = append(suggestions, s)
			}
		}
	}

	slices.SortStableFunc(suggestions, func(x, y StatusSuggestion) int {
		switch {
		case x.Confidence > y.Confidence:
			return -1
		case x.Confidence < y.Confidence:
			return 1
		default:
			return 0
		}
	})
	return suggestions
}

func evaluate(rule StatusRule, app *types.JobApplication, now time.Time) (StatusSuggestion, bool) {
	var (
		days       int
		confidence float64
		reason     string
	)

	switch rule.Condition {
	case ConditionTimeElapsed:
		applied, ok := types.ParseDate(app.AppliedDate)
		if !ok {
			return StatusSuggestion{}, false
		}
		days = daysSince(applied, now)
		if days < rule.DelayDays {
			return StatusSuggestion{}, false
		}
		confidence = scaledConfidence(0.5, 0.4, 0.9, days, rule.DelayDays)
		reason = fmt.Sprintf("Applied %d days ago with no response. Consider following up.", days)

	case ConditionInterviewDatePassed:
		interview, ok := types.ParseDate(app.InterviewDate)
		if !ok {
			return StatusSuggestion{}, false
		}
		days = daysSince(interview, now)
		if days < rule.DelayDays {
			return StatusSuggestion{}, false
		}
		confidence = scaledConfidence(0.6, 0.35, 0.95, days, rule.DelayDays)
		reason = fmt.Sprintf("Interview was %d days ago. Consider sending a follow-up.", days)

	default:
		return StatusSuggestion{}, false
	}

	return StatusSuggestion{
		ApplicationID:   app.ID,
		RuleID:          rule.ID,
		CurrentStatus:   app.Status,
		SuggestedStatus: rule.ToStatus,
		Reason:          reason,
		Confidence:      confidence,
		AutoApply:       rule.AutoApply,
	}, true
}

// scaledConfidence starts at base when the delay is just reached and grows by
// span for each further delay period that passes, capped at ceiling. A rule
// that fires therefore ranks longer-overdue applications higher.
func scaledConfidence(base, span, ceiling float64, days, delay int) float64 {
	overdue := float64(days-delay) / float64(delay)
	return math.Min(ceiling, base+overdue*span)
}

// daysSince returns whole elapsed days, floored
func daysSince(then, now time.Time) int {
	return int(math.Floor(now.Sub(then).Hours() / 24))
}

// Eligible returns the suggestions that may be applied without asking: those
// marked auto-apply with confidence above AutoApplyThreshold. The default rules
// never produce any.
func Eligible(suggestions []StatusSuggestion) []StatusSuggestion {
	var out []StatusSuggestion
	for _, s := range suggestions {
		if s.AutoApply && s.Confidence > AutoApplyThreshold {
			out = append(out, s)
		}
	}
	return out
}
