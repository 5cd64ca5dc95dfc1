package automation

import (
	"testing"

	"github.com/jonathan/job-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		app      types.JobApplication
		wantType SuggestionType
		wantPrio types.Priority
		wantMsg  string
	}{
		{
			name:     "interview tomorrow",
			app:      types.JobApplication{Company: "Acme", Status: types.StatusInterview, InterviewDate: daysAhead(1) + "T09:30"},
			wantType: SuggestInterviewPrep,
			wantPrio: types.PriorityHigh,
			wantMsg:  "tomorrow",
		},
		{
			name:     "interview in three days",
			app:      types.JobApplication{Company: "Acme", Status: types.StatusInterview, InterviewDate: daysAhead(3)},
			wantType: SuggestInterviewPrep,
			wantPrio: types.PriorityMedium,
			wantMsg:  "in 3 days",
		},
		{
			name:     "follow-up due today",
			app:      types.JobApplication{Company: "Acme", Status: types.StatusApplied, AppliedDate: daysAgo(3), FollowUpDate: daysAgo(0)},
			wantType: SuggestFollowUpDue,
			wantPrio: types.PriorityHigh,
			wantMsg:  "is due",
		},
		{
			name:     "follow-up overdue",
			app:      types.JobApplication{Company: "Acme", Status: types.StatusShortlisted, FollowUpDate: daysAgo(4)},
			wantType: SuggestFollowUpDue,
			wantPrio: types.PriorityHigh,
			wantMsg:  "is due",
		},
		{
			name:     "follow-up in two days",
			app:      types.JobApplication{Company: "Acme", Status: types.StatusShortlisted, FollowUpDate: daysAhead(2)},
			wantType: SuggestFollowUpDue,
			wantPrio: types.PriorityMedium,
			wantMsg:  "in 2 days",
		},
		{
			name:     "stale application",
			app:      types.JobApplication{Company: "Acme", Status: types.StatusApplied, AppliedDate: daysAgo(14)},
			wantType: SuggestStaleApplication,
			wantPrio: types.PriorityLow,
			wantMsg:  "14 days",
		},
		{
			name:     "quiet after interview",
			app:      types.JobApplication{Company: "Acme", Status: types.StatusInterview, InterviewDate: daysAgo(7)},
			wantType: SuggestInterviewFollowUp,
			wantPrio: types.PriorityMedium,
			wantMsg:  "7 days ago",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.app.ID = "app"
			got := SmartSuggestions([]types.JobApplication{tt.app}, fixedNow)
			require.Len(t, got, 1)
			assert.Equal(t, "app", got[0].ApplicationID)
			assert.Equal(t, tt.wantType, got[0].Type)
			assert.Equal(t, tt.wantPrio, got[0].Priority)
			assert.Contains(t, got[0].Message, tt.wantMsg)
		})
	}
}

func TestSmartSuggestions_NoNoise(t *testing.T) {
	records := []types.JobApplication{
		{ID: "fresh", Status: types.StatusApplied, AppliedDate: daysAgo(13)},
		{ID: "stale-but-scheduled", Status: types.StatusApplied, AppliedDate: daysAgo(30), FollowUpDate: daysAhead(10)},
		{ID: "far-interview", Status: types.StatusInterview, InterviewDate: daysAhead(8)},
		{ID: "interview-today", Status: types.StatusInterview, InterviewDate: daysAgo(0)},
		{ID: "long-ago-interview", Status: types.StatusInterview, InterviewDate: daysAgo(11)},
		{ID: "moved-on", Status: types.StatusOffered, InterviewDate: daysAgo(6)},
		{ID: "unparsable", Status: types.StatusApplied, AppliedDate: "?", FollowUpDate: "soon"},
	}

	assert.Empty(t, SmartSuggestions(records, fixedNow))
}

func TestSmartSuggestions_OrderedByPriority(t *testing.T) {
	records := []types.JobApplication{
		{ID: "low", Status: types.StatusApplied, AppliedDate: daysAgo(20)},
		{ID: "medium", Status: types.StatusInterview, InterviewDate: daysAhead(2)},
		{ID: "high", Status: types.StatusInterview, InterviewDate: daysAhead(1)},
		{ID: "high-2", Status: types.StatusShortlisted, FollowUpDate: daysAgo(1)},
	}

	got := SmartSuggestions(records, fixedNow)
	require.Len(t, got, 4)

	order := make([]string, 0, len(got))
	for _, s := range got {
		order = append(order, s.ApplicationID)
	}
	assert.Equal(t, []string{"high", "high-2", "medium", "low"}, order)
}
