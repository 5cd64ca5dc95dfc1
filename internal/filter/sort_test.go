package filter

import (
	"slices"
	"testing"

	"github.com/jonathan/job-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort_AppliedDateDescThenAscIsReversed(t *testing.T) {
	records := mixedRecords()[:4] // distinct, parsable dates

	desc := Sort(records, SortSpec{Field: SortAppliedDate, Order: Desc})
	asc := Sort(records, SortSpec{Field: SortAppliedDate, Order: Asc})

	assert.Equal(t, []string{"4", "2", "1", "3"}, ids(desc))
	reversed := ids(asc)
	slices.Reverse(reversed)
	assert.Equal(t, ids(desc), reversed)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := mixedRecords()
	before := ids(records)
	_ = Sort(records, SortSpec{Field: SortCompany, Order: Desc})
	assert.Equal(t, before, ids(records))
}

func TestSort_UnparsableAppliedDateSortsAsEpoch(t *testing.T) {
	got := Sort(mixedRecords(), SortSpec{Field: SortAppliedDate, Order: Asc})
	assert.Equal(t, "5", got[0].ID)
}

func TestSort_Strings(t *testing.T) {
	records := []types.JobApplication{
		{ID: "1", Company: "beta", Role: "b", Status: types.StatusRejected},
		{ID: "2", Company: "Alpha", Role: "C", Status: types.StatusApplied},
		{ID: "3", Company: "Éclair", Role: "a", Status: types.StatusOffered},
		{ID: "4", Company: "alpha", Role: "B", Status: types.StatusInterview},
	}

	byCompany := ids(Sort(records, SortSpec{Field: SortCompany, Order: Asc}))
	// lower case sorts before upper case at equal primary strength
	assert.Equal(t, []string{"4", "2", "1", "3"}, byCompany)

	byRole := ids(Sort(records, SortSpec{Field: SortRole, Order: Asc}))
	assert.Equal(t, []string{"3", "1", "4", "2"}, byRole)

	byStatus := ids(Sort(records, SortSpec{Field: SortStatus, Order: Desc}))
	assert.Equal(t, []string{"1", "3", "4", "2"}, byStatus)
}

func TestSort_Priority(t *testing.T) {
	records := []types.JobApplication{
		{ID: "none"},
		{ID: "low", Priority: types.PriorityLow},
		{ID: "high", Priority: types.PriorityHigh},
		{ID: "medium", Priority: types.PriorityMedium},
	}

	assert.Equal(t, []string{"high", "medium", "low", "none"}, ids(Sort(records, SortSpec{Field: SortPriority, Order: Desc})))
	assert.Equal(t, []string{"none", "low", "medium", "high"}, ids(Sort(records, SortSpec{Field: SortPriority, Order: Asc})))
}

func TestSort_InterviewDateMissingIsEarliest(t *testing.T) {
	records := []types.JobApplication{
		{ID: "later", InterviewDate: "2024-05-01T10:00"},
		{ID: "missing"},
		{ID: "sooner", InterviewDate: "2024-04-01"},
	}

	assert.Equal(t, []string{"missing", "sooner", "later"}, ids(Sort(records, SortSpec{Field: SortInterviewDate, Order: Asc})))
}

func TestSort_StableForTies(t *testing.T) {
	records := []types.JobApplication{
		{ID: "a", Priority: types.PriorityHigh},
		{ID: "b", Priority: types.PriorityHigh},
		{ID: "c", Priority: types.PriorityHigh},
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(Sort(records, SortSpec{Field: SortPriority, Order: Desc})))
}

func TestParseSortSpec(t *testing.T) {
	spec, err := ParseSortSpec("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, spec)

	spec, err = ParseSortSpec("company", "asc")
	require.NoError(t, err)
	assert.Equal(t, SortSpec{Field: SortCompany, Order: Asc}, spec)

	_, err = ParseSortSpec("salary", "asc")
	assert.ErrorContains(t, err, "unknown sort field")

	_, err = ParseSortSpec("company", "sideways")
	assert.ErrorContains(t, err, "unknown sort order")
}
