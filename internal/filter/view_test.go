package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView_SearchFilterSort(t *testing.T) {
	q := Query{
		Text:   "engineer",
		Filter: DefaultSpec(),
		Sort:   SortSpec{Field: SortCompany, Order: Asc},
	}
	// Hooli (4) matches the text but is archived.
	assert.Equal(t, []string{"1"}, ids(View(mixedRecords(), q)))

	q.Filter = Spec{}
	assert.Equal(t, []string{"1", "4"}, ids(View(mixedRecords(), q)))
}

func TestView_IndexedUsesPrefixSemantics(t *testing.T) {
	q := Query{Text: "ngineer", Sort: DefaultSort}
	assert.Len(t, View(mixedRecords(), q), 2)

	q.Indexed = true
	assert.Empty(t, View(mixedRecords(), q))

	q.Text = "eng"
	assert.Equal(t, []string{"4", "1"}, ids(View(mixedRecords(), q)))
}

func TestView_EmptyQueryKeepsEverything(t *testing.T) {
	got := View(mixedRecords(), Query{Sort: SortSpec{Field: SortPriority, Order: Desc}})
	assert.Len(t, got, 5)
	assert.Equal(t, "1", got[0].ID)
}
