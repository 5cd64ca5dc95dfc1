package filter

import (
	"github.com/jonathan/job-tracker/internal/search"
	"github.com/jonathan/job-tracker/internal/types"
)

// Query is everything that shapes the displayed list
type Query struct {
	Text   string   `json:"text,omitempty"`
	Filter Spec     `json:"filter"`
	Sort   SortSpec `json:"sort"`
	// Indexed switches the text step to the prefix index instead of the
	// substring scan.
	Indexed bool `json:"indexed,omitempty"`
}

// DefaultSpec hides archived applications
func DefaultSpec() Spec {
	archived := false
	return Spec{Archived: &archived}
}

// View runs search, then filter, then sort and returns the list to display.
func View(records []types.JobApplication, q Query) []types.JobApplication {
	var matched []types.JobApplication
	if q.Indexed {
		matched = search.SearchWithIndex(q.Text, records, search.BuildIndex(records))
	} else {
		matched = search.SearchLinear(records, q.Text)
	}
	return Sort(Apply(matched, q.Filter), q.Sort)
}
