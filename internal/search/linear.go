package search

import (
	"strings"

	"github.com/jonathan/job-tracker/internal/types"
)

// SearchLinear returns the records whose FullText contains every space-separated
// term of query as a substring. Unlike SearchWithIndex a term may match inside a
// word ("gine" matches "engineer"). An empty query returns records unchanged.
func SearchLinear(records []types.JobApplication, query string) []types.JobApplication {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return records
	}

	results := make([]types.JobApplication, 0, len(records))
	for i := range records {
		if matchesAll(FullText(&records[i]), terms) {
			results = append(results, records[i])
		}
	}
	return results
}

// queryTerms splits on single spaces; the empty pieces left by repeated spaces are dropped.
func queryTerms(query string) []string {
	var terms []string
	for _, term := range strings.Split(strings.ToLower(strings.TrimSpace(query)), " ") {
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func matchesAll(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
