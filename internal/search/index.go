package search

import (
	"slices"
	"strings"

	"github.com/jonathan/job-tracker/internal/types"
)

// Index maps a word or word prefix to the positions of the records containing it.
type Index map[string]map[int]struct{}

// BuildIndex builds a word and prefix index over records. Every word of a
// record's IndexedText is inserted together with each of its prefixes, so a
// lookup of any prefix is a single map access. Long words cost quadratic
// space; the tracked collections are small.
func BuildIndex(records []types.JobApplication) Index {
	idx := make(Index)
	for pos := range records {
		for _, word := range strings.Fields(IndexedText(&records[pos])) {
			runes := []rune(word)
			for n := 1; n <= len(runes); n++ {
				idx.add(string(runes[:n]), pos)
			}
		}
	}
	return idx
}

func (idx Index) add(token string, pos int) {
	postings, ok := idx[token]
	if !ok {
		postings = make(map[int]struct{})
		idx[token] = postings
	}
	postings[pos] = struct{}{}
}

// Lookup returns the sorted record positions for a single token.
func (idx Index) Lookup(token string) []int {
	postings := idx[strings.ToLower(token)]
	out := make([]int, 0, len(postings))
	for pos := range postings {
		out = append(out, pos)
	}
	slices.Sort(out)
	return out
}

// SearchWithIndex returns the records matching every whitespace-separated term
// of query as a word prefix. An empty query returns records unchanged; a term
// missing from the index empties the result. Matches come back in record order.
func SearchWithIndex(query string, records []types.JobApplication, idx Index) []types.JobApplication {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return records
	}

	var matched map[int]struct{}
	for _, term := range terms {
		postings := idx[term]
		if matched == nil {
			matched = make(map[int]struct{}, len(postings))
			for pos := range postings {
				matched[pos] = struct{}{}
			}
			continue
		}
		for pos := range matched {
			if _, ok := postings[pos]; !ok {
				delete(matched, pos)
			}
		}
	}

	positions := make([]int, 0, len(matched))
	for pos := range matched {
		if pos < len(records) {
			positions = append(positions, pos)
		}
	}
	slices.Sort(positions)

	results := make([]types.JobApplication, 0, len(positions))
	for _, pos := range positions {
		results = append(results, records[pos])
	}
	return results
}
