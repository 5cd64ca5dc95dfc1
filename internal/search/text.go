// Package search provides the two text search strategies over job applications:
// a prefix inverted index for instant search and a linear substring scan for
// free-text search.
package search

import (
	"strings"

	"github.com/jonathan/job-tracker/internal/types"
)

// IndexedText returns the lower-cased, space-joined text the index is built from.
// Absent fields are skipped.
func IndexedText(app *types.JobApplication) string {
	return joinLower(indexedFields(app))
}

// FullText extends IndexedText with contact names, titles and emails and document names.
func FullText(app *types.JobApplication) string {
	fields := indexedFields(app)
	for _, c := range app.Contacts {
		fields = append(fields, c.Name, c.Title, c.Email)
	}
	for _, d := range app.Documents {
		fields = append(fields, d.Name)
	}
	return joinLower(fields)
}

func indexedFields(app *types.JobApplication) []string {
	return []string{
		app.Company,
		app.Role,
		app.WorkLocation,
		app.Category,
		app.Notes,
		string(app.Status),
		string(app.JobType),
		string(app.WorkMode),
		string(app.ExperienceLevel),
	}
}

func joinLower(fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		parts = append(parts, strings.ToLower(f))
	}
	return strings.Join(parts, " ")
}
