// Package schemas embeds the JSON Schemas for the tracker's exchange formats.
package schemas

import "embed"

// File names of the embedded schemas
const (
	JobApplications = "job_applications.schema.json"
	StatusRules     = "status_rules.schema.json"
)

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS
