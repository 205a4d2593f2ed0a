// Package schemas holds the JSON Schemas for the artifacts ats_agent reads and writes.
package schemas

import "embed"

// Schema file names
const (
	MatchResult    = "match_result.schema.json"
	JobKeywords    = "job_keywords.schema.json"
	ResumeKeywords = "resume_keywords.schema.json"
)

// FS contains every *.schema.json in this directory
//
//go:embed *.schema.json
var FS embed.FS
