package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-matcher/internal/types"
)

// Report is a stored match result
type Report struct {
	ID        uuid.UUID          `json:"id"`
	Label     string             `json:"label"`
	Company   string             `json:"company"`
	RoleTitle string             `json:"role_title"`
	Score     float64            `json:"score"`
	Result    *types.MatchResult `json:"result"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewReport builds a report for result; Score mirrors result.Score
func NewReport(label string, job *types.JobKeywords, result *types.MatchResult) *Report {
	r := &Report{Label: label, Result: result}
	if result != nil {
		r.Score = result.Score
	}
	if job != nil {
		r.Company = job.Company
		r.RoleTitle = job.RoleTitle
	}
	return r
}

// ReportSummary is one row of ListReports
type ReportSummary struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Company   string    `json:"company"`
	RoleTitle string    `json:"role_title"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
