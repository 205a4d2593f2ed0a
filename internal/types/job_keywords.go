// Package types provides type definitions for structured data used throughout the ats-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Priority is the importance tier of a job keyword
type Priority int

// Priority tiers, ordered so that a larger value wins when a keyword is declared twice
const (
	PriorityMinor Priority = iota + 1
	PriorityModerate
	PriorityCritical
)

// String returns the tier name used in reports
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityModerate:
		return "moderate"
	case PriorityMinor:
		return "minor"
	default:
		return "unknown"
	}
}

// JobKeywords holds the keywords extracted from a job description, split by tier
type JobKeywords struct {
	Company   string   `json:"company,omitempty"`
	RoleTitle string   `json:"role_title,omitempty"`
	Required  []string `json:"required,omitempty"`  // hard requirements
	Preferred []string `json:"preferred,omitempty"` // nice-to-haves
	Keywords  []string `json:"keywords,omitempty"`  // other ATS keywords
}

// All returns every keyword, required first, then preferred, then plain keywords.
func (j *JobKeywords) All() []string {
	all := make([]string, 0, len(j.Required)+len(j.Preferred)+len(j.Keywords))
	all = append(all, j.Required...)
	all = append(all, j.Preferred...)
	all = append(all, j.Keywords...)
	return all
}

// IsEmpty reports whether no keywords were declared in any tier
func (j *JobKeywords) IsEmpty() bool {
	return len(j.Required) == 0 && len(j.Preferred) == 0 && len(j.Keywords) == 0
}

// ResumeKeywords holds the keywords extracted from a resume
type ResumeKeywords struct {
	Skills    []string `json:"skills"`
	Education []string `json:"education,omitempty"`
}
