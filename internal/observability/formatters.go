// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// writeList writes a titled bullet list, showing at most limit items
func writeList(sb *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintJobKeywords outputs a human-readable summary of extracted job keywords.
func (p *Printer) PrintJobKeywords(job *types.JobKeywords) {
	if job == nil {
		return
	}

	var sb strings.Builder
	if job.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	}
	if job.RoleTitle != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", job.RoleTitle))
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	writeList(&sb, "Required", job.Required, maxItemsToShow)
	writeList(&sb, "Preferred", job.Preferred, 3)
	writeList(&sb, "Keywords", job.Keywords, 3)

	p.printBox("JOB KEYWORDS", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatchResult outputs the score, keyword buckets and suggestions of a match.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	total := result.MatchedCount() + len(result.Missing)
	sb.WriteString(fmt.Sprintf("Score:    %.1f / 100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Matched:  %d of %d (%d exact, %d fuzzy)\n",
		result.MatchedCount(), total, len(result.MatchedExact), len(result.MatchedFuzzy)))
	sb.WriteString("\n")

	if s := result.SectionScores; s != nil {
		sb.WriteString("Sections:\n")
		sb.WriteString(fmt.Sprintf("  skills %.0f  experience %.0f  education %.0f  density %.0f\n\n",
			s.Skills, s.Experience, s.Education, s.KeywordDensity))
	}

	if len(result.FuzzyPairs) > 0 {
		pairs := make([]string, 0, len(result.FuzzyPairs))
		for _, fp := range result.FuzzyPairs {
			pairs = append(pairs, fmt.Sprintf("%s ≈ %s (%.0f)", fp.JobKeyword, fp.ResumeKeyword, fp.Similarity))
		}
		writeList(&sb, "Fuzzy matches", pairs, 3)
	}

	if m := result.MissingByPriority; m != nil {
		writeList(&sb, "Missing (critical)", m.Critical, maxItemsToShow)
		writeList(&sb, "Missing (moderate)", m.Moderate, 3)
		writeList(&sb, "Missing (minor)", m.Minor, 3)
	} else {
		writeList(&sb, "Missing", result.Missing, maxItemsToShow)
	}

	writeList(&sb, "Suggestions", result.Suggestions, 3)

	p.printBox("MATCH RESULT", strings.TrimRight(sb.String(), "\n"))
}

// RankedJob is one row of PrintRanking
type RankedJob struct {
	Name    string
	Score   float64
	Missing int
}

// PrintRanking outputs jobs as a table, in the order given.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRanking(rows []RankedJob) {
	if len(rows) == 0 {
		return
	}
	nameWidth := boxWidth - 24
	fmt.Fprintf(p.out, "%-4s %-*s %7s %8s\n", "#", nameWidth, "JOB", "SCORE", "MISSING")
	for i, row := range rows {
		fmt.Fprintf(p.out, "%-4d %-*s %7.1f %8d\n", i+1, nameWidth, truncate(row.Name, nameWidth), row.Score, row.Missing)
	}
}
