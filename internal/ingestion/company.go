package ingestion

import (
	"regexp"
	"strings"
)

// DefaultCompanyName is returned when no company can be spotted in the text
const DefaultCompanyName = "Company"

// companyWords is a run of capitalized words, optionally joined by '&'
const companyWords = `([A-Z][\w&]*(?:[ &]+[A-Z][\w&]*)*)`

var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:position\s+(?:at|with))\s+` + companyWords),
	regexp.MustCompile(`(?i:(?:job|role|opportunity)\s+(?:at|with))\s+` + companyWords),
	regexp.MustCompile(`(?:\b(?i:at)|@)\s+` + companyWords),
	regexp.MustCompile(companyWords + `\s+(?i:is\s+(?:looking|hiring|seeking))`),
}

var unsafeFileChars = regexp.MustCompile(`[^\w&-]+`)

// ExtractCompanyName spots the hiring company in a job description with a few
// phrase heuristics ("position at X", "X is hiring", ...). The result is
// file-name safe: spaces become underscores.
func ExtractCompanyName(jdText string) string {
	for _, pattern := range companyPatterns {
		m := pattern.FindStringSubmatch(jdText)
		if m == nil {
			continue
		}
		name := strings.TrimRight(strings.TrimSpace(m[1]), ".")
		if name = sanitizeName(name); name != "" {
			return name
		}
	}
	return DefaultCompanyName
}

// SafeName reduces a company name to word characters, '&' and '-' so it can
// be embedded in a file name. Path separators and dots become underscores.
func SafeName(name string) string {
	if name = sanitizeName(name); name == "" {
		return DefaultCompanyName
	}
	return name
}

func sanitizeName(name string) string {
	return strings.Trim(unsafeFileChars.ReplaceAllString(name, "_"), "_")
}
