package ingestion

import (
	"regexp"
	"strings"
)

// escaped specials are parked in the private use area while markup is removed
const (
	escapable  = "&%$#_{}"
	escapeBase = '\uE000'
)

var (
	latexComment = regexp.MustCompile(`(^|[^\\])%.*`)
	// environments whose content is layout, not prose
	latexBeginEnd  = regexp.MustCompile(`\\(begin|end)\{[^}]*\}(\{[^}]*\}|\[[^\]]*\])*`)
	latexCommand   = regexp.MustCompile(`\\[a-zA-Z@]+\*?(\[[^\]]*\])?`)
	latexEscaped   = regexp.MustCompile(`\\([&%$#_{}])`)
	latexLineBreak = regexp.MustCompile(`\\\\(\[[^\]]*\])?`)
)

// StripLaTeX reduces LaTeX resume source to readable text: comments,
// environment markers and command names are removed while their brace
// arguments are kept, so \textbf{Go} becomes Go.
func StripLaTeX(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = latexComment.ReplaceAllString(line, "$1")
	}
	text := strings.Join(lines, "\n")

	text = latexLineBreak.ReplaceAllString(text, "\n")
	text = latexBeginEnd.ReplaceAllString(text, "")
	text = latexEscaped.ReplaceAllStringFunc(text, func(m string) string {
		return string(escapeBase + rune(strings.IndexByte(escapable, m[1])))
	})
	text = latexCommand.ReplaceAllString(text, " ")
	text = strings.NewReplacer("{", "", "}", "", "~", " ", "$", "", "&", " ").Replace(text)
	text = strings.Map(func(r rune) rune {
		if r >= escapeBase && r < escapeBase+rune(len(escapable)) {
			return rune(escapable[r-escapeBase])
		}
		return r
	}, text)

	return CleanText(text)
}
