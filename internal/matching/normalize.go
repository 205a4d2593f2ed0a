// Package matching compares resume keywords with job description keywords and
// produces an ATS-style match report.
package matching

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Normalize lower-cases a keyword and trims surrounding whitespace. Invalid
// UTF-8 runs become U+FFFD so the keyword survives a JSON round trip unchanged.
func Normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(strings.ToValidUTF8(keyword, "\uFFFD")))
}

// SkillSet is a normalized, case-insensitively deduplicated keyword set.
// It keeps first-seen order so that everything derived from it is deterministic.
type SkillSet struct {
	items []string
	index map[string]int
}

// NewSkillSet normalizes values and drops empties and duplicates.
// The input slice is not modified.
func NewSkillSet(values []string) *SkillSet {
	s := &SkillSet{
		items: make([]string, 0, len(values)),
		index: make(map[string]int, len(values)),
	}
	for _, v := range values {
		s.add(v)
	}
	return s
}

func (s *SkillSet) add(value string) bool {
	normalized := Normalize(value)
	if normalized == "" {
		return false
	}
	if _, exists := s.index[normalized]; exists {
		return false
	}
	s.index[normalized] = len(s.items)
	s.items = append(s.items, normalized)
	return true
}

// Contains reports whether the normalized form of keyword is in the set
func (s *SkillSet) Contains(keyword string) bool {
	_, ok := s.index[Normalize(keyword)]
	return ok
}

// Len returns the number of distinct keywords
func (s *SkillSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the keywords in first-seen order
func (s *SkillSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// CoerceKeywords converts decoded JSON values into keyword strings.
// Strings pass through; numbers and booleans are formatted as text.
// Anything else (null, objects, arrays) is rejected with an InvalidInputError.
func CoerceKeywords(field string, values []any) ([]string, error) {
	out := make([]string, 0, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case string:
			out = append(out, val)
		case json.Number:
			out = append(out, val.String())
		case float64:
			out = append(out, strconv.FormatFloat(val, 'f', -1, 64))
		case int:
			out = append(out, strconv.Itoa(val))
		case bool:
			out = append(out, strconv.FormatBool(val))
		default:
			return nil, &InvalidInputError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("expected a string, got %T", v),
			}
		}
	}
	return out, nil
}

// DecodeKeywords decodes a JSON array into keyword strings using CoerceKeywords.
func DecodeKeywords(field string, data []byte) ([]string, error) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidInputError{
			Field:   field,
			Message: "expected a JSON array of strings",
			Cause:   err,
		}
	}
	return CoerceKeywords(field, raw)
}
