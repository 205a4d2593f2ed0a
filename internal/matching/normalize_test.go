package matching

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "python", Normalize("  Python\t"))
	assert.Equal(t, "node.js", Normalize("Node.JS"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalize_InvalidUTF8(t *testing.T) {
	got := Normalize("\xff\xfeGo")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "\uFFFDgo", got)

	result, err := Score([]string{"go"}, []string{"go", "\xff\xfe"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"\uFFFD"}, result.Missing)

	data, err := json.Marshal(result.Missing)
	require.NoError(t, err)
	var decoded []string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.Missing, decoded)
}

func TestNewSkillSet(t *testing.T) {
	set := NewSkillSet([]string{"Go", "go ", "", "SQL", "  ", "sql", "Docker"})

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []string{"go", "sql", "docker"}, set.Items())
	assert.True(t, set.Contains("DOCKER"))
	assert.False(t, set.Contains("rust"))
}

func TestSkillSet_ItemsReturnsCopy(t *testing.T) {
	set := NewSkillSet([]string{"go"})
	items := set.Items()
	items[0] = "changed"

	assert.Equal(t, []string{"go"}, set.Items())
}

func TestCoerceKeywords(t *testing.T) {
	got, err := CoerceKeywords("resume", []any{"Go", 3.0, true, json.Number("42")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "3", "true", "42"}, got)
}

func TestCoerceKeywords_RejectsNonScalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"null", nil},
		{"object", map[string]any{"skill": "go"}},
		{"array", []any{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CoerceKeywords("job", []any{"go", tt.value})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inputErr *InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, "job[1]", inputErr.Field)
		})
	}
}

func TestDecodeKeywords(t *testing.T) {
	got, err := DecodeKeywords("resume", []byte(`["Go", "SQL", 7]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "7"}, got)

	_, err = DecodeKeywords("resume", []byte(`{"skills": ["Go"]}`))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "resume"))

	_, err = DecodeKeywords("resume", []byte(`["Go", {"x": 1}]`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100.0, Similarity("go", "go"))
	assert.InDelta(t, 83.33, Similarity("pytho", "python"), 0.01)
	assert.Equal(t, Similarity("kubernetes", "kubernets"), Similarity("kubernets", "kubernetes"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestBestMatch_TieKeepsFirst(t *testing.T) {
	best, score, ok := bestMatch("cat", []string{"bat", "hat", "dog"})
	require.True(t, ok)
	assert.Equal(t, "bat", best)
	assert.InDelta(t, 66.67, score, 0.01)

	_, _, ok = bestMatch("cat", nil)
	assert.False(t, ok)
}
