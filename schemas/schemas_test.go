package schemas_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-matcher/internal/schemas"
	root "github.com/jonathan/ats-matcher/schemas"
)

var schemaFiles = []string{root.MatchResult, root.JobKeywords, root.ResumeKeywords}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := root.FS.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v map[string]any
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON")
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
			assert.NotEmpty(t, v["title"])
		})
	}
}

func TestMatchResultSchema(t *testing.T) {
	valid := `{
		"matched_exact": ["python"],
		"matched_fuzzy": ["pytho"],
		"fuzzy_pairs": [{"job_keyword": "pytho", "resume_keyword": "python", "similarity": 83.3}],
		"missing": [],
		"score": 100,
		"suggestions": []
	}`
	assert.NoError(t, schemas.ValidateBytes(root.MatchResult, []byte(valid)))

	outOfRange := `{
		"matched_exact": [], "matched_fuzzy": [], "fuzzy_pairs": [],
		"missing": ["go"], "score": 140, "suggestions": []
	}`
	assert.Error(t, schemas.ValidateBytes(root.MatchResult, []byte(outOfRange)))
}

func TestJobKeywordsSchema(t *testing.T) {
	assert.NoError(t, schemas.ValidateBytes(root.JobKeywords, []byte(`{"required": ["go"]}`)))
	assert.NoError(t, schemas.ValidateBytes(root.JobKeywords, []byte(`{"company": "Acme", "keywords": ["sql"]}`)))
	assert.Error(t, schemas.ValidateBytes(root.JobKeywords, []byte(`{"company": "Acme"}`)))
	assert.Error(t, schemas.ValidateBytes(root.JobKeywords, []byte(`{"required": [1, 2]}`)))
}

func TestResumeKeywordsSchema(t *testing.T) {
	assert.NoError(t, schemas.ValidateBytes(root.ResumeKeywords, []byte(`{"skills": ["go"], "education": []}`)))
	assert.Error(t, schemas.ValidateBytes(root.ResumeKeywords, []byte(`{"skills": []}`)))
}
