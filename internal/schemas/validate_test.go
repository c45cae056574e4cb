package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_AllEmbedded(t *testing.T) {
	for _, name := range []string{Vocabulary, JobRequirement, Config, BatchManifest, EvaluationResult} {
		t.Run(name, func(t *testing.T) {
			schema, err := Schema(name)
			require.NoError(t, err)
			assert.Contains(t, schema, `"$schema"`)
		})
	}
}

func TestSchema_Unknown(t *testing.T) {
	_, err := Schema("nope")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidate_JobRequirement(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{
			name:      "valid job",
			doc:       `{"title":"Backend Engineer","required_skills":["python","sql"],"education_level":"bachelor","years_of_experience":2}`,
			wantError: false,
		},
		{
			name:      "missing title",
			doc:       `{"required_skills":["python"]}`,
			wantError: true,
		},
		{
			name:      "negative years",
			doc:       `{"title":"x","required_skills":[],"years_of_experience":-1}`,
			wantError: true,
		},
		{
			name:      "threshold above 100",
			doc:       `{"title":"x","required_skills":[],"minimum_ats_score":120}`,
			wantError: true,
		},
		{
			name:      "skills wrong type",
			doc:       `{"title":"x","required_skills":"python"}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(JobRequirement, []byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr, "should be ValidationError, not SchemaLoadError")
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_Vocabulary(t *testing.T) {
	err := Validate(Vocabulary, []byte(`{"version":1,"skills":[{"name":"python","category":"Programming Languages","aliases":["py"]}]}`))
	assert.NoError(t, err)

	err = Validate(Vocabulary, []byte(`{"skills":[{"category":"Tools"}]}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "name")
}

func TestValidate_Config(t *testing.T) {
	assert.NoError(t, Validate(Config, []byte(`{"weights":{"skill_match":0.5,"experience":0.5,"education":0,"keyword_match":0,"format":0},"batch_concurrency":4}`)))

	err := Validate(Config, []byte(`{"weights":{"skill_match":2}}`))
	assert.Error(t, err)

	// a section that is present must be complete
	err = Validate(Config, []byte(`{"weights":{"skill_match":0.5,"experience":0.5}}`))
	assert.Error(t, err)

	err = Validate(Config, []byte(`{"unknown_key":true}`))
	assert.Error(t, err)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(JobRequirement, []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"Analyst","required_skills":["excel"]}`), 0644))

	assert.NoError(t, ValidateFile(JobRequirement, path))

	err := ValidateFile(JobRequirement, filepath.Join(tmpDir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`
	assert.NoError(t, ValidateJSONString(schemaContent, `{"name":"ok"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`
	err := ValidateJSONString(schemaContent, `{"name":42}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "title", Message: "is required"},
		{Field: "(root)", Message: "bad"},
	}}
	assert.Equal(t, "validation failed:\n  1. title: is required\n  2. (root): bad\n", err.Error())
}
