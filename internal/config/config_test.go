package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/campus-ats/internal/feedback"
	"github.com/jonathan/campus-ats/internal/scoring"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	return tmpFile
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"weights": {"skill_match": 0.5, "experience": 0.2, "education": 0.1, "keyword_match": 0.15, "format": 0.05},
		"batch_concurrency": 8,
		"verbose": true
	}`

	cfg, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.NotNil(t, cfg.Weights)
	assert.Equal(t, 0.5, cfg.Weights.SkillMatch)
	assert.Equal(t, 0.15, cfg.Weights.KeywordMatch)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.True(t, cfg.Verbose)
	assert.Nil(t, cfg.FormatPenalties)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: `{"job_url": "https://example.com"}`},
		{name: "weight out of range", content: `{"weights": {"skill_match": 2, "experience": 0, "education": 0, "keyword_match": 0, "format": 0}}`},
		{name: "incomplete section", content: `{"feedback_thresholds": {"skill_match": 70}}`},
		{name: "zero concurrency", content: `{"batch_concurrency": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "does not match schema")
		})
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	badWeights := scoring.Weights{SkillMatch: 0.5, Experience: 0.5, Education: 0.5}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "defaults", cfg: Default()},
		{name: "weights must sum to one", cfg: Config{Weights: &badWeights}, wantErr: "sum to 1.0"},
		{name: "negative concurrency", cfg: Config{BatchConcurrency: -1}, wantErr: "BatchConcurrency"},
		{name: "missing vocabulary", cfg: Config{VocabularyPath: "/nonexistent/vocab.json"}, wantErr: "vocabulary file not found"},
		{name: "threshold out of range", cfg: Config{FeedbackThresholds: &feedback.Thresholds{SkillMatch: 120}}, wantErr: "SkillMatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	weights := scoring.Weights{SkillMatch: 1}
	cfg := &Config{Weights: &weights, BatchConcurrency: 2}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, weights, *merged.Weights)
	assert.Equal(t, 2, merged.BatchConcurrency)
	assert.Equal(t, scoring.DefaultFormatPenalties(), *merged.FormatPenalties)
	assert.Equal(t, feedback.DefaultThresholds(), *merged.FeedbackThresholds)
	assert.Equal(t, 20, merged.MinExtractedChars)
}

func TestScoringConfigAndThresholds(t *testing.T) {
	var empty Config
	assert.Equal(t, scoring.DefaultConfig(), empty.ScoringConfig())
	assert.Equal(t, feedback.DefaultThresholds(), empty.Thresholds())

	penalties := scoring.DefaultFormatPenalties()
	penalties.MinTextLength = 500
	cfg := Config{FormatPenalties: &penalties}
	assert.Equal(t, 500, cfg.ScoringConfig().FormatPenalties.MinTextLength)
	assert.Equal(t, scoring.DefaultWeights(), cfg.ScoringConfig().Weights)
}

func TestResolve(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("environment variable", func(t *testing.T) {
		path := writeConfig(t, `{"batch_concurrency": 16}`)
		t.Setenv(EnvConfigPath, path)
		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, 16, cfg.BatchConcurrency)
		assert.Equal(t, scoring.DefaultWeights(), *cfg.Weights)
	})

	t.Run("explicit path wins", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/nonexistent/config.json")
		path := writeConfig(t, `{"min_extracted_chars": 50}`)
		cfg, err := Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.MinExtractedChars)
	})

	t.Run("invalid weights", func(t *testing.T) {
		path := writeConfig(t, `{"weights": {"skill_match": 0.5, "experience": 0.5, "education": 0.5, "keyword_match": 0, "format": 0}}`)
		_, err := Resolve(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum to 1.0")
	})
}
