// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/campus-ats/internal/feedback"
	"github.com/jonathan/campus-ats/internal/ingestion"
	"github.com/jonathan/campus-ats/internal/schemas"
	"github.com/jonathan/campus-ats/internal/scoring"
)

// EnvConfigPath names the environment variable consulted when no --config flag is given.
const EnvConfigPath = "ATS_CONFIG"

// DefaultBatchConcurrency is the number of batch entries evaluated at once.
const DefaultBatchConcurrency = 4

// Config represents the scoring configuration that can be loaded from a JSON file.
// All fields are optional. A section present in the file replaces the default
// section as a whole.
type Config struct {
	// Scoring
	Weights            *scoring.Weights         `json:"weights,omitempty"`             // Composite score weights, must sum to 1.0
	FormatPenalties    *scoring.FormatPenalties `json:"format_penalties,omitempty"`    // Deductions applied to the format sub-score
	FeedbackThresholds *feedback.Thresholds     `json:"feedback_thresholds,omitempty"` // Sub-score bars for rejection reasons and strengths

	// Extraction
	MinExtractedChars int    `json:"min_extracted_chars,omitempty" validate:"omitempty,gte=1"` // Fewer extracted characters means an unreadable document
	VocabularyPath    string `json:"vocabulary_path,omitempty"`                                // Custom skill vocabulary JSON file

	// Behavior
	BatchConcurrency int  `json:"batch_concurrency,omitempty" validate:"omitempty,gte=1"` // Parallel batch evaluations
	Verbose          bool `json:"verbose,omitempty"`                                      // Print detailed summaries
}

// Default returns a fully populated configuration with the documented defaults.
func Default() Config {
	weights := scoring.DefaultWeights()
	penalties := scoring.DefaultFormatPenalties()
	thresholds := feedback.DefaultThresholds()
	return Config{
		Weights:            &weights,
		FormatPenalties:    &penalties,
		FeedbackThresholds: &thresholds,
		MinExtractedChars:  ingestion.MinTextLength,
		BatchConcurrency:   DefaultBatchConcurrency,
	}
}

// LoadConfig loads configuration from a JSON file. The document is checked
// against the config schema before it is decoded.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.Validate(schemas.Config, data); err != nil {
		var schemaErr *schemas.SchemaLoadError
		if errors.As(err, &schemaErr) {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Resolve picks the config file from path or, when path is empty, from the
// ATS_CONFIG environment variable. With neither set it returns Default().
// A loaded file is validated and merged over the defaults.
func Resolve(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.MergeWithDefaults(Default()), nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed %q constraint (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Weights != nil {
		if err := c.ScoringConfig().Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.VocabularyPath != "" {
		if _, err := os.Stat(c.VocabularyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.FormatPenalties == nil {
		result.FormatPenalties = defaults.FormatPenalties
	}
	if result.FeedbackThresholds == nil {
		result.FeedbackThresholds = defaults.FeedbackThresholds
	}
	if result.VocabularyPath == "" {
		result.VocabularyPath = defaults.VocabularyPath
	}
	if result.MinExtractedChars == 0 {
		result.MinExtractedChars = defaults.MinExtractedChars
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ScoringConfig returns the engine configuration, using defaults for unset sections.
func (c *Config) ScoringConfig() scoring.Config {
	cfg := scoring.DefaultConfig()
	if c.Weights != nil {
		cfg.Weights = *c.Weights
	}
	if c.FormatPenalties != nil {
		cfg.FormatPenalties = *c.FormatPenalties
	}
	return cfg
}

// Thresholds returns the feedback thresholds, using defaults when unset.
func (c *Config) Thresholds() feedback.Thresholds {
	if c.FeedbackThresholds == nil {
		return feedback.DefaultThresholds()
	}
	return *c.FeedbackThresholds
}
