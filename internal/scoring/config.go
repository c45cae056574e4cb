package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

const weightSumTolerance = 1e-9

// Weights are the coefficients of the composite score. They must sum to 1.
type Weights struct {
	SkillMatch   float64 `json:"skill_match" validate:"gte=0,lte=1"`
	Experience   float64 `json:"experience" validate:"gte=0,lte=1"`
	Education    float64 `json:"education" validate:"gte=0,lte=1"`
	KeywordMatch float64 `json:"keyword_match" validate:"gte=0,lte=1"`
	Format       float64 `json:"format" validate:"gte=0,lte=1"`
}

// DefaultWeights returns skills 40%, experience 20%, education 10%, keywords 25%, format 5%.
func DefaultWeights() Weights {
	return Weights{
		SkillMatch:   0.40,
		Experience:   0.20,
		Education:    0.10,
		KeywordMatch: 0.25,
		Format:       0.05,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.SkillMatch + w.Experience + w.Education + w.KeywordMatch + w.Format
}

// FormatPenalties are the deductions applied to the format sub-score.
type FormatPenalties struct {
	MissingContact    float64 `json:"missing_contact" validate:"gte=0,lte=100"`
	MissingSkills     float64 `json:"missing_skills" validate:"gte=0,lte=100"`
	ShortText         float64 `json:"short_text" validate:"gte=0,lte=100"`
	MissingEducation  float64 `json:"missing_education" validate:"gte=0,lte=100"`
	MissingExperience float64 `json:"missing_experience" validate:"gte=0,lte=100"`
	MinTextLength     int     `json:"min_text_length" validate:"gte=0"`
}

// DefaultFormatPenalties returns the documented deductions.
func DefaultFormatPenalties() FormatPenalties {
	return FormatPenalties{
		MissingContact:    20,
		MissingSkills:     30,
		ShortText:         25,
		MissingEducation:  15,
		MissingExperience: 15,
		MinTextLength:     200,
	}
}

// Config holds everything the engine can be tuned with.
type Config struct {
	Weights         Weights         `json:"weights"`
	FormatPenalties FormatPenalties `json:"format_penalties"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights:         DefaultWeights(),
		FormatPenalties: DefaultFormatPenalties(),
	}
}

// ConfigError reports an invalid engine configuration
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("scoring config error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("scoring config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Validate checks value ranges and that the weights sum to 1.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ConfigError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
				Cause:   err,
			}
		}
		return &ConfigError{Message: "invalid configuration", Cause: err}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return &ConfigError{Field: "weights", Message: fmt.Sprintf("weights must sum to 1.0, got %g", sum)}
	}
	return nil
}
