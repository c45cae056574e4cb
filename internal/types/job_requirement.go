// Package types provides type definitions for structured data used throughout the campus-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMinimumATSScore is the pass threshold used when a job does not set one.
const DefaultMinimumATSScore = 50.0

// JobRequirement is the structured job posting a resume is scored against.
type JobRequirement struct {
	Title             string         `json:"title" validate:"required"`
	RequiredSkills    []string       `json:"required_skills" validate:"dive,required"`
	PreferredSkills   []string       `json:"preferred_skills,omitempty" validate:"dive,required"`
	EducationLevel    EducationLevel `json:"education_level"`
	YearsOfExperience float64        `json:"years_of_experience" validate:"gte=0"`
	Keywords          []string       `json:"keywords,omitempty" validate:"dive,required"`
	// MinimumATSScore is a pointer so an explicit 0 can be told apart from "unset".
	MinimumATSScore *float64 `json:"minimum_ats_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	Description     string   `json:"description,omitempty"`
}

// Threshold returns the pass threshold, falling back to DefaultMinimumATSScore.
func (j *JobRequirement) Threshold() float64 {
	if j.MinimumATSScore == nil {
		return DefaultMinimumATSScore
	}
	return *j.MinimumATSScore
}

// WithThreshold returns a copy of the job with the given pass threshold.
func (j JobRequirement) WithThreshold(score float64) JobRequirement {
	j.MinimumATSScore = &score
	return j
}

// WithDefaults returns a copy of the job with an explicit threshold, using
// DefaultMinimumATSScore when none is set.
func (j JobRequirement) WithDefaults() JobRequirement {
	if j.MinimumATSScore == nil {
		return j.WithThreshold(DefaultMinimumATSScore)
	}
	return j
}

// Validate checks the job requirement and reports problems as *InvalidStateError.
func (j *JobRequirement) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return &InvalidStateError{Field: "title", Message: "job title must not be empty"}
	}
	if !j.EducationLevel.Valid() {
		return &InvalidStateError{Field: "education_level", Message: fmt.Sprintf("unknown education level %d", int(j.EducationLevel))}
	}

	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &InvalidStateError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
				Cause:   err,
			}
		}
		return &InvalidStateError{Message: "invalid job requirement", Cause: err}
	}
	return nil
}
