package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRequirement_Threshold(t *testing.T) {
	job := JobRequirement{Title: "Data Analyst"}
	assert.Equal(t, DefaultMinimumATSScore, job.Threshold())

	zero := job.WithThreshold(0)
	assert.Equal(t, 0.0, zero.Threshold())
	assert.Nil(t, job.MinimumATSScore, "WithThreshold must not modify the receiver")
}

func TestJobRequirement_WithDefaults(t *testing.T) {
	job := JobRequirement{Title: "Data Analyst"}.WithDefaults()
	require.NotNil(t, job.MinimumATSScore)
	assert.Equal(t, DefaultMinimumATSScore, *job.MinimumATSScore)

	kept := JobRequirement{Title: "Data Analyst"}.WithThreshold(0).WithDefaults()
	assert.Equal(t, 0.0, kept.Threshold())
}

func TestJobRequirement_ThresholdJSON(t *testing.T) {
	var unset JobRequirement
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","required_skills":[]}`), &unset))
	assert.Nil(t, unset.MinimumATSScore)

	var zero JobRequirement
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","required_skills":[],"minimum_ats_score":0}`), &zero))
	require.NotNil(t, zero.MinimumATSScore)
	assert.Equal(t, 0.0, zero.Threshold())

	data, err := json.Marshal(JobRequirement{Title: "x", EducationLevel: EducationBachelor})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"education_level":"bachelor"`)
	assert.NotContains(t, string(data), "minimum_ats_score")
}

func TestJobRequirement_Validate(t *testing.T) {
	tests := []struct {
		name      string
		job       JobRequirement
		wantField string
	}{
		{
			name: "valid",
			job:  JobRequirement{Title: "Backend Engineer", RequiredSkills: []string{"python"}}.WithThreshold(70),
		},
		{
			name: "valid without skills",
			job:  JobRequirement{Title: "Intern"},
		},
		{
			name:      "empty title",
			job:       JobRequirement{Title: "  "},
			wantField: "title",
		},
		{
			name:      "unknown education level",
			job:       JobRequirement{Title: "x", EducationLevel: EducationLevel(7)},
			wantField: "education_level",
		},
		{
			name:      "negative years",
			job:       JobRequirement{Title: "x", YearsOfExperience: -1},
			wantField: "JobRequirement.YearsOfExperience",
		},
		{
			name:      "threshold above 100",
			job:       JobRequirement{Title: "x"}.WithThreshold(101),
			wantField: "JobRequirement.MinimumATSScore",
		},
		{
			name:      "empty skill name",
			job:       JobRequirement{Title: "x", RequiredSkills: []string{"python", ""}},
			wantField: "JobRequirement.RequiredSkills[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var stateErr *InvalidStateError
			require.True(t, errors.As(err, &stateErr), "got %v", err)
			assert.Equal(t, tt.wantField, stateErr.Field)
		})
	}
}

func TestResumeRecord_Helpers(t *testing.T) {
	r := ResumeRecord{Education: []EducationEntry{
		{Degree: "B.Sc. Physics", Level: EducationBachelor},
		{Degree: "M.Sc. Physics", Level: EducationMaster},
	}}
	assert.Equal(t, EducationMaster, r.HighestEducationLevel())
	assert.Equal(t, EducationNone, (&ResumeRecord{}).HighestEducationLevel())

	assert.False(t, Contact{}.HasAny())
	assert.True(t, Contact{Phone: "555-0100"}.HasAny())
}

func TestInvalidStateError(t *testing.T) {
	cause := errors.New("boom")
	err := &InvalidStateError{Field: "evaluation", Message: "feedback requested for a passing evaluation", Cause: cause}
	assert.Equal(t, "invalid state in evaluation: feedback requested for a passing evaluation", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid state: bad", (&InvalidStateError{Message: "bad"}).Error())
}
