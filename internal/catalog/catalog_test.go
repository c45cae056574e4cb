package catalog

import (
	"testing"

	"github.com/jonathan/campus-ats/internal/types"
	"github.com/jonathan/campus-ats/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Names(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{
		"data_scientist",
		"devops_engineer",
		"finance_analyst",
		"product_manager",
		"software_engineer",
	}, c.Names())
}

func TestDefault_SkillsAreInVocabulary(t *testing.T) {
	c := Default()
	vocab := vocabulary.Default()

	for _, name := range c.Names() {
		job, ok := c.Get(name)
		require.True(t, ok)
		for _, s := range append(append([]string{}, job.RequiredSkills...), job.PreferredSkills...) {
			assert.True(t, vocab.Contains(s), "%s: %q not in vocabulary", name, s)
		}
	}
}

func TestGet(t *testing.T) {
	c := Default()

	tests := []struct {
		query     string
		wantTitle string
		wantOK    bool
	}{
		{query: "software_engineer", wantTitle: "Software Engineer - Full Stack Developer", wantOK: true},
		{query: "Software Engineer", wantTitle: "Software Engineer - Full Stack Developer", wantOK: true},
		{query: "data-scientist", wantTitle: "Data Scientist", wantOK: true},
		{query: "devops", wantTitle: "DevOps Engineer", wantOK: true},
		{query: "senior_finance_analyst_role", wantTitle: "Financial Analyst", wantOK: true},
		{query: "finance", wantTitle: "Financial Analyst", wantOK: true},
		{query: "astronaut", wantOK: false},
		{query: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			job, ok := c.Get(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantTitle, job.Title)
			}
		})
	}
}

func TestGet_ReturnsCopies(t *testing.T) {
	c := Default()

	job, ok := c.Get("data_scientist")
	require.True(t, ok)
	assert.Equal(t, types.EducationMaster, job.EducationLevel)
	assert.Equal(t, 60.0, job.Threshold())

	job.RequiredSkills[0] = "cobol"
	*job.MinimumATSScore = 1

	again, _ := c.Get("data_scientist")
	assert.Equal(t, "python", again.RequiredSkills[0])
	assert.Equal(t, 60.0, again.Threshold())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{`},
		{name: "empty name", data: `[{"name": " ", "requirement": {"title": "x", "required_skills": []}}]`},
		{name: "schema violation", data: `[{"name": "a", "requirement": {"title": "x"}}]`},
		{name: "negative years", data: `[{"name": "a", "requirement": {"title": "x", "required_skills": [], "years_of_experience": -2}}]`},
		{name: "unknown education", data: `[{"name": "a", "requirement": {"title": "x", "required_skills": [], "education_level": "wizard"}}]`},
		{name: "duplicate", data: `[{"name": "a", "requirement": {"title": "x", "required_skills": []}}, {"name": "A", "requirement": {"title": "y", "required_skills": []}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
