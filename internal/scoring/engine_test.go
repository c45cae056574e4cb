package scoring

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/campus-ats/internal/skills"
	"github.com/jonathan/campus-ats/internal/types"
	"github.com/jonathan/campus-ats/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	vocab, err := vocabulary.New([]vocabulary.Entry{
		{Name: "python", Category: "Programming Languages"},
		{Name: "sql", Category: "Programming Languages"},
		{Name: "fastapi", Category: "Frameworks"},
		{Name: "aws", Category: "Cloud Platforms", Aliases: []string{"amazon web services"}},
		{Name: "docker", Category: "DevOps"},
	})
	require.NoError(t, err)
	engine, err := NewEngine(skills.NewMatcher(vocab), DefaultConfig())
	require.NoError(t, err)
	return engine
}

func completeResume() *types.ResumeRecord {
	text := "Jane Doe\njane@example.com\n" +
		"Summary\nBackend engineer focused on python services and sql data models for analytics teams.\n" +
		"Experience\nSoftware Engineer at Acme Corp, Jan 2020 - Jan 2023, built APIs with python and docker.\n" +
		"Education\nBachelor of Science in Computer Science, State University\n"
	return &types.ResumeRecord{
		RawText:              text,
		Contact:              types.Contact{Name: "Jane Doe", Email: "jane@example.com"},
		Skills:               []string{"docker", "python", "sql"},
		Education:            []types.EducationEntry{{Degree: "Bachelor of Science", Level: types.EducationBachelor}},
		Experience:           []types.ExperienceEntry{{Title: "Software Engineer", Organization: "Acme Corp", DurationYears: 3}},
		Certifications:       []string{},
		TotalExperienceYears: 3,
	}
}

func sparseResume() *types.ResumeRecord {
	return &types.ResumeRecord{
		RawText:        "python developer",
		Skills:         []string{"python"},
		Education:      []types.EducationEntry{},
		Experience:     []types.ExperienceEntry{},
		Certifications: []string{},
	}
}

func TestEvaluate_PassingResume(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{
		Title:             "Backend Engineer",
		RequiredSkills:    []string{"python", "sql"},
		EducationLevel:    types.EducationBachelor,
		YearsOfExperience: 2,
		Keywords:          []string{"python", "APIs"},
	}.WithThreshold(60)

	result, err := engine.Evaluate(completeResume(), job)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.ATSScore)
	assert.True(t, result.Passed)
	assert.Equal(t, 60.0, result.MinimumATSScore)
	assert.Equal(t, types.SubScores{SkillMatch: 100, Education: 100, Experience: 100, KeywordMatch: 100, Format: 100}, result.SubScores)
	assert.Empty(t, result.FormatIssues)
	assert.Empty(t, result.MissingSkills)
}

func TestEvaluate_FailingResume(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{
		Title:             "Cloud Engineer",
		RequiredSkills:    []string{"python", "fastapi", "sql", "aws"},
		EducationLevel:    types.EducationBachelor,
		YearsOfExperience: 3,
		Keywords:          []string{"python", "kubernetes"},
	}.WithThreshold(60)

	result, err := engine.Evaluate(sparseResume(), job)
	require.NoError(t, err)

	assert.Equal(t, 25.0, result.SubScores.SkillMatch)
	assert.Equal(t, 0.0, result.SubScores.Experience)
	assert.Equal(t, 0.0, result.SubScores.Education)
	assert.Equal(t, 50.0, result.SubScores.KeywordMatch)
	assert.Equal(t, 25.0, result.SubScores.Format)
	assert.InDelta(t, 23.75, result.ATSScore, 1e-9)
	assert.False(t, result.Passed)
	assert.Equal(t, []string{"python"}, result.MatchedSkills)
	assert.Equal(t, []string{"fastapi", "sql", "aws"}, result.MissingSkills)
	assert.Equal(t, []string{"kubernetes"}, result.MissingKeywords)
	assert.Len(t, result.FormatIssues, 4)
}

func TestEvaluate_DefaultThreshold(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{Title: "Analyst", RequiredSkills: []string{"sql"}}

	result, err := engine.Evaluate(completeResume(), job)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultMinimumATSScore, result.MinimumATSScore)
	assert.True(t, result.Passed)
}

func TestEvaluate_ThresholdBoundary(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{
		Title:             "Cloud Engineer",
		RequiredSkills:    []string{"python", "fastapi", "sql", "aws"},
		EducationLevel:    types.EducationBachelor,
		YearsOfExperience: 3,
		Keywords:          []string{"python", "kubernetes"},
	}

	at, err := engine.Evaluate(sparseResume(), job.WithThreshold(23.75))
	require.NoError(t, err)
	assert.True(t, at.Passed)

	above, err := engine.Evaluate(sparseResume(), job.WithThreshold(23.76))
	require.NoError(t, err)
	assert.False(t, above.Passed)
}

func TestEvaluate_EmptyRequiredSkills(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{Title: "Generalist"}

	for _, resume := range []*types.ResumeRecord{completeResume(), sparseResume(), {}} {
		result, err := engine.Evaluate(resume, job)
		require.NoError(t, err)
		assert.Equal(t, 100.0, result.SubScores.SkillMatch)
	}
}

func TestEvaluate_NoExperienceRequired(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{Title: "Intern", RequiredSkills: []string{"python"}}

	for _, years := range []float64{0, 0.5, 12} {
		resume := sparseResume()
		resume.TotalExperienceYears = years
		result, err := engine.Evaluate(resume, job)
		require.NoError(t, err)
		assert.Equal(t, 100.0, result.SubScores.Experience)
	}
}

func TestEvaluate_ScoresStayInRange(t *testing.T) {
	engine := testEngine(t)
	jobs := []types.JobRequirement{
		{Title: "a"},
		{Title: "b", RequiredSkills: []string{"python"}, PreferredSkills: []string{"aws", "docker"}, YearsOfExperience: 0.5},
		{Title: "c", RequiredSkills: []string{"cobol"}, EducationLevel: types.EducationDoctorate, YearsOfExperience: 20, Keywords: []string{"mainframe"}},
	}
	resumes := []*types.ResumeRecord{completeResume(), sparseResume(), {}, {TotalExperienceYears: 400}}

	for _, job := range jobs {
		for _, resume := range resumes {
			result, err := engine.Evaluate(resume, job)
			require.NoError(t, err)
			for _, v := range []float64{
				result.ATSScore,
				result.SubScores.SkillMatch,
				result.SubScores.Education,
				result.SubScores.Experience,
				result.SubScores.KeywordMatch,
				result.SubScores.Format,
			} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 100.0)
			}
		}
	}
}

func TestEvaluate_PartitionsRequiredSkills(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{Title: "x", RequiredSkills: []string{"Python", "Amazon Web Services", "fastapi", "sql"}}

	result, err := engine.Evaluate(completeResume(), job)
	require.NoError(t, err)

	union := append(append([]string{}, result.MatchedSkills...), result.MissingSkills...)
	assert.ElementsMatch(t, []string{"python", "aws", "fastapi", "sql"}, union)
	for _, m := range result.MatchedSkills {
		assert.NotContains(t, result.MissingSkills, m)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	engine := testEngine(t)
	job := types.JobRequirement{
		Title:           "Backend Engineer",
		RequiredSkills:  []string{"python", "aws"},
		PreferredSkills: []string{"docker"},
		Keywords:        []string{"analytics", "graphql"},
	}

	first, err := engine.Evaluate(completeResume(), job)
	require.NoError(t, err)
	second, err := engine.Evaluate(completeResume(), job)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluate_InvalidInputs(t *testing.T) {
	engine := testEngine(t)

	tests := []struct {
		name   string
		resume *types.ResumeRecord
		job    types.JobRequirement
	}{
		{name: "nil resume", resume: nil, job: types.JobRequirement{Title: "x"}},
		{name: "empty title", resume: completeResume(), job: types.JobRequirement{Title: "  "}},
		{name: "negative years", resume: completeResume(), job: types.JobRequirement{Title: "x", YearsOfExperience: -1}},
		{name: "threshold above 100", resume: completeResume(), job: types.JobRequirement{Title: "x"}.WithThreshold(101)},
		{name: "unknown education level", resume: completeResume(), job: types.JobRequirement{Title: "x", EducationLevel: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Evaluate(tt.resume, tt.job)
			require.Error(t, err)
			assert.Nil(t, result)
			var stateErr *types.InvalidStateError
			assert.True(t, errors.As(err, &stateErr))
		})
	}
}

func TestEducationScore(t *testing.T) {
	tests := []struct {
		resume, job types.EducationLevel
		want        float64
	}{
		{types.EducationNone, types.EducationNone, 100},
		{types.EducationDoctorate, types.EducationBachelor, 100},
		{types.EducationBachelor, types.EducationBachelor, 100},
		{types.EducationBachelor, types.EducationMaster, 66.67},
		{types.EducationAssociate, types.EducationDoctorate, 25},
		{types.EducationNone, types.EducationBachelor, 0},
	}
	for _, tt := range tests {
		t.Run(tt.resume.String()+"_vs_"+tt.job.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, EducationScore(tt.resume, tt.job), 0.01)
		})
	}
}

func TestExperienceScore(t *testing.T) {
	assert.Equal(t, 100.0, ExperienceScore(0, 0))
	assert.Equal(t, 100.0, ExperienceScore(7, 0))
	assert.Equal(t, 50.0, ExperienceScore(1, 2))
	assert.Equal(t, 100.0, ExperienceScore(10, 2))
	assert.Equal(t, 0.0, ExperienceScore(-3, 2))
}

func TestFormatScore(t *testing.T) {
	p := DefaultFormatPenalties()

	score, issues := FormatScore(completeResume(), p)
	assert.Equal(t, 100.0, score)
	assert.Empty(t, issues)

	score, issues = FormatScore(&types.ResumeRecord{}, p)
	assert.Equal(t, 0.0, score)
	assert.Len(t, issues, 5)

	short := completeResume()
	short.RawText = "too short"
	score, issues = FormatScore(short, p)
	assert.Equal(t, 75.0, score)
	require.Len(t, issues, 1)
	assert.True(t, strings.Contains(issues[0], "very short"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "weights do not sum to one", mutate: func(c *Config) { c.Weights.Format = 0.10 }, wantErr: "sum to 1.0"},
		{name: "negative weight", mutate: func(c *Config) {
			c.Weights.Format = -0.05
			c.Weights.SkillMatch = 0.50
		}, wantErr: "Format"},
		{name: "penalty above 100", mutate: func(c *Config) { c.FormatPenalties.ShortText = 150 }, wantErr: "ShortText"},
		{name: "rebalanced weights", mutate: func(c *Config) {
			c.Weights = Weights{SkillMatch: 0.5, Experience: 0.2, Education: 0.1, KeywordMatch: 0.2}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.SkillMatch = 0.9
	_, err := NewEngine(nil, cfg)
	assert.Error(t, err)
}

func TestComposite(t *testing.T) {
	s := types.SubScores{SkillMatch: 80, Experience: 50, Education: 100, KeywordMatch: 60, Format: 90}
	// 32 + 10 + 10 + 15 + 4.5
	assert.InDelta(t, 71.5, Composite(s, DefaultWeights()), 1e-9)
}
