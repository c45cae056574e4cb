// Package scoring computes the weighted ATS score of a resume against a job requirement.
package scoring

import (
	"github.com/jonathan/campus-ats/internal/skills"
	"github.com/jonathan/campus-ats/internal/types"
)

// Engine scores resumes. It holds only read-only configuration and may be
// shared between goroutines.
type Engine struct {
	matcher *skills.Matcher
	cfg     Config
}

// NewEngine creates an Engine after validating cfg.
func NewEngine(matcher *skills.Matcher, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{matcher: matcher, cfg: cfg}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate scores resume against job. It fails only when the job requirement is
// invalid or the resume is missing; the result is a pure function of its inputs.
func (e *Engine) Evaluate(resume *types.ResumeRecord, job types.JobRequirement) (*types.EvaluationResult, error) {
	if resume == nil {
		return nil, &types.InvalidStateError{Field: "resume", Message: "resume record is required"}
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	match := e.matcher.Match(resume.Skills, job.RequiredSkills, job.PreferredSkills)
	keywords := skills.KeywordRelevance(resume.RawText, job.Keywords)
	format, issues := FormatScore(resume, e.cfg.FormatPenalties)

	sub := types.SubScores{
		SkillMatch:   round2(clamp(skills.WeightedScore(match))),
		Education:    round2(clamp(EducationScore(resume.HighestEducationLevel(), job.EducationLevel))),
		Experience:   round2(clamp(ExperienceScore(resume.TotalExperienceYears, job.YearsOfExperience))),
		KeywordMatch: round2(clamp(keywords.Score)),
		Format:       round2(format),
	}

	threshold := job.Threshold()
	ats := round2(clamp(Composite(sub, e.cfg.Weights)))

	return &types.EvaluationResult{
		ATSScore:               ats,
		SubScores:              sub,
		Passed:                 ats >= threshold,
		MinimumATSScore:        threshold,
		MatchedSkills:          match.Matched,
		MissingSkills:          match.Missing,
		MatchedPreferredSkills: match.MatchedPreferred,
		MissingPreferredSkills: match.MissingPreferred,
		MatchedKeywords:        keywords.Found,
		MissingKeywords:        keywords.Missing,
		MissingByCategory:      match.MissingByCategory,
		FormatIssues:           issues,
	}, nil
}

// Composite is the weighted sum of the sub-scores.
func Composite(s types.SubScores, w Weights) float64 {
	return w.SkillMatch*s.SkillMatch +
		w.Experience*s.Experience +
		w.Education*s.Education +
		w.KeywordMatch*s.KeywordMatch +
		w.Format*s.Format
}
