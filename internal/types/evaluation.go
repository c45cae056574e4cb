// Package types provides type definitions for structured data used throughout the campus-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SubScores holds the five weighted components of the composite score, each 0-100.
type SubScores struct {
	SkillMatch   float64 `json:"skill_match"`
	Education    float64 `json:"education"`
	Experience   float64 `json:"experience"`
	KeywordMatch float64 `json:"keyword_match"`
	Format       float64 `json:"format"`
}

// EvaluationResult is the outcome of scoring one resume against one job.
// A re-evaluation produces a new value; results are never mutated.
type EvaluationResult struct {
	ATSScore               float64             `json:"ats_score"`
	SubScores              SubScores           `json:"sub_scores"`
	Passed                 bool                `json:"passed"`
	MinimumATSScore        float64             `json:"minimum_ats_score"`
	MatchedSkills          []string            `json:"matched_skills"`
	MissingSkills          []string            `json:"missing_skills"`
	MatchedPreferredSkills []string            `json:"matched_preferred_skills"`
	MissingPreferredSkills []string            `json:"missing_preferred_skills"`
	MatchedKeywords        []string            `json:"matched_keywords"`
	MissingKeywords        []string            `json:"missing_keywords"`
	MissingByCategory      map[string][]string `json:"missing_by_category"`
	FormatIssues           []string            `json:"format_issues"`
}

// FeedbackReport explains a failing evaluation. It is only built when Passed is false.
//
// ImprovementRecommendations[i] answers ResumeWeaknesses[i]. When the ATS score
// is more than 10 points under the threshold, one score-gap recommendation is
// appended after the paired entries, so the list is then one longer.
type FeedbackReport struct {
	RejectionReasons           []string `json:"rejection_reasons"`
	MissingCriticalSkills      []string `json:"missing_critical_skills"`
	ResumeStrengths            []string `json:"resume_strengths"`
	ResumeWeaknesses           []string `json:"resume_weaknesses"`
	ImprovementRecommendations []string `json:"improvement_recommendations"`
	MistakeHighlights          []string `json:"mistake_highlights"`
	FormatIssues               []string `json:"format_issues"`
}
