// Package feedback explains why a resume failed the ATS threshold and what to change.
package feedback

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/campus-ats/internal/messages"
	"github.com/jonathan/campus-ats/internal/types"
)

const (
	maxHighlights   = 3
	maxListedSkills = 5
	largeScoreGap   = 20.0
	mediumScoreGap  = 10.0
)

// area is one scored component, in reporting priority order.
type area struct {
	key       string
	score     float64
	threshold float64
}

// Generator builds FeedbackReports. It is stateless apart from its thresholds.
type Generator struct {
	thresholds Thresholds
}

// NewGenerator creates a Generator with the given thresholds.
func NewGenerator(thresholds Thresholds) *Generator {
	return &Generator{thresholds: thresholds}
}

// Thresholds returns the generator's thresholds.
func (g *Generator) Thresholds() Thresholds {
	return g.thresholds
}

// Generate explains a failing evaluation. Asking for feedback on a passing
// result is an error. The output depends only on the inputs.
func (g *Generator) Generate(result *types.EvaluationResult, resume *types.ResumeRecord, job types.JobRequirement) (*types.FeedbackReport, error) {
	if result == nil {
		return nil, &types.InvalidStateError{Field: "evaluation", Message: "evaluation result is required"}
	}
	if result.Passed {
		return nil, &types.InvalidStateError{Field: "evaluation", Message: "feedback is only generated for failing evaluations"}
	}
	if resume == nil {
		resume = &types.ResumeRecord{}
	}

	b := &builder{result: result, resume: resume, job: job}
	areas := g.areas(result.SubScores)

	var failing []area
	for _, a := range areas {
		if a.score < a.threshold {
			failing = append(failing, a)
		}
	}

	report := &types.FeedbackReport{
		RejectionReasons:           []string{},
		MissingCriticalSkills:      append([]string{}, result.MissingSkills...),
		ResumeStrengths:            []string{},
		ResumeWeaknesses:           []string{},
		ImprovementRecommendations: []string{},
		MistakeHighlights:          []string{},
		FormatIssues:               append([]string{}, result.FormatIssues...),
	}

	for _, a := range failing {
		report.RejectionReasons = append(report.RejectionReasons, b.reason(a))
		weakness, recommendation := b.weakness(a)
		report.ResumeWeaknesses = append(report.ResumeWeaknesses, weakness)
		report.ImprovementRecommendations = append(report.ImprovementRecommendations, recommendation)
	}
	if len(report.RejectionReasons) == 0 {
		report.RejectionReasons = append(report.RejectionReasons, messages.Render("reason.fallback", map[string]string{
			"Score":     pct(result.ATSScore),
			"Threshold": pct(result.MinimumATSScore),
		}))
	}
	if len(report.ResumeWeaknesses) == 0 {
		report.ResumeWeaknesses = append(report.ResumeWeaknesses, messages.MustGet(messages.Feedback, "weakness.fallback"))
		report.ImprovementRecommendations = append(report.ImprovementRecommendations, messages.MustGet(messages.Feedback, "recommendation.fallback"))
	}
	// The score-gap advice trails the paired entries.
	if gap := b.gap(); gap > largeScoreGap {
		report.ImprovementRecommendations = append(report.ImprovementRecommendations, messages.Render("recommendation.gap_large", map[string]string{"Gap": pct(gap)}))
	} else if gap > mediumScoreGap {
		report.ImprovementRecommendations = append(report.ImprovementRecommendations, messages.Render("recommendation.gap_medium", map[string]string{"Gap": pct(gap)}))
	}

	for _, a := range areas {
		if a.score >= g.thresholds.Strength {
			report.ResumeStrengths = append(report.ResumeStrengths, b.strength(a))
		}
	}
	report.ResumeStrengths = append(report.ResumeStrengths, b.recordStrengths()...)
	if len(report.ResumeStrengths) == 0 {
		report.ResumeStrengths = append(report.ResumeStrengths, messages.MustGet(messages.Feedback, "strength.fallback"))
	}

	report.MistakeHighlights = b.highlights(failing)

	return report, nil
}

func (g *Generator) areas(s types.SubScores) []area {
	return []area{
		{key: "skill_match", score: s.SkillMatch, threshold: g.thresholds.SkillMatch},
		{key: "experience", score: s.Experience, threshold: g.thresholds.Experience},
		{key: "education", score: s.Education, threshold: g.thresholds.Education},
		{key: "keyword_match", score: s.KeywordMatch, threshold: g.thresholds.KeywordMatch},
		{key: "format", score: s.Format, threshold: g.thresholds.Format},
	}
}

type builder struct {
	result *types.EvaluationResult
	resume *types.ResumeRecord
	job    types.JobRequirement
}

func (b *builder) data(a area) map[string]string {
	return map[string]string{
		"Score":    pct(a.score),
		"Count":    strconv.Itoa(len(b.result.MissingSkills)),
		"Skills":   list(b.result.MissingSkills, maxListedSkills),
		"Years":    years(b.resume.TotalExperienceYears),
		"Required": b.required(a),
		"Have":     b.resume.HighestEducationLevel().String(),
		"Keywords": list(b.result.MissingKeywords, 0),
		"Issues":   strings.Join(b.result.FormatIssues, "; "),
	}
}

func (b *builder) required(a area) string {
	switch a.key {
	case "experience":
		return years(b.job.YearsOfExperience)
	case "education":
		return b.job.EducationLevel.String()
	}
	return ""
}

func (b *builder) reason(a area) string {
	data := b.data(a)
	key := a.key
	if key == "skill_match" && len(b.result.MissingSkills) == 0 {
		key = "skill_match_preferred"
		data["Count"] = strconv.Itoa(len(b.result.MissingPreferredSkills))
	}
	return messages.Render("reason."+key, data)
}

// weakness returns the weakness for a failing area together with its recommendation.
func (b *builder) weakness(a area) (string, string) {
	key := a.key
	data := b.data(a)
	switch {
	case key == "skill_match" && len(b.result.MissingSkills) == 0:
		key = "skill_match_preferred"
		data["Skills"] = list(b.result.MissingPreferredSkills, maxListedSkills)
	case key == "keyword_match" && len(b.result.MissingKeywords) == 0:
		return messages.MustGet(messages.Feedback, "weakness.fallback"), messages.MustGet(messages.Feedback, "recommendation.fallback")
	case key == "format" && len(b.result.FormatIssues) == 0:
		data["Issues"] = "missing standard sections"
	}
	return messages.Render("weakness."+key, data), messages.Render("recommendation."+key, data)
}

func (b *builder) strength(a area) string {
	return messages.Render("strength."+a.key, b.data(a))
}

func (b *builder) recordStrengths() []string {
	var out []string
	if len(b.result.MatchedSkills) > 0 {
		out = append(out, messages.Render("strength.matched_skills", map[string]string{
			"Skills": list(b.result.MatchedSkills, maxListedSkills),
		}))
	}
	if n := len(b.resume.Experience); n >= 2 {
		out = append(out, messages.Render("strength.positions", map[string]string{"Count": strconv.Itoa(n)}))
	}
	if len(b.resume.Certifications) > 0 {
		out = append(out, messages.Render("strength.certifications", map[string]string{
			"Items": list(b.resume.Certifications, 3),
		}))
	}
	if n := len(b.resume.Projects); n > 0 {
		out = append(out, messages.Render("strength.projects", map[string]string{"Count": strconv.Itoa(n)}))
	}
	return out
}

// highlights picks up to three failing areas, lowest score first.
func (b *builder) highlights(failing []area) []string {
	if len(failing) == 0 {
		return []string{messages.Render("highlight.fallback", map[string]string{
			"Gap":       pct(b.gap()),
			"Threshold": pct(b.result.MinimumATSScore),
		})}
	}

	ranked := append([]area{}, failing...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})
	if len(ranked) > maxHighlights {
		ranked = ranked[:maxHighlights]
	}

	out := make([]string, 0, len(ranked))
	for _, a := range ranked {
		key := a.key
		data := b.data(a)
		switch {
		case key == "skill_match" && len(b.result.MissingSkills) == 0:
			key = "skill_match_preferred"
		case key == "format":
			data["Issue"] = "add the standard resume sections"
			if len(b.result.FormatIssues) > 0 {
				data["Issue"] = strings.ToLower(b.result.FormatIssues[0])
			}
		}
		out = append(out, messages.Render("highlight."+key, data))
	}
	return out
}

func (b *builder) gap() float64 {
	gap := b.result.MinimumATSScore - b.result.ATSScore
	if gap < 0 {
		return 0
	}
	return gap
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func years(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// list joins up to limit items; limit <= 0 means all of them.
func list(items []string, limit int) string {
	if len(items) == 0 {
		return "none"
	}
	if limit > 0 && len(items) > limit {
		return fmt.Sprintf("%s and %d more", strings.Join(items[:limit], ", "), len(items)-limit)
	}
	return strings.Join(items, ", ")
}
