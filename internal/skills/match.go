// Package skills matches resume skills against job requirements.
package skills

import (
	"strings"

	"github.com/jonathan/campus-ats/internal/vocabulary"
)

const (
	// Weight constants for skill sources (requirement level)
	weightRequired  = 1.0
	weightPreferred = 0.5
)

// MatchResult is the overlap between a resume's skills and a job's skills.
// Matched and Missing partition the required skills and keep the job's order.
type MatchResult struct {
	Matched           []string            `json:"matched"`
	Missing           []string            `json:"missing"`
	MatchedPreferred  []string            `json:"matched_preferred"`
	MissingPreferred  []string            `json:"missing_preferred"`
	MissingByCategory map[string][]string `json:"missing_by_category"`
	MatchPercentage   float64             `json:"match_percentage"`
	RequiredCount     int                 `json:"required_count"`
	PreferredCount    int                 `json:"preferred_count"`
}

// Matcher compares skill sets through a shared vocabulary.
type Matcher struct {
	vocab *vocabulary.Vocabulary
}

// NewMatcher creates a Matcher.
func NewMatcher(vocab *vocabulary.Vocabulary) *Matcher {
	return &Matcher{vocab: vocab}
}

// Vocabulary returns the vocabulary the matcher canonicalizes with.
func (m *Matcher) Vocabulary() *vocabulary.Vocabulary {
	return m.vocab
}

// Match intersects resume skills with the required and preferred skills after
// canonicalization. MatchPercentage is 100 * matched / required, and 100 when
// nothing is required.
func (m *Matcher) Match(resumeSkills, required, preferred []string) MatchResult {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[m.vocab.Canonicalize(s)] = true
	}

	result := MatchResult{
		Matched:           []string{},
		Missing:           []string{},
		MatchedPreferred:  []string{},
		MissingPreferred:  []string{},
		MissingByCategory: map[string][]string{},
	}

	requiredSet := make(map[string]bool)
	for _, skill := range m.canonicalSet(required) {
		requiredSet[skill] = true
		if have[skill] {
			result.Matched = append(result.Matched, skill)
		} else {
			result.Missing = append(result.Missing, skill)
			category := m.vocab.Category(skill)
			result.MissingByCategory[category] = append(result.MissingByCategory[category], skill)
		}
	}
	result.RequiredCount = len(requiredSet)

	for _, skill := range m.canonicalSet(preferred) {
		if requiredSet[skill] {
			continue
		}
		result.PreferredCount++
		if have[skill] {
			result.MatchedPreferred = append(result.MatchedPreferred, skill)
		} else {
			result.MissingPreferred = append(result.MissingPreferred, skill)
		}
	}

	if result.RequiredCount == 0 {
		result.MatchPercentage = 100.0
	} else {
		result.MatchPercentage = 100 * float64(len(result.Matched)) / float64(result.RequiredCount)
	}
	return result
}

// WeightedScore combines required and preferred matches, weighting preferred
// skills at half a required skill. It is 100 when the job lists no skills.
func WeightedScore(r MatchResult) float64 {
	denominator := float64(r.RequiredCount)*weightRequired + float64(r.PreferredCount)*weightPreferred
	if denominator == 0 {
		return 100.0
	}
	numerator := float64(len(r.Matched))*weightRequired + float64(len(r.MatchedPreferred))*weightPreferred
	return 100 * numerator / denominator
}

// canonicalSet canonicalizes names, dropping empties and duplicates but keeping order.
func (m *Matcher) canonicalSet(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		c := m.vocab.Canonicalize(n)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// KeywordResult reports which job keywords appear in the resume text.
type KeywordResult struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
	Score   float64  `json:"score"`
}

// KeywordRelevance checks each keyword as a case-insensitive substring of the
// raw resume text. Score is 100 * found / total, and 100 with no keywords.
func KeywordRelevance(rawText string, keywords []string) KeywordResult {
	haystack := strings.Join(strings.Fields(strings.ToLower(rawText)), " ")

	result := KeywordResult{Found: []string{}, Missing: []string{}}
	seen := make(map[string]bool)
	for _, k := range keywords {
		needle := strings.Join(strings.Fields(strings.ToLower(k)), " ")
		if needle == "" || seen[needle] {
			continue
		}
		seen[needle] = true
		if strings.Contains(haystack, needle) {
			result.Found = append(result.Found, k)
		} else {
			result.Missing = append(result.Missing, k)
		}
	}

	total := len(result.Found) + len(result.Missing)
	if total == 0 {
		result.Score = 100.0
	} else {
		result.Score = 100 * float64(len(result.Found)) / float64(total)
	}
	return result
}
