package parsing

import (
	"strings"

	"github.com/jonathan/campus-ats/internal/types"
	"github.com/jonathan/campus-ats/internal/vocabulary"
)

// NormalizeSkillNames canonicalizes skill names through the vocabulary and
// removes empties and duplicates, keeping first-seen order.
func NormalizeSkillNames(vocab *vocabulary.Vocabulary, names []string) []string {
	normalized := make([]string, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		canonical := vocab.Canonicalize(name)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		normalized = append(normalized, canonical)
	}
	return normalized
}

// NormalizeJobRequirement returns a copy of job with canonical skill names,
// lower-cased keywords, and preferred skills that repeat a required skill removed.
func NormalizeJobRequirement(vocab *vocabulary.Vocabulary, job types.JobRequirement) types.JobRequirement {
	job.Title = strings.TrimSpace(job.Title)
	job.RequiredSkills = NormalizeSkillNames(vocab, job.RequiredSkills)

	required := make(map[string]bool, len(job.RequiredSkills))
	for _, s := range job.RequiredSkills {
		required[s] = true
	}
	preferred := make([]string, 0, len(job.PreferredSkills))
	for _, s := range NormalizeSkillNames(vocab, job.PreferredSkills) {
		if !required[s] {
			preferred = append(preferred, s)
		}
	}
	job.PreferredSkills = preferred

	keywords := make([]string, 0, len(job.Keywords))
	seen := make(map[string]bool)
	for _, k := range job.Keywords {
		k = strings.Join(strings.Fields(strings.ToLower(k)), " ")
		if k != "" && !seen[k] {
			seen[k] = true
			keywords = append(keywords, k)
		}
	}
	job.Keywords = keywords

	return job
}
