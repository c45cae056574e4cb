package scoring

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/campus-ats/internal/types"
)

// EducationScore is 100 when the resume level meets the job level or the job
// requires none, and 100 * resume / job (by ordinal) otherwise.
func EducationScore(resume, job types.EducationLevel) float64 {
	if job <= types.EducationNone || resume >= job {
		return 100.0
	}
	return 100 * float64(resume) / float64(job)
}

// ExperienceScore is the resume's share of the required years, capped at 100.
// A job that requires no experience scores 100.
func ExperienceScore(resumeYears, requiredYears float64) float64 {
	if requiredYears <= 0 {
		return 100.0
	}
	return math.Min(100, 100*math.Max(0, resumeYears)/requiredYears)
}

// FormatScore starts at 100 and deducts a penalty for every missing structural
// element. It never goes below 0. The returned issues name each deduction.
func FormatScore(resume *types.ResumeRecord, p FormatPenalties) (float64, []string) {
	score := 100.0
	issues := []string{}

	if !resume.Contact.HasAny() {
		score -= p.MissingContact
		issues = append(issues, "No contact information (name, email or phone) was found")
	}
	if len(resume.Skills) == 0 {
		score -= p.MissingSkills
		issues = append(issues, "No recognizable skills were detected")
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(resume.RawText)); n < p.MinTextLength {
		score -= p.ShortText
		issues = append(issues, fmt.Sprintf("Resume text is very short (%d characters, expected at least %d)", n, p.MinTextLength))
	}
	if len(resume.Education) == 0 {
		score -= p.MissingEducation
		issues = append(issues, "No education entries were found")
	}
	if len(resume.Experience) == 0 {
		score -= p.MissingExperience
		issues = append(issues, "No work experience entries were found")
	}

	return clamp(score), issues
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
