// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/campus-ats/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// writeList writes a titled bullet list, showing at most limit items.
func writeList(sb *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResume outputs a human-readable summary of a structured resume.
func (p *Printer) PrintResume(resume *types.ResumeRecord) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", orDash(resume.Contact.Name)))
	sb.WriteString(fmt.Sprintf("Email:       %s\n", orDash(resume.Contact.Email)))
	sb.WriteString(fmt.Sprintf("Phone:       %s\n", orDash(resume.Contact.Phone)))
	sb.WriteString(fmt.Sprintf("Education:   %s\n", resume.HighestEducationLevel()))
	sb.WriteString(fmt.Sprintf("Experience:  %.2f years\n", resume.TotalExperienceYears))
	sb.WriteString("\n")

	writeList(&sb, fmt.Sprintf("Skills (%d)", len(resume.Skills)), resume.Skills, maxItemsToShow)

	positions := make([]string, 0, len(resume.Experience))
	for _, e := range resume.Experience {
		pos := e.Title
		if e.Organization != "" {
			pos += " @ " + e.Organization
		}
		positions = append(positions, fmt.Sprintf("%s (%.1fy)", pos, e.DurationYears))
	}
	writeList(&sb, "Positions", positions, 3)
	writeList(&sb, "Certifications", resume.Certifications, 3)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobRequirement outputs the job a resume is scored against.
func (p *Printer) PrintJobRequirement(job *types.JobRequirement) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:       %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Education:   %s\n", job.EducationLevel))
	sb.WriteString(fmt.Sprintf("Experience:  %g+ years\n", job.YearsOfExperience))
	sb.WriteString(fmt.Sprintf("Threshold:   %.1f\n", job.Threshold()))
	sb.WriteString("\n")

	writeList(&sb, "Required Skills", job.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred Skills", job.PreferredSkills, 3)
	writeList(&sb, "Keywords", job.Keywords, 3)

	p.printBox("JOB REQUIREMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the composite score, the sub-scores and the skill gap.
func (p *Printer) PrintEvaluation(result *types.EvaluationResult) {
	if result == nil {
		return
	}

	verdict := "❌ NOT PASSED"
	if result.Passed {
		verdict = "✅ PASSED"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score:   %.2f / %.2f  %s\n", result.ATSScore, result.MinimumATSScore, verdict))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Skills:     %6.2f\n", result.SubScores.SkillMatch))
	sb.WriteString(fmt.Sprintf("  Experience: %6.2f\n", result.SubScores.Experience))
	sb.WriteString(fmt.Sprintf("  Education:  %6.2f\n", result.SubScores.Education))
	sb.WriteString(fmt.Sprintf("  Keywords:   %6.2f\n", result.SubScores.KeywordMatch))
	sb.WriteString(fmt.Sprintf("  Format:     %6.2f\n", result.SubScores.Format))
	sb.WriteString("\n")

	writeList(&sb, "Matched Skills", result.MatchedSkills, maxItemsToShow)
	writeList(&sb, "Missing Skills", result.MissingSkills, maxItemsToShow)
	writeList(&sb, "Format Issues", result.FormatIssues, 3)

	p.printBox("ATS EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedback outputs the rejection feedback for a failing resume.
func (p *Printer) PrintFeedback(report *types.FeedbackReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Rejection Reasons", report.RejectionReasons, maxItemsToShow)
	writeList(&sb, "Strengths", report.ResumeStrengths, 3)
	writeList(&sb, "Weaknesses", report.ResumeWeaknesses, 3)
	writeList(&sb, "Recommendations", report.ImprovementRecommendations, maxItemsToShow)

	for _, h := range report.MistakeHighlights {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", h))
	}

	p.printBox("CANDIDATE FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs pass/fail/error counts for a batch run.
func (p *Printer) PrintBatchSummary(total, passed, failed int, errs []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Entries:     %d\n", total))
	sb.WriteString(fmt.Sprintf("Passed:      %d\n", passed))
	sb.WriteString(fmt.Sprintf("Not passed:  %d\n", failed))
	sb.WriteString(fmt.Sprintf("Errors:      %d\n", len(errs)))
	if len(errs) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Errors", errs, 3)
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
