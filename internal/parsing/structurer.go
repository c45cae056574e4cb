// Package parsing turns normalized resume and job description text into structured records.
package parsing

import (
	"log"
	"sort"
	"time"

	"github.com/jonathan/campus-ats/internal/experience"
	"github.com/jonathan/campus-ats/internal/sections"
	"github.com/jonathan/campus-ats/internal/types"
	"github.com/jonathan/campus-ats/internal/vocabulary"
)

// DefaultMaxProjects caps the number of projects kept per resume.
const DefaultMaxProjects = 5

// Options configures a Structurer.
type Options struct {
	// Now is the reference date for open-ended ranges such as "2021 - Present".
	// The zero value means the wall clock at parse time.
	Now         time.Time
	MaxProjects int
}

// Structurer parses resume text against a skill vocabulary. It holds no mutable
// state and may be shared between goroutines.
type Structurer struct {
	vocab *vocabulary.Vocabulary
	opts  Options
}

// NewStructurer creates a Structurer.
func NewStructurer(vocab *vocabulary.Vocabulary, opts Options) *Structurer {
	if opts.MaxProjects <= 0 {
		opts.MaxProjects = DefaultMaxProjects
	}
	return &Structurer{vocab: vocab, opts: opts}
}

// Parse builds a ResumeRecord from normalized text. It never fails: fields that
// cannot be recognized are left empty and RawText always holds the input.
func (s *Structurer) Parse(text string) (record *types.ResumeRecord) {
	record = emptyRecord(text)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PARSE] recovered from panic while structuring resume: %v", r)
			record = emptyRecord(text)
		}
	}()

	doc := sections.Split(text)

	record.Contact = extractContact(text, doc)
	record.Skills = s.extractSkills(text, doc)
	record.Education = extractEducation(doc)
	record.Certifications = extractCertifications(doc)
	record.Projects = extractProjects(doc, s.opts.MaxProjects)

	exp := experience.AnalyzeDocument(doc, experience.Options{Now: s.opts.Now})
	if exp.Entries != nil {
		record.Experience = exp.Entries
	}
	record.TotalExperienceYears = exp.TotalYears

	return record
}

func emptyRecord(text string) *types.ResumeRecord {
	return &types.ResumeRecord{
		RawText:        text,
		Skills:         []string{},
		Education:      []types.EducationEntry{},
		Experience:     []types.ExperienceEntry{},
		Certifications: []string{},
	}
}

// extractSkills combines vocabulary hits anywhere in the text with items listed
// under a skills heading that resolve to a known skill.
func (s *Structurer) extractSkills(text string, doc *sections.Document) []string {
	found := make(map[string]struct{})
	for _, skill := range s.vocab.FindSkills(text) {
		found[skill] = struct{}{}
	}
	for _, line := range doc.LinesOf(sections.Skills) {
		for _, item := range splitList(line.Text) {
			if s.vocab.Contains(item) {
				found[s.vocab.Canonicalize(item)] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(found))
	for skill := range found {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}
