package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/campus-ats/internal/experience"
	"github.com/jonathan/campus-ats/internal/sections"
	"github.com/jonathan/campus-ats/internal/types"
)

// Degree phrases are matched after dots and apostrophes are removed, so
// "B.Tech", "M.S." and "Bachelor's" arrive as "btech", "ms" and "bachelors".
var (
	longDegree  = regexp.MustCompile(`\b(phd|doctorate|doctoral|doctor of|masters?|m ?tech|m ?sc|mba|bachelors?|b ?tech|b ?sc|associates?|diploma)\b`)
	shortDegree = regexp.MustCompile(`\b(ms|ma|me|mca|mcom|bs|ba|be|bca|bba|bcom)\b`)

	// "master" and "associate" are also job titles ("Scrum Master", "Associate
	// Engineer"); outside an education section they need degree phrasing after them.
	degreeContext = regexp.MustCompile(`^\s*(?:of|in|degree)\b`)

	institutionPattern = regexp.MustCompile(`(?:[A-Z][\w.&'-]*\s+){0,5}(?:University|College|Institute|School|Academy|Polytechnic)(?:\s+of(?:\s+[A-Z][\w.&'-]*){1,4})?`)
	segmentSeparators  = regexp.MustCompile(`\s*(?:,|\||\s-\s|\s–\s|\s—\s)\s*`)
)

// extractEducation returns one entry per line that names a degree. Experience,
// project and certification sections are never read, and outside an education
// section lines naming a position are skipped.
func extractEducation(doc *sections.Document) []types.EducationEntry {
	entries := []types.EducationEntry{}
	seen := make(map[string]bool)

	lines := doc.Lines
	for i, line := range lines {
		kind := doc.KindAt(line.Index)
		switch kind {
		case sections.Experience, sections.Projects, sections.Certifications:
			continue
		}
		inEducation := kind == sections.Education
		if !inEducation && experience.IsTitleLine(line.Text) {
			continue
		}
		level, ok := degreeLevel(line.Text, inEducation)
		if !ok {
			continue
		}

		institution := institutionPattern.FindString(line.Text)
		if institution == "" && i+1 < len(lines) && doc.KindAt(lines[i+1].Index) == doc.KindAt(line.Index) {
			institution = institutionPattern.FindString(lines[i+1].Text)
		}
		institution = strings.TrimSpace(institution)

		entry := types.EducationEntry{
			Degree:      degreeText(line.Text, institution),
			Institution: institution,
			Level:       level,
		}
		key := strings.ToLower(entry.Degree + "|" + entry.Institution)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, entry)
	}
	return entries
}

// degreeLevel returns the highest level named on a line. Inside an education
// section short abbreviations such as "BS" or "MA" count, and "master" or
// "associate" need no degree phrasing.
func degreeLevel(line string, inEducation bool) (types.EducationLevel, bool) {
	norm := strings.ToLower(strings.NewReplacer(".", "", "'", "", "’", "").Replace(line))

	matches := degreeMatches(norm, !inEducation)
	if inEducation {
		matches = append(matches, shortDegree.FindAllString(norm, -1)...)
	}

	best, found := types.EducationNone, false
	for _, m := range matches {
		key := strings.ReplaceAll(m, " ", "")
		if strings.HasPrefix(key, "doctor") {
			key = "doctorate"
		}
		level, err := types.ParseEducationLevel(key)
		if err != nil {
			continue
		}
		found = true
		if level > best {
			best = level
		}
	}
	return best, found
}

// degreeMatches returns the long degree names in a normalized line. When strict
// is set, "master" and "associate" only count when followed by "of", "in" or
// "degree".
func degreeMatches(norm string, strict bool) []string {
	var out []string
	for _, loc := range longDegree.FindAllStringIndex(norm, -1) {
		m := norm[loc[0]:loc[1]]
		switch m {
		case "master", "associate", "associates":
			if strict && !degreeContext.MatchString(norm[loc[1]:]) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// degreeText picks the part of a line that names the degree, leaving out the
// institution and any dates.
func degreeText(line, institution string) string {
	for _, seg := range segmentSeparators.Split(line, -1) {
		seg = strings.TrimSpace(strings.TrimLeft(seg, "-•* "))
		if seg == "" || (institution != "" && strings.Contains(seg, institution)) {
			continue
		}
		if _, ok := degreeLevel(seg, true); ok {
			return seg
		}
	}
	return strings.TrimSpace(strings.TrimLeft(line, "-•* "))
}
