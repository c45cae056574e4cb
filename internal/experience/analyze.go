package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/campus-ats/internal/sections"
	"github.com/jonathan/campus-ats/internal/types"
)

// Source says how TotalYears was derived.
type Source string

const (
	SourceRanges Source = "date_ranges"
	SourcePhrase Source = "phrase"
	SourceNone   Source = "none"
)

// titleWords mark a line as naming a position.
var titleWords = regexp.MustCompile(`(?i)\b(?:engineer|developer|intern|internship|analyst|manager|designer|consultant|specialist|scientist|architect|administrator|lead|director|officer|associate|assistant|coordinator|accountant|researcher|programmer|technician|trainee|executive|tester|auditor|advisor|head)\b`)

// IsTitleLine reports whether a line names a position, such as "Data Analyst"
// or "Associate Software Engineer".
func IsTitleLine(line string) bool {
	return titleWords.MatchString(line)
}

var (
	// "5 years of experience", "3+ yrs experience in finance"
	yearsOfExperience = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b(?:\s+of)?(?:\s+[\w/#+.-]+){0,3}?\s+(?:experience|exp)\b`)
	// "experience of 4 years", "Experience: 2 years"
	experienceOfYears = regexp.MustCompile(`(?i)\bexperience\s*(?:of|:|-)?\s*(\d{1,2}(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)
	// durations written inside the experience section: "6 months", "2 yrs"
	durationPhrase = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*\+?\s*(years?|yrs?|months?|mos?)\b`)
)

var entrySeparators = []string{" at ", " @ ", " | ", ", ", " - ", " – ", " — "}

// Options configures Analyze.
type Options struct {
	// Now is the reference date for "Present" ranges. The zero value means time.Now().
	Now time.Time
}

// Summary is the experience found in one resume.
type Summary struct {
	Entries    []types.ExperienceEntry
	Ranges     []Range
	TotalYears float64
	Source     Source
}

// Analyze extracts positions and total years of experience from resume text.
func Analyze(text string, opts Options) Summary {
	return AnalyzeDocument(sections.Split(text), opts)
}

// AnalyzeDocument is Analyze for text that has already been split into sections.
func AnalyzeDocument(doc *sections.Document, opts Options) Summary {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	summary := Summary{Source: SourceNone}
	for i, line := range doc.Lines {
		kind := doc.KindAt(line.Index)
		if kind == sections.Education || kind == sections.Projects || kind == sections.Certifications {
			continue
		}
		ranges := ParseRanges(line.Text, now)
		for k, r := range ranges {
			var titleText string
			if len(ranges) == 1 {
				titleLine, found := nearbyTitle(doc.Lines, i)
				if !found {
					continue
				}
				titleText = strings.Replace(titleLine, r.Text, "", 1)
			} else {
				var found bool
				titleText, found = sharedLineTitle(doc.Lines, i, ranges, k)
				if !found {
					continue
				}
			}

			r.Line = line.Index
			summary.Ranges = append(summary.Ranges, r)
			title, org := splitTitle(titleText)
			summary.Entries = append(summary.Entries, types.ExperienceEntry{
				Title:         title,
				Organization:  org,
				DurationYears: round2(r.Years()),
			})
		}
	}

	if len(summary.Ranges) > 0 {
		summary.TotalYears = round2(float64(UnionMonths(summary.Ranges)) / 12)
		summary.Source = SourceRanges
		return summary
	}

	if years := largestPhrase(doc); years > 0 {
		summary.TotalYears = round2(years)
		summary.Source = SourcePhrase
	}
	summary.Entries = phraseEntries(doc)
	return summary
}

// nearbyTitle looks for a title-like line on the range's own line or up to two lines above.
func nearbyTitle(lines []sections.Line, i int) (string, bool) {
	for j := i; j >= 0 && j >= i-2; j-- {
		if titleWords.MatchString(lines[j].Text) {
			return lines[j].Text, true
		}
	}
	return "", false
}

// sharedLineTitle finds the position for the k-th of several ranges on one
// line. When a title precedes the first range every range takes the text
// between it and the previous range; otherwise every range takes the text up to
// the next one. A first range with neither may use the lines above.
func sharedLineTitle(lines []sections.Line, i int, ranges []Range, k int) (string, bool) {
	text := lines[i].Text

	var segment string
	if titleWords.MatchString(text[:ranges[0].Span[0]]) {
		prevEnd := 0
		if k > 0 {
			prevEnd = ranges[k-1].Span[1]
		}
		segment = text[prevEnd:ranges[k].Span[0]]
	} else {
		nextStart := len(text)
		if k+1 < len(ranges) {
			nextStart = ranges[k+1].Span[0]
		}
		segment = text[ranges[k].Span[1]:nextStart]
	}
	if titleWords.MatchString(segment) {
		return segment, true
	}

	if k == 0 {
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			if titleWords.MatchString(lines[j].Text) {
				return lines[j].Text, true
			}
		}
	}
	return "", false
}

func splitTitle(line string) (string, string) {
	line = strings.Trim(strings.TrimSpace(line), "-–—|,;()• ")
	for _, sep := range entrySeparators {
		if i := strings.Index(line, sep); i > 0 {
			title := strings.TrimSpace(line[:i])
			org := strings.Trim(strings.TrimSpace(line[i+len(sep):]), "-–—|,;() ")
			if titleWords.MatchString(title) {
				return title, org
			}
			if titleWords.MatchString(org) {
				return org, title
			}
		}
	}
	return line, ""
}

// largestPhrase returns the single largest explicit duration, in years.
func largestPhrase(doc *sections.Document) float64 {
	best := 0.0
	for _, line := range doc.Lines {
		for _, re := range []*regexp.Regexp{yearsOfExperience, experienceOfYears} {
			for _, m := range re.FindAllStringSubmatch(line.Text, -1) {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > best {
					best = v
				}
			}
		}
	}
	for _, line := range doc.LinesOf(sections.Experience) {
		for _, m := range durationPhrase.FindAllStringSubmatch(line.Text, -1) {
			if v := durationYears(m[1], m[2]); v > best {
				best = v
			}
		}
	}
	return best
}

// phraseEntries lists title lines of the experience section with any duration they state.
func phraseEntries(doc *sections.Document) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	for _, line := range doc.LinesOf(sections.Experience) {
		if !titleWords.MatchString(line.Text) {
			continue
		}
		text := line.Text
		years := 0.0
		if m := durationPhrase.FindStringSubmatch(text); m != nil {
			years = durationYears(m[1], m[2])
			text = strings.Replace(text, m[0], "", 1)
		}
		title, org := splitTitle(text)
		entries = append(entries, types.ExperienceEntry{Title: title, Organization: org, DurationYears: round2(years)})
	}
	return entries
}

func durationYears(amount, unit string) float64 {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(strings.ToLower(unit), "mo") {
		return v / 12
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
