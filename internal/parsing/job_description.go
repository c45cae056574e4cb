package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/campus-ats/internal/ingestion"
	"github.com/jonathan/campus-ats/internal/types"
	"github.com/jonathan/campus-ats/internal/vocabulary"
)

type jdSection int

const (
	jdGeneral jdSection = iota
	jdRequired
	jdPreferred
)

var jdHeadings = map[string]jdSection{
	"requirements":             jdRequired,
	"required":                 jdRequired,
	"required skills":          jdRequired,
	"required qualifications":  jdRequired,
	"minimum qualifications":   jdRequired,
	"basic qualifications":     jdRequired,
	"qualifications":           jdRequired,
	"must have":                jdRequired,
	"must haves":               jdRequired,
	"what you'll need":         jdRequired,
	"what you need":            jdRequired,
	"what we're looking for":   jdRequired,
	"skills":                   jdRequired,
	"preferred":                jdPreferred,
	"preferred skills":         jdPreferred,
	"preferred qualifications": jdPreferred,
	"nice to have":             jdPreferred,
	"nice to haves":            jdPreferred,
	"good to have":             jdPreferred,
	"bonus":                    jdPreferred,
	"bonus points":             jdPreferred,
	"pluses":                   jdPreferred,
	"responsibilities":         jdGeneral,
	"what you'll do":           jdGeneral,
	"about the role":           jdGeneral,
	"about us":                 jdGeneral,
	"benefits":                 jdGeneral,
}

var (
	jdYears     = regexp.MustCompile(`(?i)\b(\d{1,2})(?:\s*(?:-|–|to)\s*\d{1,2})?\s*\+?\s*(?:years?|yrs?)\b`)
	titlePrefix = regexp.MustCompile(`(?i)^(?:job\s+title|position|role|title)\s*[:\-]\s*`)
)

// ParseJobDescription builds a JobRequirement from free job description text.
// The title is the first line; skills under requirement headings are required
// and skills under "preferred" or "nice to have" headings are preferred. With no
// requirement heading every skill outside the preferred block is required.
func ParseJobDescription(text string, vocab *vocabulary.Vocabulary) (*types.JobRequirement, error) {
	text = ingestion.CleanText(text)
	if text == "" {
		return nil, &ParseError{Message: "job description is empty"}
	}

	lines := strings.Split(text, "\n")
	title := strings.TrimSpace(titlePrefix.ReplaceAllString(lines[0], ""))
	if _, isHeading := jdHeadingOf(lines[0]); isHeading || title == "" {
		return nil, &ParseError{Message: "job description must start with the job title"}
	}

	blocks := map[jdSection]*strings.Builder{
		jdGeneral:   {},
		jdRequired:  {},
		jdPreferred: {},
	}
	current := jdGeneral
	sawRequired := false
	for _, line := range lines[1:] {
		if section, ok := jdHeadingOf(line); ok {
			current = section
			if section == jdRequired {
				sawRequired = true
			}
			if i := strings.Index(line, ":"); i >= 0 {
				line = line[i+1:]
			} else {
				continue
			}
		}
		blocks[current].WriteString(line)
		blocks[current].WriteByte('\n')
	}

	requiredText := blocks[jdRequired].String()
	educationText := requiredText
	if !sawRequired {
		educationText = blocks[jdGeneral].String()
		requiredText = title + "\n" + educationText
	}
	preferredText := blocks[jdPreferred].String()

	job := types.JobRequirement{
		Title:             title,
		RequiredSkills:    vocab.FindSkills(requiredText),
		PreferredSkills:   vocab.FindSkills(preferredText),
		EducationLevel:    minimumEducation(educationText),
		YearsOfExperience: maxYears(requiredText),
		Keywords:          vocab.FindSkills(text),
		Description:       text,
	}
	job = NormalizeJobRequirement(vocab, job)

	if err := job.Validate(); err != nil {
		return nil, &ParseError{Message: "parsed job requirement is invalid", Cause: err}
	}
	return &job, nil
}

func jdHeadingOf(line string) (jdSection, bool) {
	head := line
	if i := strings.Index(line, ":"); i >= 0 {
		head = line[:i]
	}
	key := strings.ToLower(strings.Trim(strings.TrimSpace(head), "-•*#=_ "))
	key = strings.ReplaceAll(key, "’", "'")
	section, ok := jdHeadings[strings.Join(strings.Fields(key), " ")]
	return section, ok
}

// minimumEducation returns the lowest degree level a requirement text names,
// since "Bachelor's or Master's" accepts a bachelor. "Master" and "associate"
// only count as degrees in degree phrasing, never as part of a role name.
func minimumEducation(text string) types.EducationLevel {
	lowest, found := types.EducationNone, false
	for _, line := range strings.Split(text, "\n") {
		norm := strings.ToLower(strings.NewReplacer(".", "", "'", "", "’", "").Replace(line))
		for _, m := range degreeMatches(norm, true) {
			key := strings.ReplaceAll(m, " ", "")
			if strings.HasPrefix(key, "doctor") {
				key = "doctorate"
			}
			level, err := types.ParseEducationLevel(key)
			if err != nil {
				continue
			}
			if !found || level < lowest {
				lowest, found = level, true
			}
		}
	}
	return lowest
}

// maxYears returns the largest lower bound of any "N years" / "N-M years" phrase.
func maxYears(text string) float64 {
	best := 0
	for _, m := range jdYears.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best {
			best = n
		}
	}
	return float64(best)
}
