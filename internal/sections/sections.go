// Package sections splits resume text into headed sections such as Skills or Education.
package sections

import (
	"strings"
)

// Kind identifies what a section holds.
type Kind int

const (
	Header Kind = iota // text before the first recognized heading
	Summary
	Skills
	Education
	Experience
	Projects
	Certifications
	Other
)

var kindNames = [...]string{"header", "summary", "skills", "education", "experience", "projects", "certifications", "other"}

func (k Kind) String() string {
	if k < Header || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

var headings = map[string]Kind{
	"summary":                     Summary,
	"professional summary":        Summary,
	"profile":                     Summary,
	"professional profile":        Summary,
	"objective":                   Summary,
	"career objective":            Summary,
	"about me":                    Summary,
	"skills":                      Skills,
	"skill":                       Skills,
	"technical skills":            Skills,
	"technical skill":             Skills,
	"key skills":                  Skills,
	"core skills":                 Skills,
	"skills & tools":              Skills,
	"skills and tools":            Skills,
	"technologies":                Skills,
	"tech stack":                  Skills,
	"tools":                       Skills,
	"proficiency":                 Skills,
	"competencies":                Skills,
	"core competencies":           Skills,
	"education":                   Education,
	"educational background":      Education,
	"academic background":         Education,
	"academics":                   Education,
	"academic":                    Education,
	"qualification":               Education,
	"qualifications":              Education,
	"academic qualifications":     Education,
	"experience":                  Experience,
	"work experience":             Experience,
	"professional experience":     Experience,
	"relevant experience":         Experience,
	"employment":                  Experience,
	"employment history":          Experience,
	"work history":                Experience,
	"career history":              Experience,
	"career":                      Experience,
	"internship":                  Experience,
	"internships":                 Experience,
	"projects":                    Projects,
	"project":                     Projects,
	"personal projects":           Projects,
	"academic projects":           Projects,
	"key projects":                Projects,
	"portfolio":                   Projects,
	"certifications":              Certifications,
	"certification":               Certifications,
	"certificates":                Certifications,
	"licenses & certifications":   Certifications,
	"licenses and certifications": Certifications,
	"courses & certifications":    Certifications,
	"awards":                      Other,
	"achievements":                Other,
	"awards & achievements":       Other,
	"interests":                   Other,
	"hobbies":                     Other,
	"languages":                   Other,
	"publications":                Other,
	"references":                  Other,
	"activities":                  Other,
	"extracurricular activities":  Other,
	"volunteering":                Other,
	"volunteer experience":        Other,
}

// Line is one non-empty line of the source text with its 0-based position.
type Line struct {
	Text  string
	Index int
}

// Section is a run of lines under one heading.
type Section struct {
	Kind    Kind
	Heading string
	Lines   []Line
}

// Text joins the section's lines with newlines.
func (s Section) Text() string {
	parts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Document is the sectioned form of a resume.
type Document struct {
	Sections []Section
	Lines    []Line
}

// Split breaks text into sections. A heading is a line whose text, without a
// trailing colon, is a known heading; "Skills: Python, SQL" opens a Skills
// section whose first line is "Python, SQL". Empty lines are dropped.
func Split(text string) *Document {
	doc := &Document{}
	current := Section{Kind: Header}

	idx := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		l := Line{Text: line, Index: idx}
		idx++
		doc.Lines = append(doc.Lines, l)

		if kind, heading, rest, ok := parseHeading(line); ok {
			if current.Kind != Header || len(current.Lines) > 0 {
				doc.Sections = append(doc.Sections, current)
			}
			current = Section{Kind: kind, Heading: heading}
			if rest != "" {
				current.Lines = append(current.Lines, Line{Text: rest, Index: l.Index})
			}
			continue
		}
		current.Lines = append(current.Lines, l)
	}
	if current.Kind != Header || len(current.Lines) > 0 {
		doc.Sections = append(doc.Sections, current)
	}
	return doc
}

func parseHeading(line string) (Kind, string, string, bool) {
	head, rest := line, ""
	if i := strings.IndexAny(line, ":|"); i >= 0 {
		head, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	key := strings.ToLower(strings.Trim(strings.TrimSpace(head), "-•*#=_ "))
	key = strings.Join(strings.Fields(key), " ")
	kind, ok := headings[key]
	if !ok {
		return Header, "", "", false
	}
	return kind, strings.TrimSpace(head), rest, true
}

// Of returns every section of the given kind, in document order.
func (d *Document) Of(kind Kind) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// LinesOf returns the lines of all sections of the given kind.
func (d *Document) LinesOf(kind Kind) []Line {
	var out []Line
	for _, s := range d.Of(kind) {
		out = append(out, s.Lines...)
	}
	return out
}

// KindAt reports the kind of section that contains the line with the given index.
func (d *Document) KindAt(index int) Kind {
	for _, s := range d.Sections {
		if len(s.Lines) == 0 {
			continue
		}
		if index >= s.Lines[0].Index && index <= s.Lines[len(s.Lines)-1].Index {
			return s.Kind
		}
	}
	return Header
}

// Has reports whether a section of the given kind with at least one line exists.
func (d *Document) Has(kind Kind) bool {
	for _, s := range d.Of(kind) {
		if len(s.Lines) > 0 {
			return true
		}
	}
	return false
}
