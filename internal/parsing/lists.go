package parsing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/campus-ats/internal/sections"
	"github.com/jonathan/campus-ats/internal/types"
)

const maxCertificationLength = 120

var (
	listSeparators = regexp.MustCompile(`[,;|•·]`)
	certMention    = regexp.MustCompile(`(?i)\b(?:certified|certificate|certification)\b`)
)

// splitList splits a comma/semicolon/pipe separated line into trimmed items.
// A leading "Label:" is dropped so "Languages: Python, Go" yields both languages.
func splitList(line string) []string {
	if i := strings.Index(line, ":"); i >= 0 && i < len(line)-1 {
		line = line[i+1:]
	}
	var items []string
	for _, part := range listSeparators.Split(line, -1) {
		part = trimBullet(part)
		if len(part) > 1 {
			items = append(items, part)
		}
	}
	return items
}

func trimBullet(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "-•*·"))
}

// extractCertifications collects items from certification sections and any
// other line outside the header that mentions a certificate.
func extractCertifications(doc *sections.Document) []string {
	found := make(map[string]string)
	add := func(item string) {
		item = trimBullet(item)
		if item == "" || len(item) > maxCertificationLength {
			return
		}
		key := strings.ToLower(item)
		if _, ok := found[key]; !ok {
			found[key] = item
		}
	}

	for _, line := range doc.LinesOf(sections.Certifications) {
		for _, part := range listSeparators.Split(line.Text, -1) {
			add(part)
		}
	}
	for _, line := range doc.Lines {
		kind := doc.KindAt(line.Index)
		if kind == sections.Certifications || kind == sections.Header {
			continue
		}
		if certMention.MatchString(line.Text) {
			add(line.Text)
		}
	}

	out := make([]string, 0, len(found))
	for _, item := range found {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// extractProjects reads project sections. A non-bullet line starts a project;
// bullet lines under it become its description. Bullets with no title line
// above them are projects of their own.
func extractProjects(doc *sections.Document, limit int) []types.Project {
	var projects []types.Project
	titled := false
	for _, line := range doc.LinesOf(sections.Projects) {
		text := line.Text
		bullet := strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "• ") || strings.HasPrefix(text, "* ")
		text = trimBullet(text)
		if len(text) < 3 {
			continue
		}

		if bullet && titled {
			last := &projects[len(projects)-1]
			if last.Description == "" {
				last.Description = text
			} else {
				last.Description += " " + text
			}
			continue
		}

		title, desc := text, ""
		for _, sep := range []string{": ", " - ", " – "} {
			if i := strings.Index(text, sep); i > 0 {
				title, desc = strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(sep):])
				break
			}
		}
		if len(title) > 100 {
			title = strings.TrimSpace(title[:100])
		}
		projects = append(projects, types.Project{Title: title, Description: desc})
		titled = !bullet
	}

	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects
}
