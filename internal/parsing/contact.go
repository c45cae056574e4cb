package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/campus-ats/internal/sections"
	"github.com/jonathan/campus-ats/internal/types"
)

const nameSearchLines = 10

var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\b\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		regexp.MustCompile(`\+?\b\d{10,12}\b`),
	}
)

// extractContact finds the first email, the first phone number and a likely name.
func extractContact(text string, doc *sections.Document) types.Contact {
	var c types.Contact
	c.Email = emailPattern.FindString(text)
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			c.Phone = strings.TrimSpace(m)
			break
		}
	}
	c.Name = extractName(doc)
	return c
}

// extractName returns the first early header line of two to four plain words.
func extractName(doc *sections.Document) string {
	for _, line := range doc.Lines {
		if line.Index >= nameSearchLines {
			break
		}
		if doc.KindAt(line.Index) != sections.Header {
			continue
		}
		lower := strings.ToLower(line.Text)
		if strings.Contains(lower, "@") || strings.Contains(lower, "phone") || strings.Contains(lower, "http") ||
			strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum vitae") {
			continue
		}
		words := strings.Fields(line.Text)
		if len(words) < 2 || len(words) > 4 || !isPlainName(line.Text) {
			continue
		}
		return line.Text
	}
	return ""
}

func isPlainName(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' && r != '.' {
			return false
		}
	}
	return true
}
