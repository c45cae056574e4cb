package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var bulletPrefixes = []string{"• ", "· ", "▪ ", "◦ ", "* ", "– "}

// CleanText normalizes extracted text: line endings become LF, whitespace runs
// inside a line collapse to one space, and blank lines, page breaks and form
// feeds collapse to a single newline.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF) and page breaks
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.NewReplacer("\r", "\n", "\f", "\n", "\v", "\n", "\u2028", "\n", "\u2029", "\n").Replace(content)

	// 2. Clean each line, dropping the blank ones
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := cleanLine(line); cleaned != "" {
			cleanedLines = append(cleanedLines, cleaned)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

// cleanLine collapses whitespace in a single line and normalizes bullet glyphs to "- ".
func cleanLine(line string) string {
	line = strings.Join(strings.Fields(line), " ")
	if line == "" {
		return ""
	}
	if isBulletLine(line) {
		for _, p := range bulletPrefixes {
			if strings.HasPrefix(line, p) {
				return "- " + strings.TrimPrefix(line, p)
			}
		}
	}
	return line
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	if strings.HasPrefix(line, "- ") {
		return true
	}
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// ExtractFile reads a document from disk, detects its format and extracts its text.
// A declared format, when non-empty, overrides detection.
func (e *Extractor) ExtractFile(path string, declared string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	var format Format
	if declared != "" {
		format, err = ParseFormat(declared)
	} else {
		format, err = DetectFormat(data, path)
	}
	if err != nil {
		return "", nil, err
	}

	text, err := e.Extract(data, format)
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(text, filepath.Base(path), format), nil
}
