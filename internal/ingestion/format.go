package ingestion

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZIP  = "application/zip"
	mimeText = "text/plain"
)

// ParseFormat resolves a declared format name, extension or MIME type.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "pdf", mimePDF:
		return FormatPDF, nil
	case "docx", mimeDOCX:
		return FormatDOCX, nil
	case "txt", "text", "plain", mimeText:
		return FormatTXT, nil
	}
	return "", &UnsupportedFormatError{Format: s}
}

// DetectFormat sniffs the content type of data, falling back to the filename extension.
func DetectFormat(data []byte, filename string) (Format, error) {
	mtype := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case mtype.Is(mimePDF):
		return FormatPDF, nil
	case mtype.Is(mimeDOCX):
		return FormatDOCX, nil
	case mtype.Is(mimeZIP) && ext == ".docx":
		// some writers omit the [Content_Types].xml ordering mimetype relies on
		return FormatDOCX, nil
	case mtype.Is(mimeText):
		return FormatTXT, nil
	}

	if ext != "" {
		if f, err := ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	if filename == "" {
		return "", &UnsupportedFormatError{Format: mtype.String()}
	}
	return "", &UnsupportedFormatError{Filename: filename}
}
