package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MinTextLength is the fewest characters a document must yield before its text is trusted.
const MinTextLength = 20

type handler func(data []byte) (string, error)

// Extractor turns document bytes into normalized plain text.
// The zero value is not usable; call NewExtractor.
type Extractor struct {
	handlers map[Format]handler
	minChars int
}

// NewExtractor creates an extractor for pdf, docx and txt documents. minChars <= 0
// selects MinTextLength.
func NewExtractor(minChars int) *Extractor {
	if minChars <= 0 {
		minChars = MinTextLength
	}
	return &Extractor{
		handlers: map[Format]handler{
			FormatPDF:  extractPDF,
			FormatDOCX: extractDOCX,
			FormatTXT:  extractTXT,
		},
		minChars: minChars,
	}
}

// Extract converts data in the given format to cleaned text.
func (e *Extractor) Extract(data []byte, format Format) (string, error) {
	h, ok := e.handlers[format]
	if !ok {
		return "", &UnsupportedFormatError{Format: string(format)}
	}

	raw, err := h(data)
	if err != nil {
		log.Printf("[EXTRACT] failed to read %s document: %v", format, err)
		return "", &ExtractionError{Format: format, Message: "document could not be read", Cause: err}
	}

	text := CleanText(raw)
	if n := utf8.RuneCountInString(text); n < e.minChars {
		log.Printf("[EXTRACT] rejected %s document: %d characters of text (minimum %d)", format, n, e.minChars)
		return "", &ExtractionError{
			Format:  format,
			Message: fmt.Sprintf("only %d characters of text found (minimum %d)", n, e.minChars),
		}
	}
	return text, nil
}

// ExtractDocument detects the format of data (using filename as a hint) and extracts it.
func (e *Extractor) ExtractDocument(data []byte, filename string) (string, Format, error) {
	format, err := DetectFormat(data, filename)
	if err != nil {
		return "", "", err
	}
	text, err := e.Extract(data, format)
	return text, format, err
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\f\n")
	}
	return sb.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("word/document.xml not found")
	}

	rc, err := body.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	return wordprocessingText(rc)
}

// wordprocessingText walks WordprocessingML: w:t runs carry text, w:p ends a
// paragraph, and w:tab / w:br become whitespace.
func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte(' ')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

func extractTXT(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}
