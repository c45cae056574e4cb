package ingestion

import "fmt"

// UnsupportedFormatError is returned when a document format cannot be determined
// or is not one of pdf, docx and txt.
type UnsupportedFormatError struct {
	Format   string
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	switch {
	case e.Format != "":
		return fmt.Sprintf("unsupported document format %q", e.Format)
	case e.Filename != "":
		return fmt.Sprintf("cannot determine document format of %s", e.Filename)
	default:
		return "cannot determine document format"
	}
}

// ExtractionError is returned when a document parses as its declared format but
// yields no usable text, such as a scanned image-only PDF.
type ExtractionError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("failed to extract text from %s: %s", e.Format, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Hint tells the caller how to recover.
func (e *ExtractionError) Hint() string {
	if e.Format == FormatPDF {
		return "the PDF may be a scanned image; convert it to a text-based PDF or DOCX, or paste the resume text"
	}
	return "convert the document to PDF, DOCX or plain text, or paste the resume text"
}
