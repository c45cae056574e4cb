package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   \n  \n  ", want: ""},
		{name: "collapse spaces", input: "Line    with \t multiple    spaces", want: "Line with multiple spaces"},
		{name: "blank lines collapse to one newline", input: "Line 1\n\n\n\n\nLine 2", want: "Line 1\nLine 2"},
		{name: "line endings", input: "Line 1\r\nLine 2\rLine 3\nLine 4", want: "Line 1\nLine 2\nLine 3\nLine 4"},
		{name: "form feed page break", input: "Page one\n\f\nPage two", want: "Page one\nPage two"},
		{name: "bullets normalized", input: "• Built APIs\n* Led team\n- Shipped", want: "- Built APIs\n- Led team\n- Shipped"},
		{name: "unicode preserved", input: "Test with émojis 🚀 and spéciàl chàracters", want: "Test with émojis 🚀 and spéciàl chàracters"},
		{name: "indentation removed", input: "    indented line", want: "indented line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("a\nb", "cv.pdf", FormatPDF)
	assert.Equal(t, 3, meta.Characters)
	assert.Equal(t, 2, meta.Lines)
	assert.Equal(t, computeHash("a\nb"), meta.Hash)
	assert.NotEqual(t, computeHash("a\nc"), meta.Hash)

	data, err := meta.ToJSON()
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"format": "pdf"`)

	assert.Equal(t, 0, NewMetadata("", "", FormatTXT).Lines)
}
