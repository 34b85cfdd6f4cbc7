package testutil

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// BuildDOCX writes a Word document with one paragraph per argument. Empty
// strings become empty paragraphs.
func BuildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		para := doc.AddParagraph()
		if p != "" {
			para.AddText(p)
		}
	}
	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

// BuildPDF writes an A4 PDF with one Helvetica text line per page. An empty
// string gives a page without text.
func BuildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		pdf.AddPage()
		if text != "" {
			pdf.Cell(0, 10, text)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}
