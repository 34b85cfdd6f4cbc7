package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pamten/resume-backend/pkg/errors"
)

// PDFExtractor reads the text layer of a PDF
type PDFExtractor struct{}

func NewPDF() *PDFExtractor {
	return &PDFExtractor{}
}

func (p *PDFExtractor) Name() string { return "pdf" }

func (p *PDFExtractor) CanExtract(ext string) bool {
	return ext == ".pdf"
}

// Extract joins the text of every page with a newline. Pages without text,
// or whose content cannot be decoded, are skipped.
func (p *PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// the pdf package panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.Extraction("The uploaded file is not a readable PDF.", fmt.Errorf("pdf: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Extraction("The uploaded file is not a readable PDF.", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := pageText(page)
		if err != nil || strings.TrimSpace(content) == "" {
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}

func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page text: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
