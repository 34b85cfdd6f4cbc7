// Package render builds downloadable DOCX and PDF documents from a resume
// record. Everything happens in memory.
package render

import (
	"context"
	_ "embed"
	"strings"
	"unicode"

	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/pkg/errors"
	"github.com/pamten/resume-backend/pkg/httputil"
)

// Media types of the rendered documents
const (
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
)

//go:embed assets/logo.png
var logoPNG []byte

// Renderer produces one document format
type Renderer interface {
	Render(ctx context.Context, rec *domain.Record) ([]byte, error)
	ContentType() string
	Extension() string
}

// Filename derives the download name from the candidate's name.
func Filename(rec *domain.Record, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case r == '/' || r == '\\' || r == '"' || unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(rec.Personal.Name))

	if name == "" {
		name = "resume"
	}
	return name + ext
}

// checkRenderable rejects records that are missing fields every document needs.
func checkRenderable(rec *domain.Record) error {
	if rec == nil {
		return errors.Validation("personal.name", "personal.name is required")
	}
	return httputil.Validate(rec)
}
