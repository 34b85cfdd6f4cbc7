// Package extractor pulls plain text out of uploaded resume files.
package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pamten/resume-backend/pkg/errors"
)

// Extractor turns the bytes of one file format into plain text.
// Implementations must not retain data after Extract returns.
type Extractor interface {
	// CanExtract reports whether the extractor handles the lower-cased
	// extension, including the leading dot.
	CanExtract(ext string) bool

	Extract(ctx context.Context, data []byte) (string, error)

	// Name is used in logs
	Name() string
}

// Registry dispatches on file extension
type Registry struct {
	extractors []Extractor
}

// NewRegistry creates a registry that tries extractors in order
func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Default returns a registry with the DOCX and PDF extractors.
func Default() *Registry {
	return NewRegistry(NewDOCX(), NewPDF())
}

// Find returns the extractor for the file name, or nil.
func (r *Registry) Find(filename string) Extractor {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range r.extractors {
		if e.CanExtract(ext) {
			return e
		}
	}
	return nil
}

// Supported reports whether a file name has an extension some extractor handles.
func (r *Registry) Supported(filename string) bool {
	return r.Find(filename) != nil
}

// Extract selects an extractor by the file extension and returns the text.
// Files nobody handles fail with an unsupported format error, and documents
// with no visible text fail with an empty extraction error.
func (r *Registry) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	e := r.Find(filename)
	if e == nil {
		return "", errors.UnsupportedFormat(strings.ToLower(filepath.Ext(filename)))
	}

	text, err := e.Extract(ctx, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.EmptyExtraction()
	}
	return text, nil
}
