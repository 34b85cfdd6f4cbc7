// Package service ties extraction, structuring and rendering together for
// the resume endpoints.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/internal/resume/extractor"
	"github.com/pamten/resume-backend/internal/resume/normalize"
	"github.com/pamten/resume-backend/internal/resume/render"
	"github.com/pamten/resume-backend/pkg/errors"
	"github.com/pamten/resume-backend/pkg/logger"
)

// Structurer is the language model side of the service
type Structurer interface {
	Structure(ctx context.Context, text string) (*domain.Record, error)
	ElevatorPitch(ctx context.Context, rec *domain.Record) (string, error)
}

// Document is a rendered download
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service orchestrates resume parsing: extract → structure (with retry),
// and document generation: normalize → render.
type Service struct {
	extractors  *extractor.Registry
	ai          Structurer
	renderers   map[string]render.Renderer
	maxAttempts int
	newBackOff  func() backoff.BackOff
	log         *logger.Logger
}

// NewService creates a resume service. Renderers are looked up by their
// extension without the dot ("docx", "pdf").
func NewService(extractors *extractor.Registry, ai Structurer, log *logger.Logger, renderers ...render.Renderer) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		extractors:  extractors,
		ai:          ai,
		renderers:   make(map[string]render.Renderer, len(renderers)),
		maxAttempts: 1,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		log: log.WithComponent("service"),
	}
	for _, r := range renderers {
		s.renderers[strings.TrimPrefix(r.Extension(), ".")] = r
	}
	return s
}

// WithRetry makes ParseUpload try the structuring step up to maxAttempts
// times. A nil newBackOff keeps exponential backoff.
func (s *Service) WithRetry(maxAttempts int, newBackOff func() backoff.BackOff) *Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	s.maxAttempts = maxAttempts
	if newBackOff != nil {
		s.newBackOff = newBackOff
	}
	return s
}

// Supported reports whether an upload with this filename can be parsed.
func (s *Service) Supported(filename string) bool {
	return s.extractors.Supported(filename)
}

// ParseUpload extracts the text of an uploaded resume and structures it.
// Unsupported files are rejected before any text is read.
func (s *Service) ParseUpload(ctx context.Context, filename string, data []byte) (*domain.Record, error) {
	start := time.Now()

	text, err := s.extractors.Extract(ctx, filename, data)
	if err != nil {
		s.log.Warn().Err(err).Str("filename", filename).Msg("text extraction failed")
		return nil, err
	}

	rec, err := s.structure(ctx, text)
	if err != nil {
		s.log.Error().Err(err).Str("filename", filename).Msg("resume structuring failed")
		return nil, err
	}

	s.log.Info().
		Str("filename", filename).
		Int("bytes", len(data)).
		Int("chars", len(text)).
		Dur("duration", time.Since(start)).
		Msg("resume parsed")
	return rec, nil
}

// structure retries only AI service failures; the extracted text is reused
// for every attempt.
func (s *Service) structure(ctx context.Context, text string) (*domain.Record, error) {
	attempt := 0
	op := func() (*domain.Record, error) {
		attempt++
		rec, err := s.ai.Structure(ctx, text)
		if err != nil && !errors.Is(err, errors.ErrAIService) {
			return nil, backoff.Permanent(err)
		}
		return rec, err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uint64(s.maxAttempts-1)), ctx)
	rec, err := backoff.RetryNotifyWithData(op, b, func(err error, next time.Duration) {
		s.log.Warn().Err(err).
			Int("attempt", attempt).
			Dur("retry_in", next).
			Msg("structuring attempt failed, retrying")
	})
	if err != nil {
		var appErr *errors.AppError
		if !errors.As(err, &appErr) {
			return nil, errors.AIService("The AI service failed to structure the resume.", err)
		}
		return nil, err
	}
	return rec, nil
}

// GenerateDocument normalizes client JSON and renders it in the requested
// format.
func (s *Service) GenerateDocument(ctx context.Context, format string, raw map[string]any) (*Document, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, errors.BadRequest("Unsupported document format: " + format)
	}

	rec, err := normalize.Normalize(raw)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := r.Render(ctx, rec)
	if err != nil {
		s.log.Error().Err(err).Str("format", format).Msg("document rendering failed")
		return nil, err
	}

	s.log.Info().
		Str("format", format).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("document generated")

	return &Document{
		Filename:    render.Filename(rec, r.Extension()),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

// ElevatorPitch normalizes client JSON and asks the model for a pitch.
func (s *Service) ElevatorPitch(ctx context.Context, raw map[string]any) (string, error) {
	rec, err := normalize.Normalize(raw)
	if err != nil {
		return "", err
	}

	pitch, err := s.ai.ElevatorPitch(ctx, rec)
	if err != nil {
		s.log.Error().Err(err).Msg("elevator pitch failed")
		return "", err
	}
	return pitch, nil
}
