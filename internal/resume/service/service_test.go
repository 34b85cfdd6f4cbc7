package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/internal/resume/extractor"
	"github.com/pamten/resume-backend/internal/resume/render"
	"github.com/pamten/resume-backend/internal/resume/service"
	apperrors "github.com/pamten/resume-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	text  string
	calls int
}

func (f *fakeExtractor) Name() string               { return "fake" }
func (f *fakeExtractor) CanExtract(ext string) bool { return ext == ".docx" }
func (f *fakeExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	f.calls++
	return f.text, nil
}

type fakeStructurer struct {
	errs   []error
	texts  []string
	pitch  string
	pitchR *domain.Record
}

func (f *fakeStructurer) Structure(_ context.Context, text string) (*domain.Record, error) {
	f.texts = append(f.texts, text)
	if n := len(f.texts); n <= len(f.errs) && f.errs[n-1] != nil {
		return nil, f.errs[n-1]
	}
	return &domain.Record{Personal: domain.Personal{Name: "Jane Doe"}}, nil
}

func (f *fakeStructurer) ElevatorPitch(_ context.Context, rec *domain.Record) (string, error) {
	f.pitchR = rec
	return f.pitch, nil
}

type fakeRenderer struct {
	calls int
	rec   *domain.Record
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, rec *domain.Record) ([]byte, error) {
	f.calls++
	f.rec = rec
	if f.err != nil {
		return nil, f.err
	}
	return []byte("doc"), nil
}
func (f *fakeRenderer) ContentType() string { return "application/x-test" }
func (f *fakeRenderer) Extension() string   { return ".docx" }

func aiErr() error {
	return apperrors.AIService("The AI service failed to structure the resume.", errors.New("503"))
}

func newService(ext *fakeExtractor, ai *fakeStructurer, attempts int, renderers ...*fakeRenderer) *service.Service {
	var rs []render.Renderer
	for _, r := range renderers {
		rs = append(rs, r)
	}
	return service.NewService(extractor.NewRegistry(ext), ai, nil, rs...).WithRetry(attempts, func() backoff.BackOff { return &backoff.ZeroBackOff{} })
}

func TestParseUpload(t *testing.T) {
	ext := &fakeExtractor{text: "Jane Doe\nEngineer"}
	ai := &fakeStructurer{}
	svc := newService(ext, ai, 3)

	assert.True(t, svc.Supported("cv.DOCX"))
	assert.False(t, svc.Supported("cv.txt"))

	rec, err := svc.ParseUpload(context.Background(), "cv.docx", []byte("PK"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.Personal.Name)
	assert.Equal(t, []string{"Jane Doe\nEngineer"}, ai.texts)
}

func TestParseUpload_RejectsBeforeAI(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		text     string
		want     error
	}{
		{"unsupported", "cv.txt", "text", apperrors.ErrUnsupportedFormat},
		{"empty", "cv.docx", " \n\t ", apperrors.ErrEmptyExtraction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &fakeStructurer{}
			svc := newService(&fakeExtractor{text: tt.text}, ai, 3)

			rec, err := svc.ParseUpload(context.Background(), tt.filename, []byte("data"))
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.True(t, apperrors.Is(err, tt.want))
			assert.Empty(t, ai.texts)
		})
	}
}

func TestParseUpload_RetriesAIFailures(t *testing.T) {
	ext := &fakeExtractor{text: "resume text"}
	ai := &fakeStructurer{errs: []error{aiErr(), aiErr()}}
	svc := newService(ext, ai, 3)

	rec, err := svc.ParseUpload(context.Background(), "cv.docx", []byte("PK"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.Personal.Name)
	assert.Equal(t, []string{"resume text", "resume text", "resume text"}, ai.texts)
	assert.Equal(t, 1, ext.calls)
}

func TestParseUpload_GivesUpAfterMaxAttempts(t *testing.T) {
	ai := &fakeStructurer{errs: []error{aiErr(), aiErr(), aiErr()}}
	svc := newService(&fakeExtractor{text: "resume text"}, ai, 2)

	_, err := svc.ParseUpload(context.Background(), "cv.docx", []byte("PK"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAIService))
	assert.Len(t, ai.texts, 2)
}

func TestParseUpload_OtherErrorsAreNotRetried(t *testing.T) {
	ai := &fakeStructurer{errs: []error{apperrors.Internal("Failed to build the AI prompt.")}}
	svc := newService(&fakeExtractor{text: "resume text"}, ai, 3)

	_, err := svc.ParseUpload(context.Background(), "cv.docx", []byte("PK"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
	assert.Len(t, ai.texts, 1)
}

func TestParseUpload_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ai := &fakeStructurer{errs: []error{aiErr(), aiErr(), aiErr()}}
	svc := newService(&fakeExtractor{text: "resume text"}, ai, 3)

	_, err := svc.ParseUpload(ctx, "cv.docx", []byte("PK"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAIService))
	assert.Len(t, ai.texts, 1)
}

func TestGenerateDocument(t *testing.T) {
	r := &fakeRenderer{}
	svc := newService(&fakeExtractor{}, &fakeStructurer{}, 1, r)

	doc, err := svc.GenerateDocument(context.Background(), "docx", map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
		"skills":   "Go|SQL",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane_Doe.docx", doc.Filename)
	assert.Equal(t, "application/x-test", doc.ContentType)
	assert.Equal(t, []byte("doc"), doc.Data)
	require.NotNil(t, r.rec)
	assert.Len(t, r.rec.Skills, 2)
}

func TestGenerateDocument_Failures(t *testing.T) {
	r := &fakeRenderer{}
	svc := newService(&fakeExtractor{}, &fakeStructurer{}, 1, r)

	_, err := svc.GenerateDocument(context.Background(), "odt", map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	_, err = svc.GenerateDocument(context.Background(), "docx", map[string]any{"personal": map[string]any{}})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Zero(t, r.calls)

	r.err = apperrors.Render("An internal error occurred while generating the DOCX file.", errors.New("zip"))
	_, err = svc.GenerateDocument(context.Background(), "docx", map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrRender))
}

func TestElevatorPitch(t *testing.T) {
	ai := &fakeStructurer{pitch: "Jane builds reliable backends."}
	svc := newService(&fakeExtractor{}, ai, 1)

	pitch, err := svc.ElevatorPitch(context.Background(), map[string]any{
		"personal": map[string]any{"name": "Jane Doe"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane builds reliable backends.", pitch)
	assert.Equal(t, "Jane Doe", ai.pitchR.Personal.Name)

	ai.pitchR = nil
	_, err = svc.ElevatorPitch(context.Background(), map[string]any{})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Nil(t, ai.pitchR)
}
