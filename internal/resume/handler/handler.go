package handler

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/internal/resume/service"
	"github.com/pamten/resume-backend/pkg/errors"
	"github.com/pamten/resume-backend/pkg/httputil"
	"github.com/pamten/resume-backend/pkg/logger"
)

// DefaultMaxUploadSize applies when no limit is configured
const DefaultMaxUploadSize = 20 << 20 // 20MB

// ServiceName is reported by the health check
const ServiceName = "resume-service"

// Resumes is the part of the service the handlers call
type Resumes interface {
	Supported(filename string) bool
	ParseUpload(ctx context.Context, filename string, data []byte) (*domain.Record, error)
	GenerateDocument(ctx context.Context, format string, raw map[string]any) (*service.Document, error)
	ElevatorPitch(ctx context.Context, raw map[string]any) (string, error)
}

// Handler handles the resume HTTP endpoints
type Handler struct {
	service       Resumes
	maxUploadSize int64
	log           *logger.Logger
}

// NewHandler creates a new resume handler. A non-positive maxUploadSize
// uses DefaultMaxUploadSize.
func NewHandler(svc Resumes, maxUploadSize int64, log *logger.Logger) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		service:       svc,
		maxUploadSize: maxUploadSize,
		log:           log.WithComponent("handler"),
	}
}

// Routes mounts the endpoints on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse-resume", h.ParseResume)
		r.Post("/generate-docx", h.GenerateDOCX)
		r.Post("/generate-pdf", h.GeneratePDF)
		r.Post("/generate-elevator-pitch", h.GenerateElevatorPitch)
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}

// ParseResume handles POST /api/parse-resume
// Accepts a multipart form with the resume in the "file" field (.docx or .pdf)
func (h *Handler) ParseResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.Error(w, errors.New(errors.CodeBadRequest, "File too large", http.StatusRequestEntityTooLarge))
			return
		}
		httputil.Error(w, errors.BadRequest("No file part in the request"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	// A part sent with an empty filename is parsed as a plain form value
	file, header, err := r.FormFile("file")
	if err != nil {
		if _, ok := r.MultipartForm.Value["file"]; ok {
			httputil.Error(w, errors.BadRequest("No file selected"))
			return
		}
		httputil.Error(w, errors.BadRequest("No file part in the request"))
		return
	}
	defer file.Close()

	if strings.TrimSpace(header.Filename) == "" {
		httputil.Error(w, errors.BadRequest("No file selected"))
		return
	}
	if !h.service.Supported(header.Filename) {
		httputil.Error(w, errors.UnsupportedFormat(strings.ToLower(filepath.Ext(header.Filename))))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read upload")
		httputil.Error(w, errors.Internal("Failed to read uploaded file"))
		return
	}

	rec, err := h.service.ParseUpload(r.Context(), header.Filename, data)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"parsedData": rec})
}

// GenerateDOCX handles POST /api/generate-docx
func (h *Handler) GenerateDOCX(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "docx")
}

// GeneratePDF handles POST /api/generate-pdf
func (h *Handler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "pdf")
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, format string) {
	raw, err := h.decode(w, r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	doc, err := h.service.GenerateDocument(r.Context(), format, raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.Attachment(w, doc.Filename, doc.ContentType, doc.Data)
}

// GenerateElevatorPitch handles POST /api/generate-elevator-pitch
func (h *Handler) GenerateElevatorPitch(w http.ResponseWriter, r *http.Request) {
	raw, err := h.decode(w, r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	pitch, err := h.service.ElevatorPitch(r.Context(), raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"elevatorPitch": pitch})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var raw map[string]any
	if err := httputil.DecodeJSON(r, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.BadRequest("Request body must be a JSON object")
	}
	return raw, nil
}

// fail logs server-side failures and writes the error response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode >= http.StatusInternalServerError {
		h.log.WithRequestID(httputil.GetRequestID(r.Context())).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	httputil.Error(w, err)
}
