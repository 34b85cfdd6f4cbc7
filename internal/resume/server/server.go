// Package server assembles the resume service and its HTTP router from
// configuration. Both the service binary and resumectl use it.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pamten/resume-backend/internal/resume/extractor"
	"github.com/pamten/resume-backend/internal/resume/handler"
	"github.com/pamten/resume-backend/internal/resume/llm"
	"github.com/pamten/resume-backend/internal/resume/render"
	"github.com/pamten/resume-backend/internal/resume/service"
	"github.com/pamten/resume-backend/pkg/config"
	"github.com/pamten/resume-backend/pkg/httputil"
	"github.com/pamten/resume-backend/pkg/logger"
)

// NewService builds the resume service with the configured LLM provider,
// the default extractors and both renderers. The returned close function
// releases the LLM client.
func NewService(ctx context.Context, cfg *config.Config, log *logger.Logger) (*service.Service, func() error, error) {
	gen, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("create llm client: %w", err)
	}

	structurer := llm.NewStructurer(gen, cfg.LLM.Timeout, log)
	renderers := []render.Renderer{
		render.NewDOCX(),
		render.NewPDF(render.NewChromeConverter(cfg.Render.ChromePath), cfg.Render.PDFTimeout),
	}

	svc := service.NewService(extractor.Default(), structurer, log, renderers...).
		WithRetry(cfg.LLM.MaxAttempts, nil)

	return svc, gen.Close, nil
}

// NewRouter mounts the resume endpoints behind the standard middleware stack.
func NewRouter(h *handler.Handler, cfg *config.Config, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.Server.WriteTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.WriteTimeout))
	}

	h.Routes(r)
	return r
}

// NewHTTPServer returns an http.Server for the configured address.
func NewHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
