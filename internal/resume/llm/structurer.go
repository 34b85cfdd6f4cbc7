package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/internal/resume/normalize"
	apperrors "github.com/pamten/resume-backend/pkg/errors"
	"github.com/pamten/resume-backend/pkg/logger"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// pitchRoles caps how many jobs are described to the model
const pitchRoles = 3

var strict = bluemonday.StrictPolicy()

// Structurer turns resume text into a Record and writes elevator pitches.
type Structurer struct {
	gen     Generator
	timeout time.Duration
	log     *logger.Logger
}

// NewStructurer creates a Structurer. A zero timeout leaves the caller's
// deadline in charge.
func NewStructurer(gen Generator, timeout time.Duration, log *logger.Logger) *Structurer {
	if log == nil {
		log = logger.Nop()
	}
	return &Structurer{gen: gen, timeout: timeout, log: log.WithComponent("llm")}
}

// Structure asks the model for a resume record. The reply is untrusted: it
// must match the record schema and is then coerced like client input.
func (s *Structurer) Structure(ctx context.Context, text string) (*domain.Record, error) {
	prompt, err := renderPrompt("structure.tmpl", map[string]string{"Text": text})
	if err != nil {
		return nil, apperrors.Internal("Failed to build the AI prompt.").WithCause(err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	raw, err := s.gen.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, apperrors.AIService("The AI service failed to structure the resume.", err)
	}
	raw = CleanJSONBlock(raw)
	if raw == "" {
		return nil, apperrors.AIService("The AI service returned an empty response.", errors.New("empty response"))
	}

	if err := normalize.ValidateRecordJSON(raw); err != nil {
		return nil, apperrors.AIService("The AI service returned an invalid resume structure.", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, apperrors.AIService("The AI service returned an invalid resume structure.", err)
	}

	rec := normalize.Decode(doc)
	s.log.Debug().
		Dur("duration", time.Since(start)).
		Int("input_chars", len(text)).
		Int("experience", len(rec.Experience)).
		Msg("resume structured")

	return rec, nil
}

// ElevatorPitch asks the model for a short plain-text pitch built from rec.
func (s *Structurer) ElevatorPitch(ctx context.Context, rec *domain.Record) (string, error) {
	prompt, err := renderPrompt("pitch.tmpl", pitchData(rec))
	if err != nil {
		return "", apperrors.Internal("Failed to build the AI prompt.").WithCause(err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", apperrors.AIService("The AI service failed to generate an elevator pitch.", err)
	}

	pitch := PlainPitch(out)
	if pitch == "" {
		return "", apperrors.AIService("The AI service returned an empty elevator pitch.", errors.New("empty response"))
	}
	return pitch, nil
}

// PlainPitch strips markup and wrapping quotes from a model reply.
func PlainPitch(s string) string {
	s = html.UnescapeString(strict.Sanitize(s))
	s = normalize.CleanText(s)
	s = strings.Trim(s, "\"“”")
	return strings.TrimSpace(s)
}

func (s *Structurer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

type pitchPrompt struct {
	Name           string
	Summary        string
	Roles          []string
	Skills         string
	Certifications string
}

func pitchData(rec *domain.Record) pitchPrompt {
	p := pitchPrompt{
		Name:    rec.Personal.Name,
		Summary: normalize.PlainText(rec.Summary),
	}

	for i, e := range rec.Experience {
		if i == pitchRoles {
			break
		}
		role := e.JobTitle
		if e.Company != "" {
			role += " at " + e.Company
		}
		if e.Dates != "" {
			role += " (" + e.Dates + ")"
		}
		p.Roles = append(p.Roles, strings.TrimSpace(role))
	}

	var skills []string
	for _, g := range rec.Skills {
		switch {
		case g.Category != "" && g.SkillsList != "":
			skills = append(skills, g.Category+": "+g.SkillsList)
		case g.SkillsList != "":
			skills = append(skills, g.SkillsList)
		default:
			skills = append(skills, g.Category)
		}
	}
	p.Skills = strings.Join(skills, "; ")

	var certs []string
	for _, c := range rec.Certifications {
		if c.Name != "" {
			certs = append(certs, c.Name)
		}
	}
	p.Certifications = strings.Join(certs, ", ")

	return p
}

func renderPrompt(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}
