package render

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"html/template"
	"strings"
	"time"

	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/internal/resume/normalize"
	"github.com/pamten/resume-backend/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/resume.html.tmpl"),
)

// HTMLConverter prints an HTML document to PDF
type HTMLConverter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// PDFRenderer lays the record out as HTML and prints it
type PDFRenderer struct {
	conv    HTMLConverter
	timeout time.Duration
	logo    template.URL
}

// NewPDF creates a PDF renderer. A zero timeout leaves the caller's deadline
// in charge.
func NewPDF(conv HTMLConverter, timeout time.Duration) *PDFRenderer {
	return &PDFRenderer{
		conv:    conv,
		timeout: timeout,
		logo:    template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(logoPNG)),
	}
}

func (r *PDFRenderer) ContentType() string { return ContentTypePDF }
func (r *PDFRenderer) Extension() string   { return ".pdf" }

// Render builds the PDF bytes for rec.
func (r *PDFRenderer) Render(ctx context.Context, rec *domain.Record) ([]byte, error) {
	page, err := r.RenderHTML(rec)
	if err != nil {
		return nil, err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.conv.Convert(ctx, page)
	if err != nil {
		return nil, errors.Render("An internal error occurred while generating the PDF file.", err)
	}
	if len(out) == 0 {
		return nil, errors.Render("An internal error occurred while generating the PDF file.", errEmptyPDF)
	}
	return out, nil
}

// RenderHTML returns the HTML document that Render prints. Summary and
// descriptions keep their markup after sanitizing; every other field is
// escaped text.
func (r *PDFRenderer) RenderHTML(rec *domain.Record) (string, error) {
	if err := checkRenderable(rec); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, r.view(rec)); err != nil {
		return "", errors.Render("An internal error occurred while generating the PDF file.", err)
	}
	return buf.String(), nil
}

type pdfView struct {
	Name           string
	Contact        []string
	Summary        template.HTML
	Experience     []pdfEntry
	Education      []pdfEducation
	Skills         []domain.SkillGroup
	Certifications []pdfCert
	Font           string
	FontSize       float64
	Accent         string
	Logo           template.URL
}

type pdfEntry struct {
	JobTitle    string
	Meta        string
	Description template.HTML
}

type pdfEducation struct {
	Degree       string
	Meta         string
	Achievements string
}

type pdfCert struct {
	Name string
	Meta string
}

func (r *PDFRenderer) view(rec *domain.Record) pdfView {
	clean := normalize.CleanText
	v := pdfView{
		Name:     clean(rec.Personal.Name),
		Summary:  richText(rec.Summary),
		Font:     rec.StyleOptions.Font(),
		FontSize: rec.StyleOptions.Size(),
		Accent:   rec.StyleOptions.Accent(),
	}
	for _, c := range rec.Personal.ContactItems() {
		v.Contact = append(v.Contact, clean(c))
	}
	if rec.StyleOptions.IncludeLogo {
		v.Logo = r.logo
	}

	for _, e := range rec.Experience {
		v.Experience = append(v.Experience, pdfEntry{
			JobTitle:    clean(e.JobTitle),
			Meta:        joinNonEmpty(" | ", clean(e.Company), clean(e.Dates)),
			Description: richText(e.Description),
		})
	}
	for _, e := range rec.Education {
		v.Education = append(v.Education, pdfEducation{
			Degree:       clean(e.Degree),
			Meta:         joinNonEmpty(" | ", clean(e.Institution), clean(e.GraduationYear)),
			Achievements: clean(e.Achievements),
		})
	}
	for _, g := range rec.Skills {
		v.Skills = append(v.Skills, domain.SkillGroup{Category: clean(g.Category), SkillsList: clean(g.SkillsList)})
	}
	for _, c := range rec.Certifications {
		v.Certifications = append(v.Certifications, pdfCert{
			Name: clean(c.Name),
			Meta: joinNonEmpty(" | ", clean(c.Issuer), clean(c.Date)),
		})
	}
	return v
}

// richText cleans whitespace and sanitizes markup that is rendered as HTML.
// Markup without any text renders as nothing.
func richText(s string) template.HTML {
	if normalize.PlainText(s) == "" {
		return ""
	}
	return template.HTML(normalize.SanitizeHTML(normalize.CleanText(s)))
}
