package render

import (
	"bytes"
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/internal/resume/normalize"
	"github.com/pamten/resume-backend/pkg/errors"
)

// Font sizes in points
const (
	nameSize    = 24
	headingSize = 14
)

// Logo width on the page, in EMU (1.5in)
const logoWidthEMU = 1371600

// DOCXRenderer writes Word documents
type DOCXRenderer struct {
	logo []byte
}

func NewDOCX() *DOCXRenderer {
	return &DOCXRenderer{logo: logoPNG}
}

func (r *DOCXRenderer) ContentType() string { return ContentTypeDOCX }
func (r *DOCXRenderer) Extension() string   { return ".docx" }

// Render builds the document. HTML in free-text fields is flattened to plain
// text and every field is whitespace-normalized.
func (r *DOCXRenderer) Render(ctx context.Context, rec *domain.Record) ([]byte, error) {
	if err := checkRenderable(rec); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := &docxWriter{
		doc:    docx.New().WithDefaultTheme(),
		font:   rec.StyleOptions.Font(),
		size:   halfPoints(rec.StyleOptions.Size()),
		accent: strings.ToUpper(rec.StyleOptions.Accent()),
	}

	if rec.StyleOptions.IncludeLogo {
		if err := w.logo(r.logo); err != nil {
			return nil, errors.Render("An internal error occurred while generating the DOCX file.", err)
		}
	}

	w.header(rec.Personal)
	w.summary(rec.Summary)
	w.experience(rec.Experience)
	w.education(rec.Education)
	w.skills(rec.Skills)
	w.certifications(rec.Certifications)

	var buf bytes.Buffer
	if _, err := w.doc.WriteTo(&buf); err != nil {
		return nil, errors.Render("An internal error occurred while generating the DOCX file.", err)
	}
	return buf.Bytes(), nil
}

type docxWriter struct {
	doc    *docx.Docx
	font   string
	size   string
	accent string
}

func (w *docxWriter) logo(png []byte) error {
	p := w.doc.AddParagraph().Justification("center")
	run, err := p.AddInlineDrawing(png)
	if err != nil {
		return err
	}
	for _, child := range run.Children {
		if d, ok := child.(*docx.Drawing); ok && d.Inline != nil && d.Inline.Extent != nil && d.Inline.Extent.CX > 0 {
			h := logoWidthEMU * d.Inline.Extent.CY / d.Inline.Extent.CX
			d.Inline.Size(logoWidthEMU, h)
		}
	}
	return nil
}

func (w *docxWriter) header(p domain.Personal) {
	name := w.doc.AddParagraph().Justification("center")
	w.text(name, normalize.CleanText(p.Name)).Bold().Size(halfPoints(nameSize)).Color(w.accent)

	if contact := joinNonEmpty(" | ", p.ContactItems()...); contact != "" {
		w.text(w.doc.AddParagraph().Justification("center"), normalize.CleanText(contact))
	}
	w.doc.AddParagraph()
}

func (w *docxWriter) heading(title string) {
	w.text(w.doc.AddParagraph(), title).Bold().Size(halfPoints(headingSize)).Color(w.accent)
}

func (w *docxWriter) summary(s string) {
	text := normalize.PlainText(s)
	if text == "" {
		return
	}
	w.heading("Summary")
	w.text(w.doc.AddParagraph(), text)
}

func (w *docxWriter) experience(entries []domain.Experience) {
	if len(entries) == 0 {
		return
	}
	w.heading("Experience")
	for _, e := range entries {
		w.entry(
			normalize.CleanText(e.JobTitle),
			joinNonEmpty(" | ", normalize.CleanText(e.Company), normalize.CleanText(e.Dates)),
			normalize.PlainText(e.Description),
		)
	}
}

func (w *docxWriter) education(entries []domain.Education) {
	if len(entries) == 0 {
		return
	}
	w.heading("Education")
	for _, e := range entries {
		w.entry(
			normalize.CleanText(e.Degree),
			joinNonEmpty(" | ", normalize.CleanText(e.Institution), normalize.CleanText(e.GraduationYear)),
			normalize.PlainText(e.Achievements),
		)
	}
}

func (w *docxWriter) skills(groups []domain.SkillGroup) {
	if len(groups) == 0 {
		return
	}
	w.heading("Skills")
	for _, g := range groups {
		p := w.doc.AddParagraph()
		category := normalize.CleanText(g.Category)
		list := normalize.CleanText(g.SkillsList)
		switch {
		case category != "" && list != "":
			w.text(p, category+": ").Bold()
			w.text(p, list)
		case category != "":
			w.text(p, category).Bold()
		default:
			w.text(p, list)
		}
	}
}

func (w *docxWriter) certifications(certs []domain.Certification) {
	if len(certs) == 0 {
		return
	}
	w.heading("Certifications")
	for _, c := range certs {
		w.entry(
			normalize.CleanText(c.Name),
			joinNonEmpty(" | ", normalize.CleanText(c.Issuer), normalize.CleanText(c.Date)),
			"",
		)
	}
}

// entry writes a bold title, an italic detail line and a body in one
// paragraph, separated by line breaks.
func (w *docxWriter) entry(title, detail, body string) {
	p := w.doc.AddParagraph()
	lead := ""
	if title != "" {
		w.text(p, title).Bold()
		lead = "\n"
	}
	if detail != "" {
		w.text(p, lead+detail).Italic()
		lead = "\n"
	}
	if body != "" {
		w.text(p, lead+body)
	}
}

// text appends a run in the body font, keeping its whitespace as written.
func (w *docxWriter) text(p *docx.Paragraph, s string) *docx.Run {
	run := p.AddText(s).Font(w.font, w.font, w.font, "").Size(w.size)
	for _, child := range run.Children {
		if t, ok := child.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	return run
}

func halfPoints(pt float64) string {
	return strconv.Itoa(int(math.Round(pt * 2)))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
