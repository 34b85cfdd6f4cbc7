package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/pkg/httputil"
)

// Normalize coerces raw client JSON into a Record and checks the fields a
// document cannot be rendered without.
func Normalize(raw map[string]any) (*domain.Record, error) {
	rec := Decode(raw)
	if err := httputil.Validate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decode coerces raw JSON into a Record. Absent or wrongly typed fields become
// zero values; it never fails.
func Decode(raw map[string]any) *domain.Record {
	personal, _ := raw["personal"].(map[string]any)

	rec := &domain.Record{
		Personal: domain.Personal{
			Name:        str(personal, "name"),
			Email:       str(personal, "email"),
			Phone:       numberish(personal, "phone"),
			Location:    str(personal, "location"),
			LegalStatus: str(personal, "legalStatus"),
		},
		Summary:        asString(raw["summary"]),
		Experience:     experience(raw["experience"]),
		Education:      education(raw["education"]),
		Skills:         skills(raw["skills"]),
		Certifications: certifications(raw["certifications"]),
		StyleOptions:   styleOptions(raw["styleOptions"]),
	}

	if asBool(raw["includeLogo"]) {
		rec.StyleOptions.IncludeLogo = true
	}

	return rec
}

// PipeList splits a pipe-delimited string into trimmed non-empty pieces. A
// list keeps only its trimmed non-empty strings; anything else is empty.
func PipeList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, "|") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// items yields list entries as either a trimmed string or an object.
// Everything else is dropped.
func items(v any) []any {
	switch t := v.(type) {
	case string:
		out := []any{}
		for _, s := range PipeList(t) {
			out = append(out, s)
		}
		return out
	case []any:
		out := []any{}
		for _, item := range t {
			switch it := item.(type) {
			case string:
				if s := strings.TrimSpace(it); s != "" {
					out = append(out, s)
				}
			case map[string]any:
				out = append(out, it)
			}
		}
		return out
	default:
		return []any{}
	}
}

func experience(v any) []domain.Experience {
	out := []domain.Experience{}
	for _, item := range items(v) {
		var e domain.Experience
		switch it := item.(type) {
		case string:
			e.JobTitle = it
		case map[string]any:
			e = domain.Experience{
				JobTitle:    str(it, "jobTitle"),
				Company:     str(it, "company"),
				Dates:       numberish(it, "dates"),
				Description: str(it, "description"),
			}
		}
		if !e.IsEmpty() {
			out = append(out, e)
		}
	}
	return out
}

func education(v any) []domain.Education {
	out := []domain.Education{}
	for _, item := range items(v) {
		var e domain.Education
		switch it := item.(type) {
		case string:
			e.Degree = it
		case map[string]any:
			e = domain.Education{
				Degree:         str(it, "degree"),
				Institution:    str(it, "institution"),
				GraduationYear: numberish(it, "graduationYear"),
				Achievements:   str(it, "achievements"),
			}
		}
		if !e.IsEmpty() {
			out = append(out, e)
		}
	}
	return out
}

func skills(v any) []domain.SkillGroup {
	out := []domain.SkillGroup{}
	for _, item := range items(v) {
		var g domain.SkillGroup
		switch it := item.(type) {
		case string:
			g.Category = it
		case map[string]any:
			g = domain.SkillGroup{
				Category:   str(it, "category"),
				SkillsList: skillsList(it["skills_list"]),
			}
		}
		if !g.IsEmpty() {
			out = append(out, g)
		}
	}
	return out
}

// skillsList accepts either a comma separated string or a list of skills.
func skillsList(v any) string {
	if list, ok := v.([]any); ok {
		return strings.Join(PipeList(list), ", ")
	}
	return asString(v)
}

func certifications(v any) []domain.Certification {
	out := []domain.Certification{}
	for _, item := range items(v) {
		var c domain.Certification
		switch it := item.(type) {
		case string:
			c.Name = it
		case map[string]any:
			c = domain.Certification{
				Name:   str(it, "name"),
				Issuer: str(it, "issuer"),
				Date:   numberish(it, "date"),
			}
		}
		if !c.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}

func styleOptions(v any) domain.StyleOptions {
	m, _ := v.(map[string]any)
	return domain.StyleOptions{
		FontFamily:  str(m, "fontFamily"),
		FontSize:    asFloat(m["fontSize"]),
		AccentColor: hexColor(str(m, "accentColor")),
		IncludeLogo: asBool(m["includeLogo"]),
	}
}

// hexColor adds the leading '#' to bare 3 or 6 digit colors.
func hexColor(s string) string {
	if s == "" || strings.HasPrefix(s, "#") {
		return s
	}
	if _, err := strconv.ParseUint(s, 16, 32); err == nil && (len(s) == 3 || len(s) == 6) {
		return "#" + s
	}
	return s
}

func str(m map[string]any, key string) string {
	return asString(m[key])
}

// numberish reads a field that clients sometimes send as a bare number, such
// as a year or a phone number.
func numberish(m map[string]any, key string) string {
	switch t := m[key].(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return asString(t)
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(t), "pt"), 64)
		return f
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return false
	}
}
