package normalize_test

import (
	"testing"

	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/pamten/resume-backend/internal/resume/normalize"
	"github.com/pamten/resume-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"blank line collapsed", "Hello\n\nWorld", "Hello\nWorld"},
		{"crlf", "a\r\nb", "a\nb"},
		{"whitespace only lines", "a\n   \n\t\n b", "a\n b"},
		{"trimmed", "  \n text \n\n ", "text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.CleanText(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, normalize.CleanText(got))
		})
	}
}

func TestPipeList(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, normalize.PipeList("A | B |  | C"))
	assert.Equal(t, []string{"A", "B"}, normalize.PipeList([]any{"A", "", "  ", "B"}))
	assert.Equal(t, []string{"A"}, normalize.PipeList([]any{"A", 3, nil, map[string]any{}}))
	assert.Empty(t, normalize.PipeList(42))
	assert.Empty(t, normalize.PipeList(nil))
	assert.Empty(t, normalize.PipeList(" | "))
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line break", "<p>Line1<br>Line2</p>", "Line1\nLine2"},
		{"paragraphs", "<p>One</p><p>Two</p>", "One\nTwo"},
		{"list", "<ul><li>A</li><li>B</li></ul>", "A\nB"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"plain", "no markup here", "no markup here"},
		{"inline tags", "<b>Bold</b> and <i>italic</i>", "Bold and italic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.PlainText(tt.in))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "<p>Line1<br>Line2</p>", normalize.SanitizeHTML("<p>Line1<br>Line2</p>"))

	out := normalize.SanitizeHTML(`<p>Hi</p><script>alert(1)</script>`)
	assert.Contains(t, out, "<p>Hi</p>")
	assert.NotContains(t, out, "script")

	out = normalize.SanitizeHTML(`<b onclick="steal()">B</b>`)
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "B</b>")
}

func TestNormalize_Full(t *testing.T) {
	raw := map[string]any{
		"personal": map[string]any{
			"name":        "  Jane Doe ",
			"email":       "jane@example.com",
			"phone":       5551234.0,
			"legalStatus": "Prefer not to say",
		},
		"summary": "<p>Builder</p>",
		"experience": []any{
			map[string]any{"jobTitle": "Engineer", "company": "Acme", "dates": "2020 - 2024", "description": "Shipped things"},
			"Intern at Foo",
			42,
			"",
			map[string]any{},
		},
		"education":      "BSc CS | | MSc CS",
		"skills":         []any{map[string]any{"category": "Languages", "skills_list": []any{"Go", "Python"}}},
		"certifications": 7,
		"styleOptions": map[string]any{
			"fontFamily":  "Georgia, serif",
			"fontSize":    12.0,
			"accentColor": "#FF0000",
		},
		"includeLogo": true,
	}

	rec, err := normalize.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", rec.Personal.Name)
	assert.Equal(t, "5551234", rec.Personal.Phone)
	assert.Equal(t, "<p>Builder</p>", rec.Summary)

	require.Len(t, rec.Experience, 2)
	assert.Equal(t, "Acme", rec.Experience[0].Company)
	assert.Equal(t, domain.Experience{JobTitle: "Intern at Foo"}, rec.Experience[1])

	require.Len(t, rec.Education, 2)
	assert.Equal(t, "BSc CS", rec.Education[0].Degree)
	assert.Equal(t, "MSc CS", rec.Education[1].Degree)

	require.Len(t, rec.Skills, 1)
	assert.Equal(t, "Go, Python", rec.Skills[0].SkillsList)

	assert.Empty(t, rec.Certifications)
	assert.NotNil(t, rec.Certifications)

	assert.Equal(t, "Georgia", rec.StyleOptions.Font())
	assert.Equal(t, 12.0, rec.StyleOptions.Size())
	assert.True(t, rec.StyleOptions.IncludeLogo)
}

func TestNormalize_MissingName(t *testing.T) {
	inputs := []map[string]any{
		nil,
		{},
		{"personal": "Jane"},
		{"personal": map[string]any{"name": "   "}},
		{"personal": map[string]any{"name": 12}},
	}

	for _, raw := range inputs {
		rec, err := normalize.Normalize(raw)
		require.Error(t, err)
		assert.Nil(t, rec)
		assert.True(t, errors.Is(err, errors.ErrValidation))

		var appErr *errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "personal.name", appErr.Details["field"])
		assert.Equal(t, 400, appErr.StatusCode)
	}
}

func TestNormalize_InvalidStyle(t *testing.T) {
	tests := []struct {
		name  string
		style map[string]any
		field string
	}{
		{"bad color", map[string]any{"accentColor": "blue-ish"}, "styleOptions.accentColor"},
		{"font too large", map[string]any{"fontSize": 200.0}, "styleOptions.fontSize"},
		{"font too small", map[string]any{"fontSize": "2"}, "styleOptions.fontSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalize.Normalize(map[string]any{
				"personal":     map[string]any{"name": "Jane"},
				"styleOptions": tt.style,
			})
			var appErr *errors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestDecode_BareHexColor(t *testing.T) {
	rec := normalize.Decode(map[string]any{"styleOptions": map[string]any{"accentColor": "00aa11"}})
	assert.Equal(t, "#00aa11", rec.StyleOptions.AccentColor)
	assert.Equal(t, "00aa11", rec.StyleOptions.Accent())
}

func TestDecode_NoNameGate(t *testing.T) {
	rec := normalize.Decode(map[string]any{"summary": " hi "})
	require.NotNil(t, rec)
	assert.Equal(t, "hi", rec.Summary)
	assert.Empty(t, rec.Personal.Name)
	assert.NotNil(t, rec.Experience)
}

func TestDecode_NumbersOnlyWhereNumeric(t *testing.T) {
	rec := normalize.Decode(map[string]any{
		"personal":       map[string]any{"name": 7.0, "phone": 5550100.0},
		"education":      []any{map[string]any{"degree": "BSc", "graduationYear": 2019.0}},
		"certifications": []any{map[string]any{"name": "CKA", "date": 2023.0}},
		"styleOptions":   map[string]any{"fontFamily": 5.0},
	})

	assert.Empty(t, rec.Personal.Name)
	assert.Equal(t, "5550100", rec.Personal.Phone)
	require.Len(t, rec.Education, 1)
	assert.Equal(t, "2019", rec.Education[0].GraduationYear)
	require.Len(t, rec.Certifications, 1)
	assert.Equal(t, "2023", rec.Certifications[0].Date)
	assert.Empty(t, rec.StyleOptions.FontFamily)
}
