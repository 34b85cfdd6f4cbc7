package domain_test

import (
	"testing"

	"github.com/pamten/resume-backend/internal/resume/domain"
	"github.com/stretchr/testify/assert"
)

func TestPersonal_ContactItems(t *testing.T) {
	tests := []struct {
		name     string
		personal domain.Personal
		want     []string
	}{
		{
			name:     "all fields",
			personal: domain.Personal{Email: "a@b.c", Phone: "555", Location: "Austin", LegalStatus: "US Citizen"},
			want:     []string{"a@b.c", "555", "Austin", "US Citizen"},
		},
		{
			name:     "sentinel legal status omitted",
			personal: domain.Personal{Email: "a@b.c", LegalStatus: domain.LegalStatusUndisclosed},
			want:     []string{"a@b.c"},
		},
		{
			name:     "blanks skipped",
			personal: domain.Personal{Phone: "555"},
			want:     []string{"555"},
		},
		{
			name:     "nothing",
			personal: domain.Personal{Name: "Jane"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.personal.ContactItems())
		})
	}
}

func TestStyleOptions_Defaults(t *testing.T) {
	var s domain.StyleOptions
	assert.Equal(t, "Calibri", s.Font())
	assert.Equal(t, 11.0, s.Size())
	assert.Equal(t, "34495e", s.Accent())
}

func TestStyleOptions_Font(t *testing.T) {
	tests := []struct {
		family string
		want   string
	}{
		{"Georgia, serif", "Georgia"},
		{"'Open Sans', Arial", "Open Sans"},
		{"  Arial  ", "Arial"},
		{", serif", "Calibri"},
	}
	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StyleOptions{FontFamily: tt.family}.Font())
		})
	}
}

func TestStyleOptions_Accent(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{"#FF0000", "ff0000"},
		{"00aa11", "00aa11"},
		{"#abc", "aabbcc"},
		{"not-a-color", "34495e"},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StyleOptions{AccentColor: tt.color}.Accent())
		})
	}
}

func TestEntries_IsEmpty(t *testing.T) {
	assert.True(t, domain.Experience{}.IsEmpty())
	assert.False(t, domain.Experience{Dates: "2020"}.IsEmpty())
	assert.True(t, domain.Education{}.IsEmpty())
	assert.False(t, domain.Education{Institution: "MIT"}.IsEmpty())
	assert.True(t, domain.SkillGroup{}.IsEmpty())
	assert.False(t, domain.SkillGroup{SkillsList: "Go"}.IsEmpty())
	assert.True(t, domain.Certification{}.IsEmpty())
	assert.False(t, domain.Certification{Issuer: "AWS"}.IsEmpty())
}
