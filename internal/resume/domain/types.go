package domain

import "strings"

// LegalStatusUndisclosed is the legal status value that is never displayed
const LegalStatusUndisclosed = "Prefer not to say"

// Style defaults applied when the client leaves an option unset
const (
	DefaultFontFamily  = "Calibri"
	DefaultFontSize    = 11.0
	DefaultAccentColor = "#34495e"
)

// Record is the canonical structured resume shared by extraction,
// structuring and rendering.
type Record struct {
	Personal       Personal        `json:"personal"`
	Summary        string          `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []SkillGroup    `json:"skills"`
	Certifications []Certification `json:"certifications"`
	StyleOptions   StyleOptions    `json:"styleOptions"`
}

// Personal holds the header block of a resume
type Personal struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	LegalStatus string `json:"legalStatus,omitempty"`
}

// DisplayLegalStatus returns the legal status to print, or "" when it
// should be omitted.
func (p Personal) DisplayLegalStatus() string {
	if p.LegalStatus == LegalStatusUndisclosed {
		return ""
	}
	return p.LegalStatus
}

// ContactItems returns the non-empty contact fields in display order.
func (p Personal) ContactItems() []string {
	var items []string
	for _, s := range []string{p.Email, p.Phone, p.Location, p.DisplayLegalStatus()} {
		if s != "" {
			items = append(items, s)
		}
	}
	return items
}

// Experience is one job entry. Description may contain HTML.
type Experience struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e Experience) IsEmpty() bool {
	return e.JobTitle == "" && e.Company == "" && e.Dates == "" && e.Description == ""
}

// Education is one degree entry
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	Achievements   string `json:"achievements,omitempty"`
}

func (e Education) IsEmpty() bool {
	return e.Degree == "" && e.Institution == "" && e.GraduationYear == "" && e.Achievements == ""
}

// SkillGroup is a category with its skills
type SkillGroup struct {
	Category   string `json:"category"`
	SkillsList string `json:"skills_list,omitempty"`
}

func (s SkillGroup) IsEmpty() bool {
	return s.Category == "" && s.SkillsList == ""
}

// Certification is one certificate entry
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

func (c Certification) IsEmpty() bool {
	return c.Name == "" && c.Issuer == "" && c.Date == ""
}

// StyleOptions configures rendered documents
type StyleOptions struct {
	FontFamily  string  `json:"fontFamily,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty" validate:"omitempty,gte=6,lte=72"`
	AccentColor string  `json:"accentColor,omitempty" validate:"omitempty,hexcolor"`
	IncludeLogo bool    `json:"includeLogo,omitempty"`
}

// Font returns the first family of a CSS-style font list.
func (s StyleOptions) Font() string {
	first := strings.TrimSpace(strings.SplitN(s.FontFamily, ",", 2)[0])
	first = strings.Trim(first, `"'`)
	if first == "" {
		return DefaultFontFamily
	}
	return first
}

// Size returns the body font size in points.
func (s StyleOptions) Size() float64 {
	if s.FontSize <= 0 {
		return DefaultFontSize
	}
	return s.FontSize
}

// Accent returns the accent color as six hex digits without '#'.
func (s StyleOptions) Accent() string {
	c := strings.TrimPrefix(strings.TrimSpace(s.AccentColor), "#")
	switch len(c) {
	case 6:
		return strings.ToLower(c)
	case 3:
		return strings.ToLower(string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]}))
	default:
		return strings.TrimPrefix(DefaultAccentColor, "#")
	}
}
