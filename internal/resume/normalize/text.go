// Package normalize turns loosely typed resume input into a domain.Record and
// provides the text cleaning shared by the renderers.
package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var blankLines = regexp.MustCompile(`\n\s*\n`)

// blockTags end a line when HTML is flattened to text
const blockTags = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, blockquote"

// ugc is safe for concurrent use once built
var ugc = bluemonday.UGCPolicy()

// CleanText normalizes line endings, collapses runs of blank lines into a
// single line break and trims the result. CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = blankLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// StripHTML flattens markup to plain text. <br> and block elements become
// line breaks; entities are decoded.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	body := doc.Find("body")
	body.Find("br").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml("\n")
	})
	body.Find(blockTags).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	return body.Text()
}

// SanitizeHTML removes scripts, event handlers and other unsafe markup while
// leaving ordinary formatting tags as written.
func SanitizeHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return ugc.Sanitize(s)
}

// PlainText is StripHTML followed by CleanText, the form used for DOCX output.
func PlainText(s string) string {
	return CleanText(StripHTML(s))
}
