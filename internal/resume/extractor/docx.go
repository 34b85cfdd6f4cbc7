package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pamten/resume-backend/pkg/errors"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DOCXExtractor reads the main document part of a Word file
type DOCXExtractor struct{}

func NewDOCX() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (d *DOCXExtractor) Name() string { return "docx" }

func (d *DOCXExtractor) CanExtract(ext string) bool {
	return ext == ".docx"
}

// Extract returns one line per paragraph in document order, empty paragraphs
// included.
func (d *DOCXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Extraction("The uploaded file is not a valid .docx document.", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return "", errors.Extraction("The uploaded file is not a valid .docx document.", nil)
	}

	rc, err := part.Open()
	if err != nil {
		return "", errors.Extraction("Failed to read the document.", err)
	}
	defer rc.Close()

	lines, err := paragraphs(ctx, rc)
	if err != nil {
		return "", errors.Extraction("Failed to read the document.", err)
	}
	return strings.Join(lines, "\n"), nil
}

// paragraphs walks document.xml and collects the text of each w:p.
func paragraphs(ctx context.Context, r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines  []string
		open   []*strings.Builder
		inText bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				write(open, "\t")
			case "br", "cr":
				write(open, "\n")
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if n := len(open); n > 0 {
					lines = append(lines, open[n-1].String())
					open = open[:n-1]
				}
			}
		case xml.CharData:
			if inText {
				write(open, string(t))
			}
		}
	}

	return lines, nil
}

func write(open []*strings.Builder, s string) {
	if n := len(open); n > 0 {
		open[n-1].WriteString(s)
	}
}
