package extractor_test

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pamten/resume-backend/internal/resume/extractor"
	"github.com/pamten/resume-backend/internal/resume/normalize"
	"github.com/pamten/resume-backend/pkg/errors"
	"github.com/pamten/resume-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	ext    string
	text   string
	called bool
}

func (f *fakeExtractor) CanExtract(ext string) bool { return ext == f.ext }
func (f *fakeExtractor) Name() string              { return "fake" }
func (f *fakeExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	f.called = true
	return f.text, nil
}

func TestDOCXExtractor_Paragraphs(t *testing.T) {
	data := testutil.BuildDOCX(t, "Hello", "", "World")

	text, err := extractor.NewDOCX().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n\nWorld", text)
	assert.Equal(t, "Hello\nWorld", normalize.CleanText(text))
}

func TestDOCXExtractor_LineBreaksAndTabs(t *testing.T) {
	data := testutil.BuildDOCX(t, "Line1\nLine2", "a\tb")

	text, err := extractor.NewDOCX().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Line1\nLine2\na\tb", text)
}

func TestDOCXExtractor_NotAZip(t *testing.T) {
	_, err := extractor.NewDOCX().Extract(context.Background(), []byte("plain text"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExtraction))

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.StatusCode)
}

func TestDOCXExtractor_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extractor.NewDOCX().Extract(context.Background(), buf.Bytes())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExtraction))
}

func TestPDFExtractor_Pages(t *testing.T) {
	data := testutil.BuildPDF(t, "Hello PDF", "", "Page three")

	text, err := extractor.NewPDF().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello PDF")
	assert.Contains(t, text, "Page three")
	assert.Less(t, strings.Index(text, "Hello PDF"), strings.Index(text, "Page three"))
}

func TestPDFExtractor_Invalid(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("%PDF-1.4\ngarbage"), []byte("not a pdf at all")} {
		_, err := extractor.NewPDF().Extract(context.Background(), data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrExtraction))
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	docxFake := &fakeExtractor{ext: ".docx", text: "from docx"}
	pdfFake := &fakeExtractor{ext: ".pdf", text: "from pdf"}
	reg := extractor.NewRegistry(docxFake, pdfFake)

	text, err := reg.Extract(context.Background(), "Resume.PDF", nil)
	require.NoError(t, err)
	assert.Equal(t, "from pdf", text)
	assert.True(t, pdfFake.called)
	assert.False(t, docxFake.called)
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	fake := &fakeExtractor{ext: ".docx", text: "x"}
	reg := extractor.NewRegistry(fake)

	for _, name := range []string{"resume.txt", "resume", "resume.doc"} {
		_, err := reg.Extract(context.Background(), name, []byte("data"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))

		var appErr *errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 400, appErr.StatusCode)
	}
	assert.False(t, fake.called)
	assert.False(t, reg.Supported("resume.txt"))
	assert.True(t, reg.Supported("RESUME.DOCX"))
}

func TestRegistry_EmptyExtraction(t *testing.T) {
	reg := extractor.NewRegistry(&fakeExtractor{ext: ".pdf", text: " \n\t "})

	_, err := reg.Extract(context.Background(), "scan.pdf", []byte("data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyExtraction))
	assert.Equal(t, "Could not extract any text from the document.", err.Error())
}

func TestDefaultRegistry(t *testing.T) {
	reg := extractor.Default()
	assert.Equal(t, "docx", reg.Find("a.docx").Name())
	assert.Equal(t, "pdf", reg.Find("a.pdf").Name())
	assert.Nil(t, reg.Find("a.png"))

	text, err := reg.Extract(context.Background(), "cv.docx", testutil.BuildDOCX(t, "Jane Doe", "Engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineer", text)
}
