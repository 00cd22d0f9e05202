package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// createTestDOCX creates a minimal DOCX package in memory.
func createTestDOCX(t *testing.T, body string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	ct, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, _ = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))

	if body != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, _ = doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".docx", ".doc", ".docs", ".dox"}, New().Extensions())
}

func TestExtract_Paragraphs(t *testing.T) {
	content := createTestDOCX(t,
		`<w:p><w:r><w:t>IN THE HIGH COURT</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>WRIT PETITION</w:t></w:r><w:r><w:t xml:space="preserve"> NO. 12</w:t></w:r></w:p>`+
			`<w:p/>`+
			`<w:p><w:r><w:t>Prayer</w:t></w:r></w:p>`)

	text, err := New().Extract(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, "IN THE HIGH COURT\nWRIT PETITION NO. 12\n\nPrayer", text)
}

func TestExtract_TabsBreaksAndTables(t *testing.T) {
	content := createTestDOCX(t,
		`<w:p><w:r><w:t>Date</w:t><w:tab/><w:t>Event</w:t><w:br/><w:t>next</w:t></w:r></w:p>`+
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)

	text, err := New().Extract(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, "Date Event\nnext\ncell", text)
}

func TestExtract_EmptyBody(t *testing.T) {
	text, err := New().Extract(context.Background(), createTestDOCX(t, `<w:sectPr/>`))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_NotZip(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("legacy binary .doc"))
	require.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_MissingDocumentPart(t *testing.T) {
	_, err := New().Extract(context.Background(), createTestDOCX(t, ""))
	require.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_MalformedXML(t *testing.T) {
	content := createTestDOCX(t, `<w:p><w:r><w:t>unterminated`)
	_, err := New().Extract(context.Background(), content)
	require.ErrorIs(t, err, domain.ErrExtractionFailed)
}
