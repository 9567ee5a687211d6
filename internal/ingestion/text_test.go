package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTextNormalizesLineEndings(t *testing.T) {
	got := CleanText("Jane Doe\r\nEngineer\rAustin")
	assert.Equal(t, "Jane Doe\nEngineer\nAustin", got)
}

func TestCleanTextCollapsesSpaceRuns(t *testing.T) {
	got := CleanText("Skills:\t Python,   Go")
	assert.Equal(t, "Skills: Python, Go", got)
}

func TestCleanTextPreservesIndentation(t *testing.T) {
	got := CleanText("Experience:\n  Software   Engineer")
	assert.Equal(t, "Experience:\n  Software Engineer", got)
}

func TestCleanTextNormalizesBullets(t *testing.T) {
	got := CleanText("• Built pipelines\n· Led reviews")
	assert.Equal(t, "- Built pipelines\n- Led reviews", got)
}

func TestCleanTextCapsBlankRuns(t *testing.T) {
	got := CleanText("Summary\n\n\n\n\nSkills")
	assert.Equal(t, "Summary\n\nSkills", got)
}

func TestCleanTextEmpty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestReadDocumentPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\nEngineer\n"), 0o644))

	text, meta, err := ReadDocument(path)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineer", text)
	require.NotNil(t, meta)
	assert.Equal(t, path, meta.Source)
	assert.Len(t, meta.Hash, 64)
	assert.Equal(t, 2, meta.Lines)
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, _, err := ReadDocument(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadDocumentEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n \n"), 0o644))

	_, _, err := ReadDocument(path)

	assert.ErrorIs(t, err, ErrDocumentUnreadable)
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	_, err := ExtractText("resume.xyz")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestIsBinaryData(t *testing.T) {
	assert.True(t, IsBinaryData("%PDF-1.7 blob"))
	assert.True(t, IsBinaryData("PK\x03\x04zipped"))
	assert.False(t, IsBinaryData("Jane Doe\nSoftware Engineer"))
	assert.False(t, IsBinaryData(""))
}
