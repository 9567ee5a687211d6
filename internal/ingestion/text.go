package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	spaceRunRe  = regexp.MustCompile(`[ \t]+`)
	blankRunRe  = regexp.MustCompile(`\n\n\n+`)
	bulletChars = []string{"• ", "· ", "▪ ", "‣ "}
)

// CleanText normalizes raw document text while preserving the line structure
// the section locator and extractors depend on.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF and bare CR to LF).
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine normalizes a single line. Unicode bullets become "- " so list
// items look uniform downstream; runs of spaces and tabs collapse to one
// space, but leading indentation survives.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	for _, bullet := range bulletChars {
		if strings.HasPrefix(trimmed, bullet) {
			trimmed = "- " + strings.TrimPrefix(trimmed, bullet)
			break
		}
	}

	content := spaceRunRe.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// ReadDocument loads a candidate document from disk, extracts its text, and
// returns the cleaned content with metadata. Plain text files are read
// directly; PDF and Word documents go through the external extractors.
func ReadDocument(path string) (string, *Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("document not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read document: %w", err)
	}

	text := string(raw)
	if IsBinaryData(text) {
		text, err = ExtractText(path)
		if err != nil {
			return "", nil, err
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrDocumentUnreadable, path)
	}
	return cleaned, NewMetadata(cleaned, path), nil
}
