package ingestion

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// MinExtractedTextLength guards against extractors that exit zero but
	// produce nothing useful.
	MinExtractedTextLength = 50
	// binarySampleSize is the number of bytes sampled for binary detection.
	binarySampleSize = 1000
	// binaryThreshold is the non-printable proportion above which content
	// is treated as binary.
	binaryThreshold = 0.3
)

// ExtractText extracts plain text from a PDF, DOC, DOCX, or TXT document.
func ExtractText(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".text", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return string(raw), nil
	case ".pdf":
		return extractPDF(path)
	case ".doc", ".docx":
		return extractWord(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// extractPDF shells out to pdftotext with layout preservation, which keeps
// resume columns and headings on their own lines.
func extractPDF(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdf extraction requires pdftotext (poppler-utils): %w", err)
	}
	text := string(out)
	if len(strings.TrimSpace(text)) < MinExtractedTextLength {
		return "", fmt.Errorf("%w: pdf yielded no usable text: %s", ErrDocumentUnreadable, path)
	}
	return text, nil
}

// extractWord handles legacy .doc via antiword. There is no reliable .docx
// path without a heavier dependency, so those are reported as unsupported.
func extractWord(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".docx" {
		return "", fmt.Errorf("%w: convert .docx to pdf or txt first", ErrUnsupportedFormat)
	}
	cmd := exec.Command("antiword", path)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("doc extraction requires antiword: %w", err)
	}
	return string(out), nil
}

// IsBinaryData reports whether content looks like a binary container rather
// than plain text. PDF and ZIP magic numbers are checked first, then the
// proportion of non-printable bytes in a leading sample.
func IsBinaryData(content string) bool {
	if content == "" {
		return false
	}
	if strings.HasPrefix(content, "%PDF-") {
		return true
	}
	if len(content) >= 2 && content[:2] == "PK" {
		return true
	}

	sample := len(content)
	if sample > binarySampleSize {
		sample = binarySampleSize
	}
	nonPrintable := 0
	for i := 0; i < sample; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(sample) > binaryThreshold
}
