// Package sections locates heading-delimited regions inside resume-shaped
// text. It is a heuristic boundary finder, not a document-structure parser:
// the first heading hit wins and false positives are tolerated by design.
package sections

import (
	"strings"
	"unicode"
)

// maxHeadingLength bounds how long a line can be and still count as a
// section heading. Real headings are short ("Work Experience:").
const maxHeadingLength = 48

// Find scans text case-insensitively for the first line that consists of one
// of the given heading names (with or without a trailing colon) and returns
// the body below it, up to but not including the next line that looks like a
// new section heading, or end of text. Returns "" when no heading matches.
//
// Opening and closing are deliberately asymmetric: a known heading name
// opens a section with or without its colon, but only a colon-terminated
// line (IsHeadingLine) closes one. A bare unknown heading does not end the
// section; its content bleeds into the body above it.
func Find(text string, names []string) string {
	if text == "" || len(names) == 0 {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !matchesHeading(line, names) {
			continue
		}

		body := make([]string, 0, len(lines)-i)
		for j := i + 1; j < len(lines); j++ {
			if IsHeadingLine(lines[j]) {
				break
			}
			body = append(body, lines[j])
		}
		return strings.TrimSpace(strings.Join(body, "\n"))
	}
	return ""
}

// matchesHeading reports whether the line is exactly one of the heading
// names, compared case-insensitively and ignoring a trailing colon.
func matchesHeading(line string, names []string) bool {
	t := strings.ToLower(strings.TrimSpace(line))
	t = strings.TrimSuffix(t, ":")
	if t == "" {
		return false
	}
	for _, name := range names {
		if t == strings.ToLower(strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// IsHeadingLine reports whether a line looks like the start of a new section:
// a short line beginning with an uppercase letter and ending with a colon,
// containing only letters, spaces, slashes and ampersands before the colon.
func IsHeadingLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || len(t) > maxHeadingLength || !strings.HasSuffix(t, ":") {
		return false
	}

	body := strings.TrimSuffix(t, ":")
	if body == "" {
		return false
	}

	runes := []rune(body)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && r != ' ' && r != '/' && r != '&' {
			return false
		}
	}
	return true
}
