// Package extract turns raw resume/profile text into structured candidate
// fields. Extraction is best-effort and rule-based: every function returns
// empty results on a miss and never returns an error for valid string input.
package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// headerLineLimit bounds how far down the document name extraction looks.
const headerLineLimit = 5

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

// phoneRes is an ordered cascade: the NANP-shaped pattern first, then a
// generic international grouping. First match wins.
var phoneRes = []*regexp.Regexp{
	regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
	regexp.MustCompile(`(\+?[0-9]{1,3}[-.\s]?)?\(?([0-9]{2,4})\)?[-.\s]?([0-9]{2,4})[-.\s]?([0-9]{2,4})`),
}

var linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/(?:in|pub|company)/[A-Za-z0-9\-_%.]+/?`)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// headerKeywords disqualify a header line from being a candidate name.
var headerKeywords = []string{"email", "phone", "linkedin", "github", "portfolio", "resume", "cv"}

// Email returns the first email-shaped substring in text, or "".
func Email(text string) string {
	return emailRe.FindString(text)
}

// Phone returns the concatenated capture groups of the first phone pattern
// that matches, or "". The raw value still carries separators from the
// optional groups; fields.NormalizePhone strips it down later.
func Phone(text string) string {
	for _, re := range phoneRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return strings.Join(m[1:], "")
	}
	return ""
}

// LinkedInURL returns the first LinkedIn profile URL in text normalized to an
// absolute https:// form, or "".
func LinkedInURL(text string) string {
	m := linkedinRe.FindString(text)
	if m == "" {
		return ""
	}
	m = strings.TrimRight(m, "/.")
	m = schemeRe.ReplaceAllString(m, "")
	// Lowercase the host; the profile slug keeps its casing.
	if idx := strings.Index(m, "/"); idx > 0 {
		m = strings.ToLower(m[:idx]) + m[idx:]
	}
	return "https://" + m
}

// Name scans the first few lines for one that looks like a personal name:
// free of contact-header keywords and made of 2-4 words each starting with
// an uppercase letter. Single-word and lowercase-styled names are not
// recognized; undercounting here is a documented limitation of the heuristic.
func Name(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > headerLineLimit {
		lines = lines[:headerLineLimit]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || containsHeaderKeyword(line) {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if allTitleCased(words) {
			return line
		}
	}
	return ""
}

func containsHeaderKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func allTitleCased(words []string) bool {
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
