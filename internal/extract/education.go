package extract

import (
	"regexp"
	"strings"

	"github.com/jonathan/candidate-intake/internal/sections"
	"github.com/jonathan/candidate-intake/internal/types"
)

// educationHeadings are the section-name synonyms tried in order.
var educationHeadings = []string{
	"education", "academic", "qualifications",
	"academic background", "educational background",
}

// educationHeaderWords inside a degree or institution mark a false positive.
var educationHeaderWords = []string{"education", "academic", "qualification"}

// maxFallbackEducation caps the whole-document degree-keyword fallback.
const maxFallbackEducation = 2

// educationMatcher is one structural layout pattern for education entries.
type educationMatcher struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) types.EducationEntry
}

var educationMatchers = []educationMatcher{
	{
		name: "degree-from",
		re:   regexp.MustCompile(`(?mi)^[ \t]*(.+?)[ \t]+from[ \t]+(.+?)[ \t]*\((\d{4})\)[ \t]*$`),
		build: func(m []string) types.EducationEntry {
			return types.EducationEntry{Degree: m[1], Institution: m[2], Year: m[3]}
		},
	},
	{
		name: "institution-dash",
		re:   regexp.MustCompile(`(?m)^[ \t]*(.+?)[ \t]*[-–][ \t]*(.+?)[ \t]+(\d{4})[ \t]*$`),
		build: func(m []string) types.EducationEntry {
			return types.EducationEntry{Institution: m[1], Degree: m[2], Year: m[3]}
		},
	},
	{
		name: "comma",
		re:   regexp.MustCompile(`(?m)^[ \t]*([^,\n]+?),[ \t]*([^,\n]+?),[ \t]*(\d{4})[ \t]*$`),
		build: func(m []string) types.EducationEntry {
			return types.EducationEntry{Degree: m[1], Institution: m[2], Year: m[3]}
		},
	},
	{
		name: "pipe",
		re:   regexp.MustCompile(`(?m)^[ \t]*([^|\n]+?)[ \t]*\|[ \t]*([^|\n]+?)[ \t]*\|[ \t]*(\d{4})[ \t]*$`),
		build: func(m []string) types.EducationEntry {
			return types.EducationEntry{Degree: m[1], Institution: m[2], Year: m[3]}
		},
	},
	{
		name: "institution-year-dash",
		re:   regexp.MustCompile(`(?m)^[ \t]*(.+?)[ \t]*\((\d{4})\)[ \t]*[-–][ \t]*(.+?)[ \t]*$`),
		build: func(m []string) types.EducationEntry {
			return types.EducationEntry{Institution: m[1], Year: m[2], Degree: m[3]}
		},
	},
	{
		name: "keyword-line",
		re:   regexp.MustCompile(`(?m)^[ \t]*((?:Bachelor|Master|Doctor|Associate|B\.?Sc?\.?|M\.?Sc?\.?|B\.?A\.?|M\.?A\.?|Ph\.?D\.?|MBA)[^,|\n]*?)[ \t]+at[ \t]+(.+?)[ \t]*$`),
		build: func(m []string) types.EducationEntry {
			return types.EducationEntry{Degree: m[1], Institution: m[2]}
		},
	},
}

var degreeKeywordRe = regexp.MustCompile(`(?i)\b(Bachelor(?:'s)?(?:[ \t]+of[ \t]+[A-Za-z]+)?|Master(?:'s)?(?:[ \t]+of[ \t]+[A-Za-z]+)?|Ph\.?D\.?|MBA|B\.?Sc?\.?|M\.?Sc?\.?|B\.?A\.?|M\.?A\.?)\b`)

// institutionRe matches a short run of capitalized words ending in an
// institution keyword, optionally with an "of <Place>" tail.
var institutionRe = regexp.MustCompile(`\b((?:[A-Z][A-Za-z.&\-]+[ \t]+){0,3}(?:University|College|Institute|School)(?:[ \t]+of[ \t]+[A-Z][A-Za-z]+)?)`)

// Education extracts degree entries in document order. Mirrors Experience:
// section location, ordered matcher battery, then a whole-document degree
// keyword fallback capped at two entries.
func Education(text string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	if strings.TrimSpace(text) == "" {
		return entries
	}

	body := sections.Find(text, educationHeadings)
	if body != "" {
		for _, m := range educationMatchers {
			for _, match := range m.re.FindAllStringSubmatch(body, -1) {
				entry := m.build(match)
				entry.Degree = strings.TrimSpace(entry.Degree)
				entry.Institution = strings.TrimSpace(entry.Institution)
				entry.Year = strings.TrimSpace(entry.Year)
				if isPlausibleEducation(entry) {
					entries = append(entries, entry)
				}
			}
		}
	}

	if len(entries) == 0 {
		entries = append(entries, fallbackEducation(text)...)
	}
	return entries
}

func isPlausibleEducation(e types.EducationEntry) bool {
	if len(e.Degree) < minFieldLength || len(e.Institution) < minFieldLength {
		return false
	}
	degree := strings.ToLower(e.Degree)
	institution := strings.ToLower(e.Institution)
	for _, w := range educationHeaderWords {
		if strings.Contains(degree, w) || strings.Contains(institution, w) {
			return false
		}
	}
	return true
}

// fallbackEducation pairs degree keywords with nearby institution tokens
// across the whole document.
func fallbackEducation(text string) []types.EducationEntry {
	var entries []types.EducationEntry

	locs := degreeKeywordRe.FindAllStringIndex(text, -1)
	for _, loc := range locs {
		if len(entries) >= maxFallbackEducation {
			break
		}
		degree := strings.TrimSpace(text[loc[0]:loc[1]])

		start := loc[0] - fallbackWindow
		if start < 0 {
			start = 0
		}
		end := loc[1] + fallbackWindow
		if end > len(text) {
			end = len(text)
		}

		institution := strings.TrimSpace(institutionRe.FindString(text[start:end]))
		if institution == "" {
			continue
		}
		entries = append(entries, types.EducationEntry{Degree: degree, Institution: institution})
	}
	return entries
}
