package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/candidate-intake/internal/fields"
	"github.com/jonathan/candidate-intake/internal/sections"
	"github.com/jonathan/candidate-intake/internal/types"
)

// experienceHeadings are the section-name synonyms tried in order.
var experienceHeadings = []string{
	"experience", "work history", "employment", "career",
	"professional experience", "work experience",
}

// sectionHeaderWords inside an extracted title mark a false positive.
var sectionHeaderWords = []string{"experience", "work", "professional", "employment"}

// minFieldLength is the shortest plausible title or company name.
const minFieldLength = 3

// maxFallbackCompanies caps how many company-suffix hits the loose whole
// document fallback considers.
const maxFallbackCompanies = 3

// fallbackWindow is the character radius searched around a company token for
// a job title in the fallback pass.
const fallbackWindow = 200

// experienceMatcher is one structural layout pattern. Build maps a regex
// match onto an entry; matchers run in order and every match of every
// matcher contributes, with false positives filtered afterwards.
type experienceMatcher struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) types.ExperienceEntry
}

var experienceMatchers = []experienceMatcher{
	{
		name: "pipe",
		re:   regexp.MustCompile(`(?m)^[ \t]*([^|\n]+?)[ \t]*\|[ \t]*([^|\n]+?)[ \t]*\|[ \t]*([^|\n]+?)[ \t]*$`),
		build: func(m []string) types.ExperienceEntry {
			return types.ExperienceEntry{Title: m[1], Company: m[2], DateRange: m[3]}
		},
	},
	{
		name: "at",
		re:   regexp.MustCompile(`(?m)^[ \t]*(.+?)[ \t]+at[ \t]+(.+?)[ \t]*\(([^)]+)\)[ \t]*$`),
		build: func(m []string) types.ExperienceEntry {
			return types.ExperienceEntry{Title: m[1], Company: m[2], DateRange: m[3]}
		},
	},
	{
		name: "dash",
		re:   regexp.MustCompile(`(?m)^[ \t]*(.+?)[ \t]*[-–][ \t]*(.+?)[ \t]*\(([^)]+)\)[ \t]*$`),
		build: func(m []string) types.ExperienceEntry {
			return types.ExperienceEntry{Company: m[1], Title: m[2], DateRange: m[3]}
		},
	},
	{
		name: "comma",
		re:   regexp.MustCompile(`(?m)^[ \t]*([^,\n]+?),[ \t]*([^,\n]+?),[ \t]*([^,\n]*\d{4}[^,\n]*?)[ \t]*$`),
		build: func(m []string) types.ExperienceEntry {
			return types.ExperienceEntry{Title: m[1], Company: m[2], DateRange: m[3]}
		},
	},
	{
		name: "year-range",
		re:   regexp.MustCompile(`(?mi)^[ \t]*(.+?)[ \t]*[-–][ \t]*(.+?)[ \t]+(\d{4})[ \t]*[-–][ \t]*(\d{4}|present|current)[ \t]*$`),
		build: func(m []string) types.ExperienceEntry {
			return types.ExperienceEntry{
				Company:   m[1],
				Title:     m[2],
				StartDate: m[3],
				EndDate:   m[4],
				DateRange: m[3] + " - " + m[4],
			}
		},
	},
	{
		name: "two-line",
		re:   regexp.MustCompile(`(?m)^[ \t]*((?:Senior |Staff |Lead |Principal |Junior )?(?:Software |Data |Systems )?(?:Engineer|Developer|Analyst|Manager|Consultant|Specialist|Scientist|Architect)[^,|()\n]*)\n[ \t]*([A-Z][A-Za-z0-9 .,&]{2,60})[ \t]*$`),
		build: func(m []string) types.ExperienceEntry {
			return types.ExperienceEntry{Title: m[1], Company: m[2]}
		},
	},
}

// companySuffixRe matches a short run of capitalized words ending in a
// corporate suffix ("TechCorp Inc.", "Acme Data Systems").
var companySuffixRe = regexp.MustCompile(`\b((?:[A-Z][A-Za-z&.\-]+[ \t]+){1,4}(?:Inc|Corp|Ltd|LLC|Company|Technologies|Systems|Solutions)\b\.?)`)

var fallbackTitleRe = regexp.MustCompile(`\b((?:Senior[ \t]+|Software[ \t]+)?(?:Engineer|Developer|Analyst|Manager|Consultant|Specialist))\b`)

// Experience extracts employment entries in document order. It locates the
// experience section, runs the structural matcher battery over its body, and
// falls back to a loose company-suffix scan over the whole document when the
// battery finds nothing. The worst case is an empty list, never an error.
func Experience(text string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	if strings.TrimSpace(text) == "" {
		return entries
	}

	body := sections.Find(text, experienceHeadings)
	if body != "" {
		for _, m := range experienceMatchers {
			for _, match := range m.re.FindAllStringSubmatch(body, -1) {
				entry := m.build(match)
				entry.Title = strings.TrimSpace(entry.Title)
				entry.Company = strings.TrimSpace(entry.Company)
				entry.DateRange = strings.TrimSpace(entry.DateRange)
				if isPlausibleEntry(entry) {
					entries = append(entries, entry)
				}
			}
		}
	}

	if len(entries) == 0 {
		entries = append(entries, fallbackExperience(text)...)
	}
	return entries
}

// isPlausibleEntry filters structural false positives: too-short fields and
// titles that are really section headers.
func isPlausibleEntry(e types.ExperienceEntry) bool {
	if len(e.Title) < minFieldLength || len(e.Company) < minFieldLength {
		return false
	}
	lower := strings.ToLower(e.Title)
	for _, w := range sectionHeaderWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

// fallbackExperience scans the whole document for company-like tokens and
// searches a window around each for a known job title.
func fallbackExperience(text string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry

	// The cap bounds how many company tokens are examined, not how many
	// entries come out: a titleless company still uses up a slot.
	locs := companySuffixRe.FindAllStringSubmatchIndex(text, maxFallbackCompanies)
	for _, loc := range locs {
		company := strings.TrimSpace(text[loc[2]:loc[3]])
		if len(company) < minFieldLength {
			continue
		}

		start := loc[2] - fallbackWindow
		if start < 0 {
			start = 0
		}
		end := loc[3] + fallbackWindow
		if end > len(text) {
			end = len(text)
		}

		title := strings.TrimSpace(fallbackTitleRe.FindString(text[start:end]))
		if title == "" {
			continue
		}
		entries = append(entries, types.ExperienceEntry{Title: title, Company: company})
	}
	return entries
}

// --- tenure arithmetic ---

var monthRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*`)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var rangeSplitRe = regexp.MustCompile(`\s*[-–—]\s*|\s+to\s+`)

// yearMonth is a parsed point in a date range.
type yearMonth struct {
	year  int
	month int
}

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// parseDatePoint parses "Mar 2021", "2021", "March 2021" into a year/month
// pair. Month defaults to January when only a year is present.
func parseDatePoint(fragment string) (yearMonth, bool) {
	y := yearRe.FindString(fragment)
	if y == "" {
		return yearMonth{}, false
	}
	ym := yearMonth{month: 1}
	for _, r := range y {
		ym.year = ym.year*10 + int(r-'0')
	}
	if m := monthRe.FindString(fragment); m != "" {
		ym.month = monthIndex[strings.ToLower(m[:3])]
	}
	return ym, true
}

// entryMonths computes the month span of a single entry against now.
// A missing or unparseable end ("Present", "Current", "") counts as now.
// Entries without a parseable start contribute nothing.
func entryMonths(e types.ExperienceEntry, now time.Time) int {
	startFrag, endFrag := e.StartDate, e.EndDate
	if startFrag == "" && endFrag == "" {
		parts := rangeSplitRe.Split(e.DateRange, 2)
		startFrag = parts[0]
		if len(parts) > 1 {
			endFrag = parts[1]
		}
	}

	start, ok := parseDatePoint(startFrag)
	if !ok {
		return 0
	}

	end, ok := parseDatePoint(endFrag)
	if !ok {
		end = yearMonth{year: now.Year(), month: int(now.Month())}
	}

	months := (end.year-start.year)*12 + (end.month - start.month)
	if months <= 0 {
		return 0
	}
	return months
}

// ExperienceYears sums tenure months across entries, converts to whole years
// and clamps into the valid range. The clock is injected so "Present" can be
// pinned in tests.
func ExperienceYears(entries []types.ExperienceEntry, now time.Time) int {
	months := 0
	for _, e := range entries {
		months += entryMonths(e, now)
	}
	return fields.ClampExperienceYears(months / 12)
}
