// Package fields provides field-level coercion and normalization for
// candidate records. Every function is total: malformed or wrongly-typed
// input degrades to the documented default ("" / 0 / empty list) and never
// panics or returns an error. Inputs are typed `any` because the ingestion
// boundary hands us loosely-typed data from profile sources.
package fields

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	// MinExperienceYears and MaxExperienceYears bound the derived tenure field.
	MinExperienceYears = 0
	MaxExperienceYears = 60

	// MinPhoneDigits is the minimum digit count for a phone number to be kept.
	MinPhoneDigits = 7
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// stopWords are tokens dropped from skill lists: connectives and resume
// boilerplate that the regex miners tend to pick up.
var stopWords = map[string]struct{}{
	"and": {}, "or": {}, "the": {}, "a": {}, "an": {},
	"service": {}, "university": {}, "hands": {}, "years": {},
	"experience": {}, "skill": {}, "skills": {},
}

// preserveUpper are acronyms kept fully uppercase instead of title-cased.
var preserveUpper = map[string]struct{}{
	"AWS": {}, "SQL": {}, "NLP": {}, "API": {}, "CI/CD": {}, "HTML": {}, "CSS": {},
}

var signedIntRe = regexp.MustCompile(`-?\d+`)

// ValidateEmail returns raw trimmed if it is a syntactically valid address,
// otherwise "". No deliverability or MX checks.
func ValidateEmail(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if emailRe.MatchString(s) {
		return s
	}
	return ""
}

// NormalizePhone strips a raw phone value down to digits and an optional
// leading '+'. Values with fewer than MinPhoneDigits digits are rejected
// entirely rather than stored partially.
func NormalizePhone(raw any) string {
	s := coerceString(raw)
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	stripped := b.String()

	// A single plus is only meaningful as an international prefix.
	if strings.Count(stripped, "+") > 1 || (strings.Contains(stripped, "+") && !strings.HasPrefix(stripped, "+")) {
		stripped = strings.ReplaceAll(stripped, "+", "")
	}

	digits := len(strings.TrimPrefix(stripped, "+"))
	if digits < MinPhoneDigits {
		return ""
	}
	return stripped
}

// NormalizeSkills cleans a skill pool into an ordered, deduplicated list.
// Accepts a delimited string, []string, or []any; anything else yields an
// empty list. Tokens are trimmed, stop words and purely numeric tokens are
// dropped, casing is title-cased except for preserved acronyms, and
// duplicates are removed case-insensitively keeping the first occurrence.
func NormalizeSkills(raw any) []string {
	tokens := coerceTokens(raw)

	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || isNumeric(tok) {
			continue
		}
		if _, stop := stopWords[strings.ToLower(tok)]; stop {
			continue
		}

		normalized := canonicalSkillCase(tok)
		key := strings.ToLower(normalized)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// ClampExperienceYears coerces raw into an integer year count clamped to
// [MinExperienceYears, MaxExperienceYears].
func ClampExperienceYears(raw any) int {
	return ClampExperienceYearsBetween(raw, MinExperienceYears, MaxExperienceYears)
}

// ClampExperienceYearsBetween is ClampExperienceYears with explicit bounds.
// Strings contribute their first signed integer substring; unparseable
// values count as zero before clamping.
func ClampExperienceYearsBetween(raw any, min, max int) int {
	years := 0

	switch v := raw.(type) {
	case int:
		years = v
	case int32:
		years = int(v)
	case int64:
		years = int(v)
	case float32:
		years = int(v)
	case float64:
		years = int(v)
	case string:
		if m := signedIntRe.FindString(v); m != "" {
			fmt.Sscanf(m, "%d", &years)
		}
	}

	if years < min {
		return min
	}
	if years > max {
		return max
	}
	return years
}

// coerceString renders scalar input as a string; non-scalar input is "".
func coerceString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	case float32:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// coerceTokens turns the accepted skill input shapes into a flat token list.
func coerceTokens(raw any) []string {
	switch v := raw.(type) {
	case string:
		return splitSkillString(v)
	case []string:
		return v
	case []any:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tokens = append(tokens, s)
			}
		}
		return tokens
	default:
		return nil
	}
}

func splitSkillString(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// canonicalSkillCase title-cases a token unless its uppercase form is a
// preserved acronym, in which case the acronym form wins.
func canonicalSkillCase(tok string) string {
	upper := strings.ToUpper(tok)
	if _, ok := preserveUpper[upper]; ok {
		return upper
	}
	return titleCase(tok)
}

// titleCase capitalizes the first letter of each space-separated word and
// lowercases the rest ("machine learning" -> "Machine Learning").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		for j, r := range runes {
			if j == 0 {
				runes[j] = unicode.ToUpper(r)
			} else {
				runes[j] = unicode.ToLower(r)
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
