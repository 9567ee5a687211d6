package llm

import "strings"

// CleanJSONBlock recovers the JSON payload from a model response. Models wrap
// JSON in markdown fences and surround it with conversational prose even when
// told not to; this strips the fences, drops any preamble before the first
// object or array, and cuts trailing text after its balanced close. Input
// without a JSON payload is returned trimmed but otherwise untouched.
func CleanJSONBlock(text string) string {
	text = stripFences(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	open := text[start]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}
	if payload := extractBalanced(text[start:], open, closer); payload != "" {
		return payload
	}
	return text
}

// stripFences removes a leading ``` fence (with optional language tag) and
// its closing fence.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")

	// The language tag sits on the fence line. It is short, has no spaces,
	// and is not itself JSON.
	if idx := strings.Index(text, "\n"); idx >= 0 {
		tag := text[:idx]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			text = text[idx+1:]
		}
	} else {
		text = strings.TrimPrefix(text, "json")
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// ExtractJSONObject returns the first balanced JSON object in text, or ""
// when text does not start with one. Trailing prose after the closing brace
// is dropped. Braces inside string literals do not affect the balance.
func ExtractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// ExtractJSONArray returns the first balanced JSON array in text, or ""
// when text does not start with one.
func ExtractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close byte) string {
	text = strings.TrimSpace(text)
	if text == "" || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// String contents never change the balance.
		case ch == open:
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
