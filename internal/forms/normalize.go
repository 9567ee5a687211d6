package forms

import (
	"strings"

	"github.com/jonathan/candidate-intake/internal/types"
)

// normalizeFilledForm forces model output into the template's section and
// field structure. Section and field names match case-insensitively, scalar
// values pass through, and anything missing or non-scalar is backfilled from
// the record mapping or the field default. Extra scalar fields the model
// volunteered are kept without overwriting expected ones.
func normalizeFilledForm(raw map[string]any, template FormTemplate, record types.CandidateRecord) map[string]map[string]any {
	// Unwrap a {"sections": {...}} envelope if the model returned one.
	if inner, ok := raw["sections"].(map[string]any); ok {
		raw = inner
	}

	normalized := make(map[string]map[string]any, len(template.Sections))
	for sectionName, fields := range template.Sections {
		rawSection := lookupSection(raw, sectionName)

		section := make(map[string]any, len(fields))
		for fieldKey, config := range fields {
			value, found := lookupField(rawSection, fieldKey)
			if found && isScalar(value) {
				section[fieldKey] = value
				continue
			}
			if mapped := mapRecordField(fieldKey, record); mapped != "" {
				section[fieldKey] = mapped
			} else {
				section[fieldKey] = config.DefaultValue
			}
		}

		for extraKey, extraValue := range rawSection {
			if _, exists := section[extraKey]; !exists && isScalar(extraValue) {
				section[extraKey] = extraValue
			}
		}

		normalized[sectionName] = section
	}
	return normalized
}

func lookupSection(raw map[string]any, sectionName string) map[string]any {
	for key, value := range raw {
		if !strings.EqualFold(key, sectionName) {
			continue
		}
		if section, ok := value.(map[string]any); ok {
			return section
		}
		// A scalar where a section was expected still carries content.
		if isScalar(value) {
			return map[string]any{"text": value}
		}
	}
	return map[string]any{}
}

func lookupField(section map[string]any, fieldKey string) (any, bool) {
	for key, value := range section {
		if strings.EqualFold(key, fieldKey) {
			return value, true
		}
	}
	return nil, false
}

func isScalar(value any) bool {
	switch value.(type) {
	case string, float64, int, bool:
		return true
	default:
		return false
	}
}
