package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_CodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"name\": \"Jane Doe\"}\n```",
			expected: `{"name": "Jane Doe"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"name\": \"Jane Doe\"}\n```",
			expected: `{"name": "Jane Doe"}`,
		},
		{
			name:     "fence with unexpected language tag",
			input:    "```javascript\n{\"name\": \"Jane Doe\"}\n```",
			expected: `{"name": "Jane Doe"}`,
		},
		{
			name:     "no fence",
			input:    `{"name": "Jane Doe"}`,
			expected: `{"name": "Jane Doe"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_SurroundingProse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before object",
			input:    "Here is the filled form:\n{\"full_name\": \"Jane Doe\"}",
			expected: `{"full_name": "Jane Doe"}`,
		},
		{
			name:     "long conversational preamble",
			input:    "Based on the candidate data provided, I've mapped each field to the form template. Here's the structured output:\n\n{\"full_name\": \"Jane Doe\", \"email\": \"jane@example.com\"}",
			expected: `{"full_name": "Jane Doe", "email": "jane@example.com"}`,
		},
		{
			name:     "preamble before array",
			input:    "The extracted skills are:\n[\"Go\", \"PostgreSQL\"]",
			expected: `["Go", "PostgreSQL"]`,
		},
		{
			name:     "trailing prose",
			input:    "{\"full_name\": \"Jane Doe\"}\n\nLet me know if you need anything else!",
			expected: `{"full_name": "Jane Doe"}`,
		},
		{
			name:     "nested object with prose on both sides",
			input:    "Output:\n{\"contact\": {\"email\": \"jane@example.com\"}} Done.",
			expected: `{"contact": {"email": "jane@example.com"}}`,
		},
		{
			name:     "escaped quotes inside values",
			input:    "Result: {\"summary\": \"Led the \\\"Atlas\\\" migration\"}",
			expected: `{"summary": "Led the \"Atlas\" migration"}`,
		},
		{
			name:     "no JSON at all",
			input:    "I could not produce a result.",
			expected: "I could not produce a result.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "flat object",
			input:    `{"email": "jane@example.com"}`,
			expected: `{"email": "jane@example.com"}`,
		},
		{
			name:     "object with array field",
			input:    `{"skills": ["Go", "SQL"]}`,
			expected: `{"skills": ["Go", "SQL"]}`,
		},
		{
			name:     "trailing text dropped",
			input:    `{"email": "jane@example.com"} plus commentary`,
			expected: `{"email": "jane@example.com"}`,
		},
		{
			name:     "braces inside string values",
			input:    `{"template": "Hello {name}!"}`,
			expected: `{"template": "Hello {name}!"}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "does not start with a brace",
			input:    "not json",
			expected: "",
		},
		{
			name:     "unbalanced object",
			input:    `{"email": "jane@example.com"`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "string array",
			input:    `["Go", "PostgreSQL", "Docker"]`,
			expected: `["Go", "PostgreSQL", "Docker"]`,
		},
		{
			name:     "array of objects",
			input:    `[{"title": "Engineer"}, {"title": "Lead"}]`,
			expected: `[{"title": "Engineer"}, {"title": "Lead"}]`,
		},
		{
			name:     "trailing text dropped",
			input:    `["Go"] extra`,
			expected: `["Go"]`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "does not start with a bracket",
			input:    "not an array",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONArray(tt.input))
		})
	}
}
