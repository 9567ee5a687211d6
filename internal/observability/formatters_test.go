package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/candidate-intake/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.CandidateRecord{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "555-123-4567",
		CurrentPosition: "Staff Engineer",
		CurrentCompany:  "Acme Corp",
		ExperienceYears: 8,
		Skills:          []string{"Go", "Kubernetes", "Python"},
		Experience: []types.ExperienceEntry{
			{Title: "Staff Engineer", Company: "Acme Corp", DateRange: "2020 - Present"},
		},
		Education: []types.EducationEntry{
			{Degree: "BS Computer Science", Institution: "State University", Year: "2016"},
		},
	}

	p.PrintRecord(record)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE RECORD")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "Staff Engineer @ Acme Corp")
	assert.Contains(t, output, "Years:    8")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "BS Computer Science")
}

func TestPrintRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRecord_TruncatesSkillList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.CandidateRecord{
		Name:   "Jane Doe",
		Skills: []string{"Go", "Python", "Java", "Rust", "C++", "Ruby", "Scala"},
	}

	p.PrintRecord(record)
	output := buf.String()

	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Scala")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := map[string]any{
		"name":     "Jane Doe",
		"title":    "Senior Software Engineer",
		"company":  "Tech Corporation",
		"location": "San Francisco, CA",
		"skills":   []string{"Python", "AWS"},
		"experience": []map[string]string{
			{"title": "Senior Software Engineer", "company": "Tech Corporation"},
		},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "SCRAPED PROFILE")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Tech Corporation")
	assert.Contains(t, output, "San Francisco")
	assert.Contains(t, output, "AWS")
	assert.Contains(t, output, "Senior Software Engineer at Tech Corp")
}

func TestPrintProfile_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintForm(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := map[string]map[string]any{
		"personal_information": {
			"full_name": "Jane Doe",
			"email":     "jane@example.com",
		},
		"skills_assessment": {
			"technical_skills": "Python, Go",
		},
	}

	p.PrintForm("standard_hr_form", sections)
	output := buf.String()

	assert.Contains(t, output, "FILLED FORM")
	assert.Contains(t, output, "standard_hr_form")
	assert.Contains(t, output, "full_name: Jane Doe")
	assert.Contains(t, output, "technical_skills: Python, Go")

	// Sections print in sorted order
	assert.Less(t,
		strings.Index(output, "personal_information"),
		strings.Index(output, "skills_assessment"))
}

func TestPrintForm_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintForm("standard_hr_form", nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.CandidateRecord{
		Name:            "A Very Long Candidate Name That Should Be Truncated To Fit The Box",
		CurrentPosition: "Senior Staff Principal Distinguished Engineer Level 99",
	}

	p.PrintRecord(record)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
	assert.Contains(t, output, "...")
}
