// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/candidate-intake/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecord outputs a human-readable summary of an extracted candidate record.
func (p *Printer) PrintRecord(record *types.CandidateRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", valueOrDash(record.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", valueOrDash(record.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", valueOrDash(record.Phone)))
	if record.CurrentPosition != "" || record.CurrentCompany != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s", valueOrDash(record.CurrentPosition)))
		if record.CurrentCompany != "" {
			sb.WriteString(fmt.Sprintf(" @ %s", record.CurrentCompany))
		}
		sb.WriteString("\n")
	}
	if record.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Years:    %d\n", record.ExperienceYears))
	}
	if record.LinkedInURL != "" {
		sb.WriteString(fmt.Sprintf("Profile:  %s\n", record.LinkedInURL))
	}
	sb.WriteString("\n")

	if len(record.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(record.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.Skills[i]))
		}
		if len(record.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(record.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(record.Experience), 3)
		for i := 0; i < count; i++ {
			entry := record.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", valueOrDash(entry.Title)))
			if entry.Company != "" {
				sb.WriteString(fmt.Sprintf(" at %s", entry.Company))
			}
			if entry.DateRange != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", entry.DateRange))
			}
			sb.WriteString("\n")
		}
		if len(record.Experience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Experience)-3))
		}
		sb.WriteString("\n")
	}

	if len(record.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(record.Education), 3)
		for i := 0; i < count; i++ {
			entry := record.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s", valueOrDash(entry.Degree)))
			if entry.Institution != "" {
				sb.WriteString(fmt.Sprintf(", %s", entry.Institution))
			}
			if entry.Year != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", entry.Year))
			}
			sb.WriteString("\n")
		}
		if len(record.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Education)-3))
		}
	}

	p.printBox("CANDIDATE RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs a summary of scraped profile data keyed the way the
// scraper returns it (name, title, company, skills, experience).
func (p *Printer) PrintProfile(profile map[string]any) {
	if len(profile) == 0 {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", valueOrDash(stringField(profile, "name"))))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", valueOrDash(stringField(profile, "title"))))
	if company := stringField(profile, "company"); company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", company))
	}
	if location := stringField(profile, "location"); location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", location))
	}

	if skills, ok := profile["skills"].([]string); ok && len(skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
		}
		if len(skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
		}
	}

	if experience, ok := profile["experience"].([]map[string]string); ok && len(experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(experience), 3)
		for i := 0; i < count; i++ {
			entry := experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", valueOrDash(entry["title"])))
			if entry["company"] != "" {
				sb.WriteString(fmt.Sprintf(" at %s", entry["company"]))
			}
			sb.WriteString("\n")
		}
		if len(experience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(experience)-3))
		}
	}

	p.printBox("SCRAPED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintForm outputs a filled form section by section. Sections and fields
// print in sorted order so output is stable.
func (p *Printer) PrintForm(formType string, sections map[string]map[string]any) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Form type: %s\n", formType))

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("\n%s:\n", name))

		fields := sections[name]
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := fmt.Sprintf("%v", fields[key])
			if len(value) > 40 {
				value = value[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", key, value))
		}
	}

	p.printBox("FILLED FORM", strings.TrimSuffix(sb.String(), "\n"))
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
