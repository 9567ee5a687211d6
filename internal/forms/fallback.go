package forms

import (
	"strconv"
	"strings"

	"github.com/jonathan/candidate-intake/internal/types"
)

// fallbackForm fills a template directly from the candidate record, with no
// model involved. Fields with no record mapping get their default value.
func fallbackForm(template FormTemplate, record types.CandidateRecord) map[string]map[string]any {
	filled := make(map[string]map[string]any, len(template.Sections))
	for sectionName, fields := range template.Sections {
		section := make(map[string]any, len(fields))
		for fieldKey, config := range fields {
			if value := mapRecordField(fieldKey, record); value != "" {
				section[fieldKey] = value
			} else {
				section[fieldKey] = config.DefaultValue
			}
		}
		filled[sectionName] = section
	}
	return filled
}

// mapRecordField resolves well-known form field keys to record values.
// Unknown keys map to "".
func mapRecordField(fieldKey string, record types.CandidateRecord) string {
	switch fieldKey {
	case "full_name", "candidate_name":
		return record.Name
	case "email":
		return record.Email
	case "phone":
		return record.Phone
	case "location":
		return record.Location
	case "linkedin_url":
		return record.LinkedInURL
	case "summary":
		return record.Summary
	case "current_position", "position_applied":
		return record.CurrentPosition
	case "current_company":
		return record.CurrentCompany
	case "experience_years":
		if record.ExperienceYears == 0 {
			return ""
		}
		return strconv.Itoa(record.ExperienceYears)
	case "technical_skills":
		return strings.Join(record.Skills, ", ")
	case "work_experience":
		return joinExperience(record.Experience)
	case "education":
		return joinEducation(record.Education)
	default:
		return ""
	}
}

func joinExperience(entries []types.ExperienceEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Title != "" && e.Company != "":
			parts = append(parts, e.Title+" at "+e.Company)
		case e.Title != "":
			parts = append(parts, e.Title)
		case e.Company != "":
			parts = append(parts, e.Company)
		}
	}
	return strings.Join(parts, ", ")
}

func joinEducation(entries []types.EducationEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Degree != "" && e.Institution != "":
			parts = append(parts, e.Degree+" from "+e.Institution)
		case e.Degree != "":
			parts = append(parts, e.Degree)
		case e.Institution != "":
			parts = append(parts, e.Institution)
		}
	}
	return strings.Join(parts, ", ")
}
