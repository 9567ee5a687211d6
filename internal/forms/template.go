// Package forms generates filled HR forms from candidate records. Filling is
// LLM-assisted when a client is available and falls back to a deterministic
// field mapping when it is not, so the pipeline always produces a form.
package forms

import "sort"

// FieldConfig describes a single form field.
type FieldConfig struct {
	Label        string   `json:"label"`
	Type         string   `json:"type"` // text, email, tel, url, number, date, textarea, select
	Required     bool     `json:"required"`
	Options      []string `json:"options,omitempty"`
	DefaultValue string   `json:"default_value,omitempty"`
}

// Fields maps field keys to their configuration within a section.
type Fields map[string]FieldConfig

// FormTemplate defines the sections and fields of a form to fill.
type FormTemplate struct {
	FormType string            `json:"form_type"`
	Sections map[string]Fields `json:"sections"`
}

// SectionNames returns the template's section names in sorted order, for
// deterministic iteration.
func (t FormTemplate) SectionNames() []string {
	names := make([]string, 0, len(t.Sections))
	for name := range t.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldKeys returns a section's field keys in sorted order.
func (f Fields) FieldKeys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// StandardHRForm is the general-purpose candidate intake form.
func StandardHRForm() FormTemplate {
	return FormTemplate{
		FormType: "standard_hr_form",
		Sections: map[string]Fields{
			"personal_information": {
				"full_name":    {Label: "Full Name", Type: "text", Required: true},
				"email":        {Label: "Email Address", Type: "email", Required: true},
				"phone":        {Label: "Phone Number", Type: "tel", Required: true},
				"location":     {Label: "Location", Type: "text"},
				"linkedin_url": {Label: "LinkedIn Profile", Type: "url"},
			},
			"professional_summary": {
				"summary":          {Label: "Professional Summary", Type: "textarea", Required: true},
				"current_position": {Label: "Current Position", Type: "text", Required: true},
				"current_company":  {Label: "Current Company", Type: "text", Required: true},
				"experience_years": {Label: "Years of Experience", Type: "number", Required: true},
			},
			"skills_assessment": {
				"technical_skills": {Label: "Technical Skills", Type: "textarea", Required: true},
				"soft_skills":      {Label: "Soft Skills", Type: "textarea"},
				"certifications":   {Label: "Certifications", Type: "textarea"},
			},
			"experience_details": {
				"work_experience":  {Label: "Work Experience", Type: "textarea", Required: true},
				"key_achievements": {Label: "Key Achievements", Type: "textarea"},
			},
			"education_background": {
				"education":           {Label: "Education", Type: "textarea", Required: true},
				"additional_training": {Label: "Additional Training/Courses", Type: "textarea"},
			},
			"hr_assessment": {
				"availability":        {Label: "Availability", Type: "text"},
				"salary_expectations": {Label: "Salary Expectations", Type: "text"},
				"notice_period":       {Label: "Notice Period", Type: "text"},
				"additional_notes":    {Label: "Additional Notes", Type: "textarea"},
			},
		},
	}
}

// InterviewAssessmentForm is the interviewer-facing scoring form.
func InterviewAssessmentForm() FormTemplate {
	return FormTemplate{
		FormType: "interview_assessment",
		Sections: map[string]Fields{
			"candidate_overview": {
				"candidate_name":   {Label: "Candidate Name", Type: "text", Required: true},
				"position_applied": {Label: "Position Applied For", Type: "text", Required: true},
				"interview_date":   {Label: "Interview Date", Type: "date", Required: true},
				"interviewer_name": {Label: "Interviewer Name", Type: "text", Required: true},
			},
			"technical_assessment": {
				"technical_skills_rating": {Label: "Technical Skills Rating (1-5)", Type: "number", Required: true},
				"problem_solving_ability": {Label: "Problem Solving Ability (1-5)", Type: "number", Required: true},
				"technical_notes":         {Label: "Technical Assessment Notes", Type: "textarea"},
			},
			"communication_assessment": {
				"communication_skills": {Label: "Communication Skills (1-5)", Type: "number", Required: true},
				"presentation_ability": {Label: "Presentation Ability (1-5)", Type: "number", Required: true},
				"communication_notes":  {Label: "Communication Assessment Notes", Type: "textarea"},
			},
			"cultural_fit": {
				"team_work":         {Label: "Team Work (1-5)", Type: "number", Required: true},
				"adaptability":      {Label: "Adaptability (1-5)", Type: "number", Required: true},
				"cultural_fit_notes": {Label: "Cultural Fit Notes", Type: "textarea"},
			},
			"overall_assessment": {
				"overall_rating": {Label: "Overall Rating (1-5)", Type: "number", Required: true},
				"recommendation": {
					Label:    "Recommendation",
					Type:     "select",
					Required: true,
					Options:  []string{"Strong Hire", "Hire", "No Hire", "Strong No Hire"},
				},
				"strengths":             {Label: "Key Strengths", Type: "textarea", Required: true},
				"areas_for_improvement": {Label: "Areas for Improvement", Type: "textarea"},
				"final_notes":           {Label: "Final Notes", Type: "textarea"},
			},
		},
	}
}

// TemplateByName resolves a form type name to its template.
func TemplateByName(name string) (FormTemplate, bool) {
	switch name {
	case "standard_hr_form", "standard", "hr":
		return StandardHRForm(), true
	case "interview_assessment", "interview":
		return InterviewAssessmentForm(), true
	default:
		return FormTemplate{}, false
	}
}
