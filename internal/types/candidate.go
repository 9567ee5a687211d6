// Package types defines the shared data structures for the candidate intake pipeline.
package types

// ExperienceEntry represents a single employment entry extracted from a
// document or profile. Depending on the extraction path either DateRange or
// the StartDate/EndDate pair is populated; both may be present.
type ExperienceEntry struct {
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	DateRange string `json:"date_range,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// EducationEntry represents a degree/institution/year triple.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

// CandidateRecord is the canonical candidate shape produced by the extraction
// pipeline. Every string field defaults to "" and every slice to non-nil empty
// so downstream consumers can treat records uniformly. A record returned from
// the builder or merger has passed the full field normalization pass:
// Email is valid or empty, Phone is digits with at most one leading '+',
// Skills are deduplicated, and ExperienceYears is within [0, 60].
//
// Storage identifiers live outside the record (see db.Candidate); a record has
// no ID until it is persisted.
type CandidateRecord struct {
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Location        string            `json:"location"`
	CurrentPosition string            `json:"current_position"`
	CurrentCompany  string            `json:"current_company"`
	Summary         string            `json:"summary"`
	LinkedInURL     string            `json:"linkedin_url"`
	Skills          []string          `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	ExperienceYears int               `json:"experience_years"`
}

// NewCandidateRecord returns an empty record with all slices initialized.
func NewCandidateRecord() CandidateRecord {
	return CandidateRecord{
		Skills:     []string{},
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
	}
}

// IsEmpty reports whether nothing at all was extracted into the record.
func (r CandidateRecord) IsEmpty() bool {
	return r.Name == "" && r.Email == "" && r.Phone == "" &&
		r.Location == "" && r.CurrentPosition == "" && r.CurrentCompany == "" &&
		r.Summary == "" && r.LinkedInURL == "" &&
		len(r.Skills) == 0 && len(r.Experience) == 0 && len(r.Education) == 0
}
