package fields

import (
	"strings"

	"github.com/jonathan/candidate-intake/internal/types"
)

// NormalizeRecord applies the full field validation pass to a record and
// returns the normalized copy. This runs as the mandatory finishing step for
// every record leaving the pipeline regardless of its source, so the
// CandidateRecord invariants hold even for profile imports and merges.
func NormalizeRecord(rec types.CandidateRecord, phone PhoneStrategy) types.CandidateRecord {
	if phone == nil {
		phone = DigitCountStrategy{}
	}

	rec.Name = strings.TrimSpace(rec.Name)
	rec.Email = ValidateEmail(rec.Email)
	rec.Phone = phone.Normalize(rec.Phone)
	rec.Location = strings.TrimSpace(rec.Location)
	rec.CurrentPosition = strings.TrimSpace(rec.CurrentPosition)
	rec.CurrentCompany = strings.TrimSpace(rec.CurrentCompany)
	rec.Summary = strings.TrimSpace(rec.Summary)
	rec.LinkedInURL = strings.TrimSpace(rec.LinkedInURL)
	rec.Skills = NormalizeSkills(rec.Skills)
	rec.ExperienceYears = ClampExperienceYears(rec.ExperienceYears)

	if rec.Experience == nil {
		rec.Experience = []types.ExperienceEntry{}
	}
	if rec.Education == nil {
		rec.Education = []types.EducationEntry{}
	}

	return rec
}
