// Package merge reconciles two partial candidate records into one under a
// source-priority policy. The merger never mutates its inputs; it builds a
// brand-new record and runs the standard field normalization pass on it.
package merge

import (
	"strings"

	"github.com/jonathan/candidate-intake/internal/fields"
	"github.com/jonathan/candidate-intake/internal/types"
)

// Source identifies which of the two input records supplies a field.
type Source int

const (
	// Primary is the more-authoritative source for identity and
	// professional fields (typically the profile page).
	Primary Source = iota
	// Secondary is the other source (typically the parsed document).
	Secondary
)

// Policy parameterizes the per-field source preferences. The defaults encode
// the long-standing heuristic that documents are more reliable than profile
// pages for contact details; it is a heuristic, not an invariant, so callers
// may flip it.
type Policy struct {
	// ContactSource supplies email and phone. Its value is taken even when
	// empty unless FillGaps is set.
	ContactSource Source
	// ProfileSource denotes which record represents the profile origin
	// and therefore supplies the LinkedIn URL.
	ProfileSource Source
	// FillGaps takes email, phone, the LinkedIn URL, and the year count
	// from the other record when the designated source lacks them. Off by
	// default: the designated source's empty value stays empty.
	FillGaps bool
	// Phone is the normalization strategy for the finishing pass.
	Phone fields.PhoneStrategy
}

// DefaultPolicy returns the standard policy: contact fields from the
// secondary (document) source, profile URL from the primary.
func DefaultPolicy() Policy {
	return Policy{
		ContactSource: Secondary,
		ProfileSource: Primary,
	}
}

// Merge reconciles primary and secondary under the default policy.
func Merge(primary, secondary types.CandidateRecord) types.CandidateRecord {
	return MergeWithPolicy(primary, secondary, DefaultPolicy())
}

// MergeWithPolicy reconciles primary and secondary field by field:
//
//   - identity/professional fields (name, location, position, company,
//     summary): primary's value when non-empty, else secondary's;
//   - email and phone: policy.ContactSource's values, even when empty;
//   - linkedin_url: policy.ProfileSource's value, even when empty;
//   - skills: case-insensitive union preserving encounter order, primary's
//     entries first (the ordering is pinned by tests);
//   - experience and education: concatenated, primary first, no
//     deduplication and no chronological sort;
//   - experience_years: always the secondary (document) figure.
//
// policy.FillGaps relaxes the "even when empty" fields to fall back to the
// other record.
func MergeWithPolicy(primary, secondary types.CandidateRecord, policy Policy) types.CandidateRecord {
	out := types.NewCandidateRecord()

	out.Name = firstNonEmpty(primary.Name, secondary.Name)
	out.Location = firstNonEmpty(primary.Location, secondary.Location)
	out.CurrentPosition = firstNonEmpty(primary.CurrentPosition, secondary.CurrentPosition)
	out.CurrentCompany = firstNonEmpty(primary.CurrentCompany, secondary.CurrentCompany)
	out.Summary = firstNonEmpty(primary.Summary, secondary.Summary)

	contact := pick(primary, secondary, policy.ContactSource)
	out.Email = contact.Email
	out.Phone = contact.Phone

	profile := pick(primary, secondary, policy.ProfileSource)
	out.LinkedInURL = profile.LinkedInURL

	out.Skills = unionSkills(primary.Skills, secondary.Skills)

	out.Experience = append(out.Experience, primary.Experience...)
	out.Experience = append(out.Experience, secondary.Experience...)
	out.Education = append(out.Education, primary.Education...)
	out.Education = append(out.Education, secondary.Education...)

	out.ExperienceYears = secondary.ExperienceYears

	if policy.FillGaps {
		contactOther := pick(primary, secondary, opposite(policy.ContactSource))
		out.Email = firstNonEmpty(out.Email, contactOther.Email)
		out.Phone = firstNonEmpty(out.Phone, contactOther.Phone)

		profileOther := pick(primary, secondary, opposite(policy.ProfileSource))
		out.LinkedInURL = firstNonEmpty(out.LinkedInURL, profileOther.LinkedInURL)

		if out.ExperienceYears == 0 {
			out.ExperienceYears = primary.ExperienceYears
		}
	}

	return fields.NormalizeRecord(out, policy.Phone)
}

// unionSkills merges two skill lists, deduplicating case-insensitively and
// keeping the first occurrence in a-then-b order.
func unionSkills(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func pick(primary, secondary types.CandidateRecord, s Source) types.CandidateRecord {
	if s == Primary {
		return primary
	}
	return secondary
}

func opposite(s Source) Source {
	if s == Primary {
		return Secondary
	}
	return Primary
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
