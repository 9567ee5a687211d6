package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-intake/internal/types"
)

func profileRecord() types.CandidateRecord {
	rec := types.NewCandidateRecord()
	rec.Name = "Jane Doe"
	rec.Location = "Austin, TX"
	rec.CurrentPosition = "Staff Engineer"
	rec.CurrentCompany = "BigCo"
	rec.Summary = "Platform engineer with a focus on data infrastructure."
	rec.LinkedInURL = "https://linkedin.com/in/janedoe"
	rec.Skills = []string{"Python", "Kubernetes"}
	rec.Experience = []types.ExperienceEntry{
		{Title: "Staff Engineer", Company: "BigCo", DateRange: "2021 - Present"},
	}
	rec.ExperienceYears = 3
	return rec
}

func resumeRecord() types.CandidateRecord {
	rec := types.NewCandidateRecord()
	rec.Name = "J. Doe"
	rec.Email = "jane.doe@example.com"
	rec.Phone = "+15551234567"
	rec.Skills = []string{"python", "Go", "AWS"}
	rec.Experience = []types.ExperienceEntry{
		{Title: "Software Engineer", Company: "Widgets LLC", DateRange: "2016 - 2021"},
	}
	rec.Education = []types.EducationEntry{
		{Degree: "B.S. Computer Science", Institution: "State University", Year: "2016"},
	}
	rec.ExperienceYears = 8
	return rec
}

func TestMergePrefersPrimaryIdentityFields(t *testing.T) {
	merged := Merge(profileRecord(), resumeRecord())

	assert.Equal(t, "Jane Doe", merged.Name)
	assert.Equal(t, "Austin, TX", merged.Location)
	assert.Equal(t, "Staff Engineer", merged.CurrentPosition)
	assert.Equal(t, "BigCo", merged.CurrentCompany)
	assert.Equal(t, "https://linkedin.com/in/janedoe", merged.LinkedInURL)
}

func TestMergeDocumentWinsContactFields(t *testing.T) {
	primary := profileRecord()
	primary.Email = "stale@profile.example"
	primary.Phone = "+19998887777"

	merged := Merge(primary, resumeRecord())

	assert.Equal(t, "jane.doe@example.com", merged.Email)
	assert.Equal(t, "+15551234567", merged.Phone)
	assert.Equal(t, 8, merged.ExperienceYears)
}

func TestMergeEmptyDesignatedSourceStaysEmpty(t *testing.T) {
	// The designated source's value is taken even when empty: a profile
	// record full of contact details contributes nothing to fields owned
	// by the document side, and vice versa for the profile URL.
	primary := profileRecord()
	primary.Email = "profile@example.com"
	primary.Phone = "+15551234567"
	primary.ExperienceYears = 9
	secondary := types.NewCandidateRecord()
	secondary.LinkedInURL = "https://linkedin.com/in/from-document"

	merged := Merge(primary, secondary)

	assert.Empty(t, merged.Email)
	assert.Empty(t, merged.Phone)
	assert.Equal(t, 0, merged.ExperienceYears)
	assert.Equal(t, "https://linkedin.com/in/janedoe", merged.LinkedInURL)
}

func TestMergeWithPolicyFillGaps(t *testing.T) {
	primary := profileRecord()
	primary.Email = "profile@example.com"
	primary.Phone = "+15551234567"
	secondary := types.NewCandidateRecord()

	policy := DefaultPolicy()
	policy.FillGaps = true
	merged := MergeWithPolicy(primary, secondary, policy)

	assert.Equal(t, "profile@example.com", merged.Email)
	assert.Equal(t, "+15551234567", merged.Phone)
	assert.Equal(t, 3, merged.ExperienceYears)

	// A non-empty designated source still wins over the fallback.
	merged = MergeWithPolicy(primary, resumeRecord(), policy)
	assert.Equal(t, "jane.doe@example.com", merged.Email)
	assert.Equal(t, 8, merged.ExperienceYears)
}

func TestMergeSkillsUnionDedupesCaseInsensitively(t *testing.T) {
	merged := Merge(profileRecord(), resumeRecord())

	// Primary's entries come first; "python" from the resume collapses
	// into the profile's "Python".
	assert.Equal(t, []string{"Python", "Kubernetes", "Go", "AWS"}, merged.Skills)
}

func TestMergeConcatenatesExperienceAndEducation(t *testing.T) {
	merged := Merge(profileRecord(), resumeRecord())

	require.Len(t, merged.Experience, 2)
	assert.Equal(t, "BigCo", merged.Experience[0].Company)
	assert.Equal(t, "Widgets LLC", merged.Experience[1].Company)
	require.Len(t, merged.Education, 1)
	assert.Equal(t, "State University", merged.Education[0].Institution)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	primary := profileRecord()
	secondary := resumeRecord()

	_ = Merge(primary, secondary)

	assert.Equal(t, profileRecord(), primary)
	assert.Equal(t, resumeRecord(), secondary)
}

func TestMergeSelfIsStable(t *testing.T) {
	rec := resumeRecord()

	merged := Merge(rec, rec)

	assert.Equal(t, rec.Email, merged.Email)
	assert.Equal(t, rec.Phone, merged.Phone)
	assert.Equal(t, rec.ExperienceYears, merged.ExperienceYears)
	assert.ElementsMatch(t, []string{"Python", "Go", "AWS"}, merged.Skills)
	// Entries duplicate under concatenation, but the set of distinct
	// companies is unchanged.
	for _, e := range merged.Experience {
		assert.Equal(t, "Widgets LLC", e.Company)
	}
}

func TestMergeWithPolicyFlippedContactSource(t *testing.T) {
	primary := profileRecord()
	primary.Email = "jane@profile.example"
	primary.Phone = "+19998887777"

	policy := DefaultPolicy()
	policy.ContactSource = Primary
	merged := MergeWithPolicy(primary, resumeRecord(), policy)

	assert.Equal(t, "jane@profile.example", merged.Email)
	assert.Equal(t, "+19998887777", merged.Phone)
}

func TestMergeExperienceYearsAlwaysFromSecondary(t *testing.T) {
	secondary := resumeRecord()
	secondary.ExperienceYears = 0

	merged := Merge(profileRecord(), secondary)

	assert.Equal(t, 0, merged.ExperienceYears)
}

func TestMergeNormalizesResult(t *testing.T) {
	primary := types.NewCandidateRecord()
	primary.Name = "  Jane Doe  "
	secondary := types.NewCandidateRecord()
	secondary.Email = "not-an-email"
	secondary.Phone = "123"

	merged := Merge(primary, secondary)

	assert.Equal(t, "Jane Doe", merged.Name)
	assert.Empty(t, merged.Email)
	assert.Empty(t, merged.Phone)
	assert.NotNil(t, merged.Skills)
	assert.NotNil(t, merged.Experience)
	assert.NotNil(t, merged.Education)
}
