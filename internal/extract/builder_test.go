package extract

import (
	"testing"

	"github.com/jonathan/candidate-intake/internal/tagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const builderSample = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567
linkedin.com/in/jane-doe
Austin, TX

Summary:
Seasoned platform engineer. Builds data pipelines. Mentors junior engineers. Also enjoys hiking.

Experience:
Senior Software Engineer | TechCorp Inc. | 2020 - Present
Software Engineer | Widgets Ltd | 2017 - 2020

Education:
B.S. Computer Science from State University (2016)

Skills:
Python, Go, AWS, Docker, PostgreSQL
`

func testBuilder() *Builder {
	return NewBuilder(WithTagger(tagger.Disabled()), WithClock(fixedNow))
}

func TestBuildRecord_FullDocument(t *testing.T) {
	rec := testBuilder().BuildRecord(builderSample)

	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "jane.doe@example.com", rec.Email)
	assert.Equal(t, "+15551234567", rec.Phone)
	assert.Equal(t, "https://linkedin.com/in/jane-doe", rec.LinkedInURL)
	assert.Equal(t, "Austin, TX", rec.Location)

	assert.Contains(t, rec.Skills, "Python")
	assert.Contains(t, rec.Skills, "AWS")
	assert.Contains(t, rec.Skills, "Docker")

	require.Len(t, rec.Experience, 2)
	assert.Equal(t, "Senior Software Engineer", rec.Experience[0].Title)
	assert.Equal(t, "TechCorp Inc.", rec.Experience[0].Company)

	require.Len(t, rec.Education, 1)
	assert.Equal(t, "State University", rec.Education[0].Institution)

	// 2017-2020 is 36 months, 2020-present is 48 at the fixed clock.
	assert.Equal(t, 7, rec.ExperienceYears)

	assert.Contains(t, rec.Summary, "Seasoned platform engineer")
	// Only the first three sentences are kept.
	assert.NotContains(t, rec.Summary, "hiking")
}

func TestBuildRecord_EmptyText(t *testing.T) {
	rec := testBuilder().BuildRecord("")

	assert.Empty(t, rec.Name)
	assert.Empty(t, rec.Email)
	assert.Empty(t, rec.Phone)
	assert.Empty(t, rec.Location)
	assert.Empty(t, rec.Summary)
	assert.Empty(t, rec.LinkedInURL)
	assert.NotNil(t, rec.Skills)
	assert.Empty(t, rec.Skills)
	assert.Empty(t, rec.Experience)
	assert.Empty(t, rec.Education)
	assert.Zero(t, rec.ExperienceYears)
}

func TestBuildRecord_CurrentPositionCascade(t *testing.T) {
	rec := testBuilder().BuildRecord("Currently: Staff Engineer at BigCo\n")
	assert.Equal(t, "Staff Engineer", rec.CurrentPosition)
	assert.Contains(t, rec.CurrentCompany, "BigCo")
}

func TestBuildRecord_InvariantsAlwaysHold(t *testing.T) {
	inputs := []string{
		"",
		"garbage ~~~ ###",
		"email@ not-valid phone 12",
		builderSample,
	}
	for _, in := range inputs {
		rec := testBuilder().BuildRecord(in)
		assert.GreaterOrEqual(t, rec.ExperienceYears, 0)
		assert.LessOrEqual(t, rec.ExperienceYears, 60)
		if rec.Email != "" {
			assert.Contains(t, rec.Email, "@")
		}
		seen := map[string]bool{}
		for _, s := range rec.Skills {
			low := s
			assert.False(t, seen[low], "duplicate skill %q", s)
			seen[low] = true
		}
	}
}

func TestBuildRecordFromProfile_MapsFields(t *testing.T) {
	raw := map[string]any{
		"name":        "Jane Doe",
		"title":       "Senior Software Engineer",
		"company":     "Tech Corporation",
		"location":    "San Francisco, CA",
		"summary":     "Experienced engineer.",
		"profile_url": "https://linkedin.com/in/jane-doe",
		"skills":      []any{"Python", "JavaScript", "AWS"},
		"experience": []any{
			map[string]any{
				"title":    "Senior Software Engineer",
				"company":  "Tech Corporation",
				"duration": "2020 - Present",
			},
		},
		"education": []any{
			map[string]any{
				"school": "University of California",
				"degree": "B.S. Computer Science",
				"year":   "2018",
			},
		},
	}

	rec := testBuilder().BuildRecordFromProfile(raw)

	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "Senior Software Engineer", rec.CurrentPosition)
	assert.Equal(t, "Tech Corporation", rec.CurrentCompany)
	assert.Equal(t, "https://linkedin.com/in/jane-doe", rec.LinkedInURL)
	assert.Equal(t, []string{"Python", "Javascript", "AWS"}, rec.Skills)

	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "2020 - Present", rec.Experience[0].DateRange)

	require.Len(t, rec.Education, 1)
	assert.Equal(t, "University of California", rec.Education[0].Institution)
	assert.Equal(t, "2018", rec.Education[0].Year)

	assert.Equal(t, 4, rec.ExperienceYears)
}

func TestBuildRecordFromProfile_LooseTypes(t *testing.T) {
	raw := map[string]any{
		"name":   "Jane Doe",
		"phone":  5551234567,
		"skills": "Python, Docker",
	}
	rec := testBuilder().BuildRecordFromProfile(raw)

	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "5551234567", rec.Phone)
}

func TestBuildRecordFromProfile_EmptyMap(t *testing.T) {
	rec := testBuilder().BuildRecordFromProfile(map[string]any{})
	assert.Empty(t, rec.Name)
	assert.NotNil(t, rec.Skills)
	assert.Zero(t, rec.ExperienceYears)
}
