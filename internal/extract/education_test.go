package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEducation_DegreeFromInstitution(t *testing.T) {
	text := "Education:\nB.S. Computer Science from State University (2016)\n"
	entries := Education(text)

	require.Len(t, entries, 1)
	assert.Equal(t, "B.S. Computer Science", entries[0].Degree)
	assert.Equal(t, "State University", entries[0].Institution)
	assert.Equal(t, "2016", entries[0].Year)
}

func TestEducation_InstitutionDashDegree(t *testing.T) {
	text := "Education:\nState University - M.S. Data Science 2018\n"
	entries := Education(text)

	require.Len(t, entries, 1)
	assert.Equal(t, "State University", entries[0].Institution)
	assert.Equal(t, "M.S. Data Science", entries[0].Degree)
	assert.Equal(t, "2018", entries[0].Year)
}

func TestEducation_CommaDelimited(t *testing.T) {
	text := "Academic:\nMBA, Business School, 2012\n"
	entries := Education(text)

	require.Len(t, entries, 1)
	assert.Equal(t, "MBA", entries[0].Degree)
	assert.Equal(t, "Business School", entries[0].Institution)
}

func TestEducation_PipeDelimited(t *testing.T) {
	text := "Qualifications:\nB.A. History | City College | 2010\n"
	entries := Education(text)

	require.Len(t, entries, 1)
	assert.Equal(t, "B.A. History", entries[0].Degree)
	assert.Equal(t, "City College", entries[0].Institution)
	assert.Equal(t, "2010", entries[0].Year)
}

func TestEducation_InstitutionYearDashDegree(t *testing.T) {
	text := "Education:\nState University (2014) - B.Sc Physics\n"
	entries := Education(text)

	require.Len(t, entries, 1)
	assert.Equal(t, "State University", entries[0].Institution)
	assert.Equal(t, "2014", entries[0].Year)
	assert.Equal(t, "B.Sc Physics", entries[0].Degree)
}

func TestEducation_FiltersShortAndHeaderWords(t *testing.T) {
	text := "Education:\nBS, IT, 2010\nAcademic Background - Qualifications Review 2011\n"
	entries := Education(text)
	assert.Empty(t, entries)
}

func TestEducation_FallbackDegreeKeywordScan(t *testing.T) {
	text := "Jane holds a Bachelor of Science earned at State University and mentors students."
	entries := Education(text)

	require.NotEmpty(t, entries)
	assert.LessOrEqual(t, len(entries), maxFallbackEducation)
	assert.Contains(t, entries[0].Degree, "Bachelor")
	assert.Contains(t, entries[0].Institution, "University")
}

func TestEducation_EmptyInput(t *testing.T) {
	assert.Empty(t, Education(""))
}
