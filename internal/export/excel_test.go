package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/candidate-intake/internal/db"
	"github.com/jonathan/candidate-intake/internal/forms"
	"github.com/jonathan/candidate-intake/internal/types"
)

func exportTestCandidates() []db.Candidate {
	rec := types.NewCandidateRecord()
	rec.Name = "Jane Doe"
	rec.Email = "jane.doe@example.com"
	rec.Skills = []string{"Python", "Go"}
	rec.ExperienceYears = 8

	other := types.NewCandidateRecord()
	other.Name = "Bob Smith"

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return []db.Candidate{
		{ID: uuid.New(), Record: rec, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Record: other, CreatedAt: now, UpdatedAt: now},
	}
}

func TestCandidatesToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.xlsx")

	require.NoError(t, CandidatesToExcel(exportTestCandidates(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	name, err := f.GetCellValue("Candidates", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", name)

	skills, err := f.GetCellValue("Candidates", "H2")
	require.NoError(t, err)
	assert.Equal(t, "Python, Go", skills)

	total, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}

func TestCandidatesToExcelAppendsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates")

	require.NoError(t, CandidatesToExcel(nil, path))

	_, err := excelize.OpenFile(path + ".xlsx")
	assert.NoError(t, err)
}

func TestFormToExcel(t *testing.T) {
	rec := types.NewCandidateRecord()
	rec.Name = "Jane Doe"
	rec.Email = "jane.doe@example.com"

	filler := forms.NewFiller(nil)
	form, err := filler.Fill(context.Background(), forms.StandardHRForm(), rec)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "form.xlsx")
	require.NoError(t, FormToExcel(form, forms.StandardHRForm(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Form")
	require.NoError(t, err)

	flat := make(map[string]string)
	for _, row := range rows {
		if len(row) >= 2 {
			flat[row[0]] = row[1]
		}
	}
	assert.Equal(t, "Jane Doe", flat["Full Name:"])
	assert.Equal(t, "jane.doe@example.com", flat["Email Address:"])
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "Personal Information", sectionTitle("personal_information"))
	assert.Equal(t, "Hr Assessment", sectionTitle("hr_assessment"))
}
