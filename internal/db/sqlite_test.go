package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-intake/internal/types"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "intake.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord() types.CandidateRecord {
	rec := types.NewCandidateRecord()
	rec.Name = "Jane Doe"
	rec.Email = "jane.doe@example.com"
	rec.Phone = "+15551234567"
	rec.Location = "Austin, TX"
	rec.CurrentPosition = "Staff Engineer"
	rec.CurrentCompany = "BigCo"
	rec.Skills = []string{"Python", "Go", "AWS"}
	rec.Experience = []types.ExperienceEntry{
		{Title: "Staff Engineer", Company: "BigCo", DateRange: "2021 - Present"},
	}
	rec.Education = []types.EducationEntry{
		{Degree: "B.S. Computer Science", Institution: "State University", Year: "2016"},
	}
	rec.ExperienceYears = 8
	return rec
}

func TestSQLiteAddAndGetCandidate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	added, err := store.AddCandidate(ctx, sampleRecord(), "/tmp/resume.pdf")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, added.ID)

	got, err := store.GetCandidate(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.Record.Name)
	assert.Equal(t, []string{"Python", "Go", "AWS"}, got.Record.Skills)
	require.Len(t, got.Record.Experience, 1)
	assert.Equal(t, "BigCo", got.Record.Experience[0].Company)
	assert.Equal(t, "/tmp/resume.pdf", got.ResumePath)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSQLiteGetCandidateNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetCandidate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteUpdateCandidate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	added, err := store.AddCandidate(ctx, sampleRecord(), "")
	require.NoError(t, err)

	updated := added.Record
	updated.CurrentCompany = "NewCo"
	updated.Skills = append(updated.Skills, "Kubernetes")
	require.NoError(t, store.UpdateCandidate(ctx, added.ID, updated))

	got, err := store.GetCandidate(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "NewCo", got.Record.CurrentCompany)
	assert.Contains(t, got.Record.Skills, "Kubernetes")
}

func TestSQLiteUpdateCandidateNotFound(t *testing.T) {
	store := openTestStore(t)

	err := store.UpdateCandidate(context.Background(), uuid.New(), sampleRecord())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSearchCandidates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.AddCandidate(ctx, sampleRecord(), "")
	require.NoError(t, err)

	other := types.NewCandidateRecord()
	other.Name = "Bob Smith"
	other.CurrentPosition = "Designer"
	_, err = store.AddCandidate(ctx, other, "")
	require.NoError(t, err)

	byName, err := store.SearchCandidates(ctx, "jane")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Jane Doe", byName[0].Record.Name)

	bySkill, err := store.SearchCandidates(ctx, "python")
	require.NoError(t, err)
	require.Len(t, bySkill, 1)

	byEducation, err := store.SearchCandidates(ctx, "state university")
	require.NoError(t, err)
	require.Len(t, byEducation, 1)

	none, err := store.SearchCandidates(ctx, "haskell")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteListCandidates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.AddCandidate(ctx, sampleRecord(), "")
	require.NoError(t, err)
	other := types.NewCandidateRecord()
	other.Name = "Bob Smith"
	_, err = store.AddCandidate(ctx, other, "")
	require.NoError(t, err)

	all, err := store.ListCandidates(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLiteSaveAndListForms(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	added, err := store.AddCandidate(ctx, sampleRecord(), "")
	require.NoError(t, err)

	data := map[string]string{"full_name": "Jane Doe", "email": "jane.doe@example.com"}
	form, err := store.SaveForm(ctx, added.ID, "standard_hr", data, "/tmp/form.json")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, form.ID)

	forms, err := store.ListForms(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "standard_hr", forms[0].FormType)
	assert.JSONEq(t, `{"full_name":"Jane Doe","email":"jane.doe@example.com"}`, string(forms[0].FormData))
}

func TestSQLiteEmptySlicesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	added, err := store.AddCandidate(ctx, types.NewCandidateRecord(), "")
	require.NoError(t, err)

	got, err := store.GetCandidate(ctx, added.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Record.Skills)
	assert.NotNil(t, got.Record.Experience)
	assert.NotNil(t, got.Record.Education)
}
