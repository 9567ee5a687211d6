package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	// Verify all expected stages are in the registry
	expectedSteps := []string{
		StepIngestDocument, StepExtractRecord,
		StepScrapeProfile, StepMergeRecords,
		StepStoreCandidate, StepFillForm, StepExportForm,
	}

	for _, stepName := range expectedSteps {
		def, ok := Registry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
}

func TestRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryIngestion:  {StepIngestDocument},
		CategoryExtraction: {StepExtractRecord, StepMergeRecords},
		CategoryProfile:    {StepScrapeProfile},
		CategoryStorage:    {StepStoreCandidate},
		CategoryForms:      {StepFillForm, StepExportForm},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			def, ok := Registry[stepName]
			require.True(t, ok)
			assert.Equal(t, category, def.Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Equal(t, "test_step", err.Step)
	assert.Equal(t, []string{"dep1", "dep2"}, err.MissingDependencies)
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	err := ValidateDependencies(map[string]bool{}, "unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestValidateDependencies_Missing(t *testing.T) {
	err := ValidateDependencies(map[string]bool{}, StepExtractRecord)
	require.Error(t, err)

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, StepExtractRecord, depErr.Step)
	assert.Contains(t, depErr.MissingDependencies, StepIngestDocument)
}

func TestValidateDependencies_Met(t *testing.T) {
	completed := map[string]bool{StepIngestDocument: true}
	assert.NoError(t, ValidateDependencies(completed, StepExtractRecord))
}

func TestAvailable_FreshRun(t *testing.T) {
	available := Available(map[string]bool{})

	// Entry points plus merge, which treats both inputs as optional
	assert.Contains(t, available, StepIngestDocument)
	assert.Contains(t, available, StepScrapeProfile)
	assert.Contains(t, available, StepMergeRecords)
	assert.NotContains(t, available, StepStoreCandidate)
	assert.NotContains(t, available, StepExportForm)
}

func TestAvailable_ExcludesCompleted(t *testing.T) {
	completed := map[string]bool{
		StepIngestDocument: true,
	}
	available := Available(completed)

	assert.NotContains(t, available, StepIngestDocument)
	assert.Contains(t, available, StepExtractRecord)
}

func TestBlocked_FreshRun(t *testing.T) {
	blocked := Blocked(map[string]bool{})

	assert.Contains(t, blocked, StepExtractRecord)
	assert.Contains(t, blocked, StepStoreCandidate)
	assert.Contains(t, blocked, StepFillForm)
	assert.Contains(t, blocked, StepExportForm)
	assert.NotContains(t, blocked, StepIngestDocument)
}
