// Package steps defines the intake pipeline stages and their dependency
// ordering.
package steps

import (
	"fmt"
	"sort"
)

// Step names emitted in progress events and recorded against completed runs.
const (
	StepIngestDocument = "ingest_document"
	StepExtractRecord  = "extract_record"
	StepScrapeProfile  = "scrape_profile"
	StepMergeRecords   = "merge_records"
	StepStoreCandidate = "store_candidate"
	StepFillForm       = "fill_form"
	StepExportForm     = "export_form"
)

// Step categories group related stages for progress reporting.
const (
	CategoryIngestion  = "ingestion"
	CategoryExtraction = "extraction"
	CategoryProfile    = "profile"
	CategoryStorage    = "storage"
	CategoryForms      = "forms"
)

// StepDefinition defines metadata for a pipeline stage
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// Registry holds all stage definitions. Dependencies are hard requirements;
// Optional dependencies are consumed when present but do not block the stage.
var Registry = map[string]StepDefinition{
	StepIngestDocument: {
		Name:         StepIngestDocument,
		Category:     CategoryIngestion,
		Dependencies: []string{},
		Optional:     []string{},
	},
	StepExtractRecord: {
		Name:         StepExtractRecord,
		Category:     CategoryExtraction,
		Dependencies: []string{StepIngestDocument},
		Optional:     []string{},
	},
	StepScrapeProfile: {
		Name:         StepScrapeProfile,
		Category:     CategoryProfile,
		Dependencies: []string{},
		Optional:     []string{},
	},
	StepMergeRecords: {
		Name:         StepMergeRecords,
		Category:     CategoryExtraction,
		Dependencies: []string{},
		Optional:     []string{StepExtractRecord, StepScrapeProfile},
	},
	StepStoreCandidate: {
		Name:         StepStoreCandidate,
		Category:     CategoryStorage,
		Dependencies: []string{StepMergeRecords},
		Optional:     []string{},
	},
	StepFillForm: {
		Name:         StepFillForm,
		Category:     CategoryForms,
		Dependencies: []string{StepMergeRecords},
		Optional:     []string{StepStoreCandidate},
	},
	StepExportForm: {
		Name:         StepExportForm,
		Category:     CategoryForms,
		Dependencies: []string{StepFillForm},
		Optional:     []string{},
	},
}

// DependencyError reports a stage whose required dependencies have not
// completed.
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks whether all required dependencies for a stage
// are marked completed.
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := Registry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// Available returns the stages whose dependencies are met and which have not
// themselves completed, in sorted order.
func Available(completed map[string]bool) []string {
	var available []string

	for stepName := range Registry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}

	sort.Strings(available)
	return available
}

// Blocked returns the stages whose dependencies are not met, in sorted order.
func Blocked(completed map[string]bool) []string {
	var blocked []string

	for stepName := range Registry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}

	sort.Strings(blocked)
	return blocked
}
