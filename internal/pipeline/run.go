// Package pipeline provides the high-level orchestration for candidate intake.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-intake/internal/db"
	"github.com/jonathan/candidate-intake/internal/export"
	"github.com/jonathan/candidate-intake/internal/extract"
	"github.com/jonathan/candidate-intake/internal/forms"
	"github.com/jonathan/candidate-intake/internal/ingestion"
	"github.com/jonathan/candidate-intake/internal/llm"
	"github.com/jonathan/candidate-intake/internal/merge"
	"github.com/jonathan/candidate-intake/internal/observability"
	"github.com/jonathan/candidate-intake/internal/pipeline/steps"
	"github.com/jonathan/candidate-intake/internal/profile"
	"github.com/jonathan/candidate-intake/internal/schemas"
	"github.com/jonathan/candidate-intake/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step        string `json:"step"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	CandidateID string `json:"candidate_id,omitempty"`
	Content     any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the intake pipeline.
// At least one of ResumePath and ProfileURL must be set.
type RunOptions struct {
	ResumePath string
	ProfileURL string
	FormType   string // empty skips form filling
	OutputDir  string // empty skips Excel export
	APIKey     string
	UseBrowser bool
	Verbose    bool
	Store      db.Store // optional persistence
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Record         types.CandidateRecord
	DocumentRecord *types.CandidateRecord
	ProfileRecord  *types.CandidateRecord
	Metadata       *ingestion.Metadata
	Candidate      *db.Candidate
	Form           *forms.FilledForm
	FormPath       string
	Completed      map[string]bool
}

// logPrefix is used to distinguish concurrent log output
type logPrefix string

const (
	prefixDocument logPrefix = "[Document] "
	prefixProfile  logPrefix = "[Profile]  "
)

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.Registry[step].Category,
			Message:  message,
			Content:  content,
		})
	}
}

// RunPipeline orchestrates the full intake pipeline: document extraction and
// profile scraping run concurrently, then merge, persist, and form filling.
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.ResumePath == "" && opts.ProfileURL == "" {
		return nil, fmt.Errorf("nothing to ingest: provide a resume path or a profile URL")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	printer := observability.NewPrinter(os.Stdout)

	result := &Result{Completed: map[string]bool{}}

	// =========================================================================
	// PARALLEL EXECUTION: Document Branch + Profile Branch
	// =========================================================================
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex // Protects result assignments across branches

	if opts.ResumePath != "" {
		g.Go(func() error {
			record, meta, err := runDocumentBranch(opts)
			if err != nil {
				return fmt.Errorf("document branch failed: %w", err)
			}
			mu.Lock()
			result.DocumentRecord = record
			result.Metadata = meta
			result.Completed[steps.StepIngestDocument] = true
			result.Completed[steps.StepExtractRecord] = true
			mu.Unlock()
			return nil
		})
	}

	if opts.ProfileURL != "" {
		g.Go(func() error {
			record, err := runProfileBranch(gCtx, opts, logger, printer)
			if err != nil {
				return fmt.Errorf("profile branch failed: %w", err)
			}
			mu.Lock()
			result.ProfileRecord = record
			result.Completed[steps.StepScrapeProfile] = true
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// =========================================================================

	// Merge: profile data is primary for identity, the document wins contact
	// fields. A single-source run passes through normalization unchanged.
	switch {
	case result.DocumentRecord != nil && result.ProfileRecord != nil:
		fmt.Printf("Merging document and profile records...\n")
		result.Record = merge.Merge(*result.ProfileRecord, *result.DocumentRecord)
	case result.DocumentRecord != nil:
		result.Record = *result.DocumentRecord
	default:
		result.Record = *result.ProfileRecord
	}
	result.Completed[steps.StepMergeRecords] = true
	emitProgress(&opts, steps.StepMergeRecords,
		fmt.Sprintf("Built canonical record for %s", result.Record.Name), result.Record)

	if opts.Verbose {
		printer.PrintRecord(&result.Record)
	}

	// Persist if a store is configured. Storage failure does not abort the
	// run; the extracted record is still returned to the caller.
	if opts.Store != nil {
		candidate, err := opts.Store.AddCandidate(ctx, result.Record, opts.ResumePath)
		if err != nil {
			fmt.Printf("Warning: Failed to store candidate: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			logger.Warn("store candidate failed", zap.Error(err))
		} else {
			result.Candidate = candidate
			result.Completed[steps.StepStoreCandidate] = true
			fmt.Printf("Stored candidate %s\n", candidate.ID)
			emitProgress(&opts, steps.StepStoreCandidate,
				fmt.Sprintf("Stored candidate %s", candidate.ID), nil)
		}
	}

	if opts.FormType != "" {
		if err := runFormStage(ctx, opts, logger, printer, result); err != nil {
			return nil, err
		}
	}

	fmt.Printf("Done! Candidate intake complete.\n")
	return result, nil
}

// runDocumentBranch reads and cleans the resume document, then extracts a
// candidate record from its text.
func runDocumentBranch(opts RunOptions) (*types.CandidateRecord, *ingestion.Metadata, error) {
	prefix := prefixDocument

	fmt.Printf("%sIngesting document: %s...\n", prefix, opts.ResumePath)
	text, meta, err := ingestion.ReadDocument(opts.ResumePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document failed: %w", err)
	}
	emitProgress(&opts, steps.StepIngestDocument,
		fmt.Sprintf("Ingested %d bytes from %s", meta.Bytes, opts.ResumePath), meta)

	fmt.Printf("%sExtracting candidate record...\n", prefix)
	builder := extract.NewBuilder()
	record := builder.BuildRecord(text)
	emitProgress(&opts, steps.StepExtractRecord,
		fmt.Sprintf("Extracted record with %d skills", len(record.Skills)), nil)

	fmt.Printf("%s✅ Document branch complete.\n", prefix)
	return &record, meta, nil
}

// runProfileBranch scrapes the candidate profile and converts the scraped
// fields to a candidate record.
func runProfileBranch(ctx context.Context, opts RunOptions, logger *zap.Logger, printer *observability.Printer) (*types.CandidateRecord, error) {
	prefix := prefixProfile

	fmt.Printf("%sScraping profile: %s...\n", prefix, opts.ProfileURL)

	scraperOpts := []profile.ScraperOption{profile.WithLogger(logger)}
	if !opts.UseBrowser {
		scraperOpts = append(scraperOpts, profile.WithoutBrowser())
	}
	scraper := profile.NewScraper(scraperOpts...)

	data, err := scraper.GetProfileData(ctx, opts.ProfileURL)
	if err != nil {
		return nil, fmt.Errorf("scraping profile failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintProfile(data)
	}

	builder := extract.NewBuilder()
	record := builder.BuildRecordFromProfile(data)
	emitProgress(&opts, steps.StepScrapeProfile,
		fmt.Sprintf("Scraped profile for %s", record.Name), data)

	fmt.Printf("%s✅ Profile branch complete.\n", prefix)
	return &record, nil
}

// runFormStage fills the requested form template from the merged record,
// persists it when a store holds the candidate, and exports it to Excel when
// an output directory is set.
func runFormStage(ctx context.Context, opts RunOptions, logger *zap.Logger, printer *observability.Printer, result *Result) error {
	template, ok := forms.TemplateByName(opts.FormType)
	if !ok {
		return fmt.Errorf("unknown form type: %s", opts.FormType)
	}

	fmt.Printf("Filling %s form...\n", template.FormType)

	var client llm.Client
	if opts.APIKey != "" {
		var err error
		client, err = llm.NewClient(ctx, llm.DefaultGeminiConfig(), opts.APIKey)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM client: %v\n", err)
			fmt.Printf("Continuing with record-based form filling...\n")
			client = nil
		} else if closer, ok := client.(interface{ Close() error }); ok {
			defer closer.Close() //nolint:errcheck
		}
	}

	filler := forms.NewFiller(client, forms.WithLogger(logger))
	form, err := filler.Fill(ctx, template, result.Record)
	if err != nil {
		return fmt.Errorf("filling form failed: %w", err)
	}
	if formJSON, err := json.Marshal(form); err == nil {
		if err := schemas.ValidateFilledForm(string(formJSON)); err != nil {
			logger.Warn("filled form failed schema validation", zap.Error(err))
		}
	}
	result.Form = &form
	result.Completed[steps.StepFillForm] = true
	if opts.Verbose {
		printer.PrintForm(form.FormType, form.Sections)
	}
	emitProgress(&opts, steps.StepFillForm,
		fmt.Sprintf("Filled %s form (fallback=%t)", form.FormType, form.Metadata.Fallback), nil)

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory failed: %w", err)
		}
		result.FormPath = filepath.Join(opts.OutputDir, form.FormType+".xlsx")
		if err := export.FormToExcel(form, template, result.FormPath); err != nil {
			return fmt.Errorf("exporting form failed: %w", err)
		}
		result.Completed[steps.StepExportForm] = true
		fmt.Printf("Exported form to %s\n", result.FormPath)
		emitProgress(&opts, steps.StepExportForm,
			fmt.Sprintf("Exported form to %s", result.FormPath), nil)
	}

	if opts.Store != nil && result.Candidate != nil {
		if _, err := opts.Store.SaveForm(ctx, result.Candidate.ID, form.FormType, form, result.FormPath); err != nil {
			fmt.Printf("Warning: Failed to save form: %v\n", err)
			logger.Warn("save form failed", zap.Error(err))
		}
	}

	return nil
}

// supportedExtensions are the document types IngestDirectory picks up.
var supportedExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
	".pdf":  true,
	".doc":  true,
}

// maxConcurrentIngests bounds parallel document processing in batch mode.
const maxConcurrentIngests = 4

// IngestDirectory runs the document pipeline over every supported file in a
// directory. Unsupported and unreadable files are skipped with a warning;
// the batch fails only on storage or traversal errors.
func IngestDirectory(ctx context.Context, dir string, store db.Store, logger *zap.Logger) ([]db.Candidate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s failed: %w", dir, err)
	}

	builder := extract.NewBuilder()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentIngests)

	var mu sync.Mutex
	var candidates []db.Candidate

	for _, path := range paths {
		path := path
		g.Go(func() error {
			text, _, err := ingestion.ReadDocument(path)
			if err != nil {
				if errors.Is(err, ingestion.ErrUnsupportedFormat) || errors.Is(err, ingestion.ErrDocumentUnreadable) {
					logger.Warn("skipping document", zap.String("path", path), zap.Error(err))
					return nil
				}
				return fmt.Errorf("reading %s failed: %w", path, err)
			}

			record := builder.BuildRecord(text)

			if store == nil {
				mu.Lock()
				candidates = append(candidates, db.Candidate{Record: record, ResumePath: path})
				mu.Unlock()
				return nil
			}

			candidate, err := store.AddCandidate(gCtx, record, path)
			if err != nil {
				return fmt.Errorf("storing %s failed: %w", path, err)
			}
			logger.Info("ingested document",
				zap.String("path", path),
				zap.String("candidate_id", candidate.ID.String()))

			mu.Lock()
			candidates = append(candidates, *candidate)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return candidates, nil
}
