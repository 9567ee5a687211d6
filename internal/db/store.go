// Package db stores candidate records and generated forms. Two backends
// implement the same Store interface: PostgreSQL for deployments and an
// embedded SQLite file for single-machine use.
package db

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-intake/internal/types"
)

// ErrNotFound is returned when a candidate or form does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence interface the pipeline and API work against.
type Store interface {
	// AddCandidate inserts a normalized record and returns the stored row.
	AddCandidate(ctx context.Context, record types.CandidateRecord, resumePath string) (*Candidate, error)

	// GetCandidate fetches one candidate by ID. Returns ErrNotFound when
	// the ID does not exist.
	GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error)

	// UpdateCandidate replaces the stored record for an existing candidate.
	UpdateCandidate(ctx context.Context, id uuid.UUID, record types.CandidateRecord) error

	// SearchCandidates matches query case-insensitively against name,
	// skills, position, company, and education.
	SearchCandidates(ctx context.Context, query string) ([]Candidate, error)

	// ListCandidates returns all candidates, newest first.
	ListCandidates(ctx context.Context) ([]Candidate, error)

	// SaveForm stores a filled form for a candidate.
	SaveForm(ctx context.Context, candidateID uuid.UUID, formType string, formData any, filePath string) (*GeneratedForm, error)

	// ListForms returns the forms generated for a candidate, newest first.
	ListForms(ctx context.Context, candidateID uuid.UUID) ([]GeneratedForm, error)

	// Close releases the underlying connections.
	Close() error
}
