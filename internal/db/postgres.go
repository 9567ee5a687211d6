package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/candidate-intake/internal/types"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// ConnectPostgres opens a connection pool, verifies it, and ensures the
// schema exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS candidates (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    linkedin_url TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    current_position TEXT NOT NULL DEFAULT '',
    current_company TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    skills JSONB NOT NULL DEFAULT '[]',
    experience JSONB NOT NULL DEFAULT '[]',
    education JSONB NOT NULL DEFAULT '[]',
    experience_years INTEGER NOT NULL DEFAULT 0,
    resume_path TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS generated_forms (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
    form_type TEXT NOT NULL,
    form_data JSONB NOT NULL,
    file_path TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

const candidateColumns = `id, name, email, phone, linkedin_url, location,
    current_position, current_company, summary, skills, experience, education,
    experience_years, resume_path, created_at, updated_at`

// AddCandidate inserts a record and returns the stored row.
func (s *PostgresStore) AddCandidate(ctx context.Context, record types.CandidateRecord, resumePath string) (*Candidate, error) {
	skills, experience, education, err := marshalRecordJSON(record)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, phone, linkedin_url, location,
		     current_position, current_company, summary, skills, experience,
		     education, experience_years, resume_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+candidateColumns,
		record.Name, record.Email, record.Phone, record.LinkedInURL,
		record.Location, record.CurrentPosition, record.CurrentCompany,
		record.Summary, skills, experience, education,
		record.ExperienceYears, resumePath,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to add candidate: %w", err)
	}
	return candidate, nil
}

// GetCandidate fetches one candidate by ID.
func (s *PostgresStore) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// UpdateCandidate replaces the stored record for an existing candidate.
func (s *PostgresStore) UpdateCandidate(ctx context.Context, id uuid.UUID, record types.CandidateRecord) error {
	skills, experience, education, err := marshalRecordJSON(record)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE candidates SET name = $1, email = $2, phone = $3,
		     linkedin_url = $4, location = $5, current_position = $6,
		     current_company = $7, summary = $8, skills = $9,
		     experience = $10, education = $11, experience_years = $12,
		     updated_at = NOW()
		 WHERE id = $13`,
		record.Name, record.Email, record.Phone, record.LinkedInURL,
		record.Location, record.CurrentPosition, record.CurrentCompany,
		record.Summary, skills, experience, education,
		record.ExperienceYears, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchCandidates matches the query against the searchable columns.
func (s *PostgresStore) SearchCandidates(ctx context.Context, query string) ([]Candidate, error) {
	pattern := "%" + query + "%"
	rows, err := s.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE name ILIKE $1 OR current_position ILIKE $1
		    OR current_company ILIKE $1 OR skills::text ILIKE $1
		    OR education::text ILIKE $1
		 ORDER BY created_at DESC`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

// ListCandidates returns all candidates, newest first.
func (s *PostgresStore) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

// SaveForm stores a filled form for a candidate.
func (s *PostgresStore) SaveForm(ctx context.Context, candidateID uuid.UUID, formType string, formData any, filePath string) (*GeneratedForm, error) {
	payload, err := json.Marshal(formData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal form data: %w", err)
	}

	var form GeneratedForm
	err = s.pool.QueryRow(ctx,
		`INSERT INTO generated_forms (candidate_id, form_type, form_data, file_path)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, candidate_id, form_type, form_data, file_path, created_at`,
		candidateID, formType, payload, filePath,
	).Scan(&form.ID, &form.CandidateID, &form.FormType, &form.FormData,
		&form.FilePath, &form.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save form: %w", err)
	}
	return &form, nil
}

// ListForms returns the forms generated for a candidate, newest first.
func (s *PostgresStore) ListForms(ctx context.Context, candidateID uuid.UUID) ([]GeneratedForm, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, candidate_id, form_type, form_data, file_path, created_at
		 FROM generated_forms WHERE candidate_id = $1
		 ORDER BY created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	forms := make([]GeneratedForm, 0, 4)
	for rows.Next() {
		var form GeneratedForm
		if err := rows.Scan(&form.ID, &form.CandidateID, &form.FormType,
			&form.FormData, &form.FilePath, &form.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*Candidate, error) {
	var (
		c          Candidate
		skills     []byte
		experience []byte
		education  []byte
	)
	err := row.Scan(&c.ID, &c.Record.Name, &c.Record.Email, &c.Record.Phone,
		&c.Record.LinkedInURL, &c.Record.Location, &c.Record.CurrentPosition,
		&c.Record.CurrentCompany, &c.Record.Summary, &skills, &experience,
		&education, &c.Record.ExperienceYears, &c.ResumePath,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalRecordJSON(&c.Record, skills, experience, education); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCandidates(rows pgx.Rows) ([]Candidate, error) {
	candidates := make([]Candidate, 0, 16)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, rows.Err()
}

func marshalRecordJSON(record types.CandidateRecord) (skills, experience, education []byte, err error) {
	if skills, err = json.Marshal(record.Skills); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if experience, err = json.Marshal(record.Experience); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	if education, err = json.Marshal(record.Education); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal education: %w", err)
	}
	return skills, experience, education, nil
}

func unmarshalRecordJSON(record *types.CandidateRecord, skills, experience, education []byte) error {
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &record.Skills); err != nil {
			return fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &record.Experience); err != nil {
			return fmt.Errorf("failed to unmarshal experience: %w", err)
		}
	}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &record.Education); err != nil {
			return fmt.Errorf("failed to unmarshal education: %w", err)
		}
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}
	if record.Experience == nil {
		record.Experience = []types.ExperienceEntry{}
	}
	if record.Education == nil {
		record.Education = []types.EducationEntry{}
	}
	return nil
}
