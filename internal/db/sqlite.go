package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/candidate-intake/internal/types"
)

// SQLiteStore implements Store on an embedded SQLite database. It needs no
// external service, which makes it the default for the CLI. UUIDs and
// timestamps are stored as text.
type SQLiteStore struct {
	conn *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) a SQLite database file and ensures the
// schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writes anyway; a single connection avoids
	// SQLITE_BUSY under concurrent use.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{conn: conn}
	if err := store.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS candidates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    linkedin_url TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    current_position TEXT NOT NULL DEFAULT '',
    current_company TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    skills TEXT NOT NULL DEFAULT '[]',
    experience TEXT NOT NULL DEFAULT '[]',
    education TEXT NOT NULL DEFAULT '[]',
    experience_years INTEGER NOT NULL DEFAULT 0,
    resume_path TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS generated_forms (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
    form_type TEXT NOT NULL,
    form_data TEXT NOT NULL,
    file_path TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`
	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database file.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// AddCandidate inserts a record and returns the stored row.
func (s *SQLiteStore) AddCandidate(ctx context.Context, record types.CandidateRecord, resumePath string) (*Candidate, error) {
	skills, experience, education, err := marshalRecordJSON(record)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	candidate := &Candidate{
		ID:         uuid.New(),
		Record:     record,
		ResumePath: resumePath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO candidates (id, name, email, phone, linkedin_url,
		     location, current_position, current_company, summary, skills,
		     experience, education, experience_years, resume_path,
		     created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		candidate.ID.String(), record.Name, record.Email, record.Phone,
		record.LinkedInURL, record.Location, record.CurrentPosition,
		record.CurrentCompany, record.Summary, string(skills),
		string(experience), string(education), record.ExperienceYears,
		resumePath, now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add candidate: %w", err)
	}
	return candidate, nil
}

const sqliteCandidateColumns = `id, name, email, phone, linkedin_url, location,
    current_position, current_company, summary, skills, experience, education,
    experience_years, resume_path, created_at, updated_at`

// GetCandidate fetches one candidate by ID.
func (s *SQLiteStore) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+sqliteCandidateColumns+` FROM candidates WHERE id = ?`,
		id.String())

	candidate, err := scanSQLiteCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// UpdateCandidate replaces the stored record for an existing candidate.
func (s *SQLiteStore) UpdateCandidate(ctx context.Context, id uuid.UUID, record types.CandidateRecord) error {
	skills, experience, education, err := marshalRecordJSON(record)
	if err != nil {
		return err
	}

	result, err := s.conn.ExecContext(ctx,
		`UPDATE candidates SET name = ?, email = ?, phone = ?,
		     linkedin_url = ?, location = ?, current_position = ?,
		     current_company = ?, summary = ?, skills = ?, experience = ?,
		     education = ?, experience_years = ?, updated_at = ?
		 WHERE id = ?`,
		record.Name, record.Email, record.Phone, record.LinkedInURL,
		record.Location, record.CurrentPosition, record.CurrentCompany,
		record.Summary, string(skills), string(experience), string(education),
		record.ExperienceYears, time.Now().UTC().Format(time.RFC3339Nano),
		id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchCandidates matches the query against the searchable columns.
// SQLite's LIKE is case-insensitive for ASCII, matching the Postgres ILIKE
// behavior for the data we store.
func (s *SQLiteStore) SearchCandidates(ctx context.Context, query string) ([]Candidate, error) {
	pattern := "%" + query + "%"
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+sqliteCandidateColumns+` FROM candidates
		 WHERE name LIKE ? OR current_position LIKE ? OR current_company LIKE ?
		    OR skills LIKE ? OR education LIKE ?
		 ORDER BY created_at DESC`,
		pattern, pattern, pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectSQLiteCandidates(rows)
}

// ListCandidates returns all candidates, newest first.
func (s *SQLiteStore) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+sqliteCandidateColumns+` FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectSQLiteCandidates(rows)
}

// SaveForm stores a filled form for a candidate.
func (s *SQLiteStore) SaveForm(ctx context.Context, candidateID uuid.UUID, formType string, formData any, filePath string) (*GeneratedForm, error) {
	payload, err := json.Marshal(formData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal form data: %w", err)
	}

	form := &GeneratedForm{
		ID:          uuid.New(),
		CandidateID: candidateID,
		FormType:    formType,
		FormData:    payload,
		FilePath:    filePath,
		CreatedAt:   time.Now().UTC(),
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO generated_forms (id, candidate_id, form_type, form_data, file_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		form.ID.String(), candidateID.String(), formType, string(payload),
		filePath, form.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save form: %w", err)
	}
	return form, nil
}

// ListForms returns the forms generated for a candidate, newest first.
func (s *SQLiteStore) ListForms(ctx context.Context, candidateID uuid.UUID) ([]GeneratedForm, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, candidate_id, form_type, form_data, file_path, created_at
		 FROM generated_forms WHERE candidate_id = ?
		 ORDER BY created_at DESC`,
		candidateID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	forms := make([]GeneratedForm, 0, 4)
	for rows.Next() {
		var (
			form      GeneratedForm
			id        string
			candidate string
			data      string
			created   string
		)
		if err := rows.Scan(&id, &candidate, &form.FormType, &data,
			&form.FilePath, &created); err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		if form.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid form id %q: %w", id, err)
		}
		if form.CandidateID, err = uuid.Parse(candidate); err != nil {
			return nil, fmt.Errorf("invalid candidate id %q: %w", candidate, err)
		}
		form.FormData = json.RawMessage(data)
		form.CreatedAt = parseSQLiteTime(created)
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

func scanSQLiteCandidate(row rowScanner) (*Candidate, error) {
	var (
		c          Candidate
		id         string
		skills     string
		experience string
		education  string
		created    string
		updated    string
	)
	err := row.Scan(&id, &c.Record.Name, &c.Record.Email, &c.Record.Phone,
		&c.Record.LinkedInURL, &c.Record.Location, &c.Record.CurrentPosition,
		&c.Record.CurrentCompany, &c.Record.Summary, &skills, &experience,
		&education, &c.Record.ExperienceYears, &c.ResumePath,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	if c.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid candidate id %q: %w", id, err)
	}
	if err := unmarshalRecordJSON(&c.Record, []byte(skills), []byte(experience), []byte(education)); err != nil {
		return nil, err
	}
	c.CreatedAt = parseSQLiteTime(created)
	c.UpdatedAt = parseSQLiteTime(updated)
	return &c, nil
}

func collectSQLiteCandidates(rows *sql.Rows) ([]Candidate, error) {
	candidates := make([]Candidate, 0, 16)
	for rows.Next() {
		candidate, err := scanSQLiteCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, rows.Err()
}

func parseSQLiteTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
