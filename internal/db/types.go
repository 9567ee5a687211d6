package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-intake/internal/types"
)

// Candidate is a stored candidate row: the normalized record plus storage
// identity and bookkeeping columns.
type Candidate struct {
	ID         uuid.UUID             `json:"id"`
	Record     types.CandidateRecord `json:"record"`
	ResumePath string                `json:"resume_path,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// GeneratedForm is a stored filled form tied to a candidate.
type GeneratedForm struct {
	ID          uuid.UUID       `json:"id"`
	CandidateID uuid.UUID       `json:"candidate_id"`
	FormType    string          `json:"form_type"`
	FormData    json.RawMessage `json:"form_data"`
	FilePath    string          `json:"file_path,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
