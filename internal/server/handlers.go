package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-intake/internal/db"
	"github.com/jonathan/candidate-intake/internal/export"
	"github.com/jonathan/candidate-intake/internal/fields"
	"github.com/jonathan/candidate-intake/internal/forms"
	"github.com/jonathan/candidate-intake/internal/llm"
	"github.com/jonathan/candidate-intake/internal/pipeline"
	"github.com/jonathan/candidate-intake/internal/schemas"
	"github.com/jonathan/candidate-intake/internal/types"
)

// IngestRequest represents the request body for POST /candidates.
// At least one of resume_path and profile_url must be set.
type IngestRequest struct {
	ResumePath string `json:"resume_path,omitempty" validate:"required_without=ProfileURL,omitempty,file"`
	ProfileURL string `json:"profile_url,omitempty" validate:"required_without=ResumePath,omitempty,url"`
	FormType   string `json:"form_type,omitempty"`
}

// FormRequest represents the request body for POST /candidates/{id}/forms
type FormRequest struct {
	FormType string `json:"form_type,omitempty"`
}

// ListResponse wraps candidate collections
type ListResponse struct {
	Candidates []db.Candidate `json:"candidates"`
	Count      int            `json:"count"`
}

// handleIngest runs the intake pipeline and returns the stored candidate.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeIngestRequest(w, r)
	if !ok {
		return
	}

	result, err := pipeline.RunPipeline(r.Context(), pipeline.RunOptions{
		ResumePath: req.ResumePath,
		ProfileURL: req.ProfileURL,
		FormType:   req.FormType,
		APIKey:     s.apiKey,
		UseBrowser: s.useBrowser,
		Store:      s.store,
		Logger:     s.logger,
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Pipeline failed: "+err.Error())
		return
	}
	if result.Candidate == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Candidate was not stored")
		return
	}

	s.jsonResponse(w, http.StatusCreated, result.Candidate)
}

// handleIngestStream runs the intake pipeline and streams progress as
// Server-Sent Events.
func (s *Server) handleIngestStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeIngestRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := pipeline.RunPipeline(r.Context(), pipeline.RunOptions{
		ResumePath: req.ResumePath,
		ProfileURL: req.ProfileURL,
		FormType:   req.FormType,
		APIKey:     s.apiKey,
		UseBrowser: s.useBrowser,
		Store:      s.store,
		Logger:     s.logger,
		OnProgress: func(event pipeline.ProgressEvent) {
			sse.WriteEvent("progress", event) //nolint:errcheck
		},
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	candidateID := ""
	if result.Candidate != nil {
		candidateID = result.Candidate.ID.String()
	}
	sse.WriteComplete(candidateID, "completed")
}

// decodeIngestRequest decodes and validates an ingest body, writing the
// error response itself on failure.
func (s *Server) decodeIngestRequest(w http.ResponseWriter, r *http.Request) (IngestRequest, bool) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return req, false
	}
	return req, true
}

// handleListCandidates lists all candidates, or searches when ?q= is set.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	var candidates []db.Candidate
	var err error

	if query := r.URL.Query().Get("q"); query != "" {
		candidates, err = s.store.SearchCandidates(r.Context(), query)
	} else {
		candidates, err = s.store.ListCandidates(r.Context())
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Failed to list candidates: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListResponse{
		Candidates: candidates,
		Count:      len(candidates),
	})
}

// handleGetCandidate returns one candidate by ID.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	candidate, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleUpdateCandidate replaces a candidate's record. The submitted record
// goes through the same normalization pass as extracted ones.
func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// Schema-check the submitted JSON before decoding so type mismatches
	// surface with field paths instead of a generic decode error.
	if err := schemas.ValidateCandidateRecord(string(body)); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var record types.CandidateRecord
	if err := json.Unmarshal(body, &record); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	record = fields.NormalizeRecord(record, fields.DigitCountStrategy{})

	if err := s.store.UpdateCandidate(r.Context(), id, record); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidate, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleListForms lists the forms generated for a candidate.
func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Surface 404 for unknown candidates rather than an empty list.
	if _, err := s.store.GetCandidate(r.Context(), id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	generated, err := s.store.ListForms(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Failed to list forms: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"forms": generated,
		"count": len(generated),
	})
}

// handleGenerateForm fills a form template for a stored candidate.
func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req FormRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	if req.FormType == "" {
		req.FormType = "standard"
	}

	template, found := forms.TemplateByName(req.FormType)
	if !found {
		s.errorResponse(w, http.StatusBadRequest, "Unknown form type: "+req.FormType)
		return
	}

	candidate, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var client llm.Client
	if s.apiKey != "" {
		client, err = llm.NewClient(r.Context(), llm.DefaultGeminiConfig(), s.apiKey)
		if err != nil {
			s.logger.Warn("LLM client init failed, using record fallback", zap.Error(err))
			client = nil
		}
	}

	filler := forms.NewFiller(client, forms.WithLogger(s.logger))
	form, err := filler.Fill(r.Context(), template, candidate.Record)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Filling form failed: "+err.Error())
		return
	}

	stored, err := s.store.SaveForm(r.Context(), id, form.FormType, form, "")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Saving form failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":   stored.ID,
		"form": form,
	})
}

// handleExport serves an Excel workbook of all candidates.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.store.ListCandidates(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Failed to list candidates: "+err.Error())
		return
	}

	tmp, err := os.CreateTemp("", "candidates-*.xlsx")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}
	tmpPath := tmp.Name()
	tmp.Close() //nolint:errcheck
	defer os.Remove(tmpPath)

	if err := export.CandidatesToExcel(candidates, tmpPath); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	http.ServeFile(w, r, tmpPath)
}

// pathUUID parses a UUID path segment, writing the error response itself on
// failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID: "+raw)
		return uuid.Nil, false
	}
	return id, true
}
