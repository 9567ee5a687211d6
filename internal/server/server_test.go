package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/db"
	"github.com/jonathan/candidate-intake/internal/types"
)

const testResume = `Jane Doe
Senior Software Engineer
jane.doe@example.com
+1 (555) 123-4567

Skills
Python, Go, Kubernetes, AWS

Experience
Senior Software Engineer at Acme Corp (2019 - Present)

Education
BS Computer Science, State University, 2016
`

func newTestServer(t *testing.T, cfg Config) (*Server, db.Store) {
	t.Helper()
	store, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv, err := New(store, cfg)
	require.NoError(t, err)
	return srv, store
}

func writeTestResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(testResume), 0644))
	return path
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_RequiresStore(t *testing.T) {
	_, err := New(nil, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store is required")
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestIngest_Document(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodPost, "/candidates", IngestRequest{
		ResumePath: writeTestResume(t),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var candidate db.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidate))
	assert.Equal(t, "Jane Doe", candidate.Record.Name)
	assert.Equal(t, "jane.doe@example.com", candidate.Record.Email)

	stored, err := store.GetCandidate(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.Record.Name, stored.Record.Name)
}

func TestIngest_MissingInputs(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodPost, "/candidates", IngestRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request")
}

func TestIngest_MissingResumeFile(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodPost, "/candidates", IngestRequest{
		ResumePath: "/nonexistent/resume.txt",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCandidate(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	record := types.NewCandidateRecord()
	record.Name = "Alex Chen"
	candidate, err := store.AddCandidate(context.Background(), record, "")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodGet, "/candidates/"+candidate.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alex Chen")
}

func TestGetCandidate_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodGet, "/candidates/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCandidate_InvalidID(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodGet, "/candidates/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid candidate ID")
}

func TestListCandidates_Search(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	first := types.NewCandidateRecord()
	first.Name = "Alex Chen"
	first.Skills = []string{"Python"}
	_, err := store.AddCandidate(context.Background(), first, "")
	require.NoError(t, err)

	second := types.NewCandidateRecord()
	second.Name = "Sam Patel"
	second.Skills = []string{"Go"}
	_, err = store.AddCandidate(context.Background(), second, "")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodGet, "/candidates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Equal(t, 2, all.Count)

	w = doJSON(t, srv, http.MethodGet, "/candidates?q=python", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Equal(t, 1, filtered.Count)
	assert.Equal(t, "Alex Chen", filtered.Candidates[0].Record.Name)
}

func TestUpdateCandidate(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	record := types.NewCandidateRecord()
	record.Name = "Alex Chen"
	candidate, err := store.AddCandidate(context.Background(), record, "")
	require.NoError(t, err)

	record.CurrentPosition = "Staff Engineer"
	record.Email = "not-an-email" // Normalization blanks invalid contacts
	w := doJSON(t, srv, http.MethodPut, "/candidates/"+candidate.ID.String(), record)
	require.Equal(t, http.StatusOK, w.Code)

	var updated db.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Staff Engineer", updated.Record.CurrentPosition)
	assert.Empty(t, updated.Record.Email)
}

func TestUpdateCandidate_SchemaViolation(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	candidate, err := store.AddCandidate(context.Background(), types.NewCandidateRecord(), "")
	require.NoError(t, err)

	// skills must be an array of strings
	body := `{"name": "Alex Chen", "email": "", "phone": "", "skills": [1, 2], "experience": [], "education": [], "experience_years": 0}`
	req := httptest.NewRequest(http.MethodPut, "/candidates/"+candidate.ID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "skills")
}

func TestUpdateCandidate_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodPut, "/candidates/"+uuid.NewString(), types.NewCandidateRecord())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateForm(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	record := types.NewCandidateRecord()
	record.Name = "Alex Chen"
	record.Skills = []string{"Go", "Python"}
	candidate, err := store.AddCandidate(context.Background(), record, "")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodPost, "/candidates/"+candidate.ID.String()+"/forms", FormRequest{FormType: "standard"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Alex Chen")

	w = doJSON(t, srv, http.MethodGet, "/candidates/"+candidate.ID.String()+"/forms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestGenerateForm_UnknownType(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	candidate, err := store.AddCandidate(context.Background(), types.NewCandidateRecord(), "")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodPost, "/candidates/"+candidate.ID.String()+"/forms", FormRequest{FormType: "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown form type")
}

func TestListForms_UnknownCandidate(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodGet, "/candidates/"+uuid.NewString()+"/forms", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport(t *testing.T) {
	srv, store := newTestServer(t, Config{})

	record := types.NewCandidateRecord()
	record.Name = "Alex Chen"
	_, err := store.AddCandidate(context.Background(), record, "")
	require.NoError(t, err)

	w := doJSON(t, srv, http.MethodGet, "/export/candidates.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "candidates.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestAuth_Enforced(t *testing.T) {
	jwtCfg := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 1,
	}
	srv, _ := newTestServer(t, Config{JWT: jwtCfg})

	// Health stays public
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// API routes require a bearer token
	w = doJSON(t, srv, http.MethodGet, "/candidates", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := NewJWTService(jwtCfg).GenerateToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/candidates", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitHeaders(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	w := doJSON(t, srv, http.MethodGet, "/candidates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}
