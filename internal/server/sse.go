package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter streams pipeline progress to a client as Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for event streaming. It fails when the
// underlying writer cannot flush (e.g. some proxies and test recorders).
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent emits one named event with a JSON payload and flushes it out.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError emits a terminal error event.
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete emits the final event carrying the stored candidate ID.
func (s *SSEWriter) WriteComplete(candidateID, status string) {
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"candidate_id": candidateID,
		"status":       status,
	})
}
