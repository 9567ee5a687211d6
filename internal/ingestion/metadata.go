package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Metadata describes an ingested candidate document.
type Metadata struct {
	Source    string `json:"source,omitempty"` // file path or URL the text came from
	Timestamp string `json:"timestamp"`        // RFC3339
	Hash      string `json:"hash"`             // SHA256 hex digest of the cleaned text
	Bytes     int    `json:"bytes"`
	Lines     int    `json:"lines"`
}

// NewMetadata stamps metadata for cleaned document content.
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Bytes:     len(content),
		Lines:     countLines(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// ToJSON marshals Metadata to pretty-printed JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
