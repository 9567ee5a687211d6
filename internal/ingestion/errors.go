package ingestion

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions the reader
	// does not know how to extract text from.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDocumentUnreadable is returned when a document exists but no
	// usable text could be extracted from it.
	ErrDocumentUnreadable = errors.New("document unreadable")
)
