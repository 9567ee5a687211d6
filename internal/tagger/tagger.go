// Package tagger provides an optional part-of-speech tagging capability used
// to augment skill extraction. The underlying model is initialized lazily and
// shared process-wide; callers must treat the capability as optional and skip
// augmentation when it is unavailable.
package tagger

import (
	"strings"
	"sync"
	"unicode"

	prose "github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// minTokenLength filters out short noise tokens ("a", "of", "ML" is kept by
// the acronym handling upstream, not here).
const minTokenLength = 3

// taggerStopWords are common English words excluded from noun mining.
var taggerStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {},
	"from": {}, "have": {}, "has": {}, "was": {}, "were": {}, "are": {},
	"you": {}, "your": {}, "our": {}, "their": {}, "its": {}, "all": {},
	"team": {}, "work": {}, "years": {}, "experience": {}, "company": {},
}

// Tagger wraps the POS model behind an availability flag.
type Tagger struct {
	mu       sync.Mutex
	disabled bool
	failed   bool
	warned   bool
	logger   *zap.Logger
}

var (
	defaultTagger *Tagger
	defaultOnce   sync.Once
)

// Default returns the process-wide shared tagger.
func Default() *Tagger {
	defaultOnce.Do(func() {
		defaultTagger = New(zap.NewNop())
	})
	return defaultTagger
}

// New creates a tagger. Pass a nop logger to silence availability warnings.
func New(logger *zap.Logger) *Tagger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tagger{logger: logger}
}

// Disabled returns a tagger that reports itself unavailable. Useful for
// deterministic tests and for configs that opt out of the augmentation.
func Disabled() *Tagger {
	return &Tagger{disabled: true}
}

// Available reports whether tagging can be attempted.
func (t *Tagger) Available() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.disabled && !t.failed
}

// Nouns returns the alphabetic noun and proper-noun tokens of text, longer
// than two characters and not in the stop list. On tagging failure the
// capability marks itself unavailable (warning once) and returns nil; it is
// never an error at the call site.
func (t *Tagger) Nouns(text string) []string {
	if !t.Available() || strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		t.markFailed(err)
		return nil
	}

	var nouns []string
	for _, tok := range doc.Tokens() {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		word := strings.TrimSpace(tok.Text)
		if len(word) < minTokenLength || !isAlphabetic(word) {
			continue
		}
		if _, stop := taggerStopWords[strings.ToLower(word)]; stop {
			continue
		}
		nouns = append(nouns, word)
	}
	return nouns
}

func (t *Tagger) markFailed(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
	if !t.warned {
		t.warned = true
		t.logger.Warn("POS tagger unavailable, skill augmentation disabled", zap.Error(err))
	}
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
