package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Scraper fetches and parses candidate profiles with graceful degradation:
// plain HTTP first, a headless browser when the page looks script-rendered,
// and deterministic mock data when nothing could be fetched.
type Scraper struct {
	opts         *Options
	logger       *zap.Logger
	allowBrowser bool
	allowMock    bool
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithFetchOptions overrides the HTTP fetch options.
func WithFetchOptions(opts *Options) ScraperOption {
	return func(s *Scraper) { s.opts = opts }
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) ScraperOption {
	return func(s *Scraper) { s.logger = logger }
}

// WithoutBrowser disables the headless browser fallback.
func WithoutBrowser() ScraperOption {
	return func(s *Scraper) { s.allowBrowser = false }
}

// WithoutMockFallback disables the mock data fallback, making fetch
// failures surface as errors.
func WithoutMockFallback() ScraperOption {
	return func(s *Scraper) { s.allowMock = false }
}

// NewScraper builds a Scraper with defaults.
func NewScraper(options ...ScraperOption) *Scraper {
	s := &Scraper{
		opts:         DefaultOptions(),
		logger:       zap.NewNop(),
		allowBrowser: true,
		allowMock:    true,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GetProfileData fetches a profile URL and returns its parsed fields in
// loose map form. The URL must carry an /in/<slug> path.
func (s *Scraper) GetProfileData(ctx context.Context, profileURL string) (map[string]any, error) {
	if !IsProfileURL(profileURL) {
		return nil, fmt.Errorf("not a profile URL: %s", profileURL)
	}

	html, err := s.fetchHTML(ctx, profileURL)
	if err != nil {
		if !s.allowMock {
			return nil, err
		}
		s.logger.Warn("profile fetch failed, using mock data",
			zap.String("url", profileURL), zap.Error(err))
		return MockProfile(profileURL), nil
	}

	data, err := Parse(html, profileURL)
	if err != nil {
		if !s.allowMock {
			return nil, err
		}
		s.logger.Warn("profile parse failed, using mock data",
			zap.String("url", profileURL), zap.Error(err))
		return MockProfile(profileURL), nil
	}

	if s.allowMock && isSparse(data) {
		s.logger.Warn("profile page yielded no fields, using mock data",
			zap.String("url", profileURL))
		return MockProfile(profileURL), nil
	}
	return data, nil
}

// SearchCandidates looks up candidate profiles by name. Without an upstream
// search API this returns deterministic placeholder hits, matching the
// degraded mode of GetProfileData.
func (s *Scraper) SearchCandidates(_ context.Context, name, company string) []map[string]any {
	s.logger.Debug("profile search using mock results", zap.String("name", name))
	return MockSearchResults(name, company)
}

func (s *Scraper) fetchHTML(ctx context.Context, profileURL string) (string, error) {
	result, err := Fetch(ctx, profileURL, s.opts)
	if err == nil && !ShouldUseBrowser(PageText(result.HTML)) {
		return result.HTML, nil
	}

	if !s.allowBrowser {
		if err != nil {
			return "", err
		}
		return result.HTML, nil
	}

	timeout := s.opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s.logger.Debug("falling back to headless browser", zap.String("url", profileURL))
	html, berr := RenderWithBrowser(ctx, profileURL, timeout, s.logger)
	if berr != nil {
		if err != nil {
			return "", fmt.Errorf("http fetch failed (%v); browser fallback failed: %w", err, berr)
		}
		// Keep the thin HTTP page rather than failing outright.
		return result.HTML, nil
	}
	return html, nil
}

// isSparse reports whether parsing produced nothing identifying.
func isSparse(data map[string]any) bool {
	for _, key := range []string{"name", "title", "summary"} {
		if s, ok := data[key].(string); ok && s != "" {
			return false
		}
	}
	return true
}
