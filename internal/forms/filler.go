package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-intake/internal/llm"
	"github.com/jonathan/candidate-intake/internal/prompts"
	"github.com/jonathan/candidate-intake/internal/types"
)

// Metadata records how a form was produced.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	FormType    string    `json:"form_type"`
	Model       string    `json:"model,omitempty"`
	Fallback    bool      `json:"fallback"`
}

// FilledForm is a completed form: section values plus generation metadata.
type FilledForm struct {
	FormType string                    `json:"form_type"`
	Sections map[string]map[string]any `json:"sections"`
	Metadata Metadata                  `json:"metadata"`
}

// Filler fills form templates from candidate records.
type Filler struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
	now    func() time.Time
}

// FillerOption configures a Filler.
type FillerOption func(*Filler)

// WithTier selects the model tier used for filling.
func WithTier(tier llm.ModelTier) FillerOption {
	return func(f *Filler) { f.tier = tier }
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) FillerOption {
	return func(f *Filler) { f.logger = logger }
}

// WithClock overrides the metadata timestamp source.
func WithClock(now func() time.Time) FillerOption {
	return func(f *Filler) { f.now = now }
}

// NewFiller builds a Filler. A nil client is allowed and means every fill
// uses the deterministic fallback mapping.
func NewFiller(client llm.Client, opts ...FillerOption) *Filler {
	f := &Filler{
		client: client,
		tier:   llm.TierStandard,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fill completes the template from the record. Model output that cannot be
// parsed, or a missing client, degrades to the fallback mapping rather than
// failing.
func (f *Filler) Fill(ctx context.Context, template FormTemplate, record types.CandidateRecord) (FilledForm, error) {
	form := FilledForm{
		FormType: template.FormType,
		Metadata: Metadata{
			GeneratedAt: f.now().UTC(),
			FormType:    template.FormType,
		},
	}

	if f.client == nil {
		f.logger.Debug("no model client configured, using fallback form",
			zap.String("form_type", template.FormType))
		form.Sections = fallbackForm(template, record)
		form.Metadata.Fallback = true
		return form, nil
	}

	prompt, err := buildFillPrompt(template, record)
	if err != nil {
		return FilledForm{}, err
	}

	response, err := f.client.GenerateJSON(ctx, prompt, f.tier)
	if err != nil {
		f.logger.Warn("form fill generation failed, using fallback",
			zap.String("form_type", template.FormType), zap.Error(err))
		form.Sections = fallbackForm(template, record)
		form.Metadata.Fallback = true
		return form, nil
	}

	raw, ok := parseFormResponse(response)
	if !ok {
		f.logger.Warn("form fill response was not valid JSON, using fallback",
			zap.String("form_type", template.FormType))
		form.Sections = fallbackForm(template, record)
		form.Metadata.Fallback = true
		return form, nil
	}

	form.Sections = normalizeFilledForm(raw, template, record)
	form.Metadata.Model = f.client.GetModel(f.tier)
	return form, nil
}

// buildFillPrompt embeds the record and template as JSON into the
// externalized fill-form prompt.
func buildFillPrompt(template FormTemplate, record types.CandidateRecord) (string, error) {
	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal candidate record: %w", err)
	}
	templateJSON, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal form template: %w", err)
	}

	base, err := prompts.Get("forms.json", "fill-form")
	if err != nil {
		return "", err
	}
	return prompts.Format(base, map[string]string{
		"CandidateJSON": string(recordJSON),
		"TemplateJSON":  string(templateJSON),
	}), nil
}

// parseFormResponse decodes the model response into loose section maps.
func parseFormResponse(response string) (map[string]any, bool) {
	text := llm.CleanJSONBlock(response)
	// Drop any preamble before the first brace, then cut the balanced object.
	if idx := strings.Index(text, "{"); idx > 0 {
		text = text[idx:]
	}
	if obj := llm.ExtractJSONObject(text); obj != "" {
		text = obj
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	return raw, true
}
