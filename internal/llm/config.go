// Package llm wraps the Gemini API behind a tiered client. The intake
// pipeline sends cheap work (field extraction, short summaries) to the lite
// tier and form filling to the standard tier; the advanced tier is reserved
// for open-ended form sections.
package llm

// ModelTier selects how capable a model a request needs.
type ModelTier string

const (
	TierLite     ModelTier = "lite"
	TierStandard ModelTier = "standard"
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to concrete model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultGeminiConfig returns the stock tier-to-model mapping.
func DefaultGeminiConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to its model name, falling back from standard to
// lite when the requested tier has no mapping.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier remapped.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Models: models}
}
