// Package llm provides the generative-text client used for drafting and
// refining job descriptions.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: JD drafting, LinkedIn compression
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: JD refinement with feedback
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the application
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a given tier, falling back to lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
