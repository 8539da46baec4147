package config

import "time"

// GenAIConfig contains text-generation client configuration.
type GenAIConfig struct {
	// BaseURL is the generative language API root.
	BaseURL string `env:"GENAI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// Model selects the generation model.
	Model string `env:"GENAI_MODEL" envDefault:"gemini-1.5-flash-latest"`

	// Timeout bounds each generation request. Generation is slow, so this
	// default is deliberately looser than the gateway timeout.
	Timeout time.Duration `env:"GENAI_TIMEOUT" envDefault:"60s"`
}

// Sanitize applies guardrails to text-generation configuration values.
func (g *GenAIConfig) Sanitize() {
	if g.Timeout <= 0 {
		g.Timeout = 60 * time.Second
	}
}
