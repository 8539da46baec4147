package config

import "time"

// GatewayConfig contains auth gateway client configuration.
type GatewayConfig struct {
	// BaseURL is the root of the auth service API, e.g.
	// "https://placement.example.com/api/auth".
	BaseURL string `env:"GATEWAY_BASE_URL" envDefault:"http://localhost:8000/api/auth"`

	// Timeout bounds each gateway request.
	Timeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to gateway configuration values.
func (g *GatewayConfig) Sanitize() {
	if g.Timeout <= 0 {
		g.Timeout = 10 * time.Second
	}
}
