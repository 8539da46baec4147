package config

// StateBackend names a portal state persistence backend.
type StateBackend string

const (
	StateBackendFile  StateBackend = "file"
	StateBackendRedis StateBackend = "redis"
)

// StateConfig selects where portal state (identity, token, API credential)
// is persisted between restarts.
type StateConfig struct {
	// Backend is "file" or "redis".
	Backend StateBackend `env:"STATE_BACKEND" envDefault:"file"`

	// FilePath is the state document location for the file backend.
	FilePath string `env:"STATE_FILE" envDefault:"portal-state.json"`

	// RedisPrefix namespaces state keys for the redis backend.
	RedisPrefix string `env:"STATE_REDIS_PREFIX" envDefault:"portal:"`
}

// Sanitize applies guardrails to state configuration values.
func (s *StateConfig) Sanitize() {
	if s.Backend != StateBackendRedis {
		s.Backend = StateBackendFile
	}
	if s.FilePath == "" {
		s.FilePath = "portal-state.json"
	}
	if s.RedisPrefix == "" {
		s.RedisPrefix = "portal:"
	}
}
