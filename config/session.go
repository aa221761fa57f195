package config

import "time"

// RedisConfig contains Redis connection configuration for the session store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig groups session store configuration.
//
// Sessions hold the upstream bearer credential for the lifetime of a login.
// The credential is created on login, destroyed on logout, and never
// persisted beyond the session itself.
type SessionConfig struct {
	// Redis connection for the session store.
	Redis RedisConfig `envPrefix:"REDIS_"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`

	// TTL is the fallback session lifetime used when the upstream
	// credential carries no usable expiry claim.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
}
