// Package config holds process-level settings that are injected at startup
// instead of read ambiently: the HTTP listen address, the token signing key,
// and the credential cost factor. Database and logger keep their own
// ConfigFromEnv helpers.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr string        `env:"LISTEN_ADDR" envDefault:"0.0.0.0:5000"`
	JWTKey     string        `env:"JWT_KEY"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`
}

var ErrMissingJWTKey = errors.New("JWT_KEY is required")

// Load parses the config from environment variables. The signing key has no
// default: tokens signed with a guessable key are worthless.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.JWTKey == "" {
		return nil, ErrMissingJWTKey
	}
	return cfg, nil
}
