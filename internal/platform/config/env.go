// Package config loads artshop settings from ARTSHOP_-prefixed
// environment variables and provides the fatal-exit helper used by the
// command entrypoint.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables declared through
// `env` struct tags, applying any envDefault values.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
