// Package config loads command configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads envFile into the environment and then parses target from it.
func Load(target any, envFile string) error {
	if err := LoadDotEnv(envFile); err != nil {
		return err
	}
	return ParseEnv(target)
}
