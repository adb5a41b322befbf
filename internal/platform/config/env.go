// Package config carries the process-level helpers every wardroom
// binary shares: env struct parsing and fatal CLI exits.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from process environment variables using the
// struct's env tags. target must be a non-nil struct pointer.
func ParseEnv(target any) error {
	if target == nil {
		return errors.New("config target is required")
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("load env config: %w", err)
	}
	return nil
}
