package rootfind

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid root finder config")

// Config holds the iteration budgets of the root finder.
type Config struct {
	// Restarts from a fresh random guess before a root is given up on.
	MaxRootInitializations int `yaml:"max_root_initializations"`
	// Newton steps per restart.
	MaxAttemptsPerRoot int `yaml:"max_attempts_per_root"`
	// Width of the square, centred on the origin, initial guesses are drawn from.
	GuessScale float64 `yaml:"guess_scale"`
	// Absolute bound on the squared step size |previous - candidate|^2.
	Tolerance float64 `yaml:"tolerance"`
}

// DefaultConfig matches the 5000-step budget (10 restarts of 500 steps) and
// the 1e-20 squared-step tolerance of the reference renderer.
func DefaultConfig() Config {
	return Config{
		MaxRootInitializations: 10,
		MaxAttemptsPerRoot:     500,
		GuessScale:             2,
		Tolerance:              1e-20,
	}
}

// Validate rejects budgets that would make the finder give up immediately.
func (c Config) Validate() error {
	if c.MaxRootInitializations < 1 {
		return fmt.Errorf("%w: max_root_initializations must be >= 1, got %d", ErrInvalidConfig, c.MaxRootInitializations)
	}
	if c.MaxAttemptsPerRoot < 1 {
		return fmt.Errorf("%w: max_attempts_per_root must be >= 1, got %d", ErrInvalidConfig, c.MaxAttemptsPerRoot)
	}
	if !(c.GuessScale > 0) {
		return fmt.Errorf("%w: guess_scale must be > 0, got %g", ErrInvalidConfig, c.GuessScale)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0, got %g", ErrInvalidConfig, c.Tolerance)
	}
	return nil
}
