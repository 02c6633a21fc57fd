package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"algebraics/internal/enumerate"
	"algebraics/internal/export"
	"algebraics/internal/rootfind"
	"algebraics/internal/solve"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "algebraics.yaml"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all algebraics configuration.
type Config struct {
	// Root finder budgets and seed
	Polynomial PolynomialConfig `yaml:"polynomial"`

	// Which polynomials to enumerate
	Enumeration EnumerationConfig `yaml:"enumeration"`

	// Worker pool and cache
	Solver SolverConfig `yaml:"solver"`

	// Result encoding
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// PolynomialConfig configures the root finder.
type PolynomialConfig struct {
	MaxRootInitializations int     `yaml:"max_root_initializations"`
	MaxAttemptsPerRoot     int     `yaml:"max_attempts_per_root"`
	GuessScale             float64 `yaml:"guess_scale"`
	Tolerance              float64 `yaml:"tolerance"`
	Seed                   uint64  `yaml:"seed"`
}

// EnumerationConfig selects the enumerator and its bounds.
type EnumerationConfig struct {
	Strategy  string `yaml:"strategy"` // composition, dense
	MaxLength int    `yaml:"max_length"`
	MaxDegree int    `yaml:"max_degree"`
}

// SolverConfig configures the solve pipeline.
type SolverConfig struct {
	Workers   int `yaml:"workers"`
	CacheSize int `yaml:"cache_size"` // 0 disables the cache
}

// OutputConfig configures how results are written.
type OutputConfig struct {
	Format   string    `yaml:"format"`             // jsonl, csv, text
	Viewport []float64 `yaml:"viewport,omitempty"` // x_min, y_min, x_max, y_max; empty for no clipping
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	finder := rootfind.DefaultConfig()
	opts := solve.DefaultOptions()
	return &Config{
		Polynomial: PolynomialConfig{
			MaxRootInitializations: finder.MaxRootInitializations,
			MaxAttemptsPerRoot:     finder.MaxAttemptsPerRoot,
			GuessScale:             finder.GuessScale,
			Tolerance:              finder.Tolerance,
			Seed:                   opts.Seed,
		},
		Enumeration: EnumerationConfig{
			Strategy:  string(enumerate.StrategyDense),
			MaxLength: 12,
			MaxDegree: 7,
		},
		Solver: SolverConfig{
			Workers:   opts.Workers,
			CacheSize: opts.CacheSize,
		},
		Output: OutputConfig{
			Format: string(export.FormatJSONL),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file on top of the defaults, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides applies ALGEBRAICS_* environment variables.
func (c *Config) applyEnvOverrides() error {
	ints := map[string]*int{
		"ALGEBRAICS_MAX_ROOT_INITIALIZATIONS": &c.Polynomial.MaxRootInitializations,
		"ALGEBRAICS_MAX_ATTEMPTS_PER_ROOT":    &c.Polynomial.MaxAttemptsPerRoot,
		"ALGEBRAICS_MAX_LENGTH":               &c.Enumeration.MaxLength,
		"ALGEBRAICS_MAX_DEGREE":               &c.Enumeration.MaxDegree,
		"ALGEBRAICS_WORKERS":                  &c.Solver.Workers,
		"ALGEBRAICS_CACHE_SIZE":               &c.Solver.CacheSize,
	}
	for name, dst := range ints {
		raw := strings.TrimSpace(os.Getenv(name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		*dst = v
	}

	floats := map[string]*float64{
		"ALGEBRAICS_GUESS_SCALE": &c.Polynomial.GuessScale,
		"ALGEBRAICS_TOLERANCE":   &c.Polynomial.Tolerance,
	}
	for name, dst := range floats {
		raw := strings.TrimSpace(os.Getenv(name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		*dst = v
	}

	if raw := strings.TrimSpace(os.Getenv("ALGEBRAICS_SEED")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: ALGEBRAICS_SEED: %v", ErrInvalidConfig, err)
		}
		c.Polynomial.Seed = v
	}
	if v := strings.TrimSpace(os.Getenv("ALGEBRAICS_STRATEGY")); v != "" {
		c.Enumeration.Strategy = v
	}
	if v := strings.TrimSpace(os.Getenv("ALGEBRAICS_OUTPUT_FORMAT")); v != "" {
		c.Output.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("ALGEBRAICS_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if err := c.Finder().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := enumerate.ParseStrategy(c.Enumeration.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Enumeration.MaxLength < 0 || c.Enumeration.MaxDegree < 0 {
		return fmt.Errorf("%w: enumeration bounds must be >= 0", ErrInvalidConfig)
	}
	if c.Solver.Workers < 1 {
		return fmt.Errorf("%w: solver.workers must be >= 1", ErrInvalidConfig)
	}
	if c.Solver.CacheSize < 0 {
		return fmt.Errorf("%w: solver.cache_size must be >= 0", ErrInvalidConfig)
	}
	switch export.Format(strings.ToLower(c.Output.Format)) {
	case export.FormatJSONL, export.FormatCSV, export.FormatText:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, export.ErrUnknownFormat, c.Output.Format)
	}
	if _, err := export.ParseViewport(c.Output.Viewport); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Finder returns the root finder budgets.
func (c *Config) Finder() rootfind.Config {
	return rootfind.Config{
		MaxRootInitializations: c.Polynomial.MaxRootInitializations,
		MaxAttemptsPerRoot:     c.Polynomial.MaxAttemptsPerRoot,
		GuessScale:             c.Polynomial.GuessScale,
		Tolerance:              c.Polynomial.Tolerance,
	}
}

// SolveOptions returns the pipeline options.
func (c *Config) SolveOptions() solve.Options {
	return solve.Options{
		Finder:    c.Finder(),
		Seed:      c.Polynomial.Seed,
		Workers:   c.Solver.Workers,
		CacheSize: c.Solver.CacheSize,
	}
}

// Bounds returns the enumeration bounds.
func (c *Config) Bounds() enumerate.Bounds {
	return enumerate.Bounds{
		MaxLength: c.Enumeration.MaxLength,
		MaxDegree: c.Enumeration.MaxDegree,
	}
}
