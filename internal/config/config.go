package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overflow policies for source limits (line count and line length).
const (
	OverflowError    = "error"
	OverflowTruncate = "truncate"
)

// Limits are the static capacities of the interpreter.
// Length limits are buffer sizes: the usable length is one less.
type Limits struct {
	MaxLines      int `yaml:"max_lines"`
	MaxLineLength int `yaml:"max_line_length"`
	MaxNameLength int `yaml:"max_name_length"`
	MaxVars       int `yaml:"max_vars"`
	MaxFunctions  int `yaml:"max_functions"`
	MaxParams     int `yaml:"max_params"`
	MaxStackDepth int `yaml:"max_stack_depth"`
}

type Runtime struct {
	MaxSteps int    `yaml:"max_steps"` // 0 = unlimited
	Overflow string `yaml:"overflow"`  // error | truncate
}

type Config struct {
	Limits  Limits  `yaml:"limits"`
	Runtime Runtime `yaml:"runtime"`
}

// ValidationError collects every invalid field of a config file.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "config: " + strings.Join(e.Issues, "; ")
}

// DefaultLimits returns the classic capacities.
func DefaultLimits() Limits {
	return Limits{
		MaxLines:      40,
		MaxLineLength: 32,
		MaxNameLength: 24,
		MaxVars:       8,
		MaxFunctions:  4,
		MaxParams:     8,
		MaxStackDepth: 8,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Limits: DefaultLimits(),
		Runtime: Runtime{
			MaxSteps: 0,
			Overflow: OverflowError,
		},
	}
}

// Truncate reports whether oversize sources are cut instead of rejected.
func (c Config) Truncate() bool {
	return c.Runtime.Overflow == OverflowTruncate
}

// Load reads a YAML config file. Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Decode parses a YAML document over the default configuration and validates it.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("document is empty")
		}
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every limit is usable.
func (c Config) Validate() error {
	var errs ValidationError

	positive := []struct {
		name  string
		value int
	}{
		{"limits.max_lines", c.Limits.MaxLines},
		{"limits.max_vars", c.Limits.MaxVars},
		{"limits.max_functions", c.Limits.MaxFunctions},
		{"limits.max_params", c.Limits.MaxParams},
		{"limits.max_stack_depth", c.Limits.MaxStackDepth},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s must be positive, got %d", p.name, p.value))
		}
	}

	// one byte is reserved for the terminator, so a buffer of 1 holds nothing
	if c.Limits.MaxLineLength < 2 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("limits.max_line_length must be at least 2, got %d", c.Limits.MaxLineLength))
	}
	if c.Limits.MaxNameLength < 2 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("limits.max_name_length must be at least 2, got %d", c.Limits.MaxNameLength))
	}

	if c.Runtime.MaxSteps < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("runtime.max_steps must not be negative, got %d", c.Runtime.MaxSteps))
	}

	switch c.Runtime.Overflow {
	case OverflowError, OverflowTruncate:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("runtime.overflow must be %q or %q, got %q", OverflowError, OverflowTruncate, c.Runtime.Overflow))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}

	return nil
}
