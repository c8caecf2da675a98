// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for zodgen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/api2spec/zodgen/internal/rewrite"
)

// Config represents the zodgen configuration.
type Config struct {
	// Output is the generated file, or a directory when several documents are converted
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (ts, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Input contains spec document discovery configuration
	Input InputConfig `mapstructure:"input" yaml:"input" json:"input"`

	// Conversion contains schema conversion options
	Conversion ConversionConfig `mapstructure:"conversion" yaml:"conversion" json:"conversion"`

	// Generation contains pipeline behavior configuration
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation" json:"generation"`

	// Rewrites are schema rewrite rules applied before conversion
	Rewrites []rewrite.Rule `mapstructure:"rewrites" yaml:"rewrites,omitempty" json:"rewrites,omitempty"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// InputConfig contains spec document discovery configuration.
type InputConfig struct {
	// Paths is a list of files or directories to read
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// ConversionConfig mirrors the converter options.
type ConversionConfig struct {
	// ImplicitRequired treats properties as required when a schema has no required list
	ImplicitRequired bool `mapstructure:"implicitRequired" yaml:"implicitRequired" json:"implicitRequired"`

	// DefaultValues emits .default() for schema defaults
	DefaultValues bool `mapstructure:"defaultValues" yaml:"defaultValues" json:"defaultValues"`

	// Strict closes every object with .strict()
	Strict bool `mapstructure:"strict" yaml:"strict" json:"strict"`

	// Passthrough opens every object with .passthrough()
	Passthrough bool `mapstructure:"passthrough" yaml:"passthrough" json:"passthrough"`

	// Readonly marks objects and records readonly
	Readonly bool `mapstructure:"readonly" yaml:"readonly" json:"readonly"`

	// Descriptions emits .describe() for schema descriptions
	Descriptions bool `mapstructure:"descriptions" yaml:"descriptions" json:"descriptions"`

	// ComplexityThreshold is the score above which inline endpoint schemas are hoisted
	ComplexityThreshold int `mapstructure:"complexityThreshold" yaml:"complexityThreshold" json:"complexityThreshold"`
}

// GenerationConfig contains pipeline behavior configuration.
type GenerationConfig struct {
	// ExportAllSchemas converts every component schema, not only those endpoints use
	ExportAllSchemas bool `mapstructure:"exportAllSchemas" yaml:"exportAllSchemas" json:"exportAllSchemas"`

	// ContinueOnError skips failing schemas instead of aborting
	ContinueOnError bool `mapstructure:"continueOnError" yaml:"continueOnError" json:"continueOnError"`

	// Endpoints converts operations and emits the endpoint table
	Endpoints bool `mapstructure:"endpoints" yaml:"endpoints" json:"endpoints"`

	// Concurrency bounds parallel document conversion (0 uses every CPU)
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency" json:"concurrency"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"zodgen.yaml",
	"zodgen.json",
	".zodgen.yaml",
	".zodgen.json",
}

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	"ts",
	"json",
}

// ErrConfigNotFound is returned when an explicit config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

var (
	defaultInclude = []string{"**/*.yaml", "**/*.yml", "**/*.json"}
	defaultExclude = []string{"**/node_modules/**", "**/.git/**"}
)

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: "schemas.ts",
		Format: "ts",
		Input: InputConfig{
			Paths:   []string{"."},
			Include: defaultInclude,
			Exclude: defaultExclude,
		},
		Conversion: ConversionConfig{
			DefaultValues:       true,
			ComplexityThreshold: 4,
		},
		Generation: GenerationConfig{
			ExportAllSchemas: true,
			Endpoints:        true,
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches the working directory for, in order: zodgen.yaml, zodgen.json,
// .zodgen.yaml, .zodgen.json. If configPath is provided, it is used instead
// and must exist.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = ConfigFilePath()
		if configPath == "" {
			return Default(), nil
		}
	} else if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("input.paths", d.Input.Paths)
	v.SetDefault("input.include", d.Input.Include)
	v.SetDefault("input.exclude", d.Input.Exclude)
	v.SetDefault("conversion.implicitRequired", d.Conversion.ImplicitRequired)
	v.SetDefault("conversion.defaultValues", d.Conversion.DefaultValues)
	v.SetDefault("conversion.strict", d.Conversion.Strict)
	v.SetDefault("conversion.passthrough", d.Conversion.Passthrough)
	v.SetDefault("conversion.readonly", d.Conversion.Readonly)
	v.SetDefault("conversion.descriptions", d.Conversion.Descriptions)
	v.SetDefault("conversion.complexityThreshold", d.Conversion.ComplexityThreshold)
	v.SetDefault("generation.exportAllSchemas", d.Generation.ExportAllSchemas)
	v.SetDefault("generation.continueOnError", d.Generation.ContinueOnError)
	v.SetDefault("generation.endpoints", d.Generation.Endpoints)
	v.SetDefault("generation.concurrency", d.Generation.Concurrency)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Output == "" {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: "output is required",
		})
	}

	if c.Conversion.ComplexityThreshold < 0 {
		errs = append(errs, ValidationError{
			Field:   "conversion.complexityThreshold",
			Message: "complexity threshold must be non-negative",
		})
	}

	if c.Generation.Concurrency < 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.concurrency",
			Message: "concurrency must be non-negative",
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if len(c.Rewrites) > 0 {
		if _, err := rewrite.Compile(c.Rewrites); err != nil {
			errs = append(errs, ValidationError{
				Field:   "rewrites",
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the config file found in the working directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
