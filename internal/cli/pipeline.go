// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/api2spec/zodgen/internal/config"
	"github.com/api2spec/zodgen/internal/emit"
	"github.com/api2spec/zodgen/internal/generate"
	"github.com/api2spec/zodgen/internal/rewrite"
	"github.com/api2spec/zodgen/internal/scanner"
	"github.com/api2spec/zodgen/internal/schema"
)

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply command-line overrides
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	return cfg, nil
}

// pipelineOptions builds the pipeline options, compiling the rewrite rules.
func pipelineOptions(cfg *config.Config) (generate.Options, error) {
	rewriter, err := rewrite.Compile(cfg.Rewrites)
	if err != nil {
		return generate.Options{}, fmt.Errorf("invalid rewrite rules: %w", err)
	}
	hook := rewriter.Hook(func(err error) {
		printVerbose("%v", err)
	})

	return generate.Options{
		Conversion: schema.Options{
			ImplicitRequired:    cfg.Conversion.ImplicitRequired,
			DefaultValues:       cfg.Conversion.DefaultValues,
			Strict:              cfg.Conversion.Strict,
			Passthrough:         cfg.Conversion.Passthrough,
			Readonly:            cfg.Conversion.Readonly,
			Descriptions:        cfg.Conversion.Descriptions,
			ComplexityThreshold: cfg.Conversion.ComplexityThreshold,
			Rewrite:             hook,
		},
		ExportAllSchemas: cfg.Generation.ExportAllSchemas,
		ContinueOnError:  cfg.Generation.ContinueOnError,
		Endpoints:        cfg.Generation.Endpoints,
	}, nil
}

// newWriter returns the writer configured by cfg.
func newWriter(cfg *config.Config) *emit.Writer {
	w := emit.NewWriter()
	w.Endpoints = cfg.Generation.Endpoints
	return w
}

// discover returns the spec documents named by args, or found through the
// input configuration when args is empty.
func discover(cfg *config.Config, args []string) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		paths = cfg.Input.Paths
	}

	s := scanner.New(scanner.Config{
		IncludePatterns: cfg.Input.Include,
		ExcludePatterns: cfg.Input.Exclude,
	})
	docs, err := s.ScanPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no OpenAPI documents found in %s", strings.Join(paths, ", "))
	}
	return scanner.Paths(docs), nil
}

// targets maps each source document to its output file. A single document
// goes to the configured output; several documents go next to it, named
// after their source.
func targets(cfg *config.Config, sources []string) (map[string]string, error) {
	out := make(map[string]string, len(sources))
	if len(sources) == 1 {
		out[sources[0]] = cfg.Output
		return out, nil
	}

	dir := cfg.Output
	if filepath.Ext(dir) != "" {
		dir = filepath.Dir(dir)
	}

	used := make(map[string]string, len(sources))
	for _, source := range sources {
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		target := filepath.Join(dir, base+"."+cfg.Format)
		if other, ok := used[target]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", other, source, target)
		}
		used[target] = source
		out[source] = target
	}
	return out, nil
}

// convert discovers and converts the documents for a command.
func convert(ctx context.Context, cfg *config.Config, args []string) ([]generate.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	opts, err := pipelineOptions(cfg)
	if err != nil {
		return nil, err
	}

	sources, err := discover(cfg, args)
	if err != nil {
		return nil, err
	}

	printVerbose("Converting %d document(s):", len(sources))
	for _, source := range sources {
		printVerbose("  %s", source)
	}

	return generate.Batch(ctx, sources, opts, cfg.Generation.Concurrency), nil
}

// reportErrors prints the errors of a result and reports whether its output
// can still be used.
func reportErrors(res generate.Result) bool {
	if res.Err == nil {
		return true
	}
	if res.Output == nil {
		printError("%s: %v", res.Path, res.Err)
		return false
	}
	for _, line := range strings.Split(res.Err.Error(), "\n") {
		printError("%s: skipped: %s", res.Path, line)
	}
	return true
}
