// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/zodgen/internal/config"
	"github.com/api2spec/zodgen/internal/generate"
)

var (
	generateDryRun          bool
	generateInclude         []string
	generateExclude         []string
	generateContinueOnError bool
	generateConcurrency     int
	generateStrict          bool
	generateReadonly        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate TypeScript types and Zod validators",
	Long: `Generate TypeScript types and Zod validators from OpenAPI documents.

Paths may be documents or directories. Directories are searched with the
configured include and exclude patterns, and only files with an openapi or
swagger key are converted. With one document the output goes to --output;
with several, one file per document is written next to it.

Example:
  zodgen generate                              # Convert documents under the current directory
  zodgen generate api.yaml -o src/api.ts       # Convert one document
  zodgen generate specs/ --include "**/*.yaml" # Only YAML documents
  zodgen generate --continue-on-error          # Skip schemas that fail to convert
  zodgen generate --dry-run                    # Print instead of writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print output instead of writing files")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
	generateCmd.Flags().BoolVar(&generateContinueOnError, "continue-on-error", false, "skip failing schemas and report them at the end")
	generateCmd.Flags().IntVar(&generateConcurrency, "concurrency", 0, "documents converted in parallel (default: number of CPUs)")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "reject unknown object keys with .strict()")
	generateCmd.Flags().BoolVar(&generateReadonly, "readonly", false, "mark objects and records readonly")
}

// applyGenerateFlags applies the generate flags shared by watch.
func applyGenerateFlags(cfg *config.Config) {
	if len(generateInclude) > 0 {
		cfg.Input.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Input.Exclude = generateExclude
	}
	if generateContinueOnError {
		cfg.Generation.ContinueOnError = true
	}
	if generateConcurrency > 0 {
		cfg.Generation.Concurrency = generateConcurrency
	}
	if generateStrict {
		cfg.Conversion.Strict = true
	}
	if generateReadonly {
		cfg.Conversion.Readonly = true
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg)

	printVerbose("Configuration:")
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)

	return generateOnce(cmd, cfg, args)
}

// generateOnce converts and writes every document once.
func generateOnce(cmd *cobra.Command, cfg *config.Config, args []string) error {
	results, err := convert(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}
	return writeResults(cmd, cfg, results)
}

// writeResults writes the converted documents and reports a summary. It fails
// when any document could not be converted.
func writeResults(cmd *cobra.Command, cfg *config.Config, results []generate.Result) error {
	sources := make([]string, len(results))
	for i, res := range results {
		sources[i] = res.Path
	}
	files, err := targets(cfg, sources)
	if err != nil {
		return err
	}

	writer := newWriter(cfg)
	failed := 0
	for _, res := range results {
		if !reportErrors(res) {
			failed++
			continue
		}

		if generateDryRun {
			data, err := writer.Render(res.Output, cfg.Format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			continue
		}

		path := files[res.Path]
		wrote, err := writer.WriteFile(res.Output, path, cfg.Format)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		switch {
		case wrote:
			printInfo("Generated %s (%d declarations, %d endpoints)", path, len(res.Output.Order), len(res.Output.Endpoints))
		default:
			printVerbose("Unchanged %s", path)
		}
		if len(res.Output.Circular) > 0 {
			printVerbose("  Circular: %v", res.Output.Circular)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed to convert", failed, len(results))
	}
	return nil
}
