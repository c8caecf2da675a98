// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/api2spec/zodgen/internal/check"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Generated files are up to date
	ExitCodeDifference = 1 // Generated files are stale or missing
	ExitCodeCheckError = 2 // Error during conversion or comparison
)

var checkIgnore []string

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check that generated files are up to date",
	Long: `Check converts the documents in memory and compares the result with the
files on disk. TypeScript modules are compared declaration by declaration,
so formatting and comments do not count as drift. JSON manifests are
compared byte for byte.

Exit codes:
  0  Generated files are up to date
  1  Generated files are stale or missing
  2  Error during conversion or comparison

Example:
  zodgen check                         # Check the configured output
  zodgen check api.yaml -o src/api.ts  # Check one document
  zodgen check --ignore "Internal*"    # Ignore declarations matching a glob`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "glob patterns of declaration names to ignore")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	for _, pattern := range checkIgnore {
		if !doublestar.ValidatePattern(pattern) {
			return &ExitError{Code: ExitCodeCheckError, Err: fmt.Errorf("invalid ignore pattern %q", pattern)}
		}
	}

	printVerbose("Check configuration:")
	printVerbose("  Output: %s", cfg.Output)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored: %s", strings.Join(checkIgnore, ", "))
	}

	results, err := convert(cmd.Context(), cfg, args)
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	sources := make([]string, len(results))
	for i, res := range results {
		sources[i] = res.Path
	}
	files, err := targets(cfg, sources)
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	checker := check.NewChecker(newWriter(cfg))
	defer checker.Close()

	failed, stale := 0, 0
	for _, res := range results {
		if !reportErrors(res) {
			failed++
			continue
		}

		path := files[res.Path]
		diff, err := checker.Check(res.Output, path)
		if err != nil {
			printError("%s: %v", path, err)
			failed++
			continue
		}
		diff = applyIgnorePatterns(diff, checkIgnore)

		if diff.IsEmpty() {
			printVerbose("%s: in sync", path)
			continue
		}
		stale++
		fmt.Fprint(cmd.OutOrStdout(), check.FormatDiff(diff))
	}

	switch {
	case failed > 0:
		return &ExitError{
			Code: ExitCodeCheckError,
			Err:  fmt.Errorf("%d of %d document(s) could not be checked", failed, len(results)),
		}
	case stale > 0:
		printInfo("Run 'zodgen generate' to update the generated files")
		return &ExitError{
			Code: ExitCodeDifference,
			Err:  fmt.Errorf("%d generated file(s) out of date", stale),
		}
	}

	printInfo("Generated files are up to date")
	return nil
}

// applyIgnorePatterns drops changes to declarations matching any pattern.
func applyIgnorePatterns(result *check.DiffResult, patterns []string) *check.DiffResult {
	if len(patterns) == 0 {
		return result
	}
	return result.Filter(func(c check.Change) bool {
		return !matchesAnyPattern(c.Name, patterns)
	})
}

// matchesAnyPattern checks if a name matches any of the given patterns.
func matchesAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
