// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/api2spec/zodgen/internal/config"
	"github.com/api2spec/zodgen/internal/scanner"
	"github.com/api2spec/zodgen/internal/watch"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Regenerate when OpenAPI documents change",
	Long: `Watch converts the documents once, then regenerates whenever a YAML or
JSON file under the watched paths changes. Conversion errors are reported
and watching continues.

Example:
  zodgen watch                        # Watch the configured input paths
  zodgen watch specs/ -o src/api.ts   # Watch one directory
  zodgen watch --debounce 1000        # Wait 1s before regenerating`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: 500)")
	watchCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns to include")
	watchCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
	watchCmd.Flags().BoolVar(&generateContinueOnError, "continue-on-error", false, "skip failing schemas and report them at the end")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg)
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Input.Paths
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generateOnce(cmd, cfg, args); err != nil {
		printError("%v", err)
	}

	w, err := watch.New(watch.Options{
		Paths:    paths,
		Debounce: time.Duration(cfg.Watch.Debounce) * time.Millisecond,
		Match:    watchFilter(cfg, args),
	})
	if err != nil {
		return err
	}
	defer w.Close()

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		for _, path := range changed {
			printVerbose("Changed: %s", path)
		}
		if err := generateOnce(cmd, cfg, args); err != nil {
			printError("%v", err)
		}
		return nil
	})
}

// watchFilter accepts YAML and JSON files other than the generated outputs.
func watchFilter(cfg *config.Config, args []string) func(string) bool {
	outputs := map[string]bool{absPath(cfg.Output): true}
	if sources, err := discover(cfg, args); err == nil {
		if files, err := targets(cfg, sources); err == nil {
			for _, target := range files {
				outputs[absPath(target)] = true
			}
		}
	}

	return func(path string) bool {
		if scanner.DetectFormat(path) == "" {
			return false
		}
		return !outputs[absPath(path)]
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
