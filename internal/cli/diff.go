// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/api2spec/zodgen/internal/check"
)

var diffValues bool

var diffCmd = &cobra.Command{
	Use:   "diff <old.ts> <new.ts>",
	Short: "Compare two generated TypeScript modules",
	Long: `Compare two generated TypeScript modules declaration by declaration.

Formatting and comments are ignored. The command exits with status 1 when
the modules differ, like diff(1).

Example:
  zodgen diff old/api.ts src/api.ts           # List changed declarations
  zodgen diff --values old/api.ts src/api.ts  # Also show both sides`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffValues, "values", false, "show the old and new text of modified declarations")
}

func runDiff(cmd *cobra.Command, args []string) error {
	parser := check.NewParser()
	defer parser.Close()

	before, err := parser.ParseFile(args[0])
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}
	after, err := parser.ParseFile(args[1])
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	for _, e := range after.SyntaxErrors {
		printError("%s:%s", args[1], e)
	}

	result := check.Diff(before, after)
	if result.IsEmpty() {
		printInfo("No differences")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, check.FormatDiff(result))

	if diffValues {
		changes := make([]check.Change, 0, len(result.Changes))
		for _, c := range result.Changes {
			if c.Type == check.DiffTypeModified {
				changes = append(changes, c)
			}
		}
		sort.SliceStable(changes, func(i, j int) bool { return changes[i].Name < changes[j].Name })

		for _, c := range changes {
			fmt.Fprintf(out, "\n%s %s\n", c.Kind, c.Name)
			fmt.Fprintf(out, "  - %s\n", c.Existing)
			fmt.Fprintf(out, "  + %s\n", c.Generated)
		}
	}

	return &ExitError{Code: ExitCodeDifference, Err: fmt.Errorf("%s and %s differ", args[0], args[1])}
}
