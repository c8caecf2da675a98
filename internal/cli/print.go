// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the generated module to stdout",
	Long: `Print the generated module of one OpenAPI document to standard output.

Without an argument the configured input must resolve to exactly one
document. Nothing is written to disk.

Example:
  zodgen print api.yaml               # Print the TypeScript module
  zodgen print api.yaml -f json       # Print the JSON manifest
  zodgen print api.yaml | less        # Page through the output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printVerbose("Print configuration:")
	printVerbose("  Format: %s", cfg.Format)

	results, err := convert(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}
	if len(results) != 1 {
		return fmt.Errorf("print needs exactly one document, found %d", len(results))
	}

	res := results[0]
	if !reportErrors(res) {
		return fmt.Errorf("failed to convert %s", res.Path)
	}

	data, err := newWriter(cfg).Render(res.Output, cfg.Format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
