// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/zodgen/internal/config"
	"github.com/api2spec/zodgen/internal/scanner"
)

var (
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new zodgen configuration file",
	Long: `Initialize a new zodgen configuration file in the current directory.

This command creates a zodgen.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Finds the OpenAPI documents under the current directory
  - Places the output in src/ when the project has one
  - Keeps node_modules and .git out of the search

Example:
  zodgen init                  # Detect documents and create config
  zodgen init -o src/api.ts    # Set the output file
  zodgen init --force          # Overwrite existing config
  zodgen init --interactive    # Interactive mode with prompts`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "zodgen.yaml"

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()

	docs := detectDocuments(projectRoot)
	switch len(docs) {
	case 0:
		printInfo("No OpenAPI documents found. Using the current directory.")
	default:
		cfg.Input.Paths = docs
		printInfo("Found %d OpenAPI document(s)", len(docs))
		printVerbose("Documents: %s", strings.Join(docs, ", "))
	}

	cfg.Output = detectOutput(projectRoot, cfg.Output)
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}

	if initInteractive && isTerminal(cmd.InOrStdin()) {
		cfg, err = interactiveInit(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Paths: %s", strings.Join(cfg.Input.Paths, ", "))

	return nil
}

// detectDocuments returns the OpenAPI documents under root, relative to it.
func detectDocuments(root string) []string {
	docs, err := scanner.New(scanner.Config{BasePath: root}).Scan()
	if err != nil {
		return nil
	}

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		rel, err := filepath.Rel(root, doc.Path)
		if err != nil {
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

// detectOutput places the output file in the first common source directory.
func detectOutput(root, name string) string {
	for _, dir := range []string{"src/api", "src", "lib"} {
		if stat, err := os.Stat(filepath.Join(root, dir)); err == nil && stat.IsDir() {
			return dir + "/" + name
		}
	}
	return name
}

// isTerminal checks if r is a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts for configuration options. Empty answers keep the
// current value.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) (*config.Config, error) {
	reader := bufio.NewReader(in)

	ask := func(prompt, current string) (string, error) {
		fmt.Fprintf(out, "%s [%s]: ", prompt, current)
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimSpace(answer), nil
	}

	paths, err := ask("Input paths (comma separated)", strings.Join(cfg.Input.Paths, ","))
	if err != nil {
		return nil, err
	}
	if paths != "" {
		cfg.Input.Paths = splitList(paths)
	}

	outputFile, err := ask("Output file", cfg.Output)
	if err != nil {
		return nil, err
	}
	if outputFile != "" {
		cfg.Output = outputFile
	}

	outputFormat, err := ask("Output format (ts/json)", cfg.Format)
	if err != nil {
		return nil, err
	}
	if outputFormat != "" {
		cfg.Format = outputFormat
	}

	strict, err := ask("Reject unknown object keys (y/n)", yesNo(cfg.Conversion.Strict))
	if err != nil {
		return nil, err
	}
	if strict != "" {
		cfg.Conversion.Strict = parseYes(strict)
	}

	threshold, err := ask("Complexity threshold for hoisting", strconv.Itoa(cfg.Conversion.ComplexityThreshold))
	if err != nil {
		return nil, err
	}
	if threshold != "" {
		n, err := strconv.Atoi(threshold)
		if err != nil {
			return nil, fmt.Errorf("invalid complexity threshold %q", threshold)
		}
		cfg.Conversion.ComplexityThreshold = n
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func parseYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true":
		return true
	}
	return false
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# zodgen configuration file
# Converts OpenAPI documents into TypeScript types and Zod validators.

`
	return append([]byte(header), data...), nil
}
