// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/api2spec/zodgen/internal/graph"
	"github.com/api2spec/zodgen/internal/openapi"
)

var graphJSON bool

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Show the schema dependency graph",
	Long: `Show the component schemas of a document in emission order, with their
dependency depth, direct dependencies and circular membership.

Example:
  zodgen graph api.yaml               # Table
  zodgen graph api.yaml --json        # Machine-readable`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&graphJSON, "json", false, "print JSON instead of a table")
}

// graphEntry is one schema of the graph output.
type graphEntry struct {
	Name       string   `json:"name"`
	Ref        string   `json:"ref"`
	Depth      int      `json:"depth"`
	Circular   bool     `json:"circular,omitempty"`
	Depends    []string `json:"depends,omitempty"`
	Dependents []string `json:"dependents,omitempty"`
}

func runGraph(cmd *cobra.Command, args []string) error {
	doc, err := openapi.Load(args[0])
	if err != nil {
		return err
	}

	resolver := openapi.NewResolver(doc)
	g, err := graph.Build(resolver, doc.SchemaRefs())
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	entries := graphEntries(g)
	if graphJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	return writeGraphTable(cmd.OutOrStdout(), entries)
}

func graphEntries(g *graph.Graph) []graphEntry {
	names := func(refs []string) []string {
		out := make([]string, 0, len(refs))
		for _, ref := range refs {
			if n, ok := g.Node(ref); ok {
				out = append(out, n.Name)
			}
		}
		return out
	}

	order := graph.Order(g)
	entries := make([]graphEntry, 0, len(order))
	for _, ref := range order {
		n, ok := g.Node(ref)
		if !ok {
			continue
		}
		entries = append(entries, graphEntry{
			Name:       n.Name,
			Ref:        n.Ref,
			Depth:      n.Depth,
			Circular:   n.Circular,
			Depends:    names(n.Direct),
			Dependents: names(n.Dependents),
		})
	}
	return entries
}

func writeGraphTable(w io.Writer, entries []graphEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCHEMA\tDEPTH\tCIRCULAR\tDEPENDS ON")
	for _, e := range entries {
		circular := ""
		if e.Circular {
			circular = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.Name, e.Depth, circular, strings.Join(e.Depends, ", "))
	}
	return tw.Flush()
}
