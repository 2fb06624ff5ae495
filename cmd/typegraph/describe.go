package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"typegraph/internal/analyze"
)

func newDescribeCmd(root *rootOptions) *cobra.Command {
	var (
		dir      string
		typeName string
		fields   bool
		depth    int
	)

	cmd := &cobra.Command{
		Use:   "describe [packages...]",
		Short: "Print the descriptor of every exported named type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := root.renderForm()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			graph, err := analyze.NewAnalyzer(analyze.WithDir(dir)).LoadPackages(ctx, args...)
			if err != nil {
				return err
			}

			graph.Diagnostics.Log(ctx)

			out := cmd.OutOrStdout()
			stringer := analyze.NewTypeStringer(graph, form)

			describeType := func(info *analyze.TypeInfo) {
				fmt.Fprintf(out, "%s\t%s\t%s\n", info.ID, info.Kind, stringer.TypeString(info))
				if !fields {
					return
				}

				paths := stringer.BuildFieldPaths(info, depth)
				for _, path := range sortedKeys(paths) {
					fmt.Fprintf(out, "  %s\t%s\n", path, form.Render(paths[path].Descriptor))
				}
			}

			if typeName != "" {
				info, err := graph.ResolveStruct(typeName)
				if err != nil {
					return err
				}
				describeType(info)

				return nil
			}

			for _, pkgPath := range sortedKeys(graph.Packages) {
				for _, id := range graph.Packages[pkgPath].Types {
					describeType(graph.GetType(id))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to load packages from")
	cmd.Flags().StringVar(&typeName, "type", "", "describe only the named struct type")
	cmd.Flags().BoolVar(&fields, "fields", false, "also print struct field descriptors")
	cmd.Flags().IntVar(&depth, "depth", 1, "nesting depth of printed field paths")

	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
