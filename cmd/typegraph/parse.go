package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"typegraph/descriptor"
	"typegraph/internal/analyze"
)

func newParseCmd() *cobra.Command {
	var (
		dir      string
		packages []string
	)

	cmd := &cobra.Command{
		Use:   "parse <descriptor>",
		Short: "Parse a rendered descriptor and print every rendering of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := descriptor.Builtins()

			if len(packages) > 0 {
				graph, err := analyze.NewAnalyzer(analyze.WithDir(dir)).LoadPackages(cmd.Context(), packages...)
				if err != nil {
					return err
				}
				resolver = descriptor.ChainResolvers(resolver, graph.Registry)
			}

			n, err := descriptor.Parse(args[0], resolver)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "qualified\t%s\n", descriptor.QualifiedName(n))
			fmt.Fprintf(out, "simple\t%s\n", descriptor.SimpleName(n))
			fmt.Fprintf(out, "reflective\t%s\n", descriptor.ReflectiveName(n))

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to load packages from")
	cmd.Flags().StringSliceVar(&packages, "packages", nil, "packages whose types may be named")

	return cmd
}
