package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"typegraph/internal/catalog"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "render <catalog>",
		Short: "Build a descriptor catalog and print its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := root.renderForm()
			if err != nil {
				return err
			}

			c, err := catalog.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dumper := spew.ConfigState{Indent: "  ", DisableMethods: true, SortKeys: true}

			for _, name := range c.Names() {
				n, _ := c.Lookup(name)
				fmt.Fprintf(out, "%s\t%s\n", name, form.Render(n))

				if dump {
					dumper.Fdump(out, n)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the frozen descriptor graph of every entry")

	return cmd
}
