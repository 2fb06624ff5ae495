// Package main provides the CLI entrypoint for typegraph.
//
// typegraph describes Go types as structural descriptor graphs:
//   - describe: load Go packages and print the descriptor of every named type
//   - render: build a YAML or HCL descriptor catalog and print its entries
//   - parse: read a rendered descriptor name back and print all renderings
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
