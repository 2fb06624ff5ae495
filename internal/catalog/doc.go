// Package catalog builds named descriptor graphs from declarative files.
//
// A catalog lists entries, each staging one descriptor:
//
//	version: "1"
//	packages: ["typegraph/store"]
//	descriptors:
//	  - name: tree
//	    represented: store.Category
//	    children: ["@tree", "slice<int>", "?"]
//	    overrides:
//	      root: "@leaf"
//
// Component and override values are either a reference to another entry
// ("@name"), the absent slot "?" (components only), or a descriptor in the
// rendered name grammar. References may form cycles. Type names resolve
// against the builtin types and the types of the listed packages.
//
// Catalogs are read from YAML (.yaml, .yml) or HCL (.hcl) files.
package catalog
