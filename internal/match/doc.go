// Package match ranks type names by edit distance so that lookups which
// miss can offer the closest registered names.
//
// Key functions:
//   - Normalize: folds a type name for fuzzy comparison
//   - Distance: computes edit distance between strings
//   - Closest: picks the best candidates for an unresolved name
package match
