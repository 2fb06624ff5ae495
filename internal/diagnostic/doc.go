// Package diagnostic collects structured warnings and errors produced while
// describing packages and building descriptor catalogs.
//
// Key capabilities:
//   - Unsupported type warnings from the package analyzer
//   - Catalog entry errors with the offending field
//   - A combined error for callers that only need pass/fail
package diagnostic
