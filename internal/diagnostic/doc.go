// Package diagnostic provides coded errors, warnings and infos produced while
// validating region catalogs, assignment maps and display records.
//
// Key capabilities:
//   - Stable codes per finding (e.g. "duplicate_region", "unknown_field")
//   - Scope and field attribution for every finding
//   - "did you mean" suggestions
//   - ConfigurationError, which folds error findings into one returned error
package diagnostic
