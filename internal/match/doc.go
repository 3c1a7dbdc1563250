// Package match ranks known names against an unknown one so that errors about
// missing fields, regions and layouts can carry "did you mean" suggestions.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so "field_body" ~ "FieldBody"
//   - Levenshtein: edit distance between two strings
//   - Suggest: best candidates above a similarity threshold
package match
