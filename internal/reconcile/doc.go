// Package reconcile recomputes the field-to-region assignments of a display
// when the set of valid regions (a layout switch) or the set of fields (a
// field added or removed) changes.
//
// The result always satisfies:
//   - every assigned field sits in a region of the new catalog;
//   - no assignment is dropped because of a region change, only because its
//     field disappeared or stopped being configurable;
//   - reconciling the result again with the same catalogs changes nothing.
//
// Inputs are never mutated and a failed call returns no partial result.
package reconcile
