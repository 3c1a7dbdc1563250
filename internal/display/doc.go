// Package display implements the persisted display record of one entity
// bundle in one view or form mode: which layout it uses, the layout
// settings, and where each field is placed.
//
// The record is loaded from and written to YAML. Its operations keep the
// record consistent with the selected layout and the field catalog by
// delegating to the reconcile package, and hand out projectors that apply
// the record to render trees.
package display
