package reconcile

import "fmt"

//go:generate go tool stringer -type=ChangeKind -linecomment -output=change_kind_string.go

// ChangeKind classifies one reconciliation step applied to a field.
type ChangeKind int

const (
	// ChangeRehomed moved a field out of a region the new layout lacks.
	ChangeRehomed ChangeKind = iota // rehomed
	// ChangeDefaulted gave a field without a region the default region.
	ChangeDefaulted // defaulted
	// ChangeAdded placed a field that had no assignment yet.
	ChangeAdded // added
	// ChangeRemoved dropped the assignment of a missing or locked field.
	ChangeRemoved // removed
	// ChangeHidden moved a field to the hidden list.
	ChangeHidden // hidden
)

// Change records what reconciliation did to one field.
type Change struct {
	Kind   ChangeKind
	Field  string
	From   string
	To     string
	Weight int
	Reason string
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeRehomed:
		return fmt.Sprintf("%s: %s -> %s (weight %d)", c.Field, c.From, c.To, c.Weight)
	case ChangeDefaulted, ChangeAdded:
		return fmt.Sprintf("%s: %s to %s (weight %d)", c.Field, c.Kind, c.To, c.Weight)
	case ChangeRemoved:
		return fmt.Sprintf("%s: removed (%s)", c.Field, c.Reason)
	default:
		return fmt.Sprintf("%s: %s", c.Field, c.Kind)
	}
}
