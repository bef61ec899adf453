// Package meta defines the identifiers shared by the core syntax, the
// semantic domain, and the metavariable store: MetaVar (a dense,
// nonnegative meta identifier) and BD (the Bound/Defined binder mask).
//
// This is deliberately the lowest package in the module's import graph
// — core, value, metastore, eval and unify all depend on it, and it
// depends on nothing — so that MetaVar can appear in core.Term
// (TMeta/TInsertedMeta) without core importing the metavariable store
// itself, and the store can in turn hold core.Term-producing logic
// without an import cycle back to core.
package meta

import "fmt"

// MetaVar is a fresh metavariable identifier, assigned in allocation
// order starting at 0.
type MetaVar int

func (m MetaVar) String() string {
	return fmt.Sprintf("?%d", int(m))
}

// BD marks one slot of a binder telescope as either carrying a bound
// variable (its rigid value is opaque and must be preserved as an
// argument to any meta inserted at this point) or a let-definition
// (its value is already determined and can be skipped).
type BD int

const (
	Bound BD = iota
	Defined
)

func (b BD) String() string {
	if b == Bound {
		return "bound"
	}
	return "defined"
}
