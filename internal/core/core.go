// Package core defines the elaborated core syntax (Term): de Bruijn
// terms produced by internal/elaborate, consumed by internal/eval,
// internal/printer, and (indirectly, via zonking) any serializer a host
// chooses to write.
package core

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/ast"
	"github.com/elabkit/holecalc/internal/meta"
)

// Ix is a de Bruijn index, counting inward from the innermost binder
// (0 = the most recently bound variable). Indices make a Term portable:
// its meaning does not depend on where in a larger context it sits.
type Ix int

func (i Ix) String() string { return fmt.Sprintf("%d", int(i)) }

// Term is the closed sum of elaborated core syntax.
type Term interface {
	term()
}

// TV is a bound variable occurrence by index.
type TV struct {
	Ix Ix
}

// TLam is a lambda. Name is retained for printing only; it plays no role
// in equality or evaluation.
type TLam struct {
	Name Name
	Body Term
}

// TPi is a dependent function type (Name : Dom) → Cod.
type TPi struct {
	Name Name
	Dom  Term
	Cod  Term
}

// TApp is function application.
type TApp struct {
	Func Term
	Arg  Term
}

// TLet is `let Name : Type := Bound; Body`.
type TLet struct {
	Name  Name
	Type  Term
	Bound Term
	Body  Term
}

// TU is the single universe.
type TU struct{}

// TMeta is a standalone metavariable applied to no arguments — the
// solution, once known, closes over nothing.
type TMeta struct {
	Var meta.MetaVar
}

// TInsertedMeta is a metavariable inserted by the elaborator at a point
// whose surrounding binder telescope may be mentioned by the solution.
// Mask has one entry per slot of the environment at the insertion point;
// a Bound slot contributes that slot's variable as an argument, a
// Defined slot is skipped. See metastore.FreshMeta.
type TInsertedMeta struct {
	Var  meta.MetaVar
	Mask []meta.BD
}

// TSigma and TPair round out the term grammar but are never produced by
// internal/surface and are rejected by internal/elaborate wherever a
// raw AST could denote them (see SPEC_FULL.md). They exist so a future
// unifier/evaluator extension has a shape to extend.
type TSigma struct {
	Name Name
	Fst  Term
	Snd  Term
}

type TPair struct {
	Fst Term
	Snd Term
}

func (TV) term()            {}
func (TLam) term()          {}
func (TPi) term()           {}
func (TApp) term()          {}
func (TLet) term()          {}
func (TU) term()            {}
func (TMeta) term()         {}
func (TInsertedMeta) term() {}
func (TSigma) term()        {}
func (TPair) term()         {}

// Name mirrors ast.Name: elaborated binder names are printing-only and
// carry no semantic weight, but re-using the same underlying type keeps
// the core and raw grammars trivially convertible.
type Name = ast.Name
