// Package value defines the semantic domain: weak-head normal forms
// produced and consumed by internal/eval's normalisation-by-evaluation
// machinery, and inspected (after forcing) by internal/unify.
//
// A Value never contains a free de Bruijn index; local variables are
// represented by level (Lvl), which stays valid as the surrounding
// context is extended — unlike an index, a level does not need
// shifting when a closure is later applied under a deeper context.
package value

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/meta"
)

// Lvl is a de Bruijn level, counting outward from the outermost binder.
type Lvl int

func (l Lvl) String() string { return fmt.Sprintf("%d", int(l)) }

// Value is the closed sum of weak-head normal forms.
type Value interface {
	value()
}

// Spine is an ordered sequence of arguments applied to a neutral head,
// in application order (the first argument applied is Spine[0]).
type Spine []Value

// VFlex is an unsolved metavariable applied to a spine. It may become
// any other Value shape once its meta is solved; internal/eval.Force is
// the only sanctioned way to look through it.
type VFlex struct {
	Var   meta.MetaVar
	Spine Spine
}

// VRigid is a locally bound variable, identified by level, applied to a
// spine. Invariant: for any VRigid reachable during elaboration,
// Lvl < the current context's level.
type VRigid struct {
	Lvl   Lvl
	Spine Spine
}

// Vλ is a lambda value: a name (printing only) plus a suspended Closure.
type VLam struct {
	Name    core.Name
	Closure Closure
}

// VPi is a dependent function type; the domain is a value (evaluated
// eagerly), the codomain a suspended Closure.
type VPi struct {
	Name   core.Name
	Domain Value
	Cod    Closure
}

// VU is the single universe.
type VU struct{}

// VSigma and VPair mirror core.TSigma/core.TPair — present in the value
// grammar; eval.Eval produces them only from a TSigma/TPair term, which
// elaboration never emits (see core.TSigma's doc comment).
type VSigma struct {
	Name core.Name
	Fst  Value
	Snd  Closure
}

type VPair struct {
	Fst, Snd Value
}

func (VFlex) value()  {}
func (VRigid) value() {}
func (VLam) value()   {}
func (VPi) value()    {}
func (VU) value()     {}
func (VSigma) value() {}
func (VPair) value()  {}

// Closure pairs an environment captured at creation time with a core
// term to be evaluated once that environment is extended by one more
// value (the applied argument, the let-bound value, or a fresh rigid
// introduced while quoting or unifying).
type Closure struct {
	Env  Env
	Body core.Term
}

// Env is an ordered sequence of values for local bindings: a bound
// variable holds VRigid{lvl, nil}, a let-defined variable holds the
// value of its definition. Extension is append; indexing by Ix counts
// from the right (innermost = index 0), indexing by Lvl counts from the
// left (outermost = level 0).
type Env []Value

// AtIx returns the value bound at de Bruijn index ix.
func (e Env) AtIx(ix core.Ix) Value {
	return e[len(e)-1-int(ix)]
}

// AtLvl returns the value bound at de Bruijn level l.
func (e Env) AtLvl(l Lvl) Value {
	return e[int(l)]
}

// Extend returns a new Env with v appended, leaving e untouched. NbE
// never mutates a captured closure's environment in place — every
// extension is a fresh append, which is what lets the same Closure be
// applied more than once (e.g. during quoting and again during
// unification) without the two call sites observing each other's
// extension.
func (e Env) Extend(v Value) Env {
	out := make(Env, len(e), len(e)+1)
	copy(out, e)
	return append(out, v)
}

// Lvl2Ix converts a de Bruijn level, observed at depth lvl, into a de
// Bruijn index usable in a Term quoted at that same depth.
func Lvl2Ix(lvl, x Lvl) core.Ix {
	return core.Ix(int(lvl) - int(x) - 1)
}
