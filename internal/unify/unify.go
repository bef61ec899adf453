// Package unify implements component G of the elaboration kernel:
// higher-order pattern unification between semantic values, driven by
// internal/elaborate and writing its solutions back through
// internal/metastore.
package unify

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/errors"
	"github.com/elabkit/holecalc/internal/eval"
	"github.com/elabkit/holecalc/internal/meta"
	"github.com/elabkit/holecalc/internal/metastore"
	"github.com/elabkit/holecalc/internal/value"
)

// Unify makes left and right equal at depth lvl, possibly solving
// metas in metas. Both values are forced before any case analysis.
// Unification has no backtracking: the first failure is returned
// immediately as a *errors.Report.
func Unify(metas *metastore.MetaCxt, lvl value.Lvl, left, right value.Value) error {
	left = eval.Force(metas, left)
	right = eval.Force(metas, right)

	switch l := left.(type) {
	case value.VU:
		if _, ok := right.(value.VU); ok {
			return nil
		}
		if rf, ok := right.(value.VFlex); ok {
			return solve(metas, lvl, rf.Var, rf.Spine, left)
		}
		return rigidMismatch(metas, lvl, left, right)

	case value.VPi:
		r, ok := right.(value.VPi)
		if !ok {
			if rl, ok := right.(value.VLam); ok {
				return unifyPiAgainstLam(metas, lvl, l, rl, false)
			}
			if rf, ok := right.(value.VFlex); ok {
				return solve(metas, lvl, rf.Var, rf.Spine, left)
			}
			return rigidMismatch(metas, lvl, left, right)
		}
		if err := Unify(metas, lvl, l.Domain, r.Domain); err != nil {
			return err
		}
		fresh := value.VRigid{Lvl: lvl}
		lb := eval.ApplyClosure(metas, l.Cod, fresh)
		rb := eval.ApplyClosure(metas, r.Cod, fresh)
		return Unify(metas, lvl+1, lb, rb)

	case value.VLam:
		switch r := right.(type) {
		case value.VLam:
			fresh := value.VRigid{Lvl: lvl}
			lb := eval.ApplyClosure(metas, l.Closure, fresh)
			rb := eval.ApplyClosure(metas, r.Closure, fresh)
			return Unify(metas, lvl+1, lb, rb)
		default:
			// eta-expand the non-lambda side.
			fresh := value.VRigid{Lvl: lvl}
			lb := eval.ApplyClosure(metas, l.Closure, fresh)
			rb := eval.Apply(metas, right, fresh)
			return Unify(metas, lvl+1, lb, rb)
		}

	case value.VRigid:
		r, ok := right.(value.VRigid)
		if !ok {
			if rlam, ok := right.(value.VLam); ok {
				return unifyLamAgainstNonLam(metas, lvl, rlam, left)
			}
			if rf, ok := right.(value.VFlex); ok {
				return solve(metas, lvl, rf.Var, rf.Spine, left)
			}
			return rigidMismatch(metas, lvl, left, right)
		}
		if l.Lvl != r.Lvl {
			return rigidMismatch(metas, lvl, left, right)
		}
		return unifySpines(metas, lvl, l.Spine, r.Spine)

	case value.VFlex:
		r, ok := right.(value.VFlex)
		if ok && r.Var == l.Var {
			return unifySpines(metas, lvl, l.Spine, r.Spine)
		}
		return solve(metas, lvl, l.Var, l.Spine, right)

	default:
		if rf, ok := right.(value.VFlex); ok {
			return solve(metas, lvl, rf.Var, rf.Spine, left)
		}
		return rigidMismatch(metas, lvl, left, right)
	}
}

// unifyPiAgainstLam handles the (non-lambda, lambda) ordering for a Pi
// type being compared against a lambda value — this can only arise from
// an ill-typed program reaching the unifier from an invariant violation
// elsewhere, since VPi and VLam never denote the same type in a
// well-typed elaboration; kept only so the dispatch above is total.
func unifyPiAgainstLam(metas *metastore.MetaCxt, lvl value.Lvl, pi value.VPi, lam value.VLam, _ bool) error {
	return rigidMismatch(metas, lvl, pi, lam)
}

func unifyLamAgainstNonLam(metas *metastore.MetaCxt, lvl value.Lvl, lam value.VLam, other value.Value) error {
	fresh := value.VRigid{Lvl: lvl}
	lb := eval.ApplyClosure(metas, lam.Closure, fresh)
	rb := eval.Apply(metas, other, fresh)
	return Unify(metas, lvl+1, lb, rb)
}

// unifySpines compares two spines pointwise, right-to-left (the same
// order application and quote use), requiring equal length.
func unifySpines(metas *metastore.MetaCxt, lvl value.Lvl, a, b value.Spine) error {
	if len(a) != len(b) {
		return errors.WrapReport(&errors.Report{
			Schema:  errors.Schema,
			Code:    errors.SpineLengthMismatch,
			Phase:   "unify",
			Message: fmt.Sprintf("spine length mismatch: %d vs %d", len(a), len(b)),
		})
	}
	for i := len(a) - 1; i >= 0; i-- {
		if err := Unify(metas, lvl, a[i], b[i]); err != nil {
			return err
		}
	}
	return nil
}

func rigidMismatch(metas *metastore.MetaCxt, lvl value.Lvl, left, right value.Value) error {
	lt := eval.Quote(metas, lvl, left)
	rt := eval.Quote(metas, lvl, right)
	return errors.WrapReport(&errors.Report{
		Schema:  errors.Schema,
		Code:    errors.RigidMismatch,
		Phase:   "unify",
		Message: fmt.Sprintf("cannot unify %T with %T", left, right),
		Data: map[string]any{
			"expected_shape": fmt.Sprintf("%T", left),
			"actual_shape":   fmt.Sprintf("%T", right),
			"expected":       fmt.Sprintf("%v", lt),
			"actual":         fmt.Sprintf("%v", rt),
		},
	})
}

// partialRenaming is the scope produced by checking a flex's spine: a
// map from a rhs-side ("Δ", cod) level to the solution's own ("Γ", dom)
// level it corresponds to. dom and cod start apart (dom = number of
// pattern variables, cod = the ambient depth rhs lives at) and grow in
// lockstep, one pair at a time, every time renaming passes under a
// binder on the rhs — see lift.
type partialRenaming struct {
	occurs meta.MetaVar
	dom    value.Lvl
	cod    value.Lvl
	ren    map[value.Lvl]value.Lvl // Δ-level -> Γ-level
}

// lift extends pr by one matching pair of variables, for a binder
// opened while renaming: the value fed to the unfolded closure (a fresh
// VRigid at the current cod) and the variable that must stand for it in
// the solution (a fresh Γ-level at the current dom) denote the same
// binder, so they alias.
func (pr *partialRenaming) lift() *partialRenaming {
	ren := make(map[value.Lvl]value.Lvl, len(pr.ren)+1)
	for k, v := range pr.ren {
		ren[k] = v
	}
	ren[pr.cod] = pr.dom
	return &partialRenaming{occurs: pr.occurs, dom: pr.dom + 1, cod: pr.cod + 1, ren: ren}
}

// invert builds a partial renaming from m's spine: every argument must
// force to a variable applied to nothing, and each such variable must
// be distinct. lvl is the ambient context depth at the call to Unify
// that produced this solve, i.e. rhs's own depth.
func invert(metas *metastore.MetaCxt, lvl value.Lvl, m meta.MetaVar, sp value.Spine) (*partialRenaming, error) {
	ren := make(map[value.Lvl]value.Lvl, len(sp))
	for i, arg := range sp {
		forced := eval.Force(metas, arg)
		rigid, ok := forced.(value.VRigid)
		if !ok || len(rigid.Spine) != 0 {
			return nil, errors.WrapReport(&errors.Report{
				Schema:  errors.Schema,
				Code:    errors.NonPattern,
				Phase:   "unify",
				Message: fmt.Sprintf("solving %s: spine argument %d is not a bound variable", m, i),
			})
		}
		if _, dup := ren[rigid.Lvl]; dup {
			return nil, errors.WrapReport(&errors.Report{
				Schema:  errors.Schema,
				Code:    errors.NonPattern,
				Phase:   "unify",
				Message: fmt.Sprintf("solving %s: spine argument %d repeats a bound variable", m, i),
			})
		}
		ren[rigid.Lvl] = value.Lvl(i)
	}
	return &partialRenaming{occurs: m, dom: value.Lvl(len(sp)), cod: lvl, ren: ren}, nil
}

// rename reads rhs back into a term valid under the meta's own
// (pattern-variable-only) context.
func rename(metas *metastore.MetaCxt, pr *partialRenaming, rhs value.Value) (core.Term, error) {
	rhs = eval.Force(metas, rhs)
	switch v := rhs.(type) {
	case value.VFlex:
		if v.Var == pr.occurs {
			return nil, errors.WrapReport(&errors.Report{
				Schema:  errors.Schema,
				Code:    errors.OccursCheck,
				Phase:   "unify",
				Message: fmt.Sprintf("%s occurs in its own solution", v.Var),
			})
		}
		return renameSpine(metas, pr, core.TMeta{Var: v.Var}, v.Spine)

	case value.VRigid:
		local, ok := pr.ren[v.Lvl]
		if !ok {
			return nil, errors.WrapReport(&errors.Report{
				Schema:  errors.Schema,
				Code:    errors.ScopeError,
				Phase:   "unify",
				Message: fmt.Sprintf("variable at level %d escapes the scope of %s", v.Lvl, pr.occurs),
			})
		}
		ix := value.Lvl2Ix(pr.dom, local)
		return renameSpine(metas, pr, core.TV{Ix: ix}, v.Spine)

	case value.VLam:
		lifted := pr.lift()
		fresh := value.VRigid{Lvl: pr.cod}
		body := eval.ApplyClosure(metas, v.Closure, fresh)
		t, err := rename(metas, lifted, body)
		if err != nil {
			return nil, err
		}
		return core.TLam{Name: v.Name, Body: t}, nil

	case value.VPi:
		domT, err := rename(metas, pr, v.Domain)
		if err != nil {
			return nil, err
		}
		lifted := pr.lift()
		fresh := value.VRigid{Lvl: pr.cod}
		cod := eval.ApplyClosure(metas, v.Cod, fresh)
		codT, err := rename(metas, lifted, cod)
		if err != nil {
			return nil, err
		}
		return core.TPi{Name: v.Name, Dom: domT, Cod: codT}, nil

	case value.VU:
		return core.TU{}, nil

	default:
		return nil, fmt.Errorf("unify: cannot rename value %T", rhs)
	}
}

func renameSpine(metas *metastore.MetaCxt, pr *partialRenaming, head core.Term, sp value.Spine) (core.Term, error) {
	t := head
	for _, arg := range sp {
		at, err := rename(metas, pr, arg)
		if err != nil {
			return nil, err
		}
		t = core.TApp{Func: t, Arg: at}
	}
	return t, nil
}

// solve implements `m sp := rhs`: build a partial renaming from sp,
// rename rhs into the meta's own scope, wrap the result in as many
// lambdas as sp has entries, evaluate under the empty environment, and
// record the solution.
func solve(metas *metastore.MetaCxt, lvl value.Lvl, m meta.MetaVar, sp value.Spine, rhs value.Value) error {
	pr, err := invert(metas, lvl, m, sp)
	if err != nil {
		return err
	}
	body, err := rename(metas, pr, rhs)
	if err != nil {
		return err
	}
	solution := body
	for i := 0; i < len(sp); i++ {
		solution = core.TLam{Name: "x", Body: solution}
	}
	v := eval.Eval(metas, nil, solution)
	metas.Solve(m, v)
	return nil
}
