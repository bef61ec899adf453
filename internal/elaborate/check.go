package elaborate

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/ast"
	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/errors"
	"github.com/elabkit/holecalc/internal/eval"
	"github.com/elabkit/holecalc/internal/metastore"
	"github.com/elabkit/holecalc/internal/unify"
	"github.com/elabkit/holecalc/internal/value"
)

// Check elaborates raw against the expected type ty. ty is forced
// before pattern matching.
func Check(metas *metastore.MetaCxt, cxt *Cxt, raw ast.Raw, ty value.Value) (core.Term, error) {
	leave := cxt.enter()
	defer leave()
	if cxt.Tracer != nil {
		cxt.Tracer.Check(cxt.depth, fmt.Sprintf("%T", raw), eval.Quote(metas, cxt.Lvl(), ty))
	}

	switch r := raw.(type) {
	case ast.RSrcPos:
		cxt.SetPos(r.Span)
		return Check(metas, cxt, r.Raw, ty)

	case ast.RLam:
		pi, ok := eval.Force(metas, ty).(value.VPi)
		if !ok {
			return checkFallback(metas, cxt, raw, ty)
		}
		bodyTy := eval.ApplyClosure(metas, pi.Cod, value.VRigid{Lvl: cxt.Lvl()})
		body, err := Bind(cxt, r.Name, pi.Domain, func(c *Cxt) (core.Term, error) {
			return Check(metas, c, r.Body, bodyTy)
		})
		if err != nil {
			return nil, err
		}
		return core.TLam{Name: r.Name, Body: body}, nil

	case ast.RLet:
		return checkLet(metas, cxt, r, ty)

	case ast.RHole:
		return metas.FreshMeta(cxt.Mask())

	default:
		return checkFallback(metas, cxt, raw, ty)
	}
}

// checkFallback is the catch-all case: infer raw and unify its
// inferred type against the expectation.
func checkFallback(metas *metastore.MetaCxt, cxt *Cxt, raw ast.Raw, ty value.Value) (core.Term, error) {
	t, inferred, err := Infer(metas, cxt, raw)
	if err != nil {
		return nil, err
	}
	if err := unify.Unify(metas, cxt.Lvl(), ty, inferred); err != nil {
		if rep, ok := errors.AsReport(err); ok {
			return nil, errors.WrapReport(rep.AtSpan(cxt.Pos()))
		}
		return nil, err
	}
	return t, nil
}

func checkLet(metas *metastore.MetaCxt, cxt *Cxt, r ast.RLet, ty value.Value) (core.Term, error) {
	aTerm, err := Check(metas, cxt, r.Type, value.VU{})
	if err != nil {
		return nil, err
	}
	va := eval.Eval(metas, cxt.Env(), aTerm)
	tTerm, err := Check(metas, cxt, r.Bound, va)
	if err != nil {
		return nil, err
	}
	vt := eval.Eval(metas, cxt.Env(), tTerm)
	uTerm, err := Define(cxt, r.Name, vt, va, func(c *Cxt) (core.Term, error) {
		return Check(metas, c, r.Body, ty)
	})
	if err != nil {
		return nil, err
	}
	return core.TLet{Name: r.Name, Type: aTerm, Bound: tTerm, Body: uTerm}, nil
}
