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

// CloseVal closes a value computed under cxt extended by one more
// binder into a Closure reusable later (e.g. as a Π's codomain), by
// quoting it back to a term at lvl+1 and pairing that term with cxt's
// current (unextended) environment.
func CloseVal(metas *metastore.MetaCxt, cxt *Cxt, v value.Value) value.Closure {
	t := eval.Quote(metas, cxt.Lvl()+1, v)
	return value.Closure{Env: cxt.Env(), Body: t}
}

// Infer synthesizes a term and its type from raw.
func Infer(metas *metastore.MetaCxt, cxt *Cxt, raw ast.Raw) (core.Term, value.Value, error) {
	leave := cxt.enter()
	defer leave()
	var done func(string)
	if cxt.Tracer != nil {
		done = cxt.Tracer.Infer(cxt.depth, fmt.Sprintf("%T", raw))
	}

	t, ty, err := inferInner(metas, cxt, raw)
	if err == nil && done != nil {
		done(fmt.Sprintf("%v : %v", t, eval.Quote(metas, cxt.Lvl(), ty)))
	}
	return t, ty, err
}

func inferInner(metas *metastore.MetaCxt, cxt *Cxt, raw ast.Raw) (core.Term, value.Value, error) {
	switch r := raw.(type) {
	case ast.RSrcPos:
		cxt.SetPos(r.Span)
		return Infer(metas, cxt, r.Raw)

	case ast.RVar:
		ix, ty, ok := cxt.Lookup(r.Name)
		if !ok {
			return nil, nil, errors.WrapReport((&errors.Report{
				Schema:  errors.Schema,
				Code:    errors.UnboundName,
				Phase:   "elaborate",
				Message: fmt.Sprintf("unbound name %q", string(r.Name)),
			}).AtSpan(cxt.Pos()))
		}
		return core.TV{Ix: ix}, ty, nil

	case ast.RU:
		return core.TU{}, value.VU{}, nil

	case ast.RHole:
		aTerm, err := metas.FreshMeta(cxt.Mask())
		if err != nil {
			return nil, nil, err
		}
		a := eval.Eval(metas, cxt.Env(), aTerm)
		t, err := metas.FreshMeta(cxt.Mask())
		if err != nil {
			return nil, nil, err
		}
		return t, a, nil

	case ast.RPi:
		aTerm, err := Check(metas, cxt, r.Dom, value.VU{})
		if err != nil {
			return nil, nil, err
		}
		va := eval.Eval(metas, cxt.Env(), aTerm)
		bTerm, err := Bind(cxt, r.Name, va, func(c *Cxt) (core.Term, error) {
			return Check(metas, c, r.Cod, value.VU{})
		})
		if err != nil {
			return nil, nil, err
		}
		return core.TPi{Name: r.Name, Dom: aTerm, Cod: bTerm}, value.VU{}, nil

	case ast.RLam:
		return inferLam(metas, cxt, r)

	case ast.RApp:
		return inferApp(metas, cxt, r)

	case ast.RLet:
		return inferLet(metas, cxt, r)

	default:
		return nil, nil, errors.WrapReport((&errors.Report{
			Schema:  errors.Schema,
			Code:    errors.Unimplemented,
			Phase:   "elaborate",
			Message: fmt.Sprintf("cannot elaborate raw node %T", raw),
		}).AtSpan(cxt.Pos()))
	}
}

func inferLam(metas *metastore.MetaCxt, cxt *Cxt, r ast.RLam) (core.Term, value.Value, error) {
	aTerm, err := metas.FreshMeta(cxt.Mask())
	if err != nil {
		return nil, nil, err
	}
	a := eval.Eval(metas, cxt.Env(), aTerm)

	type result struct {
		body core.Term
		bTy  value.Value
	}
	res, err := Bind(cxt, r.Name, a, func(c *Cxt) (result, error) {
		body, bTy, err := Infer(metas, c, r.Body)
		return result{body, bTy}, err
	})
	if err != nil {
		return nil, nil, err
	}

	cod := CloseVal(metas, cxt, res.bTy)
	return core.TLam{Name: r.Name, Body: res.body}, value.VPi{Name: r.Name, Domain: a, Cod: cod}, nil
}

func inferApp(metas *metastore.MetaCxt, cxt *Cxt, r ast.RApp) (core.Term, value.Value, error) {
	tTerm, tTy, err := Infer(metas, cxt, r.Func)
	if err != nil {
		return nil, nil, err
	}

	pi, ok := eval.Force(metas, tTy).(value.VPi)
	if !ok {
		// No Π in hand: synthesise one from fresh metas and unify it
		// against the inferred (non-Π) type.
		aTerm, err := metas.FreshMeta(cxt.Mask())
		if err != nil {
			return nil, nil, err
		}
		a := eval.Eval(metas, cxt.Env(), aTerm)

		// The codomain's closure environment is the context as it
		// stands *before* binding "a": applying it later supplies the
		// "a" argument itself (eval.ApplyClosure extends by one), and
		// bTerm (a TInsertedMeta) already carries the mask that makes
		// it reference that argument once applied.
		outerEnv := cxt.Env()
		var bTerm core.Term
		if _, err := Bind(cxt, "a", a, func(c *Cxt) (struct{}, error) {
			var err error
			bTerm, err = metas.FreshMeta(c.Mask())
			return struct{}{}, err
		}); err != nil {
			return nil, nil, err
		}
		bClosure := value.Closure{Env: outerEnv, Body: bTerm}

		synthesized := value.VPi{Name: "a", Domain: a, Cod: bClosure}
		if err := unify.Unify(metas, cxt.Lvl(), synthesized, tTy); err != nil {
			if rep, ok := errors.AsReport(err); ok {
				return nil, nil, errors.WrapReport(rep.AtSpan(cxt.Pos()))
			}
			return nil, nil, err
		}
		pi = value.VPi{Name: "a", Domain: a, Cod: bClosure}
	}

	uTerm, err := Check(metas, cxt, r.Arg, pi.Domain)
	if err != nil {
		return nil, nil, err
	}
	uVal := eval.Eval(metas, cxt.Env(), uTerm)
	resultTy := eval.ApplyClosure(metas, pi.Cod, uVal)

	return core.TApp{Func: tTerm, Arg: uTerm}, resultTy, nil
}

func inferLet(metas *metastore.MetaCxt, cxt *Cxt, r ast.RLet) (core.Term, value.Value, error) {
	aTerm, err := Check(metas, cxt, r.Type, value.VU{})
	if err != nil {
		return nil, nil, err
	}
	va := eval.Eval(metas, cxt.Env(), aTerm)
	tTerm, err := Check(metas, cxt, r.Bound, va)
	if err != nil {
		return nil, nil, err
	}
	vt := eval.Eval(metas, cxt.Env(), tTerm)

	type result struct {
		u  core.Term
		ty value.Value
	}
	res, err := Define(cxt, r.Name, vt, va, func(c *Cxt) (result, error) {
		u, ty, err := Infer(metas, c, r.Body)
		return result{u, ty}, err
	})
	if err != nil {
		return nil, nil, err
	}
	return core.TLet{Name: r.Name, Type: aTerm, Bound: tTerm, Body: res.u}, res.ty, nil
}
