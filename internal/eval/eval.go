// Package eval implements component E of the elaboration kernel:
// normalisation by evaluation. Eval/Apply/Quote/Force compute and read
// back weak-head normal forms, threading a *metastore.MetaCxt through
// every call so that a solved meta becomes visible to every subsequent
// Force the moment internal/unify writes it.
package eval

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/meta"
	"github.com/elabkit/holecalc/internal/metastore"
	"github.com/elabkit/holecalc/internal/value"
)

// Eval computes the weak-head normal form of tm under env.
func Eval(metas *metastore.MetaCxt, env value.Env, tm core.Term) value.Value {
	switch t := tm.(type) {
	case core.TV:
		return env.AtIx(t.Ix)

	case core.TLam:
		return value.VLam{Name: t.Name, Closure: value.Closure{Env: env, Body: t.Body}}

	case core.TPi:
		a := Eval(metas, env, t.Dom)
		return value.VPi{Name: t.Name, Domain: a, Cod: value.Closure{Env: env, Body: t.Cod}}

	case core.TApp:
		fn := Eval(metas, env, t.Func)
		arg := Eval(metas, env, t.Arg)
		return Apply(metas, fn, arg)

	case core.TLet:
		bound := Eval(metas, env, t.Bound)
		return Eval(metas, env.Extend(bound), t.Body)

	case core.TU:
		return value.VU{}

	case core.TMeta:
		e := metas.Entry(t.Var)
		if e.Solved {
			return e.Value
		}
		return value.VFlex{Var: t.Var}

	case core.TInsertedMeta:
		e := metas.Entry(t.Var)
		if e.Solved {
			result := e.Value
			for i, bd := range t.Mask {
				if bd == meta.Bound {
					result = Apply(metas, result, env[i])
				}
			}
			return result
		}
		var args value.Spine
		for i, bd := range t.Mask {
			if bd == meta.Bound {
				args = append(args, env[i])
			}
		}
		return value.VFlex{Var: t.Var, Spine: args}

	case core.TSigma:
		a := Eval(metas, env, t.Fst)
		return value.VSigma{Name: t.Name, Fst: a, Snd: value.Closure{Env: env, Body: t.Snd}}

	case core.TPair:
		a := Eval(metas, env, t.Fst)
		b := Eval(metas, env, t.Snd)
		return value.VPair{Fst: a, Snd: b}

	default:
		panic(fmt.Sprintf("eval: unhandled term %T", tm))
	}
}

// Apply applies a function value to an argument. v_app in the
// reference elaborator.
func Apply(metas *metastore.MetaCxt, fn, arg value.Value) value.Value {
	switch f := fn.(type) {
	case value.VFlex:
		sp := append(append(value.Spine{}, f.Spine...), arg)
		return value.VFlex{Var: f.Var, Spine: sp}
	case value.VRigid:
		sp := append(append(value.Spine{}, f.Spine...), arg)
		return value.VRigid{Lvl: f.Lvl, Spine: sp}
	case value.VLam:
		return Eval(metas, f.Closure.Env.Extend(arg), f.Closure.Body)
	default:
		// A well-typed term never applies anything else; reaching here
		// means elaboration let an ill-typed term through.
		panic(fmt.Sprintf("eval: apply on non-function value %T", fn))
	}
}

// ApplyClosure evaluates a closure's body under its captured
// environment extended with v — the single way any component should
// unfold a suspended codomain or lambda body.
func ApplyClosure(metas *metastore.MetaCxt, c value.Closure, v value.Value) value.Value {
	return Eval(metas, c.Env.Extend(v), c.Body)
}

// Force is the sole sanctioned way to see a meta solution through a
// value: if v is a VFlex whose meta is solved, the solution is applied
// to the flex's spine and forced again, transitively. Any component
// about to case-analyse a Value's shape must Force it first.
func Force(metas *metastore.MetaCxt, v value.Value) value.Value {
	flex, ok := v.(value.VFlex)
	if !ok {
		return v
	}
	e := metas.Entry(flex.Var)
	if !e.Solved {
		return v
	}
	result := e.Value
	for _, arg := range flex.Spine {
		result = Apply(metas, result, arg)
	}
	return Force(metas, result)
}

// Quote reads a value back to a term at depth lvl.
func Quote(metas *metastore.MetaCxt, lvl value.Lvl, v value.Value) core.Term {
	v = Force(metas, v)
	switch val := v.(type) {
	case value.VFlex:
		return quoteSpine(metas, lvl, core.TMeta{Var: val.Var}, val.Spine)

	case value.VRigid:
		return quoteSpine(metas, lvl, core.TV{Ix: value.Lvl2Ix(lvl, val.Lvl)}, val.Spine)

	case value.VLam:
		fresh := value.VRigid{Lvl: lvl}
		body := ApplyClosure(metas, val.Closure, fresh)
		return core.TLam{Name: val.Name, Body: Quote(metas, lvl+1, body)}

	case value.VPi:
		dom := Quote(metas, lvl, val.Domain)
		fresh := value.VRigid{Lvl: lvl}
		cod := ApplyClosure(metas, val.Cod, fresh)
		return core.TPi{Name: val.Name, Dom: dom, Cod: Quote(metas, lvl+1, cod)}

	case value.VU:
		return core.TU{}

	case value.VSigma:
		fst := Quote(metas, lvl, val.Fst)
		fresh := value.VRigid{Lvl: lvl}
		snd := ApplyClosure(metas, val.Snd, fresh)
		return core.TSigma{Name: val.Name, Fst: fst, Snd: Quote(metas, lvl+1, snd)}

	case value.VPair:
		return core.TPair{Fst: Quote(metas, lvl, val.Fst), Snd: Quote(metas, lvl, val.Snd)}

	default:
		panic(fmt.Sprintf("eval: unhandled value %T", v))
	}
}

func quoteSpine(metas *metastore.MetaCxt, lvl value.Lvl, head core.Term, sp value.Spine) core.Term {
	t := head
	for _, arg := range sp {
		t = core.TApp{Func: t, Arg: Quote(metas, lvl, arg)}
	}
	return t
}

// NormalForm computes quote(0, eval(empty, term)), the top-level
// normal-form reduction of a closed term.
func NormalForm(metas *metastore.MetaCxt, tm core.Term) core.Term {
	return Quote(metas, 0, Eval(metas, nil, tm))
}
