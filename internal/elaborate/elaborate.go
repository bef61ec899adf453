package elaborate

import (
	"github.com/elabkit/holecalc/internal/ast"
	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/eval"
	"github.com/elabkit/holecalc/internal/metastore"
	"github.com/elabkit/holecalc/internal/trace"
	"github.com/elabkit/holecalc/internal/value"
)

// Result is everything a host needs after one elaboration pass: the
// elaborated term, its inferred type (as a Term, already quoted at top
// level), and the metavariable store the pass produced side effects
// in. A caller that wants to zonk, or simply inspect unsolved metas,
// needs the store alongside the term.
type Result struct {
	Term  core.Term
	Type  core.Term
	Metas *metastore.MetaCxt
}

// Elaborate is the top-level entry point: a bidirectional infer of raw
// starting from an empty context, returning the elaborated term, its
// type, and the metavariable store the pass populated. maxMetas caps
// the pass's meta-allocation budget (see metastore.WithBudget); 0 means
// unbounded.
func Elaborate(raw ast.Raw, tracer *trace.Tracer, maxMetas int) (Result, error) {
	metas := metastore.WithBudget(maxMetas)
	cxt := NewCxt(tracer)

	term, ty, err := Infer(metas, cxt, raw)
	if err != nil {
		// Metas is still populated on failure so a caller can stamp its
		// PassID onto the error report for cross-pass correlation, or
		// inspect whatever metas the partial pass allocated.
		return Result{Metas: metas}, err
	}
	return Result{
		Term:  term,
		Type:  eval.Quote(metas, cxt.Lvl(), ty),
		Metas: metas,
	}, nil
}

// NormalForm computes quote(0, eval(empty_env, term)).
func NormalForm(metas *metastore.MetaCxt, term core.Term) core.Term {
	return eval.NormalForm(metas, term)
}

// TypeOf returns the quote of an already-inferred type. Result.Type
// already is this; the helper exists for hosts that only have a Value
// and a MetaCxt in hand, e.g. after zonking stripped the pairing above.
func TypeOf(metas *metastore.MetaCxt, ty value.Value) core.Term {
	return eval.Quote(metas, 0, ty)
}

// Zonk recursively substitutes every solved meta into term, returning a
// term with no TMeta/TInsertedMeta nodes for a solved meta. It fails if
// any meta the term depends on is still unsolved.
func Zonk(metas *metastore.MetaCxt, term core.Term) (core.Term, bool) {
	v := eval.Eval(metas, nil, term)
	// Quote forces through every solved meta transitively, including
	// ones nested inside another meta's own solution, so checking the
	// quoted term (not the pre-substitution input) is what correctly
	// catches an unsolved meta hidden behind a solved one.
	quoted := eval.Quote(metas, 0, v)
	if hasUnsolvedMeta(metas, quoted) {
		return nil, false
	}
	return quoted, true
}

func hasUnsolvedMeta(metas *metastore.MetaCxt, term core.Term) bool {
	switch t := term.(type) {
	case core.TMeta:
		return !metas.Entry(t.Var).Solved
	case core.TInsertedMeta:
		return !metas.Entry(t.Var).Solved
	case core.TLam:
		return hasUnsolvedMeta(metas, t.Body)
	case core.TPi:
		return hasUnsolvedMeta(metas, t.Dom) || hasUnsolvedMeta(metas, t.Cod)
	case core.TApp:
		return hasUnsolvedMeta(metas, t.Func) || hasUnsolvedMeta(metas, t.Arg)
	case core.TLet:
		return hasUnsolvedMeta(metas, t.Type) || hasUnsolvedMeta(metas, t.Bound) || hasUnsolvedMeta(metas, t.Body)
	case core.TSigma:
		return hasUnsolvedMeta(metas, t.Fst) || hasUnsolvedMeta(metas, t.Snd)
	case core.TPair:
		return hasUnsolvedMeta(metas, t.Fst) || hasUnsolvedMeta(metas, t.Snd)
	default:
		return false
	}
}
