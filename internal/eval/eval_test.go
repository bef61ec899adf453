package eval

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/meta"
	"github.com/elabkit/holecalc/internal/metastore"
	"github.com/elabkit/holecalc/internal/value"
)

// identity is `λ x. x`.
var identity = core.TLam{Name: "x", Body: core.TV{Ix: 0}}

// konst is `λ x y. x`.
var konst = core.TLam{Name: "x", Body: core.TLam{Name: "y", Body: core.TV{Ix: 1}}}

func TestNormalFormIdentityAppliedToU(t *testing.T) {
	metas := metastore.New()
	tm := core.TApp{Func: identity, Arg: core.TU{}}
	got := NormalForm(metas, tm)
	if diff := cmp.Diff(core.Term(core.TU{}), got); diff != "" {
		t.Errorf("NormalForm((λx.x) U) mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalFormKonstDropsSecondArg(t *testing.T) {
	metas := metastore.New()
	// (λ x y. x) U (λ x. x) should reduce to U.
	tm := core.TApp{Func: core.TApp{Func: konst, Arg: core.TU{}}, Arg: identity}
	got := NormalForm(metas, tm)
	if diff := cmp.Diff(core.Term(core.TU{}), got); diff != "" {
		t.Errorf("NormalForm mismatch (-want +got):\n%s", diff)
	}
}

func TestQuoteEvalRoundtripsClosedLambda(t *testing.T) {
	metas := metastore.New()
	v := Eval(metas, nil, identity)
	back := Quote(metas, 0, v)
	if diff := cmp.Diff(core.Term(identity), back); diff != "" {
		t.Errorf("quote(eval(λx.x)) mismatch (-want +got):\n%s", diff)
	}
}

func TestQuoteRoundtripsPi(t *testing.T) {
	metas := metastore.New()
	// (x : U) -> U
	pi := core.TPi{Name: "x", Dom: core.TU{}, Cod: core.TU{}}
	v := Eval(metas, nil, pi)
	back := Quote(metas, 0, v)
	if diff := cmp.Diff(core.Term(pi), back); diff != "" {
		t.Errorf("quote(eval(Pi)) mismatch (-want +got):\n%s", diff)
	}
}

func TestForceLooksThroughSolvedMeta(t *testing.T) {
	metas := metastore.New()
	m, err := metas.Alloc()
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	metas.Solve(m, value.VU{})

	flex := value.VFlex{Var: m}
	got := Force(metas, flex)
	if _, ok := got.(value.VU); !ok {
		t.Errorf("Force(solved flex) = %#v, want VU{}", got)
	}
}

func TestForceLeavesUnsolvedMetaAlone(t *testing.T) {
	metas := metastore.New()
	m, _ := metas.Alloc()
	flex := value.VFlex{Var: m}
	got := Force(metas, flex)
	gotFlex, ok := got.(value.VFlex)
	if !ok || gotFlex.Var != m {
		t.Errorf("Force(unsolved flex) = %#v, want VFlex{Var: %v}", got, m)
	}
}

func TestForceAppliesSolutionToSpine(t *testing.T) {
	metas := metastore.New()
	m, _ := metas.Alloc()
	metas.Solve(m, Eval(metas, nil, identity))

	flex := value.VFlex{Var: m, Spine: value.Spine{value.VU{}}}
	got := Force(metas, flex)
	if _, ok := got.(value.VU); !ok {
		t.Errorf("Force(solved flex applied to U) = %#v, want VU{}", got)
	}
}

func TestInsertedMetaQuotesWithMaskedArgs(t *testing.T) {
	metas := metastore.New()
	env := value.Env{}.Extend(value.VRigid{Lvl: 0})
	term, err := metas.FreshMeta([]meta.BD{meta.Bound})
	if err != nil {
		t.Fatalf("FreshMeta: %v", err)
	}
	v := Eval(metas, env, term)
	flex, ok := v.(value.VFlex)
	if !ok {
		t.Fatalf("Eval(unsolved TInsertedMeta) = %#v, want VFlex", v)
	}
	// The one Bound slot becomes the flex's single argument, quoted back
	// as index 0 at depth 1.
	want := core.Term(core.TApp{Func: core.TMeta{Var: flex.Var}, Arg: core.TV{Ix: 0}})
	if diff := cmp.Diff(want, Quote(metas, 1, v)); diff != "" {
		t.Errorf("Quote(inserted meta) mismatch (-want +got):\n%s", diff)
	}
}

func TestEvalLetInlinesBoundValue(t *testing.T) {
	metas := metastore.New()
	// let x : U := U; x
	tm := core.TLet{Name: "x", Type: core.TU{}, Bound: core.TU{}, Body: core.TV{Ix: 0}}
	got := NormalForm(metas, tm)
	if diff := cmp.Diff(core.Term(core.TU{}), got); diff != "" {
		t.Errorf("NormalForm(let) mismatch (-want +got):\n%s", diff)
	}
}
