// Package metastore implements the metavariable store. It is pass-local,
// not process-global: a host creates one MetaCxt per elaboration pass
// (see internal/elaborate.Elaborate).
package metastore

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/errors"
	"github.com/elabkit/holecalc/internal/meta"
	"github.com/elabkit/holecalc/internal/value"
	"github.com/google/uuid"
)

// MetaEntry is either Unsolved or Solved(Value). Once Solved, an entry
// is never reset to Unsolved, and once allocated a MetaVar is never
// removed: a meta is solved exactly once.
type MetaEntry struct {
	Solved bool
	Value  value.Value // meaningful only when Solved
}

// MetaCxt is a growable MetaVar -> MetaEntry mapping. Meta ids are dense
// nonnegative integers assigned in allocation order.
type MetaCxt struct {
	entries []MetaEntry
	// PassID tags every meta this store allocates for cross-pass
	// diagnostic correlation (cmd/elaborate stamps it onto printed
	// reports via errors.WithPassID); a host elaborating many files gets
	// one distinguishable id per pass.
	PassID uuid.UUID

	// MaxMetas caps how many metas this pass may allocate. Zero means
	// unbounded. It exists as a circuit breaker against pathological
	// input driving unbounded meta creation (e.g. a deeply nested chain
	// of unannotated holes), reported as a structured error instead of
	// an unbounded loop.
	MaxMetas int
}

// New creates an empty metavariable store for one elaboration pass,
// with no allocation budget.
func New() *MetaCxt {
	return &MetaCxt{PassID: uuid.New()}
}

// WithBudget creates an empty metavariable store with an allocation
// budget of maxMetas metas.
func WithBudget(maxMetas int) *MetaCxt {
	return &MetaCxt{PassID: uuid.New(), MaxMetas: maxMetas}
}

// Alloc allocates a fresh, unsolved MetaVar, or fails with a structured
// report if doing so would exceed MaxMetas.
func (mc *MetaCxt) Alloc() (meta.MetaVar, error) {
	if mc.MaxMetas > 0 && len(mc.entries) >= mc.MaxMetas {
		return 0, errors.WrapReport(&errors.Report{
			Schema:  errors.Schema,
			Code:    errors.Generic,
			Phase:   "elaborate",
			Message: fmt.Sprintf("exceeded meta-allocation budget of %d", mc.MaxMetas),
		})
	}
	m := meta.MetaVar(len(mc.entries))
	mc.entries = append(mc.entries, MetaEntry{Solved: false})
	return m, nil
}

// Entry returns the current entry for m. Panics if m was never
// allocated by this store — that is an invariant violation, not a user
// error.
func (mc *MetaCxt) Entry(m meta.MetaVar) MetaEntry {
	if int(m) < 0 || int(m) >= len(mc.entries) {
		panic(fmt.Sprintf("metastore: unallocated meta %s", m))
	}
	return mc.entries[m]
}

// Solve records v as the solution for m. Precondition: m is currently
// Unsolved (checked; violating it is a bug in the unifier, not a user
// error, so this panics rather than returning an error).
func (mc *MetaCxt) Solve(m meta.MetaVar, v value.Value) {
	e := mc.Entry(m)
	if e.Solved {
		panic(fmt.Sprintf("metastore: re-solving already-solved meta %s", m))
	}
	mc.entries[m] = MetaEntry{Solved: true, Value: v}
}

// Len reports how many metas have ever been allocated.
func (mc *MetaCxt) Len() int { return len(mc.entries) }

// Unsolved returns every currently-unsolved meta, in allocation order.
func (mc *MetaCxt) Unsolved() []meta.MetaVar {
	var out []meta.MetaVar
	for i, e := range mc.entries {
		if !e.Solved {
			out = append(out, meta.MetaVar(i))
		}
	}
	return out
}

// FreshMeta allocates a new meta and wraps it as a core.TInsertedMeta
// carrying a copy of mask, the Bound/Defined telescope snapshotted at
// the call site. The copy matters: mask is almost always a live slice
// held by the caller's context and may be appended to or popped as
// elaboration continues past this point.
func (mc *MetaCxt) FreshMeta(mask []meta.BD) (core.Term, error) {
	m, err := mc.Alloc()
	if err != nil {
		return nil, err
	}
	snapshot := make([]meta.BD, len(mask))
	copy(snapshot, mask)
	return core.TInsertedMeta{Var: m, Mask: snapshot}, nil
}
