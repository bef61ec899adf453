package printer

import (
	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/value"
)

// Fresh tracks the printable names assigned to each de Bruijn level in
// scope, freshening a new binder's name against everything already
// bound so that two binders in scope at once are never printed with the
// same text. The reserved name "_" is never freshened: it always prints
// as "_", matching how it is never looked up by a variable occurrence.
type Fresh struct {
	names []core.Name
}

// NewFresh seeds a Fresh with names already in scope, outermost first
// (level 0 is names[0]).
func NewFresh(names []core.Name) *Fresh {
	return &Fresh{names: append([]core.Name(nil), names...)}
}

func (fr *Fresh) contains(n core.Name) bool {
	for _, have := range fr.names {
		if have == n {
			return true
		}
	}
	return false
}

func (fr *Fresh) freshen(n core.Name) core.Name {
	if n == core.Name("_") || !fr.contains(n) {
		return n
	}
	return fr.freshen(n + "'")
}

// Push freshens name and appends it as the next (innermost) level,
// returning the name actually used.
func (fr *Fresh) Push(name core.Name) core.Name {
	n := fr.freshen(name)
	fr.names = append(fr.names, n)
	return n
}

// Pop removes the innermost level, undoing the most recent Push (or the
// push WithBinder leaves behind), once a binder's body has been printed.
func (fr *Fresh) Pop() {
	fr.names = fr.names[:len(fr.names)-1]
}

// WithBinder freshens name, runs f with the freshened name while it is
// not yet in scope (so a binder's domain cannot see its own name), and
// then pushes it. The name stays pushed afterward: the caller prints the
// body and then calls Pop.
func (fr *Fresh) WithBinder(name core.Name, f func(used core.Name)) {
	n := fr.freshen(name)
	f(n)
	fr.names = append(fr.names, n)
}

// AtIx looks up the printable name for a bound-variable occurrence by
// de Bruijn index, innermost-first.
func (fr *Fresh) AtIx(ix core.Ix) core.Name {
	return fr.names[len(fr.names)-1-int(ix)]
}

// AtLvl looks up the printable name for a de Bruijn level, used when
// printing a TInsertedMeta's mask (each Bound slot names an argument by
// the level it was bound at).
func (fr *Fresh) AtLvl(lvl value.Lvl) core.Name {
	return fr.names[int(lvl)]
}
