// Package elaborate implements the bidirectional check/infer algorithm,
// driven by a Cxt that tracks four parallel stacks (env, lvl, types,
// mask) plus a source position and a trace depth.
package elaborate

import (
	"github.com/elabkit/holecalc/internal/ast"
	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/meta"
	"github.com/elabkit/holecalc/internal/trace"
	"github.com/elabkit/holecalc/internal/value"
)

// localEntry is one (name, type) pair tracked for raw-name lookup and
// printing.
type localEntry struct {
	name core.Name
	typ  value.Value
}

// Cxt is the active elaboration context. Its four core fields (env,
// lvl, types, mask) always have equal length, maintained entirely by
// Bind/Define below; every exit path, including an error return,
// restores them via defer, so a failed sub-elaboration can never leave
// the context's stacks unbalanced.
type Cxt struct {
	env   value.Env
	lvl   value.Lvl
	types []localEntry
	mask  []meta.BD
	pos   ast.Span

	Tracer *trace.Tracer
	depth  int
}

// NewCxt returns an empty top-level context.
func NewCxt(tracer *trace.Tracer) *Cxt {
	return &Cxt{Tracer: tracer}
}

func (c *Cxt) Env() value.Env  { return c.env }
func (c *Cxt) Lvl() value.Lvl  { return c.lvl }
func (c *Cxt) Pos() ast.Span   { return c.pos }
func (c *Cxt) Mask() []meta.BD { return c.mask }

// Names returns the binder names in scope, outermost first — used by
// internal/printer for freshening.
func (c *Cxt) Names() []core.Name {
	out := make([]core.Name, len(c.types))
	for i, e := range c.types {
		out[i] = e.name
	}
	return out
}

// Lookup scans local names innermost-out, returning the de Bruijn index
// and type of the first match.
func (c *Cxt) Lookup(name core.Name) (core.Ix, value.Value, bool) {
	for i := len(c.types) - 1; i >= 0; i-- {
		if c.types[i].name == name {
			ix := core.Ix(len(c.types) - 1 - i)
			return ix, c.types[i].typ, true
		}
	}
	return 0, nil, false
}

// SetPos records the innermost source span the elaborator has unwrapped
// so far, for diagnostics.
func (c *Cxt) SetPos(span ast.Span) { c.pos = span }

// Bind enters a new rigid binder named name of type ty, runs f under
// the extended context, and restores env/lvl/types/mask on the way out
// regardless of whether f succeeds.
func Bind[T any](c *Cxt, name core.Name, ty value.Value, f func(*Cxt) (T, error)) (T, error) {
	savedEnv, savedLvl, savedTypes, savedMask := c.env, c.lvl, c.types, c.mask
	c.env = c.env.Extend(value.VRigid{Lvl: c.lvl})
	c.lvl++
	c.types = append(c.types, localEntry{name, ty})
	c.mask = append(c.mask, meta.Bound)
	defer func() {
		c.env, c.lvl, c.types, c.mask = savedEnv, savedLvl, savedTypes, savedMask
	}()
	return f(c)
}

// Define enters a let-bound name with a known value and type.
func Define[T any](c *Cxt, name core.Name, val, ty value.Value, f func(*Cxt) (T, error)) (T, error) {
	savedEnv, savedLvl, savedTypes, savedMask := c.env, c.lvl, c.types, c.mask
	c.env = c.env.Extend(val)
	c.lvl++
	c.types = append(c.types, localEntry{name, ty})
	c.mask = append(c.mask, meta.Defined)
	defer func() {
		c.env, c.lvl, c.types, c.mask = savedEnv, savedLvl, savedTypes, savedMask
	}()
	return f(c)
}

// enter/leave bracket one trace depth level; leave always runs, mirror
// of Bind/Define's defer-based restoration but for the depth counter
// alone (check/infer call this directly, since they aren't always
// paired with a Bind/Define).
func (c *Cxt) enter() func() {
	c.depth++
	d := c.depth
	return func() { c.depth = d - 1 }
}
