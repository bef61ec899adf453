// Package ast defines the raw surface syntax tree handed to the
// elaborator by an external parser (internal/surface, in this repo).
package ast

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Name is an interned, immutable identifier. The name "_" is reserved:
// it means "unused binder" or "anonymous Π argument", is never looked up
// by RVar, and is never freshened by the printer.
type Name string

// Underscore is the reserved anonymous name.
const Underscore Name = "_"

var internTable = map[string]Name{}

// Intern normalizes s to NFC (surface identifiers may legally contain the
// calculus's own non-ASCII vocabulary — λ, Π, Σ — entered via distinct
// but canonically-equivalent Unicode sequences) and returns the shared
// Name for it. The intern table is package-level, shared by every pass
// in the process; interning is a convenience, not a compatibility
// contract.
func Intern(s string) Name {
	normalized := norm.NFC.String(s)
	if n, ok := internTable[normalized]; ok {
		return n
	}
	n := Name(normalized)
	internTable[normalized] = n
	return n
}

// Pos is a byte offset into the source buffer the parser read from.
type Pos int

// Span is a closed interval [Start, End] into the source buffer.
type Span struct {
	Start, End Pos
	File       string
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d-%d", s.Start, s.End)
	}
	return fmt.Sprintf("%s:%d-%d", s.File, s.Start, s.End)
}

// Raw is the closed sum of surface syntax variants produced by the
// parser. Every variant implements raw() as a marker method so only
// types in this package can satisfy the interface.
type Raw interface {
	raw()
}

// RVar is a reference to a local name.
type RVar struct {
	Name Name
}

// RLam is a lambda binder; Body is elaborated under Name.
type RLam struct {
	Name Name
	Body Raw
}

// RApp is function application.
type RApp struct {
	Func Raw
	Arg  Raw
}

// RU is the single universe.
type RU struct{}

// RPi is a dependent function type (A : Dom) → Cod, or a non-dependent
// arrow when Name is "_".
type RPi struct {
	Name Name
	Dom  Raw
	Cod  Raw
}

// RLet is `let Name : Type := Bound; Body`.
type RLet struct {
	Name  Name
	Type  Raw
	Bound Raw
	Body  Raw
}

// RSrcPos wraps a raw node with the source span it was parsed from. The
// elaborator updates its current position whenever it unwraps one of
// these, so diagnostics point at the tightest enclosing region.
type RSrcPos struct {
	Span Span
	Raw  Raw
}

// RHole is a surface `_` occurring in term or type position (as opposed
// to the `_` binder name, which is ast.Underscore).
type RHole struct{}

func (RVar) raw()    {}
func (RLam) raw()    {}
func (RApp) raw()    {}
func (RU) raw()      {}
func (RPi) raw()     {}
func (RLet) raw()    {}
func (RSrcPos) raw() {}
func (RHole) raw()   {}

// Unwrap strips any number of RSrcPos wrappers and returns the innermost
// node together with the tightest span seen, if any.
func Unwrap(r Raw) (Raw, *Span) {
	var last *Span
	for {
		sp, ok := r.(RSrcPos)
		if !ok {
			return r, last
		}
		s := sp.Span
		last = &s
		r = sp.Raw
	}
}
