package printer

import (
	"fmt"
	"strings"

	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/meta"
	"github.com/elabkit/holecalc/internal/value"
)

// Term renders t as surface text, given the names already in scope
// (outermost first, as internal/elaborate.Cxt.Names returns them).
// Parenthesization follows the PLet < PPi < PApp < PAtom ladder and is
// observable but not a compatibility contract: two versions of this
// printer may legally disagree on exactly which parens are redundant.
func Term(names []core.Name, t core.Term) string {
	var b strings.Builder
	printTerm(&b, PLet, t, NewFresh(names))
	return b.String()
}

func printTerm(b *strings.Builder, ctx Prec, t core.Term, fr *Fresh) {
	switch n := t.(type) {
	case core.TV:
		b.WriteString(string(fr.AtIx(n.Ix)))

	case core.TLam:
		var inner strings.Builder
		used := fr.Push(n.Name)
		inner.WriteString("λ ")
		inner.WriteString(string(used))
		inner.WriteString(". ")
		printTerm(&inner, PLet, n.Body, fr)
		fr.Pop()
		b.WriteString(Paren(PLet, ctx, inner.String()))

	case core.TPi:
		var inner strings.Builder
		if n.Name == core.Underscore {
			printTerm(&inner, PApp, n.Dom, fr)
			inner.WriteString(" → ")
			fr.Push(n.Name)
			printTerm(&inner, PPi, n.Cod, fr)
			fr.Pop()
		} else {
			fr.WithBinder(n.Name, func(used core.Name) {
				inner.WriteString("(")
				inner.WriteString(string(used))
				inner.WriteString(" : ")
				printTerm(&inner, PLet, n.Dom, fr)
				inner.WriteString(")")
			})
			inner.WriteString(" → ")
			printTerm(&inner, PPi, n.Cod, fr)
			fr.Pop()
		}
		b.WriteString(Paren(PPi, ctx, inner.String()))

	case core.TLet:
		var inner strings.Builder
		fr.WithBinder(n.Name, func(used core.Name) {
			inner.WriteString("let ")
			inner.WriteString(string(used))
			inner.WriteString(" : ")
			printTerm(&inner, PLet, n.Type, fr)
			inner.WriteString(" := ")
			printTerm(&inner, PLet, n.Bound, fr)
			inner.WriteString(";\n")
		})
		printTerm(&inner, PLet, n.Body, fr)
		fr.Pop()
		b.WriteString(Paren(PLet, ctx, inner.String()))

	case core.TU:
		b.WriteString("U")

	case core.TMeta:
		fmt.Fprintf(b, "?%d", int(n.Var))

	case core.TInsertedMeta:
		braces := false
		for _, bd := range n.Mask {
			if bd == meta.Bound {
				braces = true
				break
			}
		}
		braces = braces && ctx == PAtom
		if braces {
			fmt.Fprintf(b, "(?%d", int(n.Var))
		} else {
			fmt.Fprintf(b, "?%d", int(n.Var))
		}
		for lvl, bd := range n.Mask {
			if bd == meta.Bound {
				b.WriteString(" ")
				b.WriteString(string(fr.AtLvl(value.Lvl(lvl))))
			}
		}
		if braces {
			b.WriteString(")")
		}

	case core.TApp:
		var inner strings.Builder
		printTerm(&inner, PApp, n.Func, fr)
		inner.WriteString(" ")
		printTerm(&inner, PAtom, n.Arg, fr)
		b.WriteString(Paren(PApp, ctx, inner.String()))

	case core.TSigma:
		fmt.Fprintf(b, "<unprintable Σ %s>", n.Name)

	case core.TPair:
		b.WriteString("<unprintable pair>")

	default:
		fmt.Fprintf(b, "<unknown term %T>", t)
	}
}
