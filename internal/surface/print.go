package surface

import (
	"fmt"
	"strings"

	"github.com/elabkit/holecalc/internal/ast"
	"github.com/elabkit/holecalc/internal/printer"
)

// Print renders raw back to concrete syntax, echoing what Parse
// consumed — used by the `pretty` CLI command to show the user what
// their input actually parsed to, without elaborating it.
// Raw carries surface names directly, so (unlike internal/printer's
// Term printer) no freshening pass is needed.
func Print(raw ast.Raw) string {
	var b strings.Builder
	printRaw(&b, printer.PLet, raw)
	return b.String()
}

func printRaw(b *strings.Builder, ctx printer.Prec, raw ast.Raw) {
	switch r := raw.(type) {
	case ast.RSrcPos:
		printRaw(b, ctx, r.Raw)

	case ast.RVar:
		b.WriteString(string(r.Name))

	case ast.RLam:
		var inner strings.Builder
		inner.WriteString("λ ")
		inner.WriteString(string(r.Name))
		body := r.Body
		for {
			inner2, ok := unwrap(body).(ast.RLam)
			if !ok {
				break
			}
			inner.WriteString(" ")
			inner.WriteString(string(inner2.Name))
			body = inner2.Body
		}
		inner.WriteString(". ")
		printRaw(&inner, printer.PLet, body)
		b.WriteString(printer.Paren(printer.PLet, ctx, inner.String()))

	case ast.RPi:
		var inner strings.Builder
		if r.Name == ast.Underscore {
			printRaw(&inner, printer.PApp, r.Dom)
			inner.WriteString(" → ")
			printRaw(&inner, printer.PPi, r.Cod)
		} else {
			inner.WriteString("(")
			inner.WriteString(string(r.Name))
			inner.WriteString(" : ")
			printRaw(&inner, printer.PLet, r.Dom)
			inner.WriteString(")")

			cod := r.Cod
			for {
				next, ok := unwrap(cod).(ast.RPi)
				if !ok || next.Name == ast.Underscore {
					break
				}
				inner.WriteString("(")
				inner.WriteString(string(next.Name))
				inner.WriteString(" : ")
				printRaw(&inner, printer.PLet, next.Dom)
				inner.WriteString(")")
				cod = next.Cod
			}
			inner.WriteString(" → ")
			printRaw(&inner, printer.PPi, cod)
		}
		b.WriteString(printer.Paren(printer.PPi, ctx, inner.String()))

	case ast.RLet:
		var inner strings.Builder
		inner.WriteString("let ")
		inner.WriteString(string(r.Name))
		inner.WriteString(" : ")
		printRaw(&inner, printer.PLet, r.Type)
		inner.WriteString(" := ")
		printRaw(&inner, printer.PLet, r.Bound)
		inner.WriteString(";\n")
		printRaw(&inner, printer.PLet, r.Body)
		b.WriteString(printer.Paren(printer.PLet, ctx, inner.String()))

	case ast.RHole:
		b.WriteString("_")

	case ast.RApp:
		var inner strings.Builder
		printRaw(&inner, printer.PApp, r.Func)
		inner.WriteString(" ")
		printRaw(&inner, printer.PAtom, r.Arg)
		b.WriteString(printer.Paren(printer.PApp, ctx, inner.String()))

	case ast.RU:
		b.WriteString("U")

	default:
		fmt.Fprintf(b, "<unknown raw %T>", raw)
	}
}

func unwrap(r ast.Raw) ast.Raw {
	u, _ := ast.Unwrap(r)
	return u
}
