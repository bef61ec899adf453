// Package trace implements depth-indented check/infer trace printing:
// a diagnostic convenience with no semantic effect, entirely safe to
// disable or omit.
//
// The depth is not global: it lives on the *elaborate.Cxt being traced
// and is raised and restored by that context's own enter/leave bracket
// around every check/infer call, so it can never leak across passes.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/kr/text"
)

// Tracer writes indented check/infer trace lines to an underlying
// writer. A nil *Tracer is a valid, inert tracer: every method on it is
// a no-op, so call sites never need a liveness check of their own.
type Tracer struct {
	Out     io.Writer
	Color   bool
	checkFn func(a ...any) string
	inferFn func(a ...any) string
}

// New creates a Tracer writing to out. If useColor is true, "check"
// lines are cyan and "infer" lines are yellow (github.com/fatih/color).
func New(out io.Writer, useColor bool) *Tracer {
	t := &Tracer{Out: out, Color: useColor}
	if useColor {
		t.checkFn = color.New(color.FgCyan).SprintFunc()
		t.inferFn = color.New(color.FgYellow).SprintFunc()
	} else {
		identity := func(a ...any) string { return fmt.Sprint(a...) }
		t.checkFn, t.inferFn = identity, identity
	}
	return t
}

func (t *Tracer) indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// Check logs entry into a `check` call. detail is pretty-printed with
// kr/pretty so nested Term/Value structures stay readable without each
// needing a bespoke String method.
func (t *Tracer) Check(depth int, what string, detail ...any) {
	if t == nil || t.Out == nil {
		return
	}
	fmt.Fprintf(t.Out, "%s%s %s\n", t.indent(depth), t.checkFn("check"), what)
	for _, d := range detail {
		fmt.Fprintln(t.Out, text.Indent(pretty.Sprint(d), t.indent(depth+1)))
	}
}

// Infer logs entry into (and, via the returned func, exit from) an
// `infer` call.
func (t *Tracer) Infer(depth int, what string) func(result string) {
	if t == nil || t.Out == nil {
		return func(string) {}
	}
	fmt.Fprintf(t.Out, "%s%s %s\n", t.indent(depth), t.inferFn("infer"), what)
	return func(result string) {
		fmt.Fprintf(t.Out, "%s|- %s\n", t.indent(depth), result)
	}
}
