package cmdroot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/elabkit/holecalc/internal/elaborate"
	"github.com/elabkit/holecalc/internal/errors"
	"github.com/elabkit/holecalc/internal/eval"
	"github.com/elabkit/holecalc/internal/metastore"
	"github.com/elabkit/holecalc/internal/surface"
	"github.com/elabkit/holecalc/internal/value"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively elaborate expressions against a persistent context",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	errf, okf := colorizer(cfg)

	metas := metastore.WithBudget(cfg.MaxMetas)
	cxt := elaborate.NewCxt(newTracer(cfg))

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".elabkit_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(os.Stdout, "elaborate — type an expression, or `let x : T := t;` to bind. Ctrl-D to quit.")

	for {
		input, err := line.Prompt("> ")
		if err == io.EOF {
			fmt.Fprintln(os.Stdout)
			break
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		binding, expr, perr := surface.ParseDecl(input, "<repl>")
		if perr != nil {
			fmt.Fprintln(os.Stderr, errf(perr.Error()))
			continue
		}

		if binding.Name != "" {
			aTerm, err := elaborate.Check(metas, cxt, binding.Type, value.VU{})
			if err != nil {
				reportErr(errf, metas, err)
				continue
			}
			va := eval.Eval(metas, cxt.Env(), aTerm)
			tTerm, err := elaborate.Check(metas, cxt, binding.Bound, va)
			if err != nil {
				reportErr(errf, metas, err)
				continue
			}
			vt := eval.Eval(metas, cxt.Env(), tTerm)
			names := cxt.Names()
			tyStr := termStringIn(names, eval.Quote(metas, cxt.Lvl(), va))
			if _, err := elaborate.Define(cxt, binding.Name, vt, va, func(c *elaborate.Cxt) (struct{}, error) {
				return struct{}{}, nil
			}); err != nil {
				reportErr(errf, metas, err)
				continue
			}
			fmt.Fprintln(os.Stdout, okf(fmt.Sprintf("%s : %s", binding.Name, tyStr)))
			continue
		}

		term, ty, err := elaborate.Infer(metas, cxt, expr)
		if err != nil {
			reportErr(errf, metas, err)
			continue
		}
		// term/ty are relative to cxt's current (possibly non-empty)
		// scope, not a closed top-level term, so they are reduced under
		// cxt.Env() rather than eval.NormalForm's hardcoded empty env.
		names := cxt.Names()
		nf := eval.Quote(metas, cxt.Lvl(), eval.Eval(metas, cxt.Env(), term))
		tyTerm := eval.Quote(metas, cxt.Lvl(), ty)
		fmt.Fprintln(os.Stdout, okf(fmt.Sprintf("%s : %s", termStringIn(names, nf), termStringIn(names, tyTerm))))
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
	return nil
}

// reportErr prints err's structured report stamped with metas' PassID,
// the same cross-pass correlation common.go's printReport does for the
// one-shot CLI subcommands — here "one pass" is the whole REPL session,
// since metas is shared across every line typed at the prompt.
func reportErr(errf func(a ...any) string, metas *metastore.MetaCxt, err error) {
	if rep, ok := errors.AsReport(err); ok {
		if js, jerr := rep.ToJSON(false); jerr == nil {
			if stamped, serr := errors.WithPassID(js, metas.PassID.String()); serr == nil {
				js = stamped
			}
			fmt.Fprintln(os.Stderr, errf(js))
			return
		}
	}
	fmt.Fprintln(os.Stderr, errf(err.Error()))
}
