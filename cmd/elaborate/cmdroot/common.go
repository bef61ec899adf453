package cmdroot

import (
	"fmt"
	"io"
	"os"

	"github.com/elabkit/holecalc/internal/ast"
	"github.com/elabkit/holecalc/internal/config"
	"github.com/elabkit/holecalc/internal/core"
	"github.com/elabkit/holecalc/internal/elaborate"
	"github.com/elabkit/holecalc/internal/errors"
	"github.com/elabkit/holecalc/internal/printer"
	"github.com/elabkit/holecalc/internal/surface"
)

func readInput(args []string) (src, file string, err error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}

func parseInput(args []string) (ast.Raw, error) {
	src, file, err := readInput(args)
	if err != nil {
		return nil, err
	}
	return surface.Parse(src, file)
}

// runElaborate parses and elaborates one top-level term. On failure it
// prints the structured report to stderr (colorized per cfg) and
// returns the same error for the caller's exit-code handling.
func runElaborate(args []string) (elaborate.Result, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return elaborate.Result{}, cfg, err
	}
	raw, err := parseInput(args)
	if err != nil {
		return elaborate.Result{}, cfg, err
	}
	res, err := elaborate.Elaborate(raw, newTracer(cfg), cfg.MaxMetas)
	if err != nil {
		printReport(cfg, res, err)
		return res, cfg, err
	}
	return res, cfg, nil
}

// termString renders a top-level term (no names in scope).
func termString(t core.Term) string {
	return printer.Term(nil, t)
}

// termStringIn renders a term against names already bound in an active
// context (e.g. the REPL's persistent Cxt), outermost first.
func termStringIn(names []core.Name, t core.Term) string {
	return printer.Term(names, t)
}

// printReport prints err's structured report (if it has one) to stderr,
// stamped with res.Metas' PassID when the pass that produced err got far
// enough to allocate a metavariable store — correlating a diagnostic
// with the specific pass that raised it across a log of many runs.
func printReport(cfg config.Config, res elaborate.Result, err error) {
	errf, _ := colorizer(cfg)
	if rep, ok := errors.AsReport(err); ok {
		if js, jerr := rep.ToJSON(false); jerr == nil {
			if res.Metas != nil {
				if stamped, serr := errors.WithPassID(js, res.Metas.PassID.String()); serr == nil {
					js = stamped
				}
			}
			fmt.Fprintln(os.Stderr, errf(js))
			return
		}
	}
	fmt.Fprintln(os.Stderr, errf(err.Error()))
}
