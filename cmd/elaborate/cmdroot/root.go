// Package cmdroot wires the elaborate CLI's cobra command tree.
package cmdroot

import (
	"fmt"
	"os"

	"github.com/elabkit/holecalc/internal/config"
	"github.com/elabkit/holecalc/internal/trace"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configPath string
	traceFlag  string
	colorFlag  string
	maxMetas   int
)

var rootCmd = &cobra.Command{
	Use:   "elaborate",
	Short: "A bidirectional elaborator for a dependently-typed calculus with holes",
	Long: `elaborate type-checks and normalizes terms of a small dependently-typed
calculus (one universe, Π-types, lambdas, application, let, and holes),
using normalisation-by-evaluation and higher-order pattern unification
to resolve metavariables left by holes.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML run configuration file")
	rootCmd.PersistentFlags().StringVar(&traceFlag, "trace", "", "trace verbosity: off, shallow, full (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "force color: always, never (default: auto-detect)")
	rootCmd.PersistentFlags().IntVar(&maxMetas, "max-metas", 0, "meta-allocation budget for one pass (overrides config file, 0 = unbounded)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the active Config from --config plus flag
// overrides, falling back to config.Default() if no file was given.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	switch traceFlag {
	case "off":
		cfg.Trace = config.TraceOff
	case "shallow":
		cfg.Trace = config.TraceShallow
	case "full":
		cfg.Trace = config.TraceFull
	}
	switch colorFlag {
	case "always":
		t := true
		cfg.Color = &t
	case "never":
		f := false
		cfg.Color = &f
	}
	if rootCmd.PersistentFlags().Changed("max-metas") {
		cfg.MaxMetas = maxMetas
	}
	return cfg, nil
}

func newTracer(cfg config.Config) *trace.Tracer {
	if cfg.Trace == config.TraceOff {
		return nil
	}
	return trace.New(os.Stderr, cfg.UseColor(os.Stderr.Fd()))
}

func colorizer(cfg config.Config) (errf, okf func(a ...any) string) {
	if !cfg.UseColor(os.Stdout.Fd()) {
		identity := func(a ...any) string { return fmt.Sprint(a...) }
		return identity, identity
	}
	return color.New(color.FgRed).SprintFunc(), color.New(color.FgGreen).SprintFunc()
}
