// Package config loads the elaborator's run configuration: trace
// verbosity, ANSI color, and the meta-allocation budget that guards
// against runaway elaboration of pathological input.
package config

import (
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Trace selects whether the check/infer call tree is logged. Any value
// other than TraceOff turns on the same full trace: TraceShallow and
// TraceFull are not distinguished.
type Trace string

const (
	TraceOff     Trace = "off"
	TraceShallow Trace = "shallow"
	TraceFull    Trace = "full"
)

// Config is the elaborator's run configuration, loadable from a YAML
// file and overridable by CLI flags.
type Config struct {
	Trace Trace `yaml:"trace"`

	// Color is a pointer so "unset" is distinguishable from "explicitly
	// false": unset falls back to auto-detection against the output
	// stream, explicit true/false always wins.
	Color *bool `yaml:"color,omitempty"`

	// MaxMetas bounds how many metavariables one elaboration pass may
	// allocate before it aborts with a structured report instead of
	// continuing to loop on malformed input. Zero means unbounded.
	MaxMetas int `yaml:"max_metas"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{Trace: TraceOff, MaxMetas: 100_000}
}

// Load reads and parses a YAML configuration file, layering it over
// Default() so a partial file only overrides what it mentions.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UseColor resolves the Color setting against an output file descriptor:
// an explicit setting always wins, otherwise color is used only when fd
// is a terminal.
func (c Config) UseColor(fd uintptr) bool {
	if c.Color != nil {
		return *c.Color
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
