// Package errors is the structured diagnostic taxonomy for elaboration
// failures: a canonical, JSON-serializable Report rather than bare
// fmt.Errorf strings.
package errors

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/elabkit/holecalc/internal/ast"
	"github.com/maruel/natural"
	"github.com/tidwall/sjson"
)

// Schema identifies the report wire shape; bump alongside any breaking
// change to the Report struct's JSON fields.
const Schema = "holecalc.error/v1"

// Error code taxonomy, one per surface-visible failure kind.
const (
	UnboundName         = "E-UNBOUND"
	RigidMismatch       = "E-RIGID"
	SpineLengthMismatch = "E-SPINE"
	NonPattern          = "E-NONPATTERN"
	ScopeError          = "E-SCOPE"
	OccursCheck         = "E-OCCURS"
	Unimplemented       = "E-UNIMPL"
	Generic             = "E-GENERIC"
)

// Fix is an optional suggested remedy attached to a Report.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured error type. Every fallible
// operation in internal/elaborate and internal/unify returns one,
// wrapped as a *ReportError so it survives errors.As.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// WrapReport wraps r as an error. Returns nil for a nil Report so call
// sites can write `return errors.WrapReport(maybeNilReport)`.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// AsReport extracts a *Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// AtSpan returns a copy of r with Span set, for the common case of
// attaching the elaborator's current position to an otherwise-complete
// report.
func (r *Report) AtSpan(span ast.Span) *Report {
	out := *r
	out.Span = &span
	return &out
}

// ToJSON renders r as deterministic JSON: struct fields in declaration
// order, Data's map keys sorted.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WithPassID stamps a run/pass identifier onto an already-serialized
// report's Data.pass field via sjson, avoiding a full
// unmarshal-mutate-remarshal round trip when the caller (cmd/elaborate)
// only wants to add one field to diagnostics it is about to print.
func WithPassID(jsonReport, passID string) (string, error) {
	return sjson.Set(jsonReport, "data.pass", passID)
}

// SortMetaNames orders a slice of "?N"-shaped metavariable labels the
// way a human expects to read them (?2 before ?10), for the "list of
// unsolved metas" portion of a diagnostic.
func SortMetaNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Slice(out, func(i, j int) bool { return natural.Less(out[i], out[j]) })
	return out
}
