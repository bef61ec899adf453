package elaborate

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/elabkit/holecalc/internal/errors"
	"github.com/elabkit/holecalc/internal/eval"
	"github.com/elabkit/holecalc/internal/metastore"
	"github.com/elabkit/holecalc/internal/printer"
	"github.com/elabkit/holecalc/internal/surface"
	"github.com/elabkit/holecalc/internal/value"
)

type scenario struct {
	Name         string `yaml:"name"`
	Source       string `yaml:"source"`
	CheckAgainst string `yaml:"check_against"`
	NormalForm   string `yaml:"normal_form"`
	ErrorCode    string `yaml:"error_code"`

	// UnsolvedMetas is how many metas a successful elaboration leaves
	// unsolved (0 unless the fixture says otherwise).
	UnsolvedMetas int `yaml:"unsolved_metas"`
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	data, err := os.ReadFile("testdata/scenarios.yaml")
	if err != nil {
		t.Fatalf("reading testdata/scenarios.yaml: %v", err)
	}
	var out []scenario
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal scenarios.yaml: %v", err)
	}
	return out
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			if sc.CheckAgainst != "" {
				runCheckAgainstScenario(t, sc)
				return
			}
			runElaborateScenario(t, sc)
		})
	}
}

func runElaborateScenario(t *testing.T, sc scenario) {
	t.Helper()
	raw, err := surface.Parse(sc.Source, sc.Name)
	if err != nil {
		t.Fatalf("parsing source: %v", err)
	}
	res, err := Elaborate(raw, nil, 0)
	if sc.ErrorCode != "" {
		if err == nil {
			t.Fatalf("expected elaboration to fail with %s, but it succeeded with term %v", sc.ErrorCode, res.Term)
		}
		rep, ok := errors.AsReport(err)
		if !ok {
			t.Fatalf("error %v is not a structured Report", err)
		}
		if rep.Code != sc.ErrorCode {
			t.Fatalf("error code = %q, want %q", rep.Code, sc.ErrorCode)
		}
		return
	}
	if err != nil {
		t.Fatalf("elaboration failed: %v", err)
	}
	if len(res.Metas.Unsolved()) != sc.UnsolvedMetas {
		t.Errorf("expected %d unsolved metas, got %v", sc.UnsolvedMetas, res.Metas.Unsolved())
	}
	nf := NormalForm(res.Metas, res.Term)
	got := printer.Term(nil, nf)
	want := strings.TrimSpace(sc.NormalForm)
	if got != want {
		t.Errorf("normal form = %q, want %q", got, want)
	}
}

func runCheckAgainstScenario(t *testing.T, sc scenario) {
	t.Helper()
	tyRaw, err := surface.Parse(sc.CheckAgainst, sc.Name+"#type")
	if err != nil {
		t.Fatalf("parsing check_against: %v", err)
	}
	metas := metastore.New()
	cxt := NewCxt(nil)
	tyTerm, err := Check(metas, cxt, tyRaw, value.VU{})
	if err != nil {
		t.Fatalf("elaborating check_against as a type: %v", err)
	}
	ty := eval.Eval(metas, cxt.Env(), tyTerm)

	raw, err := surface.Parse(sc.Source, sc.Name)
	if err != nil {
		t.Fatalf("parsing source: %v", err)
	}
	_, err = Check(metas, cxt, raw, ty)
	if sc.ErrorCode == "" {
		if err != nil {
			t.Fatalf("Check failed unexpectedly: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected Check to fail with %s, but it succeeded", sc.ErrorCode)
	}
	rep, ok := errors.AsReport(err)
	if !ok {
		t.Fatalf("error %v is not a structured Report", err)
	}
	if rep.Code != sc.ErrorCode {
		t.Fatalf("error code = %q, want %q", rep.Code, sc.ErrorCode)
	}
}
