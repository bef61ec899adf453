package errors

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/elabkit/holecalc/internal/ast"
)

func TestWrapReportNilIsNilError(t *testing.T) {
	if err := WrapReport(nil); err != nil {
		t.Errorf("WrapReport(nil) = %v, want nil", err)
	}
}

func TestWrapReportAndAsReportRoundtrip(t *testing.T) {
	rep := &Report{Schema: Schema, Code: UnboundName, Phase: "elaborate", Message: "unbound name"}
	err := WrapReport(rep)
	got, ok := AsReport(err)
	if !ok {
		t.Fatal("AsReport did not recognize a WrapReport-wrapped error")
	}
	if got != rep {
		t.Errorf("AsReport returned a different *Report than was wrapped")
	}
}

func TestAsReportRejectsPlainError(t *testing.T) {
	_, ok := AsReport(&plainErr{"boom"})
	if ok {
		t.Error("AsReport accepted a plain error")
	}
}

type plainErr struct{ s string }

func (e *plainErr) Error() string { return e.s }

func TestReportErrorString(t *testing.T) {
	rep := &Report{Code: "E-UNBOUND", Message: "unbound name %q"}
	err := &ReportError{Rep: rep}
	if got, want := err.Error(), "E-UNBOUND: unbound name %q"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReportErrorNilRep(t *testing.T) {
	err := &ReportError{}
	if got, want := err.Error(), "unknown error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAtSpanCopiesNotMutates(t *testing.T) {
	rep := &Report{Code: Generic, Message: "m"}
	span := ast.Span{Start: 1, End: 2, File: "f"}
	withSpan := rep.AtSpan(span)
	if rep.Span != nil {
		t.Error("AtSpan mutated the receiver")
	}
	if withSpan.Span == nil || *withSpan.Span != span {
		t.Errorf("AtSpan result span = %#v, want %#v", withSpan.Span, span)
	}
}

func TestToJSONRoundtrips(t *testing.T) {
	rep := &Report{Schema: Schema, Code: RigidMismatch, Phase: "unify", Message: "nope", Data: map[string]any{"a": 1.0}}
	js, err := rep.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var back Report
	if err := json.Unmarshal([]byte(js), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Code != rep.Code || back.Message != rep.Message {
		t.Errorf("roundtrip mismatch: got %#v, want %#v", back, rep)
	}
}

func TestToJSONIndentedHasNewlines(t *testing.T) {
	rep := &Report{Schema: Schema, Code: Generic, Phase: "p", Message: "m"}
	js, err := rep.ToJSON(false)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(js, "\n") {
		t.Error("ToJSON(false) did not produce indented (multi-line) JSON")
	}
}

func TestWithPassIDPatchesDataField(t *testing.T) {
	rep := &Report{Schema: Schema, Code: Generic, Phase: "p", Message: "m"}
	js, err := rep.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	patched, err := WithPassID(js, "pass-123")
	if err != nil {
		t.Fatalf("WithPassID: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(patched), &data); err != nil {
		t.Fatalf("unmarshal patched: %v", err)
	}
	inner, ok := data["data"].(map[string]any)
	if !ok || inner["pass"] != "pass-123" {
		t.Errorf("patched data.pass = %#v, want %q", data["data"], "pass-123")
	}
}

func TestSortMetaNamesNaturalOrder(t *testing.T) {
	in := []string{"?10", "?2", "?1"}
	want := []string{"?1", "?2", "?10"}
	got := SortMetaNames(in)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortMetaNames(%v) = %v, want %v", in, got, want)
			break
		}
	}
	if in[0] != "?10" {
		t.Error("SortMetaNames mutated its input slice")
	}
}
