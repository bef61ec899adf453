package ast

import "testing"

func TestInternSameStringSameName(t *testing.T) {
	a := Intern("foo")
	b := Intern("foo")
	if a != b {
		t.Errorf("Intern(%q) = %v, %v; want equal", "foo", a, b)
	}
}

func TestInternNFCNormalizes(t *testing.T) {
	// U+00E9 (precomposed) vs U+0065 U+0301 (e + combining acute accent):
	// canonically equivalent, distinct byte sequences.
	precomposed := "café"
	decomposed := "café"
	if precomposed == decomposed {
		t.Fatal("test fixture strings must differ byte-for-byte before interning")
	}
	a := Intern(precomposed)
	b := Intern(decomposed)
	if a != b {
		t.Errorf("Intern of NFC-equivalent strings produced distinct Names: %v vs %v", a, b)
	}
}

func TestUnderscoreConstant(t *testing.T) {
	if Underscore != Name("_") {
		t.Errorf("Underscore = %v, want %q", Underscore, "_")
	}
}

func TestSpanString(t *testing.T) {
	s := Span{Start: 3, End: 9, File: "x.hc"}
	if got, want := s.String(), "x.hc:3-9"; got != want {
		t.Errorf("Span.String() = %q, want %q", got, want)
	}
	s2 := Span{Start: 3, End: 9}
	if got, want := s2.String(), "3-9"; got != want {
		t.Errorf("Span.String() (no file) = %q, want %q", got, want)
	}
}

func TestUnwrapStripsNestedSrcPos(t *testing.T) {
	inner := RVar{Name: Intern("x")}
	wrapped := RSrcPos{Span: Span{Start: 0, End: 1}, Raw: RSrcPos{Span: Span{Start: 2, End: 3}, Raw: inner}}

	r, span := Unwrap(wrapped)
	if r != Raw(inner) {
		t.Errorf("Unwrap node = %#v, want %#v", r, inner)
	}
	if span == nil || span.Start != 2 || span.End != 3 {
		t.Errorf("Unwrap span = %#v, want the innermost span {2,3}", span)
	}
}

func TestUnwrapPlainNode(t *testing.T) {
	r, span := Unwrap(RU{})
	if _, ok := r.(RU); !ok {
		t.Errorf("Unwrap(RU{}) node = %#v, want RU{}", r)
	}
	if span != nil {
		t.Errorf("Unwrap of an unwrapped node should report no span, got %#v", span)
	}
}
