package printer

import (
	"testing"

	"github.com/elabkit/holecalc/internal/core"
)

func TestPushFreshensCollidingName(t *testing.T) {
	fr := NewFresh(nil)
	fr.Push("x")
	got := fr.Push("x")
	if got != "x'" {
		t.Errorf("second Push(\"x\") = %q, want %q", got, "x'")
	}
}

func TestUnderscoreNeverFreshens(t *testing.T) {
	fr := NewFresh(nil)
	fr.Push("_")
	got := fr.Push("_")
	if got != "_" {
		t.Errorf("Push(\"_\") after another \"_\" = %q, want %q (never freshened)", got, "_")
	}
}

func TestPopUndoesPush(t *testing.T) {
	fr := NewFresh([]core.Name{"x"})
	fr.Push("y")
	fr.Pop()
	got := fr.Push("y")
	if got != "y" {
		t.Errorf("Push(\"y\") after Pop = %q, want %q (no longer colliding)", got, "y")
	}
}

func TestAtIxCountsInnermostFirst(t *testing.T) {
	fr := NewFresh([]core.Name{"a", "b", "c"})
	if got := fr.AtIx(0); got != "c" {
		t.Errorf("AtIx(0) = %q, want %q", got, "c")
	}
	if got := fr.AtIx(2); got != "a" {
		t.Errorf("AtIx(2) = %q, want %q", got, "a")
	}
}

func TestAtLvlCountsOutermostFirst(t *testing.T) {
	fr := NewFresh([]core.Name{"a", "b", "c"})
	if got := fr.AtLvl(0); got != "a" {
		t.Errorf("AtLvl(0) = %q, want %q", got, "a")
	}
}

func TestWithBinderPushesAfterF(t *testing.T) {
	fr := NewFresh(nil)
	var seenDuring core.Name
	fr.WithBinder("x", func(used core.Name) {
		seenDuring = used
		// The binder itself must not be visible to its own domain.
		if fr.contains("x") {
			t.Error("WithBinder's own name was visible to f before being pushed")
		}
	})
	if seenDuring != "x" {
		t.Errorf("WithBinder passed %q to f, want %q", seenDuring, "x")
	}
	if !fr.contains("x") {
		t.Error("WithBinder did not leave the name pushed for the caller to Pop")
	}
}
