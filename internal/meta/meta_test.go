package meta

import "testing"

func TestMetaVarString(t *testing.T) {
	tests := []struct {
		m    MetaVar
		want string
	}{
		{0, "?0"},
		{7, "?7"},
		{42, "?42"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("MetaVar(%d).String() = %q, want %q", int(tt.m), got, tt.want)
		}
	}
}

func TestBDString(t *testing.T) {
	if Bound.String() != "bound" {
		t.Errorf("Bound.String() = %q, want %q", Bound.String(), "bound")
	}
	if Defined.String() != "defined" {
		t.Errorf("Defined.String() = %q, want %q", Defined.String(), "defined")
	}
}
