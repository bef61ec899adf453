package surface

import "testing"

func TestNextTokenBasic(t *testing.T) {
	input := `let x : U := λ y. y; -- a comment
x x`
	tests := []struct {
		typ TokenType
		lit string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{COLON, ":"},
		{U, "U"},
		{ASSIGN, ":="},
		{LAMBDA, "λ"},
		{IDENT, "y"},
		{DOT, "."},
		{IDENT, "y"},
		{SEMICOLON, ";"},
		{IDENT, "x"},
		{IDENT, "x"},
		{EOF, ""},
	}
	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Fatalf("token %d: got {%s %q}, want {%s %q}", i, tok.Type, tok.Literal, tt.typ, tt.lit)
		}
	}
}

func TestLexerBackslashLambdaAndAsciiArrow(t *testing.T) {
	l := NewLexer(`\x -> x`)
	tests := []struct {
		typ TokenType
		lit string
	}{
		{LAMBDA, "\\"},
		{IDENT, "x"},
		{ARROW, "->"},
		{IDENT, "x"},
		{EOF, ""},
	}
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Fatalf("token %d: got {%s %q}, want {%s %q}", i, tok.Type, tok.Literal, tt.typ, tt.lit)
		}
	}
}

func TestLexerHoleVsUnderscoreIdent(t *testing.T) {
	l := NewLexer(`_ _foo`)
	tok1 := l.NextToken()
	if tok1.Type != HOLE {
		t.Errorf("token for bare _ = %s, want HOLE", tok1.Type)
	}
	tok2 := l.NextToken()
	if tok2.Type != IDENT || tok2.Literal != "_foo" {
		t.Errorf("token for _foo = {%s %q}, want {IDENT \"_foo\"}", tok2.Type, tok2.Literal)
	}
}

func TestLexerUnicodeArrowAndLambda(t *testing.T) {
	l := NewLexer(`λ U → U`)
	tests := []TokenType{LAMBDA, U, ARROW, U, EOF}
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d type = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	l := NewLexer(`@`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Errorf("token for @ = %s, want ILLEGAL", tok.Type)
	}
}
