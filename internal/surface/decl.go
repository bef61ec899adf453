package surface

import "github.com/elabkit/holecalc/internal/ast"

// Binding is a top-level `let name : Type := Bound` with no body,
// the shape a REPL line uses to persistently extend its context
// (as opposed to ast.RLet, which always has a Body it scopes over).
type Binding struct {
	Name  ast.Name
	Type  ast.Raw
	Bound ast.Raw
}

// ParseDecl parses one REPL input line as either a Binding (if it
// starts with "let") or a plain expression. A "let" line must be a
// body-less binding: one with a body after its ";" is rejected.
func ParseDecl(src, file string) (Binding, ast.Raw, error) {
	p := NewParser(src, file)
	if p.cur().Type != LET {
		r, err := p.parseExpr()
		if err != nil {
			return Binding{}, nil, err
		}
		if p.cur().Type != EOF {
			return Binding{}, nil, p.errorf("unexpected trailing input %q", p.cur().Literal)
		}
		return Binding{}, r, nil
	}

	start := p.advance() // let
	_ = start
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return Binding{}, nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return Binding{}, nil, err
	}
	ty, err := p.parseExpr()
	if err != nil {
		return Binding{}, nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return Binding{}, nil, err
	}
	bound, err := p.parseExpr()
	if err != nil {
		return Binding{}, nil, err
	}
	if p.cur().Type == SEMICOLON {
		p.advance()
	}
	if p.cur().Type != EOF {
		return Binding{}, nil, p.errorf("unexpected trailing input %q", p.cur().Literal)
	}
	return Binding{Name: ast.Intern(nameTok.Literal), Type: ty, Bound: bound}, nil, nil
}
