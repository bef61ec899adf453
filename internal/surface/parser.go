package surface

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/ast"
)

// Parser is a hand-written recursive-descent parser over a fully
// tokenized input, following the shared LET < PI < APP < ATOM ladder
// internal/printer's Raw/Term printers also use.
type Parser struct {
	file   string
	tokens []Token
	pos    int
}

// NewParser tokenizes src (attributed to file, used only in spans) and
// returns a Parser ready to call Parse.
func NewParser(src, file string) *Parser {
	l := NewLexer(src)
	var toks []Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == EOF {
			break
		}
	}
	return &Parser{file: file, tokens: toks}
}

// Parse parses one complete expression and requires the input be fully
// consumed (except trailing EOF).
func Parse(src, file string) (ast.Raw, error) {
	p := NewParser(src, file)
	r, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != EOF {
		return nil, p.errorf("unexpected trailing input %q", p.cur().Literal)
	}
	return r, nil
}

func (p *Parser) cur() Token { return p.tokens[p.pos] }
func (p *Parser) peek() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}
func (p *Parser) peekN(n int) Token {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n]
	}
	return p.tokens[len(p.tokens)-1]
}
func (p *Parser) advance() Token {
	t := p.cur()
	if p.pos+1 < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) span(startTok Token) ast.Span {
	// Closed interval: End is the last byte of the last consumed token.
	end := startTok.End - 1
	if p.pos > 0 {
		end = p.tokens[p.pos-1].End - 1
	}
	return ast.Span{Start: ast.Pos(startTok.Start), End: ast.Pos(end), File: p.file}
}

func (p *Parser) errorf(format string, args ...any) error {
	t := p.cur()
	return fmt.Errorf("%s:%d: %s", p.file, t.Start, fmt.Sprintf(format, args...))
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.cur().Type != tt {
		return Token{}, p.errorf("expected %s, got %s %q", tt, p.cur().Type, p.cur().Literal)
	}
	return p.advance(), nil
}

func wrapPos(start Token, p *Parser, r ast.Raw) ast.Raw {
	return ast.RSrcPos{Span: p.span(start), Raw: r}
}

// parseExpr is the LET-precedence entry point: let, lambda, or fall
// through to parsePi.
func (p *Parser) parseExpr() (ast.Raw, error) {
	start := p.cur()
	switch p.cur().Type {
	case LET:
		return p.parseLet(start)
	case LAMBDA:
		return p.parseLambda(start)
	default:
		return p.parsePi()
	}
}

func (p *Parser) parseLet(start Token) (ast.Raw, error) {
	p.advance() // let
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	ty, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	bound, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return wrapPos(start, p, ast.RLet{Name: ast.Intern(nameTok.Literal), Type: ty, Bound: bound, Body: body}), nil
}

func (p *Parser) parseLambda(start Token) (ast.Raw, error) {
	p.advance() // λ
	var names []ast.Name
	for p.cur().Type == IDENT || p.cur().Type == HOLE {
		names = append(names, ast.Intern(p.advance().Literal))
	}
	if len(names) == 0 {
		return nil, p.errorf("expected at least one binder after λ")
	}
	if _, err := p.expect(DOT); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	for i := len(names) - 1; i >= 0; i-- {
		body = ast.RLam{Name: names[i], Body: body}
	}
	return wrapPos(start, p, body), nil
}

// parsePi handles both the dependent "(x : A) (y : B) → C" form and the
// plain application-level term optionally followed by "→ Cod".
func (p *Parser) parsePi() (ast.Raw, error) {
	start := p.cur()
	if p.looksLikeBinder() {
		var names []ast.Name
		var doms []ast.Raw
		for p.looksLikeBinder() {
			p.advance() // (
			nameTok := p.advance()
			p.advance() // :
			dom, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RPAREN); err != nil {
				return nil, err
			}
			names = append(names, ast.Intern(nameTok.Literal))
			doms = append(doms, dom)
		}
		if _, err := p.expect(ARROW); err != nil {
			return nil, err
		}
		cod, err := p.parsePi()
		if err != nil {
			return nil, err
		}
		for i := len(names) - 1; i >= 0; i-- {
			cod = ast.RPi{Name: names[i], Dom: doms[i], Cod: cod}
		}
		return wrapPos(start, p, cod), nil
	}

	dom, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == ARROW {
		p.advance()
		cod, err := p.parsePi()
		if err != nil {
			return nil, err
		}
		return wrapPos(start, p, ast.RPi{Name: ast.Underscore, Dom: dom, Cod: cod}), nil
	}
	return dom, nil
}

// looksLikeBinder reports whether the upcoming tokens are
// "(" IDENT ":" — the only shape that can start a dependent Π binder,
// as opposed to a parenthesized sub-expression.
func (p *Parser) looksLikeBinder() bool {
	return p.cur().Type == LPAREN && p.peek().Type == IDENT && p.peekN(2).Type == COLON
}

func (p *Parser) parseApp() (ast.Raw, error) {
	start := p.cur()
	fn, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = wrapPos(start, p, ast.RApp{Func: fn, Arg: arg})
	}
	return fn, nil
}

func (p *Parser) startsAtom() bool {
	switch p.cur().Type {
	case IDENT, HOLE, U, LPAREN:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtom() (ast.Raw, error) {
	start := p.cur()
	switch start.Type {
	case IDENT:
		p.advance()
		return wrapPos(start, p, ast.RVar{Name: ast.Intern(start.Literal)}), nil
	case HOLE:
		p.advance()
		return wrapPos(start, p, ast.RHole{}), nil
	case U:
		p.advance()
		return wrapPos(start, p, ast.RU{}), nil
	case LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf("unexpected token %s %q", start.Type, start.Literal)
	}
}
