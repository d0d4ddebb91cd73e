package lambda

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenLambda
	TokenDot
	TokenColon
	TokenEqual
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLet
	TokenIn
)

var tokenNames = [...]string{
	TokenEOF:       "end of input",
	TokenIdent:     "identifier",
	TokenLambda:    "'λ'",
	TokenDot:       "'.'",
	TokenColon:     "':'",
	TokenEqual:     "'='",
	TokenSemicolon: "';'",
	TokenLParen:    "'('",
	TokenRParen:    "')'",
	TokenLet:       "'let'",
	TokenIn:        "'in'",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "unknown"
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

// ParseError reports malformed input. Pos is a byte offset into the input.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

type Parser struct {
	input   string
	pos     int
	current Token
	err     *ParseError
}

func NewParser(input string) *Parser {
	p := &Parser{input: input}
	p.next()
	return p
}

func (p *Parser) errorf(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) next() {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Pos: p.pos}
		return
	}

	start := p.pos
	ch, size := utf8.DecodeRuneInString(p.input[p.pos:])
	switch {
	case ch == 'λ' || ch == '\\':
		p.current = Token{Type: TokenLambda, Literal: string(ch), Pos: start}
		p.pos += size
	case isLetter(ch):
		for p.pos < len(p.input) {
			r, n := utf8.DecodeRuneInString(p.input[p.pos:])
			if !isLetter(r) && !isDigit(r) {
				break
			}
			p.pos += n
		}
		for p.pos < len(p.input) && p.input[p.pos] == '\'' {
			p.pos++
		}
		lit := p.input[start:p.pos]
		switch lit {
		case "let":
			p.current = Token{Type: TokenLet, Literal: lit, Pos: start}
		case "in":
			p.current = Token{Type: TokenIn, Literal: lit, Pos: start}
		default:
			p.current = Token{Type: TokenIdent, Literal: lit, Pos: start}
		}
	case ch == '.':
		p.single(TokenDot)
	case ch == ':':
		p.single(TokenColon)
	case ch == '=':
		p.single(TokenEqual)
	case ch == ';':
		p.single(TokenSemicolon)
	case ch == '(':
		p.single(TokenLParen)
	case ch == ')':
		p.single(TokenRParen)
	default:
		if p.err == nil {
			p.err = p.errorf(start, "unexpected character %q", ch)
		}
		p.current = Token{Type: TokenEOF, Pos: start}
		p.pos = len(p.input)
	}
}

func (p *Parser) single(typ TokenType) {
	p.current = Token{Type: typ, Literal: p.input[p.pos : p.pos+1], Pos: p.pos}
	p.pos++
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) {
		r, n := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += n
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || (ch != 'λ' && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// Parse parses a whole term; trailing input is an error.
func (p *Parser) Parse() (Term, error) {
	term, err := p.parseTerm()
	if p.err != nil {
		return nil, p.err
	}
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, p.errorf(p.current.Pos, "unexpected %s", p.current.Type)
	}
	return term, nil
}

// Term ::= Let | Lambda | App
func (p *Parser) parseTerm() (Term, error) {
	switch p.current.Type {
	case TokenLet:
		return p.parseLet()
	case TokenLambda:
		return p.parseLambda()
	}
	return p.parseApp()
}

// Lambda ::= λ Binder+ . Term, Binder ::= Ident (: Type)?
func (p *Parser) parseLambda() (Term, error) {
	start := p.current.Pos
	p.next() // consume λ

	var binders []Variable
	for p.current.Type == TokenIdent {
		v := Variable{Name: p.current.Literal}
		p.next()
		if p.current.Type == TokenColon {
			typ, err := p.scanType()
			if err != nil {
				return nil, err
			}
			v.Type = typ
			p.next()
		}
		binders = append(binders, v)
	}
	if len(binders) == 0 {
		return nil, p.errorf(start, "expected binder after λ")
	}
	if p.current.Type != TokenDot {
		return nil, p.errorf(p.current.Pos, "expected '.' after binders, got %s", p.current.Type)
	}
	p.next() // consume .

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for i := len(binders) - 1; i >= 0; i-- {
		body = Abs{Bound: binders[i], Body: body}
	}
	return body, nil
}

// scanType reads a raw type annotation straight after ':'. Parentheses
// nest; the annotation ends at whitespace, '.' or an unbalanced ')'.
func (p *Parser) scanType() (string, error) {
	p.skipWhitespace()
	start := p.pos
	depth := 0
loop:
	for p.pos < len(p.input) {
		r, n := utf8.DecodeRuneInString(p.input[p.pos:])
		switch {
		case unicode.IsSpace(r), r == '.', r == 'λ', r == '\\':
			break loop
		case r == '(':
			depth++
		case r == ')':
			if depth == 0 {
				break loop
			}
			depth--
		}
		p.pos += n
	}
	typ := strings.TrimSpace(p.input[start:p.pos])
	if typ == "" || depth != 0 {
		return "", p.errorf(start, "malformed type annotation %q", typ)
	}
	return typ, nil
}

func (p *Parser) parseApp() (Term, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TokenEOF, TokenRParen, TokenSemicolon, TokenIn:
			return left, nil
		case TokenLambda, TokenLet:
			// A lambda in argument position extends as far right as
			// possible, so `x λy.y z` is `x (λy.(y z))`.
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			return App{Fun: left, Arg: arg}, nil
		}

		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = App{Fun: left, Arg: right}
	}
}

func (p *Parser) parseAtom() (Term, error) {
	switch p.current.Type {
	case TokenIdent:
		name := p.current.Literal
		p.next()
		return Var{V: Variable{Name: name}}, nil
	case TokenLParen:
		p.next()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenRParen {
			return nil, p.errorf(p.current.Pos, "expected ')', got %s", p.current.Type)
		}
		p.next()
		return term, nil
	default:
		return nil, p.errorf(p.current.Pos, "unexpected %s", p.current.Type)
	}
}

func (p *Parser) parseLet() (Term, error) {
	p.next() // consume 'let'

	// Parse bindings: x = M; y = N; ...
	type binding struct {
		name string
		val  Term
	}
	var bindings []binding

	for {
		if p.current.Type != TokenIdent {
			return nil, p.errorf(p.current.Pos, "expected identifier in let binding")
		}
		name := p.current.Literal
		p.next()

		if p.current.Type != TokenEqual {
			return nil, p.errorf(p.current.Pos, "expected '='")
		}
		p.next()

		val, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		bindings = append(bindings, binding{name, val})

		if p.current.Type == TokenSemicolon {
			p.next()
			// Check if next is 'in' or another ident
			if p.current.Type == TokenIn {
				p.next()
				break
			}
			// Continue to next binding
		} else if p.current.Type == TokenIn {
			p.next()
			break
		} else {
			return nil, p.errorf(p.current.Pos, "expected ';' or 'in'")
		}
	}

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	// Desugar: let x=M; y=N in B -> (\x. (\y. B) N) M
	// We iterate backwards
	term := body
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		term = App{
			Fun: Abs{Bound: Variable{Name: b.name}, Body: term},
			Arg: b.val,
		}
	}

	return term, nil
}

// Parse parses a lambda term from a string.
func Parse(input string) (Term, error) {
	p := NewParser(input)
	return p.Parse()
}
