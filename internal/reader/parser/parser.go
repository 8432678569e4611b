// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for unilang.
//
//	<expression> ::= Symbol | String | '(' <expression>* <tail>? ')'
//	<tail>       ::= '.' (Symbol | '(' <expression>* ')')?
//
// A dotted tail naming a symbol becomes a single trailing symbol prefixed
// with a dot: (a . b) is read as (a .b). A dotted tail that is a list is
// spliced in: (a . (b c)) is read as (a b c).
package parser

import (
	"fmt"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/reader/token"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// T holds the state of the parser.
type T struct {
	ahead int             // Lookahead count.
	emit  func(*term.T)   // Function to call to emit a parsed expression.
	item  func() *token.T // Function to call to get another token.
	token *token.T        // Token lookahead.
}

// New creates a new parser.
// It connects a producer of tokens with a consumer of terms.
func New(emit func(*term.T), item func() *token.T) *T {
	return &T{emit: emit, item: item}
}

// Parse consumes tokens and emits terms until there are no more tokens.
func (p *T) Parse() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		e, ok := r.(*errs.Error)
		if !ok {
			panic(r)
		}

		err = e
	}()

	for t := p.peek(); t != nil; t = p.peek() {
		p.emit(p.expression())
	}

	return nil
}

func (p *T) consume() *token.T {
	if p.ahead == 0 {
		p.peek()
	}

	t := p.token

	p.ahead = 0
	p.token = nil

	return t
}

func (p *T) expect(c token.Class) {
	t := p.peek()
	if !t.Is(c) {
		p.unexpected(t, "expected "+c.String())
	}

	p.consume()
}

func (p *T) peek() *token.T {
	if p.ahead > 0 {
		return p.token
	}

	t := p.item()

	p.token = t
	p.ahead = 1

	return t
}

func (p *T) unexpected(t *token.T, msg string) {
	if t == nil {
		panic(errs.New(errs.InvalidSyntax, "unexpected end of input"))
	}

	s := t.Source()

	panic(errs.Errorf(errs.InvalidSyntax, "%s: unexpected '%s' (%s)", s.String(), t.Value(), msg))
}

// Parser state functions.

// <expression> ::= Symbol | String | '(' <list>.
func (p *T) expression() *term.T {
	t := p.consume()

	switch t.Class() {
	case '(':
		return p.list()
	case token.Symbol:
		return atom(t.Value())
	case token.DoubleQuoted:
		return p.str(t, t.Value()[1:len(t.Value())-1])
	case token.DollarSingleQuoted:
		return p.str(t, t.Value()[2:len(t.Value())-1])
	}

	p.unexpected(t, "expected an expression")

	return nil
}

// <list> ::= <expression>* <tail>? ')'.
func (p *T) list() *term.T {
	l := term.NewBranch()

	for {
		t := p.peek()

		switch {
		case t == nil:
			p.unexpected(t, "")
		case t.Is(')'):
			p.consume()

			return l
		case t.Is(token.Symbol) && t.Value() == ".":
			p.consume()
			p.tail(l)

			return l
		default:
			l.Children = append(l.Children, p.expression())
		}
	}
}

// <tail> ::= '.' (Symbol | '(' <expression>* ')')? ')'.
func (p *T) tail(l *term.T) {
	t := p.peek()

	switch {
	case t.Is(')'):
		l.Children = append(l.Children, term.NewAtom(term.Symbol(".")))
	case t.Is(token.Symbol):
		p.consume()
		l.Children = append(l.Children, term.NewAtom(term.Symbol("."+t.Value())))
	case t.Is('('):
		p.consume()
		l.Children = append(l.Children, p.list().Children...)
	default:
		p.unexpected(t, "expected a symbol or a list after '.'")
	}

	p.expect(')')
}

func (p *T) str(t *token.T, s string) *term.T {
	v, err := adapted.ActualBytes(s)
	if err != nil {
		p.unexpected(t, fmt.Sprintf("invalid string: %v", err))
	}

	return term.NewAtom(v)
}

func atom(s string) *term.T {
	if v, ok := term.ParseLiteral(s); ok {
		return term.NewAtom(v)
	}

	return term.NewAtom(term.Symbol(s))
}
