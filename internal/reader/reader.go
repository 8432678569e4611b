// Released under an MIT license. See LICENSE.

// Package reader turns unilang source text into terms.
package reader

import (
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/reader/lexer"
	"github.com/michaelmacinnis/unilang/internal/reader/parser"
	"github.com/michaelmacinnis/unilang/internal/reader/token"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// T (reader) encapsulates the lexer and parser for interactive use. Lines
// are passed in one at a time and expressions are returned as they are
// completed.
type T struct {
	e chan error
	i chan string
	o chan []*term.T
	p *parser.T
	s *lexer.T
}

type reader = T

// New creates a new reader for name.
func New(name string) *T {
	r := &T{
		e: make(chan error),
		i: make(chan string),
		o: make(chan []*term.T),
		s: lexer.New(name),
	}

	var done []*term.T

	r.p = parser.New(func(t *term.T) {
		done = append(done, t)
	}, func() *token.T {
		t := r.s.Token()

		for t == nil {
			r.o <- done

			done = nil

			if !r.next() {
				close(r.o)

				return nil
			}

			t = r.s.Token()
		}

		return t
	})

	go r.start()

	return r
}

// Close terminates the reader.
func (r *reader) Close() {
	close(r.i)
}

// Scan reads the line and returns the expressions it completes. If the line
// leaves an expression incomplete, nothing is returned for it until a later
// line completes it. Once Scan returns an error the reader is finished.
func (r *reader) Scan(line string) (ts []*term.T, err error) {
	r.i <- line

	select {
	case ts = <-r.o:
	case err = <-r.e:
	}

	return ts, err
}

func (r *reader) next() bool {
	line, ok := <-r.i
	if ok {
		r.s.Scan(line)
	}

	return ok
}

func (r *reader) start() {
	r.next()

	if err := r.p.Parse(); err != nil {
		r.e <- err
	}

	close(r.e)
}

// Read parses all of text and returns a list of the expressions in it.
func Read(name, text string) (*term.T, error) {
	l := lexer.New(name)
	l.Scan(text)
	l.Scan("\n")

	root := term.NewBranch()

	err := parser.New(func(t *term.T) {
		root.Children = append(root.Children, t)
	}, l.Token).Parse()
	if err != nil {
		return nil, err
	}

	if l.Pending() {
		return nil, errs.New(errs.InvalidSyntax, "unterminated string at end of input")
	}

	return root, nil
}
