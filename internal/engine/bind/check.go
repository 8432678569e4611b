// Released under an MIT license. See LICENSE.

package bind

import (
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Check returns an error if p is not a well-formed parameter tree. Every
// name bound by p must be distinct.
func Check(p *term.T) error {
	seen := map[term.Symbol]bool{}

	type job struct {
		p    *term.T
		last bool
	}

	pending := []job{{p, false}}

	for len(pending) != 0 {
		j := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if j.p.IsBranch() {
			if j.p.Value != nil {
				return errs.Errorf(errs.InvalidSyntax, "unexpected value in parameter list %s", j.p)
			}

			n := len(j.p.Children)
			for i := n - 1; i >= 0; i-- {
				pending = append(pending, job{j.p.Children[i], i == n-1})
			}

			continue
		}

		switch v := j.p.Value.(type) {
		case nil:
			continue
		case term.Special:
			if v == term.Ignore {
				continue
			}
		case term.Symbol:
			name := v

			if name != "" && name[0] == '.' {
				if !j.last {
					return errs.Errorf(errs.InvalidSyntax,
						"rest parameter '%s' is not last", v)
				}

				if name = name[1:]; name == "" {
					continue
				}
			}

			if _, name = Split(name); name == "" {
				return errs.Errorf(errs.BadIdentifier, "empty parameter name in '%s'", v)
			}

			if seen[name] {
				return errs.Errorf(errs.BadIdentifier, "duplicate parameter '%s'", name)
			}

			seen[name] = true

			continue
		}

		return errs.Errorf(errs.InvalidSyntax,
			"expected a symbol, #ignore or a list, got %s", j.p)
	}

	return nil
}
