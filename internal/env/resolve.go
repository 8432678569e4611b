// Released under an MIT license. See LICENSE.

package env

import (
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Chains longer than this are checked for cycles.
const chainLimit = 1024

// Resolve looks for k in start and then in start's ancestors. The binding and
// the environment where it was found are returned. If k is not bound, both
// are nil.
//
// A single parent is followed directly. A list of parents is searched left to
// right, each parent's ancestors before the next parent. Parents still to be
// searched are kept on an explicit stack.
func Resolve(start *env, k term.Symbol) (*term.T, *env, error) {
	var (
		pending []interface{}
		visited map[*env]bool
	)

	branched := false
	steps := 0

	for e := start; ; {
		if v, ok := e.bindings[k]; ok {
			return v, e, nil
		}

		pending = append(pending, e.parent)

		e = nil
		for e == nil {
			if len(pending) == 0 {
				return nil, nil, nil
			}

			p := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			switch p := p.(type) {
			case []interface{}:
				branched = true
				for i := len(p) - 1; i >= 0; i-- {
					pending = append(pending, p[i])
				}

				continue
			case Ref:
				if p.Expired() {
					return nil, nil, expired(k)
				}

				e = p.env
			case Shared:
				e = p.env
			default:
				continue
			}

			steps++
			if visited == nil && (branched || steps > chainLimit) {
				visited = map[*env]bool{}
			}

			if visited == nil {
				break
			}

			if visited[e] {
				if !branched {
					return nil, nil, errs.Errorf(errs.InvalidReference,
						"cyclic parent environment found resolving '%s'", k)
				}

				// Already searched by way of another parent.
				e = nil

				continue
			}

			visited[e] = true
		}
	}
}

// Lookup resolves k and returns the bound term, or a BadIdentifier error.
func Lookup(start *env, k term.Symbol) (*term.T, *env, error) {
	v, e, err := Resolve(start, k)
	if err != nil {
		return nil, nil, err
	}

	if v == nil {
		return nil, nil, errs.Errorf(errs.BadIdentifier, "unbound symbol: '%s'", k)
	}

	return v, e, nil
}

func expired(k term.Symbol) error {
	if reserved(string(k)) {
		return errs.Errorf(errs.InvalidReference,
			"reserved name '%s' resolved through an expired environment", k)
	}

	return errs.Errorf(errs.InvalidReference,
		"expired parent environment found resolving '%s'", k)
}
