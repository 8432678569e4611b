// Released under an MIT license. See LICENSE.

// Package commands provides the native combiners of the ground environment.
package commands

import (
	"sort"

	"github.com/michaelmacinnis/unilang/internal/engine/eval"
	"github.com/michaelmacinnis/unilang/internal/env"
)

// Forms returns the native operatives.
func Forms() map[string]eval.Handler {
	return map[string]eval.Handler{
		"$and":       and,
		"$cond":      cond,
		"$def!":      def,
		"$defl!":     defineClosure(true),
		"$defv!":     defineClosure(false),
		"$if":        conditional,
		"$lambda":    closure(true, false, true),
		"$lambda%":   closure(true, false, false),
		"$lambda/e":  closure(true, true, true),
		"$lambda/e%": closure(true, true, false),
		"$let":       let,
		"$or":        or,
		"$sequence":  sequence,
		"$set!":      set,
		"$vau":       closure(false, false, true),
		"$vau%":      closure(false, false, false),
		"$vau/e":     closure(false, true, true),
		"$vau/e%":    closure(false, true, false),
	}
}

// Functions returns the native applicatives.
func Functions() map[string]eval.Handler {
	return map[string]eval.Handler{
		"*":                        mul,
		"+":                        add,
		"-":                        sub,
		"/":                        div,
		"<=?":                      compare(func(c int) bool { return c <= 0 }),
		"<?":                       compare(func(c int) bool { return c < 0 }),
		"=?":                       compare(func(c int) bool { return c == 0 }),
		">=?":                      compare(func(c int) bool { return c >= 0 }),
		">?":                       compare(func(c int) bool { return c > 0 }),
		"applicative?":             is(isApplicative),
		"as-const":                 asConst,
		"boolean?":                 is(isBoolean),
		"call/1cc":                 callWithOneShot,
		"combiner?":                is(isCombiner),
		"cons":                     cons,
		"display":                  display,
		"environment?":             is(isEnvironment),
		"eq?":                      eq,
		"eqv?":                     eqv,
		"eval":                     evaluate(true),
		"eval%":                    evaluate(false),
		"first":                    first,
		"forward!":                 forward,
		"get-current-environment":  getCurrentEnvironment,
		"integer?":                 is(isInteger),
		"list":                     list,
		"list?":                    is(isList),
		"lock-current-environment": lockCurrentEnvironment,
		"make-environment":         makeEnvironment,
		"move!":                    move,
		"newline":                  newline,
		"not?":                     not,
		"null?":                    is(isNull),
		"operative?":               is(isOperative),
		"raise-invalid-syntax":     raiseInvalidSyntax,
		"reference?":               isReference,
		"rest":                     rest,
		"string-append":            stringAppend,
		"string?":                  is(isString),
		"symbol?":                  is(isSymbol),
		"unwrap":                   unwrap,
		"wrap":                     wrap,
	}
}

// Register binds every native combiner in e.
func Register(e *env.T) error {
	forms := Forms()
	for _, k := range sorted(forms) {
		if err := eval.RegisterForm(e, k, forms[k]); err != nil {
			return err
		}
	}

	functions := Functions()
	for _, k := range sorted(functions) {
		if err := eval.RegisterStrict(e, k, functions[k]); err != nil {
			return err
		}
	}

	return nil
}

func sorted(m map[string]eval.Handler) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}

	sort.Strings(ks)

	return ks
}
