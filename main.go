// Released under an MIT license. See LICENSE.

/*
Unilang evaluates programs written in unilang, a small language of first-class
environments, operatives and references. Tail calls run in constant space and
call/1cc captures one-shot continuations.

	($defl! loop (n) ($if (=? n 0) #t (loop (- n 1))))
	(loop 1000000)

Unilang is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/michaelmacinnis/unilang/internal/engine"
	"github.com/michaelmacinnis/unilang/internal/system/options"
	"github.com/michaelmacinnis/unilang/internal/term"
	"github.com/michaelmacinnis/unilang/internal/ui"
)

func main() {
	if err := options.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := engine.DefaultConfig()
	cfg.Trace = options.Trace()

	os.Exit(run(cfg, os.Stdin, os.Stdout))
}

func arguments(args []string) *term.T {
	l := term.NewBranch()
	for _, s := range args {
		l.Children = append(l.Children, term.NewAtom(s))
	}

	return l
}

func run(cfg engine.Config, stdin io.Reader, stdout io.Writer) int {
	e, err := engine.New(cfg)
	if err != nil {
		engine.Report(cfg.Errors, err)

		return 1
	}

	if err := e.Env().Define("arguments", arguments(options.Args())); err != nil {
		e.Report(err)

		return 1
	}

	name, text := options.Script(), options.Command()

	switch {
	case name != "":
		b, err := os.ReadFile(name)
		if err != nil {
			e.Report(err)

			return 1
		}

		text = string(b)
	case text != "":
		name = "command"
	case !options.Interactive():
		b, err := io.ReadAll(stdin)
		if err != nil {
			e.Report(err)

			return 1
		}

		name, text = "stdin", string(b)
	}

	if text != "" {
		v, err := e.EvaluateString(name, text)
		if err != nil {
			e.Report(err)

			return 1
		}

		if options.Command() != "" && v.Value != term.Inert {
			fmt.Fprintln(stdout, v)
		}
	}

	if options.Interactive() {
		if err := ui.Run(e, stdout); err != nil {
			e.Report(err)

			return 1
		}
	}

	return 0
}
