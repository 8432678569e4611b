// Released under an MIT license. See LICENSE.

// Package ui provides an interactive interface for unilang.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/michaelmacinnis/unilang/internal/reader"
	"github.com/michaelmacinnis/unilang/internal/system/history"
	"github.com/michaelmacinnis/unilang/internal/term"
	"github.com/peterh/liner"
)

// Evaluator is the interface for things that evaluate parsed expressions.
type Evaluator interface {
	Evaluate(root *term.T) (*term.T, error)
	Report(err error)
}

// Run reads expressions from the terminal and sends them to e until the
// user ends input. Values are written to w.
func Run(e Evaluator, w io.Writer) error {
	cooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	cli := liner.NewLiner()
	defer cli.Close()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	_ = history.Load(cli.ReadHistory)

	cli.SetCtrlCAborts(true)

	r := reader.New("unilang")

	for {
		if err := uncooked.ApplyMode(); err != nil {
			return err
		}

		line, err := cli.Prompt("> ")

		if merr := cooked.ApplyMode(); merr != nil {
			return merr
		}

		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			// Discard any partial expression.
			r.Close()
			r = reader.New("unilang")

			continue
		case errors.Is(err, io.EOF):
			r.Close()
			fmt.Fprintln(w)

			return history.Save(cli.WriteHistory)
		default:
			return err
		}

		if strings.TrimSpace(line) != "" {
			cli.AppendHistory(line)
		}

		ts, err := r.Scan(line + "\n")
		if err != nil {
			e.Report(err)

			r = reader.New("unilang")

			continue
		}

		Print(e, w, ts)
	}
}

// Print evaluates each of ts and writes the values that are not #inert.
func Print(e Evaluator, w io.Writer, ts []*term.T) {
	for _, t := range ts {
		v, err := e.Evaluate(term.NewBranch(t))
		if err != nil {
			e.Report(err)

			continue
		}

		if v.Value != term.Inert || !v.IsLeaf() {
			fmt.Fprintln(w, v)
		}
	}
}
