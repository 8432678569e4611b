// Released under an MIT license. See LICENSE.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michaelmacinnis/unilang/internal/engine"
)

func config(out, errs *bytes.Buffer) engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Errors = errs
	cfg.Output = out

	return cfg
}

func TestRunStdin(t *testing.T) {
	var out, errs bytes.Buffer

	program := `
($defl! square (x) (* x x))
(display (square 7))
(newline)
(display (length arguments))
`

	status := run(config(&out, &errs), strings.NewReader(program), &out)

	assert.Equal(t, 0, status)
	assert.Equal(t, "49\n0", out.String())
	assert.Empty(t, errs.String())
}

func TestRunError(t *testing.T) {
	var out, errs bytes.Buffer

	status := run(config(&out, &errs), strings.NewReader(`(display 1) (missing) (display 2)`), &out)

	assert.Equal(t, 1, status)
	assert.Equal(t, "1", out.String())
	assert.Equal(t, "error: BadIdentifier: unbound symbol: 'missing'\n", errs.String())
}

func TestArguments(t *testing.T) {
	assert.Equal(t, `("prog.unl" "a")`, arguments([]string{"prog.unl", "a"}).String())
	assert.Equal(t, "()", arguments(nil).String())
}
