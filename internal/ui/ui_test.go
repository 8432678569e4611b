// Released under an MIT license. See LICENSE.

package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/unilang/internal/engine"
	"github.com/michaelmacinnis/unilang/internal/reader"
)

func TestPrint(t *testing.T) {
	var out, errs bytes.Buffer

	cfg := engine.DefaultConfig()
	cfg.Errors = &errs
	cfg.Output = &out

	e, err := engine.New(cfg)
	require.NoError(t, err)

	r := reader.New("test")
	defer r.Close()

	ts, err := r.Scan("($def! x 2) (+ x 1) (missing) (list x)\n")
	require.NoError(t, err)
	require.Len(t, ts, 4)

	Print(e, &out, ts)

	assert.Equal(t, "3\n(2)\n", out.String())
	assert.Contains(t, errs.String(), "error: BadIdentifier: unbound symbol: 'missing'")
}
