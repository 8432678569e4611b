// Released under an MIT license. See LICENSE.

package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/unilang/internal/errs"
)

func TestRead(t *testing.T) {
	root, err := Read("test", "($def! x 5)\n; comment\nx")
	require.NoError(t, err)

	assert.Equal(t, "(($def! x 5) x)", root.String())
}

func TestReadUnterminated(t *testing.T) {
	_, err := Read("test", `(display "oops`)
	assert.Equal(t, errs.InvalidSyntax, errs.KindOf(err))

	_, err = Read("test", `"oops`)
	assert.Equal(t, errs.InvalidSyntax, errs.KindOf(err))
}

func TestScan(t *testing.T) {
	r := New("test")
	defer r.Close()

	ts, err := r.Scan("($def! x\n")
	require.NoError(t, err)
	assert.Empty(t, ts)

	ts, err = r.Scan("5) x\n")
	require.NoError(t, err)
	require.Len(t, ts, 2)

	assert.Equal(t, "($def! x 5)", ts[0].String())
	assert.Equal(t, "x", ts[1].String())
}

func TestScanError(t *testing.T) {
	r := New("test")

	_, err := r.Scan(")\n")
	assert.Equal(t, errs.InvalidSyntax, errs.KindOf(err))
}
