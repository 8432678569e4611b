// Released under an MIT license. See LICENSE.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/reader/lexer"
	"github.com/michaelmacinnis/unilang/internal/term"
)

func parse(s string) ([]*term.T, error) {
	l := lexer.New("test")
	l.Scan(s)

	var ts []*term.T

	err := New(func(t *term.T) {
		ts = append(ts, t)
	}, l.Token).Parse()

	return ts, err
}

func check(t *testing.T, s string) {
	ts, err := parse(s)
	require.NoError(t, err)

	p := ""
	for _, c := range ts {
		p += c.String() + "\n"
	}

	us, err := parse(p)
	require.NoError(t, err)

	r := ""
	for _, c := range us {
		r += c.String() + "\n"
	}

	assert.Equal(t, p, r, "parsed and reparsed do not match")
}

func TestReparse(t *testing.T) {
	for _, s := range []string{
		"($def! x 5)\n",
		"($defl! f (a . b) (cons a b))\n",
		"($vau (&x %y @z) #ignore x)\n",
		"(display \"tea is ready\")\n",
		"(() (()) ((a)))\n",
		"#t #f #inert 1.5 -7\n",
	} {
		check(t, s)
	}
}

func TestLiterals(t *testing.T) {
	ts, err := parse("42 -1 2.5 #t #f #inert #ignore x \"s\"\n")
	require.NoError(t, err)
	require.Len(t, ts, 9)

	assert.Equal(t, int64(42), ts[0].Value)
	assert.Equal(t, int64(-1), ts[1].Value)
	assert.Equal(t, 2.5, ts[2].Value)
	assert.Equal(t, true, ts[3].Value)
	assert.Equal(t, false, ts[4].Value)
	assert.Equal(t, term.Inert, ts[5].Value)
	assert.Equal(t, term.Ignore, ts[6].Value)
	assert.Equal(t, term.Symbol("x"), ts[7].Value)
	assert.Equal(t, "s", ts[8].Value)
}

func TestDottedTail(t *testing.T) {
	for s, expected := range map[string]string{
		"(a . b)\n":       "(a .b)",
		"(a .)\n":         "(a .)",
		"(a . (b c))\n":   "(a b c)",
		"((x y) . z)\n":   "((x y) .z)",
		"(a .rest)\n":     "(a .rest)",
		"(. all)\n":       "(.all)",
		"($'\\x41' b)\n":  "(\"A\" b)",
		"(\"a\\tb\")\n":   "($'a\\tb')",
		"(f (g (h 1)))\n": "(f (g (h 1)))",
	} {
		ts, err := parse(s)
		require.NoError(t, err, s)
		require.Len(t, ts, 1, s)

		assert.Equal(t, expected, ts[0].String(), s)
	}
}

func TestErrors(t *testing.T) {
	for _, s := range []string{
		")\n",
		"(a\n",
		"(a . b c)\n",
		"(a . )\n)\n",
	} {
		_, err := parse(s)
		require.Error(t, err, s)
		assert.Equal(t, errs.InvalidSyntax, errs.KindOf(err), s)
	}
}
