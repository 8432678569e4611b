// Released under an MIT license. See LICENSE.

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/unilang/internal/reader/token"
)

type item struct {
	class token.Class
	value string
}

type harness struct {
	lexer *T
	t     *testing.T
}

func setup(t *testing.T, label string) *harness {
	return &harness{lexer: New(label), t: t}
}

func (h *harness) scan(s string, expected ...item) {
	h.lexer.Scan(s)
	h.expect(expected...)
}

func (h *harness) expect(expected ...item) {
	for _, e := range expected {
		a := h.lexer.Token()
		require.NotNil(h.t, a, "expected %v but there are no tokens", e)

		assert.Equal(h.t, e.class, a.Class())
		assert.Equal(h.t, e.value, a.Value())
	}

	assert.Nil(h.t, h.lexer.Token())
}

func literal(s string) item {
	return item{token.Class(s[0]), s}
}

func symbol(s string) item {
	return item{token.Symbol, s}
}

func TestList(t *testing.T) {
	h := setup(t, "List")

	h.scan("($def! x (+ 1 2))\n",
		literal("("),
		symbol("$def!"),
		symbol("x"),
		literal("("),
		symbol("+"),
		symbol("1"),
		symbol("2"),
		literal(")"),
		literal(")"),
	)
}

func TestComment(t *testing.T) {
	h := setup(t, "Comment")

	h.scan("a ; ignored (\nb\n",
		symbol("a"),
		symbol("b"),
	)
}

func TestStrings(t *testing.T) {
	h := setup(t, "Strings")

	h.scan(`"a \"b\"" $'c\n'`+"\n",
		item{token.DoubleQuoted, `"a \"b\""`},
		item{token.DollarSingleQuoted, `$'c\n'`},
	)
}

func TestDollarSymbol(t *testing.T) {
	h := setup(t, "DollarSymbol")

	h.scan("$vau/e%\n", symbol("$vau/e%"))
}

func TestTokenSpansLines(t *testing.T) {
	h := setup(t, "TokenSpansLines")

	h.scan("(abc", literal("("))
	assert.True(t, h.lexer.Pending())

	h.scan("def)\n",
		symbol("abcdef"),
		literal(")"),
	)

	h.scan(`"one`)
	h.scan("\ntwo\"\n", item{token.DoubleQuoted, "\"one\ntwo\""})
}

func TestDottedTail(t *testing.T) {
	h := setup(t, "DottedTail")

	h.scan("(a . b)\n",
		literal("("),
		symbol("a"),
		symbol("."),
		symbol("b"),
		literal(")"),
	)
}
