// Released under an MIT license. See LICENSE.

package term

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/michaelmacinnis/adapted"
	"github.com/michaelmacinnis/unilang/internal/typename"
)

// String returns the written representation of t.
func (t *term) String() string {
	var b strings.Builder

	// A nil entry closes a list.
	pending := []*term{t}
	first := true

	for len(pending) != 0 {
		c := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if c == nil {
			b.WriteByte(')')
			first = false

			continue
		}

		if !first {
			b.WriteByte(' ')
		}

		first = false

		if c.Value != nil {
			b.WriteString(Literal(c.Value))

			if len(c.Children) == 0 {
				continue
			}

			b.WriteByte(' ')
		}

		b.WriteByte('(')
		first = true

		pending = append(pending, nil)
		for i := len(c.Children) - 1; i >= 0; i-- {
			pending = append(pending, c.Children[i])
		}
	}

	return b.String()
}

// Literal returns the written representation of the value v.
func Literal(v interface{}) string {
	switch v := v.(type) {
	case Symbol:
		return string(v)
	case Special:
		return string(v)
	case string:
		return quote(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "#t"
		}

		return "#f"
	case fmt.Stringer:
		return v.String()
	}

	return "#[" + typename.Of(v) + "]"
}

// Display returns the displayed representation of the value v. Strings are
// not quoted.
func Display(t *term) string {
	if s, ok := t.Value.(string); ok && t.IsLeaf() {
		return s
	}

	return t.String()
}

// Strings with only printable ASCII use Go quoting. Anything else uses the
// dollar single-quoted form, which escapes every non-ASCII rune.
func quote(s string) string {
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return adapted.CanonicalString(s)
		}
	}

	return strconv.Quote(s)
}
