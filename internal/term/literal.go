// Released under an MIT license. See LICENSE.

package term

import (
	"strconv"
)

// ParseLiteral returns the value written as s if s is the written form of a
// boolean, a special value or a number.
func ParseLiteral(s string) (interface{}, bool) {
	switch s {
	case "#t":
		return true, true
	case "#f":
		return false, true
	case string(Inert):
		return Inert, true
	case string(Ignore):
		return Ignore, true
	}

	if !numeric(s) {
		return nil, false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}

	return nil, false
}

// Numbers start with a digit, optionally after a sign or a decimal point.
func numeric(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if i < len(s) && s[i] == '.' {
		i++
	}

	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}
