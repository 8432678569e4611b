// Released under an MIT license. See LICENSE.

package term

import "strings"

// Tags describe the value category of a term or reference.
type Tags uint8

// Tag bits. A term with no bits set is Unqualified.
const (
	Unqualified Tags = 0

	Unique       Tags = 1 << iota // The referent may be moved from.
	Nonmodifying                  // The referent must not be modified.
	Temporary                     // The value is an in-flight operand.
)

// Has returns true if all of the bits in o are set in t.
func (t Tags) Has(o Tags) bool {
	return t&o == o
}

// Value returns the tags suitable for a bound first-class value.
func (t Tags) Value() Tags {
	return t &^ Temporary
}

// Propagate returns the tags for a reference formed over a referent tagged
// with from. A reference may add Nonmodifying but never remove it.
func (t Tags) Propagate(from Tags) Tags {
	return t | from&Nonmodifying
}

// String returns a readable form of t.
func (t Tags) String() string {
	if t == Unqualified {
		return "unqualified"
	}

	var s []string

	if t.Has(Unique) {
		s = append(s, "unique")
	}

	if t.Has(Nonmodifying) {
		s = append(s, "nonmodifying")
	}

	if t.Has(Temporary) {
		s = append(s, "temporary")
	}

	return strings.Join(s, "|")
}
