// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/term"
)

func isSymbol(x *term.T) bool {
	_, ok := x.Value.(term.Symbol)

	return ok && x.IsLeaf()
}
