// Released under an MIT license. See LICENSE.

// Package boot provides what is necessary for bootstrapping unilang.
package boot

import _ "embed" // Blank import required by embed.

//go:embed boot.unl
var script string //nolint:gochecknoglobals

// Script returns the boot script for unilang.
func Script() string {
	return script
}
