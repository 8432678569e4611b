// Released under an MIT license. See LICENSE.

package task

// Status is the result of a single reduction step.
type Status int

// Reduction statuses.
const (
	// Partial means continuations were pushed and the term is not final.
	Partial Status = iota
	// Neutral means the step completed without changing the term.
	Neutral
	// Clean means the term now holds a final value and no children.
	Clean
	// Retained means the term's children are part of the result.
	Retained
	// Retrying means the same term must be reduced again.
	Retrying
)

//nolint:gochecknoglobals
var statuses = [...]string{
	Partial:  "partial",
	Neutral:  "neutral",
	Clean:    "clean",
	Retained: "retained",
	Retrying: "retrying",
}

// CheckReducible returns true if s means the term needs another pass.
func CheckReducible(s Status) bool {
	return s == Partial || s == Retrying
}

// String returns the name of the status s.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statuses) {
		return "unknown"
	}

	return statuses[s]
}
