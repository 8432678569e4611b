// Released under an MIT license. See LICENSE.

package env

// Compress prunes dead links from the parent chains reachable from root and
// returns the number of environments collapsed.
//
// An owned parent that has no bindings, no other owner and no stored weak
// handle contributes nothing to name resolution. The link to it is replaced
// by the link to its own parent and it expires. Weak links are never
// collapsed since the environment they name may expire independently.
func Compress(root *env) int {
	n := 0

	reachable := map[*env]bool{root: true}
	pending := []*env{root}

	for len(pending) != 0 {
		e := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		var next []*env

		e.parent, next = collapse(e.parent, &n)

		for _, p := range next {
			if !reachable[p] {
				reachable[p] = true
				pending = append(pending, p)
			}
		}
	}

	return n
}

// collapse returns the parent value p with dead links removed and the
// environments it now names.
func collapse(p interface{}, n *int) (interface{}, []*env) {
	switch v := p.(type) {
	case Shared:
		for dead(v.env) {
			d := v.env

			// The dead environment's hold on its parent moves to the link.
			p, d.parent = d.parent, nil
			d.Drop()

			*n++

			s, ok := p.(Shared)
			if !ok {
				return collapse(p, n)
			}

			v = s
		}

		return v, []*env{v.env}
	case Ref:
		if v.Expired() {
			return v, nil
		}

		return v, []*env{v.env}
	case []interface{}:
		var all []*env

		for i, c := range v {
			var next []*env

			v[i], next = collapse(c, n)
			all = append(all, next...)
		}

		return v, all
	}

	return p, nil
}

func dead(e *env) bool {
	return e.Collectable() && !e.Frozen && len(e.bindings) == 0
}
