package jsonvalue

// Equal reports whether a and b are deeply equal. Numbers compare by value
// (1 == 1.0) with IEEE semantics, strings compare exactly, object key order
// is ignored.
func Equal(a, b Value) bool {
	return EqualFunc(a, b, nil)
}

// EqualFunc is Equal with a custom string comparison; a nil strEq compares
// strings exactly. Object keys are always compared exactly.
//
// The comparison uses an explicit work list, so it is safe on arbitrarily
// deep values.
func EqualFunc(a, b Value, strEq func(x, y string) bool) bool {
	type pair struct{ a, b Value }
	work := []pair{{a, b}}

	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		x, y := p.a, p.b
		if x.kind != y.kind {
			return false
		}
		switch x.kind {
		case KindNull:
		case KindBool:
			if x.b != y.b {
				return false
			}
		case KindNumber:
			if x.n != y.n { // NaN != NaN
				return false
			}
		case KindString:
			if strEq == nil {
				if x.s != y.s {
					return false
				}
			} else if !strEq(x.s, y.s) {
				return false
			}
		case KindArray:
			if len(x.arr) != len(y.arr) {
				return false
			}
			for i := range x.arr {
				work = append(work, pair{x.arr[i], y.arr[i]})
			}
		case KindObject:
			if len(x.obj.keys) != len(y.obj.keys) {
				return false
			}
			for i, k := range x.obj.keys {
				j, ok := y.obj.index[k]
				if !ok {
					return false
				}
				work = append(work, pair{x.obj.vals[i], y.obj.vals[j]})
			}
		}
	}
	return true
}

// Depth returns the container nesting depth of v: 0 for scalars, 1 for a
// flat array or object, and so on.
func Depth(v Value) int {
	type item struct {
		v     Value
		depth int
	}
	deepest := 0
	work := []item{{v, 0}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		switch it.v.kind {
		case KindArray:
			d := it.depth + 1
			deepest = max(deepest, d)
			for _, e := range it.v.arr {
				work = append(work, item{e, d})
			}
		case KindObject:
			d := it.depth + 1
			deepest = max(deepest, d)
			for _, e := range it.v.obj.vals {
				work = append(work, item{e, d})
			}
		}
	}
	return deepest
}

// CheckDepth returns the path of the first container (in pre-order) that
// lies deeper than limit, and false if there is none. A limit of 0 means
// unbounded.
func CheckDepth(v Value, limit int) (Path, bool) {
	if limit <= 0 {
		return nil, false
	}
	work := []*trail{{v: v}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		switch it.v.kind {
		case KindArray:
			if it.depth+1 > limit {
				return it.path(), true
			}
			for i := len(it.v.arr) - 1; i >= 0; i-- {
				work = append(work, &trail{v: it.v.arr[i], depth: it.depth + 1, parent: it, seg: IndexSegment(i)})
			}
		case KindObject:
			if it.depth+1 > limit {
				return it.path(), true
			}
			for i := len(it.v.obj.keys) - 1; i >= 0; i-- {
				work = append(work, &trail{v: it.v.obj.vals[i], depth: it.depth + 1, parent: it, seg: KeySegment(it.v.obj.keys[i])})
			}
		}
	}
	return nil, false
}

// trail is a value together with the way it was reached from the root.
type trail struct {
	v      Value
	depth  int
	parent *trail
	seg    Segment
}

func (t *trail) path() Path {
	p := make(Path, t.depth)
	for n := t; n.parent != nil; n = n.parent {
		p[n.depth-1] = n.seg
	}
	return p
}
