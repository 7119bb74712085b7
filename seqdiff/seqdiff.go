package seqdiff

import "slices"

// Op identifies the kind of an edit.
type Op int

const (
	// OpEqual keeps an element present on both sides
	OpEqual Op = iota
	// OpDelete removes an element of the old sequence
	OpDelete
	// OpInsert adds an element of the new sequence
	OpInsert
	// OpModify replaces an old element by a new one (see Coalesce)
	OpModify
)

// String returns the lower-case name of the operation.
func (o Op) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	case OpModify:
		return "modify"
	default:
		return "unknown"
	}
}

// Edit is one step of an edit script. OldIndex and NewIndex are 0-based
// positions in the old and new sequences, -1 when the edit has no element on
// that side (NewIndex for OpDelete, OldIndex for OpInsert).
type Edit struct {
	Op       Op
	OldIndex int
	NewIndex int
}

// Script is the result of Diff.
type Script struct {
	// Edits transforms the old sequence into the new one
	Edits []Edit
	// Fallback is true if the non-minimal anchoring heuristic was used
	// for at least part of the input
	Fallback bool
}

// Comparator tells Diff how to compare elements.
type Comparator[T any] struct {
	// Equal reports whether two elements match. Required.
	Equal func(x, y T) bool
	// Key returns a hashable summary of an element such that Equal(x, y)
	// implies Key(x) == Key(y). Optional; without it the fallback cannot
	// anchor and reports unmatched middles as delete-all then insert-all.
	Key func(T) string
}

// Options tunes Diff.
type Options struct {
	// FallbackThreshold is the combined length of the unmatched middle above
	// which the anchoring heuristic replaces Myers. 0 disables it.
	FallbackThreshold int
}

// Diff computes an edit script transforming a into b.
func Diff[T any](a, b []T, cmp Comparator[T], opts Options) Script {
	d := &differ[T]{
		a:         a,
		b:         b,
		cmp:       cmp,
		threshold: opts.FallbackThreshold,
		edits:     make([]Edit, 0, max(len(a), len(b))),
	}
	d.diff(0, len(a), 0, len(b))
	return Script{Edits: normalize(d.edits), Fallback: d.fallback}
}

type differ[T any] struct {
	a, b      []T
	cmp       Comparator[T]
	threshold int
	edits     []Edit
	fallback  bool
	aKeys     []string
	bKeys     []string
}

func (d *differ[T]) eq(i, j int) bool {
	return d.cmp.Equal(d.a[i], d.b[j])
}

func (d *differ[T]) equal(i, j int) {
	d.edits = append(d.edits, Edit{Op: OpEqual, OldIndex: i, NewIndex: j})
}

func (d *differ[T]) del(i int) {
	d.edits = append(d.edits, Edit{Op: OpDelete, OldIndex: i, NewIndex: -1})
}

func (d *differ[T]) ins(j int) {
	d.edits = append(d.edits, Edit{Op: OpInsert, OldIndex: -1, NewIndex: j})
}

// diff aligns a[aLo:aHi] with b[bLo:bHi], appending edits in order.
func (d *differ[T]) diff(aLo, aHi, bLo, bHi int) {
	prefix := 0
	for aLo+prefix < aHi && bLo+prefix < bHi && d.eq(aLo+prefix, bLo+prefix) {
		prefix++
	}
	for i := range prefix {
		d.equal(aLo+i, bLo+i)
	}
	aLo += prefix
	bLo += prefix

	suffix := 0
	for aHi-suffix > aLo && bHi-suffix > bLo && d.eq(aHi-suffix-1, bHi-suffix-1) {
		suffix++
	}
	aHi -= suffix
	bHi -= suffix

	switch {
	case aLo == aHi:
		for j := bLo; j < bHi; j++ {
			d.ins(j)
		}
	case bLo == bHi:
		for i := aLo; i < aHi; i++ {
			d.del(i)
		}
	case d.threshold > 0 && (aHi-aLo)+(bHi-bLo) > d.threshold:
		d.fallback = true
		d.anchored(aLo, aHi, bLo, bHi)
	default:
		d.myers(aLo, aHi, bLo, bHi)
	}

	for i := range suffix {
		d.equal(aHi+i, bHi+i)
	}
}

// myers runs the greedy forward search over a[aLo:aHi] x b[bLo:bHi] and
// backtracks through the stored frontiers. Frontier d is stored over the
// diagonals [-d, d] only, so the trace holds O(D²) entries.
func (d *differ[T]) myers(aLo, aHi, bLo, bHi int) {
	n, m := aHi-aLo, bHi-bLo
	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)
	trace := make([][]int, 0, 8)

	var final int
search:
	for step := 0; step <= limit; step++ {
		// trace[step] holds frontier step-1 over diagonals [-(step-1), step-1].
		snap := make([]int, 0, 2*step+1)
		if step > 0 {
			snap = append(snap, v[offset-(step-1):offset+step]...)
		}
		trace = append(trace, snap)

		for k := -step; k <= step; k += 2 {
			var x int
			if k == -step || (k != step && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && d.eq(aLo+x, bLo+y) {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				final = step
				break search
			}
		}
	}

	rev := make([]Edit, 0, n+m)
	x, y := n, m
	for step := final; step > 0; step-- {
		prev := trace[step]
		at := func(k int) int { return prev[k+step-1] }

		k := x - y
		var prevK int
		if k == -step || (k != step && at(k-1) < at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := at(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			rev = append(rev, Edit{Op: OpEqual, OldIndex: aLo + x, NewIndex: bLo + y})
		}
		if x == prevX {
			y--
			rev = append(rev, Edit{Op: OpInsert, OldIndex: -1, NewIndex: bLo + y})
		} else {
			x--
			rev = append(rev, Edit{Op: OpDelete, OldIndex: aLo + x, NewIndex: -1})
		}
	}
	for x > 0 && y > 0 {
		x--
		y--
		rev = append(rev, Edit{Op: OpEqual, OldIndex: aLo + x, NewIndex: bLo + y})
	}

	slices.Reverse(rev)
	d.edits = append(d.edits, rev...)
}

// normalize moves all deletions of a change run in front of its insertions.
// Relative order among deletions and among insertions is preserved.
func normalize(edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	var ins []Edit
	flush := func() {
		out = append(out, ins...)
		ins = ins[:0]
	}
	for _, e := range edits {
		switch e.Op {
		case OpDelete:
			out = append(out, e)
		case OpInsert:
			ins = append(ins, e)
		default:
			flush()
			out = append(out, e)
		}
	}
	flush()
	return out
}
