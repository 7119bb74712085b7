package seqdiff

// Coalesce rewrites each run of deletions followed by insertions so that the
// i-th deletion and the i-th insertion become a single OpModify edit.
// Unpaired deletions, then unpaired insertions, follow the modifications.
// The input must be normalized (as returned by Diff); it is not modified.
func Coalesce(edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for i := 0; i < len(edits); {
		if edits[i].Op != OpDelete && edits[i].Op != OpInsert {
			out = append(out, edits[i])
			i++
			continue
		}

		start := i
		for i < len(edits) && edits[i].Op == OpDelete {
			i++
		}
		dels := edits[start:i]
		insStart := i
		for i < len(edits) && edits[i].Op == OpInsert {
			i++
		}
		ins := edits[insStart:i]

		pairs := min(len(dels), len(ins))
		for p := range pairs {
			out = append(out, Edit{Op: OpModify, OldIndex: dels[p].OldIndex, NewIndex: ins[p].NewIndex})
		}
		out = append(out, dels[pairs:]...)
		out = append(out, ins[pairs:]...)
	}
	return out
}

// Counts tallies the edits of a script by operation.
type Counts struct {
	Equal  int
	Delete int
	Insert int
	Modify int
}

// Count returns the per-operation totals of edits.
func Count(edits []Edit) Counts {
	var c Counts
	for _, e := range edits {
		switch e.Op {
		case OpEqual:
			c.Equal++
		case OpDelete:
			c.Delete++
		case OpInsert:
			c.Insert++
		case OpModify:
			c.Modify++
		}
	}
	return c
}
