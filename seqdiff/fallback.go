package seqdiff

import "sort"

// anchored aligns a[aLo:aHi] with b[bLo:bHi] without a full search. The
// result is valid but not necessarily minimal.
func (d *differ[T]) anchored(aLo, aHi, bLo, bHi int) {
	if d.cmp.Key == nil {
		d.replaceAll(aLo, aHi, bLo, bHi)
		return
	}
	d.ensureKeys()

	anchors := d.uniqueAnchors(aLo, aHi, bLo, bHi)
	if len(anchors) == 0 {
		d.replaceAll(aLo, aHi, bLo, bHi)
		return
	}

	i, j := aLo, bLo
	for _, an := range anchors {
		d.diff(i, an.old, j, an.new)
		d.equal(an.old, an.new)
		i, j = an.old+1, an.new+1
	}
	d.diff(i, aHi, j, bHi)
}

func (d *differ[T]) replaceAll(aLo, aHi, bLo, bHi int) {
	for i := aLo; i < aHi; i++ {
		d.del(i)
	}
	for j := bLo; j < bHi; j++ {
		d.ins(j)
	}
}

func (d *differ[T]) ensureKeys() {
	if d.aKeys != nil || d.bKeys != nil {
		return
	}
	d.aKeys = make([]string, len(d.a))
	for i, x := range d.a {
		d.aKeys[i] = d.cmp.Key(x)
	}
	d.bKeys = make([]string, len(d.b))
	for j, y := range d.b {
		d.bKeys[j] = d.cmp.Key(y)
	}
}

type anchor struct {
	old, new int
}

// uniqueAnchors returns the longest chain of element pairs whose key occurs
// exactly once in each range and that appear in the same relative order on
// both sides, ordered by old index.
func (d *differ[T]) uniqueAnchors(aLo, aHi, bLo, bHi int) []anchor {
	type slot struct {
		aCount, bCount int
		aIndex, bIndex int
	}
	slots := make(map[string]*slot, (aHi-aLo)+(bHi-bLo))
	for i := aLo; i < aHi; i++ {
		s := slots[d.aKeys[i]]
		if s == nil {
			s = &slot{}
			slots[d.aKeys[i]] = s
		}
		s.aCount++
		s.aIndex = i
	}
	for j := bLo; j < bHi; j++ {
		s := slots[d.bKeys[j]]
		if s == nil {
			continue
		}
		s.bCount++
		s.bIndex = j
	}

	var candidates []anchor
	for i := aLo; i < aHi; i++ {
		s := slots[d.aKeys[i]]
		if s.aCount == 1 && s.bCount == 1 && d.eq(s.aIndex, s.bIndex) {
			candidates = append(candidates, anchor{old: s.aIndex, new: s.bIndex})
		}
	}
	return longestIncreasing(candidates)
}

// longestIncreasing returns the longest subsequence of anchors (already
// sorted by old index) whose new indices strictly increase. Patience
// sorting, O(k log k); ties resolve to the earliest candidates.
func longestIncreasing(anchors []anchor) []anchor {
	if len(anchors) == 0 {
		return nil
	}
	tails := make([]int, 0, len(anchors)) // index into anchors of each pile top
	prev := make([]int, len(anchors))
	for idx, an := range anchors {
		pos := sort.Search(len(tails), func(p int) bool {
			return anchors[tails[p]].new >= an.new
		})
		if pos > 0 {
			prev[idx] = tails[pos-1]
		} else {
			prev[idx] = -1
		}
		if pos == len(tails) {
			tails = append(tails, idx)
		} else {
			tails[pos] = idx
		}
	}

	out := make([]anchor, len(tails))
	for idx, p := len(tails)-1, tails[len(tails)-1]; idx >= 0; idx-- {
		out[idx] = anchors[p]
		p = prev[p]
	}
	return out
}
