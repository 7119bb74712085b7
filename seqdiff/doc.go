// Package seqdiff aligns two ordered sequences and produces an edit script.
//
// [Diff] is generic over the element type and is parameterized by a
// [Comparator], so the same alignment code serves text lines (compared by
// their normalized key) and JSON array elements (compared by deep equality).
//
// # Algorithm
//
// Common prefixes and suffixes are matched first. The remaining middle is
// aligned with Myers' O((N+M)·D) greedy algorithm, which yields a minimal
// script (fewest deletions plus insertions).
//
// When the middle is longer than Options.FallbackThreshold elements the
// search switches to an anchoring heuristic: elements whose key occurs
// exactly once on each side are matched, the longest run of anchors that
// appear in the same order on both sides is kept, and the gaps between
// anchors are diffed recursively (with Myers once they are small enough).
// Gaps without anchors are reported as deletions followed by insertions.
// This bounds the cost on large inputs but is NOT minimal for pathological
// inputs (for example, inputs where every line repeats). [Script.Fallback]
// reports whether the heuristic was used.
//
// # Ordering
//
// Within every run of consecutive non-equal edits, all deletions come before
// all insertions. Repeated runs on identical input yield identical scripts.
//
// [Coalesce] optionally pairs the deletions and insertions of each run into
// modifications; this is a presentation choice and both forms are valid.
package seqdiff
