// Package textdiff computes line-oriented differences between two texts.
//
// Text is split into lines ([Split]), each line gets a comparison key from
// the diffconfig.DiffConfig (whitespace and case normalization), and the
// keys are aligned with the seqdiff package. The result is an ordered edit
// script plus summary counts:
//
//	result, err := textdiff.Diff("a\nb\nc", "a\nB\nc", diffconfig.Default())
//	// result.Edits: equal(1,1) modify(2,2) equal(3,3)
//	// result.Stats: {Added:1 Removed:1 Unchanged:2 Modified:1}
//
// Normalization only affects comparison: every [Line] in the result carries
// the original text of its source line.
//
// Diff fails only when an input is not valid UTF-8; it never fails on
// content.
package textdiff
