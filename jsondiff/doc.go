// Package jsondiff computes structural differences between two JSON
// documents.
//
// Both inputs are parsed into [jsonvalue.Value] trees and walked together in
// pre-order. Each difference is reported as a [Change] addressed by a
// [jsonvalue.Path]:
//
//   - objects are compared by the union of their keys; keys only in the old
//     document are [Removed], keys only in the new one are [Added], and the
//     union is visited in old-document order with new-only keys appended;
//   - arrays are compared index by index, or aligned with the shared
//     sequence differ when the configuration selects
//     [diffconfig.ArrayLCS];
//   - scalars of the same kind that differ are [Changed]; values of
//     different kinds are [TypeChanged].
//
// Numbers compare by value, so 1 and 1.0 are equal. Strings compare through
// the configured whitespace and case normalization; object keys always
// compare exactly.
//
// # Usage
//
//	result, err := jsondiff.Diff(`{"x":1}`, `{"x":1,"y":2}`, diffconfig.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, c := range result.Changes {
//		fmt.Println(c)
//	}
//	// + $.y: 2
//
// # Empty documents
//
// An input holding only whitespace is an absent document. Two absent
// documents are equal; an absent document against a present one yields a
// single root change.
//
// # Limits
//
// The walk uses an explicit work stack, so its memory use is proportional to
// tree size and it never recurses on the goroutine stack. A document nested
// deeper than [diffconfig.DiffConfig.MaxDepth] fails with a
// *differrors.DepthExceededError.
package jsondiff
