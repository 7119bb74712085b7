// Package jsonvalue is the JSON value model used by the structural differ.
//
// A [Value] is a closed tagged variant over six kinds: [KindNull],
// [KindBool], [KindNumber], [KindString], [KindArray] and [KindObject].
// Code that inspects values switches on [Value.Kind]; there are no other
// cases.
//
// Objects keep the insertion order of their members for display, while
// [Equal] treats key presence as order independent. Numbers are stored as
// float64 with exact-integer detection ([Value.IsInteger]); 1 and 1.0 are the
// same number. Non-finite numbers cannot come out of [Parse] but can be built
// with [NumberValue]; they follow IEEE semantics and are never equal to
// anything, themselves included.
//
// [Parse] builds values with an explicit stack, so adversarially deep input
// cannot exhaust the goroutine stack, and [ParseWithLimit] fails with a
// *differrors.DepthExceededError once nesting passes a limit. Malformed input
// fails with a *differrors.JSONParseError carrying the byte offset, line and
// column.
//
// A [Path] addresses a location inside a value as a sequence of object keys
// and array indices; the root is the empty path.
package jsonvalue
