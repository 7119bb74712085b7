// Package differrors provides structured error types for outdiff.
//
// Import path: github.com/erraggy/outdiff/differrors
//
// Every error returned by the text and JSON engines is one of the types in
// this package (possibly wrapped), so callers can branch with [errors.Is] and
// [errors.As] instead of matching on messages.
//
// # Error Types
//
//   - [ParseError]: an input is not valid UTF-8 text
//   - [JSONParseError]: an input is not well-formed JSON (carries the location)
//   - [DepthExceededError]: a JSON tree is nested deeper than the configured max depth
//   - [ConfigError]: an option is out of range or conflicts with another option
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError] and any [JSONParseError]
//   - [ErrJSONParse]: Matches any [JSONParseError]
//   - [ErrDepthExceeded]: Matches any [DepthExceededError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := jsondiff.Diff(oldDoc, newDoc, cfg)
//	if errors.Is(err, differrors.ErrDepthExceeded) {
//	    // retry with a relaxed diffconfig.WithMaxDepth
//	}
//
//	var jerr *differrors.JSONParseError
//	if errors.As(err, &jerr) {
//	    fmt.Printf("%s document is malformed at %d:%d\n", jerr.Side, jerr.Line, jerr.Column)
//	}
//
// Errors are deterministic: the same malformed input always yields the same
// error with the same location. A failed call never returns a partial result.
package differrors
