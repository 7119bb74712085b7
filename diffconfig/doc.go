// Package diffconfig holds the immutable configuration shared by the text and
// JSON diff engines.
//
// A [DiffConfig] is a value: it is built once with [New] (or [Default]) and
// functional options, validated up front, and then passed by value into
// textdiff.Diff and jsondiff.Diff. Nothing in a DiffConfig is mutated during
// a diff, and no engine reads process-wide state, so identical inputs and an
// identical config always produce identical results.
//
// # Options
//
//	cfg, err := diffconfig.New(
//	    diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreTrailing),
//	    diffconfig.WithCaseSensitive(false),
//	    diffconfig.WithArrayStrategy(diffconfig.ArrayLCS),
//	    diffconfig.WithMaxDepth(64),
//	)
//
// Invalid values (negative depth, unknown modes) fail with a
// *differrors.ConfigError.
//
// # Config files
//
// [ParseYAML] and [LoadFile] read the same options from YAML, using the
// option names as keys:
//
//	whitespace_mode: ignore_trailing
//	case_sensitive: false
//	detect_modifications: true
//	array_diff_strategy: lcs
//	max_depth: 64
//	size_fallback_threshold: 20000
//
// [FromEnv] reads the upper-cased OUTDIFF_* equivalents.
//
// # Comparison keys
//
// Whitespace and case normalization only ever affect comparison keys, never
// the content reported in results. Engines obtain a [Keyer] once per call
// through [DiffConfig.NewKeyer]; a Keyer is not safe for concurrent use, a
// DiffConfig is.
package diffconfig
