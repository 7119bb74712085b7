// Package outdiff compares program outputs, either as plain text line by line
// or as JSON documents structurally.
//
// # Overview
//
// The library consists of a small set of packages:
//
//   - textdiff: line-based diffs producing Equal/Insert/Delete/Modify edits
//   - jsondiff: structural JSON diffs producing path-addressed changes
//   - seqdiff: the generic sequence aligner shared by both engines
//   - jsonvalue: the JSON value model, parser and path type
//   - diffconfig: the immutable configuration both engines take
//   - differrors: structured error types with sentinel errors
//
// This package re-exports the two entry points as [DiffText] and [DiffJSON].
//
// # Installation
//
//	go get github.com/erraggy/outdiff
//
// # Quick Start
//
// Compare two texts:
//
//	result, err := outdiff.DiffText("a\nb\nc", "a\nB\nc", diffconfig.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("+%d -%d ~%d\n", result.Stats.Added, result.Stats.Removed, result.Stats.Modified)
//
// Compare two JSON documents:
//
//	result, err := outdiff.DiffJSON(`{"x":1}`, `{"x":1,"y":2}`, diffconfig.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, c := range result.Changes {
//		fmt.Println(c) // + $.y: 2
//	}
//
// # Configuration
//
// [diffconfig.DiffConfig] is an immutable value built with functional
// options:
//
//	cfg, err := diffconfig.New(
//		diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreTrailing),
//		diffconfig.WithCaseSensitive(false),
//		diffconfig.WithArrayStrategy(diffconfig.ArrayLCS),
//	)
//
// Normalization (whitespace, case) only affects comparison keys; reported
// lines and values are always shown as they appear in the input. The same
// options can be loaded from a YAML file ([diffconfig.LoadFile]) or from
// OUTDIFF_* environment variables ([diffconfig.FromEnv]).
//
// # Algorithms
//
// Line and LCS-array alignment use Myers' O((N+M)·D) algorithm after
// trimming the common prefix and suffix. When the unmatched middle of an
// input exceeds the configured fallback threshold, a unique-element
// anchoring heuristic takes over; its scripts are valid but may not be
// minimal, which results report through their Approximate field.
//
// # Concurrency
//
// Diff calls are synchronous and share no mutable state. A DiffConfig may be
// used from any number of goroutines at once. There is no cancellation:
// bound large inputs with the fallback threshold and max depth options.
//
// # Error Handling
//
// All failures are returned as errors and never accompany a partial result:
//
//   - *differrors.ParseError: an input is not valid UTF-8
//   - *differrors.JSONParseError: a JSON input is malformed (with line and column)
//   - *differrors.DepthExceededError: a JSON input nests deeper than max depth
//   - *differrors.ConfigError: a configuration value is out of range
//
// Use errors.Is with the sentinels in differrors to branch on the category.
//
// # Command-Line Interface
//
//	# Compare two text files
//	outdiff text expected.txt actual.txt
//
//	# Compare program output on stdin with a golden file, ignoring whitespace
//	./prog | outdiff text -w golden.txt -
//
//	# Compare two JSON documents, aligning inserted or removed array elements
//	outdiff json --array lcs old.json new.json
//
//	# Compare only part of each document (gjson path syntax)
//	outdiff json --select items old.json new.json
//
//	# Serve the diff tools over MCP (stdio)
//	outdiff mcp
//
// The exit status is 0 when the inputs match, 1 when they differ and 2 on
// error. Set OUTDIFF_LOG=debug to log what the engines are doing to stderr.
//
// Install the CLI:
//
//	go install github.com/erraggy/outdiff/cmd/outdiff@latest
package outdiff
