package diffconfig

import (
	"fmt"
	"strings"

	"github.com/erraggy/outdiff/differrors"
)

// WhitespaceMode selects how whitespace is treated when comparing lines and
// string values.
type WhitespaceMode string

const (
	// WhitespaceExact compares content byte for byte
	WhitespaceExact WhitespaceMode = "exact"
	// WhitespaceIgnoreTrailing ignores trailing whitespace
	WhitespaceIgnoreTrailing WhitespaceMode = "ignore_trailing"
	// WhitespaceIgnoreAll ignores every whitespace character
	WhitespaceIgnoreAll WhitespaceMode = "ignore_all"
)

// normalize maps the hyphenated spellings (ignore-trailing, ignore-all) onto
// the canonical names.
func (m WhitespaceMode) normalize() WhitespaceMode {
	return WhitespaceMode(strings.ReplaceAll(string(m), "-", "_"))
}

// Valid reports whether m is a known whitespace mode.
func (m WhitespaceMode) Valid() bool {
	switch m {
	case WhitespaceExact, WhitespaceIgnoreTrailing, WhitespaceIgnoreAll:
		return true
	}
	return false
}

// ArrayStrategy selects how JSON arrays are aligned.
type ArrayStrategy string

const (
	// ArrayPositional compares arrays index by index
	ArrayPositional ArrayStrategy = "positional"
	// ArrayLCS aligns array elements with the sequence differ, using deep
	// equality as the comparator
	ArrayLCS ArrayStrategy = "lcs"
)

// Valid reports whether s is a known array strategy.
func (s ArrayStrategy) Valid() bool {
	return s == ArrayPositional || s == ArrayLCS
}

const (
	// DefaultMaxDepth is the default JSON nesting ceiling.
	DefaultMaxDepth = 1000
	// DefaultFallbackThreshold is the default combined sequence length above
	// which the sequence differ switches to its anchoring heuristic.
	DefaultFallbackThreshold = 10000
)

// DiffConfig is the immutable configuration consumed by both engines.
// The zero value is not meaningful; use [Default] or [New].
type DiffConfig struct {
	whitespace          WhitespaceMode
	caseSensitive       bool
	detectModifications bool
	arrayStrategy       ArrayStrategy
	maxDepth            int
	fallbackThreshold   int
	logger              Logger
}

// Option is a function that configures a DiffConfig
type Option func(*DiffConfig) error

// Default returns the default configuration: exact whitespace, case
// sensitive, modification detection on, positional arrays,
// DefaultMaxDepth and DefaultFallbackThreshold.
func Default() DiffConfig {
	return DiffConfig{
		whitespace:          WhitespaceExact,
		caseSensitive:       true,
		detectModifications: true,
		arrayStrategy:       ArrayPositional,
		maxDepth:            DefaultMaxDepth,
		fallbackThreshold:   DefaultFallbackThreshold,
		logger:              NopLogger{},
	}
}

// New returns the default configuration with opts applied.
func New(opts ...Option) (DiffConfig, error) {
	return Default().With(opts...)
}

// With returns a copy of c with opts applied. c itself is left untouched.
func (c DiffConfig) With(opts ...Option) (DiffConfig, error) {
	next := c
	for _, opt := range opts {
		if err := opt(&next); err != nil {
			return DiffConfig{}, err
		}
	}
	if err := next.Validate(); err != nil {
		return DiffConfig{}, err
	}
	return next, nil
}

// Validate checks every option for range and consistency.
func (c DiffConfig) Validate() error {
	if !c.whitespace.Valid() {
		return &differrors.ConfigError{Option: "whitespace_mode", Value: string(c.whitespace), Message: "unknown whitespace mode"}
	}
	if !c.arrayStrategy.Valid() {
		return &differrors.ConfigError{Option: "array_diff_strategy", Value: string(c.arrayStrategy), Message: "unknown array strategy"}
	}
	if c.maxDepth < 0 {
		return &differrors.ConfigError{Option: "max_depth", Value: c.maxDepth, Message: "must not be negative (0 means unbounded)"}
	}
	if c.fallbackThreshold < 0 {
		return &differrors.ConfigError{Option: "size_fallback_threshold", Value: c.fallbackThreshold, Message: "must not be negative (0 disables the fallback)"}
	}
	return nil
}

// WhitespaceMode returns the configured whitespace handling.
func (c DiffConfig) WhitespaceMode() WhitespaceMode { return c.whitespace }

// CaseSensitive reports whether comparisons are case sensitive.
func (c DiffConfig) CaseSensitive() bool { return c.caseSensitive }

// DetectModifications reports whether adjacent delete+insert pairs are
// reported as modifications.
func (c DiffConfig) DetectModifications() bool { return c.detectModifications }

// ArrayStrategy returns the configured JSON array alignment.
func (c DiffConfig) ArrayStrategy() ArrayStrategy { return c.arrayStrategy }

// MaxDepth returns the JSON nesting ceiling; 0 means unbounded.
func (c DiffConfig) MaxDepth() int { return c.maxDepth }

// FallbackThreshold returns the combined sequence length above which the
// sequence differ stops searching for a minimal script; 0 means never.
func (c DiffConfig) FallbackThreshold() int { return c.fallbackThreshold }

// Logger returns the configured logger, never nil.
func (c DiffConfig) Logger() Logger {
	if c.logger == nil {
		return NopLogger{}
	}
	return c.logger
}

// String returns a compact description, used in debug logs.
func (c DiffConfig) String() string {
	return fmt.Sprintf("whitespace=%s case_sensitive=%t detect_modifications=%t arrays=%s max_depth=%d fallback=%d",
		c.whitespace, c.caseSensitive, c.detectModifications, c.arrayStrategy, c.maxDepth, c.fallbackThreshold)
}

// WithWhitespaceMode sets how whitespace is compared.
// Default: WhitespaceExact
func WithWhitespaceMode(mode WhitespaceMode) Option {
	return func(c *DiffConfig) error {
		mode = mode.normalize()
		if !mode.Valid() {
			return &differrors.ConfigError{Option: "whitespace_mode", Value: string(mode), Message: "unknown whitespace mode"}
		}
		c.whitespace = mode
		return nil
	}
}

// WithCaseSensitive enables or disables case sensitive comparison.
// Default: true
func WithCaseSensitive(enabled bool) Option {
	return func(c *DiffConfig) error {
		c.caseSensitive = enabled
		return nil
	}
}

// WithDetectModifications enables or disables coalescing of adjacent
// delete+insert pairs into modifications.
// Default: true
func WithDetectModifications(enabled bool) Option {
	return func(c *DiffConfig) error {
		c.detectModifications = enabled
		return nil
	}
}

// WithArrayStrategy selects positional or LCS based array comparison.
// Default: ArrayPositional
func WithArrayStrategy(strategy ArrayStrategy) Option {
	return func(c *DiffConfig) error {
		if !strategy.Valid() {
			return &differrors.ConfigError{Option: "array_diff_strategy", Value: string(strategy), Message: "unknown array strategy"}
		}
		c.arrayStrategy = strategy
		return nil
	}
}

// WithMaxDepth sets the JSON nesting ceiling. 0 means unbounded.
// Default: DefaultMaxDepth
func WithMaxDepth(depth int) Option {
	return func(c *DiffConfig) error {
		if depth < 0 {
			return &differrors.ConfigError{Option: "max_depth", Value: depth, Message: "must not be negative (0 means unbounded)"}
		}
		c.maxDepth = depth
		return nil
	}
}

// WithFallbackThreshold sets the combined sequence length above which the
// sequence differ uses its non-minimal anchoring heuristic. 0 disables the
// fallback entirely.
// Default: DefaultFallbackThreshold
func WithFallbackThreshold(n int) Option {
	return func(c *DiffConfig) error {
		if n < 0 {
			return &differrors.ConfigError{Option: "size_fallback_threshold", Value: n, Message: "must not be negative (0 disables the fallback)"}
		}
		c.fallbackThreshold = n
		return nil
	}
}

// WithLogger sets the logger engines report progress to.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(c *DiffConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		c.logger = l
		return nil
	}
}
