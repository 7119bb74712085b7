package diffconfig

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Keyer derives comparison keys from displayed content.
// A Keyer holds a case folder and must not be shared between goroutines.
type Keyer struct {
	whitespace WhitespaceMode
	fold       *cases.Caser
}

// NewKeyer returns a Keyer for this configuration.
func (c DiffConfig) NewKeyer() *Keyer {
	k := &Keyer{whitespace: c.whitespace}
	if !c.caseSensitive {
		folder := cases.Fold()
		k.fold = &folder
	}
	return k
}

// Key is a convenience for c.NewKeyer().Key(s).
func (c DiffConfig) Key(s string) string {
	return c.NewKeyer().Key(s)
}

// Identity reports whether Key returns its input unchanged, letting callers
// skip key computation entirely.
func (k *Keyer) Identity() bool {
	return k.whitespace == WhitespaceExact && k.fold == nil
}

// Key returns the comparison key for s.
func (k *Keyer) Key(s string) string {
	switch k.whitespace {
	case WhitespaceIgnoreTrailing:
		s = strings.TrimRightFunc(s, unicode.IsSpace)
	case WhitespaceIgnoreAll:
		s = strings.Map(dropSpace, s)
	}
	if k.fold != nil {
		s = k.fold.String(s)
	}
	return s
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}
