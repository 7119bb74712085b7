package cliutil

import (
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Palette colours diff output. The zero value is not usable; use NewPalette.
type Palette struct {
	Added   *color.Color
	Removed *color.Color
	Changed *color.Color
	Header  *color.Color
	Muted   *color.Color

	// AddedSpan and RemovedSpan mark the differing runs inside a modified line.
	AddedSpan   *color.Color
	RemovedSpan *color.Color
}

// NewPalette returns a palette that emits ANSI escapes only when enabled,
// independent of the package-level color.NoColor setting.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Added:       color.New(color.FgGreen),
		Removed:     color.New(color.FgRed),
		Changed:     color.New(color.FgYellow),
		Header:      color.New(color.Bold),
		Muted:       color.New(color.FgHiBlack),
		AddedSpan:   color.New(color.FgGreen, color.Bold, color.Underline),
		RemovedSpan: color.New(color.FgRed, color.Bold, color.Underline),
	}
	for _, c := range []*color.Color{p.Added, p.Removed, p.Changed, p.Header, p.Muted, p.AddedSpan, p.RemovedSpan} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Highlight returns oldLine and newLine with the runs that differ between
// them marked in RemovedSpan and AddedSpan respectively, and the rest in
// Removed and Added.
func (p Palette) Highlight(oldLine, newLine string) (string, string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var o, n string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			o += p.Removed.Sprint(d.Text)
			n += p.Added.Sprint(d.Text)
		case diffmatchpatch.DiffDelete:
			o += p.RemovedSpan.Sprint(d.Text)
		case diffmatchpatch.DiffInsert:
			n += p.AddedSpan.Sprint(d.Text)
		}
	}
	return o, n
}
