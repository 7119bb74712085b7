package textdiff

import (
	"strings"
	"unicode/utf8"

	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/differrors"
	"github.com/erraggy/outdiff/seqdiff"
)

// Op is the kind of a text edit.
type Op string

const (
	// OpEqual is a line present on both sides
	OpEqual Op = "equal"
	// OpInsert is a line only present in the new text
	OpInsert Op = "insert"
	// OpDelete is a line only present in the old text
	OpDelete Op = "delete"
	// OpModify is an old line replaced by a new line at the same point
	OpModify Op = "modify"
)

// Edit is one entry of a text edit script. Old is nil for insertions, New is
// nil for deletions.
type Edit struct {
	Op  Op    `json:"op"            yaml:"op"`
	Old *Line `json:"old,omitempty" yaml:"old,omitempty"`
	New *Line `json:"new,omitempty" yaml:"new,omitempty"`
}

// Stats summarizes a text diff. A modification counts once as added, once
// as removed, and once in Modified.
type Stats struct {
	Added     int `json:"added"     yaml:"added"`
	Removed   int `json:"removed"   yaml:"removed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Modified  int `json:"modified"  yaml:"modified"`
}

// Result is the outcome of a text diff.
type Result struct {
	// Edits transforms the old text into the new text, in order
	Edits []Edit `json:"edits" yaml:"edits"`
	// Stats holds the summary counts
	Stats Stats `json:"stats" yaml:"stats"`
	// Equal is true if every edit is OpEqual
	Equal bool `json:"equal" yaml:"equal"`
	// Approximate is true if the script came from the large-input heuristic
	// and may not be minimal
	Approximate bool `json:"approximate,omitempty" yaml:"approximate,omitempty"`
}

// Diff compares two texts line by line.
func Diff(oldText, newText string, cfg diffconfig.DiffConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkUTF8(oldText, differrors.SideOld); err != nil {
		return nil, err
	}
	if err := checkUTF8(newText, differrors.SideNew); err != nil {
		return nil, err
	}

	log := cfg.Logger().With("engine", "text")

	oldLines := Split(oldText)
	newLines := Split(newText)

	keyer := cfg.NewKeyer()
	oldKeys := keys(oldLines, keyer)
	newKeys := keys(newLines, keyer)

	script := seqdiff.Diff(oldKeys, newKeys, seqdiff.Comparator[string]{
		Equal: func(x, y string) bool { return x == y },
		Key:   func(s string) string { return s },
	}, seqdiff.Options{FallbackThreshold: cfg.FallbackThreshold()})
	if script.Fallback {
		log.Warn("input above fallback threshold, script may not be minimal",
			"old_lines", len(oldLines), "new_lines", len(newLines), "threshold", cfg.FallbackThreshold())
	}

	edits := script.Edits
	if cfg.DetectModifications() {
		edits = seqdiff.Coalesce(edits)
	}

	result := &Result{
		Edits:       make([]Edit, 0, len(edits)),
		Approximate: script.Fallback,
	}
	for _, e := range edits {
		out := Edit{}
		if e.OldIndex >= 0 {
			l := oldLines[e.OldIndex]
			out.Old = &l
		}
		if e.NewIndex >= 0 {
			l := newLines[e.NewIndex]
			out.New = &l
		}
		switch e.Op {
		case seqdiff.OpEqual:
			out.Op = OpEqual
			result.Stats.Unchanged++
		case seqdiff.OpDelete:
			out.Op = OpDelete
			result.Stats.Removed++
		case seqdiff.OpInsert:
			out.Op = OpInsert
			result.Stats.Added++
		case seqdiff.OpModify:
			out.Op = OpModify
			result.Stats.Added++
			result.Stats.Removed++
			result.Stats.Modified++
		}
		result.Edits = append(result.Edits, out)
	}
	result.Equal = result.Stats.Added == 0 && result.Stats.Removed == 0

	log.Debug("text diff complete",
		"old_lines", len(oldLines),
		"new_lines", len(newLines),
		"added", result.Stats.Added,
		"removed", result.Stats.Removed,
		"unchanged", result.Stats.Unchanged)

	return result, nil
}

func keys(lines []Line, keyer *diffconfig.Keyer) []string {
	out := make([]string, len(lines))
	identity := keyer.Identity()
	for i, l := range lines {
		if identity {
			out[i] = l.Text
		} else {
			out[i] = keyer.Key(l.Text)
		}
	}
	return out
}

func checkUTF8(s string, side differrors.Side) error {
	if utf8.ValidString(s) {
		return nil
	}
	offset := 0
	for offset < len(s) {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		offset += size
	}
	return &differrors.ParseError{Side: side, Offset: int64(offset), Message: "input is not valid UTF-8"}
}

// OldLines returns the old text's lines in order, as described by the edits.
func (r *Result) OldLines() []string {
	var out []string
	for _, e := range r.Edits {
		if e.Old != nil {
			out = append(out, e.Old.Text)
		}
	}
	return out
}

// NewLines returns the new text's lines in order, as described by the edits.
func (r *Result) NewLines() []string {
	var out []string
	for _, e := range r.Edits {
		if e.New != nil {
			out = append(out, e.New.Text)
		}
	}
	return out
}

// OldText joins OldLines with "\n".
func (r *Result) OldText() string {
	return strings.Join(r.OldLines(), "\n")
}

// NewText joins NewLines with "\n".
func (r *Result) NewText() string {
	return strings.Join(r.NewLines(), "\n")
}
