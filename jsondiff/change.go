package jsondiff

import (
	"fmt"

	"github.com/erraggy/outdiff/jsonvalue"
)

// ChangeKind classifies a Change.
type ChangeKind string

const (
	// Added marks a value present only in the new document
	Added ChangeKind = "added"
	// Removed marks a value present only in the old document
	Removed ChangeKind = "removed"
	// Changed marks a scalar whose value differs while its kind does not
	Changed ChangeKind = "changed"
	// TypeChanged marks a location whose value kind differs
	TypeChanged ChangeKind = "type_changed"
)

// Symbol returns the one-character marker used by Change.String.
func (k ChangeKind) Symbol() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	case Changed:
		return "~"
	case TypeChanged:
		return "!"
	default:
		return "?"
	}
}

// Change is a single difference between two documents.
type Change struct {
	// Path locates the change; the root is the empty path
	Path jsonvalue.Path `json:"path" yaml:"path"`
	// Kind classifies the change
	Kind ChangeKind `json:"kind" yaml:"kind"`
	// OldValue is the value in the old document (nil for Added)
	OldValue *jsonvalue.Value `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	// NewValue is the value in the new document (nil for Removed)
	NewValue *jsonvalue.Value `json:"new_value,omitempty" yaml:"new_value,omitempty"`
}

// String returns a one-line description such as "~ $.a.b: 1 -> 2".
func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s: %s", c.Path, c.NewValue)
	case Removed:
		return fmt.Sprintf("- %s: %s", c.Path, c.OldValue)
	case TypeChanged:
		return fmt.Sprintf("! %s: %s (%s) -> %s (%s)", c.Path, c.OldValue, c.OldValue.Kind(), c.NewValue, c.NewValue.Kind())
	default:
		return fmt.Sprintf("%s %s: %s -> %s", c.Kind.Symbol(), c.Path, c.OldValue, c.NewValue)
	}
}

// Stats counts changes by kind.
type Stats struct {
	Added       int `json:"added"        yaml:"added"`
	Removed     int `json:"removed"      yaml:"removed"`
	Changed     int `json:"changed"      yaml:"changed"`
	TypeChanged int `json:"type_changed" yaml:"type_changed"`
}

// Total returns the number of changes.
func (s Stats) Total() int {
	return s.Added + s.Removed + s.Changed + s.TypeChanged
}

func (s *Stats) count(k ChangeKind) {
	switch k {
	case Added:
		s.Added++
	case Removed:
		s.Removed++
	case Changed:
		s.Changed++
	case TypeChanged:
		s.TypeChanged++
	}
}

// Result is the outcome of a JSON diff.
type Result struct {
	// Changes lists the differences in pre-order
	Changes []Change `json:"changes" yaml:"changes"`
	// Stats holds the per-kind counts
	Stats Stats `json:"stats" yaml:"stats"`
	// Equal is true if there are no changes
	Equal bool `json:"equal" yaml:"equal"`
	// Approximate is true if an LCS array alignment used the large-input
	// heuristic and may not be minimal
	Approximate bool `json:"approximate,omitempty" yaml:"approximate,omitempty"`
}

// ByKind returns the changes of the given kind, in order.
func (r *Result) ByKind(kind ChangeKind) []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
