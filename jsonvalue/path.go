package jsonvalue

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment returns an object key segment.
func KeySegment(key string) Segment { return Segment{Key: key} }

// IndexSegment returns an array index segment.
func IndexSegment(i int) Segment { return Segment{Index: i, IsIndex: true} }

// String returns the key, or the index in decimal.
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path locates a value relative to the root of a document. The root is the
// empty path.
type Path []Segment

// AppendKey returns a new path extended by an object key. p is not modified
// and the result never shares its backing array with p.
func (p Path) AppendKey(key string) Path {
	return p.append(KeySegment(key))
}

// AppendIndex returns a new path extended by an array index.
func (p Path) AppendIndex(i int) Path {
	return p.append(IndexSegment(i))
}

func (p Path) append(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Equal reports whether two paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the path in JSONPath-like notation: "$" for the root,
// ".name" for simple keys, ["a.b"] for other keys and [3] for indices.
func (p Path) String() string {
	var b strings.Builder
	b.Grow(1 + len(p)*8)
	b.WriteByte('$')
	for _, s := range p {
		switch {
		case s.IsIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		case isIdentifier(s.Key):
			b.WriteByte('.')
			b.WriteString(s.Key)
		default:
			b.WriteByte('[')
			b.WriteString(strconv.Quote(s.Key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer ("" for the root).
func (p Path) Pointer() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		b.WriteString(pointerEscaper.Replace(s.Key))
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// segments returns the path as a list of strings and ints.
func (p Path) segments() []any {
	out := make([]any, len(p))
	for i, s := range p {
		if s.IsIndex {
			out[i] = s.Index
		} else {
			out[i] = s.Key
		}
	}
	return out
}

// MarshalJSON encodes the path as an array of keys (strings) and indices
// (numbers); the root is [].
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.segments())
}

// MarshalYAML encodes the path like MarshalJSON.
func (p Path) MarshalYAML() (any, error) {
	return p.segments(), nil
}
