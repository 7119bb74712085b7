package jsonvalue

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON encodes v with object members in insertion order. Parsed
// numbers keep their source literal. Non-finite numbers have no JSON form
// and are written as the strings "NaN", "+Inf" and "-Inf".
//
// Strings are written without HTML escaping, but json.Marshal escapes <, >
// and & in Marshaler output again; use a json.Encoder with
// SetEscapeHTML(false) to keep them.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// token is one pending piece of output for the iterative writers: a value,
// an object member name, or literal punctuation.
type token struct {
	kind tokenKind
	v    Value
	text string
}

type tokenKind int

const (
	tokValue tokenKind = iota
	tokKey
	tokRaw
)

// pushChildren schedules the members or elements of container v, followed
// by its closing bracket. keyOrder lists member indices in output order.
func pushChildren(stack []token, v Value, keyOrder []int) []token {
	if v.kind == KindArray {
		stack = append(stack, token{kind: tokRaw, text: "]"})
		for i := len(v.arr) - 1; i >= 0; i-- {
			stack = append(stack, token{v: v.arr[i]})
			if i > 0 {
				stack = append(stack, token{kind: tokRaw, text: ","})
			}
		}
		return stack
	}
	stack = append(stack, token{kind: tokRaw, text: "}"})
	for n := len(keyOrder) - 1; n >= 0; n-- {
		i := keyOrder[n]
		stack = append(stack, token{v: v.obj.vals[i]}, token{kind: tokKey, text: v.obj.keys[i]})
		if n > 0 {
			stack = append(stack, token{kind: tokRaw, text: ","})
		}
	}
	return stack
}

func insertionOrder(v Value) []int {
	idx := make([]int, len(v.obj.keys))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func writeJSON(buf *bytes.Buffer, root Value) error {
	stack := []token{{v: root}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t.kind {
		case tokRaw:
			buf.WriteString(t.text)
			continue
		case tokKey:
			if err := writeString(buf, t.text); err != nil {
				return err
			}
			buf.WriteByte(':')
			continue
		}

		v := t.v
		switch v.kind {
		case KindNull:
			buf.WriteString("null")
		case KindBool:
			buf.WriteString(strconv.FormatBool(v.b))
		case KindNumber:
			buf.WriteString(numberText(v, true))
		case KindString:
			if err := writeString(buf, v.s); err != nil {
				return err
			}
		case KindArray:
			buf.WriteByte('[')
			stack = pushChildren(stack, v, nil)
		case KindObject:
			buf.WriteByte('{')
			stack = pushChildren(stack, v, insertionOrder(v))
		}
	}
	return nil
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// numberText formats a number. With quoteNonFinite set, NaN and the
// infinities are returned as quoted JSON strings.
func numberText(v Value, quoteNonFinite bool) string {
	if v.lit != "" {
		return v.lit
	}
	var s string
	switch {
	case math.IsNaN(v.n):
		s = "NaN"
	case math.IsInf(v.n, 1):
		s = "+Inf"
	case math.IsInf(v.n, -1):
		s = "-Inf"
	default:
		return formatFloat(v.n)
	}
	if quoteNonFinite {
		return strconv.Quote(s)
	}
	return s
}

// formatFloat writes integers without exponent up to 1e21, matching
// encoding/json.
func formatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return "<invalid>"
	}
	return buf.String()
}

// MarshalYAML encodes v as a YAML node tree, keeping object member order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	type pending struct {
		v    Value
		node *yaml.Node
	}
	root := &yaml.Node{}
	work := []pending{{v: v, node: root}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		switch it.v.kind {
		case KindArray:
			it.node.Kind = yaml.SequenceNode
			it.node.Content = make([]*yaml.Node, len(it.v.arr))
			for i, e := range it.v.arr {
				child := &yaml.Node{}
				it.node.Content[i] = child
				work = append(work, pending{v: e, node: child})
			}
		case KindObject:
			it.node.Kind = yaml.MappingNode
			it.node.Content = make([]*yaml.Node, 0, 2*len(it.v.obj.keys))
			for i, k := range it.v.obj.keys {
				child := &yaml.Node{}
				it.node.Content = append(it.node.Content, scalarNode("!!str", k), child)
				work = append(work, pending{v: it.v.obj.vals[i], node: child})
			}
		default:
			*it.node = *scalarYAML(it.v)
		}
	}
	return root
}

func scalarYAML(v Value) *yaml.Node {
	switch v.kind {
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.b))
	case KindNumber:
		switch {
		case math.IsNaN(v.n):
			return scalarNode("!!float", ".nan")
		case math.IsInf(v.n, 1):
			return scalarNode("!!float", ".inf")
		case math.IsInf(v.n, -1):
			return scalarNode("!!float", "-.inf")
		case v.IsInteger() && math.Abs(v.n) < 1e21:
			return scalarNode("!!int", strconv.FormatFloat(v.n, 'f', -1, 64))
		default:
			return scalarNode("!!float", formatFloat(v.n))
		}
	case KindString:
		return scalarNode("!!str", v.s)
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// CanonicalKey returns a string that is identical for values Equal would
// consider equal: object members are sorted by key, numbers are formatted
// from their float64 value and strings pass through normalize (which may be
// nil). Distinct keys imply unequal values; equal keys must still be
// confirmed with Equal (NaN shares a key with itself).
func CanonicalKey(v Value, normalize func(string) string) string {
	var b strings.Builder
	writeCanonical(&b, v, normalize)
	return b.String()
}

func writeCanonical(b *strings.Builder, root Value, normalize func(string) string) {
	stack := []token{{v: root}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t.kind {
		case tokRaw:
			b.WriteString(t.text)
			continue
		case tokKey:
			b.WriteString(strconv.Quote(t.text))
			b.WriteByte(':')
			continue
		}

		v := t.v
		switch v.kind {
		case KindNull:
			b.WriteString("n")
		case KindBool:
			if v.b {
				b.WriteString("t")
			} else {
				b.WriteString("f")
			}
		case KindNumber:
			b.WriteString("#")
			if v.n == 0 {
				// -0 == 0
				b.WriteString("0")
			} else {
				b.WriteString(strconv.FormatFloat(v.n, 'g', -1, 64))
			}
		case KindString:
			s := v.s
			if normalize != nil {
				s = normalize(s)
			}
			b.WriteString(strconv.Quote(s))
		case KindArray:
			b.WriteByte('[')
			stack = pushChildren(stack, v, nil)
		case KindObject:
			idx := insertionOrder(v)
			slices.SortFunc(idx, func(x, y int) int {
				return strings.Compare(v.obj.keys[x], v.obj.keys[y])
			})
			b.WriteByte('{')
			stack = pushChildren(stack, v, idx)
		}
	}
}
