package jsonvalue

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/outdiff/differrors"
)

// Parse decodes a single JSON document with no nesting limit. A number
// literal beyond the float64 range (1e400) is a *differrors.JSONParseError;
// one too small to represent (1e-400) decodes as zero.
func Parse(data string) (Value, error) {
	return ParseWithLimit(data, 0)
}

// frame is an open container on the parse stack.
type frame struct {
	isObj  bool
	arr    []Value
	obj    *object
	key    string
	hasKey bool
}

// next returns the segment addressing the next value added to f.
func (f *frame) next() Segment {
	if f.isObj {
		return KeySegment(f.key)
	}
	return IndexSegment(len(f.arr))
}

// stackPath returns the path of the value about to be added to the
// innermost open container.
func stackPath(stack []*frame) Path {
	p := make(Path, 0, len(stack))
	for _, f := range stack {
		p = append(p, f.next())
	}
	return p
}

func (f *frame) add(v Value) {
	if f.isObj {
		f.obj.set(f.key, v)
		f.key, f.hasKey = "", false
		return
	}
	f.arr = append(f.arr, v)
}

func (f *frame) value() Value {
	if f.isObj {
		return Value{kind: KindObject, obj: f.obj}
	}
	if f.arr == nil {
		f.arr = []Value{}
	}
	return Value{kind: KindArray, arr: f.arr}
}

// ParseWithLimit decodes a single JSON document. When maxDepth is positive,
// a container nested deeper than maxDepth fails with a
// *differrors.DepthExceededError; the top-level container has depth 1.
// Malformed input fails with a *differrors.JSONParseError and input that is
// not UTF-8 with a *differrors.ParseError. Side is left empty on returned
// errors.
func ParseWithLimit(data string, maxDepth int) (Value, error) {
	if !utf8.ValidString(data) {
		return Value{}, &differrors.ParseError{
			Offset:  int64(firstInvalidUTF8(data)),
			Message: "invalid UTF-8",
		}
	}

	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var (
		stack []*frame
		root  Value
		done  bool
	)

	// emit hands a completed value to the enclosing container, or finishes
	// the document.
	emit := func(v Value) {
		if len(stack) == 0 {
			root, done = v, true
			return
		}
		stack[len(stack)-1].add(v)
	}

	for !done {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, syntaxError(data, err)
		}

		var top *frame
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}

		// Inside an object, the decoder alternates keys and values.
		if top != nil && top.isObj && !top.hasKey {
			if d, ok := tok.(json.Delim); ok && d == '}' {
				stack = stack[:len(stack)-1]
				emit(top.value())
				continue
			}
			key, ok := tok.(string)
			if !ok {
				return Value{}, syntaxError(data, errors.New("object key must be a string"))
			}
			top.key, top.hasKey = key, true
			continue
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				if maxDepth > 0 && len(stack)+1 > maxDepth {
					return Value{}, &differrors.DepthExceededError{
						Limit: maxDepth,
						Path:  stackPath(stack).String(),
					}
				}
				f := &frame{isObj: t == '{'}
				if f.isObj {
					f.obj = newObject(0)
				}
				stack = append(stack, f)
			case ']':
				stack = stack[:len(stack)-1]
				emit(top.value())
			}
		case bool:
			emit(BoolValue(t))
		case nil:
			emit(NullValue())
		case string:
			emit(StringValue(t))
		case json.Number:
			f, perr := strconv.ParseFloat(string(t), 64)
			if perr != nil {
				return Value{}, newJSONParseError(data, dec.InputOffset(), "number out of range: "+string(t), nil)
			}
			emit(Value{kind: KindNumber, n: f, lit: string(t)})
		}
	}

	// Only whitespace may follow the document.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Value{}, syntaxError(data, err)
	}
	return root, nil
}

// syntaxError locates a decoding failure. Token-level decoder errors carry
// offsets relative to internal buffers, so the input is rescanned from the
// start to find the first offending byte.
func syntaxError(data string, err error) error {
	var raw json.RawMessage
	verr := json.Unmarshal([]byte(data), &raw)
	var se *json.SyntaxError
	if errors.As(verr, &se) {
		return newJSONParseError(data, se.Offset, se.Error(), nil)
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return newJSONParseError(data, int64(len(data)), "", err)
}

// newJSONParseError builds an error located at the byte consumed last before
// offset.
func newJSONParseError(data string, offset int64, msg string, cause error) *differrors.JSONParseError {
	line, col := lineColumn(data, offset)
	return &differrors.JSONParseError{
		Offset:  offset,
		Line:    line,
		Column:  col,
		Message: msg,
		Cause:   cause,
	}
}

// lineColumn returns the 1-based line and byte column of the byte at
// offset-1 (the offending byte), clamped to the input.
func lineColumn(data string, offset int64) (int, int) {
	pos := int(offset) - 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(data) {
		pos = len(data)
	}
	prefix := data[:pos]
	line := 1 + strings.Count(prefix, "\n")
	col := pos - strings.LastIndexByte(prefix, '\n')
	return line, col
}

func firstInvalidUTF8(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return len(s)
}
