package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single line no terminator", "abc", []string{"abc"}},
		{"single terminator", "\n", []string{""}},
		{"trailing terminator", "a\nb\n", []string{"a", "b"}},
		{"unterminated final line", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
		{"lone cr stays", "a\rb", []string{"a\rb"}},
		{"only whitespace", "   ", []string{"   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Split(tt.in)
			var got []string
			for i, l := range lines {
				assert.Equal(t, i+1, l.Number)
				got = append(got, l.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
