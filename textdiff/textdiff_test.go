package textdiff

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/differrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConfig(t *testing.T, opts ...diffconfig.Option) diffconfig.DiffConfig {
	t.Helper()
	cfg, err := diffconfig.New(opts...)
	require.NoError(t, err)
	return cfg
}

func ops(r *Result) []Op {
	out := make([]Op, 0, len(r.Edits))
	for _, e := range r.Edits {
		out = append(out, e.Op)
	}
	return out
}

func TestDiffModifiedLine(t *testing.T) {
	result, err := Diff("a\nb\nc", "a\nB\nc", diffconfig.Default())
	require.NoError(t, err)

	want := []Edit{
		{Op: OpEqual, Old: &Line{1, "a"}, New: &Line{1, "a"}},
		{Op: OpModify, Old: &Line{2, "b"}, New: &Line{2, "B"}},
		{Op: OpEqual, Old: &Line{3, "c"}, New: &Line{3, "c"}},
	}
	if diff := cmp.Diff(want, result.Edits); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Stats{Added: 1, Removed: 1, Unchanged: 2, Modified: 1}, result.Stats)
	assert.False(t, result.Equal)
}

func TestDiffWithoutModifyDetection(t *testing.T) {
	cfg := mustConfig(t, diffconfig.WithDetectModifications(false))

	result, err := Diff("a\nb\nc", "a\nB\nc", cfg)
	require.NoError(t, err)

	assert.Equal(t, []Op{OpEqual, OpDelete, OpInsert, OpEqual}, ops(result))
	assert.Equal(t, 2, result.Edits[1].Old.Number)
	assert.Nil(t, result.Edits[1].New)
	assert.Equal(t, 2, result.Edits[2].New.Number)
	assert.Nil(t, result.Edits[2].Old)
	assert.Equal(t, Stats{Added: 1, Removed: 1, Unchanged: 2}, result.Stats)
}

func TestDiffEmptyInputs(t *testing.T) {
	result, err := Diff("", "", diffconfig.Default())
	require.NoError(t, err)

	assert.Empty(t, result.Edits)
	assert.True(t, result.Equal)
	assert.Equal(t, Stats{}, result.Stats)
}

func TestDiffEmptyVersusContent(t *testing.T) {
	result, err := Diff("", "x\ny", diffconfig.Default())
	require.NoError(t, err)
	assert.Equal(t, []Op{OpInsert, OpInsert}, ops(result))
	assert.Equal(t, 2, result.Stats.Added)

	result, err = Diff("x\ny", "", diffconfig.Default())
	require.NoError(t, err)
	assert.Equal(t, []Op{OpDelete, OpDelete}, ops(result))
	assert.Equal(t, 2, result.Stats.Removed)
}

func TestDiffDisjoint(t *testing.T) {
	cfg := mustConfig(t, diffconfig.WithDetectModifications(false))

	result, err := Diff("a\nb", "x\ny\nz", cfg)
	require.NoError(t, err)
	assert.Equal(t, []Op{OpDelete, OpDelete, OpInsert, OpInsert, OpInsert}, ops(result))
}

func TestDiffNormalization(t *testing.T) {
	tests := []struct {
		name     string
		opts     []diffconfig.Option
		old, new string
		equal    bool
	}{
		{"exact sees trailing space", nil, "a \nb", "a\nb", false},
		{"ignore trailing", []diffconfig.Option{diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreTrailing)}, "a \t\nb", "a\nb", true},
		{"ignore trailing keeps leading", []diffconfig.Option{diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreTrailing)}, "  a", "a", false},
		{"ignore all", []diffconfig.Option{diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreAll)}, "f ( x )", "f(x)", true},
		{"case sensitive", nil, "Hello", "hello", false},
		{"case insensitive", []diffconfig.Option{diffconfig.WithCaseSensitive(false)}, "Hello\nWORLD", "hello\nworld", true},
		{"crlf versus lf", nil, "a\r\nb\r\n", "a\nb\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Diff(tt.old, tt.new, mustConfig(t, tt.opts...))
			require.NoError(t, err)
			assert.Equal(t, tt.equal, result.Equal)
		})
	}
}

func TestDiffNormalizationKeepsDisplayedText(t *testing.T) {
	cfg := mustConfig(t, diffconfig.WithCaseSensitive(false), diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreAll))

	result, err := Diff("Foo  Bar", "foobar", cfg)
	require.NoError(t, err)
	require.Len(t, result.Edits, 1)

	assert.Equal(t, OpEqual, result.Edits[0].Op)
	assert.Equal(t, "Foo  Bar", result.Edits[0].Old.Text)
	assert.Equal(t, "foobar", result.Edits[0].New.Text)
}

func TestDiffInvalidUTF8(t *testing.T) {
	_, err := Diff("ok\n\xffbad", "ok", diffconfig.Default())
	require.Error(t, err)

	var perr *differrors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, differrors.SideOld, perr.Side)
	assert.Equal(t, int64(3), perr.Offset)

	_, err = Diff("ok", "\xc3", diffconfig.Default())
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, differrors.SideNew, perr.Side)
	assert.Equal(t, int64(0), perr.Offset)
}

func TestDiffInvalidConfig(t *testing.T) {
	_, err := Diff("a", "b", diffconfig.DiffConfig{})
	assert.True(t, errors.Is(err, differrors.ErrConfig))
}

var corpus = []string{
	"",
	"a",
	"a\nb\nc",
	"a\nB\nc",
	"a\nb\nc\n",
	"x\ny\nz",
	"a\na\na\nb",
	"b\na\na\na",
	"line 1\nline 2\nline 3",
	"line 1\nline 2 modified\nline 3\nline 4",
	"\n\n\n",
	"one\ntwo\nthree\nfour\nfive\nsix",
	"six\nfive\nfour\nthree\ntwo\none",
}

func TestDiffReconstruction(t *testing.T) {
	for _, detect := range []bool{true, false} {
		cfg := mustConfig(t, diffconfig.WithDetectModifications(detect))
		for _, a := range corpus {
			for _, b := range corpus {
				result, err := Diff(a, b, cfg)
				require.NoError(t, err)

				assert.Equal(t, texts(Split(a)), result.OldLines(), "old side of %q -> %q", a, b)
				assert.Equal(t, texts(Split(b)), result.NewLines(), "new side of %q -> %q", a, b)
			}
		}
	}
}

func TestDiffCountSymmetry(t *testing.T) {
	cfg := diffconfig.Default()
	for _, a := range corpus {
		for _, b := range corpus {
			ab, err := Diff(a, b, cfg)
			require.NoError(t, err)
			ba, err := Diff(b, a, cfg)
			require.NoError(t, err)

			assert.Equal(t, ab.Stats.Added, ba.Stats.Removed, "%q -> %q", a, b)
			assert.Equal(t, ab.Stats.Removed, ba.Stats.Added, "%q -> %q", a, b)
			assert.Equal(t, ab.Stats.Unchanged, ba.Stats.Unchanged, "%q -> %q", a, b)
		}
	}
}

func TestDiffIdempotence(t *testing.T) {
	configs := []diffconfig.DiffConfig{
		diffconfig.Default(),
		mustConfig(t, diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreTrailing)),
		mustConfig(t, diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreAll), diffconfig.WithCaseSensitive(false)),
	}
	for _, cfg := range configs {
		for _, a := range corpus {
			result, err := Diff(a, a, cfg)
			require.NoError(t, err)

			assert.True(t, result.Equal)
			assert.Zero(t, result.Stats.Added)
			assert.Zero(t, result.Stats.Removed)
			for _, e := range result.Edits {
				assert.Equal(t, OpEqual, e.Op)
			}
		}
	}
}

func TestDiffDeterministicSerialization(t *testing.T) {
	a := "alpha\nbeta\ngamma\ndelta\nepsilon"
	b := "alpha\nBETA\ngamma\nzeta\nepsilon\neta"

	first, err := Diff(a, b, diffconfig.Default())
	require.NoError(t, err)
	want, err := json.Marshal(first)
	require.NoError(t, err)

	for range 10 {
		again, err := Diff(a, b, diffconfig.Default())
		require.NoError(t, err)
		got, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestDiffApproximateAboveThreshold(t *testing.T) {
	a, b := numbered(400, 7)
	cfg := mustConfig(t, diffconfig.WithFallbackThreshold(50))

	result, err := Diff(a, b, cfg)
	require.NoError(t, err)

	assert.True(t, result.Approximate)
	assert.Equal(t, texts(Split(a)), result.OldLines())
	assert.Equal(t, texts(Split(b)), result.NewLines())

	exact, err := Diff(a, b, diffconfig.Default())
	require.NoError(t, err)
	assert.False(t, exact.Approximate)
}

func TestResultText(t *testing.T) {
	result, err := Diff("a\nb", "a\nc", diffconfig.Default())
	require.NoError(t, err)

	assert.Equal(t, "a\nb", result.OldText())
	assert.Equal(t, "a\nc", result.NewText())
}

func texts(lines []Line) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

// numbered builds two n-line texts where every k-th line of the second one
// is modified.
func numbered(n, k int) (string, string) {
	var a, b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			a.WriteByte('\n')
			b.WriteByte('\n')
		}
		fmt.Fprintf(&a, "line %d", i)
		if i%k == 0 {
			fmt.Fprintf(&b, "line %d modified", i)
		} else {
			fmt.Fprintf(&b, "line %d", i)
		}
	}
	return a.String(), b.String()
}
