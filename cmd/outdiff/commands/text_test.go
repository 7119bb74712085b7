package commands

import (
	"encoding/json"
	"testing"

	"github.com/erraggy/outdiff/textdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCommand_Modification(t *testing.T) {
	oldPath := writeFile(t, "old.txt", "a\nb\nc\n")
	newPath := writeFile(t, "new.txt", "a\nB\nc\n")

	code, out, errOut := run(t, "", "text", "--color", "never", oldPath, newPath)
	assert.Equal(t, ExitDifferent, code)
	assert.Empty(t, errOut)

	want := "--- " + oldPath + " (6 B)\n" +
		"+++ " + newPath + " (6 B)\n" +
		"- 2 | b\n" +
		"+ 2 | B\n" +
		"1 added, 1 removed, 1 modified, 2 unchanged\n"
	assert.Equal(t, want, out)
}

func TestTextCommand_All(t *testing.T) {
	oldPath := writeFile(t, "old.txt", "a\nb\n")
	newPath := writeFile(t, "new.txt", "a\nb\nc\n")

	code, out, _ := run(t, "", "text", "--all", oldPath, newPath)
	assert.Equal(t, ExitDifferent, code)
	assert.Contains(t, out, "  1 | a\n  2 | b\n+ 3 | c\n")
	assert.Contains(t, out, "1 added, 0 removed, 0 modified, 2 unchanged")
}

func TestTextCommand_Identical(t *testing.T) {
	p := writeFile(t, "same.txt", "x\ny\n")

	code, out, _ := run(t, "", "text", p, p)
	assert.Equal(t, ExitSame, code)
	assert.Contains(t, out, "No differences.\n")
}

func TestTextCommand_Stdin(t *testing.T) {
	expected := writeFile(t, "expected.txt", "hello\nworld\n")

	code, out, _ := run(t, "hello\nworld\n", "text", expected, "-")
	assert.Equal(t, ExitSame, code)
	assert.Contains(t, out, "+++ <stdin> (12 B)\n")
}

func TestTextCommand_Normalization(t *testing.T) {
	oldPath := writeFile(t, "old.txt", "Hello  World\n")
	newPath := writeFile(t, "new.txt", "hello world \n")

	code, _, _ := run(t, "", "text", oldPath, newPath)
	assert.Equal(t, ExitDifferent, code)

	code, _, _ = run(t, "", "text", "-w", "-i", oldPath, newPath)
	assert.Equal(t, ExitSame, code)

	t.Setenv("OUTDIFF_CASE_SENSITIVE", "false")
	t.Setenv("OUTDIFF_WHITESPACE_MODE", "ignore_all")
	code, _, _ = run(t, "", "text", oldPath, newPath)
	assert.Equal(t, ExitSame, code)
}

func TestTextCommand_NoModify(t *testing.T) {
	oldPath := writeFile(t, "old.txt", "a\n")
	newPath := writeFile(t, "new.txt", "b\n")

	code, out, _ := run(t, "", "text", "--no-modify", "--format", "json", oldPath, newPath)
	assert.Equal(t, ExitDifferent, code)

	var result textdiff.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Edits, 2)
	assert.Equal(t, textdiff.OpDelete, result.Edits[0].Op)
	assert.Equal(t, textdiff.OpInsert, result.Edits[1].Op)
	assert.Equal(t, textdiff.Stats{Added: 1, Removed: 1}, result.Stats)
}

func TestTextCommand_YAML(t *testing.T) {
	oldPath := writeFile(t, "old.txt", "a\n")
	newPath := writeFile(t, "new.txt", "a\nb\n")

	code, out, _ := run(t, "", "text", "-f", "yaml", oldPath, newPath)
	assert.Equal(t, ExitDifferent, code)
	assert.Contains(t, out, "op: insert")
	assert.Contains(t, out, "equal: false")
}

func TestTextCommand_Errors(t *testing.T) {
	good := writeFile(t, "good.txt", "a\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid format", []string{"text", "-f", "delta", good, good}, "invalid format 'delta'"},
		{"missing file", []string{"text", good, good + ".missing"}, "reading input"},
		{"both stdin", []string{"text", "-", "-"}, "only one input"},
		{"bad whitespace mode", []string{"text", "--whitespace", "squash", good, good}, "whitespace_mode"},
		{"negative threshold", []string{"text", "--fallback-threshold=-1", good, good}, "size_fallback_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, "", tt.args...)
			assert.Equal(t, ExitError, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestTextCommand_InvalidUTF8(t *testing.T) {
	bad := writeFile(t, "bad.txt", "ok\n\xff\xfe\n")
	good := writeFile(t, "good.txt", "ok\n")

	code, _, errOut := run(t, "", "text", good, bad)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "new input")
}

func TestTextCommand_WhitespaceFlag(t *testing.T) {
	oldPath := writeFile(t, "old.txt", "a\nb\n")
	newPath := writeFile(t, "new.txt", "a  \nb\t\n")

	for _, mode := range []string{"ignore_trailing", "ignore-trailing", "ignore_all"} {
		t.Run(mode, func(t *testing.T) {
			code, _, errOut := run(t, "", "text", "--whitespace", mode, oldPath, newPath)
			assert.Equal(t, ExitSame, code, errOut)
		})
	}

	code, _, _ := run(t, "", "text", "--whitespace", "exact", oldPath, newPath)
	assert.Equal(t, ExitDifferent, code)
}
