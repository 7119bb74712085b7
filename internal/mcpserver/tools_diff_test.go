package mcpserver

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestDiffTextTool_Modification(t *testing.T) {
	input := diffTextInput{
		Old: inline("a\nb\nc"),
		New: inline("a\nB\nc"),
	}
	result, output, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.False(t, output.Equal)
	assert.Equal(t, 1, output.Added)
	assert.Equal(t, 1, output.Removed)
	assert.Equal(t, 1, output.Modified)
	assert.Equal(t, 2, output.Unchanged)
	assert.Equal(t, 1, output.TotalEdits)
	assert.Equal(t, []textEdit{{Op: "modify", OldLine: 2, NewLine: 2, Old: "b", New: "B"}}, output.Edits)
	assert.Equal(t, "Texts differ: 1 line added, 1 line removed (1 modification).", output.Summary)
}

func TestDiffTextTool_IgnoreCase(t *testing.T) {
	input := diffTextInput{
		Old:        inline("Hello\nWorld"),
		New:        inline("hello\nworld"),
		IgnoreCase: true,
	}
	_, output, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.True(t, output.Equal)
	assert.Empty(t, output.Edits)
	assert.Equal(t, "No differences.", output.Summary)
}

func TestDiffTextTool_WhitespaceMode(t *testing.T) {
	for _, mode := range []string{"ignore_trailing", "ignore_all"} {
		t.Run(mode, func(t *testing.T) {
			input := diffTextInput{
				Old:            inline("a\nb"),
				New:            inline("a  \nb\t"),
				WhitespaceMode: mode,
			}
			result, output, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
			require.NoError(t, err)
			assert.Nil(t, result)
			assert.True(t, output.Equal)
		})
	}
}

func TestDiffTextTool_IncludeEqual(t *testing.T) {
	input := diffTextInput{
		Old:          inline("a\nb\nc"),
		New:          inline("a\nb\nc\nd"),
		IncludeEqual: true,
	}
	_, output, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Len(t, output.Edits, 4)
	assert.Equal(t, "equal", output.Edits[0].Op)
	assert.Equal(t, textEdit{Op: "insert", NewLine: 4, New: "d"}, output.Edits[3])
}

func TestDiffTextTool_NoModify(t *testing.T) {
	input := diffTextInput{
		Old:      inline("a\nb\nc"),
		New:      inline("a\nB\nc"),
		NoModify: true,
	}
	_, output, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 0, output.Modified)
	require.Len(t, output.Edits, 2)
	ops := []string{output.Edits[0].Op, output.Edits[1].Op}
	assert.ElementsMatch(t, []string{"delete", "insert"}, ops)
}

func TestDiffTextTool_Pagination(t *testing.T) {
	var lines []string
	for i := range 10 {
		lines = append(lines, "line "+strconv.Itoa(i))
	}
	input := diffTextInput{
		Old:    inline(strings.Join(lines, "\n")),
		New:    inline(""),
		Offset: 2,
		Limit:  3,
	}
	_, output, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 10, output.TotalEdits)
	assert.Equal(t, 3, output.Returned)
	require.Len(t, output.Edits, 3)
	assert.Equal(t, "line 2", output.Edits[0].Old)
	assert.Equal(t, 3, output.Edits[0].OldLine)
}

func TestDiffTextTool_Errors(t *testing.T) {
	t.Run("invalid whitespace mode", func(t *testing.T) {
		input := diffTextInput{
			Old:            inline("a"),
			New:            inline("b"),
			WhitespaceMode: "squash",
		}
		result, _, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		assert.Contains(t, errText(t, result), "whitespace_mode")
	})

	t.Run("missing input", func(t *testing.T) {
		input := diffTextInput{Old: inline("a")}
		result, _, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(errText(t, result), "new: exactly one of"))
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		input := diffTextInput{
			Old: inline("ok\xff"),
			New: inline("ok"),
		}
		result, _, err := handleDiffText(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		assert.Contains(t, errText(t, result), "old")
	})
}

func TestDiffJSONTool_AddedKey(t *testing.T) {
	input := diffJSONInput{
		Old: inline(`{"x":1}`),
		New: inline(`{"x":1,"y":2}`),
	}
	result, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.False(t, output.Equal)
	assert.Equal(t, 1, output.Added)
	assert.Equal(t, 1, output.TotalChanges)
	assert.Equal(t, []jsonChange{{
		Path:        "$.y",
		Pointer:     "/y",
		Kind:        "added",
		New:         "2",
		Description: "+ $.y: 2",
	}}, output.Changes)
	assert.Equal(t, "1 change found (1 added).", output.Summary)
}

func TestDiffJSONTool_TypeChanged(t *testing.T) {
	input := diffJSONInput{
		Old: inline(`{"x":1}`),
		New: inline(`{"x":"1"}`),
	}
	_, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 1, output.TypeChanged)
	require.Len(t, output.Changes, 1)
	assert.Equal(t, "1", output.Changes[0].Old)
	assert.Equal(t, `"1"`, output.Changes[0].New)
	assert.Equal(t, "type_changed", output.Changes[0].Kind)
}

func TestDiffJSONTool_Equal(t *testing.T) {
	input := diffJSONInput{
		Old: inline(`{"a":1.0,"b":[true]}`),
		New: inline(`{"b":[true],"a":1}`),
	}
	_, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.True(t, output.Equal)
	assert.Empty(t, output.Changes)
	assert.Equal(t, "No differences.", output.Summary)
}

func TestDiffJSONTool_LCS(t *testing.T) {
	input := diffJSONInput{
		Old:           inline(`[1,2,3,4]`),
		New:           inline(`[0,1,2,4]`),
		ArrayStrategy: "lcs",
	}
	_, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	var got []string
	for _, c := range output.Changes {
		got = append(got, c.Description)
	}
	assert.Equal(t, []string{"+ $[0]: 0", "- $[2]: 3"}, got)
}

func TestDiffJSONTool_PathFilterAndGroups(t *testing.T) {
	oldDoc := `{"a":{"x":1,"y":1},"b":2}`
	newDoc := `{"a":{"x":2,"y":2},"b":3}`

	t.Run("path", func(t *testing.T) {
		input := diffJSONInput{Old: inline(oldDoc), New: inline(newDoc), Path: "/a"}
		_, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		assert.Equal(t, 2, output.TotalChanges)
		for _, c := range output.Changes {
			assert.True(t, strings.HasPrefix(c.Pointer, "/a/"), c.Pointer)
		}
	})

	t.Run("path without matches", func(t *testing.T) {
		input := diffJSONInput{Old: inline(oldDoc), New: inline(newDoc), Path: "/zzz"}
		_, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		assert.Equal(t, 0, output.TotalChanges)
		assert.Equal(t, "No changes match the path filter.", output.Summary)
	})

	t.Run("group by root", func(t *testing.T) {
		input := diffJSONInput{Old: inline(oldDoc), New: inline(newDoc), GroupBy: "root"}
		_, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		assert.Empty(t, output.Changes)
		assert.Equal(t, []groupCount{{"$.a", 2}, {"$.b", 1}}, output.Groups)
	})

	t.Run("group by kind", func(t *testing.T) {
		input := diffJSONInput{Old: inline(oldDoc), New: inline(newDoc), GroupBy: "kind"}
		_, output, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
		require.NoError(t, err)
		assert.Equal(t, []groupCount{{"changed", 3}}, output.Groups)
	})
}

func TestDiffJSONTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input diffJSONInput
		want  string
	}{
		{
			name:  "invalid group_by",
			input: diffJSONInput{Old: inline("1"), New: inline("1"), GroupBy: "severity"},
			want:  "invalid group_by",
		},
		{
			name:  "invalid path glob",
			input: diffJSONInput{Old: inline("1"), New: inline("1"), Path: "/a/["},
			want:  "invalid glob pattern",
		},
		{
			name:  "invalid array strategy",
			input: diffJSONInput{Old: inline("1"), New: inline("1"), ArrayStrategy: "zigzag"},
			want:  "array_diff_strategy",
		},
		{
			name:  "malformed new document",
			input: diffJSONInput{Old: inline(`{}`), New: inline(`{"a":}`)},
			want:  "new",
		},
		{
			name: "depth exceeded",
			input: diffJSONInput{
				Old:      inline(`{"a":{"b":{"c":1}}}`),
				New:      inline(`{}`),
				MaxDepth: 2,
			},
			want: "old",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			assert.Contains(t, errText(t, result), tt.want)
		})
	}
}

func TestDiffJSONTool_CachedDocumentReused(t *testing.T) {
	docCache.reset()
	path := writeTemp(t, "actual.json", `{"items":[1,2,3]}`)

	input := diffJSONInput{
		Old: inline(`{"items":[1,2]}`),
		New: docInput{File: path},
	}
	_, first, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	_, second, err := handleDiffJSON(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, docCache.size())
}
