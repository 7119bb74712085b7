package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/differrors"
	"github.com/erraggy/outdiff/jsondiff"
	"github.com/erraggy/outdiff/textdiff"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type diffTextInput struct {
	Old            docInput `json:"old"                       jsonschema:"The expected (original) text"`
	New            docInput `json:"new"                       jsonschema:"The actual (revised) text to compare against old"`
	WhitespaceMode string   `json:"whitespace_mode,omitempty" jsonschema:"Whitespace handling: exact, ignore_trailing, or ignore_all"`
	IgnoreCase     bool     `json:"ignore_case,omitempty"     jsonschema:"Compare lines case-insensitively"`
	NoModify       bool     `json:"no_modify,omitempty"       jsonschema:"Report replaced lines as a delete plus an insert instead of a modify"`
	IncludeEqual   bool     `json:"include_equal,omitempty"   jsonschema:"Include unchanged lines in the edit list"`
	Offset         int      `json:"offset,omitempty"          jsonschema:"Skip the first N edits"`
	Limit          int      `json:"limit,omitempty"           jsonschema:"Maximum number of edits to return (default 100)"`
}

type textEdit struct {
	Op      string `json:"op"`
	OldLine int    `json:"old_line,omitempty"`
	NewLine int    `json:"new_line,omitempty"`
	Old     string `json:"old,omitempty"`
	New     string `json:"new,omitempty"`
}

type diffTextOutput struct {
	Equal       bool       `json:"equal"`
	Approximate bool       `json:"approximate,omitempty"`
	Added       int        `json:"added"`
	Removed     int        `json:"removed"`
	Modified    int        `json:"modified"`
	Unchanged   int        `json:"unchanged"`
	TotalEdits  int        `json:"total_edits"`
	Returned    int        `json:"returned"`
	Edits       []textEdit `json:"edits,omitempty"`
	Summary     string     `json:"summary"`
}

func handleDiffText(ctx context.Context, _ *mcp.CallToolRequest, input diffTextInput) (*mcp.CallToolResult, diffTextOutput, error) {
	var opts []diffconfig.Option
	if input.WhitespaceMode != "" {
		opts = append(opts, diffconfig.WithWhitespaceMode(diffconfig.WhitespaceMode(input.WhitespaceMode)))
	}
	if input.IgnoreCase {
		opts = append(opts, diffconfig.WithCaseSensitive(false))
	}
	if input.NoModify {
		opts = append(opts, diffconfig.WithDetectModifications(false))
	}
	dc, err := diffConfig(opts...)
	if err != nil {
		return errResult(err), diffTextOutput{}, nil
	}

	oldDoc, err := input.Old.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("old: %w", err)), diffTextOutput{}, nil
	}
	newDoc, err := input.New.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("new: %w", err)), diffTextOutput{}, nil
	}

	result, err := textdiff.Diff(oldDoc.text, newDoc.text, dc)
	if err != nil {
		return errResult(err), diffTextOutput{}, nil
	}

	edits := makeSlice[textEdit](len(result.Edits))
	for _, e := range result.Edits {
		if e.Op == textdiff.OpEqual && !input.IncludeEqual {
			continue
		}
		te := textEdit{Op: string(e.Op)}
		if e.Old != nil {
			te.OldLine, te.Old = e.Old.Number, e.Old.Text
		}
		if e.New != nil {
			te.NewLine, te.New = e.New.Number, e.New.Text
		}
		edits = append(edits, te)
	}

	output := diffTextOutput{
		Equal:       result.Equal,
		Approximate: result.Approximate,
		Added:       result.Stats.Added,
		Removed:     result.Stats.Removed,
		Modified:    result.Stats.Modified,
		Unchanged:   result.Stats.Unchanged,
		TotalEdits:  len(edits),
	}
	output.Edits = paginate(edits, input.Offset, input.Limit)
	output.Returned = len(output.Edits)
	output.Summary = buildTextSummary(output)

	return nil, output, nil
}

func buildTextSummary(output diffTextOutput) string {
	if output.Equal {
		return "No differences."
	}
	parts := []string{
		formatCount(output.Added, "line") + " added",
		formatCount(output.Removed, "line") + " removed",
	}
	summary := "Texts differ: " + strings.Join(parts, ", ")
	if output.Modified > 0 {
		summary += " (" + formatCount(output.Modified, "modification") + ")"
	}
	summary += "."
	if output.Approximate {
		summary += " Inputs exceeded the fallback threshold; the edit script may not be minimal."
	}
	return summary
}

type diffJSONInput struct {
	Old            docInput `json:"old"                       jsonschema:"The expected (original) JSON document"`
	New            docInput `json:"new"                       jsonschema:"The actual (revised) JSON document to compare against old"`
	WhitespaceMode string   `json:"whitespace_mode,omitempty" jsonschema:"Whitespace handling for string values: exact, ignore_trailing, or ignore_all"`
	IgnoreCase     bool     `json:"ignore_case,omitempty"     jsonschema:"Compare string values case-insensitively (object keys stay exact)"`
	NoModify       bool     `json:"no_modify,omitempty"       jsonschema:"With array_strategy=lcs, report replaced elements as removed plus added"`
	ArrayStrategy  string   `json:"array_strategy,omitempty"  jsonschema:"Array comparison: positional or lcs"`
	MaxDepth       int      `json:"max_depth,omitempty"       jsonschema:"Maximum nesting depth (default from server config)"`
	Path           string   `json:"path,omitempty"            jsonschema:"Only report changes at or below JSON Pointers matching this glob, e.g. /items/*"`
	GroupBy        string   `json:"group_by,omitempty"        jsonschema:"Return counts instead of changes: kind or root"`
	Offset         int      `json:"offset,omitempty"          jsonschema:"Skip the first N changes"`
	Limit          int      `json:"limit,omitempty"           jsonschema:"Maximum number of changes to return (default 100)"`
}

type jsonChange struct {
	Path        string `json:"path"`
	Pointer     string `json:"pointer"`
	Kind        string `json:"kind"`
	Old         string `json:"old,omitempty"`
	New         string `json:"new,omitempty"`
	Description string `json:"description"`
}

type diffJSONOutput struct {
	Equal        bool         `json:"equal"`
	Approximate  bool         `json:"approximate,omitempty"`
	Added        int          `json:"added"`
	Removed      int          `json:"removed"`
	Changed      int          `json:"changed"`
	TypeChanged  int          `json:"type_changed"`
	TotalChanges int          `json:"total_changes"`
	Returned     int          `json:"returned"`
	Changes      []jsonChange `json:"changes,omitempty"`
	Groups       []groupCount `json:"groups,omitempty"`
	Summary      string       `json:"summary"`
}

var jsonGroupBy = []string{"kind", "root"}

func handleDiffJSON(ctx context.Context, _ *mcp.CallToolRequest, input diffJSONInput) (*mcp.CallToolResult, diffJSONOutput, error) {
	if err := validateGroupBy(input.GroupBy, jsonGroupBy); err != nil {
		return errResult(err), diffJSONOutput{}, nil
	}
	if err := validateGlobPattern(input.Path); err != nil {
		return errResult(err), diffJSONOutput{}, nil
	}

	var opts []diffconfig.Option
	if input.WhitespaceMode != "" {
		opts = append(opts, diffconfig.WithWhitespaceMode(diffconfig.WhitespaceMode(input.WhitespaceMode)))
	}
	if input.IgnoreCase {
		opts = append(opts, diffconfig.WithCaseSensitive(false))
	}
	if input.NoModify {
		opts = append(opts, diffconfig.WithDetectModifications(false))
	}
	if input.ArrayStrategy != "" {
		opts = append(opts, diffconfig.WithArrayStrategy(diffconfig.ArrayStrategy(input.ArrayStrategy)))
	}
	if input.MaxDepth > 0 {
		opts = append(opts, diffconfig.WithMaxDepth(input.MaxDepth))
	}
	dc, err := diffConfig(opts...)
	if err != nil {
		return errResult(err), diffJSONOutput{}, nil
	}

	oldDoc, err := input.Old.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("old: %w", err)), diffJSONOutput{}, nil
	}
	newDoc, err := input.New.resolve(ctx)
	if err != nil {
		return errResult(fmt.Errorf("new: %w", err)), diffJSONOutput{}, nil
	}
	oldValue, err := oldDoc.JSON(differrors.SideOld)
	if err != nil {
		return errResult(err), diffJSONOutput{}, nil
	}
	newValue, err := newDoc.JSON(differrors.SideNew)
	if err != nil {
		return errResult(err), diffJSONOutput{}, nil
	}

	result, err := jsondiff.DiffValues(oldValue, newValue, dc)
	if err != nil {
		return errResult(err), diffJSONOutput{}, nil
	}

	selected := makeSlice[jsondiff.Change](len(result.Changes))
	for _, c := range result.Changes {
		if matchPointer(input.Path, c.Path.Pointer()) {
			selected = append(selected, c)
		}
	}

	output := diffJSONOutput{
		Equal:        result.Equal,
		Approximate:  result.Approximate,
		TotalChanges: len(selected),
	}
	for _, c := range selected {
		switch c.Kind {
		case jsondiff.Added:
			output.Added++
		case jsondiff.Removed:
			output.Removed++
		case jsondiff.Changed:
			output.Changed++
		case jsondiff.TypeChanged:
			output.TypeChanged++
		}
	}

	switch strings.ToLower(input.GroupBy) {
	case "kind":
		output.Groups = groupAndSort(selected, func(c jsondiff.Change) string { return string(c.Kind) })
	case "root":
		output.Groups = groupAndSort(selected, rootKey)
	default:
		page := paginate(selected, input.Offset, input.Limit)
		output.Changes = makeSlice[jsonChange](len(page))
		for _, c := range page {
			output.Changes = append(output.Changes, toJSONChange(c))
		}
		output.Returned = len(output.Changes)
	}
	output.Summary = buildJSONSummary(output)

	return nil, output, nil
}

func toJSONChange(c jsondiff.Change) jsonChange {
	jc := jsonChange{
		Path:        c.Path.String(),
		Pointer:     c.Path.Pointer(),
		Kind:        string(c.Kind),
		Description: c.String(),
	}
	if c.OldValue != nil {
		jc.Old = c.OldValue.String()
	}
	if c.NewValue != nil {
		jc.New = c.NewValue.String()
	}
	return jc
}

// rootKey names the top-level member or element a change falls under; "$"
// for a change to the whole document.
func rootKey(c jsondiff.Change) string {
	if len(c.Path) == 0 {
		return "$"
	}
	return c.Path[:1].String()
}

func buildJSONSummary(output diffJSONOutput) string {
	if output.Equal {
		return "No differences."
	}
	if output.TotalChanges == 0 {
		return "No changes match the path filter."
	}
	var parts []string
	if output.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", output.Added))
	}
	if output.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", output.Removed))
	}
	if output.Changed > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", output.Changed))
	}
	if output.TypeChanged > 0 {
		parts = append(parts, fmt.Sprintf("%d type changed", output.TypeChanged))
	}
	summary := formatCount(output.TotalChanges, "change") + " found (" + strings.Join(parts, ", ") + ")."
	if output.Approximate {
		summary += " An array exceeded the fallback threshold; array alignment may not be minimal."
	}
	return summary
}
