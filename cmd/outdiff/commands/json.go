package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/differrors"
	"github.com/erraggy/outdiff/internal/cliutil"
	"github.com/erraggy/outdiff/jsondiff"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

type jsonFlags struct {
	diffFlags
	array    string
	maxDepth int
	selector string
}

func newJSONCmd(a *app) *cobra.Command {
	flags := &jsonFlags{}
	cmd := &cobra.Command{
		Use:   "json [flags] <old> <new>",
		Short: "Compare two JSON documents structurally",
		Long: `Compare two JSON documents structurally.

Object key order and number formatting (1 vs 1.0) are not differences. Each
change is reported with its path:

  + $.y: 2                          added
  - $.tags[1]: "b"                  removed
  ~ $.count: 1 -> 2                 changed
  ! $.version: 1 (number) -> "1" (string)   type changed

--select takes a gjson path (https://github.com/tidwall/gjson) and compares
only that part of each document. The delta format renders the documents
with gojsondiff's annotated view; it needs both inputs to be JSON objects
and ignores the comparison flags.`,
		Example: `  outdiff json expected.json actual.json
  outdiff json --array lcs --select items old.json new.json
  curl -s localhost:8080/api | outdiff json --format yaml golden.json -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, a, flags, args[0], args[1])
		},
	}
	flags.register(cmd)
	cmd.Flags().Lookup("format").Usage = "output format: text, json, yaml, or delta"
	cmd.Flags().StringVar(&flags.array, "array", string(diffconfig.ArrayPositional), "array comparison: positional or lcs")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", diffconfig.DefaultMaxDepth, "maximum nesting depth (0 for unbounded)")
	cmd.Flags().StringVarP(&flags.selector, "select", "s", "", "gjson path selecting the part of each document to compare")
	return cmd
}

func runJSON(cmd *cobra.Command, a *app, flags *jsonFlags, oldPath, newPath string) error {
	if err := ValidateOutputFormat(flags.format, FormatText, FormatJSON, FormatYAML, FormatDelta); err != nil {
		return err
	}
	useColor, err := colorEnabled(a.color, a.streams.Out)
	if err != nil {
		return err
	}
	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("array") {
		opts = append(opts, diffconfig.WithArrayStrategy(diffconfig.ArrayStrategy(flags.array)))
	}
	if cmd.Flags().Changed("max-depth") {
		opts = append(opts, diffconfig.WithMaxDepth(flags.maxDepth))
	}
	cfg, err := newConfig(opts, a.diffLogger("json"))
	if err != nil {
		return err
	}

	oldData, newData, err := readInputs(a.streams.In, oldPath, newPath)
	if err != nil {
		return err
	}
	if oldData, err = selectJSON(oldData, flags.selector, differrors.SideOld); err != nil {
		return err
	}
	if newData, err = selectJSON(newData, flags.selector, differrors.SideNew); err != nil {
		return err
	}

	result, err := jsondiff.Diff(oldData, newData, cfg)
	if err != nil {
		return err
	}

	switch flags.format {
	case FormatText:
		p := cliutil.NewPalette(useColor)
		cliutil.Writeln(a.streams.Out, p.Removed.Sprint("--- "+describeInput(oldPath, oldData)))
		cliutil.Writeln(a.streams.Out, p.Added.Sprint("+++ "+describeInput(newPath, newData)))
		renderChanges(a.streams.Out, result, p)
	case FormatDelta:
		if err := renderDelta(a.streams.Out, oldData, newData, useColor); err != nil {
			return err
		}
	default:
		if err := OutputStructured(a.streams.Out, result, flags.format); err != nil {
			return err
		}
	}

	if !result.Equal {
		return ErrDifferent
	}
	return nil
}

// selectJSON narrows data to the gjson path selector. A selector that matches
// nothing yields an empty (absent) document. Malformed input is reported by
// the structural parser so that the error carries a line and column.
func selectJSON(data, selector string, side differrors.Side) (string, error) {
	if selector == "" {
		return data, nil
	}
	if !gjson.Valid(data) {
		if _, err := jsondiff.ParseDocument(data, side, 0); err != nil {
			return "", err
		}
	}
	r := gjson.Get(data, selector)
	if !r.Exists() {
		return "", nil
	}
	return r.Raw, nil
}

func renderChanges(w io.Writer, r *jsondiff.Result, p cliutil.Palette) {
	for _, c := range r.Changes {
		switch c.Kind {
		case jsondiff.Added:
			cliutil.Writeln(w, p.Added.Sprint(c.String()))
		case jsondiff.Removed:
			cliutil.Writeln(w, p.Removed.Sprint(c.String()))
		default:
			cliutil.Writeln(w, p.Changed.Sprint(c.String()))
		}
	}

	if r.Equal {
		cliutil.Writeln(w, p.Muted.Sprint("No differences."))
		return
	}
	summary := fmt.Sprintf("%d added, %d removed, %d changed, %d type changed",
		r.Stats.Added, r.Stats.Removed, r.Stats.Changed, r.Stats.TypeChanged)
	if r.Approximate {
		summary += " (approximate array alignment)"
	}
	cliutil.Writeln(w, p.Header.Sprint(summary))
}

// renderDelta prints gojsondiff's annotated view of the new document.
func renderDelta(w io.Writer, oldData, newData string, useColor bool) error {
	var left map[string]any
	if err := json.Unmarshal([]byte(oldData), &left); err != nil {
		return fmt.Errorf("delta format needs both documents to be JSON objects: %w", err)
	}
	delta, err := gojsondiff.New().Compare([]byte(oldData), []byte(newData))
	if err != nil {
		return fmt.Errorf("delta format needs both documents to be JSON objects: %w", err)
	}
	if !delta.Modified() {
		cliutil.Writeln(w, "No differences.")
		return nil
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       useColor,
	})
	out, err := f.Format(delta)
	if err != nil {
		return fmt.Errorf("formatting delta: %w", err)
	}
	cliutil.Writeln(w, strings.TrimSuffix(out, "\n"))
	return nil
}
