package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/erraggy/outdiff/internal/cliutil"
	"github.com/erraggy/outdiff/textdiff"
	"github.com/spf13/cobra"
)

type textFlags struct {
	diffFlags
	all bool
}

func newTextCmd(a *app) *cobra.Command {
	flags := &textFlags{}
	cmd := &cobra.Command{
		Use:   "text [flags] <old> <new>",
		Short: "Compare two texts line by line",
		Long: `Compare two texts line by line.

Replaced lines are shown as a pair with the changed characters highlighted.
Use - for one of the inputs to read it from stdin.`,
		Example: `  outdiff text expected.txt actual.txt
  ./prog | outdiff text --ignore-whitespace expected.txt -
  outdiff text --format json old.log new.log | jq '.stats'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(cmd, a, flags, args[0], args[1])
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "also print unchanged lines")
	return cmd
}

func runText(cmd *cobra.Command, a *app, flags *textFlags, oldPath, newPath string) error {
	if err := ValidateOutputFormat(flags.format, FormatText, FormatJSON, FormatYAML); err != nil {
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
	cfg, err := newConfig(opts, a.diffLogger("text"))
	if err != nil {
		return err
	}

	oldText, newText, err := readInputs(a.streams.In, oldPath, newPath)
	if err != nil {
		return err
	}
	result, err := textdiff.Diff(oldText, newText, cfg)
	if err != nil {
		return err
	}

	if flags.format == FormatText {
		p := cliutil.NewPalette(useColor)
		cliutil.Writeln(a.streams.Out, p.Removed.Sprint("--- "+describeInput(oldPath, oldText)))
		cliutil.Writeln(a.streams.Out, p.Added.Sprint("+++ "+describeInput(newPath, newText)))
		renderText(a.streams.Out, result, p, flags.all)
	} else if err := OutputStructured(a.streams.Out, result, flags.format); err != nil {
		return err
	}

	if !result.Equal {
		return ErrDifferent
	}
	return nil
}

// renderText prints one line per edit:
//
//	- 3 | removed line
//	+ 3 | added line
//	  4 | unchanged line (only with all)
//
// A modification prints its old and new line with the differing runs
// highlighted.
func renderText(w io.Writer, r *textdiff.Result, p cliutil.Palette, all bool) {
	width := len(strconv.Itoa(max(len(r.OldLines()), len(r.NewLines()))))
	line := func(sign string, n int, text string) string {
		return fmt.Sprintf("%s %*d | %s", sign, width, n, text)
	}

	for _, e := range r.Edits {
		switch e.Op {
		case textdiff.OpEqual:
			if all {
				cliutil.Writeln(w, p.Muted.Sprint(line(" ", e.Old.Number, e.Old.Text)))
			}
		case textdiff.OpDelete:
			cliutil.Writeln(w, p.Removed.Sprint(line("-", e.Old.Number, e.Old.Text)))
		case textdiff.OpInsert:
			cliutil.Writeln(w, p.Added.Sprint(line("+", e.New.Number, e.New.Text)))
		case textdiff.OpModify:
			o, n := p.Highlight(e.Old.Text, e.New.Text)
			cliutil.Writeln(w, p.Removed.Sprint(line("-", e.Old.Number, ""))+o)
			cliutil.Writeln(w, p.Added.Sprint(line("+", e.New.Number, ""))+n)
		}
	}

	if r.Equal {
		cliutil.Writeln(w, p.Muted.Sprint("No differences."))
		return
	}
	summary := fmt.Sprintf("%d added, %d removed, %d modified, %d unchanged",
		r.Stats.Added, r.Stats.Removed, r.Stats.Modified, r.Stats.Unchanged)
	if r.Approximate {
		summary += " (approximate alignment)"
	}
	cliutil.Writeln(w, p.Header.Sprint(summary))
}
