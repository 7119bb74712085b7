package commands

import (
	"errors"
	"os"

	"github.com/apex/log"
	"github.com/erraggy/outdiff"
	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/internal/clilog"
	"github.com/erraggy/outdiff/internal/cliutil"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one invocation.
type app struct {
	streams Streams
	color   string
	logger  *log.Logger
}

// diffLogger returns the engine logger for a command.
func (a *app) diffLogger(command string) diffconfig.Logger {
	return clilog.NewLogger(a.logger.WithField("command", command))
}

// NewRootCmd builds the outdiff command tree writing to s.
func NewRootCmd(s Streams) *cobra.Command {
	a := &app{streams: s}

	root := &cobra.Command{
		Use:   "outdiff",
		Short: "Compare program outputs as text or as JSON",
		Long: `outdiff compares an expected output with an actual one.

Text is compared line by line; JSON is compared structurally, so object key
order and number formatting do not count as differences.

Exit status is 0 when the inputs match, 1 when they differ and 2 on error.
Set OUTDIFF_LOG=debug to see what the diff engines are doing.`,
		Version:       outdiff.Version(),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(*cobra.Command, []string) {
			a.logger = clilog.New(s.Err, clilog.ParseLevel(os.Getenv(clilog.EnvVar)))
		},
	}
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.Err)
	root.PersistentFlags().StringVar(&a.color, "color", "auto", "colorize text output: auto, always, or never")

	root.AddCommand(
		newTextCmd(a),
		newJSONCmd(a),
		newMCPCmd(a),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit status.
func Execute(args []string, s Streams) int {
	root := NewRootCmd(s)
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return ExitSame
	case errors.Is(err, ErrDifferent):
		return ExitDifferent
	default:
		cliutil.Writef(s.Err, "Error: %v\n", err)
		return ExitError
	}
}
