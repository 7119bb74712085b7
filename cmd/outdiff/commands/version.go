package commands

import (
	"github.com/erraggy/outdiff"
	"github.com/erraggy/outdiff/internal/cliutil"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build details",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			cliutil.Writeln(a.streams.Out, outdiff.BuildInfo())
		},
	}
}
