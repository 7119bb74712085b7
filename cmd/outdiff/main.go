// Command outdiff compares program outputs as text or as JSON.
package main

import (
	"os"

	"github.com/erraggy/outdiff/cmd/outdiff/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], commands.Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}))
}
