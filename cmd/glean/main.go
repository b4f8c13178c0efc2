// Command glean reviews reading highlights in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the command line surface.
type CLI struct {
	Config string `help:"Config file path (defaults to the XDG config dir)" type:"path" short:"c"`

	Review ReviewCmd `cmd:"" default:"1" help:"Review highlights interactively"`
	Sync   SyncCmd   `cmd:"" help:"Pull new highlights from Readwise"`
	Stats  StatsCmd  `cmd:"" help:"Print highlight counts per status"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("glean"),
		kong.Description("Triage your reading highlights: integrate, snooze or archive."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
