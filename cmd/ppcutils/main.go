package main

import (
	"log"
	"os"

	"github.com/acubelab/ppcutils"
	"github.com/urfave/cli/v2"
)

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Aliases: []string{"v"},
	Usage:   "verbose output",
}

var timeoutFlag = &cli.DurationFlag{
	Name:  "timeout",
	Usage: "abort each external command after this long (0 waits forever)",
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ppcutils",
		Usage: "Download, unpack and summarize the compression benchmark datasets",
		Commands: []*cli.Command{
			decompressCommand(),
			downloadCommand(),
			collectCommand(),
			genQueriesCommand(),
		},
	}
}

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

// fatal makes the process exit with status 1. Errors raised while checking the
// inputs are reported as fatal; anything later happened mid-run.
func fatal(err error) error {
	if ppcutils.IsPreflight(err) {
		return cli.Exit("Fatal: "+err.Error(), 1)
	}
	return cli.Exit("Error: "+err.Error(), 1)
}
