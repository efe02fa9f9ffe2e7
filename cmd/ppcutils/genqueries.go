package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/logging"
	"github.com/acubelab/ppcutils/querygen"
	"github.com/urfave/cli/v2"
)

func genQueriesCommand() *cli.Command {
	return &cli.Command{
		Name:      "gen-queries",
		Usage:     "Draw random substring queries over a corpus file",
		ArgsUsage: "INPUT_FILE OUTPUT_PATH QUERY_LENGTH NUM_QUERIES",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed (default: current time)",
			},
			verboseFlag,
		},
		Action: runGenQueries,
	}
}

func parseCount(name, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, ppcutils.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("%s must be an integer, got %q", name, value))
	}
	return n, nil
}

func runGenQueries(c *cli.Context) error {
	logger := logging.New(c.Bool("verbose"))
	defer logger.Sync()

	if c.NArg() != 4 {
		return fatal(ppcutils.ErrInvalidArgument.WithMessage(
			"expected INPUT_FILE OUTPUT_PATH QUERY_LENGTH NUM_QUERIES"))
	}
	args := c.Args()

	queryLength, err := parseCount("QUERY_LENGTH", args.Get(2))
	if err != nil {
		return fatal(err)
	}
	numQueries, err := parseCount("NUM_QUERIES", args.Get(3))
	if err != nil {
		return fatal(err)
	}

	seed := time.Now().UnixNano()
	if c.IsSet("seed") {
		seed = c.Int64("seed")
	}

	generator := querygen.NewGenerator(seed, logger)
	if err = generator.Generate(args.Get(0), args.Get(1), queryLength, int(numQueries)); err != nil {
		return fatal(err)
	}
	return nil
}
