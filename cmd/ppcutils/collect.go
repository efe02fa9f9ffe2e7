package main

import (
	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/bench"
	"github.com/acubelab/ppcutils/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func collectCommand() *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "Summarize benchmark results into compression and query tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML file listing datasets, approaches and query lengths",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "benchmark directory holding bench/, indicators/, queries/, source/ and data/",
			},
			&cli.StringSliceFlag{
				Name:  "dataset",
				Usage: "dataset name, in output order (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "approach",
				Usage: "approach name, in output order (repeatable)",
			},
			&cli.IntSliceFlag{
				Name:  "length",
				Usage: "query length, in output order; the first one is not summarized (repeatable)",
			},
			&cli.StringFlag{
				Name:  "compression-output",
				Usage: "compression summary file (empty to skip)",
			},
			&cli.StringFlag{
				Name:  "query-output",
				Usage: "query summary file (empty to skip)",
			},
			verboseFlag,
		},
		Action: runCollect,
	}
}

// collectConfig merges the optional configuration file with the flags; flags
// that were set win.
func collectConfig(c *cli.Context) (bench.Config, error) {
	config := bench.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if config, err = bench.LoadConfig(path); err != nil {
			return config, err
		}
	}

	if c.IsSet("root") {
		config.Root = c.String("root")
	}
	if c.IsSet("dataset") {
		config.Datasets = c.StringSlice("dataset")
	}
	if c.IsSet("approach") {
		config.Approaches = c.StringSlice("approach")
	}
	if c.IsSet("length") {
		config.QueryLengths = c.IntSlice("length")
	}
	if c.IsSet("compression-output") {
		config.CompressionOutput = c.String("compression-output")
	}
	if c.IsSet("query-output") {
		config.QueryOutput = c.String("query-output")
	}

	if len(config.Datasets) == 0 {
		return config, ppcutils.ErrInvalidArgument.WithMessage("no dataset given")
	}
	return config, nil
}

func runCollect(c *cli.Context) error {
	logger := logging.New(c.Bool("verbose"))
	defer logger.Sync()

	config, err := collectConfig(c)
	if err != nil {
		return fatal(err)
	}
	logger.Debug(
		"Collecting benchmarks",
		zap.String("root", config.Root),
		zap.Strings("datasets", config.Datasets),
		zap.Strings("approaches", config.Approaches),
		zap.Ints("lengths", config.QueryLengths))

	if err = bench.NewCollector(config.Root, logger).Collect(config); err != nil {
		return fatal(err)
	}
	logger.Info(
		"Summaries written",
		zap.String("compression", config.CompressionOutput),
		zap.String("query", config.QueryOutput))
	return nil
}
