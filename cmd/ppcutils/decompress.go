package main

import (
	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/archive"
	"github.com/acubelab/ppcutils/logging"
	"github.com/acubelab/ppcutils/runner"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const decompressDescription = `Decompress the archives of a dataset, possibly split into several volumes.

Unpacking a dataset can create directories holding so many files that shell
globbing stops working in them. To avoid flooding a directory that already
holds other files, the output directory must be empty unless --force is given.

Volumes are extracted one at a time: tar processes writing into the same
directory concurrently are subject to race conditions.`

func decompressCommand() *cli.Command {
	return &cli.Command{
		Name:        "decompress",
		Usage:       "Unpack a (multi-volume) dataset archive",
		Description: decompressDescription,
		ArgsUsage:   "MAIN_ARCHIVE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "output directory, must be new or empty",
			},
			&cli.StringFlag{
				Name:  "c",
				Value: archive.DefaultCompressor,
				Usage: "compressor used to create the archive",
			},
			&cli.BoolFlag{
				Name:  "dataset",
				Usage: "use the dataset decompression options (" + archive.DatasetCompressor + ")",
			},
			&cli.BoolFlag{
				Name:  "native",
				Usage: "decompress zstd archives in-process instead of running tar",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "extract into the output directory even if it is not empty",
			},
			&cli.StringFlag{
				Name:  "tar",
				Usage: "tar executable (default: gtar on macOS, tar elsewhere)",
			},
			timeoutFlag,
			verboseFlag,
		},
		Action: runDecompress,
	}
}

func runDecompress(c *cli.Context) error {
	logger := logging.New(c.Bool("verbose"))
	defer logger.Sync()

	if c.NArg() != 1 {
		return fatal(ppcutils.ErrInvalidArgument.WithMessage("exactly one main archive must be given"))
	}

	config, err := archive.Config{
		MainArchive: c.Args().First(),
		OutputDir:   c.String("output"),
		Compressor:  c.String("c"),
		Dataset:     c.Bool("dataset"),
		Native:      c.Bool("native"),
		Force:       c.Bool("force"),
		Tar:         c.String("tar"),
	}.Validate()
	if err != nil {
		return fatal(err)
	}
	logger.Info("Output directory", zap.String("path", config.OutputDir))

	execRunner := runner.NewExecRunner(logger)
	execRunner.Timeout = c.Duration("timeout")

	tally, err := archive.NewDecompressor(config, execRunner, logger).Run(c.Context)
	if err != nil {
		return fatal(err)
	}
	logger.Debug(
		"Decompression finished",
		zap.Int("succeeded", tally.Succeeded),
		zap.Int("failed", tally.Failed))
	return nil
}
