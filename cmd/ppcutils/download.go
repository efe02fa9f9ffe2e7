package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/download"
	"github.com/acubelab/ppcutils/logging"
	"github.com/acubelab/ppcutils/runner"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const downloadDescription = `Download the dataset archives and their manifests.

  ppcutils download -s DEBUG -o ./tmp
      the three small debug datasets (random, Python and C)
  ppcutils download -s 25GiB -l Python,C -o ./tmp
  ppcutils download -s 25GiB -l Python -l C -o ./tmp
  ppcutils download -s 25GiB -o ./tmp Python C
      the 25GiB Python and C/C++ datasets
  ppcutils download -s 50GiB -o ./tmp
      the 50GiB dataset of the most popular GitHub repositories (no language)
  ppcutils download -s 200GiB -l all -o ./tmp
      every 200GiB dataset`

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:        "download",
		Usage:       "Download dataset archives",
		Description: downloadDescription,
		ArgsUsage:   "[LANGUAGE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Value:   download.SizeDebug,
				Usage:   "dataset size, one of " + strings.Join(download.Sizes, ", "),
			},
			&cli.StringSliceFlag{
				Name:    "languages",
				Aliases: []string{"l"},
				Usage: "comma-separated languages of the 25GiB and 200GiB datasets: " +
					strings.Join(download.Languages, ", ") + " or " + download.AllLanguages,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "output directory",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Value: download.DefaultBaseURL,
				Usage: "location the archives are published at",
			},
			&cli.StringFlag{
				Name:  "wget",
				Value: "wget",
				Usage: "download program",
			},
			timeoutFlag,
			verboseFlag,
		},
		Action: runDownload,
	}
}

// downloadLanguages merges the -l values, which may hold several languages
// separated by commas or spaces, with the languages given after the flags.
// Flag parsing stops at the first positional word, so a flag found among
// those words was never applied and is rejected.
func downloadLanguages(flagValues, trailing []string) ([]string, error) {
	var languages []string
	for _, value := range flagValues {
		languages = append(languages, strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	for _, word := range trailing {
		if strings.HasPrefix(word, "-") {
			return nil, ppcutils.ErrInvalidArgument.WithMessage(
				fmt.Sprintf(
					"flag %q given after a language; put flags first or use -l Python,C", word))
		}
		languages = append(languages, word)
	}
	return languages, nil
}

func runDownload(c *cli.Context) error {
	logger := logging.New(c.Bool("verbose"))
	defer logger.Sync()

	languages, err := downloadLanguages(c.StringSlice("languages"), c.Args().Slice())
	if err != nil {
		return fatal(err)
	}
	config := download.Config{
		Size:      c.String("size"),
		Languages: languages,
		OutputDir: c.String("output"),
		BaseURL:   c.String("base-url"),
		Wget:      c.String("wget"),
	}

	plan, err := download.NewPlan(config.BaseURL, config.Size, config.Languages)
	if err != nil {
		return fatal(err)
	}

	outputDir, err := download.PrepareOutputDir(config.OutputDir)
	if err != nil {
		return fatal(err)
	}
	logger.Info("Output directory", zap.String("path", outputDir))
	logger.Info("Downloading", zap.String("from", config.BaseURL), zap.Int("files", len(plan.Requests)))

	execRunner := runner.NewExecRunner(logger)
	execRunner.Timeout = c.Duration("timeout")
	download.NewDownloader(execRunner, config.Wget, logger).Run(c.Context, plan, outputDir)
	return nil
}
