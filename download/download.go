package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/logging"
	"github.com/acubelab/ppcutils/runner"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Config holds the options of a download run.
type Config struct {
	Size      string
	Languages []string
	OutputDir string
	BaseURL   string
	// Wget is the download program. It is invoked as `WGET --no-check-certificate URL`.
	Wget string
}

// PrepareOutputDir creates the output directory if needed and checks that it
// is writable. It returns the absolute path of the directory.
func PrepareOutputDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	outputDir, err := filepath.Abs(dir)
	if err != nil {
		return dir, ppcutils.ErrOutputNotCreatable.Wrap(err)
	}
	if err = os.MkdirAll(outputDir, 0o755); err != nil {
		return outputDir, ppcutils.ErrOutputNotCreatable.WithMessage(outputDir).Wrap(err)
	}

	probe, err := os.CreateTemp(outputDir, ".ppcutils-probe-*")
	if err != nil {
		return outputDir, ppcutils.ErrOutputNotWritable.WithMessage(outputDir).Wrap(err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return outputDir, nil
}

// Tally counts the outcome of the requests of a plan.
type Tally struct {
	Succeeded int
	Failed    int
	// ManifestsOnly is true when every manifest was fetched but no archive was.
	ManifestsOnly bool
	Errors        *multierror.Error
}

// Err returns the combined error of all failed requests, or nil.
func (t Tally) Err() error {
	return t.Errors.ErrorOrNil()
}

// Summary gives the end-of-run message shown to the operator.
func (t Tally) Summary() string {
	if t.Failed == 0 {
		return "All archives successfully downloaded!"
	}
	message := fmt.Sprintf("%d download(s) failed! Check error messages.", t.Failed)
	if t.ManifestsOnly {
		message = "Just the lists are successfully downloaded (some archives might not be available)! " + message
	}
	return message
}

// Downloader fetches the requests of a plan one after the other.
type Downloader struct {
	Runner runner.Runner
	Wget   string
	// Status receives one [OK] or [ERROR] line per request.
	Status io.Writer
	Logger *zap.Logger
}

// NewDownloader creates a downloader printing status lines to stdout.
func NewDownloader(r runner.Runner, wget string, logger *zap.Logger) *Downloader {
	if wget == "" {
		wget = "wget"
	}
	return &Downloader{
		Runner: r,
		Wget:   wget,
		Status: color.Output,
		Logger: logging.OrNop(logger),
	}
}

// Command builds the command line fetching one request into outputDir.
func (d *Downloader) Command(request Request, outputDir string) runner.Command {
	return runner.Command{
		Program: d.Wget,
		Args:    []string{"--no-check-certificate", request.URL},
		Dir:     outputDir,
	}
}

// Run fetches every request of plan into outputDir. A failed request is
// counted and the next one is attempted anyway.
func (d *Downloader) Run(ctx context.Context, plan Plan, outputDir string) Tally {
	logger := logging.OrNop(d.Logger)
	status := d.Status
	if status == nil {
		status = io.Discard
	}
	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed)

	tally := Tally{}
	archivesOK, manifestsOK, manifests := 0, 0, 0
	for _, request := range plan.Requests {
		if request.Manifest {
			manifests++
		}
		logger.Debug("Downloading", zap.String("url", request.URL))

		result := d.Runner.Run(ctx, d.Command(request, outputDir))
		if !result.OK {
			errColor.Fprintf(status, "[ERROR] (some archives might not be available) %s\n", request.URL)
			tally.Failed++
			err := result.Err
			if err == nil {
				err = ppcutils.ErrCommandFailed.WithMessage(request.URL)
			}
			tally.Errors = multierror.Append(tally.Errors, err)
			continue
		}

		okColor.Fprintf(status, "[OK] %s\n", request.URL)
		tally.Succeeded++
		if request.Manifest {
			manifestsOK++
		} else {
			archivesOK++
		}
	}

	tally.ManifestsOnly = manifests > 0 && manifestsOK == manifests && archivesOK == 0 &&
		tally.Failed > 0
	if tally.Failed == 0 {
		logger.Info(tally.Summary())
	} else {
		logger.Warn(tally.Summary())
	}
	return tally
}
