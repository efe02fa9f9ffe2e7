package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/logging"
	"github.com/acubelab/ppcutils/runner"
	"github.com/acubelab/ppcutils/utilities/compression"
	"github.com/docker/go-units"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// DefaultCompressor is the decompression pipe used when none is given.
const DefaultCompressor = "zstd"

// DatasetCompressor is the pipe used for dataset archives, which are compressed
// with long-distance matching.
const DatasetCompressor = "zstd --long=30 --adapt -M1024MB"

// Config holds the options of a decompression run.
type Config struct {
	// MainArchive is the absolute path of the (first) archive file.
	MainArchive string
	// OutputDir is created if missing and must be empty unless Force is set.
	OutputDir string
	// Compressor is the pipe given to tar's -I option. Empty means
	// [DefaultCompressor].
	Compressor string
	// Dataset selects [DatasetCompressor]. It cannot be combined with a custom
	// Compressor.
	Dataset bool
	// Native extracts in-process instead of running tar.
	Native bool
	Force  bool
	// Tar overrides the tar executable.
	Tar string
}

// EffectiveCompressor returns the pipe that will actually be used.
func (c Config) EffectiveCompressor() string {
	if c.Dataset {
		return DatasetCompressor
	}
	if c.Compressor == "" {
		return DefaultCompressor
	}
	return c.Compressor
}

// DecoderOptions returns the in-process decoder limits matching the compressor
// options.
func (c Config) DecoderOptions() compression.DecoderOptions {
	if c.Dataset {
		return compression.DatasetDecoderOptions
	}
	return compression.DefaultDecoderOptions
}

// Validate performs every pre-flight check, in order, and returns a copy of the
// configuration with OutputDir made absolute. The output directory is created
// if it doesn't exist.
//
// Any error returned here is fatal: no extraction must be attempted.
func (c Config) Validate() (Config, error) {
	if !filepath.IsAbs(c.MainArchive) {
		return c, ppcutils.ErrNotAbsolute.WithMessage(
			fmt.Sprintf("input file must be an absolute path: %s", c.MainArchive))
	}
	if _, err := os.Stat(c.MainArchive); err != nil {
		return c, ppcutils.ErrMissingInput.WithMessage(c.MainArchive)
	}
	if !canRead(c.MainArchive) {
		return c, ppcutils.ErrUnreadableInput.WithMessage(c.MainArchive)
	}

	custom := c.Compressor != "" && c.Compressor != DefaultCompressor
	if c.Dataset && custom {
		return c, ppcutils.ErrIncompatibleOptions.WithMessage("option --dataset incompatible with -c")
	}
	if c.Native && custom {
		return c, ppcutils.ErrIncompatibleOptions.WithMessage("option --native incompatible with -c")
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	outputDir, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return c, ppcutils.ErrOutputNotCreatable.Wrap(err)
	}
	c.OutputDir = outputDir

	if err = os.MkdirAll(outputDir, 0o755); err != nil {
		return c, ppcutils.ErrOutputNotCreatable.WithMessage(outputDir).Wrap(err)
	}
	if !canWrite(outputDir) {
		return c, ppcutils.ErrOutputNotWritable.WithMessage(outputDir)
	}

	empty, err := isEmptyDir(outputDir)
	if err != nil {
		return c, ppcutils.ErrOutputNotWritable.WithMessage(outputDir).Wrap(err)
	}
	if !empty && !c.Force {
		return c, ppcutils.ErrOutputNotEmpty.WithMessage(outputDir)
	}
	return c, nil
}

func isEmptyDir(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer dir.Close()

	_, err = dir.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// Tally counts the outcome of every extraction attempted by a run.
type Tally struct {
	Volumes   []string
	Succeeded int
	Failed    int
	Errors    *multierror.Error
}

// Err returns the combined error of all failed volumes, or nil.
func (t Tally) Err() error {
	return t.Errors.ErrorOrNil()
}

// Summary gives the end-of-run message shown to the operator.
func (t Tally) Summary() string {
	if t.Failed == 0 {
		return "All archives successfully extracted!"
	}
	return fmt.Sprintf("%d extraction(s) failed! Check error messages.", t.Failed)
}

// Decompressor extracts all volumes of an archive, one after the other.
type Decompressor struct {
	Config    Config
	Extractor Extractor
	Logger    *zap.Logger
}

// NewDecompressor picks the extractor for a validated configuration. Commands
// are sent to r unless the configuration asks for native extraction.
func NewDecompressor(config Config, r runner.Runner, logger *zap.Logger) *Decompressor {
	var extractor Extractor
	if config.Native {
		extractor = &NativeExtractor{Options: config.DecoderOptions()}
	} else {
		extractor = &CommandExtractor{
			Runner:     r,
			Tar:        config.Tar,
			Compressor: config.EffectiveCompressor(),
		}
	}
	return &Decompressor{
		Config:    config,
		Extractor: extractor,
		Logger:    logging.OrNop(logger),
	}
}

// Run extracts every volume of the archive into the output directory.
//
// Volumes are extracted strictly sequentially: concurrent tar processes writing
// into the same directory race with each other. A failed volume is counted and
// the next one is attempted anyway. The returned error is non-nil only if the
// volume list itself could not be built.
func (d *Decompressor) Run(ctx context.Context) (Tally, error) {
	logger := logging.OrNop(d.Logger)
	tally := Tally{}

	set, err := ListVolumes(d.Config.MainArchive)
	if err != nil {
		return tally, err
	}
	if IsMultiVolume(set.Names[0]) {
		logger.Info("This appears to be a multifile archive")
	}
	tally.Volumes = set.Names
	logger.Debug("Decompressing archives", zap.Int("count", len(set.Names)))

	for _, path := range set.Paths() {
		if info, statErr := os.Stat(path); statErr == nil {
			logger.Debug(
				"Extracting volume",
				zap.String("volume", path),
				zap.String("size", units.HumanSize(float64(info.Size()))))
		}

		if err = d.Extractor.Extract(ctx, path, d.Config.OutputDir); err != nil {
			logger.Error("Extraction failed", zap.String("volume", path), zap.Error(err))
			tally.Failed++
			tally.Errors = multierror.Append(tally.Errors, err)
			continue
		}
		tally.Succeeded++
	}

	if tally.Failed == 0 {
		logger.Info(tally.Summary())
	} else {
		logger.Warn(tally.Summary())
	}
	return tally, nil
}
