package archive

import (
	"context"
	"os"
	"runtime"

	"github.com/acubelab/ppcutils"
	"github.com/acubelab/ppcutils/runner"
	"github.com/acubelab/ppcutils/utilities/compression"
)

// Extractor unpacks a single archive volume into a directory.
type Extractor interface {
	Extract(ctx context.Context, volumePath, destDir string) error
}

// DefaultTarProgram returns the GNU tar executable for the host: `gtar` on macOS
// (where `tar` is bsdtar and lacks `-I`), `tar` elsewhere.
func DefaultTarProgram() string {
	if runtime.GOOS == "darwin" {
		return "gtar"
	}
	return "tar"
}

// CommandExtractor extracts volumes by running `tar -xf VOLUME -I COMPRESSOR`
// inside the destination directory.
type CommandExtractor struct {
	Runner runner.Runner
	// Tar is the tar executable. Empty means [DefaultTarProgram].
	Tar string
	// Compressor is the decompression pipe passed to tar's -I option.
	Compressor string
}

// Command builds the command line used to extract one volume.
func (e *CommandExtractor) Command(volumePath, destDir string) runner.Command {
	tar := e.Tar
	if tar == "" {
		tar = DefaultTarProgram()
	}
	return runner.Command{
		Program: tar,
		Args:    []string{"-xf", volumePath, "-I", e.Compressor},
		Dir:     destDir,
	}
}

func (e *CommandExtractor) Extract(ctx context.Context, volumePath, destDir string) error {
	cmd := e.Command(volumePath, destDir)
	result := e.Runner.Run(ctx, cmd)
	if result.OK {
		return nil
	}
	if result.Err != nil {
		return result.Err
	}
	return ppcutils.ErrCommandFailed.WithMessage(cmd.String())
}

// NativeExtractor extracts zstd-compressed tar volumes in-process.
type NativeExtractor struct {
	Options compression.DecoderOptions
}

func (e *NativeExtractor) Extract(ctx context.Context, volumePath, destDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	volume, err := os.Open(volumePath)
	if err != nil {
		return err
	}
	defer volume.Close()

	_, err = compression.ExtractTarZstd(volume, destDir, e.Options)
	return err
}
