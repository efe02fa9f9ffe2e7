package compression

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/acubelab/ppcutils"
	"github.com/klauspost/compress/zstd"
)

// DecoderOptions bounds the resources the zstd decoder may use.
type DecoderOptions struct {
	// MaxWindow is the largest back-reference window accepted, in bytes.
	MaxWindow uint64
	// MaxMemory is the largest amount of memory the decoder may allocate.
	MaxMemory uint64
}

// DefaultDecoderOptions matches the zstd command-line tool: 128 MiB of window.
var DefaultDecoderOptions = DecoderOptions{
	MaxWindow: 1 << 27,
	MaxMemory: 1 << 27,
}

// DatasetDecoderOptions matches `zstd --long=30 -M1024MB`.
var DatasetDecoderOptions = DecoderOptions{
	MaxWindow: 1 << 30,
	MaxMemory: 1024 << 20,
}

func (o DecoderOptions) newReader(input io.Reader) (*zstd.Decoder, error) {
	return zstd.NewReader(
		input,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxWindow(o.MaxWindow),
		zstd.WithDecoderMaxMemory(o.MaxMemory),
	)
}

// CompressStream compresses input with zstd at the highest compression level.
//
// The returned int64 gives the number of uncompressed bytes consumed from input.
// If an error occurred, the value is undefined and should not be used.
func CompressStream(input io.Reader, output io.Writer) (int64, error) {
	zWriter, err := zstd.NewWriter(output, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(zWriter, input)
	if err != nil {
		zWriter.Close()
		return n, err
	}
	return n, zWriter.Close()
}

// DecompressStream takes a zstd stream and writes the decompressed bytes to
// output, returning how many were written.
func DecompressStream(input io.Reader, output io.Writer, options DecoderOptions) (int64, error) {
	zReader, err := options.newReader(input)
	if err != nil {
		return 0, err
	}
	defer zReader.Close()
	return io.Copy(output, zReader)
}

// ExtractTarZstd decompresses a zstd-compressed tar archive and unpacks it into
// destDir. It returns the number of archive entries written.
//
// Entries whose path would land outside destDir are rejected with
// [ppcutils.ErrUnsafePath]; nothing after such an entry is extracted.
func ExtractTarZstd(input io.Reader, destDir string, options DecoderOptions) (int, error) {
	zReader, err := options.newReader(input)
	if err != nil {
		return 0, err
	}
	defer zReader.Close()
	return ExtractTar(zReader, destDir)
}

// ExtractTar unpacks an uncompressed tar stream into destDir. Regular files,
// directories and symbolic links are supported; other entry types are skipped.
func ExtractTar(input io.Reader, destDir string) (int, error) {
	reader := tar.NewReader(input)
	written := 0

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return written, nil
		} else if err != nil {
			return written, err
		}

		target, err := entryPath(destDir, header.Name)
		if err != nil {
			return written, err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err = os.MkdirAll(target, 0o755); err != nil {
				return written, err
			}
		case tar.TypeReg:
			if err = writeEntry(reader, target, header.FileInfo().Mode().Perm()); err != nil {
				return written, err
			}
		case tar.TypeSymlink:
			if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return written, err
			}
			if err = os.Symlink(header.Linkname, target); err != nil {
				return written, err
			}
		default:
			continue
		}
		written++
	}
}

func entryPath(destDir, name string) (string, error) {
	root := filepath.Clean(destDir)
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", ppcutils.ErrUnsafePath.WithMessage(fmt.Sprintf("%q", name))
	}
	return target, nil
}

func writeEntry(source io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0o644
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err = io.Copy(outFile, source); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
