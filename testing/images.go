package testing

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/acubelab/ppcutils/utilities/compression"
	"github.com/stretchr/testify/require"
)

// WriteFiles creates every file in `files` under `root`, creating intermediate
// directories as needed. Keys are slash-separated paths relative to `root`.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	for name, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
}

// BuildTarZstd returns a zstd-compressed tar archive containing `files`. Entries
// are written in lexicographic order so the output is deterministic.
func BuildTarZstd(t *testing.T, files map[string]string) []byte {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	tarBuffer := bytes.Buffer{}
	writer := tar.NewWriter(&tarBuffer)
	for _, name := range names {
		contents := files[name]
		err := writer.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(contents)),
			Typeflag: tar.TypeReg,
		})
		require.NoError(t, err)
		_, err = writer.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	compressed := bytes.Buffer{}
	_, err := compression.CompressStream(&tarBuffer, &compressed)
	require.NoError(t, err)
	require.Greater(t, compressed.Len(), 0, "compressed archive is empty")
	return compressed.Bytes()
}
