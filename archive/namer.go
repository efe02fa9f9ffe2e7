// Package archive decompresses the (possibly multi-volume) tar archives that
// hold the benchmark datasets.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acubelab/ppcutils"
)

// VolumeDigits is the width of the zero-padded index prefixing the name of
// every volume of a multi-volume archive.
const VolumeDigits = 9

// maxVolumeIndex is the largest index representable in VolumeDigits digits.
const maxVolumeIndex = 999_999_999

// VolumeSet is the ordered list of files making up one logical archive.
type VolumeSet struct {
	// Dir is the directory containing all volumes.
	Dir string
	// Names holds the volume file names, main volume first.
	Names []string
}

// Paths returns the full path of every volume, in order.
func (s VolumeSet) Paths() []string {
	paths := make([]string, len(s.Names))
	for i, name := range s.Names {
		paths[i] = filepath.Join(s.Dir, name)
	}
	return paths
}

// mainVolumeIndex parses the index prefixing the name of a main archive. Only
// index 0 (volumes follow from 1) and index 1 (the main file is itself volume 1)
// start a multi-volume archive; ok is false for any other name.
func mainVolumeIndex(mainName string) (index int, ok bool) {
	if len(mainName) < VolumeDigits {
		return 0, false
	}
	prefix := mainName[:VolumeDigits]
	switch prefix {
	case strings.Repeat("0", VolumeDigits):
		return 0, true
	case VolumeName(1, ""):
		return 1, true
	}
	return 0, false
}

// IsMultiVolume reports whether the file name of a main archive marks it as the
// first volume of a multi-volume archive.
func IsMultiVolume(mainName string) bool {
	_, ok := mainVolumeIndex(mainName)
	return ok
}

// VolumeName returns the name of the volume with the given index.
func VolumeName(index int, suffix string) string {
	return fmt.Sprintf("%0*d%s", VolumeDigits, index, suffix)
}

// ListVolumes returns every volume belonging to the archive whose main file is
// mainPath.
//
// A main file named 000000000<suffix> or 000000001<suffix> starts a multi-volume
// archive: the following indices are probed in the same directory and the list
// ends at the first missing one. Any other main file is an archive by itself.
func ListVolumes(mainPath string) (VolumeSet, error) {
	set := VolumeSet{
		Dir:   filepath.Dir(mainPath),
		Names: []string{filepath.Base(mainPath)},
	}
	main := set.Names[0]
	mainIndex, ok := mainVolumeIndex(main)
	if !ok {
		return set, nil
	}

	suffix := main[VolumeDigits:]
	for i := mainIndex + 1; ; i++ {
		if i > maxVolumeIndex {
			return set, ppcutils.ErrTooManyVolumes.WithMessage(
				fmt.Sprintf("more than %d volumes for %q", maxVolumeIndex, mainPath))
		}
		name := VolumeName(i, suffix)
		if _, err := os.Stat(filepath.Join(set.Dir, name)); err != nil {
			break
		}
		set.Names = append(set.Names, name)
	}
	return set, nil
}
