package archive_test

import (
	"path/filepath"
	"testing"

	"github.com/acubelab/ppcutils/archive"
	dt "github.com/acubelab/ppcutils/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVolumes__SingleVolume(t *testing.T) {
	dir := t.TempDir()
	dt.WriteFiles(t, dir, map[string]string{
		"dataset.tar.zstd_22":          "",
		"000000002dataset.tar.zstd_22": "",
		"123456789.tar.zstd_22":        "",
		"000000002other.tar.zstd_22":   "",
		"000000003other.tar.zstd_22":   "",
	})

	for _, name := range []string{"dataset.tar.zstd_22", "123456789.tar.zstd_22", "000000002other.tar.zstd_22"} {
		t.Run(name, func(t *testing.T) {
			set, err := archive.ListVolumes(filepath.Join(dir, name))
			require.NoError(t, err)
			assert.Equal(t, []string{name}, set.Names)
			assert.Equal(t, dir, set.Dir)
		})
	}
}

func TestListVolumes__MainIsVolumeOne(t *testing.T) {
	dir := t.TempDir()
	dt.WriteFiles(t, dir, map[string]string{
		"000000001suffix": "",
		"000000002suffix": "",
		"000000003suffix": "",
		"000000005suffix": "",
	})

	set, err := archive.ListVolumes(filepath.Join(dir, "000000001suffix"))
	require.NoError(t, err)
	assert.Equal(t, []string{"000000001suffix", "000000002suffix", "000000003suffix"}, set.Names)
	assert.Equal(
		t,
		[]string{
			filepath.Join(dir, "000000001suffix"),
			filepath.Join(dir, "000000002suffix"),
			filepath.Join(dir, "000000003suffix"),
		},
		set.Paths())
}

func TestListVolumes__MainIsVolumeZero(t *testing.T) {
	dir := t.TempDir()
	dt.WriteFiles(t, dir, map[string]string{
		"000000000_sort.tar.zstd_22": "",
		"000000001_sort.tar.zstd_22": "",
		"000000002_sort.tar.zstd_22": "",
	})

	set, err := archive.ListVolumes(filepath.Join(dir, "000000000_sort.tar.zstd_22"))
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{
			"000000000_sort.tar.zstd_22",
			"000000001_sort.tar.zstd_22",
			"000000002_sort.tar.zstd_22",
		},
		set.Names)
}

func TestListVolumes__NoSiblings(t *testing.T) {
	dir := t.TempDir()
	dt.WriteFiles(t, dir, map[string]string{"000000000x": ""})

	set, err := archive.ListVolumes(filepath.Join(dir, "000000000x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"000000000x"}, set.Names)
}

func TestVolumeName(t *testing.T) {
	assert.Equal(t, "000000001.tar", archive.VolumeName(1, ".tar"))
	assert.Equal(t, "000000042.tar", archive.VolumeName(42, ".tar"))
	assert.Equal(t, "999999999", archive.VolumeName(999999999, ""))
}

func TestIsMultiVolume(t *testing.T) {
	assert.True(t, archive.IsMultiVolume("000000000a"))
	assert.True(t, archive.IsMultiVolume("000000001a"))
	assert.False(t, archive.IsMultiVolume("000000002a"))
	assert.False(t, archive.IsMultiVolume("00000000"))
	assert.False(t, archive.IsMultiVolume("archive.tar"))
}
