//go:build !unix

package archive

import "os"

func canRead(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

func canWrite(path string) bool {
	probe, err := os.CreateTemp(path, ".ppcutils-probe-*")
	if err != nil {
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}
