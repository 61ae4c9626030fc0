//go:build !unix

package preflight

import "os"

// checkAccess falls back to probing with a temporary file.
func checkAccess(path string) error {
	f, err := os.CreateTemp(path, ".lessonreel-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
