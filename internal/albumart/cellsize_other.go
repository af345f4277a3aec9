//go:build !unix

package albumart

import "os"

// GetWindowSize returns the defaults; the terminal cannot be queried here.
func GetWindowSize(*os.File) WindowSize {
	return defaultWindowSize
}
