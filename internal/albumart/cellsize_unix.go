//go:build unix

package albumart

import (
	"os"

	"golang.org/x/sys/unix"
)

// GetWindowSize queries TIOCGWINSZ on f. Missing values fall back to
// defaults.
func GetWindowSize(f *os.File) WindowSize {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return defaultWindowSize
	}
	size := WindowSize{
		Cols:       int(ws.Col),
		Rows:       int(ws.Row),
		CellWidth:  defaultWindowSize.CellWidth,
		CellHeight: defaultWindowSize.CellHeight,
	}
	if ws.Xpixel != 0 && ws.Ypixel != 0 {
		size.CellWidth = int(ws.Xpixel) / int(ws.Col)
		size.CellHeight = int(ws.Ypixel) / int(ws.Row)
	}
	return size
}
