package albumart

// WindowSize is the terminal size in cells and the pixel size of a cell.
type WindowSize struct {
	Cols       int
	Rows       int
	CellWidth  int
	CellHeight int
}

var defaultWindowSize = WindowSize{Cols: 80, Rows: 24, CellWidth: 8, CellHeight: 16}

// TextWidth returns the columns available for text, at most maxCols.
func (ws WindowSize) TextWidth(maxCols int) int {
	if maxCols <= 0 {
		return ws.Cols
	}
	return min(ws.Cols, maxCols)
}

// ImageWidth returns the pixel width of an image spanning TextWidth(maxCols)
// columns.
func (ws WindowSize) ImageWidth(maxCols int) int {
	return ws.TextWidth(maxCols) * ws.CellWidth
}
