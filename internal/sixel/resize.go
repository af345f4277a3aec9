package sixel

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// scaledHeight returns round(height * width / srcWidth), never less than 1.
func scaledHeight(srcWidth, srcHeight, width int) int {
	h := (2*srcHeight*width + srcWidth) / (2 * srcWidth)
	return max(h, 1)
}

// resample scales img to the given pixel width, preserving aspect ratio.
func resample(img *image.RGBA, width int) *image.RGBA {
	b := img.Bounds()
	height := scaledHeight(b.Dx(), b.Dy(), width)

	//nolint:gosec // width and height are validated positive
	out := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	if rgba, ok := out.(*image.RGBA); ok {
		return rgba
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), out, out.Bounds().Min, draw.Src)
	return dst
}
