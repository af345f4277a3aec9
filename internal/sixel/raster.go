// Package sixel encodes images as DEC sixel graphics for terminal display.
//
// Encoding runs in three steps: the source raster is resampled to the
// requested pixel width (Lanczos3), reduced to an adaptive palette of at most
// Colors entries (median cut, optional Floyd-Steinberg dithering), and
// serialized as bands of six pixel rows with horizontal run-length
// compression.
package sixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Errors returned by the encoder. Callers match them with errors.Is.
var (
	ErrInvalidInput = errors.New("sixel: invalid input")
	ErrQuantize     = errors.New("sixel: quantization failed")
	ErrWrite        = errors.New("sixel: write failed")
)

// Raster is a decoded bitmap: Width x Height RGBA8 pixels, row-major,
// top-to-bottom, left-to-right.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// FromImage copies img into a Raster using non-premultiplied RGBA.
func FromImage(img image.Image) Raster {
	b := img.Bounds()
	r := Raster{
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Raster{}
	}
	r.Pix = make([]uint8, 4*r.Width*r.Height)

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := 4 * r.Width
		for y := range r.Height {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.Pix[y*rowLen:(y+1)*rowLen], src.Pix[off:off+rowLen])
		}
		return r
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, _ := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r.Pix[i+0] = c.R
			r.Pix[i+1] = c.G
			r.Pix[i+2] = c.B
			r.Pix[i+3] = c.A
			i += 4
		}
	}
	return r
}

func (r Raster) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: raster is %dx%d", ErrInvalidInput, r.Width, r.Height)
	}
	if want := 4 * r.Width * r.Height; len(r.Pix) != want {
		return fmt.Errorf("%w: pixel buffer holds %d bytes, want %d (RGBA8)",
			ErrInvalidInput, len(r.Pix), want)
	}
	return nil
}

// opaque returns the raster as an *image.RGBA with alpha forced to 0xff.
// The output format has no transparency, so colour selection only ever
// looks at the RGB components.
func (r Raster) opaque() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i := 0; i < len(r.Pix); i += 4 {
		img.Pix[i+0] = r.Pix[i+0]
		img.Pix[i+1] = r.Pix[i+1]
		img.Pix[i+2] = r.Pix[i+2]
		img.Pix[i+3] = 0xff
	}
	return img
}
