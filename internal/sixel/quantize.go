package sixel

import (
	"fmt"
	"image"

	"github.com/soniakeys/quant/median"
	"golang.org/x/image/draw"
)

// palettize builds the adaptive palette. It is a variable so tests can
// substitute a failing quantizer.
var palettize = func(img *image.RGBA, colors int) *image.Paletted {
	return median.Quantizer(colors).Paletted(img)
}

// quantize reduces img to at most colors palette entries and maps every
// pixel to a palette index. The remap is either nearest-colour or
// Floyd-Steinberg error diffusion; both are deterministic.
func quantize(img *image.RGBA, colors int, dither bool) (p *image.Paletted, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v", ErrQuantize, r)
		}
	}()

	p = palettize(img, colors)
	if p == nil || len(p.Palette) == 0 {
		return nil, fmt.Errorf("%w: no palette for %dx%d image",
			ErrQuantize, img.Bounds().Dx(), img.Bounds().Dy())
	}

	// The quantizer assigns pixels to their cluster; redraw so every pixel
	// lands on its nearest palette entry instead.
	if dither {
		draw.FloydSteinberg.Draw(p, p.Bounds(), img, img.Bounds().Min)
	} else {
		draw.Draw(p, p.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	return p, nil
}
