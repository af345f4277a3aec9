package sixel

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strconv"
)

// Sixel control sequences and sizes.
const (
	introducer     = "\x1bPq"
	terminator     = "\x1b\\"
	colorIntro     = '#'
	repeatIntro    = '!'
	carriageReturn = '$'
	newLine        = '-'
	sixelOffset    = 0x3f
	bandHeight     = 6

	// DefaultColors is the palette size used when Encoder.Colors is zero.
	DefaultColors = 256
	// MaxColors is the largest palette the encoder produces.
	MaxColors = 256
)

// Encoder writes images to an io.Writer as sixel data.
type Encoder struct {
	w io.Writer

	// Width is the output width in pixels. The height follows from the
	// source aspect ratio. Zero keeps the source width.
	Width int

	// Colors is the maximum palette size, 1 to MaxColors. Zero means
	// DefaultColors.
	Colors int

	// Dither applies Floyd-Steinberg error diffusion when mapping pixels to
	// the palette.
	Dither bool
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode resizes raster r to width pixels, quantizes it to at most colors
// palette entries and writes the sixel stream to w.
func Encode(w io.Writer, width int, r Raster, colors int) error {
	if width <= 0 {
		return fmt.Errorf("%w: target width %d", ErrInvalidInput, width)
	}
	if colors <= 0 {
		return fmt.Errorf("%w: %d colors", ErrInvalidInput, colors)
	}
	enc := &Encoder{w: w, Width: width, Colors: colors}
	return enc.EncodeRaster(r)
}

// Encode writes img as sixel data.
func (e *Encoder) Encode(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	return e.EncodeRaster(FromImage(img))
}

// EncodeRaster writes r as sixel data. The whole stream is built before the
// first write, so nothing reaches the writer when resizing or quantization
// fails.
func (e *Encoder) EncodeRaster(r Raster) error {
	if err := r.validate(); err != nil {
		return err
	}

	width := e.Width
	if width == 0 {
		width = r.Width
	}
	if width < 0 {
		return fmt.Errorf("%w: target width %d", ErrInvalidInput, width)
	}

	colors := e.Colors
	if colors == 0 {
		colors = DefaultColors
	}
	if colors < 1 || colors > MaxColors {
		return fmt.Errorf("%w: %d colors, want 1-%d", ErrInvalidInput, colors, MaxColors)
	}

	p, err := quantize(resample(r.opaque(), width), colors, e.Dither)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(estimateSize(p))
	writeImage(&buf, p)

	if _, err := e.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// estimateSize guesses the encoded length: header, palette and roughly one
// byte per column per colour per band.
func estimateSize(p *image.Paletted) int {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	bands := (h + bandHeight - 1) / bandHeight
	return 32 + 20*len(p.Palette) + bands*(w+8)
}

// writeImage serializes a paletted image: introducer, raster attributes,
// colour definitions, bands, terminator.
func writeImage(buf *bytes.Buffer, p *image.Paletted) {
	w, h := p.Rect.Dx(), p.Rect.Dy()

	buf.WriteString(introducer)
	fmt.Fprintf(buf, "\"1;1;%d;%d", w, h)

	for i, c := range p.Palette {
		r, g, b, _ := c.RGBA()
		fmt.Fprintf(buf, "#%d;2;%d;%d;%d", i,
			percent(uint8(r>>8)), percent(uint8(g>>8)), percent(uint8(b>>8)))
	}

	writeBands(buf, p)
	buf.WriteString(terminator)
}

// percent rescales a channel from 0-255 to 0-100, rounding to nearest.
func percent(c uint8) int {
	return (int(c)*100 + 127) / 255
}

// writeBands emits the pixel data six rows at a time. Within a band, colours
// are emitted in ascending index order, each overlaying the same band
// (separated by '$'), and the band ends with '-'.
func writeBands(buf *bytes.Buffer, p *image.Paletted) {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	n := len(p.Palette)

	// masks[c*w+x] holds the vertical bit pattern of colour c in column x.
	masks := make([]byte, n*w)
	present := make([]bool, n)

	for top := 0; top < h; top += bandHeight {
		rows := min(bandHeight, h-top)
		clear(masks)
		clear(present)

		for dy := range rows {
			off := p.PixOffset(p.Rect.Min.X, p.Rect.Min.Y+top+dy)
			row := p.Pix[off : off+w]
			for x, idx := range row {
				c := int(idx)
				if c >= n {
					continue
				}
				masks[c*w+x] |= 1 << dy
				present[c] = true
			}
		}

		first := true
		for c := range n {
			if !present[c] {
				continue
			}
			if !first {
				buf.WriteByte(carriageReturn)
			}
			first = false
			writeColor(buf, c, masks[c*w:(c+1)*w])
		}
		buf.WriteByte(newLine)
	}
}

// writeColor emits one colour's runs across a band. Columns where the colour
// is absent are skipped with an explicit repeat of the empty sixel; a gap
// reaching the right edge is dropped.
func writeColor(buf *bytes.Buffer, index int, masks []byte) {
	buf.WriteByte(colorIntro)
	buf.WriteString(strconv.Itoa(index))

	for x := 0; x < len(masks); {
		mask := masks[x]
		start := x
		for x < len(masks) && masks[x] == mask {
			x++
		}
		if mask == 0 && x == len(masks) {
			break
		}
		writeRun(buf, mask, x-start)
	}
}

// writeRun emits count repetitions of a sixel. Gaps always use the repeat
// form, data runs only when longer than one column.
func writeRun(buf *bytes.Buffer, mask byte, count int) {
	if count > 1 || mask == 0 {
		buf.WriteByte(repeatIntro)
		buf.WriteString(strconv.Itoa(count))
	}
	buf.WriteByte(sixelOffset + mask)
}
