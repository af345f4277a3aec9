// Package albumart fetches album covers from MPD and draws them in the
// terminal as sixel images.
package albumart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrNoArt is returned when a song has neither a cover file nor an
// embedded picture.
var ErrNoArt = errors.New("no album art")

// Source retrieves cover data from the server.
type Source interface {
	AlbumArt(uri string) ([]byte, error)
	ReadPicture(uri string) ([]byte, error)
}

// Fetch returns the raw cover image of the song at uri. The cover file in
// the song's directory is preferred over a picture embedded in the file.
func Fetch(ctx context.Context, src Source, uri string) ([]byte, error) {
	data, err := src.AlbumArt(uri)
	if err == nil && len(data) > 0 {
		slog.Debug("album art from cover file", "uri", uri, "size", humanize.Bytes(uint64(len(data))))
		return data, nil
	}
	if err != nil {
		slog.Debug("no cover file", "uri", uri, "error", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err = src.ReadPicture(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoArt, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoArt, uri)
	}
	slog.Debug("album art from embedded picture", "uri", uri, "size", humanize.Bytes(uint64(len(data))))
	return data, nil
}

// Decode decodes JPEG, PNG, GIF, WebP, BMP or TIFF image data.
func Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode album art: %w", err)
	}
	slog.Debug("decoded album art", "format", format, "bounds", img.Bounds().String())
	return img, nil
}

// Save writes raw cover data to output, or to stdout when output is "-".
func Save(data []byte, output string, stdout io.Writer) error {
	if output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
