package albumart

import (
	"context"
	"io"

	"github.com/llehouerou/tides/internal/filecache"
	"github.com/llehouerou/tides/internal/mpd"
	"github.com/llehouerou/tides/internal/sixel"
)

// Renderer turns a song's cover into sixel data, caching the encoded
// result.
type Renderer struct {
	Source Source
	Cache  *filecache.Cache // nil disables caching
	Colors int
	Dither bool
}

// Render writes the cover of song, width pixels wide, to w. With refresh
// the cached image is regenerated.
func (r *Renderer) Render(ctx context.Context, w io.Writer, song mpd.Song, width int, refresh bool) error {
	generate := func(out io.Writer) error {
		return r.encode(ctx, out, song.File, width)
	}

	if r.Cache == nil {
		return generate(w)
	}

	rc, err := r.Cache.Fetch(r.cacheKey(song, width), refresh, generate)
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(w, rc)
	return err
}

func (r *Renderer) encode(ctx context.Context, w io.Writer, uri string, width int) error {
	data, err := Fetch(ctx, r.Source, uri)
	if err != nil {
		return err
	}
	img, err := Decode(data)
	if err != nil {
		return err
	}

	enc := sixel.NewEncoder(w)
	enc.Width = width
	enc.Colors = r.Colors
	enc.Dither = r.Dither
	return enc.Encode(img)
}

// cacheKey identifies a rendering. Songs of one directory share a cover.
func (r *Renderer) cacheKey(song mpd.Song, width int) string {
	dir := song.Dir()
	if dir == "" {
		dir = song.File
	}
	return filecache.Key(dir, width, r.Colors, r.Dither)
}
