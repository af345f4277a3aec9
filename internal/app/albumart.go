package app

import (
	"github.com/llehouerou/tides/internal/albumart"
)

type AlbumArtCmd struct {
	Song   string `arg:"" optional:"" help:"Song to fetch album art for. Defaults to the current song."`
	Output string `short:"o" required:"" help:"File to write the image to, or - for stdout."`
}

func (c *AlbumArtCmd) Run(env *Env) error {
	uri := c.Song
	if uri == "" {
		song, err := currentSong(env)
		if err != nil {
			return err
		}
		uri = song.File
	}

	data, err := albumart.Fetch(env.Ctx, env.Client, uri)
	if err != nil {
		return err
	}
	return albumart.Save(data, c.Output, env.Out)
}
