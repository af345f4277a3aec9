// Command img2sixel converts an image file to sixel data on stdout.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/llehouerou/tides/internal/albumart"
	"github.com/llehouerou/tides/internal/sixel"
)

type cli struct {
	Width    int    `short:"w" help:"Output width in pixels. Defaults to the image width."`
	Colors   int    `short:"c" default:"256" help:"Palette size, 1-256."`
	NoDither bool   `help:"Map pixels to the nearest palette colour without dithering."`
	File     string `arg:"" type:"existingfile" help:"Image to convert (JPEG, PNG, GIF, WebP, BMP or TIFF)."`
}

func (c *cli) Run() error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	img, err := albumart.Decode(data)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	enc := sixel.NewEncoder(out)
	enc.Width = c.Width
	enc.Colors = c.Colors
	enc.Dither = !c.NoDither
	if err := enc.Encode(img); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return out.Flush()
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("img2sixel"),
		kong.Description("Convert an image to sixel graphics."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run())
}
