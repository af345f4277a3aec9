package app

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/llehouerou/tides/internal/albumart"
	"github.com/llehouerou/tides/internal/mpd"
	"github.com/llehouerou/tides/internal/render"
	"github.com/llehouerou/tides/internal/tags"
)

type CurrentCmd struct {
	NoCache bool `short:"n" help:"Fetch new album art from MPD, ignoring cached images."`
	Plain   bool `short:"p" help:"Print key=value lines without formatting or album art."`
}

func (c *CurrentCmd) Run(env *Env) error {
	song, err := env.Client.CurrentSong()
	if errors.Is(err, mpd.ErrNoSong) {
		_, err = io.WriteString(env.Out, notPlaying+"\n")
		return err
	}
	if err != nil {
		return err
	}

	comments, err := env.Client.ReadComments(song.File)
	if err != nil {
		slog.Warn("read comments", "file", song.File, "error", err)
	}
	t := tags.New(song.Tags, comments)
	p := env.printer(c.Plain)

	if c.Plain {
		return p.Table(currentPlainRows(env, song, t))
	}

	c.drawAlbumArt(env, song)

	_, err = io.WriteString(p.Out, currentHeader(p, t)+tagSections(env, p, t))
	return err
}

// drawAlbumArt renders the cover above the text. Failures are logged; the
// text is still printed.
func (c *CurrentCmd) drawAlbumArt(env *Env, song mpd.Song) {
	art := env.Config.GetAlbumArtConfig()
	if albumart.Detect(art.Protocol) != albumart.ProtocolSixel {
		return
	}

	r := &albumart.Renderer{Source: env.Client, Colors: art.Colors, Dither: *art.Dither}
	if env.OpenCache != nil {
		cache, err := env.OpenCache()
		if err != nil {
			slog.Warn("album art cache unavailable", "error", err)
		} else {
			defer cache.Close()
			r.Cache = cache
		}
	}

	width := env.Window.ImageWidth(env.Config.TextWidth())
	if err := r.Render(env.Ctx, env.Out, song, width, c.NoCache); err != nil {
		if errors.Is(err, albumart.ErrNoArt) {
			slog.Debug("no album art", "file", song.File)
			return
		}
		slog.Warn("render album art", "file", song.File, "error", err)
	}
}

// currentHeader describes the song: composer, work and movement for
// classical recordings, else artist and title.
func currentHeader(p *render.Printer, t tags.Tags) string {
	if h := classicalHeader(p, t); h != "" {
		return h
	}

	artist, title := t.Joined("Artist"), t.Joined("Title")
	if artist == "" || title == "" {
		return ""
	}
	var b strings.Builder
	writeWrapped(&b, p, artist, true)
	writeWrapped(&b, p, title, false)
	return b.String()
}

func classicalHeader(p *render.Printer, t tags.Tags) string {
	composer, work := t.Joined("Composer"), t.Joined("Work")
	if composer == "" || work == "" {
		return ""
	}

	title := t.Joined("Title")
	if num, mvt := t.Joined("MovementNumber"), t.Joined("Movement"); num != "" && mvt != "" {
		title = num + ". " + mvt
	}
	if title == "" {
		return ""
	}

	var b strings.Builder
	writeWrapped(&b, p, composer, true)
	writeWrapped(&b, p, work, false)
	writeWrapped(&b, p, title, false)

	styles := render.T().S()
	var rows []render.Row
	if ensemble := t.Joined("Ensemble"); ensemble != "" {
		rows = append(rows, render.Row{Key: "performed by:", Value: ensemble, Style: &styles.Header})
	}
	if conductor := t.Joined("Conductor"); conductor != "" {
		rows = append(rows, render.Row{Key: "under:", Value: conductor})
	}
	if len(rows) > 0 {
		sub := *p
		var tb strings.Builder
		sub.Out = &tb
		_ = sub.Table(rows) //nolint:errcheck // strings.Builder does not fail
		b.WriteString(tb.String())
	}
	return b.String()
}

// writeWrapped writes s wrapped to the printer width; the first line of a
// gradient header gets the theme gradient.
func writeWrapped(b *strings.Builder, p *render.Printer, s string, gradient bool) {
	theme := render.T()
	for _, line := range render.Wrap(s, p.Width) {
		if gradient {
			line = p.Gradient(line, theme.Primary, theme.Secondary)
		} else {
			line = p.Style(theme.S().Title, line)
		}
		b.WriteString(line + "\n")
	}
}

// tagSections lists the configured tags, one bulleted section per tag.
func tagSections(env *Env, p *render.Printer, t tags.Tags) string {
	styles := render.T().S()
	bullet := p.Style(styles.Bullet, "  • ")

	var b strings.Builder
	for _, tag := range env.Config.EnabledTags() {
		vals, ok := t.Lookup(tag.Name)
		if !ok {
			continue
		}
		b.WriteString(p.Style(styles.Header, render.Sanitize(tag.Label)+":") + "\n")
		for _, v := range vals {
			for i, line := range render.Wrap(v, p.Width-4) {
				prefix := "    "
				if i == 0 {
					prefix = bullet
				}
				b.WriteString(prefix + line + "\n")
			}
		}
	}
	return b.String()
}

func currentPlainRows(env *Env, song mpd.Song, t tags.Tags) []render.Row {
	rows := []render.Row{{Key: "file", Value: song.File}}
	add := func(key, value string) {
		if value != "" {
			rows = append(rows, render.Row{Key: key, Value: value})
		}
	}

	add("artist", t.Joined("Artist"))
	add("title", t.Joined("Title"))
	add("album", t.Joined("Album"))
	for _, tag := range env.Config.EnabledTags() {
		add(rowKey(tag.Label, true), t.Joined(tag.Name))
	}
	if song.Duration > 0 {
		add("duration", render.FormatDuration(song.Duration))
	}
	return rows
}
