package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/llehouerou/tides/internal/mpd"
	"github.com/llehouerou/tides/internal/render"
	"github.com/llehouerou/tides/internal/tags"
)

type QueueCmd struct {
	Group bool `short:"g" help:"Group songs by composer and work, or album artist and album."`
	Flat  bool `short:"f" help:"Do not group, overriding grouped_queue from the config."`
}

func (c *QueueCmd) Run(env *Env) error {
	queue, err := env.Client.Queue()
	if err != nil {
		return err
	}
	currentID := -1
	if song, err := env.Client.CurrentSong(); err == nil {
		currentID = song.ID
	} else if !errors.Is(err, mpd.ErrNoSong) {
		return err
	}

	p := env.printer(false)
	grouped := c.Group || (env.Config.GroupedQueue && !c.Flat)

	var out string
	if grouped {
		out = formatGroupedQueue(p, queue, currentID)
	} else {
		out = formatFlatQueue(p, queue, currentID)
	}
	_, err = fmt.Fprint(p.Out, out)
	return err
}

func formatFlatQueue(p *render.Printer, queue []mpd.Song, currentID int) string {
	styles := render.T().S()

	var b strings.Builder
	for i, song := range queue {
		title := render.Sanitize(songTitle(song))
		if song.ID == currentID {
			title = p.Style(styles.Playing, title)
		}
		fmt.Fprintf(&b, "%-3s %s\n", strconv.Itoa(i+1)+".", title)
	}
	return b.String()
}

// queueGroup names the work or album a song belongs to, or "".
func queueGroup(t tags.Tags) string {
	if work, composer := t.Joined("Work"), t.Joined("Composer"); work != "" && composer != "" {
		return composer + " - " + work
	}
	if album, artist := t.Joined("Album"), t.Joined("AlbumArtist"); album != "" && artist != "" {
		return artist + " - " + album
	}
	return ""
}

func formatGroupedQueue(p *render.Printer, queue []mpd.Song, currentID int) string {
	styles := render.T().S()

	numWidth := 3
	for _, song := range queue {
		numWidth = max(numWidth, len(song.First("MovementNumber")))
	}
	posWidth := len(strconv.Itoa(len(queue))) + 1

	var b strings.Builder
	group := ""
	for i, song := range queue {
		t := tags.New(song.Tags, nil)

		if g := queueGroup(t); g != "" && g != group {
			group = g
			b.WriteString(p.Style(styles.Title, render.Sanitize(g)) + "\n")
		}

		title := songTitle(song)
		if num, mvt := t.Joined("MovementNumber"), t.Joined("Movement"); num != "" && mvt != "" {
			title = fmt.Sprintf("%*s. %s", numWidth, num, mvt)
		}
		title = render.Sanitize(title)
		if song.ID == currentID {
			title = p.Style(styles.Playing, title)
		}
		fmt.Fprintf(&b, "%-*s %s\n", posWidth, strconv.Itoa(i+1)+".", title)
	}
	return b.String()
}

type ClearCmd struct{}

func (c *ClearCmd) Run(env *Env) error { return env.Client.Clear() }

type AddCmd struct {
	Path string `arg:"" help:"File or directory to add."`
}

func (c *AddCmd) Run(env *Env) error {
	return env.Client.Add(trimPath(c.Path))
}

type LoadCmd struct {
	Path string `arg:"" help:"Playlist to load."`
}

func (c *LoadCmd) Run(env *Env) error {
	return env.Client.Load(trimPath(c.Path))
}

type MvCmd struct {
	From int `arg:"" help:"Queue position of the song to move."`
	To   int `arg:"" help:"Queue position to move it to."`
}

func (c *MvCmd) Run(env *Env) error {
	if c.From < 1 || c.To < 1 {
		return fmt.Errorf("queue positions start at 1")
	}
	return env.Client.Move(c.From-1, c.To-1)
}

type DelCmd struct {
	Index int `arg:"" help:"Queue position of the song to remove."`
}

func (c *DelCmd) Run(env *Env) error {
	if c.Index < 1 {
		return fmt.Errorf("queue positions start at 1")
	}
	return env.Client.Delete(c.Index - 1)
}
