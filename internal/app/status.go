package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/llehouerou/tides/internal/mpd"
	"github.com/llehouerou/tides/internal/render"
)

type StatusCmd struct {
	Plain bool `short:"p" help:"Print key=value lines without formatting."`
}

func (c *StatusCmd) Run(env *Env) error {
	status, err := env.Client.Status()
	if err != nil {
		return err
	}
	song, err := env.Client.CurrentSong()
	hasSong := err == nil
	if err != nil && !errors.Is(err, mpd.ErrNoSong) {
		return err
	}

	p := env.printer(c.Plain)

	if !c.Plain {
		if hasSong {
			if err := p.Line(p.Style(render.T().S().Title, render.Sanitize(songTitle(song)))); err != nil {
				return err
			}
		}
		if status.UpdatingDB > 0 {
			if err := p.Line(fmt.Sprintf("DB update #%d in progress.", status.UpdatingDB)); err != nil {
				return err
			}
		}
	}

	if err := p.Table(statusRows(status, song, hasSong, c.Plain)); err != nil {
		return err
	}

	if !c.Plain && status.State != mpd.StateStop && status.Duration > 0 {
		bar := render.ProgressBar(status.Elapsed, status.Duration, p.Width, status.State == mpd.StatePlay)
		return p.Line(p.Style(render.T().S().Muted, bar))
	}
	return nil
}

func statusRows(st mpd.Status, song mpd.Song, hasSong, plain bool) []render.Row {
	var rows []render.Row
	add := func(label, value string) {
		rows = append(rows, render.Row{Key: rowKey(label, plain), Value: value})
	}

	if plain && hasSong {
		add("File", song.File)
	}

	state := map[mpd.State]string{
		mpd.StatePlay:  "playing",
		mpd.StatePause: "paused",
		mpd.StateStop:  "stopped",
	}[st.State]
	if state == "" {
		state = string(st.State)
	}
	add("State", state)

	if st.SongPos >= 0 {
		add("Queue Position", strconv.Itoa(st.SongPos+1))
	}
	if plain && st.State != mpd.StateStop {
		add("Elapsed", render.FormatDuration(st.Elapsed))
		add("Duration", render.FormatDuration(st.Duration))
	}
	if st.Volume >= 0 {
		add("Volume", fmt.Sprintf("%d%%", st.Volume))
	}
	add("Repeat", onOff(st.Repeat))
	add("Random", onOff(st.Random))
	add("Single", modeValue(st.Single))
	add("Consume", modeValue(st.Consume))
	if plain && st.UpdatingDB > 0 {
		add("Updating DB", strconv.Itoa(st.UpdatingDB))
	}
	if st.Error != "" {
		add("Error", st.Error)
	}
	return rows
}

// modeValue renders single/consume, which MPD reports as "0", "1" or
// "oneshot".
func modeValue(v string) string {
	switch v {
	case "1":
		return "on"
	case "", "0":
		return "off"
	default:
		return v
	}
}
