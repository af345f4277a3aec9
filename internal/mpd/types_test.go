package mpd

import (
	"testing"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
	"github.com/stretchr/testify/assert"
)

func TestParseSong(t *testing.T) {
	song := parseSong(gompd.Attrs{
		"file":          "Classical/Bach/01 Prelude.flac",
		"Last-Modified": "2021-03-04T10:00:00Z",
		"Format":        "44100:16:2",
		"Time":          "143",
		"duration":      "142.680",
		"Pos":           "3",
		"Id":            "17",
		"Title":         "Prelude",
		"Composer":      "Johann Sebastian Bach",
		"Artist":        "Glenn Gould",
	})

	assert.Equal(t, "Classical/Bach/01 Prelude.flac", song.File)
	assert.Equal(t, 3, song.Pos)
	assert.Equal(t, 17, song.ID)
	assert.Equal(t, 142680*time.Millisecond, song.Duration)
	assert.Equal(t, []Tag{
		{Key: "Artist", Value: "Glenn Gould"},
		{Key: "Composer", Value: "Johann Sebastian Bach"},
		{Key: "Title", Value: "Prelude"},
	}, song.Tags)
	assert.Equal(t, "Classical/Bach", song.Dir())
	assert.Equal(t, "Glenn Gould", song.First("artist"))
	assert.Empty(t, song.First("Album"))
}

func TestParseSong_NotQueued(t *testing.T) {
	song := parseSong(gompd.Attrs{"file": "a.mp3", "Time": "61"})

	assert.Equal(t, -1, song.Pos)
	assert.Equal(t, -1, song.ID)
	assert.Equal(t, 61*time.Second, song.Duration)
	assert.Empty(t, song.Tags)
	assert.Empty(t, song.Dir())
}

func TestParseStatus(t *testing.T) {
	st := parseStatus(gompd.Attrs{
		"volume":      "80",
		"repeat":      "1",
		"random":      "0",
		"single":      "oneshot",
		"consume":     "0",
		"state":       "pause",
		"song":        "2",
		"songid":      "12",
		"elapsed":     "31.250",
		"duration":    "200.000",
		"bitrate":     "320",
		"audio":       "44100:24:2",
		"updating_db": "5",
	})

	assert.Equal(t, Status{
		State:      StatePause,
		Volume:     80,
		Repeat:     true,
		Random:     false,
		Single:     "oneshot",
		Consume:    "0",
		SongPos:    2,
		SongID:     12,
		Elapsed:    31250 * time.Millisecond,
		Duration:   200 * time.Second,
		UpdatingDB: 5,
		Bitrate:    320,
		Audio:      "44100:24:2",
	}, st)
}

func TestParseStatus_Stopped(t *testing.T) {
	st := parseStatus(gompd.Attrs{"volume": "-1"})

	assert.Equal(t, StateStop, st.State)
	assert.Equal(t, -1, st.Volume)
	assert.Equal(t, -1, st.SongPos)
	assert.Zero(t, st.Elapsed)
}

func TestParseStatus_LegacyTime(t *testing.T) {
	st := parseStatus(gompd.Attrs{"state": "play", "time": "12:300"})

	assert.Equal(t, 12*time.Second, st.Elapsed)
	assert.Equal(t, 300*time.Second, st.Duration)
}

func TestParseEntries(t *testing.T) {
	entries := parseEntries([]gompd.Attrs{
		{"directory": "Jazz"},
		{"file": "intro.mp3", "Title": "Intro"},
		{"playlist": "favourites.m3u"},
		{"Last-Modified": "2020-01-01T00:00:00Z"},
	})

	assert.Equal(t, []Entry{
		{Kind: EntryDirectory, Path: "Jazz"},
		{Kind: EntryFile, Path: "intro.mp3"},
		{Kind: EntryPlaylist, Path: "favourites.m3u"},
	}, entries)
	assert.Equal(t, "directory", EntryDirectory.String())
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"", 0, false},
		{"12", 12 * time.Second, true},
		{"0.5", 500 * time.Millisecond, true},
		{"abc", 0, false},
		{"-3", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseSeconds(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
