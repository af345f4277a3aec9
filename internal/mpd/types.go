package mpd

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// Tag is one metadata key/value pair as reported by the server.
type Tag struct {
	Key   string
	Value string
}

// Song is a queue or database entry.
type Song struct {
	File     string
	Tags     []Tag
	Pos      int // queue position, -1 when not queued
	ID       int // queue id, -1 when not queued
	Duration time.Duration
}

// Get returns the values of a tag, matched case-insensitively.
func (s Song) Get(key string) []string {
	var vals []string
	for _, t := range s.Tags {
		if strings.EqualFold(t.Key, key) {
			vals = append(vals, t.Value)
		}
	}
	return vals
}

// First returns the first value of a tag or "".
func (s Song) First(key string) string {
	if vals := s.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Dir returns the directory part of the song URI.
func (s Song) Dir() string {
	if i := strings.LastIndex(s.File, "/"); i >= 0 {
		return s.File[:i]
	}
	return ""
}

// State is the player state.
type State string

const (
	StatePlay  State = "play"
	StatePause State = "pause"
	StateStop  State = "stop"
)

// Status is the server status.
type Status struct {
	State      State
	Volume     int // -1 when the mixer is unavailable
	Repeat     bool
	Random     bool
	Single     string // "0", "1" or "oneshot"
	Consume    string
	SongPos    int // -1 when no current song
	SongID     int
	Elapsed    time.Duration
	Duration   time.Duration
	UpdatingDB int // update job id, 0 when idle
	Bitrate    int // kbps
	Audio      string
	Error      string
}

// EntryKind tells files, directories and playlists apart.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDirectory
	EntryPlaylist
)

func (k EntryKind) String() string {
	switch k {
	case EntryDirectory:
		return "directory"
	case EntryPlaylist:
		return "playlist"
	default:
		return "file"
	}
}

// Entry is an item of a database listing.
type Entry struct {
	Kind EntryKind
	Path string
}

// Keys that describe queue placement or timing rather than song metadata.
var nonTagKeys = map[string]bool{
	"file":          true,
	"pos":           true,
	"id":            true,
	"time":          true,
	"duration":      true,
	"last-modified": true,
	"added":         true,
	"prio":          true,
	"range":         true,
	"format":        true,
}

func parseSong(attrs gompd.Attrs) Song {
	s := Song{
		File: attrs["file"],
		Pos:  atoiOr(attrs["Pos"], -1),
		ID:   atoiOr(attrs["Id"], -1),
	}

	if d, ok := parseSeconds(attrs["duration"]); ok {
		s.Duration = d
	} else if d, ok := parseSeconds(attrs["Time"]); ok {
		s.Duration = d
	}

	s.Tags = parseTags(attrs)
	return s
}

// parseTags returns the metadata pairs of attrs sorted by key.
func parseTags(attrs gompd.Attrs) []Tag {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if !nonTagKeys[strings.ToLower(k)] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	tags := make([]Tag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, Tag{Key: k, Value: attrs[k]})
	}
	return tags
}

func parseStatus(attrs gompd.Attrs) Status {
	st := Status{
		State:      State(attrs["state"]),
		Volume:     atoiOr(attrs["volume"], -1),
		Repeat:     attrs["repeat"] == "1",
		Random:     attrs["random"] == "1",
		Single:     attrs["single"],
		Consume:    attrs["consume"],
		SongPos:    atoiOr(attrs["song"], -1),
		SongID:     atoiOr(attrs["songid"], -1),
		UpdatingDB: atoiOr(attrs["updating_db"], 0),
		Bitrate:    atoiOr(attrs["bitrate"], 0),
		Audio:      attrs["audio"],
		Error:      attrs["error"],
	}
	if st.State == "" {
		st.State = StateStop
	}

	st.Elapsed, _ = parseSeconds(attrs["elapsed"])
	st.Duration, _ = parseSeconds(attrs["duration"])

	// Older servers only report "time" as elapsed:total.
	if elapsed, total, ok := strings.Cut(attrs["time"], ":"); ok {
		if st.Elapsed == 0 {
			st.Elapsed, _ = parseSeconds(elapsed)
		}
		if st.Duration == 0 {
			st.Duration, _ = parseSeconds(total)
		}
	}
	return st
}

func parseEntries(list []gompd.Attrs) []Entry {
	entries := make([]Entry, 0, len(list))
	for _, attrs := range list {
		switch {
		case attrs["directory"] != "":
			entries = append(entries, Entry{Kind: EntryDirectory, Path: attrs["directory"]})
		case attrs["playlist"] != "":
			entries = append(entries, Entry{Kind: EntryPlaylist, Path: attrs["playlist"]})
		case attrs["file"] != "":
			entries = append(entries, Entry{Kind: EntryFile, Path: attrs["file"]})
		}
	}
	return entries
}

func parseSeconds(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return time.Duration(math.Round(f * float64(time.Second))), true
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
