// Package app implements the tides commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/llehouerou/tides/internal/albumart"
	"github.com/llehouerou/tides/internal/config"
	"github.com/llehouerou/tides/internal/filecache"
	"github.com/llehouerou/tides/internal/mpd"
	"github.com/llehouerou/tides/internal/render"
)

// Client is the MPD surface used by commands.
type Client interface {
	albumart.Source

	CurrentSong() (mpd.Song, error)
	Status() (mpd.Status, error)
	Queue() ([]mpd.Song, error)

	Play(pos int) error
	Pause(pause bool) error
	Toggle() error
	Stop() error
	Next() error
	Previous() error
	SeekID(id, seconds int) error

	Clear() error
	Add(uri string) error
	Load(name string) error
	Move(from, to int) error
	Delete(pos int) error

	Update(uri string) (int, error)
	ListInfo(uri string) ([]mpd.Entry, error)
	Search(query ...string) ([]mpd.Song, error)
	List(tag string, query ...string) ([]string, error)
	ReadComments(uri string) ([]mpd.Tag, error)
}

// Compile-time assertion that the MPD client satisfies Client.
var _ Client = (*mpd.Client)(nil)

// Env is what a command runs against.
type Env struct {
	Ctx    context.Context
	Client Client
	Config *config.Config
	Out    io.Writer
	Color  bool
	Window albumart.WindowSize

	// OpenCache opens the album art cache. Nil disables caching.
	OpenCache func() (*filecache.Cache, error)
}

// printer returns a printer for this command's output mode.
func (e *Env) printer(plain bool) *render.Printer {
	return render.NewPrinter(e.Out, plain, e.Color, e.Window.TextWidth(e.Config.TextWidth()))
}

// ExitError ends the program with Code without printing a message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

const notPlaying = "Not playing."

// currentSong returns the current song. With no current song it prints
// "Not playing." and returns an ExitError.
func currentSong(env *Env) (mpd.Song, error) {
	song, err := env.Client.CurrentSong()
	if errors.Is(err, mpd.ErrNoSong) {
		if _, werr := io.WriteString(env.Out, notPlaying+"\n"); werr != nil {
			return mpd.Song{}, werr
		}
		return mpd.Song{}, &ExitError{Code: 1}
	}
	return song, err
}

// trimPath drops trailing slashes that shell completion leaves on
// directories.
func trimPath(path string) string {
	return strings.TrimRight(path, "/")
}

// songTitle is "artist - title" when both are known, else the file.
func songTitle(s mpd.Song) string {
	artist, title := s.First("Artist"), s.First("Title")
	if artist != "" && title != "" {
		return artist + " - " + title
	}
	return s.File
}

// rowKey formats a table key: "label:" when styled, "label" when plain.
func rowKey(label string, plain bool) string {
	if plain {
		return strings.ToLower(strings.ReplaceAll(label, " ", "_"))
	}
	return label + ":"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
