package app

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/llehouerou/tides/internal/albumart"
	"github.com/llehouerou/tides/internal/config"
	"github.com/llehouerou/tides/internal/mpd"
)

// fakeClient records calls and serves canned responses.
type fakeClient struct {
	song     *mpd.Song
	status   mpd.Status
	queue    []mpd.Song
	entries  map[string][]mpd.Entry
	songs    []mpd.Song
	values   []string
	comments []mpd.Tag
	cover    []byte
	err      error

	calls []string
}

func (f *fakeClient) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeClient) CurrentSong() (mpd.Song, error) {
	if f.song == nil {
		return mpd.Song{}, mpd.ErrNoSong
	}
	return *f.song, nil
}

func (f *fakeClient) Status() (mpd.Status, error)  { return f.status, nil }
func (f *fakeClient) Queue() ([]mpd.Song, error)   { return f.queue, f.err }
func (f *fakeClient) Play(pos int) error           { return f.record("play %d", pos) }
func (f *fakeClient) Pause(pause bool) error       { return f.record("pause %t", pause) }
func (f *fakeClient) Toggle() error                { return f.record("toggle") }
func (f *fakeClient) Stop() error                  { return f.record("stop") }
func (f *fakeClient) Next() error                  { return f.record("next") }
func (f *fakeClient) Previous() error              { return f.record("previous") }
func (f *fakeClient) SeekID(id, seconds int) error { return f.record("seekid %d %d", id, seconds) }
func (f *fakeClient) Clear() error                 { return f.record("clear") }
func (f *fakeClient) Add(uri string) error         { return f.record("add %s", uri) }
func (f *fakeClient) Load(name string) error       { return f.record("load %s", name) }
func (f *fakeClient) Move(from, to int) error      { return f.record("move %d %d", from, to) }
func (f *fakeClient) Delete(pos int) error         { return f.record("delete %d", pos) }

func (f *fakeClient) Update(uri string) (int, error) {
	return 7, f.record("update %s", uri)
}

func (f *fakeClient) ListInfo(uri string) ([]mpd.Entry, error) {
	_ = f.record("lsinfo %s", uri)
	return f.entries[uri], f.err
}

func (f *fakeClient) Search(query ...string) ([]mpd.Song, error) {
	_ = f.record("search %s", strings.Join(query, "|"))
	return f.songs, f.err
}

func (f *fakeClient) List(tag string, query ...string) ([]string, error) {
	_ = f.record("list %s %s", tag, strings.Join(query, "|"))
	return f.values, f.err
}

func (f *fakeClient) ReadComments(uri string) ([]mpd.Tag, error) {
	return f.comments, nil
}

func (f *fakeClient) AlbumArt(uri string) ([]byte, error) {
	_ = f.record("albumart %s", uri)
	return f.cover, nil
}

func (f *fakeClient) ReadPicture(uri string) ([]byte, error) {
	_ = f.record("readpicture %s", uri)
	return nil, nil
}

var _ Client = (*fakeClient)(nil)

func newTestEnv(t *testing.T, client *fakeClient) (*Env, *bytes.Buffer) {
	t.Helper()
	t.Setenv("TIDES_IMAGE_PROTOCOL", "none")

	var out bytes.Buffer
	return &Env{
		Ctx:    context.Background(),
		Client: client,
		Config: config.Default(),
		Out:    &out,
		Window: albumart.WindowSize{Cols: 80, Rows: 24, CellWidth: 8, CellHeight: 16},
	}, &out
}

func song(file string, id int, tags ...string) *mpd.Song {
	s := &mpd.Song{File: file, ID: id, Pos: id}
	for i := 0; i+1 < len(tags); i += 2 {
		s.Tags = append(s.Tags, mpd.Tag{Key: tags[i], Value: tags[i+1]})
	}
	return s
}
