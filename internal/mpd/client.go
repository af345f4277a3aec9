// Package mpd is a thin client for the Music Player Daemon protocol,
// returning typed songs, status and listings.
package mpd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// ErrNoSong is returned when an operation needs a current song and the
// player has none.
var ErrNoSong = errors.New("not playing")

// binaryLimit is the chunk size requested for binary responses (album art).
const binaryLimit = 4_000_000

// Client is a connection to an MPD server.
type Client struct {
	conn *gompd.Client

	binaryLimitSet bool
}

// Dial connects to addr, authenticating when it carries a password.
func Dial(ctx context.Context, addr Address) (*Client, error) {
	type result struct {
		conn *gompd.Client
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var r result
		if addr.Password != "" {
			r.conn, r.err = gompd.DialAuthenticated(addr.Network, addr.Addr, addr.Password)
		} else {
			r.conn, r.err = gompd.Dial(addr.Network, addr.Addr)
		}
		done <- r
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("connect to %s: %w", addr, r.err)
		}
		slog.Debug("connected", "address", addr.String())
		return &Client{conn: r.conn}, nil
	case <-ctx.Done():
		go func() {
			if r := <-done; r.conn != nil {
				r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// CurrentSong returns the current song, or ErrNoSong.
func (c *Client) CurrentSong() (Song, error) {
	attrs, err := c.conn.CurrentSong()
	if err != nil {
		return Song{}, err
	}
	if attrs["file"] == "" {
		return Song{}, ErrNoSong
	}
	return parseSong(attrs), nil
}

// Status returns the player status.
func (c *Client) Status() (Status, error) {
	attrs, err := c.conn.Status()
	if err != nil {
		return Status{}, err
	}
	return parseStatus(attrs), nil
}

// Queue returns the songs of the current playlist in order.
func (c *Client) Queue() ([]Song, error) {
	list, err := c.conn.PlaylistInfo(-1, -1)
	if err != nil {
		return nil, err
	}
	songs := make([]Song, 0, len(list))
	for _, attrs := range list {
		songs = append(songs, parseSong(attrs))
	}
	return songs, nil
}

// Play starts playback at queue position pos, or resumes when pos is -1.
func (c *Client) Play(pos int) error {
	return c.conn.Play(pos)
}

// Pause pauses or resumes playback.
func (c *Client) Pause(pause bool) error {
	return c.conn.Pause(pause)
}

// Toggle pauses when playing and plays otherwise.
func (c *Client) Toggle() error {
	st, err := c.Status()
	if err != nil {
		return err
	}
	switch st.State {
	case StatePlay:
		return c.conn.Pause(true)
	case StatePause:
		return c.conn.Pause(false)
	default:
		return c.conn.Play(-1)
	}
}

func (c *Client) Stop() error     { return c.conn.Stop() }
func (c *Client) Next() error     { return c.conn.Next() }
func (c *Client) Previous() error { return c.conn.Previous() }
func (c *Client) Clear() error    { return c.conn.Clear() }

// Add appends a file or directory to the queue.
func (c *Client) Add(uri string) error {
	return c.conn.Add(uri)
}

// Load appends a stored playlist to the queue.
func (c *Client) Load(name string) error {
	return c.conn.PlaylistLoad(name, -1, -1)
}

// Move moves the song at queue position from to position to.
func (c *Client) Move(from, to int) error {
	return c.conn.Move(from, from+1, to)
}

// Delete removes the song at queue position pos.
func (c *Client) Delete(pos int) error {
	return c.conn.Delete(pos, pos+1)
}

// Update starts a database update of uri ("" for everything) and returns
// the job id.
func (c *Client) Update(uri string) (int, error) {
	return c.conn.Update(uri)
}

// ListInfo lists the directory uri.
func (c *Client) ListInfo(uri string) ([]Entry, error) {
	list, err := c.conn.ListInfo(uri)
	if err != nil {
		return nil, err
	}
	return parseEntries(list), nil
}

// Search runs a database search. query is either one filter expression or
// tag/value pairs.
func (c *Client) Search(query ...string) ([]Song, error) {
	list, err := c.conn.Search(query...)
	if err != nil {
		return nil, err
	}
	songs := make([]Song, 0, len(list))
	for _, attrs := range list {
		songs = append(songs, parseSong(attrs))
	}
	return songs, nil
}

// List returns the unique values of tag among songs matching query.
func (c *Client) List(tag string, query ...string) ([]string, error) {
	return c.conn.List(append([]string{tag}, query...)...)
}

// ReadComments returns the raw tags stored in the file at uri, including
// those MPD does not index.
func (c *Client) ReadComments(uri string) ([]Tag, error) {
	attrs, err := c.conn.Command("readcomments %s", uri).Attrs()
	if err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, len(attrs))
	for _, t := range parseTags(attrs) {
		if strings.TrimSpace(t.Value) != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// AlbumArt returns the cover file stored next to the song at uri.
func (c *Client) AlbumArt(uri string) ([]byte, error) {
	c.raiseBinaryLimit()
	return c.conn.AlbumArt(uri)
}

// ReadPicture returns the picture embedded in the song at uri.
func (c *Client) ReadPicture(uri string) ([]byte, error) {
	c.raiseBinaryLimit()
	return c.conn.ReadPicture(uri)
}

// raiseBinaryLimit asks the server for larger binary chunks so covers
// arrive in few round trips. Servers older than 0.22.4 refuse; the default
// chunk size still works there.
func (c *Client) raiseBinaryLimit() {
	if c.binaryLimitSet {
		return
	}
	c.binaryLimitSet = true
	if err := c.conn.Command("binarylimit %d", binaryLimit).OK(); err != nil {
		slog.Debug("binarylimit not supported", "error", err)
	}
}

// SeekID seeks song id to the given offset in seconds.
func (c *Client) SeekID(id, seconds int) error {
	return c.conn.SeekID(id, seconds)
}
