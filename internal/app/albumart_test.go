package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tides/internal/albumart"
)

func TestAlbumArt_CurrentSongToStdout(t *testing.T) {
	client := &fakeClient{song: song("album/a.flac", 1), cover: []byte("jpeg bytes")}
	env, out := newTestEnv(t, client)

	require.NoError(t, (&AlbumArtCmd{Output: "-"}).Run(env))
	assert.Equal(t, "jpeg bytes", out.String())
	assert.Equal(t, []string{"albumart album/a.flac"}, client.calls)
}

func TestAlbumArt_NamedSongToFile(t *testing.T) {
	client := &fakeClient{cover: []byte("png bytes")}
	env, _ := newTestEnv(t, client)
	output := filepath.Join(t.TempDir(), "cover.png")

	require.NoError(t, (&AlbumArtCmd{Song: "other/b.flac", Output: output}).Run(env))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
	assert.Equal(t, []string{"albumart other/b.flac"}, client.calls)
}

func TestAlbumArt_NoArt(t *testing.T) {
	client := &fakeClient{song: song("a.flac", 1)}
	env, out := newTestEnv(t, client)

	err := (&AlbumArtCmd{Output: "-"}).Run(env)
	require.ErrorIs(t, err, albumart.ErrNoArt)
	assert.Empty(t, out.String())
}

func TestAlbumArt_NotPlaying(t *testing.T) {
	env, out := newTestEnv(t, &fakeClient{})

	err := (&AlbumArtCmd{Output: "-"}).Run(env)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Equal(t, "Not playing.\n", out.String())
}
