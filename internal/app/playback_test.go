package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tides/internal/mpd"
	"github.com/llehouerou/tides/internal/seek"
)

func TestPassThroughCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  interface{ Run(*Env) error }
		want string
	}{
		{"play resumes", &PlayCmd{}, "play -1"},
		{"play position", &PlayCmd{Position: 3}, "play 2"},
		{"pause", &PauseCmd{}, "pause true"},
		{"toggle", &ToggleCmd{}, "toggle"},
		{"stop", &StopCmd{}, "stop"},
		{"next", &NextCmd{}, "next"},
		{"prev", &PrevCmd{}, "previous"},
		{"clear", &ClearCmd{}, "clear"},
		{"add trims slash", &AddCmd{Path: "Jazz/Coltrane/"}, "add Jazz/Coltrane"},
		{"load", &LoadCmd{Path: "favourites"}, "load favourites"},
		{"mv is 1-based", &MvCmd{From: 3, To: 1}, "move 2 0"},
		{"del is 1-based", &DelCmd{Index: 4}, "delete 3"},
		{"update", &UpdateCmd{Path: "New/"}, "update New"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			env, _ := newTestEnv(t, client)

			require.NoError(t, tt.cmd.Run(env))
			assert.Equal(t, []string{tt.want}, client.calls)
		})
	}
}

func TestQueueEdits_RejectZero(t *testing.T) {
	client := &fakeClient{}
	env, _ := newTestEnv(t, client)

	require.Error(t, (&MvCmd{From: 0, To: 1}).Run(env))
	require.Error(t, (&DelCmd{Index: 0}).Run(env))
	require.Error(t, (&PlayCmd{Position: -2}).Run(env))
	assert.Empty(t, client.calls)
}

func TestCommandErrorPropagates(t *testing.T) {
	sentinel := errors.New("ACK [50@0] {add} No such directory")
	client := &fakeClient{err: sentinel}
	env, _ := newTestEnv(t, client)

	require.ErrorIs(t, (&AddCmd{Path: "nope"}).Run(env), sentinel)
}

func TestSeek(t *testing.T) {
	tests := []struct {
		pos  string
		want string
	}{
		{"1:30", "seekid 5 90"},
		{"+10", "seekid 5 52"},
		{"-10", "seekid 5 32"},
		{"-5:00", "seekid 5 0"},
	}

	for _, tt := range tests {
		t.Run(tt.pos, func(t *testing.T) {
			client := &fakeClient{
				song:   song("a.flac", 5),
				status: mpd.Status{State: mpd.StatePlay, Elapsed: 42*time.Second + 500*time.Millisecond},
			}
			env, _ := newTestEnv(t, client)

			require.NoError(t, (&SeekCmd{Position: []string{tt.pos}}).Run(env))
			assert.Equal(t, []string{tt.want}, client.calls)
		})
	}
}

func TestSeek_NotPlaying(t *testing.T) {
	client := &fakeClient{}
	env, out := newTestEnv(t, client)

	err := (&SeekCmd{Position: []string{"10"}}).Run(env)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Equal(t, "Not playing.\n", out.String())
	assert.Empty(t, client.calls)
}

func TestSeek_InvalidPosition(t *testing.T) {
	client := &fakeClient{song: song("a.flac", 1)}
	env, _ := newTestEnv(t, client)

	require.ErrorIs(t, (&SeekCmd{Position: []string{"1:x"}}).Run(env), seek.ErrNotInteger)
	require.Error(t, (&SeekCmd{}).Run(env))
	assert.Empty(t, client.calls)
}
