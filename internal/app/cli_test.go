package app

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tides/internal/errmsg"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := NewParser(&cli, kong.Exit(func(int) { t.Fatalf("unexpected exit parsing %q", args) }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestParse_DefaultsToCurrent(t *testing.T) {
	_, kctx := parse(t)
	assert.Equal(t, "current", kctx.Command())

	cli, kctx := parse(t, "-p")
	assert.Equal(t, "current", kctx.Command())
	assert.True(t, cli.Current.Plain)
}

func TestParse_Globals(t *testing.T) {
	cli, kctx := parse(t, "-H", "studio", "-v", "status", "--plain")
	assert.Equal(t, "status", kctx.Command())
	assert.Equal(t, "studio", cli.Host)
	assert.True(t, cli.Verbose)
	assert.True(t, cli.Status.Plain)
}

func TestParse_SeekTakesNegativePositions(t *testing.T) {
	for _, pos := range []string{"-10", "+1:30", "2:00"} {
		cli, _ := parse(t, "seek", pos)
		assert.Equal(t, []string{pos}, cli.Seek.Position)
	}
}

func TestParse_QueueEdits(t *testing.T) {
	cli, kctx := parse(t, "mv", "3", "1")
	assert.Equal(t, "mv <from> <to>", kctx.Command())
	assert.Equal(t, 3, cli.Mv.From)
	assert.Equal(t, 1, cli.Mv.To)

	cli, _ = parse(t, "play")
	assert.Equal(t, 0, cli.Play.Position)
}

func TestCommands(t *testing.T) {
	var cli CLI
	parser, err := NewParser(&cli)
	require.NoError(t, err)

	names := Commands(parser)
	for _, want := range []string{"current", "seek", "readcomments", "albumart", "tab"} {
		assert.Contains(t, names, want)
	}
	assert.NotContains(t, names, "lyrics")
}

func TestSplitExternal(t *testing.T) {
	commands := []string{"current", "status", "seek"}

	tests := []struct {
		name    string
		args    []string
		wantIdx int
		wantOK  bool
	}{
		{"no args", nil, 0, false},
		{"builtin", []string{"status"}, 0, false},
		{"external", []string{"lyrics"}, 0, true},
		{"external with args", []string{"lyrics", "--sync"}, 0, true},
		{"after host flag", []string{"-H", "studio", "lyrics"}, 2, true},
		{"after long host", []string{"--host", "status", "lyrics"}, 2, true},
		{"after inline host", []string{"--host=studio", "-v", "lyrics"}, 2, true},
		{"after config", []string{"--config", "x.toml", "status"}, 2, false},
		{"flags only", []string{"-v", "--plain"}, 0, false},
		{"double dash", []string{"--", "lyrics"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := SplitExternal(tt.args, commands)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

func TestCommandOp(t *testing.T) {
	assert.Equal(t, errmsg.OpQueueMove, CommandOp("mv <from> <to>"))
	assert.Equal(t, errmsg.OpSongLoad, CommandOp("current"))
	assert.Equal(t, errmsg.OpRender, CommandOp("unknown"))

	// every built-in command has an operation
	var cli CLI
	parser, err := NewParser(&cli)
	require.NoError(t, err)
	for _, name := range Commands(parser) {
		assert.Contains(t, commandOps, name)
	}
}
