package app

import (
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/llehouerou/tides/internal/errmsg"
)

// Globals are the flags accepted before any command.
type Globals struct {
	Host    string `short:"H" help:"MPD server: address, socket path or a label from the [hosts] config section."`
	Verbose bool   `short:"v" help:"Enable debug logging."`
	Config  string `help:"Load an additional config file." type:"path"`
}

// CLI is the command line grammar.
type CLI struct {
	Globals

	Current      CurrentCmd      `cmd:"" default:"withargs" help:"Display the currently playing song."`
	Play         PlayCmd         `cmd:"" help:"Start playback."`
	Pause        PauseCmd        `cmd:"" help:"Pause playback."`
	Toggle       ToggleCmd       `cmd:"" help:"Toggle between play and pause."`
	Stop         StopCmd         `cmd:"" help:"Stop playback."`
	Next         NextCmd         `cmd:"" help:"Skip to the next song in the queue."`
	Prev         PrevCmd         `cmd:"" help:"Go back to the previous song in the queue."`
	Seek         SeekCmd         `cmd:"" passthrough:"" help:"Set the playback position of the current song."`
	Queue        QueueCmd        `cmd:"" help:"Display the queue."`
	Clear        ClearCmd        `cmd:"" help:"Clear the queue."`
	Add          AddCmd          `cmd:"" help:"Add items under path to the queue."`
	Load         LoadCmd         `cmd:"" help:"Load a playlist into the queue."`
	Mv           MvCmd           `cmd:"" help:"Move a song in the queue."`
	Del          DelCmd          `cmd:"" help:"Remove a song from the queue."`
	Ls           LsCmd           `cmd:"" help:"List items in path."`
	Search       SearchCmd       `cmd:"" help:"Search the MPD database."`
	List         ListCmd         `cmd:"" help:"List all values of a tag among matching songs."`
	Readcomments ReadCommentsCmd `cmd:"" help:"Read raw metadata tags of a file."`
	Update       UpdateCmd       `cmd:"" help:"Update the MPD database."`
	Status       StatusCmd       `cmd:"" help:"Display MPD status."`
	Albumart     AlbumArtCmd     `cmd:"" help:"Download the album art of a song."`
	Tab          TabCmd          `cmd:"" hidden:"" help:"List paths starting with path, for shell completion."`
}

// Name is the program name.
const Name = "tides"

// NewParser returns the kong parser for cli.
func NewParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name(Name),
		kong.Description("A command line client for the Music Player Daemon.\n\n" +
			"Unknown commands run an executable named tides-<command> from $PATH, " +
			"~/.config/tides/bin or /etc/tides/bin."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

// Commands returns the names of the built-in commands.
func Commands(parser *kong.Kong) []string {
	var names []string
	for _, node := range parser.Model.Children {
		names = append(names, node.Name)
		names = append(names, node.Aliases...)
	}
	return names
}

// SplitExternal detects an external subcommand. It returns the index of the
// first argument that is neither a global flag nor its value when that
// argument is not a built-in command.
func SplitExternal(args, commands []string) (int, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return 0, false
		case arg == "-H" || arg == "--host" || arg == "--config":
			i++
		case strings.HasPrefix(arg, "-"):
			// --host=x, -Hx, -v, --help and friends
		default:
			return i, !slices.Contains(commands, arg)
		}
	}
	return 0, false
}

var commandOps = map[string]errmsg.Op{
	"current":      errmsg.OpSongLoad,
	"play":         errmsg.OpPlaybackStart,
	"pause":        errmsg.OpPlaybackControl,
	"toggle":       errmsg.OpPlaybackControl,
	"stop":         errmsg.OpPlaybackControl,
	"next":         errmsg.OpPlaybackControl,
	"prev":         errmsg.OpPlaybackControl,
	"seek":         errmsg.OpPlaybackSeek,
	"queue":        errmsg.OpQueueLoad,
	"clear":        errmsg.OpQueueClear,
	"add":          errmsg.OpQueueAdd,
	"load":         errmsg.OpQueueAdd,
	"mv":           errmsg.OpQueueMove,
	"del":          errmsg.OpQueueDelete,
	"ls":           errmsg.OpDatabaseList,
	"tab":          errmsg.OpDatabaseList,
	"search":       errmsg.OpDatabaseSearch,
	"list":         errmsg.OpDatabaseList,
	"readcomments": errmsg.OpReadComments,
	"update":       errmsg.OpDatabaseUpdate,
	"status":       errmsg.OpStatusLoad,
	"albumart":     errmsg.OpAlbumArtFetch,
}

// CommandOp names the operation a command performs, for error messages.
// command is a kong command path such as "mv <from> <to>".
func CommandOp(command string) errmsg.Op {
	name, _, _ := strings.Cut(command, " ")
	if op, ok := commandOps[name]; ok {
		return op
	}
	return errmsg.OpRender
}
