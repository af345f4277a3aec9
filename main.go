// Command tides is a command line client for the Music Player Daemon.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/llehouerou/tides/internal/albumart"
	"github.com/llehouerou/tides/internal/app"
	"github.com/llehouerou/tides/internal/config"
	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/filecache"
	"github.com/llehouerou/tides/internal/mpd"
	"github.com/llehouerou/tides/internal/render"
	"github.com/llehouerou/tides/internal/subcommand"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli app.CLI
	parser, err := app.NewParser(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if i, ok := app.SplitExternal(args, app.Commands(parser)); ok {
		return runExternal(ctx, args[:i], args[i], args[i+1:])
	}

	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	setupLogging(cli.Verbose)
	cfg := loadConfig(cli.Config)

	addr := mpd.ParseAddress(cfg.ResolveHost(os.Getenv("MPD_HOST"), cli.Host), os.Getenv("MPD_PORT"))
	client, err := mpd.Dial(ctx, addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpConnect, addr.String(), err))
		return 1
	}
	defer client.Close()

	env := &app.Env{
		Ctx:    ctx,
		Client: client,
		Config: cfg,
		Out:    os.Stdout,
		Color:  render.ColorEnabled() && isatty.IsTerminal(os.Stdout.Fd()),
		Window: albumart.GetWindowSize(os.Stdout),
		OpenCache: func() (*filecache.Cache, error) {
			cc := cfg.GetCacheConfig()
			return filecache.Open(cc.Dir, filecache.Options{MaxAge: cc.MaxAge, MaxSize: cc.MaxSize})
		},
	}

	if err := kctx.Run(env); err != nil {
		return exitCode(app.CommandOp(kctx.Command()), err)
	}
	return 0
}

// runExternal runs tides-<name> with the remaining arguments. Global flags
// before the name still select the MPD host.
func runExternal(ctx context.Context, globalArgs []string, name string, args []string) int {
	var globals app.Globals
	parser, err := kong.New(&globals, kong.Name(app.Name))
	if err == nil {
		_, err = parser.Parse(globalArgs)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	setupLogging(globals.Verbose)
	cfg := loadConfig(globals.Config)

	path, ok := subcommand.Find(name, subcommand.Dirs())
	if !ok {
		fmt.Fprintf(os.Stderr, "%s is not a known subcommand.\n", name)
		return 1
	}

	host := cfg.ResolveHost(os.Getenv("MPD_HOST"), globals.Host)
	if err := subcommand.Run(ctx, path, args, host); err != nil {
		return exitCode(errmsg.OpSubcommand, err)
	}
	return 0
}

func exitCode(op errmsg.Op, err error) int {
	var exitErr *app.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var procErr *exec.ExitError
	if errors.As(err, &procErr) && procErr.ExitCode() > 0 {
		return procErr.ExitCode()
	}
	fmt.Fprintln(os.Stderr, errmsg.Format(op, err))
	return 1
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig loads the config files. A broken config is reported and the
// defaults are used.
func loadConfig(explicit string) *config.Config {
	cfg, err := config.Load(explicit)
	if err != nil {
		slog.Warn(errmsg.Format(errmsg.OpConfigLoad, err))
		return config.Default()
	}
	return cfg
}
