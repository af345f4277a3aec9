// Package subcommand finds and runs external "tides-<name>" executables.
package subcommand

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/sys/unix"
)

// Prefix is prepended to a subcommand name to form the executable name.
const Prefix = "tides-"

// Dirs returns the directories searched after $PATH.
func Dirs() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "tides", "bin"),
		filepath.Join("/etc", "tides", "bin"),
	}
}

// Find returns the path of the executable for subcommand name, searching
// $PATH and then extra.
func Find(name string, extra []string) (string, bool) {
	if name == "" || filepath.Base(name) != name {
		return "", false
	}

	bin := Prefix + name
	dirs := append(filepath.SplitList(os.Getenv("PATH")), extra...)
	slog.Debug("searching subcommand", "name", bin, "dirs", dirs)

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, bin)
		if isExecutable(path) {
			return path, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

// Run executes the subcommand at path with args, passing the resolved
// server address in MPD_HOST. Standard streams are inherited.
func Run(ctx context.Context, path string, args []string, mpdHost string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "MPD_HOST="+mpdHost)

	slog.Debug("running subcommand", "path", path, "args", args, "host", mpdHost)
	return cmd.Run()
}
