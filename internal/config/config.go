// Package config loads tides settings from TOML files.
package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName = "tides"

	// DefaultHost is used when neither the environment, the command line nor
	// the config file names a server.
	DefaultHost = "127.0.0.1"

	defaultWidth      = 50
	defaultColors     = 256
	defaultMaxAgeDays = 30
	defaultMaxSize    = 64 * humanize.MByte
)

// DefaultTags are the tag sections shown for the current song.
var DefaultTags = []string{
	"Composer",
	"Work",
	"Conductor",
	"Ensemble",
	"Performer",
	"Location",
	"Label",
}

type Config struct {
	GroupedQueue bool              `koanf:"grouped_queue"` // group queue output by default
	MaxWidth     int               `koanf:"width"`         // max text/image width in columns (default: 50)
	Hosts        map[string]string `koanf:"hosts"`         // label -> "host[:port]" or socket path

	Tags     TagsConfig     `koanf:"tags"`
	AlbumArt AlbumArtConfig `koanf:"albumart"`
	Cache    CacheConfig    `koanf:"cache"`
}

// TagsConfig selects and labels the tag sections of the current song view.
type TagsConfig struct {
	Enabled []string          `koanf:"enabled"`
	Labels  map[string]string `koanf:"labels"` // TAG -> display label
}

// AlbumArtConfig holds album art rendering settings.
type AlbumArtConfig struct {
	Protocol string `koanf:"protocol"` // "auto", "sixel" or "none" (default: "auto")
	Colors   int    `koanf:"colors"`   // palette size 1-256 (default: 256)
	Dither   *bool  `koanf:"dither"`   // Floyd-Steinberg dithering (default: true)
}

// CacheConfig holds the rendered album art cache settings.
type CacheConfig struct {
	Dir        string `koanf:"dir"`          // default: $XDG_CACHE_HOME/tides/albumart
	MaxAgeDays int    `koanf:"max_age_days"` // default: 30
	MaxSize    string `koanf:"max_size"`     // e.g. "64MB" (default: 64MB)
}

// Tag is an enabled tag section with its display label.
type Tag struct {
	Name  string
	Label string
}

// CacheSettings is CacheConfig with defaults applied and units resolved.
type CacheSettings struct {
	Dir     string
	MaxAge  time.Duration
	MaxSize int64
}

// Load reads the config files in priority order. A non-empty explicit path
// is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, err
		}
		paths = append(paths, explicit)
	}
	return loadFrom(paths)
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		slog.Debug("loading config", "path", path)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Cache.Dir != "" {
		cfg.Cache.Dir = expandPath(cfg.Cache.Dir)
	}
	for label, host := range cfg.Hosts {
		if strings.HasPrefix(host, "~") {
			cfg.Hosts[label] = expandPath(host)
		}
	}

	return cfg, nil
}

// Default returns a config with nothing set; accessors supply defaults.
func Default() *Config {
	return &Config{}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_DIRS/tides/config.toml, lowest priority first
	dirs := slices.Clone(xdg.ConfigDirs)
	slices.Reverse(dirs)
	for _, dir := range dirs {
		paths = append(paths, filepath.Join(dir, appName, "config.toml"))
	}

	// 2. ~/.config/tides/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 3. ./tides.toml (pwd, highest priority)
	paths = append(paths, appName+".toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// TextWidth returns the maximum output width in columns.
func (c *Config) TextWidth() int {
	if c.MaxWidth <= 0 {
		return defaultWidth
	}
	return c.MaxWidth
}

// EnabledTags returns the tag sections to display, with labels resolved.
// Labels are matched case-insensitively; a missing label is the tag name.
func (c *Config) EnabledTags() []Tag {
	names := c.Tags.Enabled
	if len(names) == 0 {
		names = DefaultTags
	}

	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		label := name
		for k, v := range c.Tags.Labels {
			if strings.EqualFold(k, name) {
				label = v
				break
			}
		}
		tags = append(tags, Tag{Name: name, Label: label})
	}
	return tags
}

// GetAlbumArtConfig returns the album art configuration with defaults applied.
func (c *Config) GetAlbumArtConfig() AlbumArtConfig {
	cfg := c.AlbumArt

	switch strings.ToLower(cfg.Protocol) {
	case "sixel", "none":
		cfg.Protocol = strings.ToLower(cfg.Protocol)
	default:
		cfg.Protocol = "auto"
	}
	if cfg.Colors <= 0 || cfg.Colors > defaultColors {
		cfg.Colors = defaultColors
	}
	if cfg.Dither == nil {
		dither := true
		cfg.Dither = &dither
	}

	return cfg
}

// GetCacheConfig returns the cache settings with defaults applied.
func (c *Config) GetCacheConfig() CacheSettings {
	cfg := CacheSettings{
		Dir:    c.Cache.Dir,
		MaxAge: time.Duration(c.Cache.MaxAgeDays) * 24 * time.Hour,
	}

	if cfg.Dir == "" {
		cfg.Dir = filepath.Join(xdg.CacheHome, appName, "albumart")
	}
	if c.Cache.MaxAgeDays <= 0 {
		cfg.MaxAge = defaultMaxAgeDays * 24 * time.Hour
	}

	cfg.MaxSize = defaultMaxSize
	if c.Cache.MaxSize != "" {
		size, err := humanize.ParseBytes(c.Cache.MaxSize)
		if err != nil {
			slog.Warn("invalid cache max_size, using default",
				"value", c.Cache.MaxSize, "default", humanize.Bytes(defaultMaxSize), "error", err)
		} else {
			cfg.MaxSize = int64(size)
		}
	}

	return cfg
}

// ResolveHost picks the MPD server address. The MPD_HOST value (env) wins
// over the --host flag, which wins over the configured hosts. Labels
// defined under [hosts] resolve to their address.
func (c *Config) ResolveHost(env, flag string) string {
	switch {
	case env != "":
		slog.Debug("using MPD_HOST", "host", env)
		return c.lookupHost(env)
	case flag != "":
		return c.lookupHost(flag)
	}
	return c.defaultHost()
}

func (c *Config) lookupHost(host string) string {
	if addr, ok := c.Hosts[host]; ok {
		slog.Debug("host label resolved", "label", host, "address", addr)
		return addr
	}
	return host
}

func (c *Config) defaultHost() string {
	if len(c.Hosts) == 0 {
		return DefaultHost
	}
	if addr, ok := c.Hosts["default"]; ok {
		return addr
	}
	labels := slices.Sorted(maps.Keys(c.Hosts))
	slog.Debug("no default host configured", "using", labels[0])
	return c.Hosts[labels[0]]
}
