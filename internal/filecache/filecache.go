// Package filecache stores generated files on disk, keyed by content
// parameters. Payloads are zstd-compressed and tracked in a SQLite index
// so the cache can be pruned by age and total size.
package filecache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"

	"github.com/llehouerou/tides/internal/db"
)

const (
	indexName  = "index.db"
	entryExt   = ".zst"
	tempSuffix = ".tmp"
)

// Options bound the size of the cache. Zero values disable the bound.
type Options struct {
	MaxAge  time.Duration
	MaxSize int64
}

// Cache is a directory of compressed entries plus their index.
type Cache struct {
	dir  string
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// Open opens the cache in dir, creating the directory and index as needed.
func Open(dir string, opts Options) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	conn, err := db.Open(filepath.Join(dir, indexName))
	if err != nil {
		return nil, fmt.Errorf("open cache index: %w", err)
	}

	c := &Cache{dir: dir, db: conn, opts: opts, now: time.Now}
	if err := c.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init cache index: %w", err)
	}
	return c, nil
}

func (c *Cache) initSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			size INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			accessed_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_accessed ON entries(accessed_at);
	`)
	return err
}

// Close releases the index.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Key derives an entry key from parts. Equal parts give equal keys.
func Key(parts ...any) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprint(p)
	}
	hash := sha256.Sum256([]byte(strings.Join(strs, ":")))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+entryExt)
}

// Fetch returns a reader over the entry for key. When the entry is missing,
// or refresh is set, generate is called to produce it first. A failed
// generation leaves no entry behind.
func (c *Cache) Fetch(key string, refresh bool, generate func(io.Writer) error) (io.ReadCloser, error) {
	if !refresh {
		rc, err := c.open(key)
		if err == nil {
			slog.Debug("cache hit", "key", key)
			return rc, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	slog.Debug("cache miss", "key", key, "refresh", refresh)
	if err := c.store(key, generate); err != nil {
		return nil, err
	}

	if err := c.Prune(); err != nil {
		slog.Warn("prune cache", "error", err)
	}

	return c.open(key)
}

// open opens an indexed entry and bumps its access time. Entries whose file
// is gone are dropped from the index and reported as fs.ErrNotExist.
func (c *Cache) open(key string) (io.ReadCloser, error) {
	var size int64
	err := c.db.QueryRow(`SELECT size FROM entries WHERE key = ?`, key).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fs.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("query cache index: %w", err)
	}

	f, err := os.Open(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		if _, derr := c.db.Exec(`DELETE FROM entries WHERE key = ?`, key); derr != nil {
			return nil, fmt.Errorf("drop missing entry: %w", derr)
		}
		return nil, fs.ErrNotExist
	}
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read cache entry: %w", err)
	}

	if _, err := c.db.Exec(`UPDATE entries SET accessed_at = ? WHERE key = ?`,
		c.now().UnixNano(), key); err != nil {
		slog.Warn("touch cache entry", "key", key, "error", err)
	}

	return &entryReader{dec: dec, f: f}, nil
}

// store runs generate into a temporary file and moves it into place.
func (c *Cache) store(key string, generate func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(c.dir, key+"-*"+tempSuffix)
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	enc, err := zstd.NewWriter(tmp)
	if err != nil {
		return fmt.Errorf("compress cache entry: %w", err)
	}
	if err := generate(enc); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("compress cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	info, err := os.Stat(tmp.Name())
	if err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}

	now := c.now().UnixNano()
	_, err = c.db.Exec(`
		INSERT INTO entries (key, size, created_at, accessed_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			size = excluded.size,
			created_at = excluded.created_at,
			accessed_at = excluded.accessed_at
	`, key, info.Size(), now, now)
	if err != nil {
		_ = os.Remove(c.path(key)) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("index cache entry: %w", err)
	}

	slog.Debug("cache store", "key", key, "size", humanize.Bytes(uint64(info.Size())))
	return nil
}

type entry struct {
	key  string
	size int64
}

// Prune drops entries older than MaxAge, then the least recently accessed
// entries until the total size fits MaxSize. The most recently accessed
// entry is always kept.
func (c *Cache) Prune() error {
	var doomed []string

	err := db.WithTx(c.db, func(tx *sql.Tx) error {
		rows, err := tx.Query(`SELECT key, size FROM entries ORDER BY accessed_at DESC, key`)
		if err != nil {
			return err
		}
		var entries []entry
		for rows.Next() {
			var e entry
			if err := rows.Scan(&e.key, &e.size); err != nil {
				rows.Close()
				return err
			}
			entries = append(entries, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		expired := map[string]bool{}
		if c.opts.MaxAge > 0 {
			cutoff := c.now().Add(-c.opts.MaxAge).UnixNano()
			rows, err := tx.Query(`SELECT key FROM entries WHERE accessed_at < ?`, cutoff)
			if err != nil {
				return err
			}
			for rows.Next() {
				var key string
				if err := rows.Scan(&key); err != nil {
					rows.Close()
					return err
				}
				expired[key] = true
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return err
			}
		}

		var total int64
		full := false
		for i, e := range entries {
			if c.opts.MaxSize > 0 && i > 0 && total+e.size > c.opts.MaxSize {
				full = true
			}
			if !full && !expired[e.key] && c.exists(e.key) {
				total += e.size
				continue
			}
			doomed = append(doomed, e.key)
			if _, err := tx.Exec(`DELETE FROM entries WHERE key = ?`, e.key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("prune cache index: %w", err)
	}

	for _, key := range doomed {
		if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("remove cache entry", "key", key, "error", err)
		}
	}
	if len(doomed) > 0 {
		slog.Debug("pruned cache", "entries", len(doomed))
	}
	return nil
}

func (c *Cache) exists(key string) bool {
	_, err := os.Stat(c.path(key))
	return err == nil
}

// entryReader decompresses a cache entry and closes the file with it.
type entryReader struct {
	dec *zstd.Decoder
	f   *os.File
}

func (r *entryReader) Read(p []byte) (int, error) {
	return r.dec.Read(p)
}

func (r *entryReader) Close() error {
	r.dec.Close()
	return r.f.Close()
}
