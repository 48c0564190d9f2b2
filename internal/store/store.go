// Package store caches solved searches in BadgerDB, keyed by a digest of the
// grid contents and the endpoints.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/abenet15/maze"
)

const keyPrefix = "path/"

// Config describes where and how the cache is stored.
type Config struct {
	// Dir is the directory for BadgerDB files. Ignored when InMemory is true.
	Dir string

	// InMemory keeps everything in memory. Useful for tests.
	InMemory bool

	// TTL expires entries after the given duration. Zero keeps them forever.
	TTL time.Duration

	// Logger receives BadgerDB's own log output. Nil disables it.
	Logger *slog.Logger
}

// Entry is a cached search outcome.
type Entry struct {
	Found    bool      `json:"found"`
	Path     maze.Path `json:"path,omitempty"`
	Cost     int       `json:"cost"`
	Expanded int       `json:"expanded"`
	SolvedAt time.Time `json:"solved_at"`
}

// EntryFromResult records r.
func EntryFromResult(r maze.Result) Entry {
	return Entry{
		Found:    r.Found,
		Path:     r.Path,
		Cost:     r.Cost,
		Expanded: r.Expanded,
		SolvedAt: time.Now().UTC(),
	}
}

// Result converts e back to a search result.
func (e Entry) Result() maze.Result {
	return maze.Result{Path: e.Path, Found: e.Found, Cost: e.Cost, Expanded: e.Expanded}
}

// Store is a BadgerDB-backed solution cache. Safe for concurrent use.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens or creates the cache.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, errors.New("cache directory is required for a persistent cache")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Store{db: db, ttl: cfg.TTL}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for a search. heuristic names the heuristic the
// result was computed with, since it decides the expansion count and which of
// several shortest paths is returned.
func Key(grid *maze.Grid, start, goal maze.Cell, heuristic string) string {
	h := sha256.New()
	h.Write([]byte(heuristic))
	h.Write([]byte{0})
	var buf [8]byte
	write := func(v int) {
		binary.BigEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	write(grid.Size())
	for _, row := range grid.Rows() {
		for _, v := range row {
			write(v)
		}
	}
	write(start.Row)
	write(start.Col)
	write(goal.Row)
	write(goal.Col)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the entry stored under key, if any.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}
	var entry Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read cache entry: %w", err)
	}
	return entry, true, nil
}

// Put stores entry under key.
func (s *Store) Put(ctx context.Context, key string, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(keyPrefix+key), data)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Solver wraps a Pathfinder with the cache.
type Solver struct {
	pathfinder *maze.Pathfinder
	store      *Store
	logger     *slog.Logger
}

// NewSolver returns a Solver. A nil store disables caching.
func NewSolver(pathfinder *maze.Pathfinder, store *Store, logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{pathfinder: pathfinder, store: store, logger: logger}
}

// Solve returns a cached result when available and otherwise runs the search
// and records it. The second return value reports a cache hit. Cache
// failures are logged and never fail the search.
func (s *Solver) Solve(ctx context.Context, grid *maze.Grid, start, goal maze.Cell) (maze.Result, bool, error) {
	var key string
	if s.store != nil && grid != nil {
		key = Key(grid, start, goal, s.pathfinder.HeuristicName())
		entry, ok, err := s.store.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("cache lookup failed", "error", err)
		case ok:
			return entry.Result(), true, nil
		}
	}

	result, err := s.pathfinder.FindPath(ctx, grid, start, goal)
	if err != nil {
		return maze.Result{}, false, err
	}

	if key != "" {
		if err := s.store.Put(ctx, key, EntryFromResult(result)); err != nil {
			s.logger.Warn("cache write failed", "error", err)
		}
	}
	return result, false, nil
}
