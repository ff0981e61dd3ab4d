package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tasks_api/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// MemoryPath opens a private in-memory SQLite database.
	MemoryPath = ":memory:"
)

// ErrUnavailable is wrapped by every store call made after a failed Open.
var ErrUnavailable = errors.New("store unavailable")

type Options struct {
	Driver string
	// Path of the SQLite file, or MemoryPath.
	Path string
	// URL is the postgres DSN.
	URL string
}

// Store is the single shared database handle. It is created once at startup
// and handed to the repositories.
type Store struct {
	driver string
	db     *sql.DB
	pool   *pgxpool.Pool
	err    error
}

// Open connects to the configured backend and creates the users and tasks
// tables if they are missing. The returned Store is never nil: when opening
// fails it keeps the error and every later call reports ErrUnavailable.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s := &Store{driver: opts.Driver}
	if s.driver == "" {
		s.driver = DriverSQLite
	}

	logger.Debug("opening database", "driver", s.driver, "path", opts.Path)

	var err error
	switch s.driver {
	case DriverSQLite:
		err = s.openSQLite(opts.Path)
	case DriverPostgres:
		err = s.openPostgres(ctx, opts.URL)
	default:
		err = fmt.Errorf("unsupported driver %q", s.driver)
	}
	if err == nil {
		err = s.bootstrap(ctx)
	}
	if err != nil {
		s.fail(err)
		return s, err
	}

	logger.Info("database connected", "driver", s.driver)
	return s, nil
}

func (s *Store) openSQLite(path string) error {
	if path == "" {
		return errors.New("database path is empty")
	}

	// _time_format=sqlite stores timestamps as sortable text
	dsn := "file::memory:?_pragma=busy_timeout(5000)&_time_format=sqlite"
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// one shared connection; SQLite serializes writers anyway and an
	// in-memory database lives only as long as its connection
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *Store) openPostgres(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	s.pool = pool
	s.db = stdlib.OpenDBFromPool(pool)
	return nil
}

func (s *Store) bootstrap(ctx context.Context) error {
	stmts := sqliteSchema
	if s.driver == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

func (s *Store) fail(err error) {
	s.err = err
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

func (s *Store) Driver() string {
	return s.driver
}

// Conn returns the underlying handle, or an ErrUnavailable error.
func (s *Store) Conn() (*sql.DB, error) {
	if s.db == nil {
		if s.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, s.err)
		}
		return nil, ErrUnavailable
	}
	return s.db, nil
}

// Rebind rewrites ? placeholders into the backend's bind syntax.
func (s *Store) Rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.Conn()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.pool != nil {
		s.pool.Close()
	}
	s.db = nil
	return err
}

// Now is the creation timestamp written by inserts.
func Now() time.Time {
	return time.Now().UTC()
}
