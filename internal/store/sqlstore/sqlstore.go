package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store keeps key-value pairs in a two-column SQL table.
type Store struct {
	db    *sqlx.DB
	table string
	qb    sq.StatementBuilderType
}

// New wraps an open database. The table must already exist; see Migrate.
func New(db *sqlx.DB, table string) (*Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Store{
		db:    db,
		table: table,
		qb:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Open opens (or creates) the SQLite database at path and ensures the table.
func Open(ctx context.Context, path, table string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s, err := New(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, data TEXT NOT NULL)", s.table)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.qb.Select("data").From(s.table).Where(sq.Eq{"name": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select: %w", err)
	}

	var data string
	if err := s.db.GetContext(ctx, &data, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query, args, err := s.qb.Insert(s.table).
		Columns("name", "data").
		Values(key, value).
		Suffix("ON CONFLICT(name) DO UPDATE SET data = excluded.data").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
