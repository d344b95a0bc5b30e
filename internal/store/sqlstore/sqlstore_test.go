package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectSQL = "SELECT data FROM kv WHERE name = ?"
	upsertSQL = "INSERT INTO kv (name,data) VALUES (?,?) ON CONFLICT(name) DO UPDATE SET data = excluded.data"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := New(sqlx.NewDb(db, "sqlite3"), "kv")
	require.NoError(t, err)
	return s, mock
}

func TestNew_InvalidTable(t *testing.T) {
	_, err := New(nil, "kv; DROP TABLE users")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv (name TEXT PRIMARY KEY, data TEXT NOT NULL)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
			WithArgs("todos").
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(`[{"title":"a"}]`))

		v, ok, err := s.Get(ctx, "todos")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"title":"a"}]`, v)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
			WithArgs("projects").
			WillReturnRows(sqlmock.NewRows([]string{"data"}))

		v, ok, err := s.Get(ctx, "projects")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectSQL)).
			WithArgs("todos").
			WillReturnError(errors.New("disk I/O error"))

		_, _, err := s.Get(ctx, "todos")
		assert.ErrorContains(t, err, "disk I/O error")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
			WithArgs("todos", "[]").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, s.Set(ctx, "todos", "[]"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
			WithArgs("todos", "[]").
			WillReturnError(errors.New("database is locked"))

		assert.ErrorContains(t, s.Set(ctx, "todos", "[]"), "database is locked")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "todo.db")

	s, err := Open(ctx, path, "kv")
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "todos", "[1]"))
	require.NoError(t, s.Set(ctx, "todos", "[2]"))

	v, ok, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", v)
}
