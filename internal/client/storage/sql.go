package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/common"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/dbx"
)

// Dialect selects placeholder and upsert syntax for SQLStore.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

type queries struct {
	get    string
	set    string
	remove string
}

var dialectQueries = map[Dialect]queries{
	DialectSQLite: {
		get: `SELECT value FROM credentials WHERE key = ?`,
		set: `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`,
		remove: `DELETE FROM credentials WHERE key = ?`,
	},
	DialectPostgres: {
		get: `SELECT value FROM credentials WHERE key = $1`,
		set: `
		INSERT INTO credentials (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`,
		remove: `DELETE FROM credentials WHERE key = $1`,
	},
}

// SQLStore keeps credentials in the "credentials" table created by the
// migrations package.
type SQLStore struct {
	db dbx.DBTX
	q  queries
}

// NewSQLStore returns a store over db using the given dialect. An unknown
// dialect falls back to SQLite syntax.
func NewSQLStore(db dbx.DBTX, dialect Dialect) *SQLStore {
	q, ok := dialectQueries[dialect]
	if !ok {
		q = dialectQueries[DialectSQLite]
	}
	return &SQLStore{db: db, q: q}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, common.StorageError(fmt.Sprintf("failed to get credential[%s]", key), err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.q.set, key, value); err != nil {
		return common.StorageError(fmt.Sprintf("failed to set credential[%s]", key), err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.remove, key); err != nil {
		return common.StorageError(fmt.Sprintf("failed to remove credential[%s]", key), err)
	}
	return nil
}
