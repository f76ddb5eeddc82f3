package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/config"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/migrations"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/common"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// DefaultSQLiteFile is the database file created inside Config.DataDir when
// no SQLite DSN is configured.
const DefaultSQLiteFile = "smartdesk.db"

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open builds the Store selected by cfg.StorageDriver. For SQL drivers the
// connection is verified and the schema migrated before returning; the
// returned Closer releases the connection.
func Open(ctx context.Context, cfg *config.Config) (Store, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return NewMemoryStore(), closerFunc(func() error { return nil }), nil
	case config.DriverSQLite:
		dsn, err := sqliteDSN(cfg)
		if err != nil {
			return nil, nil, common.StorageError("prepare sqlite", err)
		}
		return openSQL(ctx, "sqlite", dsn, DialectSQLite, migrations.SQLite)
	case config.DriverPostgres:
		return openSQL(ctx, "pgx", cfg.StorageDSN, DialectPostgres, migrations.Postgres)
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func openSQL(ctx context.Context, driver, dsn string, dialect Dialect, md migrations.Dialect) (Store, io.Closer, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, common.StorageError("open "+driver, err)
	}
	if driver == "sqlite" {
		// One writer at a time keeps SQLite from returning SQLITE_BUSY to
		// concurrent session operations.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, common.StorageError("ping "+driver, err)
	}

	if err := migrations.Run(ctx, db, md); err != nil {
		_ = db.Close()
		return nil, nil, common.StorageError("migrate "+driver, err)
	}

	return NewSQLStore(db, dialect), db, nil
}

// sqliteDSN returns the configured DSN or, when empty, a file DSN inside
// DataDir with the configured busy timeout.
func sqliteDSN(cfg *config.Config) (string, error) {
	if cfg.StorageDSN != "" {
		return cfg.StorageDSN, nil
	}
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, DefaultSQLiteFile)
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, cfg.StorageBusyTimeout.Milliseconds()), nil
}
