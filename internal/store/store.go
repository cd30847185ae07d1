// Package store manages the client-resident SQLite store: lifecycle and
// schema migration, atomic write scopes, the shared read handle, and
// change-set propagation to observers.
//
// True concurrency is single-writer, multiple-reader: SQLite serializes
// commits, readers run against the WAL and never block on a pending write
// scope, and a scope's mutations become visible to readers atomically when
// its transaction commits.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// readPoolSize bounds the read handle's connection pool.
const readPoolSize = 4

// Config holds store configuration.
type Config struct {
	// Path is the SQLite file path. The store opens two handles to the
	// same file, so a transient in-memory path is not supported.
	Path string `env:"STORE_PATH,default=foodtrack.db"`

	// BusyTimeout bounds how long a writer waits on the store lock.
	BusyTimeout time.Duration `env:"STORE_BUSY_TIMEOUT,default=5s"`
}

// Open opens (creating if needed) and migrates the store.
//
// Two handles are opened: a single-connection write handle that owns every
// write scope, and a pooled read handle served by Manager.Read. With the
// journal in WAL mode the read handle snapshots committed state and never
// waits on the write handle's open transaction.
//
// A failed Open is fatal at the composition root: the application cannot
// function without its store, so there is no recovery path here.
func Open(ctx context.Context, cfg Config) (*Manager, error) {
	writeDB, err := openHandle(ctx, cfg, 1)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, writeDB); err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	readDB, err := openHandle(ctx, cfg, readPoolSize)
	if err != nil {
		writeDB.Close()
		return nil, err
	}

	return newManager(writeDB, readDB), nil
}

// openHandle opens one *sql.DB against the store file. Pragmas ride in the
// DSN so every pooled connection gets them, not just the first.
func openHandle(ctx context.Context, cfg Config, maxConns int) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	db.SetMaxOpenConns(maxConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	return db, nil
}
