package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

// Manager owns the persistent store: the shared read handle, serialized
// write scopes, and change-set fan-out.
type Manager struct {
	// writeDB is a single-connection handle; every write scope runs on it.
	writeDB *sql.DB

	// readDB is a separate pooled handle. Read queries take their own
	// connections, so they never queue behind an open write transaction.
	readDB *sql.DB

	// writeMu serializes write scopes on top of SQLite's own single-writer
	// rule, so scopes never contend on the store lock from inside a
	// transaction.
	writeMu sync.Mutex

	subMu sync.Mutex
	subs  map[int]chan ChangeSet
	nextS int
}

func newManager(writeDB, readDB *sql.DB) *Manager {
	return &Manager{
		writeDB: writeDB,
		readDB:  readDB,
		subs:    make(map[int]chan ChangeSet),
	}
}

// Read returns the shared read handle. Queries against it never mutate and
// never block on a pending write scope.
func (m *Manager) Read() *sql.DB {
	return m.readDB
}

// Close closes both underlying handles.
func (m *Manager) Close() error {
	readErr := m.readDB.Close()
	if err := m.writeDB.Close(); err != nil {
		return err
	}
	return readErr
}

// Scope is a single write scope: an exclusive transaction plus the change
// set it accumulates. A scope is owned by the operation that created it and
// must not be shared or retained after the operation returns.
type Scope struct {
	tx      *sql.Tx
	changes ChangeSet
}

// Exec runs a mutation inside the scope.
func (s *Scope) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.tx.ExecContext(ctx, query, args...)
}

// Query runs a read inside the scope, observing its uncommitted mutations.
func (s *Scope) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.tx.QueryContext(ctx, query, args...)
}

// QueryRow runs a single-row read inside the scope.
func (s *Scope) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.tx.QueryRowContext(ctx, query, args...)
}

// Changed records a mutation for broadcast after commit.
func (s *Scope) Changed(kind EntityKind, op ChangeOp, id string) {
	s.changes = append(s.changes, Change{Kind: kind, Op: op, ID: id})
}

// WithWriteScope runs fn inside a fresh write scope. On a nil return the
// scope commits as a unit and its change set is propagated to subscribers
// before WithWriteScope returns; on error (or context cancellation) every
// pending mutation is discarded and nothing is observable by readers.
//
// Commit failures surface as storage/persist_failed. Errors returned by fn
// pass through unchanged.
func (m *Manager) WithWriteScope(ctx context.Context, fn func(*Scope) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	tx, err := m.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("begin write scope: %w", err))
	}

	scope := &Scope{tx: tx}
	if err := fn(scope); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage(apperrors.KindPersistFailed, fmt.Errorf("commit write scope: %w", err))
	}

	m.broadcast(scope.changes)
	return nil
}

// DeleteAll bulk-deletes every record of the given kinds inside one write
// scope. Used for account wipe and logout only.
func (m *Manager) DeleteAll(ctx context.Context, kinds ...EntityKind) error {
	return m.WithWriteScope(ctx, func(s *Scope) error {
		for _, kind := range kinds {
			table := tableFor(kind)
			if table == "" {
				return apperrors.Storage(apperrors.KindPersistFailed,
					fmt.Errorf("unknown entity kind %q", kind))
			}
			if _, err := s.Exec(ctx, "DELETE FROM "+table); err != nil {
				return apperrors.Storage(apperrors.KindPersistFailed,
					fmt.Errorf("delete all %s: %w", table, err))
			}
			s.Changed(kind, OpDelete, "*")
		}
		return nil
	})
}

// Subscribe registers a change-set observer. The returned cancel func must
// be called when the observer is done.
func (m *Manager) Subscribe() (<-chan ChangeSet, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextS
	m.nextS++
	ch := make(chan ChangeSet, 16)
	m.subs[id] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// broadcast fans a committed change set out to subscribers. Sends are
// non-blocking: a subscriber that falls behind misses intermediate sets
// rather than stalling commits.
func (m *Manager) broadcast(cs ChangeSet) {
	if len(cs) == 0 {
		return
	}
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- cs:
		default:
		}
	}
}
