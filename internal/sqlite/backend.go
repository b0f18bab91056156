// Package sqlite implements the directory Store with JSONL files as the
// source of truth and SQLite as the query engine.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// dbFileName is the SQLite cache rebuilt from the JSONL files on every attach.
const dbFileName = "luxedir.db"

// Backend implements types.Store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	log      *zap.SugaredLogger

	syncStrategy  string
	pendingWrites []pendingWrite
	pendingMu     sync.Mutex
}

// pendingWrite is a deferred JSONL rewrite for one table, used by the
// on_close sync strategy.
type pendingWrite struct {
	table   string
	persist func() error
}

// NewBackend creates a detached backend. A nil logger discards output.
func NewBackend(log *zap.SugaredLogger) *Backend {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Backend{log: log}
}

// Attach creates DataDir if needed, rebuilds the SQLite cache from the JSONL
// files, and seeds the demo directory on first run when SeedDemo is set.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection keeps transactions and reads on the same handle.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	for _, m := range tableMappings {
		if err := ensureJSONL(filepath.Join(dataDir, m.file)); err != nil {
			db.Close()
			return err
		}
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.syncStrategy = config.EffectiveSyncStrategy()
	b.pendingWrites = nil

	if config.SeedDemo {
		if err := b.seedDemoLocked(); err != nil {
			db.Close()
			b.db = nil
			return fmt.Errorf("seeding demo directory: %w", err)
		}
	}

	b.attached = true
	b.log.Debugw("backend attached", "data_dir", dataDir, "sync", b.syncStrategy)
	return nil
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// Detach flushes pending JSONL writes and closes the SQLite connection.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if err := b.flushPendingWrites(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.log.Debugw("backend detached", "data_dir", b.dataDir)
	return nil
}

// DataDir returns the directory holding the JSONL files.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dataDir
}

// persistTable rewrites m's JSONL file from the SQLite table, immediately or
// at Detach depending on the sync strategy. The caller must hold b.mu.
func (b *Backend) persistTable(m tableMapping) error {
	persist := func() error {
		lines, err := queryBodies(b.db, m)
		if err != nil {
			return err
		}
		return writeJSONL(filepath.Join(b.dataDir, m.file), lines)
	}

	if b.syncStrategy == types.SyncImmediate {
		return persist()
	}
	b.queueWrite(m.table, persist)
	return nil
}

// queueWrite records a deferred rewrite of table. A table already queued
// keeps its single entry since the rewrite reads the table at flush time.
func (b *Backend) queueWrite(table string, persist func() error) {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	for _, pw := range b.pendingWrites {
		if pw.table == table {
			return
		}
	}
	b.pendingWrites = append(b.pendingWrites, pendingWrite{table: table, persist: persist})
}

// flushPendingWrites executes all queued rewrites. On failure the queue is
// kept so a later flush can retry.
func (b *Backend) flushPendingWrites() error {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	for i, pw := range b.pendingWrites {
		if err := pw.persist(); err != nil {
			b.pendingWrites = b.pendingWrites[i:]
			return fmt.Errorf("flush %s: %w", pw.table, err)
		}
	}
	b.pendingWrites = nil
	return nil
}
