// Package app holds the directory state and the commands that change it.
// Directory is the only writer: each command validates its input, replaces
// the affected section of the state, and saves that section to the store.
package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Directory is the application state bound to a store. It is safe for
// concurrent use.
type Directory struct {
	mu    sync.RWMutex
	store types.Store
	log   *zap.SugaredLogger
	state types.Snapshot
	now   func() time.Time
	newID func() string
}

// Option configures a Directory.
type Option func(*Directory)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// WithIDGenerator replaces the UUID v7 generator used for new records and
// users.
func WithIDGenerator(newID func() string) Option {
	return func(d *Directory) { d.newID = newID }
}

// New loads the state from an attached store.
func New(store types.Store, log *zap.SugaredLogger, opts ...Option) (*Directory, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	d := &Directory{
		store: store,
		log:   log,
		now:   time.Now,
		newID: generateUUID,
	}
	for _, opt := range opts {
		opt(d)
	}

	snap, err := store.Load()
	if err != nil {
		return nil, err
	}
	d.state = snap
	return d, nil
}

// generateUUID returns a UUID v7, falling back to v4.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// save writes the named sections of the current state. A failed write is
// logged and otherwise ignored: the in-memory state stays authoritative for
// the session. The caller must hold d.mu.
func (d *Directory) save(parts types.Part) {
	err := d.store.Save(types.Patch{
		Parts:         parts,
		Schema:        d.state.Schema,
		Records:       d.state.Records,
		Config:        d.state.Config,
		Users:         d.state.Users,
		CurrentUserID: d.state.CurrentUserID,
	})
	if err != nil {
		d.log.Errorw("saving directory state", "parts", parts, "error", err)
	}
}

// Snapshot returns a deep copy of the full state.
func (d *Directory) Snapshot() types.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return types.Snapshot{
		Schema:        cloneFields(d.state.Schema),
		Records:       cloneRecords(d.state.Records),
		Config:        d.state.Config,
		Users:         append([]types.User{}, d.state.Users...),
		CurrentUserID: d.state.CurrentUserID,
	}
}

func cloneFields(fields []types.Field) []types.Field {
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

func cloneRecords(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
