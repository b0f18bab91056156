package types

import "errors"

// Part selects which sections of the directory state a Patch carries.
type Part uint8

// State sections.
const (
	PartSchema Part = 1 << iota
	PartRecords
	PartConfig
	PartUsers
	PartSession

	PartAll = PartSchema | PartRecords | PartConfig | PartUsers | PartSession
)

// Has reports whether p includes every bit of q.
func (p Part) Has(q Part) bool { return p&q == q }

// Snapshot is the full directory state as the backend last persisted it.
// CurrentUserID is empty when nobody is signed in.
type Snapshot struct {
	Schema        []Field
	Records       []Record
	Config        SystemConfig
	Users         []User
	CurrentUserID string
}

// Patch is a partial state write. Only the sections named in Parts are
// replaced; each section is replaced wholesale, never merged.
type Patch struct {
	Parts         Part
	Schema        []Field
	Records       []Record
	Config        SystemConfig
	Users         []User
	CurrentUserID string
}

// Store is the persistence contract of the directory. Callers attach to a
// backend, load the state once, save after every mutation, and detach when
// done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Load and Save return ErrStoreDetached.
	Detach() error

	// Load returns the persisted state.
	Load() (Snapshot, error)

	// Save replaces the sections of the state named in patch.Parts.
	Save(patch Patch) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
