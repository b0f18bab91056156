package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Setting keys in settings.jsonl.
const (
	settingConfig  = "config"
	settingSession = "session"
)

// settingLine is one line of settings.jsonl.
type settingLine struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type sessionValue struct {
	CurrentUserID string `json:"currentUserId"`
}

// Load returns the persisted directory state. A directory without stored
// settings reports the default system config. Lines that no longer decode
// are skipped.
func (b *Backend) Load() (types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Snapshot{}, types.ErrStoreDetached
	}

	var snap types.Snapshot
	var err error
	if snap.Schema, err = loadEntities[types.Field](b.db, fieldsMapping); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Records, err = loadEntities[types.Record](b.db, recordsMapping); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Users, err = loadEntities[types.User](b.db, usersMapping); err != nil {
		return types.Snapshot{}, err
	}

	snap.Config = types.DefaultSystemConfig()
	settings, err := loadEntities[settingLine](b.db, settingsMapping)
	if err != nil {
		return types.Snapshot{}, err
	}
	for _, s := range settings {
		switch s.Key {
		case settingConfig:
			cfg := types.DefaultSystemConfig()
			if err := json.Unmarshal(s.Value, &cfg); err != nil {
				b.log.Warnw("ignoring unreadable system config", "error", err)
				continue
			}
			snap.Config = cfg
		case settingSession:
			var sv sessionValue
			if err := json.Unmarshal(s.Value, &sv); err == nil {
				snap.CurrentUserID = sv.CurrentUserID
			}
		}
	}
	return snap, nil
}

func loadEntities[T any](db *sql.DB, m tableMapping) ([]T, error) {
	bodies, err := queryBodies(db, m)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(bodies))
	for _, body := range bodies {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Save replaces the sections named in patch.Parts inside one transaction and
// then rewrites their JSONL files according to the sync strategy.
func (b *Backend) Save(patch types.Patch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	return b.saveLocked(patch)
}

func (b *Backend) saveLocked(patch types.Patch) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	var touched []tableMapping
	replace := func(m tableMapping, lines []json.RawMessage) error {
		if _, err := tx.Exec("DELETE FROM " + m.table); err != nil {
			return fmt.Errorf("clearing %s: %w", m.table, err)
		}
		if err := insertStrict(tx, m, lines); err != nil {
			return err
		}
		touched = append(touched, m)
		return nil
	}

	if patch.Parts.Has(types.PartSchema) {
		lines, err := marshalAll(patch.Schema)
		if err != nil {
			return err
		}
		if err := replace(fieldsMapping, lines); err != nil {
			return err
		}
	}
	if patch.Parts.Has(types.PartRecords) {
		lines, err := marshalAll(patch.Records)
		if err != nil {
			return err
		}
		if err := replace(recordsMapping, lines); err != nil {
			return err
		}
	}
	if patch.Parts.Has(types.PartUsers) {
		lines, err := marshalAll(patch.Users)
		if err != nil {
			return err
		}
		if err := replace(usersMapping, lines); err != nil {
			return err
		}
	}
	if patch.Parts.Has(types.PartConfig) || patch.Parts.Has(types.PartSession) {
		if err := b.saveSettings(tx, patch); err != nil {
			return err
		}
		touched = append(touched, settingsMapping)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}

	for _, m := range touched {
		if err := b.persistTable(m); err != nil {
			return fmt.Errorf("persisting %s: %w", m.file, err)
		}
	}
	return nil
}

// saveSettings upserts the config and session rows named in patch, leaving
// the other row as it is.
func (b *Backend) saveSettings(tx *sql.Tx, patch types.Patch) error {
	upsert := func(key string, value any, ordinal int) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", key, err)
		}
		line, err := json.Marshal(settingLine{Key: key, Value: raw})
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", key, err)
		}
		_, err = tx.Exec(
			`INSERT INTO settings (setting_key, ordinal, body) VALUES (?, ?, ?)
			 ON CONFLICT(setting_key) DO UPDATE SET body = excluded.body`,
			key, ordinal, string(line),
		)
		if err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
		return nil
	}

	if patch.Parts.Has(types.PartConfig) {
		if err := upsert(settingConfig, patch.Config, 0); err != nil {
			return err
		}
	}
	if patch.Parts.Has(types.PartSession) {
		if err := upsert(settingSession, sessionValue{CurrentUserID: patch.CurrentUserID}, 1); err != nil {
			return err
		}
	}
	return nil
}

func marshalAll[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		line, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("marshaling %T: %w", it, err)
		}
		out = append(out, line)
	}
	return out, nil
}

// insertStrict inserts lines into m's table and fails on the first line
// that does not fit, unlike the tolerant startup loader.
func insertStrict(tx *sql.Tx, m tableMapping, lines []json.RawMessage) error {
	before := 0
	if err := tx.QueryRow("SELECT COUNT(*) FROM " + m.table).Scan(&before); err != nil {
		return fmt.Errorf("counting %s: %w", m.table, err)
	}
	if err := insertLines(tx, m, lines); err != nil {
		return err
	}
	var after int
	if err := tx.QueryRow("SELECT COUNT(*) FROM " + m.table).Scan(&after); err != nil {
		return fmt.Errorf("counting %s: %w", m.table, err)
	}
	if after-before != len(lines) {
		return fmt.Errorf("saving %s: %d of %d rows rejected", m.table, len(lines)-(after-before), len(lines))
	}
	return nil
}

// Stats counts the rows of each table.
type Stats struct {
	Fields  int `json:"fields"`
	Records int `json:"records"`
	Users   int `json:"users"`
}

// Stats reports how many fields, records and users are stored.
func (b *Backend) Stats() (Stats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return Stats{}, types.ErrStoreDetached
	}
	var s Stats
	err := b.db.QueryRow(
		"SELECT (SELECT COUNT(*) FROM fields), (SELECT COUNT(*) FROM records), (SELECT COUNT(*) FROM users)",
	).Scan(&s.Fields, &s.Records, &s.Users)
	if err != nil {
		return Stats{}, fmt.Errorf("counting rows: %w", err)
	}
	return s, nil
}
