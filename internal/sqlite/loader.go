package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// tableMapping ties a JSONL file to its SQLite table. Each entry in keys is
// a top-level JSON key copied into the column at the same position in
// columns; the ordinal and body columns are filled for every table.
type tableMapping struct {
	file    string
	table   string
	keys    []string
	columns []string
}

// Table mappings in load order.
var (
	fieldsMapping   = tableMapping{"fields.jsonl", "fields", []string{"id", "name", "type"}, []string{"field_id", "name", "field_type"}}
	recordsMapping  = tableMapping{"records.jsonl", "records", []string{"id", "ownerId", "category", "name"}, []string{"record_id", "owner_id", "category", "name"}}
	usersMapping    = tableMapping{"users.jsonl", "users", []string{"id", "email", "role"}, []string{"user_id", "email", "role"}}
	settingsMapping = tableMapping{"settings.jsonl", "settings", []string{"key"}, []string{"setting_key"}}

	tableMappings = []tableMapping{fieldsMapping, recordsMapping, usersMapping, settingsMapping}
)

// loadAllJSONL reads each JSONL file from dataDir into its SQLite table.
// Loading is transactional: all files load or the database stays empty.
// Malformed lines, lines missing a key column, and lines that violate a
// constraint are skipped. Unknown JSON keys are kept in body untouched.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range tableMappings {
		lines, err := readJSONL(filepath.Join(dataDir, m.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", m.file, err)
		}
		if len(lines) == 0 {
			continue
		}
		if err := insertLines(tx, m, lines); err != nil {
			return fmt.Errorf("loading %s into %s: %w", m.file, m.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertLines inserts JSON lines into m's table, numbering them by position.
func insertLines(tx *sql.Tx, m tableMapping, lines []json.RawMessage) error {
	columns := append(append([]string{}, m.columns...), "ordinal", "body")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", m.table, strings.Join(columns, ", "), placeholders)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", m.table, err)
	}
	defer stmt.Close()

	ordinal := 0
	for _, line := range lines {
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			continue
		}

		args := make([]any, 0, len(columns))
		for _, key := range m.keys {
			s, _ := obj[key].(string)
			if key == m.keys[0] && s == "" {
				args = nil
				break
			}
			args = append(args, s)
		}
		if args == nil {
			continue
		}
		args = append(args, ordinal, string(line))

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		ordinal++
	}
	return nil
}

// queryBodies returns the body column of m's table in ordinal order.
func queryBodies(q interface {
	Query(string, ...any) (*sql.Rows, error)
}, m tableMapping) ([]json.RawMessage, error) {
	rows, err := q.Query(fmt.Sprintf("SELECT body FROM %s ORDER BY ordinal, rowid", m.table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", m.table, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", m.table, err)
		}
		out = append(out, json.RawMessage(body))
	}
	return out, rows.Err()
}
