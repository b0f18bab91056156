package sqlite

// Schema DDL. Every table keeps the full JSON line it was loaded from in
// body; the other columns exist for lookups and ordering.
const (
	createFields = `CREATE TABLE fields (
    field_id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    name TEXT NOT NULL,
    field_type TEXT NOT NULL,
    body TEXT NOT NULL
);`

	// Record ids are not unique: imports prepend without deduplication.
	createRecords = `CREATE TABLE records (
    seq INTEGER PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    record_id TEXT NOT NULL,
    owner_id TEXT,
    category TEXT,
    name TEXT,
    body TEXT NOT NULL
);`

	createUsers = `CREATE TABLE users (
    user_id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    email TEXT NOT NULL UNIQUE COLLATE NOCASE,
    role TEXT NOT NULL,
    body TEXT NOT NULL
);`

	createSettings = `CREATE TABLE settings (
    setting_key TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL,
    body TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxRecordsID    = `CREATE INDEX idx_records_id ON records(record_id);`
	idxRecordsOwner = `CREATE INDEX idx_records_owner ON records(owner_id);`
	idxFieldsOrder  = `CREATE INDEX idx_fields_ordinal ON fields(ordinal);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createFields,
	createRecords,
	createUsers,
	createSettings,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRecordsID,
	idxRecordsOwner,
	idxFieldsOrder,
}
