// Package sqlite implements the SQLite series store that backs the optional
// tabular capability. Series are kept one row per record, ordered by
// position.
package sqlite

// Schema DDL.
const (
	createSeries = `CREATE TABLE IF NOT EXISTS series (
    name TEXT PRIMARY KEY,
    shape_type INTEGER NOT NULL,
    record_count INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createRecords = `CREATE TABLE IF NOT EXISTS records (
    record_id TEXT PRIMARY KEY,
    series_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    shape_type INTEGER NOT NULL,
    geometry TEXT NOT NULL,
    UNIQUE (series_name, position),
    FOREIGN KEY (series_name) REFERENCES series(name) ON DELETE CASCADE
);`

	createRecordsIndex = `CREATE INDEX IF NOT EXISTS idx_records_series ON records(series_name, position);`
)

// schemaStatements lists DDL in execution order.
var schemaStatements = []string{
	createSeries,
	createRecords,
	createRecordsIndex,
}
