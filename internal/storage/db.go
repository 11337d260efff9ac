package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"politikcred/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS politicians (
  key TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  firstName TEXT,
  lastName TEXT,
  party TEXT,
  position TEXT NOT NULL,
  constituency TEXT,
  orientation TEXT NOT NULL,
  credibilityScore INTEGER NOT NULL,
  credibilityTier TEXT NOT NULL,
  cardColor TEXT,
  source TEXT NOT NULL,
  insertStatus TEXT NOT NULL,
  raw_json TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_politicians_name ON politicians(name);
CREATE INDEX IF NOT EXISTS idx_politicians_source ON politicians(source);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS failed_records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  name TEXT NOT NULL,
  source TEXT NOT NULL,
  error TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceSnapshot swaps the local mirror for the set just persisted, in
// one transaction so a crashed run never leaves a half-written snapshot.
func (d *DB) ReplaceSnapshot(rows []internal.SnapshotRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM politicians`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO politicians (
  key, name, firstName, lastName, party, position, constituency,
  orientation, credibilityScore, credibilityTier, cardColor,
  source, insertStatus, raw_json, updatedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		e := row.Entity
		rawJSON := row.RawJSON
		if rawJSON == "" {
			blob, _ := json.Marshal(e)
			rawJSON = string(blob)
		}
		if _, err := stmt.Exec(
			row.Key, e.Name, e.FirstName, e.LastName, e.Party, e.Position, e.Constituency,
			string(e.PoliticalOrientation), e.CredibilityScore, string(e.CredibilityTier), e.CardColor,
			string(e.Source), row.InsertStatus, rawJSON,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListSnapshot() ([]internal.SnapshotRow, error) {
	rows, err := d.conn.Query(`
SELECT key, insertStatus, raw_json
FROM politicians
ORDER BY credibilityScore DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SnapshotRow
	for rows.Next() {
		var row internal.SnapshotRow
		if err := rows.Scan(&row.Key, &row.InsertStatus, &row.RawJSON); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(row.RawJSON), &row.Entity)
		out = append(out, row)
	}

	return out, rows.Err()
}

type SnapshotStats struct {
	Total         int
	ByOrientation map[string]int
	ByTier        map[string]int
	BySource      map[string]int
}

func (d *DB) Stats() (SnapshotStats, error) {
	stats := SnapshotStats{
		ByOrientation: map[string]int{},
		ByTier:        map[string]int{},
		BySource:      map[string]int{},
	}

	if err := d.conn.QueryRow(`SELECT COUNT(*) FROM politicians`).Scan(&stats.Total); err != nil {
		return stats, err
	}

	groupCount := func(column string, into map[string]int) error {
		rows, err := d.conn.Query(`SELECT ` + column + `, COUNT(*) FROM politicians GROUP BY ` + column)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var key string
			var count int
			if err := rows.Scan(&key, &count); err != nil {
				return err
			}
			into[key] = count
		}
		return rows.Err()
	}

	if err := groupCount("orientation", stats.ByOrientation); err != nil {
		return stats, err
	}
	if err := groupCount("credibilityTier", stats.ByTier); err != nil {
		return stats, err
	}
	if err := groupCount("source", stats.BySource); err != nil {
		return stats, err
	}

	return stats, nil
}

func (d *DB) InsertRun(traceID string, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, timingsJson, countsJson) VALUES (?, ?, ?)`,
		traceID, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.conn.Query(`
SELECT id, traceId, timingsJson, countsJson, createdAt
FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var r internal.RunRow
		if err := rows.Scan(&r.ID, &r.TraceID, &r.TimingsJSON, &r.CountsJSON, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func (d *DB) InsertFailedRecords(traceID string, failures []internal.FailedRecord) error {
	if len(failures) == 0 {
		return nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO failed_records (traceId, name, source, error) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range failures {
		if _, err := stmt.Exec(traceID, f.Name, f.Source, f.Error); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListFailedRecords(traceID string) ([]internal.FailedRecord, error) {
	rows, err := d.conn.Query(`
SELECT name, source, error FROM failed_records WHERE traceId = ? ORDER BY id ASC`, traceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.FailedRecord
	for rows.Next() {
		var f internal.FailedRecord
		if err := rows.Scan(&f.Name, &f.Source, &f.Error); err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
