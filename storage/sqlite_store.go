package storage

import (
	"database/sql"
	"fmt"
	"time"

	"gobill/history"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// exported_at is stored in UTC with fixed-width fractions so that text
// ordering matches time ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// Web handlers record exports concurrently; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS exports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	exported_at TEXT NOT NULL,
	project_title TEXT NOT NULL,
	entry_count INTEGER NOT NULL CHECK(entry_count >= 0),
	grand_total TEXT NOT NULL,
	format TEXT NOT NULL,
	surface TEXT NOT NULL
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordExport stores one export record and returns its row ID.
func (s *SQLiteStore) RecordExport(record history.Record) (int64, error) {
	const insertStmt = `
INSERT INTO exports (
	exported_at,
	project_title,
	entry_count,
	grand_total,
	format,
	surface
) VALUES (?, ?, ?, ?, ?, ?);`

	res, err := s.db.Exec(
		insertStmt,
		record.ExportedAt.UTC().Format(timestampLayout),
		record.ProjectTitle,
		record.EntryCount,
		record.GrandTotal.StringFixed(2),
		record.Format,
		record.Surface,
	)
	if err != nil {
		return 0, fmt.Errorf("insert export record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}
	return id, nil
}

// ListExports returns export records, newest first. A limit <= 0 returns all.
func (s *SQLiteStore) ListExports(limit int) ([]history.Record, error) {
	query := `
SELECT
	id,
	exported_at,
	project_title,
	entry_count,
	grand_total,
	format,
	surface
FROM exports
ORDER BY exported_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += "\nLIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	records := make([]history.Record, 0, 32)
	for rows.Next() {
		var (
			record      history.Record
			exportedRaw string
			totalRaw    string
		)
		if err := rows.Scan(
			&record.ID,
			&exportedRaw,
			&record.ProjectTitle,
			&record.EntryCount,
			&totalRaw,
			&record.Format,
			&record.Surface,
		); err != nil {
			return nil, fmt.Errorf("scan export record: %w", err)
		}

		record.ExportedAt, err = time.Parse(timestampLayout, exportedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse exported_at %q: %w", exportedRaw, err)
		}
		record.GrandTotal, err = decimal.NewFromString(totalRaw)
		if err != nil {
			return nil, fmt.Errorf("parse grand_total %q: %w", totalRaw, err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) DeleteAllExports() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM exports;`)
	if err != nil {
		return 0, fmt.Errorf("delete exports: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}
