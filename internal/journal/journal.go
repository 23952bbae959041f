// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal persists export runs in a SQLite database and tracks
// the last successful export per scene, so batch runs can skip sources
// that have not changed.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/blendexport/pkg/types"
)

const dbFile = "exports.db"

const timeFmt = time.RFC3339Nano

// Journal manages the export journal database.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at dir/exports.db. It
// creates the schema if it does not exist.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			blend_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			source_mod_time TEXT NOT NULL,
			output_size INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			exported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_blend_path ON runs(blend_path)`,
		`CREATE TABLE IF NOT EXISTS export_status (
			blend_path TEXT PRIMARY KEY,
			source_mod_time TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of one export run. A successful run also
// updates the per-scene status used by UpToDate. An empty RunID is
// assigned a fresh UUID.
func (j *Journal) Record(rec types.ExportRecord) error {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.ExportedAt.IsZero() {
		rec.ExportedAt = time.Now().UTC()
	}

	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, blend_path, output_path, source_mod_time, output_size, status, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.BlendPath, rec.OutputPath,
		rec.SourceModTime.UTC().Format(timeFmt),
		rec.OutputSize, string(rec.Status),
		rec.ExportedAt.UTC().Format(timeFmt),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", rec.RunID, err)
	}

	if rec.Status == types.ExportDone {
		_, err = tx.Exec(
			`INSERT INTO export_status (blend_path, source_mod_time) VALUES (?, ?)
			 ON CONFLICT(blend_path) DO UPDATE SET source_mod_time=excluded.source_mod_time`,
			rec.BlendPath, rec.SourceModTime.UTC().Format(timeFmt),
		)
		if err != nil {
			return fmt.Errorf("updating export status: %w", err)
		}
	}

	return tx.Commit()
}

// UpToDate reports whether the last successful export of blendPath
// recorded the same source modification time.
func (j *Journal) UpToDate(blendPath string, modTime time.Time) bool {
	var stored string
	err := j.db.QueryRow(
		`SELECT source_mod_time FROM export_status WHERE blend_path = ?`, blendPath,
	).Scan(&stored)
	if err != nil {
		return false
	}
	return stored == modTime.UTC().Format(timeFmt)
}

// List returns the most recent runs, newest first, optionally filtered to
// a single scene. A limit of 0 or less defaults to 20.
func (j *Journal) List(ctx context.Context, blendPath string, limit int) ([]types.ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT run_id, blend_path, output_path, source_mod_time, output_size, status, exported_at
		FROM runs`
	args := []any{}
	if blendPath != "" {
		query += ` WHERE blend_path = ?`
		args = append(args, blendPath)
	}
	// Insertion order is chronological; RFC3339Nano strings do not sort
	// reliably across fractional-second boundaries.
	query += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.ExportRecord
	for rows.Next() {
		var rec types.ExportRecord
		var status, modTime, exportedAt string
		if err := rows.Scan(&rec.RunID, &rec.BlendPath, &rec.OutputPath,
			&modTime, &rec.OutputSize, &status, &exportedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.Status = types.ExportStatus(status)
		rec.SourceModTime, _ = time.Parse(timeFmt, modTime)
		rec.ExportedAt, _ = time.Parse(timeFmt, exportedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}
