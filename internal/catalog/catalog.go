// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a local SQLite record of split runs and their
// per-chapter outcomes, so past extractions can be listed and exported.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/chaptersplit/pkg/types"
)

const dbFile = "catalog.db"

// DefaultDir is the conventional catalog location.
const DefaultDir = ".chaptersplit"

// Store manages the catalog SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the catalog database at cfg.Dir/catalog.db,
// creating the directory and schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			chapters_total INTEGER NOT NULL,
			extracted INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			skipped_terms INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chapters (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			number INTEGER NOT NULL,
			title TEXT NOT NULL,
			start_page INTEGER NOT NULL,
			end_page INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			filename TEXT,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chapters_run_id ON chapters(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ChapterRow is one chapter outcome within a recorded run.
type ChapterRow struct {
	Number    int    `json:"number" yaml:"number"`
	Title     string `json:"title" yaml:"title"`
	StartPage int    `json:"start_page" yaml:"start_page"`
	EndPage   int    `json:"end_page" yaml:"end_page"`
	Pages     int    `json:"pages" yaml:"pages"`
	Filename  string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Run is one split run to be recorded.
type Run struct {
	Source       string
	OutputDir    string
	StartedAt    time.Time
	SkippedTerms int
	Chapters     []ChapterRow
}

// RecordRun stores a run and its chapter rows in one transaction, returning
// the run ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	extracted, failed := 0, 0
	for _, c := range run.Chapters {
		if c.Status == "extracted" {
			extracted++
		} else {
			failed++
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, output_dir, started_at, chapters_total, extracted, failed, skipped_terms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Source, run.OutputDir, run.StartedAt.UTC().Format(time.RFC3339),
		len(run.Chapters), extracted, failed, run.SkippedTerms,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chapters (run_id, number, title, start_page, end_page, pages, filename, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing chapter insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range run.Chapters {
		if _, err := stmt.ExecContext(ctx,
			runID, c.Number, c.Title, c.StartPage, c.EndPage, c.Pages,
			c.Filename, c.Status, c.Error,
		); err != nil {
			return 0, fmt.Errorf("inserting chapter %d: %w", c.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID            int64  `json:"id" yaml:"id"`
	Source        string `json:"source" yaml:"source"`
	OutputDir     string `json:"output_dir" yaml:"output_dir"`
	StartedAt     string `json:"started_at" yaml:"started_at"`
	ChaptersTotal int    `json:"chapters_total" yaml:"chapters_total"`
	Extracted     int    `json:"extracted" yaml:"extracted"`
	Failed        int    `json:"failed" yaml:"failed"`
	SkippedTerms  int    `json:"skipped_terms" yaml:"skipped_terms"`
}

// Runs lists recorded runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, output_dir, started_at, chapters_total, extracted, failed, skipped_terms
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Source, &r.OutputDir, &r.StartedAt,
			&r.ChaptersTotal, &r.Extracted, &r.Failed, &r.SkippedTerms); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		summaries = append(summaries, r)
	}
	return summaries, rows.Err()
}

// RunChapters returns the chapter rows recorded for a run, in chapter order.
func (s *Store) RunChapters(ctx context.Context, runID int64) ([]ChapterRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, title, start_page, end_page, pages, filename, status, error
		 FROM chapters WHERE run_id = ? ORDER BY number`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying chapters of run %d: %w", runID, err)
	}
	defer rows.Close()

	var chapters []ChapterRow
	for rows.Next() {
		var c ChapterRow
		var filename, errMsg sql.NullString
		if err := rows.Scan(&c.Number, &c.Title, &c.StartPage, &c.EndPage,
			&c.Pages, &filename, &c.Status, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning chapter: %w", err)
		}
		c.Filename = filename.String
		c.Error = errMsg.String
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}
