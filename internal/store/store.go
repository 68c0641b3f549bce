// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists converted crime incidents in a local SQLite
// database and answers coordinate-window queries over them.
package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abrookins/radar/internal/dataset"
	"github.com/abrookins/radar/pkg/types"
)

// DefaultDBFile is the database filename inside the data directory.
const DefaultDBFile = "radar.db"

const defaultMaxResults = 100

// insertBatchSize bounds the rows per transaction during ingest.
const insertBatchSize = 1000

// Store manages the incident SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the incident database described by cfg, creating
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbFile := cfg.DBFile
	if dbFile == "" {
		dbFile = DefaultDBFile
	}
	dbPath := dataset.Resolve(cfg.DataDir, dbFile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS crimes (
			id INTEGER PRIMARY KEY,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			type TEXT NOT NULL,
			address TEXT,
			neighborhood TEXT,
			precinct TEXT,
			district TEXT,
			lon REAL NOT NULL,
			lat REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crimes_lon_lat ON crimes(lon, lat)`,
		`CREATE INDEX IF NOT EXISTS idx_crimes_type ON crimes(type)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// LoadSummary holds counts from a CSV ingest run.
type LoadSummary struct {
	Loaded  int
	Skipped int
}

// Total returns the number of data rows processed.
func (s LoadSummary) Total() int {
	return s.Loaded + s.Skipped
}

// LoadCSV ingests a converted (WGS84) incident CSV into the database.
// Rows that fail to parse are skipped and counted; an existing incident
// with the same ID is replaced, so reloading a file is safe. Inserts run
// in batched transactions.
func (s *Store) LoadCSV(ctx context.Context, path string, w io.Writer) (LoadSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var (
		summary LoadSummary
		tx      *sql.Tx
		stmt    *sql.Stmt
		inBatch int
	)

	commit := func() error {
		if tx == nil {
			return nil
		}
		stmt.Close()
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing batch: %w", err)
		}
		tx, stmt = nil, nil
		inBatch = 0
		return nil
	}

	for i := 0; ; i++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return summary, fmt.Errorf("reading row %d: %w", i, err)
		}
		if i == 0 {
			// Header.
			continue
		}

		crime, err := types.CrimeFromRow(row)
		if err != nil {
			summary.Skipped++
			continue
		}

		if tx == nil {
			tx, err = s.db.BeginTx(ctx, nil)
			if err != nil {
				return summary, fmt.Errorf("beginning transaction: %w", err)
			}
			stmt, err = tx.Prepare(`INSERT OR REPLACE INTO crimes
				(id, date, time, type, address, neighborhood, precinct, district, lon, lat)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
			if err != nil {
				tx.Rollback()
				return summary, fmt.Errorf("preparing insert: %w", err)
			}
		}

		if _, err := stmt.ExecContext(ctx, crime.ID, crime.Date, crime.Time, crime.Type,
			crime.Address, crime.Neighborhood, crime.Precinct, crime.District,
			crime.Lon, crime.Lat); err != nil {
			stmt.Close()
			tx.Rollback()
			return summary, fmt.Errorf("inserting incident %d: %w", crime.ID, err)
		}
		summary.Loaded++
		inBatch++

		if inBatch >= insertBatchSize {
			if err := commit(); err != nil {
				return summary, err
			}
		}
	}

	if err := commit(); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "loaded %d incidents (%d skipped) from %s\n",
		summary.Loaded, summary.Skipped, filepath.Base(path))
	return summary, nil
}

// Near returns incidents inside a coordinate window of windowDeg degrees
// around (lat, lng), ordered by ID, capped at the configured maximum.
func (s *Store) Near(ctx context.Context, lat, lng, windowDeg float64) ([]types.Crime, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, time, type, address, neighborhood, precinct, district, lon, lat
		FROM crimes
		WHERE lon BETWEEN ? AND ? AND lat BETWEEN ? AND ?
		ORDER BY id
		LIMIT ?`,
		lng-windowDeg, lng+windowDeg, lat-windowDeg, lat+windowDeg, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying incidents: %w", err)
	}
	defer rows.Close()

	var crimes []types.Crime
	for rows.Next() {
		var c types.Crime
		if err := rows.Scan(&c.ID, &c.Date, &c.Time, &c.Type, &c.Address,
			&c.Neighborhood, &c.Precinct, &c.District, &c.Lon, &c.Lat); err != nil {
			return nil, fmt.Errorf("scanning incident: %w", err)
		}
		crimes = append(crimes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating incidents: %w", err)
	}
	return crimes, nil
}

// Count returns the total number of stored incidents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM crimes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting incidents: %w", err)
	}
	return n, nil
}

// TypeCounts returns the number of incidents per offense type, most
// frequent first.
func (s *Store) TypeCounts(ctx context.Context) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, count(*) FROM crimes GROUP BY type ORDER BY count(*) DESC, type`)
	if err != nil {
		return nil, fmt.Errorf("querying type counts: %w", err)
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning type count: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating type counts: %w", err)
	}
	return counts, nil
}

// TypeCount pairs an offense type with its incident count.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}
