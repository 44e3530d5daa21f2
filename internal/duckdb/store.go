// Package duckdb persists annotated variant results in a queryable
// DuckDB database for downstream reporting and lookup.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for annotated variant results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create results directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist. One row per
// (variant, codon edit); non-coding variants get a single row with
// empty codon columns.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS variant_results (
		sample VARCHAR,
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		depth INTEGER,
		pass BOOLEAN,
		gene VARCHAR,
		overlap_genes VARCHAR,
		region VARCHAR,
		local_start BIGINT,
		local_end BIGINT,
		start_codon BIGINT,
		end_codon BIGINT,
		codon_index BIGINT,
		ref_codon VARCHAR,
		alt_codon VARCHAR,
		ref_aa VARCHAR,
		alt_aa VARCHAR,
		class VARCHAR,
		impact_score DOUBLE,
		impact_class VARCHAR
	)`)
	return err
}
