// Package sink persists finished metric tables. The SQLite store keeps every
// metric's rows under one stable schema and backs the serving collaborator's
// query contract; the CSV sink writes one artifact per metric output name.
// Any service may read the store; only the pipeline writes it.
package sink

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/NotCoffee418/dbmigrator"
	_ "modernc.org/sqlite"

	"github.com/gridshift-org/gridshift/engine"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is a SQLite-backed artifact store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	dbmigrator.SetDatabaseType(dbmigrator.SQLite)
	<-dbmigrator.MigrateUpCh(db, migrationFS, "migrations")

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// WriteTable replaces a metric output's rows transactionally. A re-run of
// the same metric overwrites its previous artifact; a failed write leaves
// the previous artifact intact.
func (s *Store) WriteTable(t *engine.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("write %s: %w", t.OutputName, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM indicator_values WHERE metric_id = ? AND output_name = ?",
		t.MetricID, t.OutputName,
	); err != nil {
		return fmt.Errorf("write %s: %w", t.OutputName, err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO indicator_values " +
			"(metric_id, output_name, year, month, region, metric_group, category, sub_category, fuel_type, value) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", t.OutputName, err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		if _, err := stmt.Exec(
			t.MetricID, t.OutputName,
			row.Year, row.Month, row.Region, row.MetricGroup,
			row.Category, row.SubCategory, row.FuelType, row.Value,
		); err != nil {
			return fmt.Errorf("write %s: %w", t.OutputName, err)
		}
	}

	return tx.Commit()
}

// RecordRun appends one run-summary line per metric for diagnostics.
func (s *Store) RecordRun(runAt string, metricID, outputName string, rows int, status string, errMsg string) error {
	_, err := s.db.Exec(
		"INSERT INTO run_metrics (run_at, metric_id, output_name, rows, status, error) "+
			"VALUES (?, ?, ?, ?, ?, ?)",
		runAt, metricID, outputName, rows, status, errMsg,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
