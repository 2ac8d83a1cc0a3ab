package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/upstream/internal/model"
	_ "modernc.org/sqlite"
)

// schemaVersion is the latest migration applied by NewSQLite.
const schemaVersion = 1

var migrations = map[int]string{
	1: `
		CREATE TABLE IF NOT EXISTS settings (
			option_name TEXT NOT NULL,
			field       TEXT NOT NULL,
			value       TEXT NOT NULL,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (option_name, field)
		)
	`,
}

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite settings store at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLite{db: db}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var current int

	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return err
	}

	for v := current + 1; v <= schemaVersion; v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", v); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", v, err)
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLite) Ping() error {
	return s.db.Ping()
}

func (s *SQLite) Load() (model.Record, error) {
	rows, err := s.db.Query("SELECT field, value FROM settings WHERE option_name = ?", model.OptionName)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	defer func() { _ = rows.Close() }()

	rec := model.Record{}

	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan settings field: %w", err)
		}

		rec[field] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return rec, nil
}

func (s *SQLite) Save(fragment model.Record) error {
	if fragment == nil {
		return errors.New("settings fragment is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for field, value := range fragment {
		_, err := tx.Exec(`
			INSERT INTO settings (option_name, field, value, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(option_name, field) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, model.OptionName, field, value)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save settings field %s: %w", field, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Delete() error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE option_name = ?", model.OptionName); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
