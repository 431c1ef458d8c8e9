package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/inovacc/kollect/internal/kinto"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	collection    TEXT    NOT NULL,
	id            TEXT    NOT NULL,
	title         TEXT,
	description   TEXT,
	last_modified INTEGER NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_records_last_modified
	ON records (collection, last_modified);
`

// SQLite is the sqlite-backed store.
type SQLite struct {
	storage *sql.DB
}

// NewSQLite creates or opens a sqlite database at the specified path.
func NewSQLite(path string) (*SQLite, error) {
	instance, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := instance.Exec(sqliteSchema); err != nil {
		_ = instance.Close()

		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLite{storage: instance}, nil
}

// Ping verifies the database is usable.
func (s *SQLite) Ping() error {
	return s.storage.Ping()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.storage.Close()
}

func (s *SQLite) SaveRecord(collection string, rec kinto.Record) error {
	_, err := s.storage.Exec(`
		INSERT INTO records (collection, id, title, description, last_modified)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			last_modified = excluded.last_modified`,
		collection, rec.ID, nullable(rec.Title), nullable(rec.Description), rec.LastModified,
	)

	return err
}

func (s *SQLite) GetRecord(collection, id string) (kinto.Record, error) {
	row := s.storage.QueryRow(`
		SELECT id, title, description, last_modified
		FROM records WHERE collection = ? AND id = ?`,
		collection, id,
	)

	return scanRecord(row.Scan)
}

func (s *SQLite) DeleteRecord(collection, id string) (kinto.Record, error) {
	rec, err := s.GetRecord(collection, id)
	if err != nil {
		return kinto.Record{}, err
	}

	if _, err := s.storage.Exec(
		`DELETE FROM records WHERE collection = ? AND id = ?`,
		collection, id,
	); err != nil {
		return kinto.Record{}, err
	}

	return rec, nil
}

func (s *SQLite) ListRecords(collection string) ([]kinto.Record, error) {
	rows, err := s.storage.Query(`
		SELECT id, title, description, last_modified
		FROM records WHERE collection = ?`,
		collection,
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rows.Close()
	}()

	records := make([]kinto.Record, 0)

	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanRecord(scan func(...any) error) (kinto.Record, error) {
	var (
		rec         kinto.Record
		title       sql.NullString
		description sql.NullString
	)

	if err := scan(&rec.ID, &title, &description, &rec.LastModified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kinto.Record{}, ErrNotFound
		}

		return kinto.Record{}, err
	}

	if title.Valid {
		rec.Title = &title.String
	}

	if description.Valid {
		rec.Description = &description.String
	}

	return rec, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}
