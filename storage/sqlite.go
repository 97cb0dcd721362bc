// Package storage provides a SQLite-based implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/CreativeUnicorns/scopeprefs"
)

const (
	sqliteCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS preferences (
			identifier TEXT NOT NULL PRIMARY KEY,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	sqliteInsertSQL = `
		INSERT INTO preferences (identifier, kind, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(identifier)
		DO UPDATE SET kind = ?, value = ?, updated_at = ?
	`

	sqliteSelectSQL = `
		SELECT identifier, kind, value, updated_at
		FROM preferences
		WHERE identifier = ?
	`

	sqliteSelectAllSQL = `
		SELECT identifier, kind, value, updated_at
		FROM preferences
	`

	sqliteDeleteSQL = `
		DELETE FROM preferences
		WHERE identifier = ?
	`
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db  *sql.DB
	enc scopeprefs.Encryptor
}

// NewSQLiteStorage initializes a new SQLiteStorage instance.
// It connects to the SQLite database at the specified path and runs migrations.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	o := applyOptions(opts)
	storage := &SQLiteStorage{db: db, enc: o.encryptor}
	if err := storage.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

// migrate runs the necessary database migrations.
func (s *SQLiteStorage) migrate() error {
	_, err := s.db.Exec(sqliteCreateTableSQL)
	return err
}

// Get retrieves a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *SQLiteStorage) Get(ctx context.Context, identifier string) (*scopeprefs.StoredValue, error) {
	var sv scopeprefs.StoredValue

	err := s.db.QueryRowContext(ctx, sqliteSelectSQL, identifier).Scan(
		&sv.Identifier,
		&sv.Kind,
		&sv.Value,
		&sv.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, scopeprefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	if sv.Value, err = openValue(s.enc, sv.Value); err != nil {
		return nil, fmt.Errorf("failed to decrypt value: %w", err)
	}

	return &sv, nil
}

// Set stores or updates a value.
func (s *SQLiteStorage) Set(ctx context.Context, value *scopeprefs.StoredValue) error {
	text, err := sealValue(s.enc, value.Value)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	_, err = s.db.ExecContext(ctx, sqliteInsertSQL,
		value.Identifier,
		value.Kind,
		text,
		value.UpdatedAt,
		value.Kind,
		text,
		value.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}

	return nil
}

// GetAll retrieves every stored value, keyed by identifier.
func (s *SQLiteStorage) GetAll(ctx context.Context) (map[string]*scopeprefs.StoredValue, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			fmt.Printf("Error closing rows: %v\n", cerr)
		}
	}()

	return s.scanStoredValues(rows)
}

// Delete removes a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *SQLiteStorage) Delete(ctx context.Context, identifier string) error {
	result, err := s.db.ExecContext(ctx, sqliteDeleteSQL, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return scopeprefs.ErrNotFound
	}

	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// scanStoredValues scans rows and constructs a map of stored values.
func (s *SQLiteStorage) scanStoredValues(rows *sql.Rows) (map[string]*scopeprefs.StoredValue, error) {
	values := make(map[string]*scopeprefs.StoredValue)

	for rows.Next() {
		var sv scopeprefs.StoredValue

		err := rows.Scan(
			&sv.Identifier,
			&sv.Kind,
			&sv.Value,
			&sv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}

		if sv.Value, err = openValue(s.enc, sv.Value); err != nil {
			return nil, fmt.Errorf("failed to decrypt value: %w", err)
		}

		values[sv.Identifier] = &sv
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return values, nil
}
