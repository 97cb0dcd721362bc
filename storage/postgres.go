// Package storage provides a PostgreSQL-based implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/CreativeUnicorns/scopeprefs"
)

// sqlOpenFunc is a package-level variable that can be overridden for testing.
var sqlOpenFunc = sql.Open

const (
	postgresCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS preferences (
			identifier TEXT NOT NULL PRIMARY KEY,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	postgresInsertSQL = `
		INSERT INTO preferences (identifier, kind, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (identifier)
		DO UPDATE SET kind = $2, value = $3, updated_at = $4
	`

	postgresSelectSQL = `
		SELECT identifier, kind, value, updated_at
		FROM preferences
		WHERE identifier = $1
	`

	postgresSelectAllSQL = `
		SELECT identifier, kind, value, updated_at
		FROM preferences
	`

	postgresDeleteSQL = `
		DELETE FROM preferences
		WHERE identifier = $1
	`
)

// PostgresStorage implements the Storage interface using PostgreSQL.
type PostgresStorage struct {
	db  *sql.DB
	enc scopeprefs.Encryptor
}

// NewPostgresStorage initializes a new PostgresStorage instance.
// It connects to the database identified by connString and runs migrations.
func NewPostgresStorage(connString string, opts ...Option) (*PostgresStorage, error) {
	db, err := sqlOpenFunc("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	o := applyOptions(opts)
	storage := &PostgresStorage{db: db, enc: o.encryptor}
	if err := storage.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

// migrate runs the necessary database migrations.
func (s *PostgresStorage) migrate() error {
	_, err := s.db.Exec(postgresCreateTableSQL)
	return err
}

// Get retrieves a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *PostgresStorage) Get(ctx context.Context, identifier string) (*scopeprefs.StoredValue, error) {
	var sv scopeprefs.StoredValue

	err := s.db.QueryRowContext(ctx, postgresSelectSQL, identifier).Scan(
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
func (s *PostgresStorage) Set(ctx context.Context, value *scopeprefs.StoredValue) error {
	text, err := sealValue(s.enc, value.Value)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	_, err = s.db.ExecContext(ctx, postgresInsertSQL,
		value.Identifier,
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
func (s *PostgresStorage) GetAll(ctx context.Context) (map[string]*scopeprefs.StoredValue, error) {
	rows, err := s.db.QueryContext(ctx, postgresSelectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			fmt.Printf("Error closing rows: %v\n", cerr)
		}
	}()

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

// Delete removes a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *PostgresStorage) Delete(ctx context.Context, identifier string) error {
	result, err := s.db.ExecContext(ctx, postgresDeleteSQL, identifier)
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

// Close closes the PostgreSQL database connection.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
