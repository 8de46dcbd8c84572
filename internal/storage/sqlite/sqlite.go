// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk, which is all a
// single-desk registration form needs.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is the concrete implementation of storage.Storage.
// The pool is capped at one connection; each method checks it out for the
// duration of the call.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.Path and verifies it can be
// reached. It does not create the table; call EnsureSchema for that.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite.New: open db: %w", storage.ErrUnavailable, err)
	}

	// sql.Open is lazy; Ping forces the file to be opened so a bad path
	// or missing permission fails here instead of on the first insert.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: sqlite.New: ping %s: %w", storage.ErrUnavailable, cfg.Storage.Path, err)
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &SQLite{Db: db}, nil
}

// EnsureSchema runs CREATE TABLE IF NOT EXISTS, which leaves an existing
// table untouched.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: EnsureSchema: conn: %w", storage.ErrUnavailable, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: EnsureSchema: create table: %w", storage.ErrUnavailable, err)
	}

	return nil
}

// Insert adds one row with a single statement, so a constraint failure
// leaves the table unchanged.
func (s *SQLite) Insert(ctx context.Context, c types.Candidate) (types.Student, error) {
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return types.Student{}, fmt.Errorf("%w: Insert: conn: %w", storage.ErrUnavailable, err)
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx,
		"INSERT INTO students (name, roll_number, course, email) VALUES (?, ?, ?, ?)",
		c.Name, c.RollNumber, c.Course, c.Email,
	)
	if err != nil {
		return types.Student{}, classify("Insert: exec", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("%w: Insert: last insert id: %w", storage.ErrUnavailable, err)
	}

	return c.Student(lastID), nil
}

// ListAll returns all rows in id order.
func (s *SQLite) ListAll(ctx context.Context) ([]types.Student, error) {
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll: conn: %w", storage.ErrUnavailable, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx,
		"SELECT id, name, roll_number, course, email FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll: query: %w", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.RollNumber,
			&student.Course,
			&student.Email,
		); err != nil {
			return nil, fmt.Errorf("%w: ListAll: scan row: %w", storage.ErrUnavailable, err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll: rows iteration: %w", storage.ErrUnavailable, err)
	}

	return students, nil
}

// Close releases the underlying pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// classify maps a driver error to the storage taxonomy using the extended
// result code. SQLite does not say which unique index fired without
// parsing the message, so the duplicate is reported without a field.
func classify(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s: %w", storage.ErrDuplicateKey, op, err)
		}
	}

	return fmt.Errorf("%w: %s: %w", storage.ErrUnavailable, op, err)
}
