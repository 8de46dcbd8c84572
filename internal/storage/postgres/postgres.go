// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Storage interface on a pgx connection pool.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// constraintFields maps the named unique constraints in schema.sql to the
// column they guard.
var constraintFields = map[string]string{
	"students_roll_number_key": "roll_number",
	"students_email_key":       "email",
}

// Postgres implements storage.Storage. Each method acquires a pooled
// connection and releases it before returning.
type Postgres struct {
	pool *pgxpool.Pool
}

// New connects to cfg.Storage.DSN and pings the server.
func New(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres.New: parse dsn: %w", storage.ErrUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: postgres.New: ping: %w", storage.ErrUnavailable, err)
	}

	return &Postgres{pool: pool}, nil
}

// EnsureSchema creates the students table if it does not already exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: EnsureSchema: acquire: %w", storage.ErrUnavailable, err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: EnsureSchema: create table: %w", storage.ErrUnavailable, err)
	}

	return nil
}

// Insert adds one row and reads back the generated id in the same statement.
func (p *Postgres) Insert(ctx context.Context, c types.Candidate) (types.Student, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return types.Student{}, fmt.Errorf("%w: Insert: acquire: %w", storage.ErrUnavailable, err)
	}
	defer conn.Release()

	var id int64
	err = conn.QueryRow(ctx,
		`INSERT INTO students (name, roll_number, course, email)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		c.Name, c.RollNumber, c.Course, c.Email,
	).Scan(&id)
	if err != nil {
		return types.Student{}, classify("Insert: exec", err)
	}

	return c.Student(id), nil
}

// ListAll returns all rows in id order.
func (p *Postgres) ListAll(ctx context.Context) ([]types.Student, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll: acquire: %w", storage.ErrUnavailable, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		"SELECT id, name, roll_number, course, email FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll: query: %w", storage.ErrUnavailable, err)
	}

	students, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.Student, error) {
		var s types.Student
		err := row.Scan(&s.ID, &s.Name, &s.RollNumber, &s.Course, &s.Email)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll: scan: %w", storage.ErrUnavailable, err)
	}

	if students == nil {
		students = make([]types.Student, 0)
	}

	return students, nil
}

// Close releases every pooled connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// classify maps a driver error to the storage taxonomy by SQLSTATE.
// PostgreSQL names the violated constraint, so the duplicate carries the
// column when the constraint is one of ours.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &storage.DuplicateKeyError{
			Field: constraintFields[pgErr.ConstraintName],
			Err:   fmt.Errorf("%s: %w", op, err),
		}
	}

	return fmt.Errorf("%w: %s: %w", storage.ErrUnavailable, op, err)
}
