// Package store persists the registry in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/erazemk/arsenal/internal/apperrors"
	"github.com/erazemk/arsenal/internal/model"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx is the view of the store available inside an atomic unit.
type Tx interface {
	GetWeapon(ctx context.Context, id string) (*model.Weapon, error)
	GetEquipment(ctx context.Context, id string) (*model.Equipment, error)
	GetGovernment(ctx context.Context, id string) (*model.Government, error)
	UpdateWeaponState(ctx context.Context, w *model.Weapon) error
	InsertTransaction(ctx context.Context, t *model.Transaction) error
}

// queries holds every statement; it runs against either the pool or a transaction.
type queries struct {
	db querier
}

// Store is the SQLite-backed persistent store.
type Store struct {
	queries
	conn *sql.DB
}

// New returns a store using db.
func New(db *sql.DB) *Store {
	return &Store{queries: queries{db: db}, conn: db}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// RunAtomic runs fn inside a database transaction. The transaction commits when
// fn returns nil and rolls back otherwise, including on panic.
func (s *Store) RunAtomic(ctx context.Context, fn func(Tx) error) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("committing transaction: %w", cerr)
		}
	}()

	return fn(queries{db: tx})
}

// queryRow builds b and scans the single resulting row.
func (q queries) queryRow(ctx context.Context, b sq.SelectBuilder, dest ...any) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}
	return q.db.QueryRowContext(ctx, query, args...).Scan(dest...)
}

// query builds b and returns the resulting rows.
func (q queries) query(ctx context.Context, b sq.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	return q.db.QueryContext(ctx, query, args...)
}

// exec runs a built insert, update or delete statement.
func (q queries) exec(ctx context.Context, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building statement: %w", err)
	}
	return q.db.ExecContext(ctx, query, args...)
}

// classify converts constraint failures into typed errors; what names the
// entity for the message.
func classify(err error, what string) error {
	switch {
	case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE constraint failed"),
		isConstraint(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, "PRIMARY KEY constraint failed"):
		return apperrors.Conflict(err, "%s already exists", what)
	case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY constraint failed"):
		return &apperrors.Error{Kind: apperrors.KindNotFound, Message: what + " references a record that does not exist", Err: err}
	case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_CHECK, "CHECK constraint failed"):
		return &apperrors.Error{Kind: apperrors.KindValidation, Message: what + " has an invalid value", Err: err}
	}
	return err
}

func isConstraint(err error, code int, text string) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == code {
		return true
	}
	return err != nil && strings.Contains(err.Error(), text)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullStringPtr(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func ptrFromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
