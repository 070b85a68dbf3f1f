package database

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"spendwise/internal/domain/resource"
)

// Postgres SQLSTATE codes
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// classify wraps driver errors for constraint violations and lost
// write races in a resource.ConstraintError. Other errors are returned
// unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return &resource.ConstraintError{Kind: resource.ConstraintUnique, Column: pgConstraintColumn(pqErr), Err: err}
		case pgForeignKeyViolation:
			return &resource.ConstraintError{Kind: resource.ConstraintForeignKey, Column: pgConstraintColumn(pqErr), Err: err}
		case pgSerializationFailure, pgDeadlockDetected:
			return &resource.ConstraintError{Kind: resource.ConstraintWriteConflict, Err: err}
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return &resource.ConstraintError{Kind: resource.ConstraintUnique, Column: sqliteConstraintColumn(liteErr.Error()), Err: err}
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return &resource.ConstraintError{Kind: resource.ConstraintForeignKey, Err: err}
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return &resource.ConstraintError{Kind: resource.ConstraintWriteConflict, Err: err}
		case sqlite3.SQLITE_CONSTRAINT:
			// Primary result code only; fall back to the message.
			msg := liteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE constraint failed"):
				return &resource.ConstraintError{Kind: resource.ConstraintUnique, Column: sqliteConstraintColumn(msg), Err: err}
			case strings.Contains(msg, "FOREIGN KEY constraint failed"):
				return &resource.ConstraintError{Kind: resource.ConstraintForeignKey, Err: err}
			}
		}
	}
	return err
}

// pgConstraintColumn recovers the column from a constraint named
// <table>_<column>_key or <table>_<column>_fkey.
func pgConstraintColumn(e *pq.Error) string {
	if e.Column != "" {
		return e.Column
	}
	name := strings.TrimPrefix(e.Constraint, e.Table+"_")
	for _, suffix := range []string{"_fkey", "_key"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			return trimmed
		}
	}
	return name
}

// sqliteConstraintColumn reads the column out of a message such as
// "UNIQUE constraint failed: users.username".
func sqliteConstraintColumn(msg string) string {
	const marker = "constraint failed: "
	idx := strings.LastIndex(msg, marker)
	if idx < 0 {
		return ""
	}
	rest := msg[idx+len(marker):]
	if end := strings.IndexAny(rest, ", ("); end >= 0 {
		rest = rest[:end]
	}
	if dot := strings.LastIndexByte(rest, '.'); dot >= 0 {
		rest = rest[dot+1:]
	}
	return rest
}
