package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

var dbTracer = otel.Tracer("spendwise.db")

// Options selects the driver and pool settings for Open.
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// DB is a *sql.DB whose queries are traced and written in the SQL
// dialect of its driver.
type DB struct {
	*sql.DB
	dialect dialect
}

// Open connects to the database described by opts and verifies the
// connection.
func Open(ctx context.Context, opts Options) (*DB, error) {
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driverName, d.dsn(opts.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if d.singleWriter {
		// One connection keeps an in-memory database alive and serializes
		// writers, which SQLite requires anyway.
		db.SetMaxOpenConns(1)
	} else {
		maxOpen := opts.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 25
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, dialect: d}, nil
}

// Driver returns the name of the SQL dialect in use.
func (db *DB) Driver() string {
	return db.dialect.name
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// QueryContext wraps sql.DB.QueryContext with tracing.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return tracedQuery(ctx, db.DB, db.dialect.system, query, args...)
}

// QueryRowContext wraps sql.DB.QueryRowContext with tracing.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *tracedRow {
	return tracedQueryRow(ctx, db.DB, db.dialect.system, query, args...)
}

// ExecContext wraps sql.DB.ExecContext with tracing.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return tracedExec(ctx, db.DB, db.dialect.system, query, args...)
}

// BeginTx starts a transaction whose statements are traced like the
// DB's own.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, system: db.dialect.system}, nil
}

// Tx is a *sql.Tx with traced statements.
type Tx struct {
	*sql.Tx
	system string
}

func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return tracedQuery(ctx, tx.Tx, tx.system, query, args...)
}

func (tx *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *tracedRow {
	return tracedQueryRow(ctx, tx.Tx, tx.system, query, args...)
}

func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return tracedExec(ctx, tx.Tx, tx.system, query, args...)
}

// querier is the part of *sql.DB and *sql.Tx the tracing helpers wrap.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func startSpan(ctx context.Context, name, system, query string) (context.Context, trace.Span) {
	return dbTracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.system", system),
		attribute.String("db.operation", extractSQLVerb(query)),
		attribute.String("db.statement", sanitizeQuery(query)),
	))
}

func tracedQuery(ctx context.Context, q querier, system, query string, args ...any) (*sql.Rows, error) {
	ctx, span := startSpan(ctx, "db.Query", system, query)
	defer span.End()

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return rows, err
}

// tracedRow wraps *sql.Row so the span stays open until Scan, where
// sql.Row reports its errors.
type tracedRow struct {
	row  *sql.Row
	span trace.Span
}

func (r *tracedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if r.span != nil {
		if err != nil && err != sql.ErrNoRows {
			r.span.RecordError(err)
			r.span.SetStatus(codes.Error, err.Error())
		}
		r.span.End()
		r.span = nil
	}
	return err
}

func tracedQueryRow(ctx context.Context, q querier, system, query string, args ...any) *tracedRow {
	ctx, span := startSpan(ctx, "db.QueryRow", system, query)
	return &tracedRow{
		row:  q.QueryRowContext(ctx, query, args...),
		span: span,
	}
}

func tracedExec(ctx context.Context, q querier, system, query string, args ...any) (sql.Result, error) {
	ctx, span := startSpan(ctx, "db.Exec", system, query)
	defer span.End()

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

// sanitizeQuery replaces string literals and bare numeric literals with '?'
// so that values never end up in traces. $N placeholders are kept.
func sanitizeQuery(q string) string {
	var b strings.Builder
	b.Grow(len(q))

	i := 0
	for i < len(q) {
		ch := q[i]

		if ch == '\'' {
			b.WriteString("'?'")
			i++
			for i < len(q) {
				if q[i] == '\'' {
					if i+1 < len(q) && q[i+1] == '\'' {
						i += 2 // escaped quote ''
						continue
					}
					i++
					break
				}
				i++
			}
			continue
		}

		if unicode.IsDigit(rune(ch)) && (i == 0 || !isIdentChar(q[i-1])) {
			b.WriteByte('?')
			for i < len(q) && (unicode.IsDigit(rune(q[i])) || q[i] == '.') {
				i++
			}
			continue
		}

		b.WriteByte(ch)
		i++
	}

	s := b.String()
	if len(s) > 256 {
		return s[:256] + "..."
	}
	return s
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '$'
}

func extractSQLVerb(q string) string {
	q = strings.TrimSpace(q)
	if idx := strings.IndexAny(q, " \t\n"); idx > 0 {
		return strings.ToUpper(q[:idx])
	}
	return strings.ToUpper(q)
}
