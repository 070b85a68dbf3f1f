package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/domain/resource"
)

// Repository implements resource.Repository on top of one transaction.
// Statements are generated from the schema.
type Repository struct {
	tx      *Tx
	dialect dialect
}

var _ resource.Repository = (*Repository)(nil)

func (r *Repository) List(ctx context.Context, s *resource.Schema, filters ...resource.Filter) ([]*resource.Record, error) {
	where, args := r.where(filters, 1)
	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY id ASC`, selectList(s), s.Table, where)

	rows, err := r.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Table, classify(err))
	}
	defer rows.Close()

	records := []*resource.Record{}
	for rows.Next() {
		rec, err := scanRecord(s, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.Table, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", s.Table, err)
	}

	return records, nil
}

func (r *Repository) Get(ctx context.Context, s *resource.Schema, id int64, filters ...resource.Filter) (*resource.Record, error) {
	where, args := r.where(append([]resource.Filter{{Field: "id", Value: id}}, filters...), 1)
	query := fmt.Sprintf(`SELECT %s FROM %s%s`, selectList(s), s.Table, where)

	rec, err := scanRecord(s, r.tx.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.Table, classify(err))
	}

	return rec, nil
}

func (r *Repository) Exists(ctx context.Context, s *resource.Schema, field string, value any, excludeID int64) (bool, error) {
	filters := []resource.Filter{{Field: field, Value: value}}
	where, args := r.where(filters, 1)
	if excludeID != 0 {
		where += fmt.Sprintf(" AND id <> %s", r.dialect.placeholder(len(args)+1))
		args = append(args, excludeID)
	}
	query := fmt.Sprintf(`SELECT 1 FROM %s%s LIMIT 1`, s.Table, where)

	var one int
	err := r.tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s.%s: %w", s.Table, field, classify(err))
	}

	return true, nil
}

func (r *Repository) Insert(ctx context.Context, s *resource.Schema, values resource.Values, now time.Time) (*resource.Record, error) {
	cols := make([]string, 0, len(values)+2)
	args := make([]any, 0, len(values)+2)
	for _, f := range s.Fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		cols = append(cols, f.Name)
		args = append(args, r.dialect.bind(v))
	}
	cols = append(cols, "created_at")
	args = append(args, r.dialect.bind(now))
	if s.HasUpdatedAt {
		cols = append(cols, "updated_at")
		args = append(args, r.dialect.bind(now))
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = r.dialect.placeholder(i + 1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		s.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), selectList(s))

	rec, err := scanRecord(s, r.tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", s.Table, classify(err))
	}

	return rec, nil
}

func (r *Repository) Update(ctx context.Context, s *resource.Schema, id int64, values resource.Values, now time.Time) (*resource.Record, error) {
	setClauses := []string{}
	args := []any{}
	argIndex := 1

	for _, f := range s.Fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", f.Name, r.dialect.placeholder(argIndex)))
		args = append(args, r.dialect.bind(v))
		argIndex++
	}
	if s.HasUpdatedAt {
		setClauses = append(setClauses, fmt.Sprintf("updated_at = %s", r.dialect.placeholder(argIndex)))
		args = append(args, r.dialect.bind(now))
		argIndex++
	}

	if len(setClauses) == 0 {
		rec, err := r.Get(ctx, s, id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, resource.ErrNotFound
		}
		return rec, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = %s RETURNING %s`,
		s.Table, strings.Join(setClauses, ", "), r.dialect.placeholder(argIndex), selectList(s))

	rec, err := scanRecord(s, r.tx.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", s.Table, classify(err))
	}

	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, s *resource.Schema, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = %s`, s.Table, r.dialect.placeholder(1))

	result, err := r.tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", s.Table, classify(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return resource.ErrNotFound
	}

	return nil
}

func (r *Repository) where(filters []resource.Filter, start int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		clauses = append(clauses, fmt.Sprintf("%s = %s", f.Field, r.dialect.placeholder(start+i)))
		args = append(args, r.dialect.bind(f.Value))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func selectList(s *resource.Schema) string {
	cols := append([]string{"id"}, s.Columns()...)
	cols = append(cols, "created_at")
	if s.HasUpdatedAt {
		cols = append(cols, "updated_at")
	}
	return strings.Join(cols, ", ")
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads a row produced by selectList. Columns are scanned
// as driver values and converted per field kind, since the drivers
// disagree on how they return decimals, booleans and timestamps.
func scanRecord(s *resource.Schema, row scanner) (*resource.Record, error) {
	raw := make([]any, len(s.Fields)+3)
	dest := make([]any, 0, len(raw))
	var id int64
	dest = append(dest, &id)
	for i := range s.Fields {
		dest = append(dest, &raw[i])
	}
	var created, updated any
	dest = append(dest, &created)
	if s.HasUpdatedAt {
		dest = append(dest, &updated)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	rec := &resource.Record{ID: id, Values: make(resource.Values, len(s.Fields))}
	for i, f := range s.Fields {
		v, err := fromDriver(f.Kind, raw[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", f.Name, err)
		}
		rec.Values[f.Name] = v
	}

	createdAt, err := fromDriver(resource.KindTime, created)
	if err != nil {
		return nil, fmt.Errorf("column created_at: %w", err)
	}
	if t, ok := createdAt.(time.Time); ok {
		rec.CreatedAt = t
	}
	if s.HasUpdatedAt {
		updatedAt, err := fromDriver(resource.KindTime, updated)
		if err != nil {
			return nil, fmt.Errorf("column updated_at: %w", err)
		}
		if t, ok := updatedAt.(time.Time); ok {
			rec.UpdatedAt = &t
		}
	}

	return rec, nil
}

func fromDriver(kind resource.Kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	switch kind {
	case resource.KindString, resource.KindText, resource.KindEnum:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil

	case resource.KindInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		case float64:
			return int64(n), nil
		}

	case resource.KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		}

	case resource.KindDecimal:
		switch n := v.(type) {
		case string:
			return decimal.NewFromString(n)
		case float64:
			return decimal.NewFromFloat(n), nil
		case int64:
			return decimal.NewFromInt(n), nil
		}

	case resource.KindBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case int64:
			return b != 0, nil
		}

	case resource.KindTime:
		switch t := v.(type) {
		case time.Time:
			return t.UTC(), nil
		case string:
			return resource.ParseTime(t)
		}

	case resource.KindJSON:
		if s, ok := v.(string); ok {
			return json.RawMessage(s), nil
		}
	}

	return nil, fmt.Errorf("unexpected %T for %s", v, kind)
}
