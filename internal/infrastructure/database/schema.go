package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"spendwise/internal/domain/resource"
)

// CreateTableSQL returns the CREATE TABLE statement for s in the
// dialect of driver.
func CreateTableSQL(driver string, s *resource.Schema) (string, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return "", err
	}
	return d.createTable(s), nil
}

func (d dialect) createTable(s *resource.Schema) string {
	lines := []string{d.idColumn}
	for _, f := range s.Fields {
		lines = append(lines, d.columnDef(f))
	}
	lines = append(lines, "created_at TIMESTAMP NOT NULL")
	if s.HasUpdatedAt {
		lines = append(lines, "updated_at TIMESTAMP")
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", s.Table, strings.Join(lines, ",\n\t"))
}

func (d dialect) columnDef(f resource.Field) string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte(' ')
	b.WriteString(d.columnType(f))
	if f.NotNull {
		b.WriteString(" NOT NULL")
	}
	if f.Unique {
		b.WriteString(" UNIQUE")
	}
	if f.Kind == resource.KindEnum {
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		}
		fmt.Fprintf(&b, " CHECK (%s IN (%s))", f.Name, strings.Join(quoted, ", "))
	}
	if f.References != nil {
		fmt.Fprintf(&b, " REFERENCES %s(id)", f.References.Table)
		if f.Cascade {
			b.WriteString(" ON DELETE CASCADE")
		}
	}
	return b.String()
}

// EnsureSchema creates any missing table for schemas, which must be
// ordered so that referenced tables come first. Existing tables are
// left untouched.
func EnsureSchema(ctx context.Context, db *DB, schemas []*resource.Schema) error {
	for _, s := range schemas {
		if _, err := db.ExecContext(ctx, db.dialect.createTable(s)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", s.Table, err)
		}
	}
	log.Printf("Database schema ready (%d tables, %s)", len(schemas), db.dialect.name)
	return nil
}
