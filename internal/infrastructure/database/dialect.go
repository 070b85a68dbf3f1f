package database

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/domain/resource"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sqliteTimeLayout sorts lexically and is read back by resource.ParseTime.
const sqliteTimeLayout = "2006-01-02 15:04:05.999999"

// dialect holds what differs between the supported databases.
type dialect struct {
	name       string
	driverName string
	// system is the OpenTelemetry db.system attribute.
	system string
	// singleWriter databases get one pooled connection.
	singleWriter bool

	idColumn string
	types    map[resource.Kind]string

	bindTime func(time.Time) any
}

var postgresDialect = dialect{
	name:       DriverPostgres,
	driverName: "postgres",
	system:     "postgresql",
	idColumn:   "id BIGSERIAL PRIMARY KEY",
	types: map[resource.Kind]string{
		resource.KindText:    "TEXT",
		resource.KindInt:     "BIGINT",
		resource.KindFloat:   "DOUBLE PRECISION",
		resource.KindDecimal: fmt.Sprintf("NUMERIC(%d,%d)", resource.DecimalPrecision, resource.DecimalScale),
		resource.KindBool:    "BOOLEAN",
		resource.KindTime:    "TIMESTAMP",
		resource.KindJSON:    "JSONB",
	},
	bindTime: func(t time.Time) any { return t.UTC() },
}

var sqliteDialect = dialect{
	name:         DriverSQLite,
	driverName:   "sqlite",
	system:       "sqlite",
	singleWriter: true,
	idColumn:     "id INTEGER PRIMARY KEY AUTOINCREMENT",
	types: map[resource.Kind]string{
		resource.KindText:    "TEXT",
		resource.KindInt:     "INTEGER",
		resource.KindFloat:   "REAL",
		resource.KindDecimal: "TEXT",
		resource.KindBool:    "BOOLEAN",
		resource.KindTime:    "TIMESTAMP",
		resource.KindJSON:    "TEXT",
	},
	bindTime: func(t time.Time) any { return t.UTC().Format(sqliteTimeLayout) },
}

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case DriverPostgres, "postgresql":
		return postgresDialect, nil
	case DriverSQLite, "sqlite3":
		return sqliteDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// dsn adds the connection settings the dialect relies on.
func (d dialect) dsn(dsn string) string {
	if d.name != DriverSQLite {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (d dialect) placeholder(n int) string {
	if d.name == DriverPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// columnType returns the SQL type of f without constraints.
func (d dialect) columnType(f resource.Field) string {
	switch f.Kind {
	case resource.KindString:
		if f.MaxLen > 0 {
			return fmt.Sprintf("VARCHAR(%d)", f.MaxLen)
		}
		return "TEXT"
	case resource.KindEnum:
		longest := 1
		for _, v := range f.Values {
			longest = max(longest, len(v))
		}
		return fmt.Sprintf("VARCHAR(%d)", longest)
	}
	return d.types[f.Kind]
}

// bind converts a typed value into a driver argument.
func (d dialect) bind(v any) any {
	switch v := v.(type) {
	case time.Time:
		return d.bindTime(v)
	case decimal.Decimal:
		return v.StringFixed(resource.DecimalScale)
	case json.RawMessage:
		if v == nil {
			return nil
		}
		return string(v)
	default:
		return v
	}
}
