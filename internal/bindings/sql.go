package bindings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/bsparks/simple-script/internal/object"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const DefaultQuery = "SELECT name, value FROM bindings"

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// driverNames maps accepted driver spellings onto registered database/sql
// driver names.
var driverNames = map[string]string{
	"sqlite3":    "sqlite3",
	"sqlite":     "sqlite3",
	"mysql":      "mysql",
	"postgres":   "postgres",
	"postgresql": "postgres",
}

// SQL reads bindings from a two column query: the first column is the name,
// the second the value.
type SQL struct {
	Driver string
	DSN    string
	Query  string
}

func (s SQL) String() string {
	return fmt.Sprintf("sql(%s)", s.Driver)
}

func (s SQL) Load(ctx context.Context) (map[string]object.Object, error) {
	driver, ok := driverNames[strings.ToLower(s.Driver)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, s.Driver)
	}

	query := s.Query
	if query == "" {
		query = DefaultQuery
	}

	db, err := sql.Open(driver, s.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bindings query: %w", err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("bindings query: %w", err)
	}
	if len(colTypes) != 2 {
		return nil, fmt.Errorf("bindings query must return 2 columns (name, value), got %d", len(colTypes))
	}

	vals := make(map[string]object.Object)
	for rows.Next() {
		var name, value any
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("bindings row: %w", err)
		}
		key, err := columnName(name)
		if err != nil {
			return nil, err
		}
		vals[key] = TypeMapper(value, colTypes[1])
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bindings rows: %w", err)
	}

	return vals, nil
}

func columnName(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case nil:
		return "", errors.New("bindings row has a NULL name")
	default:
		return fmt.Sprintf("%v", x), nil
	}
}

// TypeMapper converts a scanned column value into a runtime object.
func TypeMapper(v any, ct *sql.ColumnType) object.Object {
	if v == nil {
		return object.NULL
	}

	switch x := v.(type) {
	case int:
		return &object.Number{Value: float64(x)}
	case int32:
		return &object.Number{Value: float64(x)}
	case int64:
		return &object.Number{Value: float64(x)}
	case uint64:
		return &object.Number{Value: float64(x)}
	case float32:
		return &object.Number{Value: float64(x)}
	case float64:
		return &object.Number{Value: x}
	case bool:
		if x {
			return object.TRUE
		}
		return object.FALSE
	case time.Time:
		return &object.String{Value: x.Format(time.RFC3339Nano)}
	case []byte:
		// MySQL and Postgres return DECIMAL/NUMERIC as text
		if ct != nil && isNumericDecl(ct.DatabaseTypeName()) {
			if f, err := strconv.ParseFloat(string(x), 64); err == nil {
				return &object.Number{Value: f}
			}
		}
		return &object.String{Value: string(x)}
	case string:
		return &object.String{Value: x}
	default:
		return &object.String{Value: fmt.Sprintf("%v", v)}
	}
}

func isNumericDecl(decl string) bool {
	switch strings.ToUpper(decl) {
	case "DECIMAL", "NEWDECIMAL", "NUMERIC", "REAL", "DOUBLE", "FLOAT", "FLOAT4", "FLOAT8", "INT", "INTEGER", "BIGINT", "INT4", "INT8":
		return true
	}
	return false
}
