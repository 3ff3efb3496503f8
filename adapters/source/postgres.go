package source

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"tablelens/domain/table"
	"tablelens/internal/errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresSource materializes Postgres tables into snapshots. It only ever
// issues plain SELECTs; query execution against the loaded dataset is the
// surrounding application's concern, not the engine's.
type PostgresSource struct {
	db     *sqlx.DB
	schema string
}

// NewPostgresSource creates a source reading from the given schema
func NewPostgresSource(db *sqlx.DB, schema string) *PostgresSource {
	if schema == "" {
		schema = "public"
	}
	return &PostgresSource{db: db, schema: schema}
}

// Table loads the full contents of one table as a snapshot
func (s *PostgresSource) Table(ctx context.Context, name string) (*table.Table, error) {
	if !identifierPattern.MatchString(name) {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid table name: %s", name))
	}

	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM %s.%s`, s.schema, name))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read table "+name)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read columns for "+name)
	}

	var data [][]table.Value
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan row from "+name)
		}
		row := make([]table.Value, len(raw))
		for i, cell := range raw {
			row[i] = cellValue(cell)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration failed for "+name)
	}

	return table.New(name, columns, data), nil
}

// ListTables returns the base tables of the configured schema
func (s *PostgresSource) ListTables(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		 ORDER BY table_name`, s.schema)
	if err != nil {
		return nil, errors.DatabaseError("failed to list tables: " + err.Error())
	}
	return names, nil
}

// cellValue converts a scanned database cell into a snapshot value
func cellValue(cell interface{}) table.Value {
	switch v := cell.(type) {
	case nil:
		return table.NullValue()
	case float64:
		return table.NumberValue(v)
	case float32:
		return table.NumberValue(float64(v))
	case int64:
		return table.NumberValue(float64(v))
	case int32:
		return table.NumberValue(float64(v))
	case bool:
		if v {
			return table.NumberValue(1)
		}
		return table.NumberValue(0)
	case []byte:
		return table.TextValue(string(v))
	case string:
		return table.TextValue(v)
	default:
		return table.TextValue(fmt.Sprintf("%v", v))
	}
}
