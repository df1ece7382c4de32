package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ledgerline/mfin/internal/datatable"
)

// QueryRecords runs sql and returns the result column names (in select
// order) and one record per row, keyed by column name.
func (db *DB) QueryRecords(ctx context.Context, sql string, args ...any) ([]string, []datatable.Record, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, err
	}
	return CollectRecords(rows)
}

// CollectRecords drains rows into records and closes them.
func CollectRecords(rows pgx.Rows) ([]string, []datatable.Record, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var records []datatable.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row: %w", err)
		}
		r := make(datatable.Record, len(columns))
		for i, name := range columns {
			if i < len(values) {
				r[name] = normalizeValue(values[i])
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, records, nil
}

// normalizeValue converts driver values into the plain types the table
// pipeline sorts and searches: numerics become float64, byte slices and
// UUIDs become strings.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case []byte:
		return string(x)
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", x[0:4], x[4:6], x[6:8], x[8:10], x[10:16])
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	default:
		return v
	}
}

// QuoteIdent quotes a possibly schema-qualified identifier ("public.loans")
// for safe use in SQL text.
func QuoteIdent(name string) string {
	parts := strings.Split(name, ".")
	return pgx.Identifier(parts).Sanitize()
}
