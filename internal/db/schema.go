package db

import "context"

// TableExists reports whether name resolves to a table or view on the
// search path. name may be schema-qualified.
func (db *DB) TableExists(ctx context.Context, name string) (bool, error) {
	rows, err := db.Query(ctx, "SELECT to_regclass($1) IS NOT NULL", QuoteIdent(name))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, err
		}
	}
	return exists, rows.Err()
}
