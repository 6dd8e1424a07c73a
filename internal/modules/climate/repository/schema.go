package repository

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
)

//go:embed sql/get-table-columns.sql
var getTableColumnsSQL string

// RequiredColumns is the part of the store's schema the queries rely on.
// Other columns may exist and are ignored.
var RequiredColumns = map[string][]string{
	"measurement": {"id", "station", "date", "prcp", "tobs"},
	"station":     {"station"},
}

// VerifySchema checks that every table in RequiredColumns exposes the
// required columns.
func (r *repositoryImpl) VerifySchema(ctx context.Context) error {
	for _, table := range []string{"measurement", "station"} {
		cols, err := r.tableColumns(ctx, table)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			return fmt.Errorf("schema: table %q not found", table)
		}

		var missing []string
		for _, want := range RequiredColumns[table] {
			if _, ok := cols[want]; !ok {
				missing = append(missing, want)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("schema: table %q is missing columns %s", table, strings.Join(missing, ", "))
		}

		slog.Debug("schema verified", "table", table, "columns", cols)
	}
	return nil
}

// tableColumns maps column name to declared type.
func (r *repositoryImpl) tableColumns(ctx context.Context, table string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, getTableColumnsSQL, table)
	if err != nil {
		return nil, fmt.Errorf("schema: columns of %q: %w", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close table info rows", "error", err)
		}
	}()

	cols := make(map[string]string)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, err
		}
		cols[strings.ToLower(name)] = typ
	}
	return cols, rows.Err()
}
