// Package sqlite implements view discovery for SQLite through the
// CGo-free modernc.org driver. Importing the package registers it
// under the "sqlite" token.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/syssam/viewload/dialect"
)

func init() {
	dialect.Register(dialect.SQLite, Driver{})
}

// Driver introspects views through sqlite_master and pragma tables.
// SQLite has no users, so credentials are ignored.
type Driver struct{}

// Name implements dialect.Driver.
func (Driver) Name() string { return dialect.SQLite }

// SQLDriver implements dialect.Driver.
func (Driver) SQLDriver() string { return "sqlite" }

// RecordBase implements dialect.Driver.
func (Driver) RecordBase() string { return "viewload.SQLiteRecord" }

// DataSource passes the dsn tail (a file path or ":memory:") through,
// appending options as query parameters.
func (Driver) DataSource(rest, _, _ string, options map[string]string) string {
	if len(options) == 0 {
		return rest
	}
	var b strings.Builder
	b.WriteString(rest)
	sep := byte('?')
	if strings.ContainsRune(rest, '?') {
		sep = '&'
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(sep)
		sep = '&'
		fmt.Fprintf(&b, "%s=%s", k, options[k])
	}
	return b.String()
}

// Views lists the views in the main database, ordered by name.
func (Driver) Views(ctx context.Context, db *sql.DB) ([]string, error) {
	const query = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'view'
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY name`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query failed: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scan failed: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ViewColumns lists the columns of one view in declaration order,
// using table_info which reports them by column id.
func (Driver) ViewColumns(ctx context.Context, db *sql.DB, view string) ([]string, error) {
	const query = `
		SELECT name
		FROM pragma_table_info(?)
		ORDER BY cid`
	rows, err := db.QueryContext(ctx, query, view)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query failed: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scan failed: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
