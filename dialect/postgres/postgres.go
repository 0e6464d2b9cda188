// Package postgres implements view discovery for PostgreSQL through
// the lib/pq driver. Importing the package registers it under the
// "postgres" token.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"github.com/syssam/viewload/dialect"
)

func init() {
	dialect.Register(dialect.Postgres, Driver{})
}

// Driver introspects views through information_schema.
type Driver struct{}

// Name implements dialect.Driver.
func (Driver) Name() string { return dialect.Postgres }

// SQLDriver implements dialect.Driver.
func (Driver) SQLDriver() string { return "postgres" }

// RecordBase implements dialect.Driver.
func (Driver) RecordBase() string { return "viewload.PostgresRecord" }

// DataSource builds a pq keyword/value data source name. The dsn tail
// is passed through verbatim; credentials and options are appended as
// additional keyword pairs.
func (Driver) DataSource(rest, username, password string, options map[string]string) string {
	var b strings.Builder
	b.WriteString(rest)
	kv := func(k, v string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%s", k, v)
	}
	if username != "" {
		kv("user", username)
	}
	if password != "" {
		kv("password", password)
	}
	for _, k := range sortedKeys(options) {
		kv(k, options[k])
	}
	return b.String()
}

// Views lists the views in the public schema, ordered by name.
func (Driver) Views(ctx context.Context, db *sql.DB) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.views
		WHERE table_schema = 'public'
		ORDER BY table_name`
	return scanNames(ctx, db, query)
}

// ViewColumns lists the columns of one view in ordinal position order.
func (Driver) ViewColumns(ctx context.Context, db *sql.DB, view string) ([]string, error) {
	const query = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public'
		  AND table_name = $1
		ORDER BY ordinal_position`
	return scanNames(ctx, db, query, view)
}

func scanNames(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query failed: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres: scan failed: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
