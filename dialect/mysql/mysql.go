// Package mysql implements view discovery for MySQL and MariaDB
// through the go-sql-driver. Importing the package registers it under
// the "mysql" token.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/syssam/viewload/dialect"
)

func init() {
	dialect.Register(dialect.MySQL, Driver{})
}

// Driver introspects views through information_schema.
type Driver struct{}

// Name implements dialect.Driver.
func (Driver) Name() string { return dialect.MySQL }

// SQLDriver implements dialect.Driver.
func (Driver) SQLDriver() string { return "mysql" }

// RecordBase implements dialect.Driver.
func (Driver) RecordBase() string { return "viewload.MySQLRecord" }

// DataSource builds a go-sql-driver DSN of the form
// user:password@rest?k=v. The dsn tail supplies the network address
// and database name (for example "tcp(localhost:3306)/mydb").
func (Driver) DataSource(rest, username, password string, options map[string]string) string {
	var b strings.Builder
	if username != "" {
		b.WriteString(username)
		if password != "" {
			b.WriteByte(':')
			b.WriteString(password)
		}
		b.WriteByte('@')
	}
	b.WriteString(rest)
	if len(options) > 0 {
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
	}
	return b.String()
}

// Views lists the views of the current database, ordered by name.
func (Driver) Views(ctx context.Context, db *sql.DB) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.views
		WHERE table_schema = DATABASE()
		ORDER BY table_name`
	return scanNames(ctx, db, query)
}

// ViewColumns lists the columns of one view in ordinal position order.
func (Driver) ViewColumns(ctx context.Context, db *sql.DB, view string) ([]string, error) {
	const query = `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		ORDER BY ordinal_position`
	return scanNames(ctx, db, query, view)
}

func scanNames(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("mysql: query failed: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("mysql: scan failed: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
