// Package dialect defines the capability surface a database backend must
// implement for view discovery, together with the process-wide registry
// that maps connection-string driver tokens to registered backends.
//
// The built-in backends live in the sub-packages dialect/postgres,
// dialect/mysql and dialect/sqlite; importing one registers it:
//
//	import _ "github.com/syssam/viewload/dialect/postgres"
package dialect

import (
	"context"
	"database/sql"
	"errors"
)

// Dialect names for the built-in backends. The name doubles as the
// driver token expected in connection strings.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// ErrNotImplemented is returned by a driver that deliberately leaves one
// of its capabilities unimplemented. Callers treat it as "this backend
// cannot answer", not as a transient failure.
var ErrNotImplemented = errors.New("dialect: method not implemented by driver")

// Driver is the capability surface of one database backend.
//
// Views and ViewColumns receive the open handle they should introspect
// through; they must not cache it. ViewColumns reports columns in
// ordinal position order, since the order becomes the column order of
// the synthesized class.
type Driver interface {
	// Name returns the dialect name, one of the package constants for
	// built-in backends.
	Name() string

	// SQLDriver returns the database/sql driver name handles are opened
	// with.
	SQLDriver() string

	// DataSource translates the opaque tail of a viewload connection
	// string, plus credentials and driver options, into the backend's
	// data source name.
	DataSource(rest, username, password string, options map[string]string) string

	// Views lists the names of the views visible through db.
	Views(ctx context.Context, db *sql.DB) ([]string, error)

	// ViewColumns lists the columns of the named view.
	ViewColumns(ctx context.Context, db *sql.DB, view string) ([]string, error)

	// RecordBase returns the qualified type that record classes
	// generated for this backend embed as their parent.
	RecordBase() string
}

// HandleReleaser is implemented by drivers that keep state derived from
// a connection handle, such as prepared statements. ReleaseHandle runs
// before the handle itself is closed.
type HandleReleaser interface {
	ReleaseHandle(db *sql.DB) error
}

// Comply verifies that a driver carries the full capability surface.
// Interface satisfaction is checked by the compiler; what remains to
// verify at runtime is that the identity-bearing capabilities return
// usable values, which a dynamically constructed driver can get wrong.
func Comply(d Driver) error {
	switch {
	case d == nil:
		return errors.New("dialect: driver is nil")
	case d.Name() == "":
		return errors.New("dialect: driver has no dialect name")
	case d.SQLDriver() == "":
		return errors.New("dialect: driver has no database/sql driver name")
	case d.RecordBase() == "":
		return errors.New("dialect: driver has no record base type")
	}
	return nil
}
