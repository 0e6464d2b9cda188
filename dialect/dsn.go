package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by ParseDSN.
var (
	// ErrEmptyDSN is returned when the connection string is empty.
	ErrEmptyDSN = errors.New("dialect: empty dsn")

	// ErrMalformedDSN is returned when the connection string does not
	// carry a driver token.
	ErrMalformedDSN = errors.New("dialect: malformed dsn")
)

// ParseDSN splits a connection string of the form scheme:token:rest and
// returns the driver token and the backend-specific tail. The tail is
// opaque here; the resolved driver interprets it.
//
// Parsing is strict: both separators must be present and the token must
// be nonempty. The rest part may be empty ("dbi:mock:" is well formed).
func ParseDSN(dsn string) (token, rest string, err error) {
	if dsn == "" {
		return "", "", ErrEmptyDSN
	}
	parts := strings.SplitN(dsn, ":", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedDSN, dsn)
	}
	return parts[1], parts[2], nil
}
