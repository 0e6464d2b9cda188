package viewload

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrNoDSN is returned when an operation needing a connection
	// string runs before one has been set.
	ErrNoDSN = errors.New("viewload: no dsn set")

	// ErrInvalidDSN is the sentinel matched by InvalidDSNError.
	ErrInvalidDSN = errors.New("viewload: invalid dsn")

	// ErrNoHandlerForDriver is the sentinel matched by
	// NoHandlerForDriverError.
	ErrNoHandlerForDriver = errors.New("viewload: no handler for driver")

	// ErrHandlerNotCompliant is the sentinel matched by
	// HandlerComplianceError.
	ErrHandlerNotCompliant = errors.New("viewload: handler fails compliance check")

	// ErrNoHandlerLoaded is returned when a driver-delegated operation
	// runs on a loader that has never resolved a dsn.
	ErrNoHandlerLoaded = errors.New("viewload: no driver handler loaded")

	// ErrConnectionFailed is the sentinel matched by
	// ConnectionFailedError.
	ErrConnectionFailed = errors.New("viewload: connection failed")

	// ErrReadOnly is returned when a mutation is attempted through a
	// synthesized class, which is always read-only.
	ErrReadOnly = errors.New("viewload: class is read-only")
)

// InvalidDSNError reports a connection string that could not be parsed
// for a driver token.
type InvalidDSNError struct {
	DSN   string
	Cause error
}

// Error returns the error string.
func (e *InvalidDSNError) Error() string {
	return fmt.Sprintf("viewload: invalid dsn %q: %v", e.DSN, e.Cause)
}

// Unwrap returns the underlying parse error.
func (e *InvalidDSNError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the ErrInvalidDSN sentinel.
func (e *InvalidDSNError) Is(target error) bool { return target == ErrInvalidDSN }

// IsInvalidDSN returns true if the error reports an unparseable
// connection string.
func IsInvalidDSN(err error) bool {
	return errors.Is(err, ErrInvalidDSN)
}

// NoHandlerForDriverError reports a driver token with no registered
// handler.
type NoHandlerForDriverError struct {
	Token string
}

// Error returns the error string.
func (e *NoHandlerForDriverError) Error() string {
	return fmt.Sprintf("viewload: no handler registered for driver %q", e.Token)
}

// Is reports whether the target matches the ErrNoHandlerForDriver
// sentinel.
func (e *NoHandlerForDriverError) Is(target error) bool { return target == ErrNoHandlerForDriver }

// IsNoHandlerForDriver returns true if the error reports an
// unregistered driver token.
func IsNoHandlerForDriver(err error) bool {
	return errors.Is(err, ErrNoHandlerForDriver)
}

// HandlerComplianceError reports a registered handler that does not
// carry the full driver capability surface. The check runs on every
// resolution, not only at registration, so a registry entry that went
// bad is caught at the first lookup.
type HandlerComplianceError struct {
	Token string
	Cause error
}

// Error returns the error string.
func (e *HandlerComplianceError) Error() string {
	return fmt.Sprintf("viewload: handler for driver %q fails compliance check: %v", e.Token, e.Cause)
}

// Unwrap returns the underlying compliance failure.
func (e *HandlerComplianceError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the ErrHandlerNotCompliant
// sentinel.
func (e *HandlerComplianceError) Is(target error) bool { return target == ErrHandlerNotCompliant }

// ConnectionFailedError reports a failed attempt to establish a
// connection handle. The backend error is preserved for observability.
type ConnectionFailedError struct {
	DSN   string
	Cause error
}

// Error returns the error string.
func (e *ConnectionFailedError) Error() string {
	return fmt.Sprintf("viewload: connection failed for %q: %v", e.DSN, e.Cause)
}

// Unwrap returns the backend error.
func (e *ConnectionFailedError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the ErrConnectionFailed
// sentinel.
func (e *ConnectionFailedError) Is(target error) bool { return target == ErrConnectionFailed }

// IsConnectionFailed returns true if the error reports a failed
// connection attempt.
func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// InvalidPatternTypeError reports an include/exclude rule set from a
// value that is neither a pattern string nor a compiled pattern.
type InvalidPatternTypeError struct {
	Value any
}

// Error returns the error string.
func (e *InvalidPatternTypeError) Error() string {
	return fmt.Sprintf("viewload: invalid pattern type %T (want string or *regexp.Regexp)", e.Value)
}

// IsInvalidPatternType returns true if the error reports a bad
// include/exclude value.
func IsInvalidPatternType(err error) bool {
	var e *InvalidPatternTypeError
	return errors.As(err, &e)
}

// UnrecognisedArgumentsError lists every unknown key passed to a
// map-based constructor.
type UnrecognisedArgumentsError struct {
	Keys []string
}

// Error returns the error string.
func (e *UnrecognisedArgumentsError) Error() string {
	return "viewload: unrecognised arguments: " + strings.Join(e.Keys, ", ")
}

// NewUnrecognisedArgumentsError returns an error listing the offending
// keys in sorted order.
func NewUnrecognisedArgumentsError(keys []string) *UnrecognisedArgumentsError {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return &UnrecognisedArgumentsError{Keys: sorted}
}

// IsUnrecognisedArguments returns true if the error reports unknown
// constructor keys.
func IsUnrecognisedArguments(err error) bool {
	var e *UnrecognisedArgumentsError
	return errors.As(err, &e)
}
